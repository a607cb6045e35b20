// Package allocator splits a goal amount across a date range. Allocation is a
// pure function of its request, apart from the random strategy, and is safe
// for concurrent use.
package allocator

import (
	"math/rand/v2"

	"github.com/alexanderramin/wordplan/internal/calendar"
	"github.com/alexanderramin/wordplan/internal/domain"
)

// DefaultMaxDays bounds the output size when no ceiling is configured.
const DefaultMaxDays = 3660

// Request is the allocator input. Empty Intensity means average and empty
// WeekendRule means none; Strategy has no default.
type Request struct {
	Total       int
	Start       calendar.Date
	End         calendar.Date
	Strategy    domain.Strategy
	Intensity   domain.Intensity
	WeekendRule domain.WeekendRule
}

// DailyTarget is the amount scheduled for one calendar day.
type DailyTarget struct {
	Date   calendar.Date `json:"date"`
	Target int           `json:"target"`
}

// Allocator holds the tunables for allocation. The zero value is not usable;
// call New.
type Allocator struct {
	maxDays   int
	randFloat func() float64
}

type Option func(*Allocator)

// WithMaxDays sets the day-count ceiling. Non-positive values keep the default.
func WithMaxDays(n int) Option {
	return func(a *Allocator) {
		if n > 0 {
			a.maxDays = n
		}
	}
}

// WithRandom replaces the uniform [0,1) source used by the random strategy.
// The function must be safe for concurrent use if the Allocator is shared.
func WithRandom(f func() float64) Option {
	return func(a *Allocator) {
		if f != nil {
			a.randFloat = f
		}
	}
}

func New(opts ...Option) *Allocator {
	a := &Allocator{
		maxDays:   DefaultMaxDays,
		randFloat: rand.Float64,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// MaxDays returns the configured day-count ceiling.
func (a *Allocator) MaxDays() int { return a.maxDays }

var defaultAllocator = New()

// Allocate runs req through an Allocator with default settings.
func Allocate(req Request) ([]DailyTarget, error) {
	return defaultAllocator.Allocate(req)
}

// Validate checks req without allocating. It returns the same errors
// Allocate would.
func (a *Allocator) Validate(req Request) error {
	_, err := a.normalizeRequest(req)
	return err
}

// Allocate returns one DailyTarget per day in [req.Start, req.End], in date
// order, whose targets sum to exactly req.Total. Nothing is returned on error.
func (a *Allocator) Allocate(req Request) ([]DailyTarget, error) {
	req, err := a.normalizeRequest(req)
	if err != nil {
		return nil, err
	}

	days, err := calendar.Days(req.Start, req.End)
	if err != nil {
		return nil, &InvalidRangeError{Start: req.Start, End: req.End}
	}

	weights := curve(req.Strategy, len(days), amplitude(req.Intensity), a.randFloat)
	eligible := applyWeekendRule(days, weights, req.WeekendRule)
	targets := distribute(req.Total, weights, eligible)

	out := make([]DailyTarget, len(days))
	for i, d := range days {
		out[i] = DailyTarget{Date: d, Target: targets[i]}
	}
	return out, nil
}

// normalizeRequest fills defaults and validates every field before any
// allocation work happens.
func (a *Allocator) normalizeRequest(req Request) (Request, error) {
	if req.Total < 0 {
		return req, &InvalidAmountError{Amount: req.Total}
	}
	if req.Start.IsZero() || req.End.IsZero() || req.End.Before(req.Start) {
		return req, &InvalidRangeError{Start: req.Start, End: req.End}
	}
	if n := calendar.DaysInclusive(req.Start, req.End); n > a.maxDays {
		return req, &RangeTooLargeError{Days: n, MaxDays: a.maxDays}
	}
	if !req.Strategy.Valid() {
		return req, &UnknownStrategyError{Strategy: req.Strategy}
	}
	if req.Intensity == "" {
		req.Intensity = domain.IntensityAverage
	}
	if !req.Intensity.Valid() {
		return req, &UnknownIntensityError{Intensity: req.Intensity}
	}
	if req.WeekendRule == "" {
		req.WeekendRule = domain.WeekendNone
	}
	if !req.WeekendRule.Valid() {
		return req, &UnknownWeekendRuleError{Rule: req.WeekendRule}
	}
	return req, nil
}

// Sum returns the total of all targets.
func Sum(targets []DailyTarget) int {
	total := 0
	for _, t := range targets {
		total += t.Target
	}
	return total
}

package allocator

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/wordplan/internal/calendar"
	"github.com/alexanderramin/wordplan/internal/domain"
)

// Sentinels for errors.Is. Each typed error below matches its sentinel.
var (
	ErrInvalidRange       = errors.New("invalid date range")
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrUnknownStrategy    = errors.New("unknown strategy")
	ErrUnknownIntensity   = errors.New("unknown intensity")
	ErrUnknownWeekendRule = errors.New("unknown weekend rule")
	ErrRangeTooLarge      = errors.New("date range too large")
)

// InvalidRangeError reports an end date before the start date, or a
// missing date.
type InvalidRangeError struct {
	Start calendar.Date
	End   calendar.Date
}

func (e *InvalidRangeError) Error() string {
	if e.Start.IsZero() || e.End.IsZero() {
		return "start and end dates are required"
	}
	return fmt.Sprintf("end date %s is before start date %s", e.End, e.Start)
}

func (e *InvalidRangeError) Is(target error) bool { return target == ErrInvalidRange }

// InvalidAmountError reports a negative total.
type InvalidAmountError struct {
	Amount int
}

func (e *InvalidAmountError) Error() string {
	return fmt.Sprintf("total amount must not be negative (got %d)", e.Amount)
}

func (e *InvalidAmountError) Is(target error) bool { return target == ErrInvalidAmount }

// UnknownStrategyError reports a strategy name the allocator does not know.
type UnknownStrategyError struct {
	Strategy domain.Strategy
}

func (e *UnknownStrategyError) Error() string {
	return fmt.Sprintf("unknown strategy %q", string(e.Strategy))
}

func (e *UnknownStrategyError) Is(target error) bool { return target == ErrUnknownStrategy }

type UnknownIntensityError struct {
	Intensity domain.Intensity
}

func (e *UnknownIntensityError) Error() string {
	return fmt.Sprintf("unknown intensity %q", string(e.Intensity))
}

func (e *UnknownIntensityError) Is(target error) bool { return target == ErrUnknownIntensity }

type UnknownWeekendRuleError struct {
	Rule domain.WeekendRule
}

func (e *UnknownWeekendRuleError) Error() string {
	return fmt.Sprintf("unknown weekend rule %q", string(e.Rule))
}

func (e *UnknownWeekendRuleError) Is(target error) bool { return target == ErrUnknownWeekendRule }

// RangeTooLargeError reports a range longer than the configured ceiling.
type RangeTooLargeError struct {
	Days    int
	MaxDays int
}

func (e *RangeTooLargeError) Error() string {
	return fmt.Sprintf("date range spans %d days, more than the maximum of %d", e.Days, e.MaxDays)
}

func (e *RangeTooLargeError) Is(target error) bool { return target == ErrRangeTooLarge }

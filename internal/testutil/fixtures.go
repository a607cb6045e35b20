package testutil

import (
	"time"

	"github.com/alexanderramin/wordplan/internal/calendar"
	"github.com/alexanderramin/wordplan/internal/domain"
	"github.com/google/uuid"
)

type PlanOption func(*domain.Plan)

func WithRange(start, end string) PlanOption {
	return func(p *domain.Plan) {
		p.StartDate = calendar.MustParse(start)
		p.EndDate = calendar.MustParse(end)
	}
}

func WithGoal(n int) PlanOption {
	return func(p *domain.Plan) {
		p.GoalAmount = n
	}
}

func WithStrategy(s domain.Strategy) PlanOption {
	return func(p *domain.Plan) {
		p.Strategy = s
	}
}

func WithIntensity(i domain.Intensity) PlanOption {
	return func(p *domain.Plan) {
		p.Intensity = i
	}
}

func WithWeekendRule(w domain.WeekendRule) PlanOption {
	return func(p *domain.Plan) {
		p.WeekendRule = w
	}
}

func WithOwner(id string) PlanOption {
	return func(p *domain.Plan) {
		p.OwnerID = id
	}
}

func WithPlanStatus(s domain.PlanStatus) PlanOption {
	return func(p *domain.Plan) {
		p.Status = s
		if s == domain.PlanArchived {
			now := time.Now().UTC()
			p.ArchivedAt = &now
		}
	}
}

func WithDisplaySettings(s domain.DisplaySettings) PlanOption {
	return func(p *domain.Plan) {
		p.DisplaySettings = s
	}
}

// NewTestPlan returns a 30-day, 30000-word steady plan for November 2024.
func NewTestPlan(name string, opts ...PlanOption) *domain.Plan {
	now := time.Now().UTC().Truncate(time.Second)
	p := &domain.Plan{
		ID:           uuid.New().String(),
		OwnerID:      "user-1",
		Name:         name,
		ContentType:  "novel",
		ActivityType: "writing",
		StartDate:    calendar.MustParse("2024-11-01"),
		EndDate:      calendar.MustParse("2024-11-30"),
		GoalAmount:   30000,
		Strategy:     domain.StrategySteady,
		Intensity:    domain.IntensityAverage,
		WeekendRule:  domain.WeekendNone,
		Status:       domain.PlanActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// FlatDays builds one row per day in [start, end] with the same target.
func FlatDays(planID, start, end string, target int) []domain.PlanDay {
	s, e := calendar.MustParse(start), calendar.MustParse(end)
	var out []domain.PlanDay
	for d := s; !d.After(e); d = d.AddDays(1) {
		out = append(out, domain.PlanDay{PlanID: planID, Date: d, Target: target})
	}
	return out
}

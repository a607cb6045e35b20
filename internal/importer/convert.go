package importer

import (
	"fmt"
	"sort"
	"time"

	"github.com/alexanderramin/wordplan/internal/calendar"
	"github.com/alexanderramin/wordplan/internal/domain"
	"github.com/google/uuid"
)

// Converted is an import ready for persistence. Schedule holds the saved
// targets for every day and is nil when the document carries none, in which
// case targets come from allocation. Progress holds the days with words
// logged.
type Converted struct {
	Plan     *domain.Plan
	Schedule []domain.PlanDay
	Progress []domain.PlanDay
}

// Convert transforms a validated ImportSchema into domain objects owned by
// owner. Call ValidateImportSchema first; Convert assumes the schema is valid.
func Convert(schema *ImportSchema, owner string) (*Converted, error) {
	now := time.Now().UTC().Truncate(time.Second)
	p := schema.Plan

	start, err := calendar.Parse(p.StartDate)
	if err != nil {
		return nil, fmt.Errorf("parsing start_date: %w", err)
	}
	end, err := calendar.Parse(p.EndDate)
	if err != nil {
		return nil, fmt.Errorf("parsing end_date: %w", err)
	}

	plan := &domain.Plan{
		ID:              uuid.New().String(),
		OwnerID:         owner,
		Name:            p.Name,
		ContentType:     p.ContentType,
		ActivityType:    p.ActivityType,
		StartDate:       start,
		EndDate:         end,
		GoalAmount:      p.GoalAmount,
		Strategy:        domain.ParseStrategy(p.Strategy),
		Intensity:       domain.ParseIntensity(p.Intensity),
		WeekendRule:     domain.ParseWeekendRule(p.WeekendRule),
		DisplaySettings: domain.DisplaySettings(p.DisplaySettings),
		Status:          domain.PlanActive,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if p.Strategy == "" {
		plan.Strategy = domain.StrategySteady
	}
	if domain.PlanStatus(p.Status) == domain.PlanArchived {
		plan.Status = domain.PlanArchived
		plan.ArchivedAt = &now
	}

	out := &Converted{Plan: plan, Progress: make([]domain.PlanDay, 0, len(schema.Progress))}
	withTargets := schema.HasTargets()
	for _, e := range schema.Progress {
		d, err := calendar.Parse(e.Date)
		if err != nil {
			return nil, fmt.Errorf("parsing progress date: %w", err)
		}
		if withTargets {
			out.Schedule = append(out.Schedule, domain.PlanDay{PlanID: plan.ID, Date: d, Target: *e.Target})
		}
		if e.Logged > 0 {
			out.Progress = append(out.Progress, domain.PlanDay{PlanID: plan.ID, Date: d, Logged: e.Logged})
		}
	}
	sort.Slice(out.Schedule, func(i, j int) bool {
		return out.Schedule[i].Date.Before(out.Schedule[j].Date)
	})

	return out, nil
}

// FromPlan builds the import document that recreates p with its stored
// schedule and logged progress. Every day is written with its target.
func FromPlan(p *domain.Plan, days []domain.PlanDay) *ImportSchema {
	schema := &ImportSchema{
		Plan: PlanImport{
			Name:            p.Name,
			ContentType:     p.ContentType,
			ActivityType:    p.ActivityType,
			StartDate:       p.StartDate.String(),
			EndDate:         p.EndDate.String(),
			GoalAmount:      p.GoalAmount,
			Strategy:        string(p.Strategy),
			Intensity:       string(p.Intensity),
			WeekendRule:     string(p.WeekendRule),
			Status:          string(p.Status),
			DisplaySettings: p.DisplaySettings,
		},
	}
	for _, d := range days {
		target := d.Target
		schema.Progress = append(schema.Progress, ProgressImport{
			Date:   d.Date.String(),
			Target: &target,
			Logged: d.Logged,
		})
	}
	return schema
}

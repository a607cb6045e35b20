package importer

import (
	"fmt"

	"github.com/alexanderramin/wordplan/internal/calendar"
	"github.com/alexanderramin/wordplan/internal/domain"
)

// ValidateImportSchema checks the import schema for errors before conversion.
// Returns a slice of all validation errors found.
func ValidateImportSchema(schema *ImportSchema) []error {
	var errs []error

	start, end, planErrs := validatePlan(&schema.Plan)
	errs = append(errs, planErrs...)
	errs = append(errs, validateProgress(schema.Progress, start, end)...)
	if schema.HasTargets() {
		errs = append(errs, validateTargets(schema, start, end)...)
	}

	return errs
}

func validatePlan(p *PlanImport) (start, end calendar.Date, errs []error) {
	if p.Name == "" {
		errs = append(errs, fmt.Errorf("plan.name is required"))
	}
	if p.GoalAmount < 0 {
		errs = append(errs, fmt.Errorf("plan.goal_amount must not be negative (got %d)", p.GoalAmount))
	}

	start = parseDateField("plan.start_date", p.StartDate, &errs)
	end = parseDateField("plan.end_date", p.EndDate, &errs)
	if !start.IsZero() && !end.IsZero() && end.Before(start) {
		errs = append(errs, fmt.Errorf("plan.end_date %q is before start_date %q", p.EndDate, p.StartDate))
	}

	if p.Strategy != "" && !domain.ParseStrategy(p.Strategy).Valid() {
		errs = append(errs, fmt.Errorf("plan.strategy: invalid value %q", p.Strategy))
	}
	if p.Intensity != "" && !domain.ParseIntensity(p.Intensity).Valid() {
		errs = append(errs, fmt.Errorf("plan.intensity: invalid value %q", p.Intensity))
	}
	if p.WeekendRule != "" && !domain.ParseWeekendRule(p.WeekendRule).Valid() {
		errs = append(errs, fmt.Errorf("plan.weekend_rule: invalid value %q", p.WeekendRule))
	}
	switch domain.PlanStatus(p.Status) {
	case "", domain.PlanActive, domain.PlanArchived:
	default:
		errs = append(errs, fmt.Errorf("plan.status: invalid value %q", p.Status))
	}

	return start, end, errs
}

func validateProgress(entries []ProgressImport, start, end calendar.Date) []error {
	var errs []error
	seen := make(map[string]bool, len(entries))

	for i, e := range entries {
		field := fmt.Sprintf("progress[%d]", i)
		if e.Logged < 0 {
			errs = append(errs, fmt.Errorf("%s.logged must not be negative (got %d)", field, e.Logged))
		}
		d := parseDateField(field+".date", e.Date, &errs)
		if d.IsZero() {
			continue
		}
		if seen[d.String()] {
			errs = append(errs, fmt.Errorf("%s.date: duplicate date %s", field, d))
		}
		seen[d.String()] = true
		if !start.IsZero() && !end.IsZero() && !d.Between(start, end) {
			errs = append(errs, fmt.Errorf("%s.date: %s is outside the plan range", field, d))
		}
	}

	return errs
}

// validateTargets requires a saved schedule to be complete: one target on
// every day of the range, none negative, summing to the goal.
func validateTargets(schema *ImportSchema, start, end calendar.Date) []error {
	var errs []error
	sum := 0
	for i, e := range schema.Progress {
		if e.Target == nil {
			errs = append(errs, fmt.Errorf("progress[%d].target is required when other days carry targets", i))
			continue
		}
		if *e.Target < 0 {
			errs = append(errs, fmt.Errorf("progress[%d].target must not be negative (got %d)", i, *e.Target))
		}
		sum += *e.Target
	}
	if start.IsZero() || end.IsZero() || end.Before(start) {
		return errs
	}
	if n := calendar.DaysInclusive(start, end); len(schema.Progress) != n {
		errs = append(errs, fmt.Errorf("progress: targets cover %d days, plan range has %d", len(schema.Progress), n))
	}
	if len(errs) == 0 && sum != schema.Plan.GoalAmount {
		errs = append(errs, fmt.Errorf("progress: targets sum to %d, plan.goal_amount is %d", sum, schema.Plan.GoalAmount))
	}
	return errs
}

func parseDateField(field, value string, errs *[]error) calendar.Date {
	if value == "" {
		*errs = append(*errs, fmt.Errorf("%s is required", field))
		return calendar.Date{}
	}
	d, err := calendar.Parse(value)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: invalid date format %q (expected YYYY-MM-DD)", field, value))
		return calendar.Date{}
	}
	return d
}

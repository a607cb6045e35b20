package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/wordplan/internal/calendar"
)

// Plan is a writing goal: an amount to reach between two dates (inclusive).
type Plan struct {
	ID           string
	OwnerID      string
	Name         string
	ContentType  string
	ActivityType string
	StartDate    calendar.Date
	EndDate      calendar.Date
	GoalAmount   int
	Strategy     Strategy
	Intensity    Intensity
	WeekendRule  WeekendRule

	// DisplaySettings is opaque client metadata (view mode, color, week start).
	DisplaySettings DisplaySettings

	Status     PlanStatus
	ArchivedAt *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Validate checks the invariants a plan must satisfy before it is stored.
// Enum fields are checked by the allocator, which owns their semantics.
func (p *Plan) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("plan name is required")
	}
	if p.StartDate.IsZero() || p.EndDate.IsZero() {
		return fmt.Errorf("plan start and end dates are required")
	}
	if p.EndDate.Before(p.StartDate) {
		return fmt.Errorf("plan end date %s is before start date %s", p.EndDate, p.StartDate)
	}
	if p.GoalAmount < 0 {
		return fmt.Errorf("plan goal amount must not be negative (got %d)", p.GoalAmount)
	}
	return nil
}

// DayCount returns the number of calendar days the plan spans.
func (p *Plan) DayCount() int {
	return calendar.DaysInclusive(p.StartDate, p.EndDate)
}

// Contains reports whether d falls inside the plan's range.
func (p *Plan) Contains(d calendar.Date) bool {
	return d.Between(p.StartDate, p.EndDate)
}

// DisplayID returns the first 8 characters of the ID.
func (p *Plan) DisplayID() string {
	if len(p.ID) >= 8 {
		return p.ID[:8]
	}
	return p.ID
}

// PlanDay is one persisted day of a plan's schedule with the amount logged
// against it.
type PlanDay struct {
	PlanID    string
	Date      calendar.Date
	Target    int
	Logged    int
	UpdatedAt time.Time
}

// Met reports whether the logged amount reached a non-zero target.
func (d PlanDay) Met() bool {
	return d.Target > 0 && d.Logged >= d.Target
}

// DisplaySettings holds free-form presentation settings stored as JSON.
type DisplaySettings map[string]any

// String returns the setting at key if it is a string.
func (s DisplaySettings) String(key string) string {
	if s == nil {
		return ""
	}
	v, _ := s[key].(string)
	return v
}

// WeekBegins returns the configured first weekday, defaulting to Monday.
func (s DisplaySettings) WeekBegins() time.Weekday {
	if strings.EqualFold(s.String("weekBegins"), "sunday") {
		return time.Sunday
	}
	return time.Monday
}

// Merge overlays other onto a copy of s.
func (s DisplaySettings) Merge(other DisplaySettings) DisplaySettings {
	out := make(DisplaySettings, len(s)+len(other))
	for k, v := range s {
		out[k] = v
	}
	for k, v := range other {
		out[k] = v
	}
	return out
}

// MarshalSettings encodes settings for storage; nil encodes as "{}".
func MarshalSettings(s DisplaySettings) (string, error) {
	if s == nil {
		return "{}", nil
	}
	b, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("encoding display settings: %w", err)
	}
	return string(b), nil
}

// UnmarshalSettings decodes stored settings; empty input yields nil.
func UnmarshalSettings(raw string) (DisplaySettings, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	var s DisplaySettings
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return nil, fmt.Errorf("decoding display settings: %w", err)
	}
	return s, nil
}

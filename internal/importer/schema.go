package importer

import (
	"encoding/json"
	"fmt"
	"os"
)

// ImportSchema is the top-level JSON structure for plan import and dump.
type ImportSchema struct {
	Plan     PlanImport       `json:"plan"`
	Progress []ProgressImport `json:"progress,omitempty"`
}

// PlanImport defines the plan-level fields in the import file. Empty enum
// fields take the usual defaults.
type PlanImport struct {
	Name            string         `json:"name"`
	ContentType     string         `json:"content_type,omitempty"`
	ActivityType    string         `json:"activity_type,omitempty"`
	StartDate       string         `json:"start_date"`
	EndDate         string         `json:"end_date"`
	GoalAmount      int            `json:"goal_amount"`
	Strategy        string         `json:"strategy,omitempty"`
	Intensity       string         `json:"intensity,omitempty"`
	WeekendRule     string         `json:"weekend_rule,omitempty"`
	Status          string         `json:"status,omitempty"`
	DisplaySettings map[string]any `json:"display_settings,omitempty"`
}

// ProgressImport is one day of the plan. Target is optional; when every
// day of the range carries one, the saved schedule is restored as is
// instead of being allocated again.
type ProgressImport struct {
	Date   string `json:"date"`
	Target *int   `json:"target,omitempty"`
	Logged int    `json:"logged"`
}

// HasTargets reports whether any entry carries a target.
func (s *ImportSchema) HasTargets() bool {
	for _, e := range s.Progress {
		if e.Target != nil {
			return true
		}
	}
	return false
}

// LoadImportSchema reads and parses a plan import JSON file.
func LoadImportSchema(path string) (*ImportSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var schema ImportSchema
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("parsing import file: %w", err)
	}
	return &schema, nil
}

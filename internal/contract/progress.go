package contract

import (
	"fmt"

	"github.com/alexanderramin/wordplan/internal/calendar"
)

// ProgressRequest records words written on one day of a plan. By default
// Count replaces the day's logged amount; with Add it is added to it.
type ProgressRequest struct {
	PlanID string        `json:"plan_id"`
	Date   calendar.Date `json:"date"`
	Count  int           `json:"count"`
	Add    bool          `json:"add,omitempty"`
}

// NewProgressRequest returns a replacing request for today.
func NewProgressRequest(planID string, count int) ProgressRequest {
	return ProgressRequest{PlanID: planID, Date: calendar.Today(), Count: count}
}

func (r ProgressRequest) Validate() error {
	if r.PlanID == "" {
		return fmt.Errorf("plan_id is required")
	}
	if r.Date.IsZero() {
		return fmt.Errorf("date is required")
	}
	if r.Count < 0 {
		return fmt.Errorf("count must not be negative (got %d)", r.Count)
	}
	return nil
}

// ProgressResponse reports the day after the write.
type ProgressResponse struct {
	PlanID string        `json:"plan_id"`
	Date   calendar.Date `json:"date"`
	Target int           `json:"target"`
	Logged int           `json:"logged"`
	Met    bool          `json:"met"`
}

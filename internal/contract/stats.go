package contract

import (
	"github.com/alexanderramin/wordplan/internal/calendar"
	"github.com/alexanderramin/wordplan/internal/domain"
)

// DailyStat is one day of a plan's target-versus-logged history.
type DailyStat struct {
	Date             calendar.Date `json:"date"`
	Target           int           `json:"target"`
	Logged           int           `json:"logged"`
	CumulativeTarget int           `json:"cumulative_target"`
	CumulativeLogged int           `json:"cumulative_logged"`
	Met              bool          `json:"met"`
}

// PlanStats summarizes progress on one plan as of a given day.
type PlanStats struct {
	PlanID          string            `json:"plan_id"`
	PlanName        string            `json:"plan_name"`
	Strategy        domain.Strategy   `json:"strategy"`
	GoalAmount      int               `json:"goal_amount"`
	TotalLogged     int               `json:"total_logged"`
	Remaining       int               `json:"remaining"`
	CompletionPct   float64           `json:"completion_pct"`
	ExpectedByToday int               `json:"expected_by_today"`
	AheadBy         int               `json:"ahead_by"`
	DaysTotal       int               `json:"days_total"`
	DaysElapsed     int               `json:"days_elapsed"`
	DaysMet         int               `json:"days_met"`
	CurrentStreak   int               `json:"current_streak"`
	BestDay         *DailyStat        `json:"best_day,omitempty"`
	Status          domain.PlanStatus `json:"status"`
	Daily           []DailyStat       `json:"daily_data"`
}

// GlobalStats aggregates every active plan of one owner.
type GlobalStats struct {
	OwnerID       string      `json:"owner_id"`
	ActivePlans   int         `json:"active_plans"`
	GoalAmount    int         `json:"goal_amount"`
	TotalLogged   int         `json:"total_logged"`
	CompletionPct float64     `json:"completion_pct"`
	DaysMet       int         `json:"days_met"`
	Plans         []PlanStats `json:"plans"`
	Daily         []DailyStat `json:"daily_data"`
}

// StatsRequest scopes a stats query. A zero AsOf means today.
type StatsRequest struct {
	PlanID  string
	OwnerID string
	AsOf    calendar.Date
}

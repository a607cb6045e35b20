package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/wordplan/internal/calendar"
	"github.com/alexanderramin/wordplan/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// FormatPlanList renders plans as a table inside a box.
func FormatPlanList(plans []*domain.Plan, today calendar.Date) string {
	headers := []string{"ID", "NAME", "GOAL", "STRATEGY", "RANGE", "ENDS", "STATUS"}
	rows := make([][]string, 0, len(plans))
	for _, p := range plans {
		ends := RelativeDay(p.EndDate, today)
		if p.EndDate.Before(today) {
			ends = Dim(ends)
		}
		rows = append(rows, []string{
			TruncID(p.ID),
			Bold(p.Name),
			Count(p.GoalAmount),
			StrategyBadge(p.Strategy),
			fmt.Sprintf("%s → %s", p.StartDate, p.EndDate),
			ends,
			StatusPill(p.Status),
		})
	}
	return RenderBox("Plans", RenderTable(headers, rows, 2))
}

// PlanInspectData is everything the inspect card shows.
type PlanInspectData struct {
	Plan       *domain.Plan
	Days       []domain.PlanDay
	Today      calendar.Date
	WeekStart  time.Weekday
	ShowMonths bool
}

// FormatPlanInspect renders plan metadata beside a progress summary, and
// optionally the month calendar below.
func FormatPlanInspect(data PlanInspectData) string {
	p := data.Plan

	var meta strings.Builder
	meta.WriteString(StyleBold.Render(p.Name) + "\n")
	if tag := strings.TrimSpace(strings.Join([]string{p.ContentType, p.ActivityType}, " ")); tag != "" {
		meta.WriteString(StylePurple.Render(tag) + "\n")
	}
	meta.WriteString("\n")
	meta.WriteString(Field("status", StatusPill(p.Status)) + "\n")
	meta.WriteString(Field("id", Dim(p.ID)) + "\n")
	meta.WriteString(Field("start", HumanDate(p.StartDate)) + "\n")
	meta.WriteString(Field("end", HumanDate(p.EndDate)) + "\n")
	meta.WriteString(Field("days", fmt.Sprintf("%d", p.DayCount())) + "\n")
	meta.WriteString(Field("goal", Bold(Count(p.GoalAmount))) + "\n")
	meta.WriteString(Field("strategy", StrategyBadge(p.Strategy)) + "\n")
	meta.WriteString(Field("intensity", string(p.Intensity)) + "\n")
	meta.WriteString(Field("weekends", string(p.WeekendRule)))

	var logged, expected int
	for _, d := range data.Days {
		logged += d.Logged
		if !d.Date.After(data.Today) {
			expected += d.Target
		}
	}
	var prog strings.Builder
	prog.WriteString(Header("Progress") + "\n")
	prog.WriteString(RenderProgress(ratio(logged, p.GoalAmount), 24) + "\n\n")
	prog.WriteString(Field("logged", Count(logged)) + "\n")
	prog.WriteString(Field("expected", Count(expected)) + "\n")
	prog.WriteString(Field("pace", Delta(logged-expected)))

	body := lipgloss.JoinHorizontal(lipgloss.Top, meta.String(), "    ", prog.String())
	if data.ShowMonths && len(data.Days) > 0 {
		body += "\n\n" + RenderCalendar(PlanCalendarDays(data.Days), data.WeekStart, data.Today)
	}
	return RenderBox("", body)
}

// FormatSchedule renders day rows with running totals.
func FormatSchedule(days []domain.PlanDay, today calendar.Date) string {
	headers := []string{"DATE", "DAY", "TARGET", "LOGGED", "CUM TARGET", "CUM LOGGED", ""}
	rows := make([][]string, 0, len(days))
	var cumTarget, cumLogged int
	for _, d := range days {
		cumTarget += d.Target
		cumLogged += d.Logged
		mark := ""
		switch {
		case d.Met():
			mark = StyleGreen.Render("✔")
		case d.Target > 0 && d.Date.Before(today):
			mark = StyleRed.Render("✖")
		}
		date := d.Date.String()
		if d.Date.Equal(today) {
			date = StyleBold.Render(date)
		}
		rows = append(rows, []string{
			date,
			d.Date.Weekday().String()[:3],
			Count(d.Target),
			Count(d.Logged),
			Count(cumTarget),
			Count(cumLogged),
			mark,
		})
	}
	return RenderTable(headers, rows, 2, 3, 4, 5)
}

// PlanCalendarDays adapts stored rows for RenderCalendar.
func PlanCalendarDays(days []domain.PlanDay) []CalendarDay {
	out := make([]CalendarDay, len(days))
	for i, d := range days {
		out[i] = CalendarDay{Date: d.Date, Target: d.Target, Logged: d.Logged, Tracked: true}
	}
	return out
}

func ratio(part, whole int) float64 {
	if whole <= 0 {
		return 0
	}
	return float64(part) / float64(whole)
}

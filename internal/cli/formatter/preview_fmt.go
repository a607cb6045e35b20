package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/wordplan/internal/allocator"
	"github.com/alexanderramin/wordplan/internal/calendar"
)

// PreviewSummary describes a computed schedule at a glance.
type PreviewSummary struct {
	Total   int
	Days    int
	Min     int
	Max     int
	Average float64
	// ZeroDays counts days with no target, e.g. weekends off.
	ZeroDays int
}

func Summarize(targets []allocator.DailyTarget) PreviewSummary {
	s := PreviewSummary{Days: len(targets)}
	for i, t := range targets {
		s.Total += t.Target
		if i == 0 || t.Target < s.Min {
			s.Min = t.Target
		}
		s.Max = max(s.Max, t.Target)
		if t.Target == 0 {
			s.ZeroDays++
		}
	}
	if s.Days > 0 {
		s.Average = float64(s.Total) / float64(s.Days)
	}
	return s
}

// FormatPreview renders a summary line and the month calendar of targets.
func FormatPreview(req allocator.Request, targets []allocator.DailyTarget, weekStart time.Weekday, today calendar.Date) string {
	s := Summarize(targets)

	var b strings.Builder
	b.WriteString(Field("total", Bold(Count(s.Total))) + "\n")
	b.WriteString(Field("range", fmt.Sprintf("%s → %s (%d days)", req.Start, req.End, s.Days)) + "\n")
	b.WriteString(Field("strategy", StrategyBadge(req.Strategy)+Dim(fmt.Sprintf("  %s, %s", req.Intensity, req.WeekendRule))) + "\n")
	b.WriteString(Field("daily", fmt.Sprintf("min %s  avg %s  max %s", Count(s.Min), Count(int(s.Average+0.5)), Count(s.Max))))
	if s.ZeroDays > 0 {
		b.WriteString(Dim(fmt.Sprintf("  (%d rest days)", s.ZeroDays)))
	}
	b.WriteString("\n\n")

	cells := make([]CalendarDay, len(targets))
	for i, t := range targets {
		cells[i] = CalendarDay{Date: t.Date, Target: t.Target}
	}
	b.WriteString(RenderCalendar(cells, weekStart, today))
	return RenderBox("Preview", strings.TrimRight(b.String(), "\n"))
}

// WeekStart parses a week_begins setting, defaulting to Monday.
func WeekStart(s string) time.Weekday {
	if strings.EqualFold(s, "sunday") {
		return time.Sunday
	}
	return time.Monday
}

package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/wordplan/internal/calendar"
	"github.com/charmbracelet/lipgloss"
)

// CalendarDay is one cell of the month view. Tracked marks days that belong
// to a saved plan, where logged amounts mean something.
type CalendarDay struct {
	Date    calendar.Date
	Target  int
	Logged  int
	Tracked bool
}

const cellWidth = 7

// RenderCalendar renders every month touched by days, in order, as a grid of
// weeks starting on weekStart. Past tracked days are colored by whether the
// target was met.
func RenderCalendar(days []CalendarDay, weekStart time.Weekday, today calendar.Date) string {
	if len(days) == 0 {
		return ""
	}
	byDate := make(map[string]CalendarDay, len(days))
	for _, d := range days {
		byDate[d.Date.String()] = d
	}

	var months []string
	first, last := days[0].Date, days[len(days)-1].Date
	for m := calendar.New(first.Year(), first.Month(), 1); !m.After(last); m = calendar.New(m.Year(), m.Month()+1, 1) {
		months = append(months, renderMonth(m, byDate, weekStart, today))
	}
	return strings.Join(months, "\n")
}

func renderMonth(month calendar.Date, byDate map[string]CalendarDay, weekStart time.Weekday, today calendar.Date) string {
	var b strings.Builder
	b.WriteString(StyleHeader.Render(month.Time().Format("January 2006")))
	b.WriteString("\n")

	for i := 0; i < 7; i++ {
		wd := time.Weekday((int(weekStart) + i) % 7)
		b.WriteString(StyleDim.Render(pad(wd.String()[:3], cellWidth)))
	}
	b.WriteString("\n")

	for _, week := range calendar.MonthGrid(month, weekStart) {
		var nums, targets strings.Builder
		for _, d := range week {
			if d.IsZero() {
				nums.WriteString(strings.Repeat(" ", cellWidth))
				targets.WriteString(strings.Repeat(" ", cellWidth))
				continue
			}
			numStyle := StyleDim
			if d.Equal(today) {
				numStyle = StyleBold.Underline(true)
			}
			nums.WriteString(numStyle.Render(pad(fmt.Sprintf("%2d", d.Day()), cellWidth)))

			day, ok := byDate[d.String()]
			if !ok {
				targets.WriteString(strings.Repeat(" ", cellWidth))
				continue
			}
			targets.WriteString(cellStyle(day, today).Render(pad(compactCount(day.Target), cellWidth)))
		}
		b.WriteString(strings.TrimRight(nums.String(), " "))
		b.WriteString("\n")
		b.WriteString(strings.TrimRight(targets.String(), " "))
		b.WriteString("\n")
	}
	return b.String()
}

func cellStyle(d CalendarDay, today calendar.Date) lipgloss.Style {
	switch {
	case d.Target == 0:
		return StyleDim
	case !d.Tracked:
		return StyleFg
	case d.Logged >= d.Target:
		return StyleGreen
	case d.Date.Before(today) && d.Logged > 0:
		return StyleYellow
	case d.Date.Before(today):
		return StyleRed
	default:
		return StyleFg
	}
}

// compactCount keeps targets inside a calendar cell: 1,667 stays, 12,500
// becomes 12.5k.
func compactCount(n int) string {
	if n < 10000 {
		return Count(n)
	}
	return fmt.Sprintf("%.1fk", float64(n)/1000)
}

func pad(s string, w int) string {
	return s + strings.Repeat(" ", max(0, w-lipgloss.Width(s)))
}

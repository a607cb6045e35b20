package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/wordplan/internal/calendar"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		return boxStyle.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// Count formats a word count with thousands separators.
func Count(n int) string {
	return humanize.Comma(int64(n))
}

// TruncID shortens a UUID to its first 8 characters.
func TruncID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// HumanDate renders d like "Fri Nov 1, 2024".
func HumanDate(d calendar.Date) string {
	if d.IsZero() {
		return "--"
	}
	return d.Time().Format("Mon Jan 2, 2006")
}

// RelativeDay describes d relative to today in whole days.
func RelativeDay(d, today calendar.Date) string {
	days := d.Sub(today)
	switch {
	case days == 0:
		return "Today"
	case days == 1:
		return "Tomorrow"
	case days == -1:
		return "Yesterday"
	case days > 0 && days < 14:
		return fmt.Sprintf("In %dd", days)
	case days > 0 && days < 60:
		return fmt.Sprintf("In %dw", days/7)
	case days > 0:
		return fmt.Sprintf("In %dmo", days/30)
	case days > -14:
		return fmt.Sprintf("%dd ago", -days)
	case days > -60:
		return fmt.Sprintf("%dw ago", -days/7)
	default:
		return fmt.Sprintf("%dmo ago", -days/30)
	}
}

// Field renders one "LABEL  value" line with a fixed-width dim label.
func Field(label string, value string) string {
	return fmt.Sprintf("%s  %s", StyleDim.Render(fmt.Sprintf("%-9s", strings.ToUpper(label))), value)
}

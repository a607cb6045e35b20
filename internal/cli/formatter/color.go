package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/wordplan/internal/domain"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// DisableColor renders everything as plain text from here on.
func DisableColor() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

// PctColor picks green, yellow or red for a 0..1 completion ratio.
func PctColor(pct float64) lipgloss.Color {
	switch {
	case pct >= 0.66:
		return ColorGreen
	case pct >= 0.33:
		return ColorYellow
	default:
		return ColorRed
	}
}

// StatusPill returns a colored indicator for a plan's status.
func StatusPill(status domain.PlanStatus) string {
	switch status {
	case domain.PlanActive:
		return StyleGreen.Render("● Active")
	case domain.PlanArchived:
		return StyleDim.Render("✖ Archived")
	default:
		return StyleDim.Render(string(status))
	}
}

var strategyGlyphs = map[domain.Strategy]string{
	domain.StrategySteady:      "━",
	domain.StrategyRising:      "↗",
	domain.StrategyBiting:      "↘",
	domain.StrategyMountain:    "∧",
	domain.StrategyValley:      "∨",
	domain.StrategyOscillating: "∿",
	domain.StrategyRandom:      "⁂",
}

// StrategyBadge renders a strategy name with a glyph hinting at its shape.
func StrategyBadge(s domain.Strategy) string {
	glyph, ok := strategyGlyphs[s]
	if !ok {
		return StyleDim.Render(string(s))
	}
	return StylePurple.Render(glyph + " " + string(s))
}

// Delta renders a signed difference, green when ahead and red when behind.
func Delta(n int) string {
	switch {
	case n > 0:
		return StyleGreen.Render("+" + Count(n))
	case n < 0:
		return StyleRed.Render("-" + Count(-n))
	default:
		return StyleDim.Render("±0")
	}
}

// Header renders an uppercase section header with an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}

package formatter

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// RenderProgress renders a solid bar followed by the percentage. pct is a
// 0..1 ratio and is clamped; the label shows the unclamped value so
// overshooting a goal reads as e.g. 120%.
func RenderProgress(pct float64, width int) string {
	shown := min(max(pct, 0), 1)
	width = max(width, 4)

	bar := progress.New(
		progress.WithSolidFill(string(PctColor(shown))),
		progress.WithWidth(width),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(ColorDim)

	label := lipgloss.NewStyle().Foreground(PctColor(shown)).Bold(true).
		Render(fmt.Sprintf("%3.0f%%", max(pct, 0)*100))
	return bar.ViewAs(shown) + " " + label
}

package export

import (
	"fmt"
	"os"

	"github.com/alexanderramin/wordplan/internal/domain"
	"github.com/dustin/go-humanize"
	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

var (
	pdfHeaderColor = props.Color{Red: 50, Green: 50, Blue: 50}
	pdfMutedColor  = props.Color{Red: 120, Green: 120, Blue: 120}
	pdfLineColor   = props.Color{Red: 200, Green: 200, Blue: 200}
	pdfMetColor    = props.Color{Red: 60, Green: 130, Blue: 70}
)

// Schedule is the content of an exported plan schedule. Plan may be a
// preview that was never saved; IncludeLogged adds the logged column.
type Schedule struct {
	Plan          *domain.Plan
	Days          []domain.PlanDay
	IncludeLogged bool
}

// RenderPDF lays out the schedule as an A4 document with one row per day and
// a subtotal after each month.
func RenderPDF(s Schedule) ([]byte, error) {
	if s.Plan == nil {
		return nil, fmt.Errorf("rendering PDF: plan is required")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(15).
		WithTopMargin(15).
		WithRightMargin(15).
		Build()

	m := maroto.New(cfg)

	p := s.Plan
	m.AddRow(14,
		text.NewCol(12, p.Name, props.Text{Style: fontstyle.Bold, Size: 16, Color: &pdfHeaderColor}),
	)
	m.AddRow(8,
		text.NewCol(12, fmt.Sprintf("%s words, %s to %s (%d days)",
			comma(p.GoalAmount), p.StartDate, p.EndDate, p.DayCount()),
			props.Text{Size: 11, Color: &pdfMutedColor}),
	)
	m.AddRow(6,
		text.NewCol(12, fmt.Sprintf("Strategy %s, intensity %s, weekends %s",
			p.Strategy, p.Intensity, p.WeekendRule),
			props.Text{Size: 9, Color: &pdfMutedColor}),
	)
	m.AddRow(4, line.NewCol(12, props.Line{Color: &pdfLineColor}))
	m.AddRow(4)

	heading := props.Text{Style: fontstyle.Bold, Size: 9, Color: &pdfHeaderColor}
	headingRight := heading
	headingRight.Align = align.Right
	if s.IncludeLogged {
		m.AddRow(7,
			text.NewCol(4, "Date", heading),
			text.NewCol(2, "Target", headingRight),
			text.NewCol(2, "Logged", headingRight),
			text.NewCol(4, "Cumulative", headingRight),
		)
	} else {
		m.AddRow(7,
			text.NewCol(6, "Date", heading),
			text.NewCol(2, "Target", headingRight),
			text.NewCol(4, "Cumulative", headingRight),
		)
	}

	cell := props.Text{Size: 9}
	cellRight := props.Text{Size: 9, Align: align.Right}
	var cum, monthTotal int
	for i, d := range s.Days {
		cum += d.Target
		monthTotal += d.Target
		label := d.Date.Time().Format("Mon Jan 2")

		if s.IncludeLogged {
			logged := cellRight
			if d.Met() {
				logged.Color = &pdfMetColor
			}
			m.AddRow(5,
				text.NewCol(4, label, cell),
				text.NewCol(2, comma(d.Target), cellRight),
				text.NewCol(2, comma(d.Logged), logged),
				text.NewCol(4, comma(cum), cellRight),
			)
		} else {
			m.AddRow(5,
				text.NewCol(6, label, cell),
				text.NewCol(2, comma(d.Target), cellRight),
				text.NewCol(4, comma(cum), cellRight),
			)
		}

		lastOfMonth := i == len(s.Days)-1 || s.Days[i+1].Date.Month() != d.Date.Month()
		if lastOfMonth {
			m.AddRow(6,
				text.NewCol(8, d.Date.Time().Format("January 2006")+" total", props.Text{
					Style: fontstyle.Italic, Size: 8, Color: &pdfMutedColor,
				}),
				text.NewCol(4, comma(monthTotal), props.Text{
					Style: fontstyle.Italic, Size: 8, Align: align.Right, Color: &pdfMutedColor,
				}),
			)
			m.AddRow(3)
			monthTotal = 0
		}
	}

	m.AddRow(4, line.NewCol(12, props.Line{Color: &pdfLineColor}))
	m.AddRow(10,
		text.NewCol(8, "Total", props.Text{Style: fontstyle.Bold, Size: 12, Color: &pdfHeaderColor}),
		text.NewCol(4, comma(cum), props.Text{
			Style: fontstyle.Bold, Size: 12, Align: align.Right, Color: &pdfHeaderColor,
		}),
	)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generating PDF: %w", err)
	}
	return doc.GetBytes(), nil
}

// SavePDF renders s and writes it to path.
func SavePDF(s Schedule, path string) error {
	b, err := RenderPDF(s)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("writing PDF: %w", err)
	}
	return nil
}

func comma(n int) string {
	return humanize.Comma(int64(n))
}

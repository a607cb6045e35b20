package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/wordplan/internal/contract"
)

// FormatPlanStats renders one plan's progress summary and recent days.
func FormatPlanStats(st contract.PlanStats, recent int) string {
	var b strings.Builder
	b.WriteString(StyleBold.Render(st.PlanName) + "  " + StrategyBadge(st.Strategy) + "  " + StatusPill(st.Status) + "\n\n")
	b.WriteString(RenderProgress(st.CompletionPct/100, 32) + "\n\n")
	b.WriteString(Field("logged", fmt.Sprintf("%s of %s", Bold(Count(st.TotalLogged)), Count(st.GoalAmount))) + "\n")
	b.WriteString(Field("remaining", Count(st.Remaining)) + "\n")
	b.WriteString(Field("pace", Delta(st.AheadBy)+Dim(fmt.Sprintf("  (expected %s by today)", Count(st.ExpectedByToday)))) + "\n")
	b.WriteString(Field("days", fmt.Sprintf("%d of %d elapsed", st.DaysElapsed, st.DaysTotal)) + "\n")
	b.WriteString(Field("met", fmt.Sprintf("%d days", st.DaysMet)) + "\n")
	b.WriteString(Field("streak", streak(st.CurrentStreak)))
	if st.BestDay != nil {
		b.WriteString("\n" + Field("best", fmt.Sprintf("%s on %s", Count(st.BestDay.Logged), HumanDate(st.BestDay.Date))))
	}

	if rows := recentRows(st.Daily, recent); len(rows) > 0 {
		b.WriteString("\n\n" + Header("Recent days") + "\n")
		b.WriteString(RenderTable([]string{"DATE", "TARGET", "LOGGED", "CUMULATIVE", ""}, rows, 1, 2, 3))
	}
	return RenderBox("Stats", strings.TrimRight(b.String(), "\n"))
}

// FormatGlobalStats renders totals across plans followed by one bar per plan.
func FormatGlobalStats(gs contract.GlobalStats) string {
	var b strings.Builder
	b.WriteString(RenderProgress(gs.CompletionPct/100, 32) + "\n\n")
	b.WriteString(Field("plans", fmt.Sprintf("%d active", gs.ActivePlans)) + "\n")
	b.WriteString(Field("logged", fmt.Sprintf("%s of %s", Bold(Count(gs.TotalLogged)), Count(gs.GoalAmount))) + "\n")
	b.WriteString(Field("met", fmt.Sprintf("%d days", gs.DaysMet)))

	if len(gs.Plans) > 0 {
		b.WriteString("\n\n" + Header("By plan") + "\n")
		rows := make([][]string, 0, len(gs.Plans))
		for _, p := range gs.Plans {
			rows = append(rows, []string{
				TruncID(p.PlanID),
				Bold(p.PlanName),
				RenderProgress(p.CompletionPct/100, 16),
				Count(p.TotalLogged) + Dim(" / "+Count(p.GoalAmount)),
				Delta(p.AheadBy),
			})
		}
		b.WriteString(RenderTable([]string{"ID", "PLAN", "PROGRESS", "WORDS", "PACE"}, rows, 3, 4))
	}
	return RenderBox("Overall", strings.TrimRight(b.String(), "\n"))
}

// recentRows returns up to n elapsed days, most recent last.
func recentRows(daily []contract.DailyStat, n int) [][]string {
	if n <= 0 {
		return nil
	}
	var elapsed []contract.DailyStat
	for _, d := range daily {
		if d.Logged > 0 || d.Met {
			elapsed = append(elapsed, d)
		}
	}
	if len(elapsed) > n {
		elapsed = elapsed[len(elapsed)-n:]
	}
	rows := make([][]string, 0, len(elapsed))
	for _, d := range elapsed {
		mark := ""
		if d.Met {
			mark = StyleGreen.Render("✔")
		}
		rows = append(rows, []string{
			d.Date.String(),
			Count(d.Target),
			Count(d.Logged),
			Count(d.CumulativeLogged) + Dim(" / "+Count(d.CumulativeTarget)),
			mark,
		})
	}
	return rows
}

func streak(n int) string {
	switch n {
	case 0:
		return Dim("none")
	case 1:
		return StyleYellow.Render("1 day")
	default:
		return StyleGreen.Render(fmt.Sprintf("%d days", n))
	}
}

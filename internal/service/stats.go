package service

import (
	"sort"

	"github.com/alexanderramin/wordplan/internal/calendar"
	"github.com/alexanderramin/wordplan/internal/contract"
	"github.com/alexanderramin/wordplan/internal/domain"
)

// computePlanStats summarizes days (ordered by date) as of asOf.
func computePlanStats(plan *domain.Plan, days []domain.PlanDay, asOf calendar.Date) contract.PlanStats {
	st := contract.PlanStats{
		PlanID:     plan.ID,
		PlanName:   plan.Name,
		Strategy:   plan.Strategy,
		GoalAmount: plan.GoalAmount,
		DaysTotal:  len(days),
		Status:     plan.Status,
		Daily:      cumulate(days),
	}

	for i, d := range st.Daily {
		st.TotalLogged += d.Logged
		if d.Met {
			st.DaysMet++
		}
		if !d.Date.After(asOf) {
			st.DaysElapsed++
			st.ExpectedByToday += d.Target
		}
		if d.Logged > 0 && (st.BestDay == nil || d.Logged > st.BestDay.Logged) {
			st.BestDay = &st.Daily[i]
		}
	}

	st.Remaining = max(0, plan.GoalAmount-st.TotalLogged)
	st.CompletionPct = percent(st.TotalLogged, plan.GoalAmount)
	st.AheadBy = st.TotalLogged - st.ExpectedByToday
	st.CurrentStreak = currentStreak(st.Daily, asOf)
	return st
}

// cumulate converts day rows into stats with running totals.
func cumulate(days []domain.PlanDay) []contract.DailyStat {
	out := make([]contract.DailyStat, len(days))
	var cumTarget, cumLogged int
	for i, d := range days {
		cumTarget += d.Target
		cumLogged += d.Logged
		out[i] = contract.DailyStat{
			Date:             d.Date,
			Target:           d.Target,
			Logged:           d.Logged,
			CumulativeTarget: cumTarget,
			CumulativeLogged: cumLogged,
			Met:              d.Met(),
		}
	}
	return out
}

// currentStreak counts consecutive met days ending at asOf, or at the last
// day when the plan is over. Zero-target days neither extend nor break a
// streak. A day that is still unmet on asOf itself is skipped, since the
// writer may not be done yet.
func currentStreak(daily []contract.DailyStat, asOf calendar.Date) int {
	i := len(daily) - 1
	for i >= 0 && daily[i].Date.After(asOf) {
		i--
	}
	if i >= 0 && daily[i].Date.Equal(asOf) && !daily[i].Met {
		i--
	}

	streak := 0
	for ; i >= 0; i-- {
		d := daily[i]
		if d.Target == 0 {
			continue
		}
		if !d.Met {
			break
		}
		streak++
	}
	return streak
}

// mergeDaily sums several plans' daily stats by date.
func mergeDaily(plans []contract.PlanStats) []contract.DailyStat {
	byDate := map[string]*domain.PlanDay{}
	for _, p := range plans {
		for _, d := range p.Daily {
			agg, ok := byDate[d.Date.String()]
			if !ok {
				agg = &domain.PlanDay{Date: d.Date}
				byDate[d.Date.String()] = agg
			}
			agg.Target += d.Target
			agg.Logged += d.Logged
		}
	}

	days := make([]domain.PlanDay, 0, len(byDate))
	for _, d := range byDate {
		days = append(days, *d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date.Before(days[j].Date) })
	return cumulate(days)
}

func percent(part, whole int) float64 {
	if whole <= 0 {
		if part > 0 {
			return 100
		}
		return 0
	}
	return float64(part) / float64(whole) * 100
}

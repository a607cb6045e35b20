package allocator

import (
	"github.com/alexanderramin/wordplan/internal/calendar"
	"github.com/alexanderramin/wordplan/internal/domain"
)

var weekendFactors = map[domain.WeekendRule]float64{
	domain.WeekendNone: 1,
	domain.WeekendOff:  0,
	domain.WeekendHalf: 0.5,
}

// applyWeekendRule scales weekend weights in place and hands the removed
// weight to the weekdays in proportion to their own weight, so the total
// weight is unchanged. It returns which days may receive an amount when the
// weights collapse to zero and an even split is needed.
func applyWeekendRule(days []calendar.Date, weights []float64, rule domain.WeekendRule) []bool {
	factor, ok := weekendFactors[rule]
	if !ok {
		factor = 1
	}

	eligible := make([]bool, len(days))
	for i := range eligible {
		eligible[i] = true
	}
	if factor == 1 {
		return eligible
	}

	var removed, kept float64
	hasWeekday := false
	for i, d := range days {
		if d.IsWeekend() {
			cut := weights[i] * (1 - factor)
			weights[i] -= cut
			removed += cut
			continue
		}
		hasWeekday = true
		kept += weights[i]
	}

	if factor == 0 && hasWeekday {
		for i, d := range days {
			eligible[i] = !d.IsWeekend()
		}
	}

	if removed == 0 || kept == 0 {
		return eligible
	}
	for i, d := range days {
		if !d.IsWeekend() {
			weights[i] += removed * weights[i] / kept
		}
	}
	return eligible
}

package allocator

import (
	"math/rand"
	"testing"

	"github.com/alexanderramin/wordplan/internal/calendar"
	"github.com/alexanderramin/wordplan/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestAllocate_Invariants property-tests sum, length, ordering and
// non-negativity over random requests for every strategy, intensity and
// weekend rule.
func TestAllocate_Invariants(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	base := calendar.MustParse("2023-06-01")

	for trial := 0; trial < 300; trial++ {
		start := base.AddDays(rng.Intn(400))
		n := rng.Intn(120) + 1
		end := start.AddDays(n - 1)

		var total int
		switch rng.Intn(4) {
		case 0:
			total = 0
		case 1:
			total = rng.Intn(n) // fewer units than days
		default:
			total = rng.Intn(200000)
		}

		r := Request{
			Total:       total,
			Start:       start,
			End:         end,
			Strategy:    domain.Strategies[rng.Intn(len(domain.Strategies))],
			Intensity:   domain.Intensities[rng.Intn(len(domain.Intensities))],
			WeekendRule: domain.WeekendRules[rng.Intn(len(domain.WeekendRules))],
		}

		out, err := Allocate(r)
		require.NoError(t, err, "trial %d: %+v", trial, r)

		// Invariant 1: one entry per calendar day.
		require.Len(t, out, n, "trial %d", trial)

		// Invariant 2: exact sum.
		assert.Equal(t, total, Sum(out), "trial %d: %+v", trial, r)

		// Invariant 3: contiguous ascending dates bounded by the range.
		assert.True(t, out[0].Date.Equal(start), "trial %d: first date", trial)
		assert.True(t, out[n-1].Date.Equal(end), "trial %d: last date", trial)
		for i := 1; i < n; i++ {
			assert.Equal(t, 1, out[i].Date.Sub(out[i-1].Date), "trial %d day %d", trial, i)
		}

		// Invariant 4: no negative targets.
		for i, d := range out {
			assert.GreaterOrEqual(t, d.Target, 0, "trial %d day %d", trial, i)
		}

		// Invariant 5: weekends-off leaves weekend days empty whenever the
		// range has a weekday to carry the amount.
		if r.WeekendRule == domain.WeekendOff {
			hasWeekday := false
			for _, d := range out {
				if !d.Date.IsWeekend() {
					hasWeekday = true
				}
			}
			if hasWeekday {
				for _, d := range out {
					if d.Date.IsWeekend() {
						assert.Equal(t, 0, d.Target, "trial %d: weekend %s", trial, d.Date)
					}
				}
			}
		}
	}
}

// TestAllocate_SteadyNeverDriftsMoreThanOne checks that a flat curve keeps
// every day within one unit of the exact share.
func TestAllocate_SteadyNeverDriftsMoreThanOne(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	start := calendar.MustParse("2024-01-01")

	for trial := 0; trial < 100; trial++ {
		n := rng.Intn(365) + 1
		total := rng.Intn(100000)
		out, err := Allocate(Request{
			Total:    total,
			Start:    start,
			End:      start.AddDays(n - 1),
			Strategy: domain.StrategySteady,
		})
		require.NoError(t, err)

		share := float64(total) / float64(n)
		for i, d := range out {
			assert.InDelta(t, share, float64(d.Target), 1.0, "trial %d day %d", trial, i)
		}
	}
}

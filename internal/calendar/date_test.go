package calendar

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_RoundTrip(t *testing.T) {
	d, err := Parse("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, 2024, d.Year())
	assert.Equal(t, time.February, d.Month())
	assert.Equal(t, 29, d.Day())
	assert.Equal(t, "2024-02-29", d.String())
}

func TestParse_Invalid(t *testing.T) {
	for _, in := range []string{"", "2024-13-01", "2024/01/01", "01-02-2024", "2023-02-29"} {
		_, err := Parse(in)
		assert.Error(t, err, "should reject %q", in)
	}
}

func TestFromTime_IgnoresZone(t *testing.T) {
	// 23:30 on Jan 1 in UTC-8 is already Jan 2 in UTC; the calendar day
	// must follow the wall clock of the given location.
	loc := time.FixedZone("PST", -8*3600)
	tm := time.Date(2024, 1, 1, 23, 30, 0, 0, loc)
	assert.Equal(t, "2024-01-01", FromTime(tm).String())
}

func TestAddDays_AcrossDST(t *testing.T) {
	// US DST started 2024-03-10; UTC arithmetic must not lose or gain a day.
	d := MustParse("2024-03-09")
	assert.Equal(t, "2024-03-10", d.AddDays(1).String())
	assert.Equal(t, "2024-03-11", d.AddDays(2).String())
	assert.Equal(t, 2, d.AddDays(2).Sub(d))
}

func TestIsWeekend(t *testing.T) {
	assert.True(t, MustParse("2024-01-06").IsWeekend())  // Sat
	assert.True(t, MustParse("2024-01-07").IsWeekend())  // Sun
	assert.False(t, MustParse("2024-01-08").IsWeekend()) // Mon
}

func TestBetween(t *testing.T) {
	start, end := MustParse("2024-01-01"), MustParse("2024-01-31")
	assert.True(t, start.Between(start, end))
	assert.True(t, end.Between(start, end))
	assert.False(t, MustParse("2024-02-01").Between(start, end))
}

func TestDate_JSON(t *testing.T) {
	type payload struct {
		Date Date `json:"date"`
	}
	b, err := json.Marshal(payload{Date: MustParse("2024-05-01")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"date":"2024-05-01"}`, string(b))

	var p payload
	require.NoError(t, json.Unmarshal([]byte(`{"date":"2025-12-31"}`), &p))
	assert.Equal(t, "2025-12-31", p.Date.String())

	assert.Error(t, json.Unmarshal([]byte(`{"date":"nope"}`), &p))
}

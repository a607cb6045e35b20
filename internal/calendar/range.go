package calendar

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"
)

// DaysInclusive returns the number of calendar days in [start, end]. It is
// zero or negative when end is before start.
func DaysInclusive(start, end Date) int {
	return end.Sub(start) + 1
}

// Days enumerates every date in [start, end] in ascending order. Callers are
// expected to bound the range first; see DaysInclusive.
func Days(start, end Date) ([]Date, error) {
	if end.Before(start) {
		return nil, fmt.Errorf("end %s is before start %s", end, start)
	}
	r, err := rrule.NewRRule(rrule.ROption{
		Freq:    rrule.DAILY,
		Dtstart: start.Time(),
		Until:   end.Time(),
	})
	if err != nil {
		return nil, fmt.Errorf("building daily rule: %w", err)
	}
	occurrences := r.All()
	days := make([]Date, len(occurrences))
	for i, t := range occurrences {
		days[i] = FromTime(t)
	}
	return days, nil
}

// MonthGrid returns the days of the month containing d, padded with zero
// Dates so the first row begins on weekStart. Rows are always 7 cells wide.
func MonthGrid(d Date, weekStart time.Weekday) [][]Date {
	first := New(d.Year(), d.Month(), 1)
	last := New(d.Year(), d.Month()+1, 0)

	lead := (int(first.Weekday()) - int(weekStart) + 7) % 7

	var cells []Date
	for i := 0; i < lead; i++ {
		cells = append(cells, Date{})
	}
	for day := first; !day.After(last); day = day.AddDays(1) {
		cells = append(cells, day)
	}
	for len(cells)%7 != 0 {
		cells = append(cells, Date{})
	}

	rows := make([][]Date, 0, len(cells)/7)
	for i := 0; i < len(cells); i += 7 {
		rows = append(rows, cells[i:i+7])
	}
	return rows
}

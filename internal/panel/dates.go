package panel

import (
	"time"

	"ustpanel/internal/errors"
)

// BusinessDates returns every weekday in [start, end] inclusive, in order.
// Only Saturdays and Sundays are removed; public holidays stay in the grid.
func BusinessDates(start, end time.Time) ([]time.Time, error) {
	start = Midnight(start)
	end = Midnight(end)
	if end.Before(start) {
		return nil, errors.NewInvalidRange(start, end)
	}

	var dates []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if wd := d.Weekday(); wd == time.Saturday || wd == time.Sunday {
			continue
		}
		dates = append(dates, d)
	}
	return dates, nil
}

// Midnight truncates a time to its calendar date in UTC. All pipeline dates
// are normalized this way so they compare and hash as plain dates.
func Midnight(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

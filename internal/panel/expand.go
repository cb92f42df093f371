package panel

import (
	"sort"
	"time"
)

// Expand densifies the event-indexed input: each cusip's static attributes
// are repeated across every business date of its active window. The window
// for row existence runs from announcement to maturity, so an announced but
// not yet issued security is present (it participates in vintage ranking as
// when-issued); attribute population starts only at first issuance.
func Expand(secs map[string]ClassifiedSecurity, grid []time.Time) []Row {
	cusips := make([]string, 0, len(secs))
	for cusip := range secs {
		cusips = append(cusips, cusip)
	}
	sort.Strings(cusips)

	var rows []Row
	for _, cusip := range cusips {
		sec := secs[cusip]
		for _, d := range grid {
			if d.Before(sec.AnnouncementDate) || d.After(sec.MaturityDate) {
				continue
			}
			row := Row{
				Date:             d,
				Cusip:            sec.Cusip,
				Tenor:            sec.Tenor,
				MaturityDate:     sec.MaturityDate,
				FirstIssueDate:   sec.FirstIssueDate,
				InflationIndexed: sec.InflationIndexed,
				FloatingRate:     sec.FloatingRate,
				SecurityType:     sec.Type,
			}
			if !row.IsWhenIssued() {
				row.Coupon = sec.Coupon
			}
			rows = append(rows, row)
		}
	}
	return rows
}

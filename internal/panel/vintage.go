package panel

import (
	"sort"
	"time"
)

// vintageGroup keys the securities that compete for the same vintage
// ordering: same date, base type, TIPS and FRN attributes, and tenor. The
// attribute split keeps a 5-year TIPS from ranking against a 5-year nominal.
type vintageGroup struct {
	Date             time.Time
	Type             SecurityType
	InflationIndexed bool
	FloatingRate     bool
	Tenor            int
}

// RankVintages assigns each row its vintage in place. Within a group,
// issued securities are ordered by first issue date descending, ties broken
// by cusip, and numbered 0..n-1; vintage 0 is the on-the-run security.
// When-issued rows are forced to -1 and excluded from the ordinal sequence.
func RankVintages(rows []Row) {
	groups := make(map[vintageGroup][]int)
	for i := range rows {
		key := vintageGroup{
			Date:             rows[i].Date,
			Type:             rows[i].SecurityType,
			InflationIndexed: rows[i].InflationIndexed,
			FloatingRate:     rows[i].FloatingRate,
			Tenor:            rows[i].Tenor,
		}
		groups[key] = append(groups[key], i)
	}

	for _, members := range groups {
		issued := members[:0:0]
		for _, idx := range members {
			if rows[idx].IsWhenIssued() {
				rows[idx].Vintage = WhenIssued
			} else {
				issued = append(issued, idx)
			}
		}
		sort.Slice(issued, func(a, b int) bool {
			ra, rb := rows[issued[a]], rows[issued[b]]
			if !ra.FirstIssueDate.Equal(rb.FirstIssueDate) {
				return ra.FirstIssueDate.After(rb.FirstIssueDate)
			}
			return ra.Cusip < rb.Cusip
		})
		for rank, idx := range issued {
			rows[idx].Vintage = rank
		}
	}
}

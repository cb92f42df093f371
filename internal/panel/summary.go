package panel

import (
	"fmt"
	"io"
	"sort"
	"time"
)

// TenorStats aggregates panel observations for one tenor
type TenorStats struct {
	Tenor            int
	UniqueCusips     int
	AvgDailyVintages float64
}

// Summary holds panel-level statistics for reporting
type Summary struct {
	Observations int
	UniqueCusips int
	StartDate    time.Time
	EndDate      time.Time
	BillStats    []TenorStats
	CouponStats  []TenorStats
}

// Summarize computes summary statistics over a finished panel
func Summarize(rows []Row) Summary {
	s := Summary{Observations: len(rows)}
	if len(rows) == 0 {
		return s
	}

	cusips := make(map[string]bool)
	s.StartDate = rows[0].Date
	s.EndDate = rows[0].Date
	for _, row := range rows {
		cusips[row.Cusip] = true
		if row.Date.Before(s.StartDate) {
			s.StartDate = row.Date
		}
		if row.Date.After(s.EndDate) {
			s.EndDate = row.Date
		}
	}
	s.UniqueCusips = len(cusips)

	s.BillStats = tenorStats(rows, true)
	s.CouponStats = tenorStats(rows, false)
	return s
}

func tenorStats(rows []Row, bills bool) []TenorStats {
	type dateTenor struct {
		date  time.Time
		tenor int
	}
	cusipsByTenor := make(map[int]map[string]bool)
	vintagesByDate := make(map[dateTenor]map[int]bool)

	for _, row := range rows {
		if (row.SecurityType == Bill) != bills {
			continue
		}
		if cusipsByTenor[row.Tenor] == nil {
			cusipsByTenor[row.Tenor] = make(map[string]bool)
		}
		cusipsByTenor[row.Tenor][row.Cusip] = true

		key := dateTenor{row.Date, row.Tenor}
		if vintagesByDate[key] == nil {
			vintagesByDate[key] = make(map[int]bool)
		}
		vintagesByDate[key][row.Vintage] = true
	}

	tenors := make([]int, 0, len(cusipsByTenor))
	for tenor := range cusipsByTenor {
		tenors = append(tenors, tenor)
	}
	sort.Ints(tenors)

	stats := make([]TenorStats, 0, len(tenors))
	for _, tenor := range tenors {
		days := 0
		vintages := 0
		for key, vs := range vintagesByDate {
			if key.tenor == tenor {
				days++
				vintages += len(vs)
			}
		}
		avg := 0.0
		if days > 0 {
			avg = float64(vintages) / float64(days)
		}
		stats = append(stats, TenorStats{
			Tenor:            tenor,
			UniqueCusips:     len(cusipsByTenor[tenor]),
			AvgDailyVintages: avg,
		})
	}
	return stats
}

// Write prints the summary in the report layout the CLI emits unless run
// with -silent.
func (s Summary) Write(w io.Writer) {
	rule := "======================================================================"
	fmt.Fprintf(w, "%s\nPanel Summary\n%s\n", rule, rule)
	fmt.Fprintf(w, "Total observations: %d\n", s.Observations)
	fmt.Fprintf(w, "Unique CUSIPs: %d\n", s.UniqueCusips)
	if s.Observations > 0 {
		fmt.Fprintf(w, "Date range: %s to %s\n", s.StartDate.Format(dateLayout), s.EndDate.Format(dateLayout))
	}

	fmt.Fprintf(w, "\nBill statistics (tenor in weeks)\n")
	for _, st := range s.BillStats {
		fmt.Fprintf(w, "  %d-week: %d unique CUSIPs, %.0f avg daily vintages\n", st.Tenor, st.UniqueCusips, st.AvgDailyVintages)
	}
	fmt.Fprintf(w, "\nNote/Bond statistics (tenor in years)\n")
	for _, st := range s.CouponStats {
		fmt.Fprintf(w, "  %d-year: %d unique CUSIPs, %.0f avg daily vintages\n", st.Tenor, st.UniqueCusips, st.AvgDailyVintages)
	}
	fmt.Fprintf(w, "%s\n", rule)
}

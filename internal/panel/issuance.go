package panel

import (
	"sort"
)

// AccumulateIssuance populates totalIssued in place: for each cusip, the
// running sum of totalAccepted over auctions with an auction date at or
// before the row's date. A single forward scan per cusip merges the sorted
// auction list against the sorted date range. Rows before first issuance
// stay nil, distinguishing "not yet issued" from "issued zero".
func AccumulateIssuance(rows []Row, records []AuctionRecord) {
	auctions := make(map[string][]AuctionRecord)
	for _, rec := range records {
		auctions[rec.Cusip] = append(auctions[rec.Cusip], rec)
	}
	for _, evs := range auctions {
		sort.Slice(evs, func(i, j int) bool {
			return evs[i].AuctionDate.Before(evs[j].AuctionDate)
		})
	}

	for cusip, idxs := range rowsByCusip(rows) {
		evs := auctions[cusip]
		cum := 0.0
		settled := 0
		j := 0
		for _, idx := range idxs {
			d := rows[idx].Date
			for j < len(evs) && !evs[j].AuctionDate.After(d) {
				if evs[j].TotalAccepted != nil {
					cum += *evs[j].TotalAccepted
				}
				settled++
				j++
			}
			if rows[idx].IsWhenIssued() || settled == 0 {
				continue
			}
			total := cum
			rows[idx].TotalIssued = &total
		}
	}
}

// rowsByCusip groups row indices per cusip, each group sorted by date.
// Expand emits rows date-ordered within a cusip already; sorting here keeps
// the scan correct regardless of input ordering.
func rowsByCusip(rows []Row) map[string][]int {
	byCusip := make(map[string][]int)
	for i := range rows {
		byCusip[rows[i].Cusip] = append(byCusip[rows[i].Cusip], i)
	}
	for _, idxs := range byCusip {
		sort.Slice(idxs, func(a, b int) bool {
			return rows[idxs[a]].Date.Before(rows[idxs[b]].Date)
		})
	}
	return byCusip
}

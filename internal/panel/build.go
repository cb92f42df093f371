package panel

import (
	"sort"
	"time"
)

// Build runs the full pipeline: normalize raw rows, classify each cusip,
// build the business date grid, densify, rank vintages, accumulate issuance
// and tag auction events. It is a pure function of its inputs: identical
// raw records and range produce an identical panel.
func Build(raws []RawRecord, start, end time.Time) ([]Row, error) {
	records, err := Normalize(raws)
	if err != nil {
		return nil, err
	}
	return BuildFromRecords(records, start, end)
}

// BuildFromRecords runs the pipeline on already normalized records.
func BuildFromRecords(records []AuctionRecord, start, end time.Time) ([]Row, error) {
	grid, err := BusinessDates(start, end)
	if err != nil {
		return nil, err
	}
	secs, err := Classify(records)
	if err != nil {
		return nil, err
	}

	rows := Expand(secs, grid)
	RankVintages(rows)
	AccumulateIssuance(rows, records)
	TagEvents(rows, records)
	sortRows(rows)
	return rows, nil
}

// sortRows fixes the output ordering: date, then security type, tenor,
// vintage and finally cusip. Deterministic ordering is part of the output
// contract; the upstream cache relies on it.
func sortRows(rows []Row) {
	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		if a.SecurityType != b.SecurityType {
			return a.SecurityType < b.SecurityType
		}
		if a.Tenor != b.Tenor {
			return a.Tenor < b.Tenor
		}
		if a.Vintage != b.Vintage {
			return a.Vintage < b.Vintage
		}
		return a.Cusip < b.Cusip
	})
}

// Package panel builds a dense CUSIP-by-business-date panel of U.S.
// Treasury securities metadata from sparse, auction-event-indexed records.
//
// # Architecture
//
// The pipeline runs as a sequence of pure stages, each consuming the
// previous stage's output:
//
//  1. Normalize: types raw auction rows (dates, coupon, amounts, flags)
//  2. Classify: derives tenor, unit and security type per cusip
//  3. BusinessDates: builds the weekday grid for the requested range
//  4. Expand: densifies each cusip's attributes across its active window
//  5. RankVintages: ordinal freshness rank within each date/tenor group
//  6. AccumulateIssuance: running total accepted per cusip as of each date
//  7. TagEvents: opening/re-opening/unscheduled-reopening markers
//
// Build ties the stages together and fixes the output ordering.
//
// # Usage
//
//	rows, err := panel.Build(raws, start, end)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	summary := panel.Summarize(rows)
//
// # Semantics
//
// A security is active from its announcement date through maturity. Between
// announcement and first issuance it is "when-issued": present in the panel
// with vintage -1 and nil coupon and totalIssued. From first issuance it
// joins the ordinal vintage ranking; vintage 0 is the on-the-run security.
//
// The panel contains no Saturdays or Sundays. Public holidays are kept;
// the grid has no exchange-calendar awareness.
//
// # Error Handling
//
// All failures are fatal and surfaced unmodified: a malformed record, an
// unknown tenor or an inverted date range aborts the run. Nothing is
// silently dropped, since silent data corruption in a financial panel is
// worse than a hard failure.
//
// # Determinism
//
// Build is a pure function of (records, start, end). Group iteration is
// over sorted keys and every ranking tie is broken by cusip, so two runs on
// identical input produce byte-identical output.
package panel

package panel

import (
	"sort"
	"strconv"
	"strings"

	"ustpanel/internal/errors"
)

// tenorKey pairs a tenor count with its unit for enumeration lookup
type tenorKey struct {
	Count int
	Unit  TenorUnit
}

// validTenors is the fixed tenor enumeration. A parsed term outside this set
// is a classification failure, never a silent drop.
var validTenors = map[tenorKey]bool{
	{1, UnitWeek}:  true,
	{2, UnitWeek}:  true,
	{4, UnitWeek}:  true,
	{8, UnitWeek}:  true,
	{13, UnitWeek}: true,
	{17, UnitWeek}: true,
	{22, UnitWeek}: true,
	{26, UnitWeek}: true,
	{52, UnitWeek}: true,
	{2, UnitYear}:  true,
	{3, UnitYear}:  true,
	{4, UnitYear}:  true,
	{5, UnitYear}:  true,
	{7, UnitYear}:  true,
	{10, UnitYear}: true,
	{20, UnitYear}: true,
	{30, UnitYear}: true,
}

// Classify derives one ClassifiedSecurity per distinct cusip. The term
// string of the cusip's earliest auction drives classification, so the
// fractional terms that re-openings carry never reach the enumeration.
// firstIssueDate is the minimum issue date across the cusip's auctions.
func Classify(records []AuctionRecord) (map[string]ClassifiedSecurity, error) {
	byCusip := make(map[string][]AuctionRecord)
	for _, rec := range records {
		byCusip[rec.Cusip] = append(byCusip[rec.Cusip], rec)
	}

	classified := make(map[string]ClassifiedSecurity, len(byCusip))

	for cusip, recs := range byCusip {
		sort.Slice(recs, func(i, j int) bool {
			return recs[i].AuctionDate.Before(recs[j].AuctionDate)
		})
		opening := recs[0]

		count, unit, ok := ParseTerm(opening.SecurityTerm)
		if !ok || !validTenors[tenorKey{count, unit}] {
			return nil, errors.NewUnknownTenor(cusip, opening.SecurityTerm)
		}

		firstIssue := opening.IssueDate
		announcement := opening.AnnouncementDate
		var coupon *float64
		for _, rec := range recs {
			if rec.IssueDate.Before(firstIssue) {
				firstIssue = rec.IssueDate
			}
			if rec.OriginalIssueDate != nil && rec.OriginalIssueDate.Before(firstIssue) {
				firstIssue = *rec.OriginalIssueDate
			}
			if rec.AnnouncementDate.Before(announcement) {
				announcement = rec.AnnouncementDate
			}
			if coupon == nil && rec.InterestRate != nil {
				coupon = rec.InterestRate
			}
		}

		classified[cusip] = ClassifiedSecurity{
			Cusip:            cusip,
			Tenor:            count,
			Unit:             unit,
			Type:             deriveType(count, unit, opening.SecurityType),
			InflationIndexed: opening.InflationIndexed,
			FloatingRate:     opening.FloatingRate,
			Coupon:           coupon,
			FirstIssueDate:   firstIssue,
			MaturityDate:     opening.MaturityDate,
			AnnouncementDate: announcement,
		}
	}

	return classified, nil
}

// ParseTerm parses a security term string such as "26-Week" or "10-Year"
// into its count and unit. Terms with extra components, like the
// "9-Year 10-Month" a re-opening carries, do not parse.
func ParseTerm(term string) (int, TenorUnit, bool) {
	term = strings.TrimSpace(term)
	if strings.ContainsAny(term, " \t") {
		return 0, "", false
	}
	parts := strings.SplitN(term, "-", 2)
	if len(parts) != 2 {
		return 0, "", false
	}
	count, err := strconv.Atoi(parts[0])
	if err != nil || count <= 0 {
		return 0, "", false
	}
	switch {
	case strings.EqualFold(parts[1], "Week"):
		return count, UnitWeek, true
	case strings.EqualFold(parts[1], "Year"):
		return count, UnitYear, true
	default:
		return 0, "", false
	}
}

// deriveType maps tenor unit and count to the base security type. Week
// tenors are bills. Year tenors of 20 or 30 are bonds; shorter year tenors
// are notes unless the source category already marks a bond, which covers
// the pre-1986 ten year bonds.
func deriveType(count int, unit TenorUnit, rawType string) SecurityType {
	if unit == UnitWeek {
		return Bill
	}
	if count == 20 || count == 30 {
		return Bond
	}
	if strings.Contains(strings.ToLower(rawType), "bond") {
		return Bond
	}
	return Note
}

package panel

import (
	"strconv"
	"strings"
	"time"

	"ustpanel/internal/errors"
)

const dateLayout = "2006-01-02"

// Normalize converts raw auction rows into typed records. It is a pure
// transform: unparsable required fields abort with MalformedRecordError
// rather than producing a partial record set.
func Normalize(raws []RawRecord) ([]AuctionRecord, error) {
	records := make([]AuctionRecord, 0, len(raws))

	for _, raw := range raws {
		cusip := strings.TrimSpace(raw.Cusip)
		if cusip == "" {
			return nil, errors.NewMalformedRecord(cusip, "cusip", raw.Cusip, nil)
		}

		issueDate, err := parseRequiredDate(cusip, "issue_date", raw.IssueDate)
		if err != nil {
			return nil, err
		}
		maturityDate, err := parseRequiredDate(cusip, "maturity_date", raw.MaturityDate)
		if err != nil {
			return nil, err
		}
		auctionDate, err := parseRequiredDate(cusip, "auction_date", raw.AuctionDate)
		if err != nil {
			return nil, err
		}
		announcementDate, err := parseRequiredDate(cusip, "announcemt_date", raw.AnnouncementDate)
		if err != nil {
			return nil, err
		}
		originalIssueDate, err := parseOptionalDate(cusip, "original_issue_date", raw.OriginalIssueDate)
		if err != nil {
			return nil, err
		}

		interestRate, err := parseOptionalFloat(cusip, "int_rate", raw.InterestRate)
		if err != nil {
			return nil, err
		}
		totalAccepted, err := parseOptionalFloat(cusip, "total_accepted", raw.TotalAccepted)
		if err != nil {
			return nil, err
		}

		reopening := parseFlag(raw.Reopening)
		announcedCusip := cleanValue(raw.AnnouncedCusip)

		records = append(records, AuctionRecord{
			Cusip:             cusip,
			SecurityType:      cleanValue(raw.SecurityType),
			SecurityTerm:      cleanValue(raw.SecurityTerm),
			IssueDate:         issueDate,
			OriginalIssueDate: originalIssueDate,
			MaturityDate:      maturityDate,
			AuctionDate:       auctionDate,
			AnnouncementDate:  announcementDate,
			InterestRate:      interestRate,
			TotalAccepted:     totalAccepted,
			Reopening:         reopening,
			// A reopening announced under a different cusip than it
			// auctioned under is an unscheduled reopening.
			UnscheduledReopening: reopening && announcedCusip != "",
			InflationIndexed:     parseFlag(raw.InflationIndexed),
			FloatingRate:         parseFlag(raw.FloatingRate),
		})
	}

	return records, nil
}

// cleanValue trims whitespace and maps the API's literal "null" to empty
func cleanValue(s string) string {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "null") {
		return ""
	}
	return s
}

func parseRequiredDate(cusip, field, value string) (time.Time, error) {
	cleaned := cleanValue(value)
	if cleaned == "" {
		return time.Time{}, errors.NewMalformedRecord(cusip, field, value, nil)
	}
	d, err := time.Parse(dateLayout, cleaned)
	if err != nil {
		return time.Time{}, errors.NewMalformedRecord(cusip, field, value, err)
	}
	return d.UTC(), nil
}

func parseOptionalDate(cusip, field, value string) (*time.Time, error) {
	cleaned := cleanValue(value)
	if cleaned == "" {
		return nil, nil
	}
	d, err := time.Parse(dateLayout, cleaned)
	if err != nil {
		return nil, errors.NewMalformedRecord(cusip, field, value, err)
	}
	utc := d.UTC()
	return &utc, nil
}

// parseOptionalFloat coerces a numeric field, distinguishing absent from
// zero: null and blank become nil, never 0.
func parseOptionalFloat(cusip, field, value string) (*float64, error) {
	cleaned := cleanValue(value)
	if cleaned == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return nil, errors.NewMalformedRecord(cusip, field, value, err)
	}
	return &f, nil
}

// parseFlag normalizes the API's Yes/No flag encoding; true/false is also
// accepted since the cache stores flags that way.
func parseFlag(value string) bool {
	cleaned := cleanValue(value)
	return strings.EqualFold(cleaned, "yes") || strings.EqualFold(cleaned, "true")
}

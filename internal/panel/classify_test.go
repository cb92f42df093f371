package panel

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "ustpanel/internal/errors"
)

func TestParseTerm(t *testing.T) {
	tests := []struct {
		term  string
		count int
		unit  TenorUnit
		ok    bool
	}{
		{"10-Year", 10, UnitYear, true},
		{"26-Week", 26, UnitWeek, true},
		{"52-Week", 52, UnitWeek, true},
		{"2-Year", 2, UnitYear, true},
		{"30-Year", 30, UnitYear, true},
		{"9-Year 10-Month", 0, "", false},
		{"CMB", 0, "", false},
		{"", 0, "", false},
		{"-Week", 0, "", false},
		{"10-Day", 0, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.term, func(t *testing.T) {
			count, unit, ok := ParseTerm(tt.term)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.count, count)
				assert.Equal(t, tt.unit, unit)
			}
		})
	}
}

func TestClassifyDerivesType(t *testing.T) {
	tests := []struct {
		name     string
		term     string
		rawType  string
		expected SecurityType
	}{
		{"13 week bill", "13-Week", "Bill", Bill},
		{"10 year note", "10-Year", "Note", Note},
		{"20 year bond", "20-Year", "Bond", Bond},
		{"30 year bond", "30-Year", "Bond", Bond},
		{"legacy 10 year bond", "10-Year", "Bond", Bond},
		{"5 year tips is still a note", "5-Year", "TIPS Note", Note},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := auctionFixture("TEST", tt.term, "2023-01-15", "2023-01-31", "2023-01-05", nil)
			rec.SecurityType = tt.rawType

			secs, err := Classify([]AuctionRecord{rec})
			require.NoError(t, err)
			assert.Equal(t, tt.expected, secs["TEST"].Type)
		})
	}
}

func TestClassifyUnknownTenorFailsHard(t *testing.T) {
	for _, term := range []string{"6-Week", "40-Year", "9-Year 10-Month"} {
		t.Run(term, func(t *testing.T) {
			rec := auctionFixture("TEST", term, "2023-01-15", "2023-01-31", "2023-01-05", nil)

			_, err := Classify([]AuctionRecord{rec})
			require.Error(t, err)

			var unknown *apperrors.UnknownTenorError
			require.True(t, errors.As(err, &unknown))
			assert.Equal(t, "TEST", unknown.Cusip)
			assert.Equal(t, term, unknown.Term)
		})
	}
}

func TestClassifyUsesOpeningTerm(t *testing.T) {
	// The re-opening carries a fractional term; classification must come
	// from the earliest auction's term.
	amount := 20e9
	opening := auctionFixture("912828YK0", "10-Year", "2023-01-15", "2023-01-31", "2023-01-05", &amount)
	reopening := auctionFixture("912828YK0", "9-Year 10-Month", "2023-03-15", "2023-03-31", "2023-03-05", &amount)
	reopening.Reopening = true

	secs, err := Classify([]AuctionRecord{reopening, opening})
	require.NoError(t, err)

	sec := secs["912828YK0"]
	assert.Equal(t, 10, sec.Tenor)
	assert.Equal(t, UnitYear, sec.Unit)
	assert.Equal(t, time.Date(2023, 1, 31, 0, 0, 0, 0, time.UTC), sec.FirstIssueDate)
	assert.Equal(t, time.Date(2023, 1, 5, 0, 0, 0, 0, time.UTC), sec.AnnouncementDate)
}

func TestClassifyFirstIssueFromOriginalIssueDate(t *testing.T) {
	amount := 5e9
	rec := auctionFixture("912828YK0", "10-Year", "2023-03-15", "2023-03-31", "2023-03-05", &amount)
	rec.Reopening = true
	original := time.Date(2023, 1, 31, 0, 0, 0, 0, time.UTC)
	rec.OriginalIssueDate = &original

	secs, err := Classify([]AuctionRecord{rec})
	require.NoError(t, err)
	assert.Equal(t, original, secs["912828YK0"].FirstIssueDate)
}

func TestClassifyCouponFromFirstQuoted(t *testing.T) {
	// Bills auction without a coupon; the first auction quoting one wins.
	first := auctionFixture("912828YK0", "10-Year", "2023-01-15", "2023-01-31", "2023-01-05", nil)
	first.InterestRate = nil
	second := auctionFixture("912828YK0", "9-Year 10-Month", "2023-03-15", "2023-03-31", "2023-03-05", nil)
	second.Reopening = true
	coupon := 3.5
	second.InterestRate = &coupon

	secs, err := Classify([]AuctionRecord{first, second})
	require.NoError(t, err)
	require.NotNil(t, secs["912828YK0"].Coupon)
	assert.InDelta(t, 3.5, *secs["912828YK0"].Coupon, 1e-9)
}

// auctionFixture builds a minimal typed auction record for classifier and
// pipeline tests. Dates are YYYY-MM-DD.
func auctionFixture(cusip, term, auction, issue, announcement string, accepted *float64) AuctionRecord {
	return AuctionRecord{
		Cusip:            cusip,
		SecurityType:     "Note",
		SecurityTerm:     term,
		IssueDate:        mustDate(issue),
		MaturityDate:     mustDate(issue).AddDate(10, 0, 0),
		AuctionDate:      mustDate(auction),
		AnnouncementDate: mustDate(announcement),
		TotalAccepted:    accepted,
	}
}

func mustDate(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d.UTC()
}

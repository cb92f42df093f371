package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ustpanel/internal/panel"
)

func rawFixture(cusip string) panel.RawRecord {
	return panel.RawRecord{
		Cusip:             cusip,
		SecurityType:      "Note",
		SecurityTerm:      "10-Year",
		IssueDate:         "2023-01-31",
		OriginalIssueDate: "null",
		MaturityDate:      "2033-01-31",
		InterestRate:      "3.500",
		TotalAccepted:     "20000000000",
		Reopening:         "No",
		InflationIndexed:  "No",
		FloatingRate:      "No",
		AnnouncementDate:  "2023-01-05",
		AnnouncedCusip:    "null",
		AuctionDate:       "2023-01-15",
	}
}

func mustDate(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d.UTC()
}

func TestStoreRoundTrip(t *testing.T) {
	store := NewStore(t.TempDir(), nil)
	raws := []panel.RawRecord{rawFixture("AAA"), rawFixture("BBB")}
	start, end := mustDate("2023-01-01"), mustDate("2023-12-31")

	require.NoError(t, store.Save(raws, start, end))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, raws, loaded)
}

func TestStoreMatches(t *testing.T) {
	store := NewStore(t.TempDir(), nil)
	start, end := mustDate("2023-01-01"), mustDate("2023-12-31")

	assert.False(t, store.Matches(start, end), "empty cache never matches")

	require.NoError(t, store.Save([]panel.RawRecord{rawFixture("AAA")}, start, end))
	assert.True(t, store.Matches(start, end))

	// A different range misses even when it is a subset of the cached one.
	assert.False(t, store.Matches(start, mustDate("2023-06-30")))
}

func TestStoreLoadMissing(t *testing.T) {
	store := NewStore(t.TempDir(), nil)
	_, err := store.Load()
	require.Error(t, err)
}

func TestStoreOverwrite(t *testing.T) {
	store := NewStore(t.TempDir(), nil)
	start, end := mustDate("2023-01-01"), mustDate("2023-12-31")

	require.NoError(t, store.Save([]panel.RawRecord{rawFixture("AAA")}, start, end))
	require.NoError(t, store.Save([]panel.RawRecord{rawFixture("CCC")}, start, end))

	loaded, err := store.Load()
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "CCC", loaded[0].Cusip)
}

package fiscaldata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRow(cusip string) auctionRow {
	return auctionRow{
		Cusip:             cusip,
		SecurityType:      "Note",
		SecurityTerm:      "10-Year",
		IssueDate:         "2023-01-31",
		OriginalIssueDate: "null",
		MaturityDate:      "2033-01-31",
		IntRate:           "3.500",
		TotalAccepted:     "20000000000",
		Reopening:         "No",
		InflationIndexed:  "No",
		FloatingRate:      "No",
		AnnouncementDate:  "2023-01-05",
		AnnouncedCusip:    "null",
		AuctionDate:       "2023-01-15",
	}
}

func TestFetchAuctionsPaginates(t *testing.T) {
	var pagesServed []int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page, err := strconv.Atoi(r.URL.Query().Get("page[number]"))
		require.NoError(t, err)
		pagesServed = append(pagesServed, page)

		assert.Equal(t, "json", r.URL.Query().Get("format"))
		assert.Contains(t, r.URL.Query().Get("filter"), "auction_date:gte:2023-01-01")
		assert.Contains(t, r.URL.Query().Get("fields"), "security_term")

		// Two full pages of size 2, then a short page.
		var rows []auctionRow
		switch page {
		case 1:
			rows = []auctionRow{testRow("AAA"), testRow("BBB")}
		case 2:
			rows = []auctionRow{testRow("CCC"), testRow("DDD")}
		default:
			rows = []auctionRow{testRow("EEE")}
		}
		require.NoError(t, json.NewEncoder(w).Encode(auctionsResponse{Data: rows}))
	}))
	defer server.Close()

	client := NewClient(
		WithBaseURL(server.URL),
		WithPageSize(2),
		WithRateLimit(1000),
	)

	raws, err := client.FetchAuctions(context.Background(), mustDate("2023-01-01"), mustDate("2023-12-31"))
	require.NoError(t, err)
	require.Len(t, raws, 5)
	assert.Equal(t, []int{1, 2, 3}, pagesServed)
	assert.Equal(t, "AAA", raws[0].Cusip)
	assert.Equal(t, "EEE", raws[4].Cusip)
	assert.Equal(t, "10-Year", raws[0].SecurityTerm)
	assert.Equal(t, "3.500", raws[0].InterestRate)
}

func TestFetchAuctionsRetriesServerErrors(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		require.NoError(t, json.NewEncoder(w).Encode(auctionsResponse{Data: []auctionRow{testRow("AAA")}}))
	}))
	defer server.Close()

	client := NewClient(
		WithBaseURL(server.URL),
		WithRateLimit(1000),
		WithRetries(3, time.Millisecond),
	)

	raws, err := client.FetchAuctions(context.Background(), mustDate("2023-01-01"), mustDate("2023-12-31"))
	require.NoError(t, err)
	assert.Len(t, raws, 1)
	assert.Equal(t, 3, attempts)
}

func TestFetchAuctionsClientErrorNotRetried(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"error":"bad filter"}`)
	}))
	defer server.Close()

	client := NewClient(
		WithBaseURL(server.URL),
		WithRateLimit(1000),
		WithRetries(3, time.Millisecond),
	)

	_, err := client.FetchAuctions(context.Background(), mustDate("2023-01-01"), mustDate("2023-12-31"))
	require.Error(t, err)
	assert.Equal(t, 1, attempts)

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusBadRequest, statusErr.StatusCode)
	assert.False(t, statusErr.Retryable())
}

func TestFetchAuctionsEmptyRange(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewEncoder(w).Encode(auctionsResponse{}))
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL), WithRateLimit(1000))

	raws, err := client.FetchAuctions(context.Background(), mustDate("2023-01-01"), mustDate("2023-01-02"))
	require.NoError(t, err)
	assert.Empty(t, raws)
}

func mustDate(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d.UTC()
}

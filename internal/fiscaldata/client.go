package fiscaldata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"ustpanel/internal/metrics"
	"ustpanel/internal/panel"
)

// DefaultBaseURL is the Treasury FiscalData auctions query endpoint
const DefaultBaseURL = "https://api.fiscaldata.treasury.gov/services/api/fiscal_service/v1/accounting/od/auctions_query"

// DefaultPageSize is the API's maximum page size
const DefaultPageSize = 10000

// requiredFields is the field list requested from the API. It matches the
// raw record schema the normalizer consumes.
var requiredFields = []string{
	"cusip",
	"security_type",
	"security_term",
	"issue_date",
	"original_issue_date",
	"maturity_date",
	"int_rate",
	"total_accepted",
	"reopening",
	"inflation_index_security",
	"floating_rate",
	"announcemt_date",
	"announcemtd_cusip",
	"auction_date",
}

// Client fetches Treasury auction records from the FiscalData API.
type Client struct {
	baseURL    string
	pageSize   int
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *slog.Logger

	maxRetries   int
	retryBackoff time.Duration
}

// Option configures a Client.
type Option func(*Client)

// NewClient creates a FiscalData API client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL:  DefaultBaseURL,
		pageSize: DefaultPageSize,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		limiter:      rate.NewLimiter(rate.Limit(5), 1),
		logger:       slog.Default(),
		maxRetries:   3,
		retryBackoff: time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithBaseURL overrides the API endpoint.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) { c.baseURL = baseURL }
}

// WithPageSize sets the page size used for pagination.
func WithPageSize(size int) Option {
	return func(c *Client) { c.pageSize = size }
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithRateLimit sets the request rate limit in requests per second.
func WithRateLimit(rps float64) Option {
	return func(c *Client) { c.limiter = rate.NewLimiter(rate.Limit(rps), 1) }
}

// WithRetries sets the retry configuration.
func WithRetries(max int, backoff time.Duration) Option {
	return func(c *Client) {
		c.maxRetries = max
		c.retryBackoff = backoff
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// auctionRow mirrors one record of the API's JSON payload. Every field is a
// string; absent values arrive as the literal "null".
type auctionRow struct {
	Cusip             string `json:"cusip"`
	SecurityType      string `json:"security_type"`
	SecurityTerm      string `json:"security_term"`
	IssueDate         string `json:"issue_date"`
	OriginalIssueDate string `json:"original_issue_date"`
	MaturityDate      string `json:"maturity_date"`
	IntRate           string `json:"int_rate"`
	TotalAccepted     string `json:"total_accepted"`
	Reopening         string `json:"reopening"`
	InflationIndexed  string `json:"inflation_index_security"`
	FloatingRate      string `json:"floating_rate"`
	AnnouncementDate  string `json:"announcemt_date"`
	AnnouncedCusip    string `json:"announcemtd_cusip"`
	AuctionDate       string `json:"auction_date"`
}

type auctionsResponse struct {
	Data []auctionRow `json:"data"`
}

// FetchAuctions retrieves every auction with an auction date inside
// [start, end], paging through the API until a short page ends the scan.
func (c *Client) FetchAuctions(ctx context.Context, start, end time.Time) ([]panel.RawRecord, error) {
	var raws []panel.RawRecord
	filter := fmt.Sprintf("auction_date:gte:%s,auction_date:lte:%s",
		start.Format("2006-01-02"), end.Format("2006-01-02"))

	c.logger.InfoContext(ctx, "fetching auction data",
		"start", start.Format("2006-01-02"),
		"end", end.Format("2006-01-02"),
	)

	for page := 1; ; page++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit wait: %w", err)
		}

		query := url.Values{}
		query.Set("fields", strings.Join(requiredFields, ","))
		query.Set("filter", filter)
		query.Set("format", "json")
		query.Set("page[number]", strconv.Itoa(page))
		query.Set("page[size]", strconv.Itoa(c.pageSize))

		resp, err := c.getPage(ctx, query)
		if err != nil {
			return nil, fmt.Errorf("fetch page %d: %w", page, err)
		}
		if len(resp.Data) == 0 {
			break
		}

		metrics.FetchPages.Inc()
		c.logger.InfoContext(ctx, "retrieved auction page",
			"page", page,
			"records", len(resp.Data),
		)
		for _, row := range resp.Data {
			raws = append(raws, panel.RawRecord{
				Cusip:             row.Cusip,
				SecurityType:      row.SecurityType,
				SecurityTerm:      row.SecurityTerm,
				IssueDate:         row.IssueDate,
				OriginalIssueDate: row.OriginalIssueDate,
				MaturityDate:      row.MaturityDate,
				InterestRate:      row.IntRate,
				TotalAccepted:     row.TotalAccepted,
				Reopening:         row.Reopening,
				InflationIndexed:  row.InflationIndexed,
				FloatingRate:      row.FloatingRate,
				AnnouncementDate:  row.AnnouncementDate,
				AnnouncedCusip:    row.AnnouncedCusip,
				AuctionDate:       row.AuctionDate,
			})
		}

		if len(resp.Data) < c.pageSize {
			break
		}
	}

	c.logger.InfoContext(ctx, "auction fetch completed", "records", len(raws))
	return raws, nil
}

// getPage performs one paginated GET with retry on retryable statuses.
func (c *Client) getPage(ctx context.Context, query url.Values) (*auctionsResponse, error) {
	var lastErr error
	backoff := c.retryBackoff

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			c.logger.WarnContext(ctx, "retrying auction fetch",
				"attempt", attempt,
				"backoff", backoff,
				"error", lastErr,
			)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
			backoff *= 2
		}

		resp, err := c.doRequest(ctx, query)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		statusErr, ok := err.(*StatusError)
		if !ok || !statusErr.Retryable() {
			return nil, err
		}
	}

	return nil, fmt.Errorf("max retries exceeded: %w", lastErr)
}

func (c *Client) doRequest(ctx context.Context, query url.Values) (*auctionsResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: body}
	}

	var parsed auctionsResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}
	return &parsed, nil
}

// StatusError represents a non-200 response from the API.
type StatusError struct {
	StatusCode int
	Body       []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("fiscaldata api error %d: %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// Retryable reports whether the status warrants another attempt.
func (e *StatusError) Retryable() bool {
	return e.StatusCode >= 500 || e.StatusCode == http.StatusTooManyRequests
}

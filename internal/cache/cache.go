// Package cache persists fetched auction records on disk so repeated runs
// over the same date range skip the FiscalData API.
package cache

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"ustpanel/internal/panel"
)

const (
	auctionsFile = "auctions.csv"
	rangeFile    = "range.txt"
	dateLayout   = "2006-01-02"
)

// columns is the on-disk auction CSV schema, the raw field names the API
// uses.
var columns = []string{
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

// Store caches raw auction records on disk so repeated runs over the same
// range skip the network. Records are stored untyped, exactly as fetched;
// the normalizer remains the single place raw values are interpreted.
type Store struct {
	dir    string
	logger *slog.Logger
}

// NewStore creates a cache store rooted at dir.
func NewStore(dir string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{dir: dir, logger: logger}
}

// DefaultDir returns the platform cache directory for the application.
func DefaultDir() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("resolve user cache dir: %w", err)
	}
	return filepath.Join(base, "ustpanel"), nil
}

// Matches reports whether the cached range equals the requested one. Cache
// validity is exact-match only: a wider cached range still misses, since
// the auction set is range-dependent.
func (s *Store) Matches(start, end time.Time) bool {
	data, err := os.ReadFile(filepath.Join(s.dir, rangeFile))
	if err != nil {
		return false
	}
	if _, err := os.Stat(filepath.Join(s.dir, auctionsFile)); err != nil {
		return false
	}
	cached := strings.TrimSpace(string(data))
	requested := start.Format(dateLayout) + "," + end.Format(dateLayout)
	return cached == requested
}

// Save writes the raw records and the range marker. The range marker is
// written last so a partial write never reads as a valid cache.
func (s *Store) Save(raws []panel.RawRecord, start, end time.Time) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}

	path := filepath.Join(s.dir, auctionsFile)
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create cache file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(columns); err != nil {
		return fmt.Errorf("write cache header: %w", err)
	}
	for _, raw := range raws {
		record := []string{
			raw.Cusip,
			raw.SecurityType,
			raw.SecurityTerm,
			raw.IssueDate,
			raw.OriginalIssueDate,
			raw.MaturityDate,
			raw.InterestRate,
			raw.TotalAccepted,
			raw.Reopening,
			raw.InflationIndexed,
			raw.FloatingRate,
			raw.AnnouncementDate,
			raw.AnnouncedCusip,
			raw.AuctionDate,
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write cache record: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush cache file: %w", err)
	}

	rangeValue := start.Format(dateLayout) + "," + end.Format(dateLayout)
	if err := os.WriteFile(filepath.Join(s.dir, rangeFile), []byte(rangeValue), 0o644); err != nil {
		return fmt.Errorf("write range marker: %w", err)
	}

	s.logger.Info("cached auction data",
		"path", path,
		"records", len(raws),
		"range", rangeValue,
	)
	return nil
}

// Load reads the cached raw records.
func (s *Store) Load() ([]panel.RawRecord, error) {
	path := filepath.Join(s.dir, auctionsFile)
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open cache file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read cache file: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("cache file %s is empty", path)
	}
	if len(records[0]) != len(columns) {
		return nil, fmt.Errorf("cache file %s has %d columns, expected %d", path, len(records[0]), len(columns))
	}

	raws := make([]panel.RawRecord, 0, len(records)-1)
	for _, record := range records[1:] {
		raws = append(raws, panel.RawRecord{
			Cusip:             record[0],
			SecurityType:      record[1],
			SecurityTerm:      record[2],
			IssueDate:         record[3],
			OriginalIssueDate: record[4],
			MaturityDate:      record[5],
			InterestRate:      record[6],
			TotalAccepted:     record[7],
			Reopening:         record[8],
			InflationIndexed:  record[9],
			FloatingRate:      record[10],
			AnnouncementDate:  record[11],
			AnnouncedCusip:    record[12],
			AuctionDate:       record[13],
		})
	}

	s.logger.Info("loaded auction data from cache", "path", path, "records", len(raws))
	return raws, nil
}

package exporter

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"ustpanel/internal/panel"
)

const dateLayout = "2006-01-02"

// WriteCSV writes the panel to w with the wire-contract column set. Nil
// values serialize as empty cells.
func WriteCSV(w io.Writer, rows []panel.Row) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(panel.Columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, row := range rows {
		if err := writer.Write(rowStrings(row)); err != nil {
			return fmt.Errorf("write record: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// SaveCSV writes the panel to a CSV file, creating parent directories.
func SaveCSV(path string, rows []panel.Row) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer file.Close()

	if err := WriteCSV(file, rows); err != nil {
		return err
	}
	slog.Info("wrote panel CSV", "path", path, "rows", len(rows))
	return nil
}

// rowStrings serializes one row in wire-contract column order
func rowStrings(row panel.Row) []string {
	return []string{
		row.Date.Format(dateLayout),
		row.Cusip,
		strconv.Itoa(row.Tenor),
		strconv.Itoa(row.Vintage),
		row.MaturityDate.Format(dateLayout),
		formatFloat(row.Coupon),
		row.FirstIssueDate.Format(dateLayout),
		formatString(row.IssuanceType),
		formatDate(row.AuctionDate),
		formatDate(row.UnscheduledReopeningDate),
		formatFloat(row.TotalIssued),
		formatDate(row.AnnouncementDate),
		strconv.FormatBool(row.InflationIndexed),
		strconv.FormatBool(row.FloatingRate),
		string(row.SecurityType),
	}
}

func formatFloat(f *float64) string {
	if f == nil {
		return ""
	}
	return strconv.FormatFloat(*f, 'f', -1, 64)
}

func formatDate(d *time.Time) string {
	if d == nil {
		return ""
	}
	return d.Format(dateLayout)
}

func formatString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

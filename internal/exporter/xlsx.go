package exporter

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"ustpanel/internal/panel"
)

const sheetName = "Panel"

// SaveXLSX writes the panel as a spreadsheet with the same column set as
// the CSV export. Numeric columns stay numeric so the file filters and
// sorts cleanly in Excel.
func SaveXLSX(path string, rows []panel.Row) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("drop default sheet: %w", err)
	}

	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		return fmt.Errorf("create stream writer: %w", err)
	}

	header := make([]interface{}, len(panel.Columns))
	for i, col := range panel.Columns {
		header[i] = col
	}
	if err := sw.SetRow("A1", header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("resolve cell: %w", err)
		}
		if err := sw.SetRow(cell, xlsxValues(row)); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}
	if err := sw.Flush(); err != nil {
		return fmt.Errorf("flush stream writer: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	slog.Info("wrote panel workbook", "path", path, "rows", len(rows))
	return nil
}

// xlsxValues mirrors rowStrings but keeps numbers typed
func xlsxValues(row panel.Row) []interface{} {
	values := make([]interface{}, 0, len(panel.Columns))
	values = append(values,
		row.Date.Format(dateLayout),
		row.Cusip,
		row.Tenor,
		row.Vintage,
		row.MaturityDate.Format(dateLayout),
	)
	if row.Coupon != nil {
		values = append(values, *row.Coupon)
	} else {
		values = append(values, nil)
	}
	values = append(values,
		row.FirstIssueDate.Format(dateLayout),
		formatString(row.IssuanceType),
		formatDate(row.AuctionDate),
		formatDate(row.UnscheduledReopeningDate),
	)
	if row.TotalIssued != nil {
		values = append(values, *row.TotalIssued)
	} else {
		values = append(values, nil)
	}
	values = append(values,
		formatDate(row.AnnouncementDate),
		row.InflationIndexed,
		row.FloatingRate,
		string(row.SecurityType),
	)
	return values
}

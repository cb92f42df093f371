// Command ustpanel builds the Treasury auction panel for a business-date
// range and writes it to CSV or XLSX. Auction data is fetched from the
// FiscalData API, with an on-disk cache keyed to the requested range.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"ustpanel/internal/cache"
	"ustpanel/internal/config"
	"ustpanel/internal/exporter"
	"ustpanel/internal/fiscaldata"
	"ustpanel/internal/panel"
	"ustpanel/internal/service"
)

const dateLayout = "2006-01-02"

func main() {
	startFlag := flag.String("start", "1990-01-01", "first business date of the panel (YYYY-MM-DD)")
	endFlag := flag.String("end", "", "last business date of the panel (YYYY-MM-DD, defaults to today)")
	outFlag := flag.String("out", "panel.csv", "output path for the panel")
	formatFlag := flag.String("format", "", "output format: csv or xlsx (defaults from the output extension)")
	forceFlag := flag.Bool("force", false, "refetch auction data even when the cache covers the range")
	silentFlag := flag.Bool("silent", false, "suppress the summary report")
	configFlag := flag.String("config", "", "path to a YAML configuration file")
	flag.Parse()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	logger := config.NewLogger(cfg.Logging)

	start, end, err := parseRange(*startFlag, *endFlag)
	if err != nil {
		logger.Error("Invalid date range", "error", err)
		os.Exit(1)
	}

	format, err := resolveFormat(*formatFlag, *outFlag)
	if err != nil {
		logger.Error("Invalid output format", "error", err)
		os.Exit(1)
	}

	cacheDir := cfg.Cache.Dir
	if cacheDir == "" {
		cacheDir, err = cache.DefaultDir()
		if err != nil {
			logger.Error("Failed to resolve cache directory", "error", err)
			os.Exit(1)
		}
	}

	client := fiscaldata.NewClient(
		fiscaldata.WithBaseURL(cfg.API.BaseURL),
		fiscaldata.WithPageSize(cfg.API.PageSize),
		fiscaldata.WithHTTPClient(&http.Client{Timeout: cfg.API.Timeout}),
		fiscaldata.WithRateLimit(cfg.API.RateLimitRPS),
		fiscaldata.WithRetries(cfg.API.MaxRetries, time.Second),
		fiscaldata.WithLogger(logger),
	)
	store := cache.NewStore(cacheDir, logger)
	svc := service.New(client, store, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("Building panel",
		"start", start.Format(dateLayout),
		"end", end.Format(dateLayout),
		"out", *outFlag,
		"format", format,
	)

	rows, err := svc.Panel(ctx, start, end, *forceFlag)
	if err != nil {
		logger.Error("Failed to build panel", "error", err)
		os.Exit(1)
	}

	if err := save(*outFlag, format, rows); err != nil {
		logger.Error("Failed to write panel", "error", err, "path", *outFlag)
		os.Exit(1)
	}
	logger.Info("Panel written", "path", *outFlag, "rows", len(rows))

	if !*silentFlag {
		printSummary(os.Stdout, rows)
	}
}

// parseRange parses the start and end flags, defaulting end to today.
func parseRange(startStr, endStr string) (time.Time, time.Time, error) {
	start, err := time.Parse(dateLayout, startStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("parse start date: %w", err)
	}
	end := time.Now().UTC().Truncate(24 * time.Hour)
	if endStr != "" {
		end, err = time.Parse(dateLayout, endStr)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("parse end date: %w", err)
		}
	}
	return start, end, nil
}

// resolveFormat picks the output format from the flag, falling back to the
// output path extension.
func resolveFormat(format, out string) (string, error) {
	if format == "" {
		if filepath.Ext(out) == ".xlsx" {
			return "xlsx", nil
		}
		return "csv", nil
	}
	switch format {
	case "csv", "xlsx":
		return format, nil
	default:
		return "", fmt.Errorf("unsupported format %q (expected csv or xlsx)", format)
	}
}

func save(path, format string, rows []panel.Row) error {
	if format == "xlsx" {
		return exporter.SaveXLSX(path, rows)
	}
	return exporter.SaveCSV(path, rows)
}

func printSummary(w io.Writer, rows []panel.Row) {
	summary := panel.Summarize(rows)
	summary.Write(w)
}

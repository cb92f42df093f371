// Package service orchestrates the fetch, cache and build collaborators
// behind a single entry point used by both the CLI and the HTTP server.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"ustpanel/internal/cache"
	"ustpanel/internal/metrics"
	"ustpanel/internal/panel"
)

// Fetcher retrieves raw auction records for a date range. Satisfied by
// fiscaldata.Client.
type Fetcher interface {
	FetchAuctions(ctx context.Context, start, end time.Time) ([]panel.RawRecord, error)
}

// PanelService builds panels, serving auction data from the on-disk cache
// when the requested range matches.
type PanelService struct {
	fetcher Fetcher
	store   *cache.Store
	logger  *slog.Logger
}

// New creates a PanelService.
func New(fetcher Fetcher, store *cache.Store, logger *slog.Logger) *PanelService {
	if logger == nil {
		logger = slog.Default()
	}
	return &PanelService{fetcher: fetcher, store: store, logger: logger}
}

// Panel returns the finished panel for [start, end]. With force set the
// cache is bypassed and rewritten from a fresh fetch.
func (s *PanelService) Panel(ctx context.Context, start, end time.Time, force bool) ([]panel.Row, error) {
	raws, err := s.rawRecords(ctx, start, end, force)
	if err != nil {
		return nil, err
	}

	timer := prometheus.NewTimer(metrics.BuildDuration)
	rows, err := panel.Build(raws, start, end)
	timer.ObserveDuration()
	if err != nil {
		return nil, err
	}
	metrics.RowsBuilt.Set(float64(len(rows)))

	s.logger.InfoContext(ctx, "panel built",
		"start", start.Format("2006-01-02"),
		"end", end.Format("2006-01-02"),
		"rows", len(rows),
	)
	return rows, nil
}

func (s *PanelService) rawRecords(ctx context.Context, start, end time.Time, force bool) ([]panel.RawRecord, error) {
	if !force && s.store.Matches(start, end) {
		raws, err := s.store.Load()
		if err == nil {
			metrics.CacheHits.Inc()
			s.logger.InfoContext(ctx, "using cached auction data", "records", len(raws))
			return raws, nil
		}
		// A corrupt cache falls through to a fresh fetch.
		s.logger.WarnContext(ctx, "cache load failed, refetching", "error", err)
	}
	metrics.CacheMisses.Inc()

	timer := prometheus.NewTimer(metrics.FetchDuration)
	raws, err := s.fetcher.FetchAuctions(ctx, start, end)
	timer.ObserveDuration()
	if err != nil {
		return nil, fmt.Errorf("fetch auctions: %w", err)
	}

	if err := s.store.Save(raws, start, end); err != nil {
		// Caching is best effort; the panel is still built.
		s.logger.WarnContext(ctx, "cache save failed", "error", err)
	}
	return raws, nil
}

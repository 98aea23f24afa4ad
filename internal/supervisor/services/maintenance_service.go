// Cloudcompass - Cloud Provider Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cloudcompass

package services

import (
	"context"
	"time"

	"github.com/tomtom215/cloudcompass/internal/cache"
	"github.com/tomtom215/cloudcompass/internal/logging"
)

// CacheStatsFunc reports cache statistics for the maintenance loop.
type CacheStatsFunc func() cache.Stats

// MaintenanceService periodically logs recommendation cache statistics
// so operators can see hit rates without scraping /metrics. It runs
// under the tree's maintenance layer and stops when its context is
// canceled.
type MaintenanceService struct {
	stats    CacheStatsFunc
	interval time.Duration
	name     string
}

// NewMaintenanceService creates a maintenance service. An interval of
// zero or less defaults to one minute.
func NewMaintenanceService(stats CacheStatsFunc, interval time.Duration) *MaintenanceService {
	if interval <= 0 {
		interval = time.Minute
	}
	return &MaintenanceService{
		stats:    stats,
		interval: interval,
		name:     "maintenance",
	}
}

// Serve implements suture.Service.
func (s *MaintenanceService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.report(ctx)
		}
	}
}

func (s *MaintenanceService) report(ctx context.Context) {
	if s.stats == nil {
		return
	}
	st := s.stats()
	logging.Ctx(ctx).Debug().
		Int64("keys", st.TotalKeys).
		Int64("hits", st.Hits).
		Int64("misses", st.Misses).
		Int64("evictions", st.Evictions).
		Msg("Recommendation cache statistics")
}

// String implements fmt.Stringer for supervisor logging.
func (s *MaintenanceService) String() string {
	return s.name
}

// Cloudcompass - Cloud Provider Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cloudcompass

package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/tomtom215/cloudcompass/internal/cache"
)

func TestMaintenanceService_ReportsPeriodically(t *testing.T) {
	var calls atomic.Int64
	statsFn := func() cache.Stats {
		calls.Add(1)
		return cache.Stats{Hits: 3, Misses: 1, TotalKeys: 2}
	}

	svc := NewMaintenanceService(statsFn, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- svc.Serve(ctx) }()

	deadline := time.After(2 * time.Second)
	for calls.Load() < 2 {
		select {
		case <-deadline:
			t.Fatal("stats func not called within deadline")
		case <-time.After(5 * time.Millisecond):
		}
	}

	cancel()
	select {
	case err := <-errCh:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Serve returned %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not stop after cancel")
	}
}

func TestMaintenanceService_DefaultInterval(t *testing.T) {
	svc := NewMaintenanceService(nil, 0)
	if svc.interval != time.Minute {
		t.Errorf("interval = %s, want 1m", svc.interval)
	}
}

func TestMaintenanceService_NilStatsFunc(t *testing.T) {
	svc := NewMaintenanceService(nil, 5*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 25*time.Millisecond)
	defer cancel()

	// Must tick through several intervals without panicking.
	if err := svc.Serve(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Serve returned %v, want context.DeadlineExceeded", err)
	}
}

func TestMaintenanceService_String(t *testing.T) {
	if got := NewMaintenanceService(nil, 0).String(); got != "maintenance" {
		t.Errorf("String() = %q, want maintenance", got)
	}
}

package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/ledger/internal/ledger/store"
)

// MaintenanceService periodically asks the store to tidy itself up
// (planner statistics, WAL checkpoint) so a long running server does not
// accumulate an ever growing write-ahead log.
type MaintenanceService struct {
	Store    store.Store
	Logger   *slog.Logger
	Interval time.Duration

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewMaintenanceService creates the worker. A zero or negative interval
// defaults to one hour.
func NewMaintenanceService(store store.Store, logger *slog.Logger, interval time.Duration) *MaintenanceService {
	if interval <= 0 {
		interval = 1 * time.Hour
	}

	return &MaintenanceService{
		Store:    store,
		Logger:   logger,
		Interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start launches the background worker. Call Stop to shut it down.
func (s *MaintenanceService) Start() {
	go s.run()
	s.Logger.Info("maintenance service started", "interval", s.Interval)
}

// Stop blocks until any in-progress run has finished.
func (s *MaintenanceService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("maintenance service stopped")
}

func (s *MaintenanceService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.RunOnce(context.Background())
		case <-s.stopCh:
			return
		}
	}
}

// RunOnce performs a single maintenance pass and reports whether it succeeded.
func (s *MaintenanceService) RunOnce(ctx context.Context) bool {
	start := time.Now()
	if err := s.Store.Optimize(ctx); err != nil {
		s.Logger.Error("store maintenance failed", "error", err)
		return false
	}
	s.Logger.Debug("store maintenance completed", "duration_ms", time.Since(start).Milliseconds())
	return true
}

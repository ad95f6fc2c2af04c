package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/jobscan"
)

// Ensure LoggingScanService implements jobscan.ScanService.
var _ jobscan.ScanService = (*LoggingScanService)(nil)

// LoggingScanService wraps a ScanService with logging of archive writes.
type LoggingScanService struct {
	next   jobscan.ScanService
	logger *slog.Logger
}

// NewLoggingScanService creates a new LoggingScanService.
func NewLoggingScanService(next jobscan.ScanService, logger *slog.Logger) *LoggingScanService {
	return &LoggingScanService{next: next, logger: logger}
}

// CreateScan delegates to the wrapped service and logs the operation.
func (s *LoggingScanService) CreateScan(ctx context.Context, scan *jobscan.Scan, verdicts []*jobscan.PageVerdict) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("archive scan",
			"id", scan.ID,
			"verdicts", len(verdicts),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.CreateScan(ctx, scan, verdicts)
}

// FindScanByID delegates to the wrapped service.
func (s *LoggingScanService) FindScanByID(ctx context.Context, id string) (*jobscan.Scan, error) {
	return s.next.FindScanByID(ctx, id)
}

// FindScans delegates to the wrapped service.
func (s *LoggingScanService) FindScans(ctx context.Context, filter jobscan.ScanFilter) ([]*jobscan.Scan, error) {
	return s.next.FindScans(ctx, filter)
}

// FindVerdicts delegates to the wrapped service.
func (s *LoggingScanService) FindVerdicts(ctx context.Context, scanID string) ([]*jobscan.PageVerdict, error) {
	return s.next.FindVerdicts(ctx, scanID)
}

// DeleteScan delegates to the wrapped service and logs the operation.
func (s *LoggingScanService) DeleteScan(ctx context.Context, id string) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("delete scan",
			"id", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DeleteScan(ctx, id)
}

package mock

import (
	"context"

	"github.com/fwojciec/jobscan"
)

var (
	_ jobscan.Scanner     = (*Scanner)(nil)
	_ jobscan.ScanService = (*ScanService)(nil)
)

// Scanner is a mock implementation of jobscan.Scanner.
type Scanner struct {
	ScanFn func(ctx context.Context, urls []string, progress jobscan.ScanProgressFunc) ([]*jobscan.PageVerdict, error)
}

func (s *Scanner) Scan(ctx context.Context, urls []string, progress jobscan.ScanProgressFunc) ([]*jobscan.PageVerdict, error) {
	return s.ScanFn(ctx, urls, progress)
}

// ScanService is a mock implementation of jobscan.ScanService.
type ScanService struct {
	CreateScanFn   func(ctx context.Context, scan *jobscan.Scan, verdicts []*jobscan.PageVerdict) error
	FindScanByIDFn func(ctx context.Context, id string) (*jobscan.Scan, error)
	FindScansFn    func(ctx context.Context, filter jobscan.ScanFilter) ([]*jobscan.Scan, error)
	FindVerdictsFn func(ctx context.Context, scanID string) ([]*jobscan.PageVerdict, error)
	DeleteScanFn   func(ctx context.Context, id string) error
}

func (s *ScanService) CreateScan(ctx context.Context, scan *jobscan.Scan, verdicts []*jobscan.PageVerdict) error {
	return s.CreateScanFn(ctx, scan, verdicts)
}

func (s *ScanService) FindScanByID(ctx context.Context, id string) (*jobscan.Scan, error) {
	return s.FindScanByIDFn(ctx, id)
}

func (s *ScanService) FindScans(ctx context.Context, filter jobscan.ScanFilter) ([]*jobscan.Scan, error) {
	return s.FindScansFn(ctx, filter)
}

func (s *ScanService) FindVerdicts(ctx context.Context, scanID string) ([]*jobscan.PageVerdict, error) {
	return s.FindVerdictsFn(ctx, scanID)
}

func (s *ScanService) DeleteScan(ctx context.Context, id string) error {
	return s.DeleteScanFn(ctx, id)
}

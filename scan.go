package jobscan

import (
	"context"
	"time"
)

// ScanProgress reports progress during a batch scan.
type ScanProgress struct {
	URL       string
	Completed int
	Total     int
	Verdict   *PageVerdict
}

// ScanProgressFunc is called as each URL finishes.
type ScanProgressFunc func(ScanProgress)

// Scanner classifies a batch of posting URLs.
type Scanner interface {
	// Scan fetches and classifies every URL. The returned verdicts are in
	// input order, one per URL. A failure for one URL never stops the batch;
	// an error is returned only if ctx is canceled.
	Scan(ctx context.Context, urls []string, progress ScanProgressFunc) ([]*PageVerdict, error)
}

// Scan is an archived batch run.
type Scan struct {
	ID        string        `json:"id"`
	StartedAt time.Time     `json:"startedAt"`
	Mode      MatchMode     `json:"mode"`
	Strategy  MatchStrategy `json:"strategy"`
	Roles     []string      `json:"roles"`
	Total     int           `json:"total"`
}

// Validate returns an error if the scan contains invalid fields.
func (s *Scan) Validate() error {
	if s.Mode != Strict && s.Mode != Permissive {
		return Errorf(EINVALID, "scan mode %q invalid", s.Mode)
	}
	if len(s.Roles) == 0 {
		return Errorf(EINVALID, "scan roles required")
	}
	return nil
}

// ScanFilter represents a filter for FindScans.
type ScanFilter struct {
	ID *string `json:"id"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// ScanService archives scan runs and their verdicts.
type ScanService interface {
	// CreateScan stores a scan with its verdicts. The scan ID is assigned.
	CreateScan(ctx context.Context, scan *Scan, verdicts []*PageVerdict) error

	// FindScanByID retrieves a scan by ID.
	// Returns ENOTFOUND if the scan does not exist.
	FindScanByID(ctx context.Context, id string) (*Scan, error)

	// FindScans retrieves scans matching the filter, newest first.
	FindScans(ctx context.Context, filter ScanFilter) ([]*Scan, error)

	// FindVerdicts retrieves the verdicts of a scan in input order.
	// Returns ENOTFOUND if the scan does not exist.
	FindVerdicts(ctx context.Context, scanID string) ([]*PageVerdict, error)

	// DeleteScan removes a scan and its verdicts.
	// Returns ENOTFOUND if the scan does not exist.
	DeleteScan(ctx context.Context, id string) error
}

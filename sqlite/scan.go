package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/jobscan"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ jobscan.ScanService = (*ScanService)(nil)

// ScanService implements jobscan.ScanService using SQLite.
type ScanService struct {
	db *DB
}

// NewScanService creates a new ScanService.
func NewScanService(db *DB) *ScanService {
	return &ScanService{db: db}
}

// CreateScan stores the scan and its verdicts in one transaction.
func (s *ScanService) CreateScan(ctx context.Context, scan *jobscan.Scan, verdicts []*jobscan.PageVerdict) error {
	if err := scan.Validate(); err != nil {
		return err
	}

	scan.ID = uuid.New().String()
	if scan.StartedAt.IsZero() {
		scan.StartedAt = time.Now()
	}
	scan.StartedAt = scan.StartedAt.UTC().Truncate(time.Second)
	scan.Total = len(verdicts)

	roles, err := encodeList(scan.Roles)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO scans (id, started_at, mode, strategy, roles, total)
		VALUES (?, ?, ?, ?, ?, ?)
	`, scan.ID, formatTime(scan.StartedAt), string(scan.Mode), string(scan.Strategy),
		roles, scan.Total); err != nil {
		return err
	}

	for i, v := range verdicts {
		if err := insertVerdict(ctx, tx, scan.ID, i, v); err != nil {
			return fmt.Errorf("failed to store verdict for %s: %w", v.URL, err)
		}
	}

	return tx.Commit()
}

func insertVerdict(ctx context.Context, tx *sql.Tx, scanID string, position int, v *jobscan.PageVerdict) error {
	roles, err := encodeList(v.MatchedRoles)
	if err != nil {
		return err
	}
	models, err := encodeList(v.MatchedModels)
	if err != nil {
		return err
	}

	fetchedAt := v.FetchedAt
	if fetchedAt.IsZero() {
		fetchedAt = time.Now()
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO verdicts (
			scan_id, position, url, readable, status, status_code, title_found,
			confidence, matched_roles, matched_models, is_latam, language, board,
			title, note, content_hash, fetched_at, duration_ms
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, scanID, position, v.URL, v.Readable, string(v.Status), v.StatusCode, v.TitleFound,
		string(v.Confidence), roles, models, v.IsLatam, v.Language, string(v.Board),
		v.Title, v.Note, v.ContentHash, formatTime(fetchedAt), v.Duration.Milliseconds())
	return err
}

// FindScanByID retrieves a scan by ID.
func (s *ScanService) FindScanByID(ctx context.Context, id string) (*jobscan.Scan, error) {
	scans, err := s.FindScans(ctx, jobscan.ScanFilter{ID: &id, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(scans) == 0 {
		return nil, jobscan.Errorf(jobscan.ENOTFOUND, "scan not found")
	}
	return scans[0], nil
}

// FindScans retrieves scans matching the filter, newest first.
func (s *ScanService) FindScans(ctx context.Context, filter jobscan.ScanFilter) ([]*jobscan.Scan, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, started_at, mode, strategy, roles, total FROM scans WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}

	query.WriteString(" ORDER BY started_at DESC, rowid DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var scans []*jobscan.Scan
	for rows.Next() {
		var scan jobscan.Scan
		var startedAt, mode, strategy, roles string

		if err := rows.Scan(&scan.ID, &startedAt, &mode, &strategy, &roles, &scan.Total); err != nil {
			return nil, err
		}

		scan.Mode = jobscan.MatchMode(mode)
		scan.Strategy = jobscan.MatchStrategy(strategy)
		if scan.StartedAt, err = parseTime(startedAt, "started_at"); err != nil {
			return nil, err
		}
		if scan.Roles, err = decodeList(roles, "roles"); err != nil {
			return nil, err
		}

		scans = append(scans, &scan)
	}

	return scans, rows.Err()
}

// FindVerdicts retrieves the verdicts of a scan in input order.
func (s *ScanService) FindVerdicts(ctx context.Context, scanID string) ([]*jobscan.PageVerdict, error) {
	if _, err := s.FindScanByID(ctx, scanID); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT url, readable, status, status_code, title_found, confidence,
			matched_roles, matched_models, is_latam, language, board, title, note,
			content_hash, fetched_at, duration_ms
		FROM verdicts
		WHERE scan_id = ?
		ORDER BY position
	`, scanID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var verdicts []*jobscan.PageVerdict
	for rows.Next() {
		var v jobscan.PageVerdict
		var status, confidence, roles, models, board, fetchedAt string
		var durationMS int64

		if err := rows.Scan(&v.URL, &v.Readable, &status, &v.StatusCode, &v.TitleFound, &confidence,
			&roles, &models, &v.IsLatam, &v.Language, &board, &v.Title, &v.Note,
			&v.ContentHash, &fetchedAt, &durationMS); err != nil {
			return nil, err
		}

		v.Status = jobscan.Status(status)
		v.Confidence = jobscan.Confidence(confidence)
		v.Board = jobscan.Board(board)
		v.Duration = time.Duration(durationMS) * time.Millisecond
		if v.MatchedRoles, err = decodeList(roles, "matched_roles"); err != nil {
			return nil, err
		}
		if v.MatchedModels, err = decodeList(models, "matched_models"); err != nil {
			return nil, err
		}
		if v.FetchedAt, err = parseTime(fetchedAt, "fetched_at"); err != nil {
			return nil, err
		}

		verdicts = append(verdicts, &v)
	}

	return verdicts, rows.Err()
}

// DeleteScan permanently removes a scan and its verdicts.
func (s *ScanService) DeleteScan(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM scans WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return jobscan.Errorf(jobscan.ENOTFOUND, "scan not found")
	}

	return nil
}

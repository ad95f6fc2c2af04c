package jobscan

import "context"

// Snapshot is a readable posting saved as Markdown for later review.
type Snapshot struct {
	URL      string
	Title    string
	Markdown string
	Verdict  *PageVerdict
}

// SnapshotStore saves snapshots with all-or-nothing semantics: nothing is
// visible at the destination until Commit.
type SnapshotStore interface {
	Save(ctx context.Context, snap *Snapshot) error
	Commit() error
	Abort() error
}

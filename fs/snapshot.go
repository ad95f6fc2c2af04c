// Package fs writes scan output to the local file system.
package fs

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/jobscan"
	"gopkg.in/yaml.v3"
)

// Ensure SnapshotStore implements jobscan.SnapshotStore at compile time.
var _ jobscan.SnapshotStore = (*SnapshotStore)(nil)

// SnapshotStore implements jobscan.SnapshotStore with atomic update semantics.
// Snapshots are saved to a temporary directory, then moved atomically on Commit.
type SnapshotStore struct {
	baseDir string
	name    string
}

// NewSnapshotStore creates a new SnapshotStore.
// Files are saved to baseDir/name.tmp and moved to baseDir/name on Commit.
// Anything left in baseDir/name.tmp by an interrupted run is removed.
func NewSnapshotStore(baseDir, name string) *SnapshotStore {
	s := &SnapshotStore{
		baseDir: baseDir,
		name:    name,
	}
	_ = os.RemoveAll(s.tempDir())
	return s
}

func (s *SnapshotStore) tempDir() string {
	return filepath.Join(s.baseDir, s.name+".tmp")
}

func (s *SnapshotStore) finalDir() string {
	return filepath.Join(s.baseDir, s.name)
}

// Save writes snap below the temporary directory at a path derived from
// its URL.
func (s *SnapshotStore) Save(ctx context.Context, snap *jobscan.Snapshot) error {
	relPath, err := URLToPath(snap.URL)
	if err != nil {
		return err
	}

	fullPath := filepath.Join(s.tempDir(), relPath)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}

	content, err := FormatSnapshot(snap, time.Now())
	if err != nil {
		return err
	}
	return os.WriteFile(fullPath, []byte(content), 0644)
}

// Commit replaces the destination directory with the saved snapshots.
func (s *SnapshotStore) Commit() error {
	if _, err := os.Stat(s.tempDir()); os.IsNotExist(err) {
		return nil
	}
	if err := os.RemoveAll(s.finalDir()); err != nil {
		return err
	}
	return os.Rename(s.tempDir(), s.finalDir())
}

// Abort discards everything saved since the store was created.
func (s *SnapshotStore) Abort() error {
	return os.RemoveAll(s.tempDir())
}

// URLToPath converts a posting URL to a relative file path under its host.
// A query string adds a hash suffix, since many boards identify a posting
// only by its query.
// Example: https://jobs.lever.co/acme/123 → jobs.lever.co/acme/123.md
// Example: https://acme.com/careers?gh_jid=111 → acme.com/careers-<hash>.md
func URLToPath(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", jobscan.Errorf(jobscan.EINVALID, "invalid URL: %v", err)
	}
	host := u.Hostname()
	if host == "" {
		return "", jobscan.Errorf(jobscan.EINVALID, "URL has no host: %s", rawURL)
	}

	for _, seg := range strings.Split(u.Path, "/") {
		if seg == ".." {
			return "", jobscan.Errorf(jobscan.EINVALID, "path traversal in URL: %s", rawURL)
		}
	}

	path := strings.TrimPrefix(u.Path, "/")
	if path == "" || strings.HasSuffix(path, "/") {
		path += "index"
	}
	if u.RawQuery != "" {
		path += fmt.Sprintf("-%08x", uint32(xxhash.Sum64String(u.RawQuery)))
	}
	return filepath.Join(host, filepath.FromSlash(path+".md")), nil
}

// frontmatter is the YAML header written above each snapshot.
type frontmatter struct {
	Source     string   `yaml:"source"`
	Title      string   `yaml:"title,omitempty"`
	Roles      []string `yaml:"roles,omitempty"`
	WorkModels []string `yaml:"work_models,omitempty"`
	Latam      bool     `yaml:"latam"`
	Board      string   `yaml:"board,omitempty"`
	Captured   string   `yaml:"captured"`
}

// FormatSnapshot formats a snapshot with YAML frontmatter.
func FormatSnapshot(snap *jobscan.Snapshot, now time.Time) (string, error) {
	fm := frontmatter{
		Source:   snap.URL,
		Title:    snap.Title,
		Captured: now.Format("2006-01-02"),
	}
	if v := snap.Verdict; v != nil {
		fm.Roles = v.MatchedRoles
		fm.WorkModels = v.MatchedModels
		fm.Latam = v.IsLatam
		fm.Board = string(v.Board)
	}
	header, err := yaml.Marshal(fm)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(header)
	b.WriteString("---\n\n")
	b.WriteString(snap.Markdown)
	return b.String(), nil
}

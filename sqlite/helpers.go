package sqlite

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Timestamps are stored as RFC3339 text in UTC, truncated to the second.
func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func parseTime(value, column string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse %s: %w", column, err)
	}
	return t, nil
}

// encodeList stores a string list as a JSON array. A nil list is stored as
// [] so that json_each and json_array_length work on every row.
func encodeList(items []string) (string, error) {
	if items == nil {
		items = []string{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// decodeList reads a column written by encodeList. It always returns a
// non-nil slice.
func decodeList(value, column string) ([]string, error) {
	items := []string{}
	if value == "" {
		return items, nil
	}
	if err := json.Unmarshal([]byte(value), &items); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", column, err)
	}
	return items, nil
}

// appendPagination adds LIMIT and OFFSET for positive values. SQLite only
// accepts OFFSET after a LIMIT, so an offset alone uses LIMIT -1.
func appendPagination(query *strings.Builder, args *[]any, limit, offset int) {
	switch {
	case limit > 0:
		query.WriteString(" LIMIT ?")
		*args = append(*args, limit)
	case offset > 0:
		query.WriteString(" LIMIT -1")
	}
	if offset > 0 {
		query.WriteString(" OFFSET ?")
		*args = append(*args, offset)
	}
}

package classify

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Normalize collapses whitespace runs to single spaces, lowercases, and
// composes Unicode so that "í" typed as i + combining accent equals "í".
// Every term and every haystack goes through this one function.
func Normalize(s string) string {
	return strings.ToLower(norm.NFC.String(strings.Join(strings.Fields(s), " ")))
}

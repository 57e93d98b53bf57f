package app

import (
	"regexp"
	"strings"
)

const maxTracedQueryLength = 512

var sqlWhitespace = regexp.MustCompile(`\s+`)

// formatDBQueryForTrace collapses a statement to a single line and caps its
// length so span attributes stay readable.
func formatDBQueryForTrace(query string) string {
	flat := sqlWhitespace.ReplaceAllString(strings.TrimSpace(query), " ")
	if len(flat) > maxTracedQueryLength {
		return flat[:maxTracedQueryLength] + "..."
	}
	return flat
}

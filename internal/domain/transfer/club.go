package transfer

import (
	"regexp"
	"strings"
)

var reserveSuffix = regexp.MustCompile(`(?i)\s+(U\d+|II|III|IV|B|C)$`)

// MainClubName strips a trailing youth or reserve squad marker (U21, II, B
// and the like) so a promotion from a club's second team does not register
// as a transfer.
func MainClubName(name string) string {
	return strings.TrimSpace(reserveSuffix.ReplaceAllString(name, ""))
}

// SameMainClub compares two club names after suffix normalization,
// case-insensitively.
func SameMainClub(a, b string) bool {
	return strings.EqualFold(MainClubName(a), MainClubName(b))
}

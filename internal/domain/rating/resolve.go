package rating

import "strings"

// DefaultRating is the neutral fallback for unknown teams and leagues.
const DefaultRating = 50.0

// Resolution is a resolved rating plus whether it came from stored data or
// the neutral fallback.
type Resolution struct {
	Rating  float64
	Matched bool
}

// ResolveLeague returns the first stored league whose display name appears
// inside the player's league string. Stored keys are full display names like
// "England Premier League 2025-26" while player rows carry differently
// formatted league labels, so containment decides the match, not equality.
func ResolveLeague(stored []LeagueRating, playerLeague string, fallback float64) Resolution {
	for _, lr := range stored {
		if lr.DisplayName == "" {
			continue
		}
		if strings.Contains(playerLeague, lr.DisplayName) {
			return Resolution{Rating: lr.Rating, Matched: true}
		}
	}

	return Resolution{Rating: fallback, Matched: false}
}

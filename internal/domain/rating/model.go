package rating

import (
	"fmt"
	"math"
)

// TeamRating maps a canonical club name to its competitive-strength score on
// a roughly 0-100 scale. LeagueID is the provider identifier of the club's
// domestic competition and drives league-rating derivation.
type TeamRating struct {
	Team     string
	LeagueID string
	Rating   float64
}

func (t TeamRating) Validate() error {
	if t.Team == "" {
		return fmt.Errorf("team name is required")
	}
	if math.IsNaN(t.Rating) || math.IsInf(t.Rating, 0) {
		return fmt.Errorf("team rating is not finite")
	}
	if t.Rating < 0 {
		return fmt.Errorf("team rating must not be negative")
	}

	return nil
}

// LeagueRating maps a league display name to the mean rating of its member
// teams. Order matters: resolution scans stored ratings front to back.
type LeagueRating struct {
	DisplayName string
	Rating      float64
}

func (l LeagueRating) Validate() error {
	if l.DisplayName == "" {
		return fmt.Errorf("league display name is required")
	}
	if math.IsNaN(l.Rating) || math.IsInf(l.Rating, 0) {
		return fmt.Errorf("league rating is not finite")
	}
	if l.Rating < 0 {
		return fmt.Errorf("league rating must not be negative")
	}

	return nil
}

package rating

import "math"

// League pairs a provider competition identifier with its display name.
type League struct {
	ID          string
	DisplayName string
}

// TrackedLeagues lists the competitions covered by rating derivation, in the
// order league resolution scans them.
var TrackedLeagues = []League{
	{ID: "2kwbbcootiqqgmrzs6o5inle5", DisplayName: "England Premier League 2025-26"},
	{ID: "6by3h89i2eykc341oz7lv1ddd", DisplayName: "Germany Bundesliga 2025-26"},
	{ID: "1r097lpxe0xn03ihb7wi98kao", DisplayName: "Italy Serie A 2025-26"},
	{ID: "34pl8szyvrbwcmfkuocjm3r6t", DisplayName: "Spain La Liga 2025-26"},
	{ID: "dm5ka0os1e3dxcp3vh05kmp33", DisplayName: "France Ligue 1 2025-26"},
}

// DeriveLeagueRatings averages member-team ratings per tracked league,
// rounded to three decimals. Leagues with no rated teams are omitted. Output
// order follows TrackedLeagues.
func DeriveLeagueRatings(teams []TeamRating) []LeagueRating {
	sums := make(map[string]float64, len(TrackedLeagues))
	counts := make(map[string]int, len(TrackedLeagues))
	for _, t := range teams {
		sums[t.LeagueID] += t.Rating
		counts[t.LeagueID]++
	}

	out := make([]LeagueRating, 0, len(TrackedLeagues))
	for _, league := range TrackedLeagues {
		n := counts[league.ID]
		if n == 0 {
			continue
		}
		out = append(out, LeagueRating{
			DisplayName: league.DisplayName,
			Rating:      round3(sums[league.ID] / float64(n)),
		})
	}

	return out
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

package memory

import (
	"github.com/mbarese/transfer-sim/internal/domain/player"
	"github.com/mbarese/transfer-sim/internal/domain/position"
	"github.com/mbarese/transfer-sim/internal/domain/rating"
)

const (
	SeasonCurrent  = "2025-26"
	SeasonPrevious = "2024-25"

	LeaguePremier    = "England Premier League 2025-26"
	LeagueBundesliga = "Germany Bundesliga 2025-26"
	LeagueSerieA     = "Italy Serie A 2025-26"

	LeaguePremierPrev    = "England Premier League 2024-25"
	LeagueBundesligaPrev = "Germany Bundesliga 2024-25"
	LeagueSerieAPrev     = "Italy Serie A 2024-25"
)

func SeedTeamRatings() []rating.TeamRating {
	return []rating.TeamRating{
		{Team: "Arsenal", LeagueID: "2kwbbcootiqqgmrzs6o5inle5", Rating: 88},
		{Team: "Manchester City", LeagueID: "2kwbbcootiqqgmrzs6o5inle5", Rating: 91},
		{Team: "Brentford", LeagueID: "2kwbbcootiqqgmrzs6o5inle5", Rating: 69},
		{Team: "Bayern Munich", LeagueID: "6by3h89i2eykc341oz7lv1ddd", Rating: 90},
		{Team: "Borussia Dortmund", LeagueID: "6by3h89i2eykc341oz7lv1ddd", Rating: 80},
		{Team: "Inter", LeagueID: "1r097lpxe0xn03ihb7wi98kao", Rating: 86},
		{Team: "Napoli", LeagueID: "1r097lpxe0xn03ihb7wi98kao", Rating: 78},
	}
}

// SeedLeagueRatings derives league ratings from the seeded team ratings the
// same way a reference reload would.
func SeedLeagueRatings() []rating.LeagueRating {
	return rating.DeriveLeagueRatings(SeedTeamRatings())
}

func SeedPlayers() []player.Record {
	return []player.Record{
		// 2025-26
		seedRecord("Emil Varga", "Arsenal", LeaguePremier, SeasonCurrent, "CF", 24, 2100, map[string]*float64{
			"Goals": fv(14), "xG": fv(12.3), "Assists": fv(5), "xA": fv(4.1), "Shots": fv(58), "Passes per 90": fv(24.1),
		}),
		seedRecord("Jorge Canales", "Arsenal", LeaguePremier, SeasonCurrent, "AMF", 27, 1800, map[string]*float64{
			"Goals": fv(6), "xG": fv(5.2), "Assists": fv(9), "xA": fv(8.4), "Shots": fv(31), "Passes per 90": fv(41.7),
		}),
		seedRecord("Tomas Lindqvist", "Arsenal", LeaguePremier, SeasonCurrent, "CB", 29, 2400, map[string]*float64{
			"Goals": fv(2), "xG": fv(1.1), "Assists": fv(1), "xA": fv(0.6), "Shots": fv(14), "Passes per 90": fv(55.3),
		}),
		seedRecord("Rasmus Holm", "Manchester City", LeaguePremier, SeasonCurrent, "CF", 25, 2000, map[string]*float64{
			"Goals": fv(17), "xG": fv(15.8), "Assists": fv(6), "xA": fv(5.0), "Shots": fv(66), "Passes per 90": fv(19.8),
		}),
		seedRecord("Luca Moretti", "Manchester City", LeaguePremier, SeasonCurrent, "RW", 22, 1700, map[string]*float64{
			"Goals": fv(9), "xG": fv(7.9), "Assists": fv(7), "xA": fv(6.3), "Shots": fv(44), "Passes per 90": fv(27.5),
		}),
		seedRecord("Danny Whitfield", "Brentford", LeaguePremier, SeasonCurrent, "CF", 28, 2300, map[string]*float64{
			"Goals": fv(11), "xG": fv(9.6), "Assists": fv(3), "xA": nil, "Shots": fv(61), "Passes per 90": fv(14.9),
		}),
		seedRecord("Niklas Brandt", "Bayern Munich", LeagueBundesliga, SeasonCurrent, "CF", 26, 2200, map[string]*float64{
			"Goals": fv(19), "xG": fv(17.2), "Assists": fv(5), "xA": fv(4.4), "Shots": fv(72), "Passes per 90": fv(21.0),
		}),
		seedRecord("Felix Auer", "Bayern Munich", LeagueBundesliga, SeasonCurrent, "GK", 31, 2700, map[string]*float64{
			"Goals": fv(0), "xG": fv(0.1), "Assists": fv(0), "xA": fv(0.2), "Shots": fv(0), "Passes per 90": fv(32.4),
		}),
		seedRecord("Karim Duval", "Borussia Dortmund", LeagueBundesliga, SeasonCurrent, "LW", 21, 1600, map[string]*float64{
			"Goals": fv(8), "xG": fv(8.8), "Assists": fv(6), "xA": fv(5.7), "Shots": fv(38), "Passes per 90": fv(25.6),
		}),
		seedRecord("Oskar Jensen", "Borussia Dortmund", LeagueBundesliga, SeasonCurrent, "DMF", 27, 2000, map[string]*float64{
			"Goals": fv(3), "xG": fv(2.4), "Assists": fv(4), "xA": fv(3.6), "Shots": fv(21), "Passes per 90": fv(61.2),
		}),
		seedRecord("Matteo Ricci", "Inter", LeagueSerieA, SeasonCurrent, "SS", 25, 1900, map[string]*float64{
			"Goals": fv(13), "xG": fv(11.9), "Assists": fv(4), "xA": fv(3.8), "Shots": fv(52), "Passes per 90": fv(22.7),
		}),
		seedRecord("Davide Colombo", "Napoli", LeagueSerieA, SeasonCurrent, "CMF", 28, 2100, map[string]*float64{
			"Goals": fv(5), "xG": fv(4.1), "Assists": fv(8), "xA": fv(7.0), "Shots": fv(27), "Passes per 90": fv(58.4),
		}),

		// 2024-25, enough history to detect transfers.
		seedRecord("Emil Varga", "Borussia Dortmund", LeagueBundesligaPrev, SeasonPrevious, "CF", 23, 1900, map[string]*float64{
			"Goals": fv(16), "xG": fv(13.8), "Assists": fv(4), "xA": fv(3.5), "Shots": fv(62), "Passes per 90": fv(20.3),
		}),
		seedRecord("Rasmus Holm", "Manchester City", LeaguePremierPrev, SeasonPrevious, "CF", 24, 1800, map[string]*float64{
			"Goals": fv(15), "xG": fv(14.1), "Assists": fv(5), "xA": fv(4.6), "Shots": fv(59), "Passes per 90": fv(18.9),
		}),
		seedRecord("Karim Duval", "Borussia Dortmund II", LeagueBundesligaPrev, SeasonPrevious, "LW", 20, 1400, map[string]*float64{
			"Goals": fv(9), "xG": fv(7.4), "Assists": fv(5), "xA": fv(4.2), "Shots": fv(35), "Passes per 90": fv(23.1),
		}),
		seedRecord("Matteo Ricci", "Napoli", LeagueSerieAPrev, SeasonPrevious, "SS", 24, 2000, map[string]*float64{
			"Goals": fv(10), "xG": fv(9.3), "Assists": fv(6), "xA": fv(5.1), "Shots": fv(47), "Passes per 90": fv(21.5),
		}),
		seedRecord("Danny Whitfield", "Brentford", LeaguePremierPrev, SeasonPrevious, "CF", 27, 2200, map[string]*float64{
			"Goals": fv(12), "xG": fv(10.2), "Assists": fv(2), "xA": fv(1.8), "Shots": fv(64), "Passes per 90": fv(15.2),
		}),
	}
}

func seedRecord(name, club, league, season, pos string, age, minutes int, metrics map[string]*float64) player.Record {
	return player.Record{
		Name:          name,
		ParentTeam:    club,
		Team:          club,
		League:        league,
		Season:        season,
		Age:           age,
		Position:      pos,
		PositionGroup: position.GroupFor(pos),
		MinutesPlayed: minutes,
		Metrics:       metrics,
	}
}

func fv(v float64) *float64 {
	return &v
}

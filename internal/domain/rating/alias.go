package rating

// teamAliases maps provider club names from the power-rankings feed onto the
// names used by the player dataset. Clubs without an entry pass through
// unchanged.
var teamAliases = map[string]string{
	"Manchester United FC":      "Manchester United",
	"Manchester City FC":        "Manchester City",
	"Liverpool FC":              "Liverpool",
	"Arsenal FC":                "Arsenal",
	"Chelsea FC":                "Chelsea",
	"Tottenham Hotspur FC":      "Tottenham Hotspur",
	"Newcastle United FC":       "Newcastle United",
	"FC Bayern München":         "Bayern Munich",
	"Borussia Dortmund":         "Borussia Dortmund",
	"Bayer 04 Leverkusen":       "Bayer Leverkusen",
	"RB Leipzig":                "RB Leipzig",
	"FC Internazionale Milano":  "Inter",
	"AC Milan":                  "AC Milan",
	"Juventus FC":               "Juventus",
	"SSC Napoli":                "Napoli",
	"AS Roma":                   "Roma",
	"Real Madrid CF":            "Real Madrid",
	"FC Barcelona":              "Barcelona",
	"Club Atlético de Madrid":   "Atlético Madrid",
	"Real Sociedad de Fútbol":   "Real Sociedad",
	"Athletic Club de Bilbao":   "Athletic Bilbao",
	"Paris Saint-Germain FC":    "Paris Saint-Germain",
	"Olympique de Marseille":    "Marseille",
	"Olympique Lyonnais":        "Lyon",
	"AS Monaco FC":              "Monaco",
	"LOSC Lille":                "Lille",
}

// CanonicalTeamName normalizes a provider club name to the dataset's
// canonical form.
func CanonicalTeamName(name string) string {
	if canonical, ok := teamAliases[name]; ok {
		return canonical
	}
	return name
}

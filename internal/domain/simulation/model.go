package simulation

// Context describes one side of a transfer comparison. Metrics maps metric
// name to value; nil marks values missing in the source data (current side)
// or skipped because the source was missing (potential side).
type Context struct {
	Team         string
	League       string
	TeamRating   float64
	LeagueRating float64
	Metrics      map[string]*float64
}

// Result compares a player's current context against the simulated
// destination context. Averages is keyed by metric name and populated only
// when position-aware scaling was requested.
type Result struct {
	Player        string
	PositionGroup string
	Season        string
	Current       Context
	Potential     Context
	Averages      map[string]CohortAverages
}

// Package transfer detects between-season club changes from player records.
package transfer

// Transfer is a detected move: the player appeared in both seasons with
// different normalized main clubs. Minutes identify the representative row
// used for each season.
type Transfer struct {
	Player      string
	Position    string
	FromSeason  string
	ToSeason    string
	FromClub    string
	ToClub      string
	FromMinutes int
	ToMinutes   int
}

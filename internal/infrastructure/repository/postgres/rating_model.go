package postgres

import "time"

type teamRatingTableModel struct {
	ID        int64     `db:"id"`
	Team      string    `db:"team"`
	LeagueID  string    `db:"league_id"`
	Rating    float64   `db:"rating"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type leagueRatingTableModel struct {
	ID          int64     `db:"id"`
	DisplayName string    `db:"display_name"`
	Rating      float64   `db:"rating"`
	CreatedAt   time.Time `db:"created_at"`
}

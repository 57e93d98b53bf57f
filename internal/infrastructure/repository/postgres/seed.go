package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/mbarese/transfer-sim/internal/infrastructure/repository/memory"
)

// BootstrapSeed loads the reference dataset into an empty database so a
// fresh environment can serve simulations immediately. League ratings are
// not seeded here; the reference reload derives them from team ratings.
func BootstrapSeed(ctx context.Context, db *sqlx.DB) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM players`); err != nil {
		return fmt.Errorf("count players for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	const insertPlayer = `
INSERT INTO players (name, parent_team, team, league, season, age, position, position_group, minutes_played, metrics)
VALUES (:name, :parent_team, :team, :league, :season, :age, :position, :position_group, :minutes_played, :metrics)`

	for _, record := range memory.SeedPlayers() {
		metrics, err := encodeMetrics(record.Metrics)
		if err != nil {
			return fmt.Errorf("encode seed metrics for %s: %w", record.Name, err)
		}
		if _, err := tx.NamedExecContext(ctx, insertPlayer, map[string]any{
			"name":           record.Name,
			"parent_team":    record.ParentTeam,
			"team":           record.Team,
			"league":         record.League,
			"season":         record.Season,
			"age":            record.Age,
			"position":       record.Position,
			"position_group": record.PositionGroup,
			"minutes_played": record.MinutesPlayed,
			"metrics":        metrics,
		}); err != nil {
			return fmt.Errorf("seed player %s: %w", record.Name, err)
		}
	}

	const insertTeamRating = `
INSERT INTO team_ratings (team, league_id, rating)
VALUES (:team, :league_id, :rating)
ON CONFLICT (team) DO NOTHING`

	for _, item := range memory.SeedTeamRatings() {
		if _, err := tx.NamedExecContext(ctx, insertTeamRating, map[string]any{
			"team":      item.Team,
			"league_id": item.LeagueID,
			"rating":    item.Rating,
		}); err != nil {
			return fmt.Errorf("seed team rating %s: %w", item.Team, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}

	return nil
}

package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/mbarese/transfer-sim/internal/domain/rating"
	qb "github.com/mbarese/transfer-sim/internal/platform/querybuilder"
)

type LeagueRatingRepository struct {
	db *sqlx.DB
}

func NewLeagueRatingRepository(db *sqlx.DB) *LeagueRatingRepository {
	return &LeagueRatingRepository{db: db}
}

func (r *LeagueRatingRepository) List(ctx context.Context) ([]rating.LeagueRating, error) {
	query, args, err := qb.Select("*").From("league_ratings").
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select league ratings query: %w", err)
	}

	var rows []leagueRatingTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select league ratings: %w", err)
	}

	out := make([]rating.LeagueRating, 0, len(rows))
	for _, row := range rows {
		out = append(out, rating.LeagueRating{
			DisplayName: row.DisplayName,
			Rating:      row.Rating,
		})
	}

	return out, nil
}

// ReplaceAll swaps the stored table for the given one. Rows are inserted in
// order because resolution scans the table front to back.
func (r *LeagueRatingRepository) ReplaceAll(ctx context.Context, ratings []rating.LeagueRating) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace league ratings tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM league_ratings`); err != nil {
		return fmt.Errorf("clear league ratings: %w", err)
	}

	for _, item := range ratings {
		query, args, err := qb.InsertInto("league_ratings").
			Columns("display_name", "rating").
			Values(item.DisplayName, item.Rating).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build insert league rating %s query: %w", item.DisplayName, err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert league rating %s: %w", item.DisplayName, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace league ratings tx: %w", err)
	}

	return nil
}

package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/mbarese/transfer-sim/internal/domain/player"
	qb "github.com/mbarese/transfer-sim/internal/platform/querybuilder"
)

type PlayerRepository struct {
	db *sqlx.DB
}

var playerSelectColumns = []string{
	"id",
	"name",
	"parent_team",
	"team",
	"league",
	"season",
	"age",
	"position",
	"position_group",
	"minutes_played",
	"metrics::text AS metrics",
	"created_at",
	"updated_at",
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) List(ctx context.Context, filter player.Filter) ([]player.Record, error) {
	builder := qb.Select(playerSelectColumns...).From("players")

	conditions := make([]qb.Condition, 0, 4)
	if filter.Season != "" {
		conditions = append(conditions, qb.Eq("season", filter.Season))
	}
	if filter.ParentTeam != "" {
		conditions = append(conditions, qb.Eq("parent_team", filter.ParentTeam))
	}
	if filter.League != "" {
		conditions = append(conditions, qb.Eq("league", filter.League))
	}
	if filter.PositionGroup != "" {
		conditions = append(conditions, qb.Eq("position_group", filter.PositionGroup))
	}
	if len(conditions) > 0 {
		builder = builder.Where(conditions...)
	}
	builder = builder.OrderBy("id")
	if filter.Limit > 0 {
		builder = builder.Limit(filter.Limit)
	}

	query, args, err := builder.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select players query: %w", err)
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select players: %w", err)
	}

	out := make([]player.Record, 0, len(rows))
	for _, row := range rows {
		record, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, record)
	}

	return out, nil
}

// FindByName returns the first stored row for the season and name, matching
// how listings read the reference table front to back.
func (r *PlayerRepository) FindByName(ctx context.Context, season, name string) (player.Record, bool, error) {
	query, args, err := qb.Select(playerSelectColumns...).From("players").
		Where(
			qb.Eq("season", season),
			qb.Eq("name", name),
		).
		OrderBy("id").
		Limit(1).
		ToSQL()
	if err != nil {
		return player.Record{}, false, fmt.Errorf("build get player by name query: %w", err)
	}

	var row playerTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return player.Record{}, false, nil
		}
		return player.Record{}, false, fmt.Errorf("get player by name: %w", err)
	}

	record, err := row.toDomain()
	if err != nil {
		return player.Record{}, false, err
	}

	return record, true, nil
}

func (r *PlayerRepository) Seasons(ctx context.Context) ([]string, error) {
	query, args, err := qb.Select("DISTINCT season").From("players").
		OrderBy("season").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select seasons query: %w", err)
	}

	var seasons []string
	if err := r.db.SelectContext(ctx, &seasons, query, args...); err != nil {
		return nil, fmt.Errorf("select seasons: %w", err)
	}

	return seasons, nil
}

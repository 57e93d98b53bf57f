package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/mbarese/transfer-sim/internal/domain/rating"
	qb "github.com/mbarese/transfer-sim/internal/platform/querybuilder"
)

type TeamRatingRepository struct {
	db *sqlx.DB
}

func NewTeamRatingRepository(db *sqlx.DB) *TeamRatingRepository {
	return &TeamRatingRepository{db: db}
}

func (r *TeamRatingRepository) List(ctx context.Context) ([]rating.TeamRating, error) {
	query, args, err := qb.Select("*").From("team_ratings").
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select team ratings query: %w", err)
	}

	var rows []teamRatingTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select team ratings: %w", err)
	}

	out := make([]rating.TeamRating, 0, len(rows))
	for _, row := range rows {
		out = append(out, rating.TeamRating{
			Team:     row.Team,
			LeagueID: row.LeagueID,
			Rating:   row.Rating,
		})
	}

	return out, nil
}

func (r *TeamRatingRepository) FindByTeam(ctx context.Context, team string) (rating.TeamRating, bool, error) {
	query, args, err := qb.Select("*").From("team_ratings").
		Where(qb.Eq("team", team)).
		ToSQL()
	if err != nil {
		return rating.TeamRating{}, false, fmt.Errorf("build get team rating query: %w", err)
	}

	var row teamRatingTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return rating.TeamRating{}, false, nil
		}
		return rating.TeamRating{}, false, fmt.Errorf("get team rating: %w", err)
	}

	return rating.TeamRating{
		Team:     row.Team,
		LeagueID: row.LeagueID,
		Rating:   row.Rating,
	}, true, nil
}

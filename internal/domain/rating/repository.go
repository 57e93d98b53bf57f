package rating

import "context"

// TeamRepository describes read access to the team-ratings table.
type TeamRepository interface {
	List(ctx context.Context) ([]TeamRating, error)
	FindByTeam(ctx context.Context, team string) (TeamRating, bool, error)
}

// LeagueRepository holds derived league ratings in resolution order.
type LeagueRepository interface {
	List(ctx context.Context) ([]LeagueRating, error)
	ReplaceAll(ctx context.Context, ratings []LeagueRating) error
}

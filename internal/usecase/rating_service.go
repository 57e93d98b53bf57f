package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/mbarese/transfer-sim/internal/domain/rating"
)

// RatingService resolves team and league competitive ratings, falling back
// to the neutral default when a name is unknown.
type RatingService struct {
	teamRepo      rating.TeamRepository
	leagueRepo    rating.LeagueRepository
	defaultRating float64
}

func NewRatingService(teamRepo rating.TeamRepository, leagueRepo rating.LeagueRepository, defaultRating float64) *RatingService {
	return &RatingService{
		teamRepo:      teamRepo,
		leagueRepo:    leagueRepo,
		defaultRating: defaultRating,
	}
}

func (s *RatingService) ResolveTeam(ctx context.Context, team string) (rating.Resolution, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RatingService.ResolveTeam")
	defer span.End()

	team = rating.CanonicalTeamName(strings.TrimSpace(team))
	if team == "" {
		return rating.Resolution{}, fmt.Errorf("%w: team name is required", ErrInvalidInput)
	}

	item, exists, err := s.teamRepo.FindByTeam(ctx, team)
	if err != nil {
		return rating.Resolution{}, fmt.Errorf("find team rating: %w", err)
	}
	if !exists {
		return rating.Resolution{Rating: s.defaultRating, Matched: false}, nil
	}

	return rating.Resolution{Rating: item.Rating, Matched: true}, nil
}

func (s *RatingService) ResolveLeague(ctx context.Context, playerLeague string) (rating.Resolution, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RatingService.ResolveLeague")
	defer span.End()

	stored, err := s.leagueRepo.List(ctx)
	if err != nil {
		return rating.Resolution{}, fmt.Errorf("list league ratings: %w", err)
	}

	return rating.ResolveLeague(stored, playerLeague, s.defaultRating), nil
}

func (s *RatingService) ListTeamRatings(ctx context.Context) ([]rating.TeamRating, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RatingService.ListTeamRatings")
	defer span.End()

	items, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list team ratings: %w", err)
	}

	return items, nil
}

func (s *RatingService) ListLeagueRatings(ctx context.Context) ([]rating.LeagueRating, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RatingService.ListLeagueRatings")
	defer span.End()

	items, err := s.leagueRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list league ratings: %w", err)
	}

	return items, nil
}

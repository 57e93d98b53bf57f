package memory

import (
	"context"
	"sync"

	"github.com/mbarese/transfer-sim/internal/domain/rating"
)

type TeamRatingRepository struct {
	mu      sync.RWMutex
	ordered []rating.TeamRating
	byTeam  map[string]rating.TeamRating
}

func NewTeamRatingRepository(items []rating.TeamRating) *TeamRatingRepository {
	repo := &TeamRatingRepository{
		ordered: make([]rating.TeamRating, 0, len(items)),
		byTeam:  make(map[string]rating.TeamRating, len(items)),
	}
	for _, item := range items {
		repo.ordered = append(repo.ordered, item)
		repo.byTeam[item.Team] = item
	}

	return repo
}

func (r *TeamRatingRepository) List(_ context.Context) ([]rating.TeamRating, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]rating.TeamRating, 0, len(r.ordered))
	out = append(out, r.ordered...)

	return out, nil
}

func (r *TeamRatingRepository) FindByTeam(_ context.Context, team string) (rating.TeamRating, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.byTeam[team]
	if !ok {
		return rating.TeamRating{}, false, nil
	}

	return item, true, nil
}

package memory

import (
	"context"
	"sync"

	"github.com/mbarese/transfer-sim/internal/domain/rating"
)

// LeagueRatingRepository stores derived league ratings in resolution order.
type LeagueRatingRepository struct {
	mu      sync.RWMutex
	ordered []rating.LeagueRating
}

func NewLeagueRatingRepository(items []rating.LeagueRating) *LeagueRatingRepository {
	repo := &LeagueRatingRepository{}
	repo.ordered = append(repo.ordered, items...)

	return repo
}

func (r *LeagueRatingRepository) List(_ context.Context) ([]rating.LeagueRating, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]rating.LeagueRating, 0, len(r.ordered))
	out = append(out, r.ordered...)

	return out, nil
}

func (r *LeagueRatingRepository) ReplaceAll(_ context.Context, items []rating.LeagueRating) error {
	replacement := make([]rating.LeagueRating, 0, len(items))
	replacement = append(replacement, items...)

	r.mu.Lock()
	defer r.mu.Unlock()

	r.ordered = replacement
	return nil
}

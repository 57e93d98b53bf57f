package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/mbarese/transfer-sim/internal/domain/player"
)

type PlayerRepository struct {
	mu      sync.RWMutex
	records []player.Record
	// indexBySeason keeps the first stored row per (season, name), matching
	// the lookup the simulation performs.
	indexBySeason map[string]map[string]int
}

func NewPlayerRepository(records []player.Record) *PlayerRepository {
	repo := &PlayerRepository{
		records:       make([]player.Record, 0, len(records)),
		indexBySeason: make(map[string]map[string]int),
	}
	for _, record := range records {
		repo.records = append(repo.records, record.Clone())
		idx := len(repo.records) - 1
		if _, ok := repo.indexBySeason[record.Season]; !ok {
			repo.indexBySeason[record.Season] = make(map[string]int)
		}
		if _, exists := repo.indexBySeason[record.Season][record.Name]; !exists {
			repo.indexBySeason[record.Season][record.Name] = idx
		}
	}

	return repo
}

func (r *PlayerRepository) List(_ context.Context, filter player.Filter) ([]player.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Record, 0)
	for _, record := range r.records {
		if !matchesFilter(record, filter) {
			continue
		}
		out = append(out, record.Clone())
		if filter.Limit > 0 && len(out) == filter.Limit {
			break
		}
	}

	return out, nil
}

func (r *PlayerRepository) FindByName(_ context.Context, season, name string) (player.Record, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bySeason, ok := r.indexBySeason[season]
	if !ok {
		return player.Record{}, false, nil
	}
	idx, ok := bySeason[name]
	if !ok {
		return player.Record{}, false, nil
	}

	return r.records[idx].Clone(), true, nil
}

func (r *PlayerRepository) Seasons(_ context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0, len(r.indexBySeason))
	for season := range r.indexBySeason {
		out = append(out, season)
	}
	sort.Strings(out)

	return out, nil
}

func matchesFilter(record player.Record, filter player.Filter) bool {
	if filter.Season != "" && record.Season != filter.Season {
		return false
	}
	if filter.ParentTeam != "" && record.ParentTeam != filter.ParentTeam {
		return false
	}
	if filter.League != "" && record.League != filter.League {
		return false
	}
	if filter.PositionGroup != "" && record.PositionGroup != filter.PositionGroup {
		return false
	}
	return true
}

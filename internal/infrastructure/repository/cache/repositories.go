package cache

import (
	"context"
	"strconv"

	"github.com/mbarese/transfer-sim/internal/domain/player"
	"github.com/mbarese/transfer-sim/internal/domain/rating"
	basecache "github.com/mbarese/transfer-sim/internal/platform/cache"
)

const (
	playerKeyPrefix       = "player:"
	teamRatingKeyPrefix   = "team-rating:"
	leagueRatingKeyPrefix = "league-rating:"
)

type PlayerRepository struct {
	next  player.Repository
	cache *basecache.Store
}

func NewPlayerRepository(next player.Repository, cache *basecache.Store) *PlayerRepository {
	return &PlayerRepository{next: next, cache: cache}
}

func (r *PlayerRepository) List(ctx context.Context, filter player.Filter) ([]player.Record, error) {
	key := playerListKey(filter)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx, filter)
		if err != nil {
			return nil, err
		}
		return cloneRecords(items), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]player.Record)
	return cloneRecords(items), nil
}

func (r *PlayerRepository) FindByName(ctx context.Context, season, name string) (player.Record, bool, error) {
	key := playerKeyPrefix + "name:" + season + ":" + name
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.FindByName(ctx, season, name)
		if err != nil {
			return nil, err
		}
		return cachedPlayerByName{value: item.Clone(), exists: exists}, nil
	})
	if err != nil {
		return player.Record{}, false, err
	}

	cached, _ := v.(cachedPlayerByName)
	return cached.value.Clone(), cached.exists, nil
}

func (r *PlayerRepository) Seasons(ctx context.Context) ([]string, error) {
	v, err := r.cache.GetOrLoad(ctx, playerKeyPrefix+"seasons", func(ctx context.Context) (any, error) {
		items, err := r.next.Seasons(ctx)
		if err != nil {
			return nil, err
		}
		return append([]string(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]string)
	return append([]string(nil), items...), nil
}

func (r *PlayerRepository) InvalidateAll() {
	r.cache.DeletePrefix(context.Background(), playerKeyPrefix)
}

type cachedPlayerByName struct {
	value  player.Record
	exists bool
}

func playerListKey(filter player.Filter) string {
	return playerKeyPrefix + "list:" +
		filter.Season + ":" +
		filter.ParentTeam + ":" +
		filter.League + ":" +
		filter.PositionGroup + ":" +
		strconv.Itoa(filter.Limit)
}

func cloneRecords(items []player.Record) []player.Record {
	out := make([]player.Record, 0, len(items))
	for _, item := range items {
		out = append(out, item.Clone())
	}
	return out
}

type TeamRatingRepository struct {
	next  rating.TeamRepository
	cache *basecache.Store
}

func NewTeamRatingRepository(next rating.TeamRepository, cache *basecache.Store) *TeamRatingRepository {
	return &TeamRatingRepository{next: next, cache: cache}
}

func (r *TeamRatingRepository) List(ctx context.Context) ([]rating.TeamRating, error) {
	v, err := r.cache.GetOrLoad(ctx, teamRatingKeyPrefix+"list", func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]rating.TeamRating(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]rating.TeamRating)
	return append([]rating.TeamRating(nil), items...), nil
}

func (r *TeamRatingRepository) FindByTeam(ctx context.Context, team string) (rating.TeamRating, bool, error) {
	key := teamRatingKeyPrefix + "team:" + team
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.FindByTeam(ctx, team)
		if err != nil {
			return nil, err
		}
		return cachedTeamRating{value: item, exists: exists}, nil
	})
	if err != nil {
		return rating.TeamRating{}, false, err
	}

	cached, _ := v.(cachedTeamRating)
	return cached.value, cached.exists, nil
}

func (r *TeamRatingRepository) InvalidateAll() {
	r.cache.DeletePrefix(context.Background(), teamRatingKeyPrefix)
}

type cachedTeamRating struct {
	value  rating.TeamRating
	exists bool
}

type LeagueRatingRepository struct {
	next  rating.LeagueRepository
	cache *basecache.Store
}

func NewLeagueRatingRepository(next rating.LeagueRepository, cache *basecache.Store) *LeagueRatingRepository {
	return &LeagueRatingRepository{next: next, cache: cache}
}

func (r *LeagueRatingRepository) List(ctx context.Context) ([]rating.LeagueRating, error) {
	v, err := r.cache.GetOrLoad(ctx, leagueRatingKeyPrefix+"list", func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]rating.LeagueRating(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]rating.LeagueRating)
	return append([]rating.LeagueRating(nil), items...), nil
}

func (r *LeagueRatingRepository) ReplaceAll(ctx context.Context, ratings []rating.LeagueRating) error {
	if err := r.next.ReplaceAll(ctx, ratings); err != nil {
		return err
	}
	r.cache.Delete(ctx, leagueRatingKeyPrefix+"list")
	return nil
}

func (r *LeagueRatingRepository) InvalidateAll() {
	r.cache.DeletePrefix(context.Background(), leagueRatingKeyPrefix)
}

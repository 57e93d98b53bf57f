package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/mbarese/transfer-sim/internal/domain/player"
	"github.com/mbarese/transfer-sim/internal/domain/rating"
	idgen "github.com/mbarese/transfer-sim/internal/platform/id"
	"github.com/mbarese/transfer-sim/internal/platform/logging"
)

// CacheInvalidator is implemented by read-side caches that must be flushed
// when reference data is replaced.
type CacheInvalidator interface {
	InvalidateAll()
}

// ReferenceSnapshot summarizes the reference data currently served.
type ReferenceSnapshot struct {
	Version     string
	Season      string
	PlayerCount int
	TeamCount   int
	LeagueCount int
	Seasons     []string
	ReloadedAt  time.Time
}

// ReferenceService owns the lifecycle of the shared read-only reference
// data: league-rating derivation and the explicit reload trigger.
type ReferenceService struct {
	playerRepo player.Repository
	teamRepo   rating.TeamRepository
	leagueRepo rating.LeagueRepository
	caches     []CacheInvalidator
	idGen      idgen.Generator
	logger     *logging.Logger
	season     string

	mu       sync.RWMutex
	snapshot ReferenceSnapshot
}

func NewReferenceService(
	playerRepo player.Repository,
	teamRepo rating.TeamRepository,
	leagueRepo rating.LeagueRepository,
	caches []CacheInvalidator,
	idGen idgen.Generator,
	season string,
	logger *logging.Logger,
) *ReferenceService {
	if logger == nil {
		logger = logging.Default()
	}

	return &ReferenceService{
		playerRepo: playerRepo,
		teamRepo:   teamRepo,
		leagueRepo: leagueRepo,
		caches:     caches,
		idGen:      idGen,
		logger:     logger,
		season:     season,
	}
}

// Reload re-reads reference data, re-derives league ratings from team
// ratings, flushes read caches, and publishes a fresh snapshot. Reads fan
// out concurrently; the swap happens only after every read succeeded.
func (s *ReferenceService) Reload(ctx context.Context) (ReferenceSnapshot, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ReferenceService.Reload")
	defer span.End()

	var (
		teams   []rating.TeamRating
		players []player.Record
		seasons []string
	)

	readers := pool.New().WithErrors().WithContext(ctx)
	readers.Go(func(ctx context.Context) error {
		items, err := s.teamRepo.List(ctx)
		if err != nil {
			return fmt.Errorf("list team ratings: %w", err)
		}
		teams = items
		return nil
	})
	readers.Go(func(ctx context.Context) error {
		items, err := s.playerRepo.List(ctx, player.Filter{Season: s.season})
		if err != nil {
			return fmt.Errorf("list current-season players: %w", err)
		}
		players = items
		return nil
	})
	readers.Go(func(ctx context.Context) error {
		items, err := s.playerRepo.Seasons(ctx)
		if err != nil {
			return fmt.Errorf("list seasons: %w", err)
		}
		seasons = items
		return nil
	})
	if err := readers.Wait(); err != nil {
		return ReferenceSnapshot{}, err
	}

	leagues := rating.DeriveLeagueRatings(teams)
	if err := s.leagueRepo.ReplaceAll(ctx, leagues); err != nil {
		return ReferenceSnapshot{}, fmt.Errorf("replace league ratings: %w", err)
	}

	for _, cache := range s.caches {
		cache.InvalidateAll()
	}

	version, err := s.idGen.NewID()
	if err != nil {
		return ReferenceSnapshot{}, fmt.Errorf("generate snapshot version: %w", err)
	}

	snapshot := ReferenceSnapshot{
		Version:     version,
		Season:      s.season,
		PlayerCount: len(players),
		TeamCount:   len(teams),
		LeagueCount: len(leagues),
		Seasons:     seasons,
		ReloadedAt:  time.Now().UTC(),
	}

	s.mu.Lock()
	s.snapshot = snapshot
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "reference data reloaded",
		"version", snapshot.Version,
		"players", snapshot.PlayerCount,
		"teams", snapshot.TeamCount,
		"leagues", snapshot.LeagueCount,
	)

	return snapshot, nil
}

// Snapshot returns the summary published by the last reload. Before any
// reload it reports zero counts and an empty version.
func (s *ReferenceService) Snapshot(ctx context.Context) (ReferenceSnapshot, error) {
	_, span := startUsecaseSpan(ctx, "usecase.ReferenceService.Snapshot")
	defer span.End()

	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.snapshot, nil
}

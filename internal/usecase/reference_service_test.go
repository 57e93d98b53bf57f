package usecase

import (
	"testing"

	"github.com/mbarese/transfer-sim/internal/domain/rating"
	"github.com/mbarese/transfer-sim/internal/infrastructure/repository/memory"
	idgen "github.com/mbarese/transfer-sim/internal/platform/id"
	"github.com/mbarese/transfer-sim/internal/platform/logging"
)

type countingInvalidator struct {
	calls int
}

func (c *countingInvalidator) InvalidateAll() {
	c.calls++
}

func TestReferenceService_Reload(t *testing.T) {
	t.Parallel()

	leagueRepo := memory.NewLeagueRatingRepository(nil)
	invalidator := &countingInvalidator{}
	svc := NewReferenceService(
		memory.NewPlayerRepository(memory.SeedPlayers()),
		memory.NewTeamRatingRepository(memory.SeedTeamRatings()),
		leagueRepo,
		[]CacheInvalidator{invalidator},
		idgen.NewRandomGenerator(),
		memory.SeasonCurrent,
		logging.NewNop(),
	)

	snapshot, err := svc.Reload(t.Context())
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}

	if snapshot.Version == "" {
		t.Fatal("snapshot version must be set")
	}
	if snapshot.Season != memory.SeasonCurrent {
		t.Fatalf("snapshot season = %s, want %s", snapshot.Season, memory.SeasonCurrent)
	}
	if snapshot.PlayerCount != 12 || snapshot.TeamCount != 7 || snapshot.LeagueCount != 3 {
		t.Fatalf("unexpected snapshot counts: %+v", snapshot)
	}
	if len(snapshot.Seasons) != 2 {
		t.Fatalf("snapshot seasons = %v, want both seeded seasons", snapshot.Seasons)
	}
	if snapshot.ReloadedAt.IsZero() {
		t.Fatal("snapshot timestamp must be set")
	}
	if invalidator.calls != 1 {
		t.Fatalf("cache invalidations = %d, want 1", invalidator.calls)
	}

	// The derived league table replaces whatever was stored before.
	leagues, err := leagueRepo.List(t.Context())
	if err != nil {
		t.Fatalf("list leagues failed: %v", err)
	}
	if len(leagues) != 3 {
		t.Fatalf("derived league count = %d, want 3", len(leagues))
	}
	if leagues[0].DisplayName != memory.LeaguePremier || leagues[0].Rating != 82.667 {
		t.Fatalf("unexpected derived league: %+v", leagues[0])
	}

	got, err := svc.Snapshot(t.Context())
	if err != nil {
		t.Fatalf("snapshot failed: %v", err)
	}
	if got.Version != snapshot.Version {
		t.Fatalf("snapshot accessor returned %+v, want version %s", got, snapshot.Version)
	}
}

func TestReferenceService_SnapshotBeforeReload(t *testing.T) {
	t.Parallel()

	svc := NewReferenceService(
		memory.NewPlayerRepository(nil),
		memory.NewTeamRatingRepository(nil),
		memory.NewLeagueRatingRepository(nil),
		nil,
		idgen.NewRandomGenerator(),
		memory.SeasonCurrent,
		logging.NewNop(),
	)

	got, err := svc.Snapshot(t.Context())
	if err != nil {
		t.Fatalf("snapshot failed: %v", err)
	}
	if got.Version != "" {
		t.Fatalf("snapshot before reload should be zero-valued, got %+v", got)
	}
}

func TestReferenceService_DefaultsRating(t *testing.T) {
	t.Parallel()

	// A reload over an empty team table still succeeds and stores nothing.
	leagueRepo := memory.NewLeagueRatingRepository([]rating.LeagueRating{{DisplayName: "Stale League", Rating: 40}})
	svc := NewReferenceService(
		memory.NewPlayerRepository(memory.SeedPlayers()),
		memory.NewTeamRatingRepository(nil),
		leagueRepo,
		nil,
		idgen.NewRandomGenerator(),
		memory.SeasonCurrent,
		logging.NewNop(),
	)

	if _, err := svc.Reload(t.Context()); err != nil {
		t.Fatalf("reload failed: %v", err)
	}

	leagues, err := leagueRepo.List(t.Context())
	if err != nil {
		t.Fatalf("list leagues failed: %v", err)
	}
	if len(leagues) != 0 {
		t.Fatalf("stale leagues must be replaced, got %v", leagues)
	}
}

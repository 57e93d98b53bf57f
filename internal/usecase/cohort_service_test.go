package usecase

import (
	"testing"

	"github.com/mbarese/transfer-sim/internal/domain/player"
	"github.com/mbarese/transfer-sim/internal/infrastructure/repository/memory"
)

func TestCohortService_TeamAverages(t *testing.T) {
	t.Parallel()

	records := []player.Record{
		testRecord("One", "Sporting Alpha", "League One 2025-26", "Forward", 2000, map[string]*float64{
			"Goals": fv(10), "Assists": fv(3),
		}),
		testRecord("Two", "Sporting Alpha", "League One 2025-26", "Forward", 1400, map[string]*float64{
			"Goals": fv(4), "Assists": nil,
		}),
		testRecord("Three", "Sporting Alpha", "League One 2025-26", "Midfielder", 1800, map[string]*float64{
			"Goals": fv(9),
		}),
	}
	svc := NewCohortService(memory.NewPlayerRepository(records))

	averages, err := svc.TeamAverages(t.Context(), testSeason, "Sporting Alpha", "Forward")
	if err != nil {
		t.Fatalf("team averages failed: %v", err)
	}

	if got := averages["Goals"]; got != 7 {
		t.Fatalf("goals average = %v, want 7", got)
	}
	// Missing samples are skipped, not treated as zero.
	if got := averages["Assists"]; got != 3 {
		t.Fatalf("assists average = %v, want 3", got)
	}
	if _, ok := averages["Shots"]; ok {
		t.Fatal("metric without any sample must be absent")
	}
}

func TestCohortService_EmptyCohort(t *testing.T) {
	t.Parallel()

	svc := NewCohortService(memory.NewPlayerRepository(memory.SeedPlayers()))

	averages, err := svc.TeamAverages(t.Context(), testSeason, "Arsenal", "NoSuchGroup")
	if err != nil {
		t.Fatalf("team averages failed: %v", err)
	}
	if averages != nil {
		t.Fatalf("empty cohort should yield nil averages, got %v", averages)
	}
}

func TestCohortService_LeagueAverages(t *testing.T) {
	t.Parallel()

	records := []player.Record{
		testRecord("One", "Sporting Alpha", "League One 2025-26", "Forward", 2000, map[string]*float64{
			"Goals": fv(10),
		}),
		testRecord("Two", "Dynamo Beta", "League One 2025-26", "Forward", 1500, map[string]*float64{
			"Goals": fv(2),
		}),
		testRecord("Three", "Calcio Gamma", "League Two 2025-26", "Forward", 1600, map[string]*float64{
			"Goals": fv(40),
		}),
	}
	svc := NewCohortService(memory.NewPlayerRepository(records))

	averages, err := svc.LeagueAverages(t.Context(), testSeason, "League One 2025-26", "Forward")
	if err != nil {
		t.Fatalf("league averages failed: %v", err)
	}
	if got := averages["Goals"]; got != 6 {
		t.Fatalf("goals average = %v, want 6 across the league cohort", got)
	}
}

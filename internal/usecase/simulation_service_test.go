package usecase

import (
	"errors"
	"strings"
	"testing"

	"github.com/mbarese/transfer-sim/internal/domain/player"
	"github.com/mbarese/transfer-sim/internal/domain/rating"
	"github.com/mbarese/transfer-sim/internal/domain/simulation"
	"github.com/mbarese/transfer-sim/internal/infrastructure/repository/memory"
)

const testSeason = "2025-26"

func fv(v float64) *float64 {
	return &v
}

func testRecord(name, club, league, group string, minutes int, metrics map[string]*float64) player.Record {
	return player.Record{
		Name:          name,
		ParentTeam:    club,
		Team:          club,
		League:        league,
		Season:        testSeason,
		Position:      "CF",
		PositionGroup: group,
		MinutesPlayed: minutes,
		Metrics:       metrics,
	}
}

func newTestSimulationService(records []player.Record, teams []rating.TeamRating, leagues []rating.LeagueRating) *SimulationService {
	playerRepo := memory.NewPlayerRepository(records)
	ratings := NewRatingService(
		memory.NewTeamRatingRepository(teams),
		memory.NewLeagueRatingRepository(leagues),
		rating.DefaultRating,
	)
	cohorts := NewCohortService(playerRepo)

	return NewSimulationService(playerRepo, ratings, cohorts, testSeason, simulation.DefaultParams(), 4, 10)
}

func ratedFixture() ([]player.Record, []rating.TeamRating, []rating.LeagueRating) {
	records := []player.Record{
		testRecord("John Tester", "Sporting Alpha", "League One 2025-26", "Forward", 2000, map[string]*float64{
			"Goals": fv(10), "Assists": fv(4), "xA": nil,
		}),
		testRecord("Away Forward", "Dynamo Beta", "League Two 2025-26", "Forward", 1800, map[string]*float64{
			"Goals": fv(7),
		}),
	}
	teams := []rating.TeamRating{
		{Team: "Sporting Alpha", LeagueID: "l1", Rating: 60},
		{Team: "Dynamo Beta", LeagueID: "l2", Rating: 90},
	}
	leagues := []rating.LeagueRating{
		{DisplayName: "League One 2025-26", Rating: 70},
		{DisplayName: "League Two 2025-26", Rating: 50},
	}

	return records, teams, leagues
}

func TestSimulationService_Simulate_EndToEnd(t *testing.T) {
	t.Parallel()

	svc := newTestSimulationService(ratedFixture())

	result, err := svc.Simulate(t.Context(), SimulationRequest{
		PlayerName: "John Tester",
		ToTeam:     "Dynamo Beta",
		ToLeague:   "League Two 2025-26",
		Metrics:    []string{"Goals"},
	})
	if err != nil {
		t.Fatalf("simulate failed: %v", err)
	}

	if result.Current.Team != "Sporting Alpha" || result.Potential.Team != "Dynamo Beta" {
		t.Fatalf("unexpected teams: current=%s potential=%s", result.Current.Team, result.Potential.Team)
	}
	if result.Current.TeamRating != 60 || result.Potential.TeamRating != 90 {
		t.Fatalf("unexpected team ratings: %v -> %v", result.Current.TeamRating, result.Potential.TeamRating)
	}
	if result.Current.LeagueRating != 70 || result.Potential.LeagueRating != 50 {
		t.Fatalf("unexpected league ratings: %v -> %v", result.Current.LeagueRating, result.Potential.LeagueRating)
	}
	if got := result.Current.Metrics["Goals"]; got == nil || *got != 10 {
		t.Fatalf("current goals = %v, want 10", got)
	}
	// 1.5^2 * 1.4^2 = 4.41 clamps to 3.0, so 10 becomes 30.0.
	if got := result.Potential.Metrics["Goals"]; got == nil || *got != 30.0 {
		t.Fatalf("potential goals = %v, want 30.0", got)
	}
	if result.Averages != nil {
		t.Fatal("averages block must be absent without position scaling")
	}
}

func TestSimulationService_Simulate_PlayerNotFound(t *testing.T) {
	t.Parallel()

	svc := newTestSimulationService(ratedFixture())

	_, err := svc.Simulate(t.Context(), SimulationRequest{
		PlayerName: "Unknown Player",
		ToTeam:     "Dynamo Beta",
		ToLeague:   "League Two 2025-26",
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if !strings.Contains(err.Error(), "not found in 2025-26 data") {
		t.Fatalf("unexpected message: %v", err)
	}
}

func TestSimulationService_Simulate_MissingMetricStaysMissing(t *testing.T) {
	t.Parallel()

	svc := newTestSimulationService(ratedFixture())

	result, err := svc.Simulate(t.Context(), SimulationRequest{
		PlayerName:      "John Tester",
		ToTeam:          "Dynamo Beta",
		ToLeague:        "League Two 2025-26",
		Metrics:         []string{"Goals", "xA", "Shots"},
		PositionScaling: true,
	})
	if err != nil {
		t.Fatalf("simulate failed: %v", err)
	}

	for _, metric := range []string{"xA", "Shots"} {
		if got := result.Current.Metrics[metric]; got != nil {
			t.Fatalf("current %s = %v, want nil", metric, *got)
		}
		if got := result.Potential.Metrics[metric]; got != nil {
			t.Fatalf("potential %s = %v, want nil", metric, *got)
		}
		averages, ok := result.Averages[metric]
		if !ok {
			t.Fatalf("averages row missing for %s", metric)
		}
		if averages.FromTeam != nil || averages.ToTeam != nil || averages.FromLeague != nil || averages.ToLeague != nil {
			t.Fatalf("averages for missing metric %s must be all nil: %+v", metric, averages)
		}
	}
	if got := result.Potential.Metrics["Goals"]; got == nil {
		t.Fatal("goals should still scale when another metric is missing")
	}
}

func TestSimulationService_Simulate_DefaultMetrics(t *testing.T) {
	t.Parallel()

	svc := newTestSimulationService(ratedFixture())

	result, err := svc.Simulate(t.Context(), SimulationRequest{
		PlayerName: "John Tester",
		ToTeam:     "Dynamo Beta",
		ToLeague:   "League Two 2025-26",
	})
	if err != nil {
		t.Fatalf("simulate failed: %v", err)
	}
	if len(result.Current.Metrics) != 2 {
		t.Fatalf("default metric count = %d, want 2", len(result.Current.Metrics))
	}
	for _, metric := range []string{"Goals", "Assists"} {
		if _, ok := result.Current.Metrics[metric]; !ok {
			t.Fatalf("default metrics missing %s", metric)
		}
	}
}

func TestSimulationService_Simulate_UnknownMetric(t *testing.T) {
	t.Parallel()

	svc := newTestSimulationService(ratedFixture())

	_, err := svc.Simulate(t.Context(), SimulationRequest{
		PlayerName: "John Tester",
		ToTeam:     "Dynamo Beta",
		ToLeague:   "League Two 2025-26",
		Metrics:    []string{"Coffee per 90"},
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestSimulationService_Simulate_ResolvesDestinationLeague(t *testing.T) {
	t.Parallel()

	svc := newTestSimulationService(ratedFixture())

	result, err := svc.Simulate(t.Context(), SimulationRequest{
		PlayerName: "John Tester",
		ToTeam:     "Dynamo Beta",
	})
	if err != nil {
		t.Fatalf("simulate failed: %v", err)
	}
	if result.Potential.League != "League Two 2025-26" {
		t.Fatalf("destination league = %q, want resolved from destination team", result.Potential.League)
	}
}

func TestSimulationService_Simulate_UnresolvableDestinationLeague(t *testing.T) {
	t.Parallel()

	svc := newTestSimulationService(ratedFixture())

	_, err := svc.Simulate(t.Context(), SimulationRequest{
		PlayerName: "John Tester",
		ToTeam:     "Ghost Town FC",
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestSimulationService_Simulate_PositionScaling(t *testing.T) {
	t.Parallel()

	records := []player.Record{
		testRecord("John Tester", "Sporting Alpha", "League One 2025-26", "Forward", 2000, map[string]*float64{
			"Goals": fv(10),
		}),
		testRecord("Alpha Teammate", "Sporting Alpha", "League One 2025-26", "Forward", 1500, map[string]*float64{
			"Goals": fv(2),
		}),
		testRecord("Beta Striker", "Dynamo Beta", "League Two 2025-26", "Forward", 1700, map[string]*float64{
			"Goals": fv(4),
		}),
	}
	teams := []rating.TeamRating{
		{Team: "Sporting Alpha", LeagueID: "l1", Rating: 60},
		{Team: "Dynamo Beta", LeagueID: "l2", Rating: 60},
	}
	leagues := []rating.LeagueRating{
		{DisplayName: "League One 2025-26", Rating: 70},
		{DisplayName: "League Two 2025-26", Rating: 70},
	}
	svc := newTestSimulationService(records, teams, leagues)

	result, err := svc.Simulate(t.Context(), SimulationRequest{
		PlayerName:      "John Tester",
		ToTeam:          "Dynamo Beta",
		ToLeague:        "League Two 2025-26",
		Metrics:         []string{"Goals"},
		PositionScaling: true,
	})
	if err != nil {
		t.Fatalf("simulate failed: %v", err)
	}

	averages, ok := result.Averages["Goals"]
	if !ok {
		t.Fatal("averages block missing for Goals")
	}
	if averages.FromTeam == nil || *averages.FromTeam != 6 {
		t.Fatalf("from-team average = %v, want 6", averages.FromTeam)
	}
	if averages.ToTeam == nil || *averages.ToTeam != 4 {
		t.Fatalf("to-team average = %v, want 4", averages.ToTeam)
	}
	if averages.FromLeague == nil || *averages.FromLeague != 6 {
		t.Fatalf("from-league average = %v, want 6", averages.FromLeague)
	}
	if averages.ToLeague == nil || *averages.ToLeague != 4 {
		t.Fatalf("to-league average = %v, want 4", averages.ToLeague)
	}
	// Ratings cancel, both cohort pairs contribute (4/6)^0.4 each, so the
	// multiplier is (2/3)^0.8 and 10 scales to 7.23.
	if got := result.Potential.Metrics["Goals"]; got == nil || *got != 7.23 {
		t.Fatalf("potential goals = %v, want 7.23", got)
	}
}

func TestSimulationService_Simulate_EmptyDestinationCohort(t *testing.T) {
	t.Parallel()

	records := []player.Record{
		testRecord("John Tester", "Sporting Alpha", "League One 2025-26", "Forward", 2000, map[string]*float64{
			"Goals": fv(10),
		}),
		testRecord("Alpha Teammate", "Sporting Alpha", "League One 2025-26", "Forward", 1500, map[string]*float64{
			"Goals": fv(2),
		}),
		// The destination team exists in the destination league but has no
		// forwards, so the team pair is unavailable while the league pair
		// still applies.
		testRecord("Beta Keeper", "Dynamo Beta", "League Two 2025-26", "Goalkeeper", 2700, map[string]*float64{
			"Goals": fv(0),
		}),
		testRecord("League Two Forward", "Calcio Gamma", "League Two 2025-26", "Forward", 1600, map[string]*float64{
			"Goals": fv(4),
		}),
	}
	teams := []rating.TeamRating{
		{Team: "Sporting Alpha", LeagueID: "l1", Rating: 60},
		{Team: "Dynamo Beta", LeagueID: "l2", Rating: 60},
	}
	leagues := []rating.LeagueRating{
		{DisplayName: "League One 2025-26", Rating: 70},
		{DisplayName: "League Two 2025-26", Rating: 70},
	}
	svc := newTestSimulationService(records, teams, leagues)

	result, err := svc.Simulate(t.Context(), SimulationRequest{
		PlayerName:      "John Tester",
		ToTeam:          "Dynamo Beta",
		ToLeague:        "League Two 2025-26",
		Metrics:         []string{"Goals"},
		PositionScaling: true,
	})
	if err != nil {
		t.Fatalf("simulate failed: %v", err)
	}

	averages := result.Averages["Goals"]
	if averages.ToTeam != nil {
		t.Fatalf("to-team average = %v, want nil for empty cohort", *averages.ToTeam)
	}
	if averages.FromLeague == nil || averages.ToLeague == nil {
		t.Fatal("league averages should still be available")
	}
	// Only the league pair applies: (4/6)^0.4 of 10 is 8.5.
	if got := result.Potential.Metrics["Goals"]; got == nil || *got != 8.5 {
		t.Fatalf("potential goals = %v, want 8.5", got)
	}
}

func TestSimulationService_Simulate_ParamOverrides(t *testing.T) {
	t.Parallel()

	svc := newTestSimulationService(ratedFixture())

	tests := []struct {
		name        string
		sensitivity *float64
		weight      *float64
		wantErr     bool
		wantGoals   float64
	}{
		{name: "linear sensitivity", sensitivity: fv(1.0), wantGoals: 21.0},
		{name: "sensitivity too large", sensitivity: fv(6.0), wantErr: true},
		{name: "sensitivity zero", sensitivity: fv(0), wantErr: true},
		{name: "weight above one", weight: fv(1.5), wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result, err := svc.Simulate(t.Context(), SimulationRequest{
				PlayerName:     "John Tester",
				ToTeam:         "Dynamo Beta",
				ToLeague:       "League Two 2025-26",
				Metrics:        []string{"Goals"},
				Sensitivity:    tc.sensitivity,
				PositionWeight: tc.weight,
			})
			if tc.wantErr {
				if !errors.Is(err, ErrInvalidInput) {
					t.Fatalf("expected ErrInvalidInput, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("simulate failed: %v", err)
			}
			if got := result.Potential.Metrics["Goals"]; got == nil || *got != tc.wantGoals {
				t.Fatalf("potential goals = %v, want %v", got, tc.wantGoals)
			}
		})
	}
}

func TestSimulationService_SimulateBatch(t *testing.T) {
	t.Parallel()

	svc := newTestSimulationService(ratedFixture())

	batch, err := svc.SimulateBatch(t.Context(), []SimulationRequest{
		{PlayerName: "John Tester", ToTeam: "Dynamo Beta", ToLeague: "League Two 2025-26", Metrics: []string{"Goals"}},
		{PlayerName: "Unknown Player", ToTeam: "Dynamo Beta", ToLeague: "League Two 2025-26"},
		{PlayerName: "Away Forward", ToTeam: "Sporting Alpha", ToLeague: "League One 2025-26", Metrics: []string{"Goals"}},
	})
	if err != nil {
		t.Fatalf("batch failed: %v", err)
	}

	if batch.ItemCount != 3 || batch.SuccessCount != 2 || batch.FailedCount != 1 {
		t.Fatalf("unexpected counts: %+v", batch)
	}
	for i, item := range batch.Items {
		if item.Index != i {
			t.Fatalf("items out of order: item %d has index %d", i, item.Index)
		}
	}
	if batch.Items[0].Result == nil || batch.Items[0].Error != "" {
		t.Fatalf("first item should succeed: %+v", batch.Items[0])
	}
	if batch.Items[1].Result != nil || !strings.Contains(batch.Items[1].Error, "not found") {
		t.Fatalf("second item should fail with not-found: %+v", batch.Items[1])
	}
	if got := batch.Items[0].Result.Potential.Metrics["Goals"]; got == nil || *got != 30.0 {
		t.Fatalf("batch result goals = %v, want 30.0", got)
	}
}

func TestSimulationService_SimulateBatch_Limits(t *testing.T) {
	t.Parallel()

	records, teams, leagues := ratedFixture()
	playerRepo := memory.NewPlayerRepository(records)
	ratings := NewRatingService(
		memory.NewTeamRatingRepository(teams),
		memory.NewLeagueRatingRepository(leagues),
		rating.DefaultRating,
	)
	svc := NewSimulationService(playerRepo, ratings, NewCohortService(playerRepo), testSeason, simulation.DefaultParams(), 4, 2)

	if _, err := svc.SimulateBatch(t.Context(), nil); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("empty batch: expected ErrInvalidInput, got %v", err)
	}

	oversized := []SimulationRequest{
		{PlayerName: "John Tester", ToTeam: "Dynamo Beta"},
		{PlayerName: "John Tester", ToTeam: "Dynamo Beta"},
		{PlayerName: "John Tester", ToTeam: "Dynamo Beta"},
	}
	if _, err := svc.SimulateBatch(t.Context(), oversized); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("oversized batch: expected ErrInvalidInput, got %v", err)
	}
}

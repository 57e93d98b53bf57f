package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/panjf2000/ants/v2"

	"github.com/mbarese/transfer-sim/internal/domain/player"
	"github.com/mbarese/transfer-sim/internal/domain/simulation"
)

// SimulationRequest describes one transfer what-if for a single player.
type SimulationRequest struct {
	PlayerName string
	ToTeam     string
	// ToLeague is optional; when empty it resolves from the destination
	// team's current-season rows.
	ToLeague string
	// Metrics defaults to Goals and Assists when empty.
	Metrics         []string
	PositionScaling bool
	// Sensitivity and PositionWeight override the configured exponents
	// when set.
	Sensitivity    *float64
	PositionWeight *float64
}

// BatchItem pairs one batch entry with its outcome. Error carries the
// failure message for that item; the batch itself never fails on item
// errors.
type BatchItem struct {
	Index  int
	Result *simulation.Result
	Error  string
}

// BatchResult summarizes a batch run.
type BatchResult struct {
	ItemCount    int
	SuccessCount int
	FailedCount  int
	WorkerCount  int
	Items        []BatchItem
}

// SimulationService orchestrates a transfer simulation: player lookup,
// rating resolution, cohort context, and per-metric scaling.
type SimulationService struct {
	playerRepo player.Repository
	ratings    *RatingService
	cohorts    *CohortService

	season        string
	params        simulation.Params
	poolSize      int
	batchMaxItems int
}

func NewSimulationService(
	playerRepo player.Repository,
	ratings *RatingService,
	cohorts *CohortService,
	season string,
	params simulation.Params,
	poolSize int,
	batchMaxItems int,
) *SimulationService {
	if poolSize <= 0 {
		poolSize = 1
	}
	if batchMaxItems <= 0 {
		batchMaxItems = 1
	}

	return &SimulationService{
		playerRepo:    playerRepo,
		ratings:       ratings,
		cohorts:       cohorts,
		season:        season,
		params:        params,
		poolSize:      poolSize,
		batchMaxItems: batchMaxItems,
	}
}

// defaultMetrics mirrors the interactive default selection.
var defaultMetrics = []string{"Goals", "Assists"}

func (s *SimulationService) Simulate(ctx context.Context, req SimulationRequest) (simulation.Result, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SimulationService.Simulate")
	defer span.End()

	req.PlayerName = strings.TrimSpace(req.PlayerName)
	req.ToTeam = strings.TrimSpace(req.ToTeam)
	req.ToLeague = strings.TrimSpace(req.ToLeague)
	if req.PlayerName == "" {
		return simulation.Result{}, fmt.Errorf("%w: player name is required", ErrInvalidInput)
	}
	if req.ToTeam == "" {
		return simulation.Result{}, fmt.Errorf("%w: destination team is required", ErrInvalidInput)
	}

	metrics, err := normalizeMetrics(req.Metrics)
	if err != nil {
		return simulation.Result{}, err
	}
	params, err := s.requestParams(req)
	if err != nil {
		return simulation.Result{}, err
	}

	record, exists, err := s.playerRepo.FindByName(ctx, s.season, req.PlayerName)
	if err != nil {
		return simulation.Result{}, fmt.Errorf("find player: %w", err)
	}
	if !exists {
		return simulation.Result{}, fmt.Errorf("%w: player %s not found in %s data", ErrNotFound, req.PlayerName, s.season)
	}

	toLeague := req.ToLeague
	if toLeague == "" {
		toLeague, err = s.resolveDestinationLeague(ctx, req.ToTeam)
		if err != nil {
			return simulation.Result{}, err
		}
	}

	teamPair, leaguePair, err := s.resolveRatings(ctx, record, req.ToTeam, toLeague)
	if err != nil {
		return simulation.Result{}, err
	}

	cohorts, err := s.gatherCohorts(ctx, record, req.ToTeam, toLeague, req.PositionScaling)
	if err != nil {
		return simulation.Result{}, err
	}

	result := simulation.Result{
		Player:        record.Name,
		PositionGroup: record.PositionGroup,
		Season:        record.Season,
		Current: simulation.Context{
			Team:         record.ParentTeam,
			League:       record.League,
			TeamRating:   teamPair.From,
			LeagueRating: leaguePair.From,
			Metrics:      make(map[string]*float64, len(metrics)),
		},
		Potential: simulation.Context{
			Team:         req.ToTeam,
			League:       toLeague,
			TeamRating:   teamPair.To,
			LeagueRating: leaguePair.To,
			Metrics:      make(map[string]*float64, len(metrics)),
		},
	}
	if req.PositionScaling {
		result.Averages = make(map[string]simulation.CohortAverages, len(metrics))
	}

	for _, metric := range metrics {
		value := record.MetricValue(metric)
		result.Current.Metrics[metric] = value

		if value == nil {
			result.Potential.Metrics[metric] = nil
			if req.PositionScaling {
				result.Averages[metric] = simulation.CohortAverages{}
			}
			continue
		}

		averages := cohorts.averagesFor(metric)
		result.Potential.Metrics[metric] = simulation.Scale(value, teamPair, leaguePair, averages, req.PositionScaling, params)
		if req.PositionScaling {
			result.Averages[metric] = roundAverages(averages)
		}
	}

	return result, nil
}

// SimulateBatch fans items out across a bounded worker pool. Item failures
// land in the item's Error field; only pool construction errors fail the
// whole call.
func (s *SimulationService) SimulateBatch(ctx context.Context, requests []SimulationRequest) (BatchResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SimulationService.SimulateBatch")
	defer span.End()

	if len(requests) == 0 {
		return BatchResult{}, fmt.Errorf("%w: batch must contain at least one item", ErrInvalidInput)
	}
	if len(requests) > s.batchMaxItems {
		return BatchResult{}, fmt.Errorf("%w: batch exceeds %d items", ErrInvalidInput, s.batchMaxItems)
	}

	workerCount := s.poolSize
	if len(requests) < workerCount {
		workerCount = len(requests)
	}

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return BatchResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	items := make([]BatchItem, len(requests))
	var successCount atomic.Int32
	var failedCount atomic.Int32

	var workers sync.WaitGroup
	for i, req := range requests {
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			item := BatchItem{Index: i}
			result, simErr := s.Simulate(ctx, req)
			if simErr != nil {
				item.Error = simErr.Error()
				failedCount.Add(1)
			} else {
				item.Result = &result
				successCount.Add(1)
			}
			items[i] = item
		}); err != nil {
			workers.Done()
			return BatchResult{}, fmt.Errorf("submit simulation to worker pool: %w", err)
		}
	}

	workers.Wait()

	return BatchResult{
		ItemCount:    len(requests),
		SuccessCount: int(successCount.Load()),
		FailedCount:  int(failedCount.Load()),
		WorkerCount:  workerCount,
		Items:        items,
	}, nil
}

func (s *SimulationService) requestParams(req SimulationRequest) (simulation.Params, error) {
	params := s.params
	if req.Sensitivity != nil {
		if *req.Sensitivity <= 0 || *req.Sensitivity > 5 {
			return simulation.Params{}, fmt.Errorf("%w: sensitivity must be in (0, 5]", ErrInvalidInput)
		}
		params.Sensitivity = *req.Sensitivity
	}
	if req.PositionWeight != nil {
		if *req.PositionWeight < 0 || *req.PositionWeight > 1 {
			return simulation.Params{}, fmt.Errorf("%w: position weight must be in [0, 1]", ErrInvalidInput)
		}
		params.PositionWeight = *req.PositionWeight
	}

	return params, nil
}

func (s *SimulationService) resolveDestinationLeague(ctx context.Context, toTeam string) (string, error) {
	rows, err := s.playerRepo.List(ctx, player.Filter{
		Season:     s.season,
		ParentTeam: toTeam,
		Limit:      1,
	})
	if err != nil {
		return "", fmt.Errorf("resolve destination league: %w", err)
	}
	if len(rows) == 0 {
		return "", fmt.Errorf("%w: destination league for team %s could not be resolved", ErrInvalidInput, toTeam)
	}

	return rows[0].League, nil
}

func (s *SimulationService) resolveRatings(ctx context.Context, record player.Record, toTeam, toLeague string) (simulation.RatingPair, simulation.RatingPair, error) {
	fromTeam, err := s.ratings.ResolveTeam(ctx, record.ParentTeam)
	if err != nil {
		return simulation.RatingPair{}, simulation.RatingPair{}, err
	}
	toTeamRes, err := s.ratings.ResolveTeam(ctx, toTeam)
	if err != nil {
		return simulation.RatingPair{}, simulation.RatingPair{}, err
	}
	fromLeague, err := s.ratings.ResolveLeague(ctx, record.League)
	if err != nil {
		return simulation.RatingPair{}, simulation.RatingPair{}, err
	}
	toLeagueRes, err := s.ratings.ResolveLeague(ctx, toLeague)
	if err != nil {
		return simulation.RatingPair{}, simulation.RatingPair{}, err
	}

	teamPair := simulation.RatingPair{From: fromTeam.Rating, To: toTeamRes.Rating}
	leaguePair := simulation.RatingPair{From: fromLeague.Rating, To: toLeagueRes.Rating}
	return teamPair, leaguePair, nil
}

// cohortContext holds the four per-metric average maps backing position
// scaling. Nil maps mean the cohort side is unavailable.
type cohortContext struct {
	fromTeam   map[string]float64
	toTeam     map[string]float64
	fromLeague map[string]float64
	toLeague   map[string]float64
}

func (c cohortContext) averagesFor(metric string) simulation.CohortAverages {
	return simulation.CohortAverages{
		FromTeam:   lookupAverage(c.fromTeam, metric),
		ToTeam:     lookupAverage(c.toTeam, metric),
		FromLeague: lookupAverage(c.fromLeague, metric),
		ToLeague:   lookupAverage(c.toLeague, metric),
	}
}

func (s *SimulationService) gatherCohorts(ctx context.Context, record player.Record, toTeam, toLeague string, enabled bool) (cohortContext, error) {
	if !enabled || record.PositionGroup == "" {
		return cohortContext{}, nil
	}

	group := record.PositionGroup
	var out cohortContext
	var err error

	if out.fromTeam, err = s.cohorts.TeamAverages(ctx, s.season, record.ParentTeam, group); err != nil {
		return cohortContext{}, err
	}
	if out.toTeam, err = s.cohorts.TeamAverages(ctx, s.season, toTeam, group); err != nil {
		return cohortContext{}, err
	}
	if out.fromLeague, err = s.cohorts.LeagueAverages(ctx, s.season, record.League, group); err != nil {
		return cohortContext{}, err
	}
	if out.toLeague, err = s.cohorts.LeagueAverages(ctx, s.season, toLeague, group); err != nil {
		return cohortContext{}, err
	}

	return out, nil
}

func normalizeMetrics(metrics []string) ([]string, error) {
	if len(metrics) == 0 {
		return append([]string(nil), defaultMetrics...), nil
	}

	out := make([]string, 0, len(metrics))
	seen := make(map[string]struct{}, len(metrics))
	for _, metric := range metrics {
		metric = strings.TrimSpace(metric)
		if metric == "" {
			return nil, fmt.Errorf("%w: metric name must not be empty", ErrInvalidInput)
		}
		if !player.KnownMetric(metric) {
			return nil, fmt.Errorf("%w: unknown metric %s", ErrInvalidInput, metric)
		}
		if _, dup := seen[metric]; dup {
			continue
		}
		seen[metric] = struct{}{}
		out = append(out, metric)
	}

	return out, nil
}

func lookupAverage(averages map[string]float64, metric string) *float64 {
	if averages == nil {
		return nil
	}
	value, ok := averages[metric]
	if !ok {
		return nil
	}
	return &value
}

func roundAverages(averages simulation.CohortAverages) simulation.CohortAverages {
	return simulation.CohortAverages{
		FromTeam:   round2Ptr(averages.FromTeam),
		ToTeam:     round2Ptr(averages.ToTeam),
		FromLeague: round2Ptr(averages.FromLeague),
		ToLeague:   round2Ptr(averages.ToLeague),
	}
}

func round2Ptr(value *float64) *float64 {
	if value == nil {
		return nil
	}
	rounded := simulation.Round2(*value)
	return &rounded
}

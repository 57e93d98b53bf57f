package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/mbarese/transfer-sim/internal/domain/player"
)

// CohortService computes position-group metric averages over peers sharing a
// team or league within one season.
type CohortService struct {
	playerRepo player.Repository
}

func NewCohortService(playerRepo player.Repository) *CohortService {
	return &CohortService{playerRepo: playerRepo}
}

// TeamAverages returns the mean of every metric across players of the given
// parent team and position group. A nil map means the cohort is empty;
// metrics with no recorded values are absent from the map.
func (s *CohortService) TeamAverages(ctx context.Context, season, parentTeam, group string) (map[string]float64, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CohortService.TeamAverages")
	defer span.End()

	if strings.TrimSpace(parentTeam) == "" {
		return nil, fmt.Errorf("%w: parent team is required", ErrInvalidInput)
	}

	records, err := s.playerRepo.List(ctx, player.Filter{
		Season:        season,
		ParentTeam:    parentTeam,
		PositionGroup: group,
	})
	if err != nil {
		return nil, fmt.Errorf("list team cohort: %w", err)
	}

	return averageMetrics(records), nil
}

// LeagueAverages is TeamAverages over a league cohort instead. The league is
// matched against the record's full league string.
func (s *CohortService) LeagueAverages(ctx context.Context, season, league, group string) (map[string]float64, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CohortService.LeagueAverages")
	defer span.End()

	if strings.TrimSpace(league) == "" {
		return nil, fmt.Errorf("%w: league is required", ErrInvalidInput)
	}

	records, err := s.playerRepo.List(ctx, player.Filter{
		Season:        season,
		League:        league,
		PositionGroup: group,
	})
	if err != nil {
		return nil, fmt.Errorf("list league cohort: %w", err)
	}

	return averageMetrics(records), nil
}

// averageMetrics means each metric over the rows where it has a value.
// Missing values reduce the divisor rather than counting as zero.
func averageMetrics(records []player.Record) map[string]float64 {
	if len(records) == 0 {
		return nil
	}

	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, record := range records {
		for name, value := range record.Metrics {
			if value == nil {
				continue
			}
			sums[name] += *value
			counts[name]++
		}
	}

	out := make(map[string]float64, len(sums))
	for name, sum := range sums {
		out[name] = sum / float64(counts[name])
	}

	return out
}

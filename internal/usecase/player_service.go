package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/mbarese/transfer-sim/internal/domain/player"
	"github.com/mbarese/transfer-sim/internal/domain/transfer"
)

// PlayerService exposes the player reference table and derives transfers
// between seasons from it.
type PlayerService struct {
	playerRepo player.Repository
	season     string
}

func NewPlayerService(playerRepo player.Repository, season string) *PlayerService {
	return &PlayerService{
		playerRepo: playerRepo,
		season:     season,
	}
}

// ListPlayers returns records matching the filter. An empty filter season
// defaults to the configured current season.
func (s *PlayerService) ListPlayers(ctx context.Context, filter player.Filter) ([]player.Record, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.ListPlayers")
	defer span.End()

	if filter.Season == "" {
		filter.Season = s.season
	}
	if filter.Limit < 0 {
		return nil, fmt.Errorf("%w: limit must not be negative", ErrInvalidInput)
	}

	records, err := s.playerRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}

	return records, nil
}

// GetPlayer returns the current-season record for an exact player name.
func (s *PlayerService) GetPlayer(ctx context.Context, name string) (player.Record, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.GetPlayer")
	defer span.End()

	name = strings.TrimSpace(name)
	if name == "" {
		return player.Record{}, fmt.Errorf("%w: player name is required", ErrInvalidInput)
	}

	record, exists, err := s.playerRepo.FindByName(ctx, s.season, name)
	if err != nil {
		return player.Record{}, fmt.Errorf("find player: %w", err)
	}
	if !exists {
		return player.Record{}, fmt.Errorf("%w: player %s not found in %s data", ErrNotFound, name, s.season)
	}

	return record, nil
}

// Seasons lists the season tags present in the reference table.
func (s *PlayerService) Seasons(ctx context.Context) ([]string, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.Seasons")
	defer span.End()

	seasons, err := s.playerRepo.Seasons(ctx)
	if err != nil {
		return nil, fmt.Errorf("list seasons: %w", err)
	}

	return seasons, nil
}

// DetectTransfers finds players present in both seasons whose main club
// changed between them. The representative row per season is the one with
// the most minutes played.
func (s *PlayerService) DetectTransfers(ctx context.Context, fromSeason, toSeason string) ([]transfer.Transfer, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.DetectTransfers")
	defer span.End()

	fromSeason = strings.TrimSpace(fromSeason)
	toSeason = strings.TrimSpace(toSeason)
	if fromSeason == "" || toSeason == "" {
		return nil, fmt.Errorf("%w: both seasons are required", ErrInvalidInput)
	}
	if fromSeason == toSeason {
		return nil, fmt.Errorf("%w: seasons must differ", ErrInvalidInput)
	}

	fromBest, err := s.bestRowsBySeason(ctx, fromSeason)
	if err != nil {
		return nil, err
	}
	toBest, err := s.bestRowsBySeason(ctx, toSeason)
	if err != nil {
		return nil, err
	}

	transfers := make([]transfer.Transfer, 0)
	for name, fromRecord := range fromBest {
		toRecord, ok := toBest[name]
		if !ok {
			continue
		}
		if transfer.SameMainClub(fromRecord.ParentTeam, toRecord.ParentTeam) {
			continue
		}
		transfers = append(transfers, transfer.Transfer{
			Player:      name,
			Position:    toRecord.Position,
			FromSeason:  fromSeason,
			ToSeason:    toSeason,
			FromClub:    fromRecord.ParentTeam,
			ToClub:      toRecord.ParentTeam,
			FromMinutes: fromRecord.MinutesPlayed,
			ToMinutes:   toRecord.MinutesPlayed,
		})
	}

	sort.Slice(transfers, func(i, j int) bool {
		return transfers[i].Player < transfers[j].Player
	})

	return transfers, nil
}

func (s *PlayerService) bestRowsBySeason(ctx context.Context, season string) (map[string]player.Record, error) {
	records, err := s.playerRepo.List(ctx, player.Filter{Season: season})
	if err != nil {
		return nil, fmt.Errorf("list players for season %s: %w", season, err)
	}

	best := make(map[string]player.Record, len(records))
	for _, record := range records {
		current, ok := best[record.Name]
		if !ok || record.MinutesPlayed > current.MinutesPlayed {
			best[record.Name] = record
		}
	}

	return best, nil
}

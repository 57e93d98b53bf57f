package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/mbarese/transfer-sim/internal/domain/player"
	"github.com/mbarese/transfer-sim/internal/domain/transfer"
	"github.com/mbarese/transfer-sim/internal/usecase"
)

func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayers")
	defer span.End()

	query := r.URL.Query()
	filter := player.Filter{
		Season:        strings.TrimSpace(query.Get("season")),
		ParentTeam:    strings.TrimSpace(query.Get("team")),
		League:        strings.TrimSpace(query.Get("league")),
		PositionGroup: strings.TrimSpace(query.Get("group")),
	}
	if raw := strings.TrimSpace(query.Get("limit")); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v <= 0 {
			writeError(ctx, w, fmt.Errorf("%w: limit must be positive integer", usecase.ErrInvalidInput))
			return
		}
		filter.Limit = v
	}

	records, err := h.playerService.ListPlayers(ctx, filter)
	if err != nil {
		h.logger.WarnContext(ctx, "list players failed", "season", filter.Season, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]playerDTO, 0, len(records))
	for _, record := range records {
		items = append(items, playerToDTO(ctx, record))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayer")
	defer span.End()

	playerName := strings.TrimSpace(r.PathValue("playerName"))
	record, err := h.playerService.GetPlayer(ctx, playerName)
	if err != nil {
		h.logger.WarnContext(ctx, "get player failed", "player", playerName, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerToDTO(ctx, record))
}

func (h *Handler) ListSeasons(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListSeasons")
	defer span.End()

	seasons, err := h.playerService.Seasons(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "list seasons failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, seasons)
}

func (h *Handler) ListTransfers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTransfers")
	defer span.End()

	fromSeason := strings.TrimSpace(r.URL.Query().Get("from"))
	toSeason := strings.TrimSpace(r.URL.Query().Get("to"))
	if err := h.validateRequest(ctx, listTransfersRequest{FromSeason: fromSeason, ToSeason: toSeason}); err != nil {
		writeError(ctx, w, err)
		return
	}

	transfers, err := h.playerService.DetectTransfers(ctx, fromSeason, toSeason)
	if err != nil {
		h.logger.WarnContext(ctx, "detect transfers failed", "from", fromSeason, "to", toSeason, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]transferDTO, 0, len(transfers))
	for _, t := range transfers {
		items = append(items, transferToDTO(ctx, t))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

type listTransfersRequest struct {
	FromSeason string `validate:"required"`
	ToSeason   string `validate:"required"`
}

type playerDTO struct {
	Name          string              `json:"name"`
	ParentTeam    string              `json:"parentTeam"`
	Team          string              `json:"team"`
	League        string              `json:"league"`
	Season        string              `json:"season"`
	Age           int                 `json:"age,omitempty"`
	Position      string              `json:"position"`
	PositionGroup string              `json:"positionGroup"`
	MinutesPlayed int                 `json:"minutesPlayed"`
	Metrics       map[string]*float64 `json:"metrics"`
}

func playerToDTO(ctx context.Context, record player.Record) playerDTO {
	_, span := startSpan(ctx, "httpapi.playerToDTO")
	defer span.End()

	return playerDTO{
		Name:          record.Name,
		ParentTeam:    record.ParentTeam,
		Team:          record.Team,
		League:        record.League,
		Season:        record.Season,
		Age:           record.Age,
		Position:      record.Position,
		PositionGroup: record.PositionGroup,
		MinutesPlayed: record.MinutesPlayed,
		Metrics:       record.Metrics,
	}
}

type transferDTO struct {
	Player      string `json:"player"`
	Position    string `json:"position"`
	FromSeason  string `json:"fromSeason"`
	ToSeason    string `json:"toSeason"`
	FromClub    string `json:"fromClub"`
	ToClub      string `json:"toClub"`
	FromMinutes int    `json:"fromMinutes"`
	ToMinutes   int    `json:"toMinutes"`
}

func transferToDTO(ctx context.Context, t transfer.Transfer) transferDTO {
	_, span := startSpan(ctx, "httpapi.transferToDTO")
	defer span.End()

	return transferDTO{
		Player:      t.Player,
		Position:    t.Position,
		FromSeason:  t.FromSeason,
		ToSeason:    t.ToSeason,
		FromClub:    t.FromClub,
		ToClub:      t.ToClub,
		FromMinutes: t.FromMinutes,
		ToMinutes:   t.ToMinutes,
	}
}

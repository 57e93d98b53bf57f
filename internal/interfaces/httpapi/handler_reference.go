package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/mbarese/transfer-sim/internal/usecase"
)

func (h *Handler) ReloadReference(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ReloadReference")
	defer span.End()

	snapshot, err := h.referenceService.Reload(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "reference reload failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, snapshotToDTO(ctx, snapshot))
}

func (h *Handler) ReferenceStatus(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ReferenceStatus")
	defer span.End()

	snapshot, err := h.referenceService.Snapshot(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "reference status failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, snapshotToDTO(ctx, snapshot))
}

type referenceSnapshotDTO struct {
	Version     string    `json:"version"`
	Season      string    `json:"season"`
	PlayerCount int       `json:"playerCount"`
	TeamCount   int       `json:"teamCount"`
	LeagueCount int       `json:"leagueCount"`
	Seasons     []string  `json:"seasons"`
	ReloadedAt  time.Time `json:"reloadedAt"`
}

func snapshotToDTO(ctx context.Context, snapshot usecase.ReferenceSnapshot) referenceSnapshotDTO {
	_, span := startSpan(ctx, "httpapi.snapshotToDTO")
	defer span.End()

	return referenceSnapshotDTO{
		Version:     snapshot.Version,
		Season:      snapshot.Season,
		PlayerCount: snapshot.PlayerCount,
		TeamCount:   snapshot.TeamCount,
		LeagueCount: snapshot.LeagueCount,
		Seasons:     snapshot.Seasons,
		ReloadedAt:  snapshot.ReloadedAt,
	}
}

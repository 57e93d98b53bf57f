package httpapi

import (
	"net/http"
)

func (h *Handler) ListTeamRatings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeamRatings")
	defer span.End()

	ratings, err := h.ratingService.ListTeamRatings(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "list team ratings failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]teamRatingDTO, 0, len(ratings))
	for _, item := range ratings {
		items = append(items, teamRatingDTO{
			Team:     item.Team,
			LeagueID: item.LeagueID,
			Rating:   item.Rating,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListLeagueRatings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListLeagueRatings")
	defer span.End()

	ratings, err := h.ratingService.ListLeagueRatings(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "list league ratings failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]leagueRatingDTO, 0, len(ratings))
	for _, item := range ratings {
		items = append(items, leagueRatingDTO{
			DisplayName: item.DisplayName,
			Rating:      item.Rating,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

type teamRatingDTO struct {
	Team     string  `json:"team"`
	LeagueID string  `json:"leagueId"`
	Rating   float64 `json:"rating"`
}

type leagueRatingDTO struct {
	DisplayName string  `json:"displayName"`
	Rating      float64 `json:"rating"`
}

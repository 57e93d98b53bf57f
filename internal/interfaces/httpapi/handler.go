package httpapi

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/mbarese/transfer-sim/internal/domain/simulation"
	"github.com/mbarese/transfer-sim/internal/usecase"
)

type Handler struct {
	simulationService *usecase.SimulationService
	playerService     *usecase.PlayerService
	ratingService     *usecase.RatingService
	referenceService  *usecase.ReferenceService
	logger            *slog.Logger
	validator         *validator.Validate
}

func NewHandler(
	simulationService *usecase.SimulationService,
	playerService *usecase.PlayerService,
	ratingService *usecase.RatingService,
	referenceService *usecase.ReferenceService,
	logger *slog.Logger,
) *Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		simulationService: simulationService,
		playerService:     playerService,
		ratingService:     ratingService,
		referenceService:  referenceService,
		logger:            logger,
		validator:         validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) SimulateTransfer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SimulateTransfer")
	defer span.End()

	var req simulateTransferRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.simulationService.Simulate(ctx, req.toInput())
	if err != nil {
		h.logger.WarnContext(ctx, "simulate transfer failed", "player", req.PlayerName, "to_team", req.ToTeam, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, resultToDTO(ctx, result))
}

func (h *Handler) SimulateTransferBatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SimulateTransferBatch")
	defer span.End()

	var req simulateTransferBatchRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	inputs := make([]usecase.SimulationRequest, 0, len(req.Items))
	for _, item := range req.Items {
		inputs = append(inputs, item.toInput())
	}

	result, err := h.simulationService.SimulateBatch(ctx, inputs)
	if err != nil {
		h.logger.WarnContext(ctx, "simulate transfer batch failed", "item_count", len(req.Items), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, batchToDTO(ctx, result))
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

type simulateTransferRequest struct {
	PlayerName      string   `json:"playerName" validate:"required"`
	ToTeam          string   `json:"toTeam" validate:"required"`
	ToLeague        string   `json:"toLeague"`
	Metrics         []string `json:"metrics" validate:"max=20,dive,required"`
	PositionScaling bool     `json:"positionScaling"`
	Sensitivity     *float64 `json:"sensitivity"`
	PositionWeight  *float64 `json:"positionWeight"`
}

func (req simulateTransferRequest) toInput() usecase.SimulationRequest {
	return usecase.SimulationRequest{
		PlayerName:      req.PlayerName,
		ToTeam:          req.ToTeam,
		ToLeague:        req.ToLeague,
		Metrics:         req.Metrics,
		PositionScaling: req.PositionScaling,
		Sensitivity:     req.Sensitivity,
		PositionWeight:  req.PositionWeight,
	}
}

type simulateTransferBatchRequest struct {
	Items []simulateTransferRequest `json:"items" validate:"required,min=1,dive"`
}

type simulationContextDTO struct {
	Team         string              `json:"team"`
	League       string              `json:"league"`
	TeamRating   float64             `json:"teamRating"`
	LeagueRating float64             `json:"leagueRating"`
	Metrics      map[string]*float64 `json:"metrics"`
}

type cohortAveragesDTO struct {
	FromTeam   *float64 `json:"fromTeam"`
	ToTeam     *float64 `json:"toTeam"`
	FromLeague *float64 `json:"fromLeague"`
	ToLeague   *float64 `json:"toLeague"`
}

type simulationResultDTO struct {
	Player        string                       `json:"player"`
	PositionGroup string                       `json:"positionGroup"`
	Season        string                       `json:"season"`
	Current       simulationContextDTO         `json:"current"`
	Potential     simulationContextDTO         `json:"potential"`
	Averages      map[string]cohortAveragesDTO `json:"averages,omitempty"`
}

type batchItemDTO struct {
	Index  int                  `json:"index"`
	Result *simulationResultDTO `json:"result,omitempty"`
	Error  string               `json:"error,omitempty"`
}

type batchResultDTO struct {
	ItemCount    int            `json:"itemCount"`
	SuccessCount int            `json:"successCount"`
	FailedCount  int            `json:"failedCount"`
	WorkerCount  int            `json:"workerCount"`
	Items        []batchItemDTO `json:"items"`
}

func resultToDTO(ctx context.Context, result simulation.Result) simulationResultDTO {
	_, span := startSpan(ctx, "httpapi.resultToDTO")
	defer span.End()

	dto := simulationResultDTO{
		Player:        result.Player,
		PositionGroup: result.PositionGroup,
		Season:        result.Season,
		Current:       contextToDTO(result.Current),
		Potential:     contextToDTO(result.Potential),
	}
	if len(result.Averages) > 0 {
		dto.Averages = make(map[string]cohortAveragesDTO, len(result.Averages))
		for metric, averages := range result.Averages {
			dto.Averages[metric] = cohortAveragesDTO{
				FromTeam:   averages.FromTeam,
				ToTeam:     averages.ToTeam,
				FromLeague: averages.FromLeague,
				ToLeague:   averages.ToLeague,
			}
		}
	}

	return dto
}

func contextToDTO(c simulation.Context) simulationContextDTO {
	return simulationContextDTO{
		Team:         c.Team,
		League:       c.League,
		TeamRating:   c.TeamRating,
		LeagueRating: c.LeagueRating,
		Metrics:      c.Metrics,
	}
}

func batchToDTO(ctx context.Context, result usecase.BatchResult) batchResultDTO {
	_, span := startSpan(ctx, "httpapi.batchToDTO")
	defer span.End()

	items := make([]batchItemDTO, 0, len(result.Items))
	for _, item := range result.Items {
		dto := batchItemDTO{Index: item.Index, Error: item.Error}
		if item.Result != nil {
			mapped := resultToDTO(ctx, *item.Result)
			dto.Result = &mapped
		}
		items = append(items, dto)
	}

	return batchResultDTO{
		ItemCount:    result.ItemCount,
		SuccessCount: result.SuccessCount,
		FailedCount:  result.FailedCount,
		WorkerCount:  result.WorkerCount,
		Items:        items,
	}
}

package httpapi

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/mbarese/transfer-sim/internal/domain/simulation"
	"github.com/mbarese/transfer-sim/internal/infrastructure/repository/memory"
	idgen "github.com/mbarese/transfer-sim/internal/platform/id"
	"github.com/mbarese/transfer-sim/internal/usecase"
)

const testSeason = "2025-26"

func newTestRouter(t *testing.T, internalJobToken string) http.Handler {
	t.Helper()

	playerRepo := memory.NewPlayerRepository(memory.SeedPlayers())
	teamRepo := memory.NewTeamRatingRepository(memory.SeedTeamRatings())
	leagueRepo := memory.NewLeagueRatingRepository(memory.SeedLeagueRatings())

	ratingService := usecase.NewRatingService(teamRepo, leagueRepo, 50.0)
	cohortService := usecase.NewCohortService(playerRepo)
	simulationService := usecase.NewSimulationService(playerRepo, ratingService, cohortService, testSeason, simulation.DefaultParams(), 4, 10)
	playerService := usecase.NewPlayerService(playerRepo, testSeason)
	referenceService := usecase.NewReferenceService(playerRepo, teamRepo, leagueRepo, nil, idgen.NewRandomGenerator(), testSeason, nil)

	handler := NewHandler(simulationService, playerService, ratingService, referenceService, nil)

	return NewRouter(handler, nil, false, []string{"*"}, internalJobToken)
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}

	return body
}

func TestRouter_Healthz(t *testing.T) {
	router := newTestRouter(t, "")

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	body := decodeEnvelope(t, rec)
	data, ok := body["data"].(map[string]any)
	if !ok {
		t.Fatalf("expected data object, got %v", body["data"])
	}
	if data["status"] != "ok" {
		t.Fatalf("unexpected health payload: %v", data)
	}
}

func TestRouter_SimulateTransfer(t *testing.T) {
	router := newTestRouter(t, "")

	payload := `{"playerName":"Emil Varga","toTeam":"Manchester City","metrics":["Goals"]}`
	req := httptest.NewRequest(http.MethodPost, "/v1/simulations/transfer", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	body := decodeEnvelope(t, rec)
	data, ok := body["data"].(map[string]any)
	if !ok {
		t.Fatalf("expected data object, got %v", body["data"])
	}
	if data["player"] != "Emil Varga" {
		t.Fatalf("unexpected player in result: %v", data["player"])
	}
	potential, ok := data["potential"].(map[string]any)
	if !ok {
		t.Fatalf("expected potential context, got %v", data["potential"])
	}
	if potential["team"] != "Manchester City" {
		t.Fatalf("unexpected potential team: %v", potential["team"])
	}
	metrics, ok := potential["metrics"].(map[string]any)
	if !ok {
		t.Fatalf("expected potential metrics, got %v", potential["metrics"])
	}
	if _, ok := metrics["Goals"]; !ok {
		t.Fatalf("expected Goals in potential metrics: %v", metrics)
	}
	if _, ok := data["averages"]; ok {
		t.Fatalf("did not expect averages without position scaling")
	}
}

func TestRouter_SimulateTransfer_UnknownPlayer(t *testing.T) {
	router := newTestRouter(t, "")

	payload := `{"playerName":"Nobody Atall","toTeam":"Arsenal"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/simulations/transfer", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
	body := decodeEnvelope(t, rec)
	errorObj, ok := body["error"].(map[string]any)
	if !ok {
		t.Fatalf("expected error object, got %v", body)
	}
	if errorObj["status"] != "NOT_FOUND" {
		t.Fatalf("unexpected error status: %v", errorObj["status"])
	}
}

func TestRouter_SimulateTransfer_RejectsUnknownFields(t *testing.T) {
	router := newTestRouter(t, "")

	payload := `{"playerName":"Emil Varga","toTeam":"Arsenal","surprise":true}`
	req := httptest.NewRequest(http.MethodPost, "/v1/simulations/transfer", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestRouter_SimulateTransfer_MissingToTeam(t *testing.T) {
	router := newTestRouter(t, "")

	payload := `{"playerName":"Emil Varga"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/simulations/transfer", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
	body := decodeEnvelope(t, rec)
	errorObj, ok := body["error"].(map[string]any)
	if !ok {
		t.Fatalf("expected error object, got %v", body)
	}
	if errorObj["status"] != "INVALID_ARGUMENT" {
		t.Fatalf("unexpected error status: %v", errorObj["status"])
	}
}

func TestRouter_SimulateTransferBatch(t *testing.T) {
	router := newTestRouter(t, "")

	payload := `{"items":[
		{"playerName":"Emil Varga","toTeam":"Manchester City"},
		{"playerName":"Nobody Atall","toTeam":"Arsenal"}
	]}`
	req := httptest.NewRequest(http.MethodPost, "/v1/simulations/transfers:batch", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	body := decodeEnvelope(t, rec)
	data, ok := body["data"].(map[string]any)
	if !ok {
		t.Fatalf("expected data object, got %v", body["data"])
	}
	if got := data["itemCount"]; got != float64(2) {
		t.Fatalf("unexpected itemCount: %v", got)
	}
	if got := data["successCount"]; got != float64(1) {
		t.Fatalf("unexpected successCount: %v", got)
	}
	if got := data["failedCount"]; got != float64(1) {
		t.Fatalf("unexpected failedCount: %v", got)
	}
	items, ok := data["items"].([]any)
	if !ok || len(items) != 2 {
		t.Fatalf("expected 2 batch items, got %v", data["items"])
	}
}

func TestRouter_GetPlayer(t *testing.T) {
	router := newTestRouter(t, "")

	req := httptest.NewRequest(http.MethodGet, "/v1/players/Emil%20Varga", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	body := decodeEnvelope(t, rec)
	data, ok := body["data"].(map[string]any)
	if !ok {
		t.Fatalf("expected data object, got %v", body["data"])
	}
	if data["name"] != "Emil Varga" {
		t.Fatalf("unexpected player name: %v", data["name"])
	}
	if data["parentTeam"] != "Arsenal" {
		t.Fatalf("unexpected parent team: %v", data["parentTeam"])
	}
}

func TestRouter_ListPlayers_InvalidLimit(t *testing.T) {
	router := newTestRouter(t, "")

	req := httptest.NewRequest(http.MethodGet, "/v1/players?limit=abc", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestRouter_ListTransfers(t *testing.T) {
	router := newTestRouter(t, "")

	req := httptest.NewRequest(http.MethodGet, "/v1/transfers?from=2024-25&to=2025-26", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	body := decodeEnvelope(t, rec)
	items, ok := body["data"].([]any)
	if !ok {
		t.Fatalf("expected data array, got %v", body["data"])
	}
	if len(items) == 0 {
		t.Fatalf("expected detected transfers in seed data")
	}

	t.Run("missing seasons", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/transfers?from=2024-25", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected status 400, got %d", rec.Code)
		}
	})
}

func TestRouter_InternalReferenceRoutes(t *testing.T) {
	t.Run("unconfigured token responds unavailable", func(t *testing.T) {
		router := newTestRouter(t, "")

		req := httptest.NewRequest(http.MethodPost, "/v1/internal/reference/reload", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusServiceUnavailable {
			t.Fatalf("expected status 503, got %d", rec.Code)
		}
	})

	t.Run("wrong token rejected", func(t *testing.T) {
		router := newTestRouter(t, "job-token")

		req := httptest.NewRequest(http.MethodPost, "/v1/internal/reference/reload", nil)
		req.Header.Set("X-Internal-Job-Token", "wrong")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected status 401, got %d", rec.Code)
		}
	})

	t.Run("reload with valid token", func(t *testing.T) {
		router := newTestRouter(t, "job-token")

		req := httptest.NewRequest(http.MethodPost, "/v1/internal/reference/reload", nil)
		req.Header.Set("X-Internal-Job-Token", "job-token")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
		}

		body := decodeEnvelope(t, rec)
		data, ok := body["data"].(map[string]any)
		if !ok {
			t.Fatalf("expected data object, got %v", body["data"])
		}
		if got := data["leagueCount"]; got != float64(3) {
			t.Fatalf("unexpected leagueCount: %v", got)
		}
		if data["version"] == "" {
			t.Fatalf("expected non-empty version")
		}

		statusReq := httptest.NewRequest(http.MethodGet, "/v1/internal/reference/status", nil)
		statusReq.Header.Set("X-Internal-Job-Token", "job-token")
		statusRec := httptest.NewRecorder()
		router.ServeHTTP(statusRec, statusReq)
		if statusRec.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", statusRec.Code)
		}
		statusBody := decodeEnvelope(t, statusRec)
		statusData, ok := statusBody["data"].(map[string]any)
		if !ok {
			t.Fatalf("expected data object, got %v", statusBody["data"])
		}
		if statusData["version"] != data["version"] {
			t.Fatalf("expected status to match reload snapshot: %v vs %v", statusData["version"], data["version"])
		}
	})
}

func TestRouter_RatingListings(t *testing.T) {
	router := newTestRouter(t, "")

	req := httptest.NewRequest(http.MethodGet, "/v1/ratings/teams", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	body := decodeEnvelope(t, rec)
	items, ok := body["data"].([]any)
	if !ok || len(items) == 0 {
		t.Fatalf("expected team rating items, got %v", body["data"])
	}
	first, ok := items[0].(map[string]any)
	if !ok {
		t.Fatalf("expected rating object, got %v", items[0])
	}
	if _, ok := first["team"]; !ok {
		t.Fatalf("expected team field in rating item: %v", first)
	}
	if _, ok := first["rating"]; !ok {
		t.Fatalf("expected rating field in rating item: %v", first)
	}
}

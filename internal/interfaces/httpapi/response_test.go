package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mbarese/transfer-sim/internal/usecase"
)

func TestWriteSuccess_Envelope(t *testing.T) {
	rec := httptest.NewRecorder()
	writeSuccess(context.Background(), rec, http.StatusOK, map[string]string{"season": "2025-26"})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("content type = %q", ct)
	}

	body := decodeEnvelope(t, rec)
	if got, _ := body["apiVersion"].(string); got != "2.0" {
		t.Fatalf("apiVersion = %v", body["apiVersion"])
	}
	if _, ok := body["data"]; !ok {
		t.Fatal("success envelope missing data")
	}
	if _, ok := body["error"]; ok {
		t.Fatal("success envelope carries an error")
	}
}

func TestWriteError_MapsSentinels(t *testing.T) {
	cases := []struct {
		err        error
		wantCode   int
		wantStatus string
	}{
		{fmt.Errorf("%w: unknown metric xg90", usecase.ErrInvalidInput), http.StatusBadRequest, "INVALID_ARGUMENT"},
		{fmt.Errorf("%w: player %q", usecase.ErrNotFound, "J. Doe"), http.StatusNotFound, "NOT_FOUND"},
		{fmt.Errorf("%w: internal job token mismatch", usecase.ErrUnauthorized), http.StatusUnauthorized, "UNAUTHENTICATED"},
		{fmt.Errorf("%w: reference data not loaded", usecase.ErrDependencyUnavailable), http.StatusServiceUnavailable, "UNAVAILABLE"},
		{errors.New("postgres exploded"), http.StatusInternalServerError, "INTERNAL"},
	}

	for _, tc := range cases {
		rec := httptest.NewRecorder()
		writeError(context.Background(), rec, tc.err)

		if rec.Code != tc.wantCode {
			t.Fatalf("writeError(%v) status = %d, want %d", tc.err, rec.Code, tc.wantCode)
		}
		body := decodeEnvelope(t, rec)
		errorObj, ok := body["error"].(map[string]any)
		if !ok {
			t.Fatalf("writeError(%v) envelope missing error", tc.err)
		}
		if got, _ := errorObj["status"].(string); got != tc.wantStatus {
			t.Fatalf("writeError(%v) status = %v, want %s", tc.err, errorObj["status"], tc.wantStatus)
		}
	}
}

func TestWriteInternalError_HidesCause(t *testing.T) {
	rec := httptest.NewRecorder()
	writeInternalError(context.Background(), rec)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	body := decodeEnvelope(t, rec)
	errorObj, _ := body["error"].(map[string]any)
	if got, _ := errorObj["message"].(string); got != "internal server error" {
		t.Fatalf("message = %q", got)
	}
}

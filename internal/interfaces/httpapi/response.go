package httpapi

import (
	"context"
	"errors"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/mbarese/transfer-sim/internal/usecase"
)

// Responses follow the Google JSON style: a top-level envelope carrying
// apiVersion plus either data or error.
const (
	apiVersion  = "2.0"
	errorDomain = "transfer-sim"
)

type envelope struct {
	APIVersion string     `json:"apiVersion"`
	Data       any        `json:"data,omitempty"`
	Error      *errorBody `json:"error,omitempty"`
}

type errorBody struct {
	Code    int           `json:"code"`
	Message string        `json:"message"`
	Status  string        `json:"status"`
	Errors  []errorDetail `json:"errors,omitempty"`
}

type errorDetail struct {
	Domain  string `json:"domain"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

type errorMapping struct {
	httpStatus int
	reason     string
	status     string
}

var errorMappings = []struct {
	sentinel error
	mapping  errorMapping
}{
	{usecase.ErrInvalidInput, errorMapping{http.StatusBadRequest, "invalidInput", "INVALID_ARGUMENT"}},
	{usecase.ErrNotFound, errorMapping{http.StatusNotFound, "notFound", "NOT_FOUND"}},
	{usecase.ErrUnauthorized, errorMapping{http.StatusUnauthorized, "unauthorized", "UNAUTHENTICATED"}},
	{usecase.ErrDependencyUnavailable, errorMapping{http.StatusServiceUnavailable, "dependencyUnavailable", "UNAVAILABLE"}},
}

var internalMapping = errorMapping{http.StatusInternalServerError, "internalError", "INTERNAL"}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	_, span := startSpan(ctx, "httpapi.writeJSON")
	defer span.End()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = sonic.ConfigDefault.NewEncoder(w).Encode(payload)
}

func writeSuccess(ctx context.Context, w http.ResponseWriter, status int, data any) {
	ctx, span := startSpan(ctx, "httpapi.writeSuccess")
	defer span.End()

	writeJSON(ctx, w, status, envelope{APIVersion: apiVersion, Data: data})
}

func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	ctx, span := startSpan(ctx, "httpapi.writeError")
	defer span.End()

	m := mapError(err)
	writeJSON(ctx, w, m.httpStatus, envelope{
		APIVersion: apiVersion,
		Error: &errorBody{
			Code:    m.httpStatus,
			Message: err.Error(),
			Status:  m.status,
			Errors:  []errorDetail{{Domain: errorDomain, Reason: m.reason, Message: err.Error()}},
		},
	})
}

// writeInternalError never echoes the failure back to the client; the
// cause lands in the log instead.
func writeInternalError(ctx context.Context, w http.ResponseWriter) {
	ctx, span := startSpan(ctx, "httpapi.writeInternalError")
	defer span.End()

	const msg = "internal server error"
	writeJSON(ctx, w, internalMapping.httpStatus, envelope{
		APIVersion: apiVersion,
		Error: &errorBody{
			Code:    internalMapping.httpStatus,
			Message: msg,
			Status:  internalMapping.status,
			Errors:  []errorDetail{{Domain: errorDomain, Reason: internalMapping.reason, Message: msg}},
		},
	})
}

func mapError(err error) errorMapping {
	for _, entry := range errorMappings {
		if errors.Is(err, entry.sentinel) {
			return entry.mapping
		}
	}
	return internalMapping
}

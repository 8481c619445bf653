package admin

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/getidkit/idkit/internal/id"
	types "github.com/getidkit/idkit/pkg/api/types"
	"github.com/getidkit/idkit/pkg/metrics"
)

// Type aliases pointing to the canonical shared types.
type (
	ErrorResponse  = types.ErrorResponse
	HealthResponse = types.HealthResponse
	StatusResponse = types.StatusResponse
	IDResponse     = types.IDResponse
	StatsResponse  = types.StatsResponse
)

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, errCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Error:   errCode,
		Message: message,
	})
}

// handleHealth handles GET /health.
func (a *API) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
		Uptime: a.Uptime(),
	})
}

// handleGetStatus handles GET /status.
func (a *API) handleGetStatus(w http.ResponseWriter, r *http.Request) {
	version := a.version
	if version == "" {
		version = "dev"
	}
	writeJSON(w, http.StatusOK, StatusResponse{
		Status:       "running",
		Host:         a.host,
		Port:         a.port,
		Uptime:       a.Uptime(),
		IssuedCount:  a.gen.Issued(),
		SessionCount: a.sessions.Count(),
		Version:      version,
	})
}

// handleGenerateID handles POST /ids. Saturation maps to 503 so callers can
// tell "keyspace exhausted" from ordinary server errors.
func (a *API) handleGenerateID(w http.ResponseWriter, r *http.Request) {
	newID, err := a.gen.Generate()
	if err != nil {
		switch {
		case errors.Is(err, id.ErrSaturated):
			_ = metrics.IDsIssuedTotal.Inc("saturated")
			writeError(w, http.StatusServiceUnavailable, "saturated", err.Error())
		case errors.Is(err, id.ErrEntropyUnavailable):
			_ = metrics.IDsIssuedTotal.Inc("entropy_error")
			writeError(w, http.StatusInternalServerError, "entropy_unavailable", err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "generate_failed", err.Error())
		}
		return
	}

	_ = metrics.IDsIssuedTotal.Inc("success")
	_ = metrics.IDsActive.Set(float64(a.gen.Issued()))
	writeJSON(w, http.StatusCreated, IDResponse{ID: newID, Issued: true})
}

// handleGetID handles GET /ids/{id}.
func (a *API) handleGetID(w http.ResponseWriter, r *http.Request) {
	lookup := r.PathValue("id")
	if !a.gen.Exists(lookup) {
		writeError(w, http.StatusNotFound, "not_found", "identifier was not issued by this instance")
		return
	}
	writeJSON(w, http.StatusOK, IDResponse{ID: lookup, Issued: true})
}

// handleGetStats handles GET /stats.
func (a *API) handleGetStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, StatsResponse{
		Alphabet:    a.gen.Alphabet(),
		Length:      a.gen.Length(),
		MaxAttempts: a.gen.MaxAttempts(),
		Issued:      a.gen.Issued(),
		Keyspace:    a.gen.Keyspace().String(),
	})
}

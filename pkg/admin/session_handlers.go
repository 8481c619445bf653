package admin

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/getidkit/idkit/internal/id"
	types "github.com/getidkit/idkit/pkg/api/types"
	"github.com/getidkit/idkit/pkg/metrics"
	"github.com/getidkit/idkit/pkg/session"
)

func toSessionResponse(s session.Session) types.SessionResponse {
	return types.SessionResponse{
		ID:         s.ID,
		Name:       s.Name,
		CreatedAt:  s.CreatedAt,
		LastSeenAt: s.LastSeenAt,
	}
}

// handleListSessions handles GET /sessions.
func (a *API) handleListSessions(w http.ResponseWriter, r *http.Request) {
	list := a.sessions.List()
	out := make([]types.SessionResponse, len(list))
	for i, s := range list {
		out[i] = toSessionResponse(s)
	}
	writeJSON(w, http.StatusOK, types.SessionListResponse{Sessions: out, Count: len(out)})
}

// handleCreateSession handles POST /sessions. An empty body is allowed and
// creates an unnamed session.
func (a *API) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req types.CreateSessionRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_body", "request body must be JSON")
			return
		}
	}

	s, err := a.sessions.Create(req.Name)
	if err != nil {
		switch {
		case errors.Is(err, id.ErrSaturated):
			_ = metrics.IDsIssuedTotal.Inc("saturated")
			writeError(w, http.StatusServiceUnavailable, "saturated", err.Error())
		case errors.Is(err, id.ErrEntropyUnavailable):
			_ = metrics.IDsIssuedTotal.Inc("entropy_error")
			writeError(w, http.StatusInternalServerError, "entropy_unavailable", err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "create_failed", err.Error())
		}
		return
	}

	_ = metrics.IDsIssuedTotal.Inc("success")
	_ = metrics.IDsActive.Set(float64(a.gen.Issued()))
	_ = metrics.SessionsActive.Set(float64(a.sessions.Count()))
	writeJSON(w, http.StatusCreated, toSessionResponse(s))
}

// handleGetSession handles GET /sessions/{id}.
func (a *API) handleGetSession(w http.ResponseWriter, r *http.Request) {
	s, ok := a.sessions.Get(r.PathValue("id"))
	if !ok {
		writeError(w, http.StatusNotFound, "not_found", "session not found")
		return
	}
	writeJSON(w, http.StatusOK, toSessionResponse(s))
}

// handleDeleteSession handles DELETE /sessions/{id}.
func (a *API) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if !a.sessions.Delete(r.PathValue("id")) {
		writeError(w, http.StatusNotFound, "not_found", "session not found")
		return
	}
	_ = metrics.SessionsActive.Set(float64(a.sessions.Count()))
	w.WriteHeader(http.StatusNoContent)
}

// handleTouchSession handles POST /sessions/{id}/touch.
func (a *API) handleTouchSession(w http.ResponseWriter, r *http.Request) {
	s, ok := a.sessions.Touch(r.PathValue("id"))
	if !ok {
		writeError(w, http.StatusNotFound, "not_found", "session not found")
		return
	}
	writeJSON(w, http.StatusOK, toSessionResponse(s))
}

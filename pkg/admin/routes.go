// Route registration for the admin API.

package admin

import "net/http"

// registerRoutes sets up all API routes.
func (a *API) registerRoutes(mux *http.ServeMux) {
	// Health, status, metrics
	mux.HandleFunc("GET /health", a.handleHealth)
	mux.HandleFunc("GET /status", a.handleGetStatus)
	mux.Handle("GET /metrics", a.metricsRegistry.Handler())

	// Identifier issuance
	mux.HandleFunc("POST /ids", a.handleGenerateID)
	mux.HandleFunc("GET /ids/{id}", a.handleGetID)
	mux.HandleFunc("GET /stats", a.handleGetStats)

	// Session management
	mux.HandleFunc("GET /sessions", a.handleListSessions)
	mux.HandleFunc("POST /sessions", a.handleCreateSession)
	mux.HandleFunc("GET /sessions/{id}", a.handleGetSession)
	mux.HandleFunc("DELETE /sessions/{id}", a.handleDeleteSession)
	mux.HandleFunc("POST /sessions/{id}/touch", a.handleTouchSession)
}

// Package types holds the shared request and response types of the idkit
// admin API, used by both the server handlers and the CLI client.
package types

import "time"

// ErrorResponse is the error body returned by every failing endpoint.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status string `json:"status"`
	Uptime string `json:"uptime,omitempty"`
}

// StatusResponse is returned by GET /status.
type StatusResponse struct {
	Status       string `json:"status"`
	Host         string `json:"host,omitempty"`
	Port         int    `json:"port"`
	Uptime       string `json:"uptime"`
	IssuedCount  int    `json:"issuedCount"`
	SessionCount int    `json:"sessionCount"`
	Version      string `json:"version"`
}

// IDResponse is returned by POST /ids and GET /ids/{id}.
type IDResponse struct {
	ID     string `json:"id"`
	Issued bool   `json:"issued"`
}

// StatsResponse is returned by GET /stats and describes the serving
// generator's configuration and fill level.
type StatsResponse struct {
	Alphabet    string `json:"alphabet"`
	Length      int    `json:"length"`
	MaxAttempts int    `json:"maxAttempts"`
	Issued      int    `json:"issued"`
	// Keyspace is len(alphabet)^length, as a decimal string since it
	// overflows int64 for ordinary configurations.
	Keyspace string `json:"keyspace"`
}

// SessionResponse describes one session.
type SessionResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	LastSeenAt time.Time `json:"lastSeenAt"`
}

// SessionListResponse is returned by GET /sessions.
type SessionListResponse struct {
	Sessions []SessionResponse `json:"sessions"`
	Count    int               `json:"count"`
}

// CreateSessionRequest is the body of POST /sessions.
type CreateSessionRequest struct {
	Name string `json:"name,omitempty"`
}

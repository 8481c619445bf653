// Package admin exposes the identifier generator and session registry over
// a small HTTP API, plus health, status and metrics endpoints.
package admin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/getidkit/idkit/internal/id"
	"github.com/getidkit/idkit/pkg/logging"
	"github.com/getidkit/idkit/pkg/metrics"
	"github.com/getidkit/idkit/pkg/session"
)

// Options configures the admin API.
type Options struct {
	// Host is the listen address. Empty means all interfaces.
	Host string

	// Port is the listen port.
	Port int

	// Generator is the serving generator. Required.
	Generator *id.Generator

	// Sessions is the session registry. If nil, one is created on Generator.
	Sessions *session.Registry

	// Metrics is the metric registry backing /metrics. If nil, one is
	// created and the package default metrics are registered on it.
	Metrics *metrics.Registry

	// Logger is used for request and lifecycle logging. Nil disables it.
	Logger *slog.Logger

	// Version is reported by /status.
	Version string
}

// API is the admin HTTP server.
type API struct {
	host            string
	port            int
	gen             *id.Generator
	sessions        *session.Registry
	metricsRegistry *metrics.Registry
	log             *slog.Logger
	version         string

	server    *http.Server
	startTime time.Time
}

// New creates the admin API. It does not start listening; call Start.
func New(opts Options) *API {
	log := opts.Logger
	if log == nil {
		log = logging.Nop()
	}
	sessions := opts.Sessions
	if sessions == nil {
		sessions = session.NewRegistry(opts.Generator, log)
	}
	reg := opts.Metrics
	if reg == nil {
		reg = metrics.NewRegistry()
	}
	metrics.Init(reg)

	a := &API{
		host:            opts.Host,
		port:            opts.Port,
		gen:             opts.Generator,
		sessions:        sessions,
		metricsRegistry: reg,
		log:             log,
		version:         opts.Version,
	}

	mux := http.NewServeMux()
	a.registerRoutes(mux)
	a.server = &http.Server{
		Addr:              net.JoinHostPort(opts.Host, fmt.Sprintf("%d", opts.Port)),
		Handler:           a.withMiddleware(mux),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return a
}

// Handler returns the full handler chain, exposed for tests.
func (a *API) Handler() http.Handler {
	return a.server.Handler
}

// Start begins serving and blocks until the server stops. It returns nil on
// graceful shutdown.
func (a *API) Start() error {
	a.startTime = time.Now()
	a.log.Info("admin API listening", "addr", a.server.Addr)
	err := a.server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown stops the server gracefully, waiting for in-flight requests up to
// the context deadline.
func (a *API) Shutdown(ctx context.Context) error {
	a.log.Info("admin API shutting down")
	return a.server.Shutdown(ctx)
}

// Uptime returns how long the server has been running.
func (a *API) Uptime() string {
	if a.startTime.IsZero() {
		return "0s"
	}
	return time.Since(a.startTime).Round(time.Second).String()
}

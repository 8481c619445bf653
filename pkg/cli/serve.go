package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/getidkit/idkit/pkg/admin"
	"github.com/getidkit/idkit/pkg/config"
	"github.com/getidkit/idkit/pkg/logging"
	"github.com/getidkit/idkit/pkg/metrics"
	"github.com/getidkit/idkit/pkg/session"
)

// shutdownTimeout is the maximum time to wait for graceful shutdown.
const shutdownTimeout = 30 * time.Second

// serveFlags holds the flag values for the serve command.
type serveFlags struct {
	configPath string
	host       string
	port       int
	logLevel   string
	logFormat  string
}

// serveFlagVals is the package-level instance bound to cobra flags.
var serveFlagVals serveFlags

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the identifier service (foreground)",
	Long: `Start the identifier service. The admin API exposes identifier issuance,
session management, health, status and metrics endpoints.`,
	Example: `  # Start with defaults
  idkit serve

  # Start with a config file on a custom port
  idkit serve --config idkit.yaml --port 3000

  # Start with JSON logs at debug level
  idkit serve --log-level debug --log-format json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(&serveFlagVals)
	},
}

func init() {
	serveCmd.Flags().StringVarP(&serveFlagVals.configPath, "config", "c", "", "path to config file (YAML or JSON)")
	serveCmd.Flags().StringVar(&serveFlagVals.host, "host", "", "listen address (default all interfaces)")
	serveCmd.Flags().IntVarP(&serveFlagVals.port, "port", "p", 0, "admin API port")
	serveCmd.Flags().StringVar(&serveFlagVals.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	serveCmd.Flags().StringVar(&serveFlagVals.logFormat, "log-format", "", "log format (text, json)")
}

func runServe(flags *serveFlags) error {
	cfg, err := loadServeConfig(flags)
	if err != nil {
		return err
	}

	log := logging.New(logging.Config{
		Level:  logging.ParseLevel(cfg.Logging.Level),
		Format: logging.ParseFormat(cfg.Logging.Format),
	})

	gen, err := cfg.NewGenerator()
	if err != nil {
		return fmt.Errorf("failed to build generator: %w", err)
	}

	reg := metrics.NewRegistry()
	metrics.Init(reg)
	sessions := session.NewRegistry(gen, log)

	api := admin.New(admin.Options{
		Host:      cfg.Server.Host,
		Port:      cfg.Server.Port,
		Generator: gen,
		Sessions:  sessions,
		Metrics:   reg,
		Logger:    log,
		Version:   buildInfo.Version,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() { errCh <- api.Start() }()

	log.Info("idkit started",
		"version", buildInfo.Version,
		"port", cfg.Server.Port,
		"alphabet_size", len(cfg.Generator.Alphabet),
		"id_length", cfg.Generator.Length)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := api.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	log.Info("idkit stopped")
	return nil
}

// loadServeConfig loads the config file if given, otherwise the defaults,
// and applies flag overrides on top.
func loadServeConfig(flags *serveFlags) (*config.Config, error) {
	cfg := config.Default()
	if flags.configPath != "" {
		loaded, err := config.Load(flags.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if flags.host != "" {
		cfg.Server.Host = flags.host
	}
	if flags.port != 0 {
		cfg.Server.Port = flags.port
	}
	if flags.logLevel != "" {
		cfg.Logging.Level = flags.logLevel
	}
	if flags.logFormat != "" {
		cfg.Logging.Format = flags.logFormat
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

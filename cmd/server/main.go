/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the rescisão settlement server.
  Handles configuration, rule-table loading, and graceful shutdown.

STARTUP SEQUENCE:
  1. Load configuration from the environment, apply command-line flags
  2. Initialize the JSON logger
  3. Initialize SQLite store
  4. Load the rule table (import -rules file, else active version, else seed)
  5. Build the settlement engine and API handler
  6. Start server with graceful shutdown

COMMAND-LINE FLAGS (override the environment):
  -addr    HTTP listen address (APP_ADDR, default :8080)
  -db      SQLite database path (DB_PATH, default rescisao.db)
           Use ":memory:" for an in-memory database
  -rules   Rule-table file to import and activate (RULES_FILE)

ENVIRONMENT:
  LOG_LEVEL, APP_ENV, CORS_ORIGINS, MAX_BODY_BYTES, SHUTDOWN_TIMEOUT
  (see config/config.go)

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (SHUTDOWN_TIMEOUT)
  3. Close database connection
  4. Exit

EXAMPLES:
  # Run with the built-in 2025 tables
  ./server -db="./data/rescisao.db"

  # Activate new tables
  ./server -rules=./rules/2026.yaml

SEE ALSO:
  - api/server.go: Router configuration
  - api/ruletables.go: Rule-table loading
  - config/config.go: Environment variables
*/
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/warp/rescisao-engine/api"
	"github.com/warp/rescisao-engine/config"
	"github.com/warp/rescisao-engine/factory"
	"github.com/warp/rescisao-engine/settlement"
	"github.com/warp/rescisao-engine/store/sqlite"
)

func main() {
	cfg := config.Load()

	// Flags
	flag.StringVar(&cfg.Addr, "addr", cfg.Addr, "HTTP listen address")
	flag.StringVar(&cfg.DBPath, "db", cfg.DBPath, "SQLite database path")
	flag.StringVar(&cfg.RulesFile, "rules", cfg.RulesFile, "rule-table file (.yaml, .yml or .json) to import and activate")
	flag.Parse()

	logger := config.NewLogger(os.Stdout, cfg.LogLevel)
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	// Initialize store
	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		logger.Error("failed to initialize database", "path", cfg.DBPath, "error", err)
		os.Exit(1)
	}
	defer store.Close()

	// Rule table, loaded once for the life of the process
	table, err := api.LoadRuleTable(context.Background(), store, factory.NewRuleTableFactory(), cfg.RulesFile, logger)
	if err != nil {
		logger.Error("failed to load rule table", "error", err)
		store.Close()
		os.Exit(1)
	}

	handler := api.NewHandler(settlement.NewEngine(table), store, logger)
	handler.MaxBodyBytes = cfg.MaxBodyBytes
	router := api.NewRouter(handler, cfg.CORSOrigins)

	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Info("server starting",
			"addr", cfg.Addr,
			"env", cfg.Environment,
			"ruleTable", table.Version(),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	logger.Info("server stopped")
}

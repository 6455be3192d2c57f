/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the claim accrual estimator server. Loads the
  rule-set configuration, wires the engines into the HTTP layer, and
  handles graceful shutdown.

STARTUP SEQUENCE:
  1. Parse command-line flags
  2. Configure structured logging
  3. Load rule set (YAML file or baseline defaults)
  4. Create API handler and router
  5. Start server with graceful shutdown

COMMAND-LINE FLAGS:
  -port       HTTP server port (default: 8080)
  -ruleset    Rule-set YAML path (default: ruleset.yaml; missing file
              falls back to the baseline configuration)
  -log-level  debug, info, warn, error (default: info)
  -pretty     Human-readable console log output

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Exit

SEE ALSO:
  - api/server.go: Router configuration
  - factory/ruleset.go: Rule-set loading
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/gcc-insurance-intelligence-lab/ifrs-claim-accrual-estimator/api"
	"github.com/gcc-insurance-intelligence-lab/ifrs-claim-accrual-estimator/factory"
)

func main() {
	// Flags
	port := flag.Int("port", 8080, "HTTP server port")
	rulesetPath := flag.String("ruleset", "ruleset.yaml", "Rule-set YAML path")
	logLevel := flag.String("log-level", "info", "Log level: debug, info, warn, error")
	pretty := flag.Bool("pretty", false, "Human-readable console log output")
	flag.Parse()

	log := newLogger(*logLevel, *pretty)

	// Load rule set (missing file falls back to baseline defaults)
	components, err := factory.Load(*rulesetPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", *rulesetPath).Msg("Failed to load rule set")
	}

	// Wire HTTP layer
	handler := api.NewHandler(components, log)
	router := api.NewRouter(handler, log)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", *port),
		Handler: router,
	}

	// Start server in background
	go func() {
		log.Info().Int("port", *port).Msg("Claim accrual estimator listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Wait for shutdown signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info().Msg("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Shutdown incomplete")
	}
}

func newLogger(level string, pretty bool) zerolog.Logger {
	lvl := zerolog.InfoLevel
	switch level {
	case "debug":
		lvl = zerolog.DebugLevel
	case "info":
		lvl = zerolog.InfoLevel
	case "warn":
		lvl = zerolog.WarnLevel
	case "error":
		lvl = zerolog.ErrorLevel
	}

	var output io.Writer = os.Stdout
	if pretty {
		output = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "15:04:05"}
	}

	return zerolog.New(output).Level(lvl).With().Timestamp().Logger()
}

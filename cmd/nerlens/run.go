package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/nerlens/nerlens/config"
	"github.com/nerlens/nerlens/pkg/auth"
	"github.com/nerlens/nerlens/pkg/inference"
	"github.com/nerlens/nerlens/pkg/models"
	"github.com/nerlens/nerlens/pkg/observability"
	"github.com/nerlens/nerlens/pkg/server"
)

const shutdownTimeout = 10 * time.Second

// run is the entrypoint for the nerlens server
func run(ctx context.Context) {
	cfg, err := config.LoadConfig(cfgFile)
	if err != nil {
		log.Fatalf("Error configuring nerlens: %s", err)
	}

	handleCLIOptions(cfg)

	log.Infof("Starting nerlens server version %s", config.VersionString)

	config.SetLogLevel(cfg)

	shutdownTracing, err := observability.SetupTracing(ctx, cfg.Telemetry)
	if err != nil {
		log.Fatal(err)
	}

	appState := NewAppState(cfg)
	log.Infof("Using inference model %s at %s", cfg.Inference.Model, cfg.Inference.ServerURL)

	srv, err := server.Create(appState)
	if err != nil {
		log.Fatal(err)
	}

	go func() {
		<-ctx.Done()
		log.Info("Shutting down nerlens server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Errorf("Error shutting down server: %v", err)
		}
	}()

	log.Infof("Listening on: %s", srv.Addr)
	err = srv.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Errorf("Error flushing traces: %v", err)
	}
}

// NewAppState creates an AppState struct from the config file / ENV. The
// inference client is created once here and shared by all requests.
func NewAppState(cfg *config.Config) *models.AppState {
	return &models.AppState{
		Recognizer: inference.NewClient(cfg.Inference),
		Config:     cfg,
	}
}

// handleCLIOptions handles CLI options that don't require the server to run
func handleCLIOptions(cfg *config.Config) {
	if showVersion {
		fmt.Println(config.VersionString)
		os.Exit(0)
	}
	if dumpConfig {
		out, err := config.DumpYAML(cfg)
		if err != nil {
			log.Fatalf("Error dumping config: %s", err)
		}
		fmt.Print(string(out))
		os.Exit(0)
	}
	if generateKey {
		token, err := auth.GenerateJWT(cfg)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(token)
		os.Exit(0)
	}
}

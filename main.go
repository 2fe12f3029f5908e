package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"k8s.io/utils/clock"

	"github.com/danielhkuo/tanker-portal/cliparse"
	"github.com/danielhkuo/tanker-portal/db"
	"github.com/danielhkuo/tanker-portal/drought"
	"github.com/danielhkuo/tanker-portal/overview"
	"github.com/danielhkuo/tanker-portal/router"
	"github.com/danielhkuo/tanker-portal/scope"
	"github.com/danielhkuo/tanker-portal/toast"
	"github.com/danielhkuo/tanker-portal/triage"
	"github.com/danielhkuo/tanker-portal/upstream"
)

func main() {
	// Optional .env; real environment wins
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to load .env", "error", err)
	}

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// Connect to the journal database
	dbConn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer dbConn.Close()

	// Create schema (tables)
	if err := db.CreateSchema(dbConn); err != nil {
		slog.Error("schema creation failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database schema ready", "type", cfg.DatabaseType)

	// Root context ends on Ctrl-C; every timer lives in its scope
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	timers := scope.New(ctx, clock.RealClock{})

	client := upstream.NewClient(cfg.BackendURL, cfg.UpstreamTimeout)
	journal := db.NewJournal(dbConn, clock.RealClock{})
	notice := toast.New(timers, cfg.ToastTTL)

	view := triage.NewView(triage.ViewConfig{
		Backend:       client,
		Notifier:      notice,
		Journal:       journal,
		KeySalt:       cfg.ActionKeySalt,
		NotifyTimeout: cfg.UpstreamTimeout,
	})
	droughtSvc := drought.NewService(client)
	simulation := overview.NewSimulation(timers, cfg.SimulationTTL)

	// Initial load, the equivalent of opening the triage page
	board := view.Refresh(ctx)
	slog.Info("Triage board loaded", "source", board.Source, "count", len(board.Requests), "backend", cfg.BackendURL)

	// Create server
	server := http.Server{
		Handler: router.NewHandler(router.Deps{
			Config:   cfg,
			View:     view,
			Toast:    notice,
			Journal:  journal,
			Client:   client,
			Drought:  droughtSvc,
			Overview: overview.NewService(view, droughtSvc, simulation),
		}),
		Addr: ":" + strconv.Itoa(cfg.Port),
	}

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	if err := serve(ctx, &server, server.ListenAndServe, shutdownGrace); err != nil {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed")
	}

	// Handlers have drained; stop timers, then let driver notifications finish
	timers.Close()
	view.Close()
}

// shutdownGrace is how long in-flight requests get once shutdown starts.
const shutdownGrace = 10 * time.Second

// serve runs listen until ctx ends, then shuts server down. It returns only
// after Shutdown has finished, so callers can release what handlers use.
func serve(ctx context.Context, server *http.Server, listen func() error, grace time.Duration) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	drained := make(chan struct{})
	go func() {
		defer close(drained)
		// Wait for Ctrl-C signal, or listen failing
		<-ctx.Done()
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), grace)
		defer cancelShutdown()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Warn("Shutdown did not drain in time", "error", err)
		}
	}()

	err := listen()
	cancel()
	<-drained

	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

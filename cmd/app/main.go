package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/chris/donation-ledger/pkg/bootstrap"
	"github.com/chris/donation-ledger/pkg/config"
	"github.com/chris/donation-ledger/pkg/handlers"
	wshandler "github.com/chris/donation-ledger/pkg/handlers/websockets"
	"github.com/chris/donation-ledger/pkg/middleware"
	"github.com/chris/donation-ledger/pkg/websockets"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	deps, err := bootstrap.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to open %s storage: %v", cfg.Storage.Backend, err)
	}
	defer deps.Close()

	// Clients on /ws are attached to the hub and receive updates in-process.
	hub := websockets.NewHub()
	publisher, err := deps.EventPublisher(ctx, hub)
	if err != nil {
		log.Fatalf("failed to create event publisher: %v", err)
	}
	service := deps.Service(publisher, logger)

	router := chi.NewRouter()
	router.Use(chimiddleware.RequestID)
	router.Use(middleware.NewStructuredLogger(logger))
	router.Use(chimiddleware.Recoverer)

	router.Handle("/ws", wshandler.NewHandler(deps.Store, hub))
	if cfg.HTTP.MetricsEnabled {
		router.Handle("/metrics", promhttp.Handler())
	}

	router.Group(func(r chi.Router) {
		r.Use(middleware.Actor)
		handlers.Mount(r, handlers.NewApiHandler(service, deps.Store))
	})

	server := &http.Server{
		Addr:              ":" + cfg.HTTP.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("graceful shutdown failed", "error", err)
		}
	}()

	slog.Info("starting server", "port", cfg.HTTP.Port, "backend", cfg.Storage.Backend)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Failed to start server: %v", err)
	}
}

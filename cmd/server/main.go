package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ticker-pulse/internal/aggregate"
	"ticker-pulse/internal/analysis"
	"ticker-pulse/internal/httpapi"
	"ticker-pulse/internal/logger"
	"ticker-pulse/internal/narrative"
	"ticker-pulse/internal/trace"
)

func main() {
	if err := initializeSystem(); err != nil {
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := loadConfig(ctx)

	src := initializeSources(ctx)
	completer := initializeCompleter(ctx, cfg)

	svc := analysis.NewService(cfg,
		aggregate.New(cfg, src),
		narrative.NewComposer(cfg, completer),
	)

	server := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           httpapi.NewServer(svc).Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info(ctx, "Server started", "addr", cfg.Server.Addr, "profile", cfg.Profile)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.ErrorWithErr(ctx, "Server failed", err)
			sigc <- syscall.SIGTERM
		}
	}()

	<-sigc
	logger.Info(ctx, "Shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.ErrorWithErr(shutdownCtx, "Server shutdown failed", err)
	}
	_ = trace.Shutdown(shutdownCtx)
	_ = logger.Shutdown(shutdownCtx)
}

package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/DeafMist/noble-deeds/backend/internal/config"
	"github.com/DeafMist/noble-deeds/backend/internal/dedupe"
	"github.com/DeafMist/noble-deeds/backend/internal/logger"
	"github.com/DeafMist/noble-deeds/backend/internal/metrics"
)

func main() {
	log := logger.New("api")
	cfg, err := config.LoadAPI()
	if err != nil {
		log.Error("load config", slog.Any("err", err))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	be, err := openBackend(ctx, log, cfg)
	if err != nil {
		log.Error("init backend", slog.Any("err", err), slog.String("backend", cfg.Backend))
		os.Exit(1)
	}
	defer be.close()

	srv := &server{
		log:       log,
		cfg:       cfg,
		store:     be.store,
		submitter: be.submitter,
		health:    be.health,
		cache:     dedupe.NewCache(cfg.DedupeCapacity, cfg.DedupeTTL),
		metrics:   metrics.New("deeds"),
		now:       time.Now,
	}

	httpServer := &http.Server{
		Addr:              cfg.BindAddr,
		Handler:           srv.routes(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15*time.Second + cfg.SubmitDelay,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("api server starting",
			slog.String("addr", cfg.BindAddr),
			slog.String("backend", cfg.Backend),
		)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server stopped", slog.Any("err", err))
		os.Exit(1)
	}
}

package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sriSAKTH1/IPL-MOCK-AUCTION/internal/analysis"
	"github.com/sriSAKTH1/IPL-MOCK-AUCTION/internal/config"
	"github.com/sriSAKTH1/IPL-MOCK-AUCTION/internal/engine"
	"github.com/sriSAKTH1/IPL-MOCK-AUCTION/internal/httpapi"
	"github.com/sriSAKTH1/IPL-MOCK-AUCTION/internal/hub"
	"github.com/sriSAKTH1/IPL-MOCK-AUCTION/internal/roster"
	"github.com/sriSAKTH1/IPL-MOCK-AUCTION/internal/strategy"
)

func main() {
	cfg := config.Load()

	logger, err := newLogger(cfg)
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var source roster.Source = roster.Static{}
	if cfg.DatabaseURL != "" {
		store, err := roster.Open(cfg.DatabaseURL)
		if err != nil {
			logger.Fatal("opening roster store", zap.Error(err))
		}
		source = store
		logger.Info("roster source: postgres")
	}

	baseline, err := source.Load(ctx)
	if err != nil {
		logger.Fatal("loading roster", zap.Error(err))
	}
	logger.Info("roster loaded",
		zap.Int("teams", len(baseline.Teams)),
		zap.Int("players", len(baseline.Players)))

	h := hub.NewHub(ctx, hub.Deps{
		Logger:       logger,
		Analysis:     analysis.Offline{},
		Strategy:     strategy.DefaultConfig(),
		TickInterval: cfg.TickInterval,
		Seed:         cfg.StrategySeed,
	})

	newState := func() engine.State { return baseline.NewState() }
	server := &http.Server{
		Addr:    cfg.Addr,
		Handler: httpapi.SetupRoutes(h, newState),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("listening", zap.String("addr", cfg.Addr))
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		h.Inbox() <- hub.ShutdownHub{}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}

func newLogger(cfg config.Config) (*zap.Logger, error) {
	if cfg.Development {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/youruser/spellhub/internal/api"
	"github.com/youruser/spellhub/internal/cards"
	"github.com/youruser/spellhub/internal/config"
	"github.com/youruser/spellhub/internal/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	logger, err := logging.New(cfg.LogLevel, cfg.LogDevelopment)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	if !cfg.LogDevelopment {
		gin.SetMode(gin.ReleaseMode)
	}

	// Load the dataset at startup (best-effort); /api/revalidate can fill it later.
	source := cards.Source{URL: cfg.DataURL, Path: cfg.DataPath}
	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTPTimeout)
	ds, err := source.Load(ctx)
	cancel()
	if err != nil {
		logger.Warn("failed to load dataset at startup", zap.Error(err))
	}
	catalog := cards.NewCatalog(ds)
	logger.Info("dataset loaded", zap.Int("entities", len(ds.Entities)), zap.Int("patches", len(ds.Patches)))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           api.NewServer(cfg, catalog, source, logger).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("starting server", zap.String("addr", "http://localhost:"+cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
}

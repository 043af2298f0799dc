package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"creanalytics/server/config"
	"creanalytics/server/internal/api"
	"creanalytics/server/internal/database"
	"creanalytics/server/internal/datastore"
	"creanalytics/server/internal/loader"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}

	logger := cfg.NewLogger()
	logger.SetOutput(os.Stdout)
	gin.SetMode(cfg.Server.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	snapshot, err := loadSnapshot(ctx, cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to load market data")
	}

	store, err := datastore.New(snapshot.Markets, snapshot.Properties)
	if err != nil {
		logger.WithError(err).Fatal("Failed to build data store")
	}

	markets, properties := store.Counts()
	logger.WithFields(logrus.Fields{
		"source":     cfg.Data.Source,
		"markets":    markets,
		"properties": properties,
	}).Info("Loaded market data")

	handler, err := api.NewHandler(store, logger, cfg.Cache.OverviewSize)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize handler")
	}
	router := api.NewRouter(handler, logger, cfg.CORS.AllowedOrigins)

	server := &http.Server{
		Addr:    cfg.Addr(),
		Handler: router,
	}

	go func() {
		logger.Infof("Starting server on %s", cfg.Addr())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("Server failed to start")
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("Server forced to shut down")
	}
	logger.Info("Server stopped")
}

func loadSnapshot(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (*loader.Snapshot, error) {
	if cfg.Data.Source != config.DataSourceSQLite {
		logger.WithFields(logrus.Fields{
			"markets":    cfg.MarketDataPath(),
			"properties": cfg.PropertyDataPath(),
		}).Info("Loading market data from JSON files")
		return loader.NewLoader(logger).LoadFiles(cfg.MarketDataPath(), cfg.PropertyDataPath())
	}

	logger.Infof("Loading market data from SQLite at %s", cfg.Data.SQLitePath)
	db, err := database.NewDatabase(cfg.Data.SQLitePath, logger)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	if err := db.RunMigrations(); err != nil {
		return nil, fmt.Errorf("failed to run database migrations: %w", err)
	}

	snapshot, err := db.LoadSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	if len(snapshot.Markets) == 0 {
		logger.Warn("SQLite snapshot is empty; run cmd/seed to import the JSON data")
	}
	return snapshot, nil
}

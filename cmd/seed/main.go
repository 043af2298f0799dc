package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"creanalytics/server/config"
	"creanalytics/server/internal/database"
	"creanalytics/server/internal/loader"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}

	marketPath := flag.String("markets", cfg.MarketDataPath(), "path to the market JSON file")
	propertyPath := flag.String("properties", cfg.PropertyDataPath(), "path to the property JSON file")
	dbPath := flag.String("db", cfg.Data.SQLitePath, "SQLite snapshot to write")
	flag.Parse()

	logger := cfg.NewLogger()
	logger.SetOutput(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	snapshot, err := loader.NewLoader(logger).LoadFiles(*marketPath, *propertyPath)
	if err != nil {
		logger.WithError(err).Fatal("Failed to load JSON data")
	}

	db, err := database.NewDatabase(*dbPath, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to open database")
	}
	defer db.Close()

	logger.Info("Running database migrations...")
	if err := db.RunMigrations(); err != nil {
		logger.WithError(err).Fatal("Failed to run database migrations")
	}

	if err := db.Seed(ctx, snapshot); err != nil {
		logger.WithError(err).Fatal("Failed to seed database")
	}

	logger.WithFields(logrus.Fields{
		"db":         *dbPath,
		"markets":    len(snapshot.Markets),
		"properties": len(snapshot.Properties),
	}).Info("Seeded SQLite snapshot")
}

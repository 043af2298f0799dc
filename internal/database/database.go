package database

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"creanalytics/server/internal/loader"
	"creanalytics/server/internal/models"
)

var ErrDuplicateRecord = errors.New("duplicate record")

// Database stores a market/property snapshot in SQLite.
type Database struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewDatabase(dbPath string, logger *logrus.Logger) (*Database, error) {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable foreign keys
	if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return &Database{db: db, logger: logger}, nil
}

func (d *Database) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Seed replaces the stored snapshot with the given one in a single
// transaction.
func (d *Database) Seed(ctx context.Context, snapshot *loader.Snapshot) error {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, table := range []string{"properties", "market_performance", "markets"} {
			if err := tx.Exec("DELETE FROM " + table).Error; err != nil {
				return fmt.Errorf("failed to clear %s: %w", table, err)
			}
		}

		for _, market := range snapshot.Markets {
			row := marketFromModel(market)
			if err := tx.Create(&row).Error; err != nil {
				return fmt.Errorf("failed to insert market %d: %w", market.MarketID, classify(err))
			}
		}

		if len(snapshot.Properties) > 0 {
			rows := make([]propertyRow, 0, len(snapshot.Properties))
			for _, p := range snapshot.Properties {
				rows = append(rows, propertyFromModel(p))
			}
			if err := tx.CreateInBatches(rows, 100).Error; err != nil {
				return fmt.Errorf("failed to insert properties: %w", classify(err))
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	d.logger.WithFields(logrus.Fields{
		"markets":    len(snapshot.Markets),
		"properties": len(snapshot.Properties),
	}).Info("Seeded database snapshot")
	return nil
}

// LoadSnapshot reads every market, with its history in date order, and every
// property.
func (d *Database) LoadSnapshot(ctx context.Context) (*loader.Snapshot, error) {
	var marketRows []marketRow
	err := d.db.WithContext(ctx).
		Preload("Performance", func(db *gorm.DB) *gorm.DB {
			return db.Order("date ASC")
		}).
		Order("market_id ASC").
		Find(&marketRows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query markets: %w", err)
	}

	var propertyRows []propertyRow
	if err := d.db.WithContext(ctx).Order("id ASC").Find(&propertyRows).Error; err != nil {
		return nil, fmt.Errorf("failed to query properties: %w", err)
	}

	snapshot := &loader.Snapshot{
		Markets:    make([]models.Market, 0, len(marketRows)),
		Properties: make([]models.Property, 0, len(propertyRows)),
	}
	for _, row := range marketRows {
		market, err := row.toModel()
		if err != nil {
			return nil, err
		}
		snapshot.Markets = append(snapshot.Markets, market)
	}
	for _, row := range propertyRows {
		snapshot.Properties = append(snapshot.Properties, row.toModel())
	}

	d.logger.WithFields(logrus.Fields{
		"markets":    len(snapshot.Markets),
		"properties": len(snapshot.Properties),
	}).Info("Loaded database snapshot")
	return snapshot, nil
}

// classify maps SQLite constraint violations onto ErrDuplicateRecord.
func classify(err error) error {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
		return fmt.Errorf("%w: %v", ErrDuplicateRecord, err)
	}
	return err
}

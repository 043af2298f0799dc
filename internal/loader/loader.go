// Package loader ingests the market and property JSON collections.
package loader

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/sirupsen/logrus"

	"creanalytics/server/internal/models"
)

var ErrInvalidData = errors.New("invalid data")

// Snapshot is a validated set of markets and properties with every market's
// performance history in ascending date order.
type Snapshot struct {
	Markets    []models.Market
	Properties []models.Property
}

type Loader struct {
	logger *logrus.Logger
}

func NewLoader(logger *logrus.Logger) *Loader {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}
	return &Loader{logger: logger}
}

// LoadFiles reads both collections from disk.
func (l *Loader) LoadFiles(marketPath, propertyPath string) (*Snapshot, error) {
	marketFile, err := os.Open(filepath.Clean(marketPath))
	if err != nil {
		return nil, fmt.Errorf("failed to open market data: %w", err)
	}
	defer marketFile.Close()

	propertyFile, err := os.Open(filepath.Clean(propertyPath))
	if err != nil {
		return nil, fmt.Errorf("failed to open property data: %w", err)
	}
	defer propertyFile.Close()

	snapshot, err := l.Decode(marketFile, propertyFile)
	if err != nil {
		return nil, err
	}

	l.logger.WithFields(logrus.Fields{
		"market_file":   marketPath,
		"property_file": propertyPath,
		"markets":       len(snapshot.Markets),
		"properties":    len(snapshot.Properties),
	}).Info("Loaded data files")

	return snapshot, nil
}

// Decode parses and validates both collections.
func (l *Loader) Decode(markets, properties io.Reader) (*Snapshot, error) {
	var marketRecords []marketRecord
	if err := json.NewDecoder(markets).Decode(&marketRecords); err != nil {
		return nil, fmt.Errorf("failed to parse market data: %w", err)
	}

	var propertyRecords []propertyRecord
	if err := json.NewDecoder(properties).Decode(&propertyRecords); err != nil {
		return nil, fmt.Errorf("failed to parse property data: %w", err)
	}

	snapshot := &Snapshot{
		Markets:    make([]models.Market, 0, len(marketRecords)),
		Properties: make([]models.Property, 0, len(propertyRecords)),
	}

	marketIDs := make(map[int]struct{}, len(marketRecords))
	for idx, record := range marketRecords {
		market, err := record.toModel()
		if err != nil {
			return nil, fmt.Errorf("%w: market at index %d: %v", ErrInvalidData, idx, err)
		}
		if _, exists := marketIDs[market.MarketID]; exists {
			return nil, fmt.Errorf("%w: duplicate market_id %d", ErrInvalidData, market.MarketID)
		}
		marketIDs[market.MarketID] = struct{}{}

		if SortPerformance(market.Performance) {
			l.logger.WithField("market_id", market.MarketID).Warn("Performance history was not in date order, sorted it")
		}
		snapshot.Markets = append(snapshot.Markets, market)
	}

	propertyIDs := make(map[int]struct{}, len(propertyRecords))
	for idx, record := range propertyRecords {
		property, err := record.toModel()
		if err != nil {
			return nil, fmt.Errorf("%w: property at index %d: %v", ErrInvalidData, idx, err)
		}
		if _, exists := propertyIDs[property.ID]; exists {
			return nil, fmt.Errorf("%w: duplicate property id %d", ErrInvalidData, property.ID)
		}
		propertyIDs[property.ID] = struct{}{}

		if _, ok := marketIDs[property.MarketID]; !ok {
			l.logger.WithFields(logrus.Fields{
				"property_id": property.ID,
				"market_id":   property.MarketID,
			}).Warn("Property references an unknown market")
		}
		snapshot.Properties = append(snapshot.Properties, property)
	}

	return snapshot, nil
}

// SortPerformance orders a history by date ascending and reports whether it
// had to move anything.
func SortPerformance(history []models.MarketPerformance) bool {
	less := func(i, j int) bool { return history[i].Date.Before(history[j].Date) }
	if sort.SliceIsSorted(history, less) {
		return false
	}
	sort.SliceStable(history, less)
	return true
}

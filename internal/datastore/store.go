// Package datastore holds the immutable in-memory market and property data
// served by the API.
package datastore

import (
	"errors"
	"fmt"
	"slices"
	"sort"

	"creanalytics/server/internal/models"
)

var (
	ErrDuplicateMarket   = errors.New("duplicate market id")
	ErrDuplicateProperty = errors.New("duplicate property id")
)

// Store is built once at startup and only read afterwards, so it is safe for
// concurrent use without locking.
type Store struct {
	markets         map[int]models.Market
	marketOrder     []int
	properties      map[int]models.Property
	propertiesByMkt map[int][]int
}

// New copies the loaded collections into a Store. Performance history is
// expected in ascending date order and is kept as given.
func New(markets []models.Market, properties []models.Property) (*Store, error) {
	s := &Store{
		markets:         make(map[int]models.Market, len(markets)),
		properties:      make(map[int]models.Property, len(properties)),
		propertiesByMkt: make(map[int][]int),
	}

	for _, m := range markets {
		if _, exists := s.markets[m.MarketID]; exists {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateMarket, m.MarketID)
		}
		m.Performance = slices.Clone(m.Performance)
		s.markets[m.MarketID] = m
		s.marketOrder = append(s.marketOrder, m.MarketID)
	}
	sort.Ints(s.marketOrder)

	for _, p := range properties {
		if _, exists := s.properties[p.ID]; exists {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateProperty, p.ID)
		}
		s.properties[p.ID] = cloneProperty(p)
		s.propertiesByMkt[p.MarketID] = append(s.propertiesByMkt[p.MarketID], p.ID)
	}

	return s, nil
}

// Market returns the market with the given id.
func (s *Store) Market(id int) (models.Market, bool) {
	m, ok := s.markets[id]
	if !ok {
		return models.Market{}, false
	}
	return cloneMarket(m), true
}

// Property returns the property with the given id.
func (s *Store) Property(id int) (models.Property, bool) {
	p, ok := s.properties[id]
	if !ok {
		return models.Property{}, false
	}
	return cloneProperty(p), true
}

// PropertiesByMarket returns every property referencing the market, in load
// order. The result is never nil.
func (s *Store) PropertiesByMarket(marketID int) []models.Property {
	ids := s.propertiesByMkt[marketID]
	result := make([]models.Property, 0, len(ids))
	for _, id := range ids {
		result = append(result, cloneProperty(s.properties[id]))
	}
	return result
}

// LatestPerformance returns the last snapshot of the market's history.
func (s *Store) LatestPerformance(marketID int) (models.MarketPerformance, bool) {
	m, ok := s.markets[marketID]
	if !ok || len(m.Performance) == 0 {
		return models.MarketPerformance{}, false
	}
	return m.Performance[len(m.Performance)-1], true
}

// PerformanceInRange returns the snapshots whose date falls within the
// inclusive bounds. A nil bound is open on that side.
func (s *Store) PerformanceInRange(marketID int, start, end *models.Date) []models.MarketPerformance {
	result := []models.MarketPerformance{}
	m, ok := s.markets[marketID]
	if !ok {
		return result
	}
	if start != nil && end != nil && start.After(*end) {
		return result
	}

	for _, perf := range m.Performance {
		if start != nil && perf.Date.Before(*start) {
			continue
		}
		if end != nil && perf.Date.After(*end) {
			continue
		}
		result = append(result, perf)
	}
	return result
}

// Markets returns all markets ordered by id.
func (s *Store) Markets() []models.Market {
	result := make([]models.Market, 0, len(s.marketOrder))
	for _, id := range s.marketOrder {
		result = append(result, cloneMarket(s.markets[id]))
	}
	return result
}

// Counts reports how many markets and properties were loaded.
func (s *Store) Counts() (markets, properties int) {
	return len(s.markets), len(s.properties)
}

// Returned values never share memory with the store.
func cloneMarket(m models.Market) models.Market {
	m.Performance = slices.Clone(m.Performance)
	return m
}

func cloneProperty(p models.Property) models.Property {
	p.CurrentAvgRentPerSqft = clonePtr(p.CurrentAvgRentPerSqft)
	p.RenewalRateYTD = clonePtr(p.RenewalRateYTD)
	p.AvgLeaseTermMonths = clonePtr(p.AvgLeaseTermMonths)
	p.AvgTimeToLeaseDays = clonePtr(p.AvgTimeToLeaseDays)
	p.Latitude = clonePtr(p.Latitude)
	p.Longitude = clonePtr(p.Longitude)
	return p
}

func clonePtr[T any](v *T) *T {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

package loader

import (
	"errors"
	"fmt"

	"creanalytics/server/internal/models"
)

// The records mirror the file layout with pointers so that missing required
// fields can be told apart from zero values.

type performanceRecord struct {
	Date               *models.Date `json:"date"`
	AvgRentPerSqft     *float64     `json:"avg_rent_per_sqft"`
	AvgOccupancyRate   *float64     `json:"avg_occupancy_rate"`
	RenewalRate        *float64     `json:"renewal_rate"`
	NewDealRate        *float64     `json:"new_deal_rate"`
	AvgLeaseTermMonths *int         `json:"avg_lease_term_months"`
	AvgTimeToLeaseDays *int         `json:"avg_time_to_lease_days"`
}

type marketRecord struct {
	MarketID    *int                `json:"market_id"`
	MarketName  *string             `json:"market_name"`
	City        *string             `json:"city"`
	State       *string             `json:"state"`
	MarketType  *string             `json:"market_type"`
	Performance []performanceRecord `json:"performance"`
}

type propertyRecord struct {
	ID                    *int     `json:"id"`
	Name                  *string  `json:"name"`
	Address               *string  `json:"address"`
	MarketID              *int     `json:"market_id"`
	AreaSqft              *int     `json:"area_sqft"`
	YearBuilt             *int     `json:"year_built"`
	PropertyClass         *string  `json:"property_class"`
	CurrentOccupancyRate  *float64 `json:"current_occupancy_rate"`
	CurrentAvgRentPerSqft *float64 `json:"current_avg_rent_per_sqft"`
	RenewalRateYTD        *float64 `json:"renewal_rate_ytd"`
	AvgLeaseTermMonths    *int     `json:"avg_lease_term_months"`
	AvgTimeToLeaseDays    *int     `json:"avg_time_to_lease_days"`
	Latitude              *float64 `json:"latitude"`
	Longitude             *float64 `json:"longitude"`
}

type missingFields []string

func (m *missingFields) check(name string, present bool) {
	if !present {
		*m = append(*m, name)
	}
}

func (m missingFields) err() error {
	if len(m) == 0 {
		return nil
	}
	return fmt.Errorf("missing required fields %v", []string(m))
}

func (r performanceRecord) toModel() (models.MarketPerformance, error) {
	var missing missingFields
	missing.check("date", r.Date != nil)
	missing.check("avg_rent_per_sqft", r.AvgRentPerSqft != nil)
	missing.check("avg_occupancy_rate", r.AvgOccupancyRate != nil)
	missing.check("renewal_rate", r.RenewalRate != nil)
	missing.check("new_deal_rate", r.NewDealRate != nil)
	missing.check("avg_lease_term_months", r.AvgLeaseTermMonths != nil)
	missing.check("avg_time_to_lease_days", r.AvgTimeToLeaseDays != nil)
	if err := missing.err(); err != nil {
		return models.MarketPerformance{}, err
	}

	return models.MarketPerformance{
		Date:               *r.Date,
		AvgRentPerSqft:     *r.AvgRentPerSqft,
		AvgOccupancyRate:   *r.AvgOccupancyRate,
		RenewalRate:        *r.RenewalRate,
		NewDealRate:        *r.NewDealRate,
		AvgLeaseTermMonths: *r.AvgLeaseTermMonths,
		AvgTimeToLeaseDays: *r.AvgTimeToLeaseDays,
	}, nil
}

func (r marketRecord) toModel() (models.Market, error) {
	var missing missingFields
	missing.check("market_id", r.MarketID != nil)
	missing.check("market_name", r.MarketName != nil)
	missing.check("city", r.City != nil)
	missing.check("state", r.State != nil)
	missing.check("market_type", r.MarketType != nil)
	if err := missing.err(); err != nil {
		return models.Market{}, err
	}

	market := models.Market{
		MarketID:    *r.MarketID,
		MarketName:  *r.MarketName,
		City:        *r.City,
		State:       *r.State,
		MarketType:  *r.MarketType,
		Performance: make([]models.MarketPerformance, 0, len(r.Performance)),
	}

	for idx, record := range r.Performance {
		perf, err := record.toModel()
		if err != nil {
			return models.Market{}, fmt.Errorf("market %d performance at index %d: %w", market.MarketID, idx, err)
		}
		market.Performance = append(market.Performance, perf)
	}
	return market, nil
}

func (r propertyRecord) toModel() (models.Property, error) {
	var missing missingFields
	missing.check("id", r.ID != nil)
	missing.check("name", r.Name != nil)
	missing.check("address", r.Address != nil)
	missing.check("market_id", r.MarketID != nil)
	missing.check("area_sqft", r.AreaSqft != nil)
	missing.check("year_built", r.YearBuilt != nil)
	missing.check("property_class", r.PropertyClass != nil)
	missing.check("current_occupancy_rate", r.CurrentOccupancyRate != nil)
	if err := missing.err(); err != nil {
		return models.Property{}, err
	}

	if (r.Latitude == nil) != (r.Longitude == nil) {
		return models.Property{}, errors.New("latitude and longitude must be given together")
	}

	return models.Property{
		ID:                    *r.ID,
		Name:                  *r.Name,
		Address:               *r.Address,
		MarketID:              *r.MarketID,
		AreaSqft:              *r.AreaSqft,
		YearBuilt:             *r.YearBuilt,
		PropertyClass:         *r.PropertyClass,
		CurrentOccupancyRate:  *r.CurrentOccupancyRate,
		CurrentAvgRentPerSqft: r.CurrentAvgRentPerSqft,
		RenewalRateYTD:        r.RenewalRateYTD,
		AvgLeaseTermMonths:    r.AvgLeaseTermMonths,
		AvgTimeToLeaseDays:    r.AvgTimeToLeaseDays,
		Latitude:              r.Latitude,
		Longitude:             r.Longitude,
	}, nil
}

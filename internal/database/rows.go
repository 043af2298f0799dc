package database

import (
	"fmt"

	"creanalytics/server/internal/models"
)

type marketRow struct {
	MarketID    int `gorm:"primaryKey;autoIncrement:false"`
	MarketName  string
	City        string
	State       string
	MarketType  string
	Performance []performanceRow `gorm:"foreignKey:MarketID;references:MarketID;constraint:OnDelete:CASCADE"`
}

func (marketRow) TableName() string { return "markets" }

type performanceRow struct {
	ID                 uint   `gorm:"primaryKey"`
	MarketID           int    `gorm:"not null;uniqueIndex:idx_performance_market_date"`
	Date               string `gorm:"not null;size:10;uniqueIndex:idx_performance_market_date"`
	AvgRentPerSqft     float64
	AvgOccupancyRate   float64
	RenewalRate        float64
	NewDealRate        float64
	AvgLeaseTermMonths int
	AvgTimeToLeaseDays int
}

func (performanceRow) TableName() string { return "market_performance" }

type propertyRow struct {
	ID                    int `gorm:"primaryKey;autoIncrement:false"`
	Name                  string
	Address               string
	MarketID              int
	AreaSqft              int
	YearBuilt             int
	PropertyClass         string
	CurrentOccupancyRate  float64
	CurrentAvgRentPerSqft *float64
	RenewalRateYTD        *float64 `gorm:"column:renewal_rate_ytd"`
	AvgLeaseTermMonths    *int
	AvgTimeToLeaseDays    *int
	Latitude              *float64
	Longitude             *float64
}

func (propertyRow) TableName() string { return "properties" }

func marketFromModel(m models.Market) marketRow {
	row := marketRow{
		MarketID:    m.MarketID,
		MarketName:  m.MarketName,
		City:        m.City,
		State:       m.State,
		MarketType:  m.MarketType,
		Performance: make([]performanceRow, 0, len(m.Performance)),
	}
	for _, p := range m.Performance {
		row.Performance = append(row.Performance, performanceRow{
			MarketID:           m.MarketID,
			Date:               p.Date.String(),
			AvgRentPerSqft:     p.AvgRentPerSqft,
			AvgOccupancyRate:   p.AvgOccupancyRate,
			RenewalRate:        p.RenewalRate,
			NewDealRate:        p.NewDealRate,
			AvgLeaseTermMonths: p.AvgLeaseTermMonths,
			AvgTimeToLeaseDays: p.AvgTimeToLeaseDays,
		})
	}
	return row
}

func (r marketRow) toModel() (models.Market, error) {
	market := models.Market{
		MarketID:    r.MarketID,
		MarketName:  r.MarketName,
		City:        r.City,
		State:       r.State,
		MarketType:  r.MarketType,
		Performance: make([]models.MarketPerformance, 0, len(r.Performance)),
	}
	for _, p := range r.Performance {
		date, err := models.ParseDate(p.Date)
		if err != nil {
			return models.Market{}, fmt.Errorf("market %d: %w", r.MarketID, err)
		}
		market.Performance = append(market.Performance, models.MarketPerformance{
			Date:               date,
			AvgRentPerSqft:     p.AvgRentPerSqft,
			AvgOccupancyRate:   p.AvgOccupancyRate,
			RenewalRate:        p.RenewalRate,
			NewDealRate:        p.NewDealRate,
			AvgLeaseTermMonths: p.AvgLeaseTermMonths,
			AvgTimeToLeaseDays: p.AvgTimeToLeaseDays,
		})
	}
	return market, nil
}

func propertyFromModel(p models.Property) propertyRow {
	return propertyRow{
		ID:                    p.ID,
		Name:                  p.Name,
		Address:               p.Address,
		MarketID:              p.MarketID,
		AreaSqft:              p.AreaSqft,
		YearBuilt:             p.YearBuilt,
		PropertyClass:         p.PropertyClass,
		CurrentOccupancyRate:  p.CurrentOccupancyRate,
		CurrentAvgRentPerSqft: p.CurrentAvgRentPerSqft,
		RenewalRateYTD:        p.RenewalRateYTD,
		AvgLeaseTermMonths:    p.AvgLeaseTermMonths,
		AvgTimeToLeaseDays:    p.AvgTimeToLeaseDays,
		Latitude:              p.Latitude,
		Longitude:             p.Longitude,
	}
}

func (r propertyRow) toModel() models.Property {
	return models.Property{
		ID:                    r.ID,
		Name:                  r.Name,
		Address:               r.Address,
		MarketID:              r.MarketID,
		AreaSqft:              r.AreaSqft,
		YearBuilt:             r.YearBuilt,
		PropertyClass:         r.PropertyClass,
		CurrentOccupancyRate:  r.CurrentOccupancyRate,
		CurrentAvgRentPerSqft: r.CurrentAvgRentPerSqft,
		RenewalRateYTD:        r.RenewalRateYTD,
		AvgLeaseTermMonths:    r.AvgLeaseTermMonths,
		AvgTimeToLeaseDays:    r.AvgTimeToLeaseDays,
		Latitude:              r.Latitude,
		Longitude:             r.Longitude,
	}
}

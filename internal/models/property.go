package models

import "github.com/paulmach/orb"

type Property struct {
	ID                    int      `json:"id"`
	Name                  string   `json:"name"`
	Address               string   `json:"address"`
	MarketID              int      `json:"market_id"`
	AreaSqft              int      `json:"area_sqft"`
	YearBuilt             int      `json:"year_built"`
	PropertyClass         string   `json:"property_class"`
	CurrentOccupancyRate  float64  `json:"current_occupancy_rate"`
	CurrentAvgRentPerSqft *float64 `json:"current_avg_rent_per_sqft"`
	RenewalRateYTD        *float64 `json:"renewal_rate_ytd"`
	AvgLeaseTermMonths    *int     `json:"avg_lease_term_months"`
	AvgTimeToLeaseDays    *int     `json:"avg_time_to_lease_days"`
	Latitude              *float64 `json:"latitude,omitempty"`
	Longitude             *float64 `json:"longitude,omitempty"`
}

// Location returns the property's coordinates when both are known.
func (p Property) Location() (orb.Point, bool) {
	if p.Latitude == nil || p.Longitude == nil {
		return orb.Point{}, false
	}
	return orb.Point{*p.Longitude, *p.Latitude}, true
}

// PropertySummary is the per-property rollup used by the market listing.
type PropertySummary struct {
	PropertyID            int                `json:"property_id"`
	PropertyName          string             `json:"property_name"`
	PropertyClass         string             `json:"property_class"`
	CurrentOccupancyRate  float64            `json:"current_occupancy_rate"`
	CurrentAvgRentPerSqft *float64           `json:"current_avg_rent_per_sqft"`
	OccupancyVsMarket     *float64           `json:"occupancy_vs_market"`
	RentVsMarket          *float64           `json:"rent_vs_market"`
	OverallPerformance    OverallPerformance `json:"overall_performance"`
}

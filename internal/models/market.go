package models

// MarketPerformance is a dated snapshot of market-wide leasing metrics.
type MarketPerformance struct {
	Date               Date    `json:"date"`
	AvgRentPerSqft     float64 `json:"avg_rent_per_sqft"`
	AvgOccupancyRate   float64 `json:"avg_occupancy_rate"`
	RenewalRate        float64 `json:"renewal_rate"`
	NewDealRate        float64 `json:"new_deal_rate"`
	AvgLeaseTermMonths int     `json:"avg_lease_term_months"`
	AvgTimeToLeaseDays int     `json:"avg_time_to_lease_days"`
}

// Market owns its performance history, ordered by date ascending.
type Market struct {
	MarketID    int                 `json:"market_id"`
	MarketName  string              `json:"market_name"`
	City        string              `json:"city"`
	State       string              `json:"state"`
	MarketType  string              `json:"market_type"`
	Performance []MarketPerformance `json:"performance"`
}

// MarketListItem is the catalog view of a market.
type MarketListItem struct {
	MarketID      int    `json:"market_id"`
	MarketName    string `json:"market_name"`
	City          string `json:"city"`
	State         string `json:"state"`
	MarketType    string `json:"market_type"`
	SnapshotCount int    `json:"snapshot_count"`
	LatestDate    *Date  `json:"latest_date"`
}

func (m Market) ListItem() MarketListItem {
	item := MarketListItem{
		MarketID:      m.MarketID,
		MarketName:    m.MarketName,
		City:          m.City,
		State:         m.State,
		MarketType:    m.MarketType,
		SnapshotCount: len(m.Performance),
	}
	if n := len(m.Performance); n > 0 {
		latest := m.Performance[n-1].Date
		item.LatestDate = &latest
	}
	return item
}

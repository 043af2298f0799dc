package analytics

import (
	"math"

	"creanalytics/server/internal/models"
)

// StableBand is the absolute change, in percent, below which a trend is stable.
const StableBand = 1.0

// TrendMetric reads one trended value from a market snapshot.
type TrendMetric struct {
	Name  string
	Value func(models.MarketPerformance) float64
}

// TrendMetrics lists the trended metrics in output order. New deal rate and
// time to lease are not trended.
var TrendMetrics = []TrendMetric{
	{Name: "rent_per_sqft", Value: func(m models.MarketPerformance) float64 { return m.AvgRentPerSqft }},
	{Name: "occupancy_rate", Value: func(m models.MarketPerformance) float64 { return m.AvgOccupancyRate }},
	{Name: "renewal_rate", Value: func(m models.MarketPerformance) float64 { return m.RenewalRate }},
	{Name: "lease_term_months", Value: func(m models.MarketPerformance) float64 { return float64(m.AvgLeaseTermMonths) }},
}

// ComputeTrends compares the last snapshot of an ascending history with the
// one before it. Histories shorter than two snapshots yield no trends.
func ComputeTrends(history []models.MarketPerformance) []models.MarketTrend {
	trends := []models.MarketTrend{}
	if len(history) < 2 {
		return trends
	}

	latest := history[len(history)-1]
	previous := history[len(history)-2]

	for _, metric := range TrendMetrics {
		trends = append(trends, newTrend(metric.Name, metric.Value(latest), metric.Value(previous)))
	}
	return trends
}

func newTrend(name string, latest, previous float64) models.MarketTrend {
	var change float64
	if previous != 0 {
		change = (latest - previous) / previous * 100
	}

	return models.MarketTrend{
		MetricName:       name,
		LatestValue:      latest,
		PreviousValue:    previous,
		ChangePercentage: round2(change),
		TrendDirection:   direction(change),
	}
}

func direction(change float64) models.TrendDirection {
	switch {
	case math.Abs(change) < StableBand:
		return models.Stable
	case change > 0:
		return models.Up
	default:
		return models.Down
	}
}

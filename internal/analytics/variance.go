// Package analytics compares property metrics to market benchmarks and
// derives market trends and per-property rollups.
package analytics

import (
	"errors"
	"fmt"
	"math"

	"creanalytics/server/internal/models"
)

// AtMarketBand is the absolute variance, in percent, below which a metric is
// considered at market.
const AtMarketBand = 5.0

// ErrZeroBenchmark is returned when a present property value would be
// compared against a market benchmark of zero.
var ErrZeroBenchmark = errors.New("market benchmark value is zero")

// Polarity tells whether a higher raw value is better for a metric.
type Polarity int

const (
	HigherIsBetter Polarity = iota
	LowerIsBetter
)

// Metric describes how to read one comparable value from a property and its
// market benchmark.
type Metric struct {
	Name          string
	Polarity      Polarity
	PropertyValue func(models.Property) *float64
	MarketValue   func(models.MarketPerformance) float64
}

// PropertyMetrics is the ordered set of metrics in a property analysis.
var PropertyMetrics = []Metric{
	{
		Name:          "occupancy_rate",
		PropertyValue: func(p models.Property) *float64 { return floatPtr(p.CurrentOccupancyRate) },
		MarketValue:   func(m models.MarketPerformance) float64 { return m.AvgOccupancyRate },
	},
	{
		Name:          "rent_per_sqft",
		PropertyValue: func(p models.Property) *float64 { return p.CurrentAvgRentPerSqft },
		MarketValue:   func(m models.MarketPerformance) float64 { return m.AvgRentPerSqft },
	},
	{
		Name:          "renewal_rate",
		PropertyValue: func(p models.Property) *float64 { return p.RenewalRateYTD },
		MarketValue:   func(m models.MarketPerformance) float64 { return m.RenewalRate },
	},
	{
		Name:          "lease_term_months",
		PropertyValue: func(p models.Property) *float64 { return intToFloatPtr(p.AvgLeaseTermMonths) },
		MarketValue:   func(m models.MarketPerformance) float64 { return float64(m.AvgLeaseTermMonths) },
	},
	{
		Name:          "time_to_lease_days",
		Polarity:      LowerIsBetter,
		PropertyValue: func(p models.Property) *float64 { return intToFloatPtr(p.AvgTimeToLeaseDays) },
		MarketValue:   func(m models.MarketPerformance) float64 { return float64(m.AvgTimeToLeaseDays) },
	},
}

// ComputeVariance returns the percentage deviation of propertyValue from
// marketValue and its classification. A nil property value yields no data.
func ComputeVariance(propertyValue *float64, marketValue float64, polarity Polarity) (*float64, models.PerformanceIndicator, error) {
	if propertyValue == nil {
		return nil, models.NoData, nil
	}

	pct, err := percentDiff(*propertyValue, marketValue)
	if err != nil {
		return nil, models.NoData, err
	}

	return &pct, Classify(pct, polarity), nil
}

// Classify maps a variance percentage onto an indicator.
func Classify(pct float64, polarity Polarity) models.PerformanceIndicator {
	var indicator models.PerformanceIndicator
	switch {
	case math.Abs(pct) < AtMarketBand:
		indicator = models.AtMarket
	case pct > 0:
		indicator = models.Outperforming
	default:
		indicator = models.Underperforming
	}

	if polarity == LowerIsBetter {
		return indicator.Invert()
	}
	return indicator
}

// AnalyzeProperty compares every metric in PropertyMetrics against the
// benchmark, in table order.
func AnalyzeProperty(property models.Property, benchmark models.MarketPerformance) ([]models.PerformanceVariance, error) {
	variances := make([]models.PerformanceVariance, 0, len(PropertyMetrics))
	for _, metric := range PropertyMetrics {
		propertyValue := metric.PropertyValue(property)
		if propertyValue != nil {
			propertyValue = floatPtr(*propertyValue)
		}
		marketValue := metric.MarketValue(benchmark)

		pct, indicator, err := ComputeVariance(propertyValue, marketValue, metric.Polarity)
		if err != nil {
			return nil, fmt.Errorf("failed to compute %s variance for property %d: %w", metric.Name, property.ID, err)
		}

		variances = append(variances, models.PerformanceVariance{
			MetricName:           metric.Name,
			PropertyValue:        propertyValue,
			MarketValue:          marketValue,
			VariancePercentage:   pct,
			PerformanceIndicator: indicator,
		})
	}
	return variances, nil
}

func percentDiff(value, base float64) (float64, error) {
	if base == 0 {
		return 0, ErrZeroBenchmark
	}
	return (value - base) / base * 100, nil
}

func floatPtr(v float64) *float64 {
	return &v
}

func intToFloatPtr(v *int) *float64 {
	if v == nil {
		return nil
	}
	return floatPtr(float64(*v))
}

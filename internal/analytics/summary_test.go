package analytics

import (
	"testing"

	"creanalytics/server/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func variancesOf(indicators ...models.PerformanceIndicator) []models.PerformanceVariance {
	variances := make([]models.PerformanceVariance, len(indicators))
	for idx, indicator := range indicators {
		variances[idx] = models.PerformanceVariance{PerformanceIndicator: indicator}
	}
	return variances
}

func TestSummarize(t *testing.T) {
	tests := []struct {
		name        string
		indicators  []models.PerformanceIndicator
		performance models.OverallPerformance
		message     string
	}{
		{
			name:        "all no data",
			indicators:  []models.PerformanceIndicator{models.NoData, models.NoData},
			performance: models.InsufficientData,
			message:     "Insufficient data to determine overall performance",
		},
		{
			name:        "empty",
			performance: models.InsufficientData,
			message:     "Insufficient data to determine overall performance",
		},
		{
			name:        "outperforming majority",
			indicators:  []models.PerformanceIndicator{models.Outperforming, models.Outperforming, models.Underperforming, models.AtMarket, models.NoData},
			performance: models.OverallOutperforming,
			message:     "Property is generally outperforming the market (2/4 metrics above market)",
		},
		{
			name:        "underperforming majority",
			indicators:  []models.PerformanceIndicator{models.Underperforming, models.AtMarket, models.AtMarket},
			performance: models.OverallUnderperforming,
			message:     "Property is generally underperforming the market (1/3 metrics below market)",
		},
		{
			name:        "all at market",
			indicators:  []models.PerformanceIndicator{models.AtMarket, models.AtMarket, models.NoData},
			performance: models.OverallAtMarket,
			message:     "Property is performing at market levels (2/2 metrics at market)",
		},
		{
			name:        "tie without at market",
			indicators:  []models.PerformanceIndicator{models.Outperforming, models.Underperforming},
			performance: models.OverallAtMarket,
			message:     "Property is performing at market levels (0/2 metrics at market)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verdict := Summarize(variancesOf(tt.indicators...))
			assert.Equal(t, tt.performance, verdict.Performance)
			assert.Equal(t, tt.message, verdict.Message())
		})
	}
}

func TestSummarize_OrderIndependent(t *testing.T) {
	a := Summarize(variancesOf(models.Outperforming, models.AtMarket, models.Underperforming, models.Outperforming, models.NoData))
	b := Summarize(variancesOf(models.NoData, models.Outperforming, models.Outperforming, models.Underperforming, models.AtMarket))
	assert.Equal(t, a, b)
}

func TestSummarizeProperty(t *testing.T) {
	tests := []struct {
		name        string
		property    models.Property
		occupancy   *float64
		rent        *float64
		performance models.OverallPerformance
	}{
		{
			name:        "both present and outperforming",
			property:    models.Property{ID: 1, CurrentOccupancyRate: 95, CurrentAvgRentPerSqft: f(33)},
			occupancy:   f(5.56),
			rent:        f(10),
			performance: models.OverallOutperforming,
		},
		{
			name:        "rent missing is excluded from the average",
			property:    models.Property{ID: 2, CurrentOccupancyRate: 95},
			occupancy:   f(5.56),
			rent:        nil,
			performance: models.OverallOutperforming,
		},
		{
			name:        "opposite variances average to at market",
			property:    models.Property{ID: 3, CurrentOccupancyRate: 80, CurrentAvgRentPerSqft: f(33)},
			occupancy:   f(-11.11),
			rent:        f(10),
			performance: models.OverallAtMarket,
		},
		{
			name:        "underperforming",
			property:    models.Property{ID: 4, CurrentOccupancyRate: 80, CurrentAvgRentPerSqft: f(27)},
			occupancy:   f(-11.11),
			rent:        f(-10),
			performance: models.OverallUnderperforming,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			summary, err := SummarizeProperty(tt.property, benchmark())
			require.NoError(t, err)
			assert.Equal(t, tt.property.ID, summary.PropertyID)
			assert.Equal(t, tt.occupancy, summary.OccupancyVsMarket)
			assert.Equal(t, tt.rent, summary.RentVsMarket)
			assert.Equal(t, tt.performance, summary.OverallPerformance)
		})
	}
}

func TestClassifyAverage_NoScores(t *testing.T) {
	assert.Equal(t, models.InsufficientData, classifyAverage(nil))
}

func TestSummarizeProperty_ZeroBenchmark(t *testing.T) {
	bench := benchmark()
	bench.AvgRentPerSqft = 0

	_, err := SummarizeProperty(models.Property{ID: 1, CurrentOccupancyRate: 90, CurrentAvgRentPerSqft: f(20)}, bench)
	assert.ErrorIs(t, err, ErrZeroBenchmark)

	// Nothing to divide when the rent is unknown
	summary, err := SummarizeProperty(models.Property{ID: 2, CurrentOccupancyRate: 90}, bench)
	require.NoError(t, err)
	assert.Nil(t, summary.RentVsMarket)
}

func TestSummarizeProperties(t *testing.T) {
	properties := []models.Property{
		{ID: 1, Name: "One", CurrentOccupancyRate: 90},
		{ID: 2, Name: "Two", CurrentOccupancyRate: 99},
	}

	summaries, err := SummarizeProperties(properties, benchmark())
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, "One", summaries[0].PropertyName)
	assert.Equal(t, models.OverallAtMarket, summaries[0].OverallPerformance)
	assert.Equal(t, models.OverallOutperforming, summaries[1].OverallPerformance)
}

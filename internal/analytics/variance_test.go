package analytics

import (
	"testing"

	"creanalytics/server/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f(v float64) *float64 { return &v }
func i(v int) *int         { return &v }

func benchmark() models.MarketPerformance {
	return models.MarketPerformance{
		Date:               models.NewDate(2024, 2, 1),
		AvgRentPerSqft:     30,
		AvgOccupancyRate:   90,
		RenewalRate:        70,
		NewDealRate:        10,
		AvgLeaseTermMonths: 36,
		AvgTimeToLeaseDays: 45,
	}
}

func TestComputeVariance(t *testing.T) {
	tests := []struct {
		name      string
		property  *float64
		market    float64
		expected  *float64
		indicator models.PerformanceIndicator
	}{
		{"above band", f(95), 90, f(5.555555555555555), models.Outperforming},
		{"below band", f(40), 50, f(-20), models.Underperforming},
		{"within band", f(104.999), 100, f(4.998999999999995), models.AtMarket},
		{"exactly plus five", f(105), 100, f(5), models.Outperforming},
		{"exactly minus five", f(95), 100, f(-5), models.Underperforming},
		{"equal values", f(30), 30, f(0), models.AtMarket},
		{"missing value", nil, 90, nil, models.NoData},
		{"missing value with zero benchmark", nil, 0, nil, models.NoData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pct, indicator, err := ComputeVariance(tt.property, tt.market, HigherIsBetter)
			require.NoError(t, err)
			assert.Equal(t, tt.indicator, indicator)
			if tt.expected == nil {
				assert.Nil(t, pct)
				return
			}
			require.NotNil(t, pct)
			assert.InDelta(t, *tt.expected, *pct, 1e-9)
		})
	}
}

func TestComputeVariance_ZeroBenchmark(t *testing.T) {
	pct, indicator, err := ComputeVariance(f(12), 0, HigherIsBetter)
	assert.ErrorIs(t, err, ErrZeroBenchmark)
	assert.Nil(t, pct)
	assert.Equal(t, models.NoData, indicator)
}

func TestClassify_Boundaries(t *testing.T) {
	assert.Equal(t, models.Outperforming, Classify(5.0, HigherIsBetter))
	assert.Equal(t, models.Underperforming, Classify(-5.0, HigherIsBetter))
	assert.Equal(t, models.AtMarket, Classify(4.9999, HigherIsBetter))
	assert.Equal(t, models.AtMarket, Classify(-4.9999, HigherIsBetter))
	assert.Equal(t, models.AtMarket, Classify(0, HigherIsBetter))
}

func TestClassify_LowerIsBetterInverts(t *testing.T) {
	assert.Equal(t, models.Underperforming, Classify(20, LowerIsBetter))
	assert.Equal(t, models.Outperforming, Classify(-20, LowerIsBetter))
	assert.Equal(t, models.AtMarket, Classify(2, LowerIsBetter))

	_, indicator, err := ComputeVariance(nil, 45, LowerIsBetter)
	require.NoError(t, err)
	assert.Equal(t, models.NoData, indicator)
}

func TestAnalyzeProperty(t *testing.T) {
	property := models.Property{
		ID:                    1,
		CurrentOccupancyRate:  95,
		CurrentAvgRentPerSqft: nil,
		RenewalRateYTD:        f(70),
		AvgLeaseTermMonths:    i(36),
		AvgTimeToLeaseDays:    i(54),
	}

	variances, err := AnalyzeProperty(property, benchmark())
	require.NoError(t, err)
	require.Len(t, variances, 5)

	names := make([]string, len(variances))
	for idx, v := range variances {
		names[idx] = v.MetricName
	}
	assert.Equal(t, []string{"occupancy_rate", "rent_per_sqft", "renewal_rate", "lease_term_months", "time_to_lease_days"}, names)

	occupancy := variances[0]
	assert.Equal(t, models.Outperforming, occupancy.PerformanceIndicator)
	assert.InDelta(t, 5.56, *occupancy.VariancePercentage, 0.005)
	assert.Equal(t, 90.0, occupancy.MarketValue)

	rent := variances[1]
	assert.Equal(t, models.NoData, rent.PerformanceIndicator)
	assert.Nil(t, rent.PropertyValue)
	assert.Nil(t, rent.VariancePercentage)
	assert.Equal(t, 30.0, rent.MarketValue)

	assert.Equal(t, models.AtMarket, variances[2].PerformanceIndicator)

	lease := variances[3]
	assert.Equal(t, 36.0, *lease.PropertyValue)
	assert.Equal(t, models.AtMarket, lease.PerformanceIndicator)

	// 54 days against 45 is 20% slower to lease
	ttl := variances[4]
	assert.InDelta(t, 20.0, *ttl.VariancePercentage, 1e-9)
	assert.Equal(t, models.Underperforming, ttl.PerformanceIndicator)
}

func TestAnalyzeProperty_MissingIntegersStayAbsent(t *testing.T) {
	property := models.Property{ID: 2, CurrentOccupancyRate: 90}

	variances, err := AnalyzeProperty(property, benchmark())
	require.NoError(t, err)

	for _, v := range variances[1:] {
		assert.Nil(t, v.PropertyValue, v.MetricName)
		assert.Equal(t, models.NoData, v.PerformanceIndicator, v.MetricName)
	}
}

func TestAnalyzeProperty_ZeroIntegerIsAValue(t *testing.T) {
	property := models.Property{ID: 3, CurrentOccupancyRate: 90, AvgTimeToLeaseDays: i(0)}

	variances, err := AnalyzeProperty(property, benchmark())
	require.NoError(t, err)

	ttl := variances[4]
	require.NotNil(t, ttl.PropertyValue)
	assert.Equal(t, -100.0, *ttl.VariancePercentage)
	assert.Equal(t, models.Outperforming, ttl.PerformanceIndicator)
}

func TestAnalyzeProperty_ZeroBenchmark(t *testing.T) {
	bench := benchmark()
	bench.RenewalRate = 0
	property := models.Property{ID: 4, CurrentOccupancyRate: 90, RenewalRateYTD: f(50)}

	_, err := AnalyzeProperty(property, bench)
	assert.ErrorIs(t, err, ErrZeroBenchmark)
	assert.Contains(t, err.Error(), "renewal_rate")
}

func TestAnalyzeProperty_DoesNotAliasPropertyValues(t *testing.T) {
	rent := 33.0
	property := models.Property{ID: 5, CurrentOccupancyRate: 90, CurrentAvgRentPerSqft: &rent}

	variances, err := AnalyzeProperty(property, benchmark())
	require.NoError(t, err)

	*variances[1].PropertyValue = 0
	assert.Equal(t, 33.0, rent)
}

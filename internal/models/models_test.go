package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateJSON(t *testing.T) {
	d := NewDate(2024, time.March, 5)

	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2024-03-05"`, string(data))

	var decoded Date
	require.NoError(t, json.Unmarshal([]byte(`"2024-03-05"`), &decoded))
	assert.True(t, decoded.Equal(d.Time))

	assert.Error(t, json.Unmarshal([]byte(`"05/03/2024"`), &decoded))
	assert.Error(t, json.Unmarshal([]byte(`20240305`), &decoded))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate(" 2024-02-29 ")
	require.NoError(t, err)
	assert.Equal(t, "2024-02-29", d.String())

	_, err = ParseDate("2023-02-29")
	assert.Error(t, err)

	assert.True(t, NewDate(2024, 1, 1).Before(NewDate(2024, 1, 2)))
	assert.True(t, NewDate(2024, 1, 2).After(NewDate(2024, 1, 1)))
}

func TestEnumText(t *testing.T) {
	data, err := json.Marshal(struct {
		Indicator PerformanceIndicator `json:"indicator"`
		Direction TrendDirection       `json:"direction"`
		Overall   OverallPerformance   `json:"overall"`
	}{AtMarket, Down, InsufficientData})
	require.NoError(t, err)
	assert.JSONEq(t, `{"indicator":"at-market","direction":"down","overall":"insufficient-data"}`, string(data))

	var overall OverallPerformance
	require.NoError(t, overall.UnmarshalText([]byte("underperforming")))
	assert.Equal(t, OverallUnderperforming, overall)
	assert.Error(t, overall.UnmarshalText([]byte("sideways")))

	_, err = PerformanceIndicator(42).MarshalText()
	assert.Error(t, err)
}

func TestInvert(t *testing.T) {
	assert.Equal(t, Underperforming, Outperforming.Invert())
	assert.Equal(t, Outperforming, Underperforming.Invert())
	assert.Equal(t, AtMarket, AtMarket.Invert())
	assert.Equal(t, NoData, NoData.Invert())
}

func TestVerdictMessage(t *testing.T) {
	tests := []struct {
		verdict  Verdict
		expected string
	}{
		{Verdict{Performance: InsufficientData}, "Insufficient data to determine overall performance"},
		{Verdict{Performance: OverallOutperforming, Count: 3, Total: 5}, "Property is generally outperforming the market (3/5 metrics above market)"},
		{Verdict{Performance: OverallUnderperforming, Count: 1, Total: 1}, "Property is generally underperforming the market (1/1 metrics below market)"},
		{Verdict{Performance: OverallAtMarket, Count: 0, Total: 2}, "Property is performing at market levels (0/2 metrics at market)"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, tt.verdict.Message())
	}
}

func TestPropertyFilter(t *testing.T) {
	lat, lng := 30.27, -97.74
	located := Property{ID: 1, PropertyClass: "A", Latitude: &lat, Longitude: &lng}
	unlocated := Property{ID: 2, PropertyClass: "b"}

	var none *PropertyFilter
	assert.True(t, none.IsPropertyAllowed(unlocated))

	byClass := &PropertyFilter{PropertyClass: "B"}
	assert.Equal(t, []Property{unlocated}, byClass.Apply([]Property{located, unlocated}))

	bound := orb.Bound{Min: orb.Point{-98, 30}, Max: orb.Point{-97, 31}}
	byBound := &PropertyFilter{Bound: &bound}
	assert.True(t, byBound.IsPropertyAllowed(located))
	assert.False(t, byBound.IsPropertyAllowed(unlocated))

	outside := orb.Bound{Min: orb.Point{-105, 39}, Max: orb.Point{-104, 40}}
	assert.False(t, (&PropertyFilter{Bound: &outside}).IsPropertyAllowed(located))

	assert.Empty(t, byClass.Apply(nil))
	assert.NotNil(t, byClass.Apply(nil))
}

func TestMarketListItem(t *testing.T) {
	m := Market{
		MarketID:   1,
		MarketName: "Austin Office",
		Performance: []MarketPerformance{
			{Date: NewDate(2024, 1, 1)},
			{Date: NewDate(2024, 2, 1)},
		},
	}

	item := m.ListItem()
	assert.Equal(t, 2, item.SnapshotCount)
	require.NotNil(t, item.LatestDate)
	assert.Equal(t, "2024-02-01", item.LatestDate.String())

	assert.Nil(t, Market{MarketID: 2}.ListItem().LatestDate)
}

func TestOverviewResponseNullSections(t *testing.T) {
	data, err := json.Marshal(MarketOverviewResponse{MarketID: 1})
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(data, &body))
	assert.Contains(t, body, "trends")
	assert.Nil(t, body["trends"])
	assert.Nil(t, body["performance_history"])
}

package models

import "fmt"

// PerformanceVariance compares one property metric to its market benchmark.
// VariancePercentage is nil whenever PropertyValue is nil.
type PerformanceVariance struct {
	MetricName           string               `json:"metric_name"`
	PropertyValue        *float64             `json:"property_value"`
	MarketValue          float64              `json:"market_value"`
	VariancePercentage   *float64             `json:"variance_percentage"`
	PerformanceIndicator PerformanceIndicator `json:"performance_indicator"`
}

// MarketTrend is the change of one metric between the last two snapshots.
type MarketTrend struct {
	MetricName       string         `json:"metric_name"`
	LatestValue      float64        `json:"latest_value"`
	PreviousValue    float64        `json:"previous_value"`
	ChangePercentage float64        `json:"change_percentage"`
	TrendDirection   TrendDirection `json:"trend_direction"`
}

// Verdict is the majority vote over a property's classified variances.
type Verdict struct {
	Performance     OverallPerformance `json:"performance"`
	Count           int                `json:"count"`
	Total           int                `json:"total"`
	Outperforming   int                `json:"outperforming"`
	Underperforming int                `json:"underperforming"`
	AtMarket        int                `json:"at_market"`
}

// Message renders the verdict as the human-readable summary line.
func (v Verdict) Message() string {
	switch v.Performance {
	case OverallOutperforming:
		return fmt.Sprintf("Property is generally outperforming the market (%d/%d metrics above market)", v.Count, v.Total)
	case OverallUnderperforming:
		return fmt.Sprintf("Property is generally underperforming the market (%d/%d metrics below market)", v.Count, v.Total)
	case OverallAtMarket:
		return fmt.Sprintf("Property is performing at market levels (%d/%d metrics at market)", v.Count, v.Total)
	default:
		return "Insufficient data to determine overall performance"
	}
}

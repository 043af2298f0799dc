package analytics

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"creanalytics/server/internal/models"
)

// Summarize folds classified variances into a majority-vote verdict.
// Metrics without data are not counted; ties resolve to at market.
func Summarize(variances []models.PerformanceVariance) models.Verdict {
	var verdict models.Verdict
	for _, v := range variances {
		switch v.PerformanceIndicator {
		case models.Outperforming:
			verdict.Outperforming++
		case models.Underperforming:
			verdict.Underperforming++
		case models.AtMarket:
			verdict.AtMarket++
		default:
			continue
		}
		verdict.Total++
	}

	switch {
	case verdict.Total == 0:
		verdict.Performance = models.InsufficientData
	case verdict.Outperforming > verdict.Underperforming:
		verdict.Performance = models.OverallOutperforming
		verdict.Count = verdict.Outperforming
	case verdict.Underperforming > verdict.Outperforming:
		verdict.Performance = models.OverallUnderperforming
		verdict.Count = verdict.Underperforming
	default:
		verdict.Performance = models.OverallAtMarket
		verdict.Count = verdict.AtMarket
	}
	return verdict
}

// SummarizeProperty builds the listing rollup from occupancy and rent only.
// Absent values stay nil and are left out of the overall average.
func SummarizeProperty(property models.Property, benchmark models.MarketPerformance) (models.PropertySummary, error) {
	summary := models.PropertySummary{
		PropertyID:            property.ID,
		PropertyName:          property.Name,
		PropertyClass:         property.PropertyClass,
		CurrentOccupancyRate:  property.CurrentOccupancyRate,
		CurrentAvgRentPerSqft: property.CurrentAvgRentPerSqft,
	}

	occupancy, err := roundedVariance(floatPtr(property.CurrentOccupancyRate), benchmark.AvgOccupancyRate)
	if err != nil {
		return models.PropertySummary{}, fmt.Errorf("failed to summarize occupancy for property %d: %w", property.ID, err)
	}
	rent, err := roundedVariance(property.CurrentAvgRentPerSqft, benchmark.AvgRentPerSqft)
	if err != nil {
		return models.PropertySummary{}, fmt.Errorf("failed to summarize rent for property %d: %w", property.ID, err)
	}
	summary.OccupancyVsMarket = occupancy
	summary.RentVsMarket = rent

	var scores []float64
	for _, v := range []*float64{occupancy, rent} {
		if v != nil {
			scores = append(scores, *v)
		}
	}
	summary.OverallPerformance = classifyAverage(scores)

	return summary, nil
}

// SummarizeProperties summarizes each property against the same benchmark.
func SummarizeProperties(properties []models.Property, benchmark models.MarketPerformance) ([]models.PropertySummary, error) {
	summaries := make([]models.PropertySummary, 0, len(properties))
	for _, p := range properties {
		summary, err := SummarizeProperty(p, benchmark)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

func roundedVariance(value *float64, base float64) (*float64, error) {
	if value == nil {
		return nil, nil
	}
	pct, err := percentDiff(*value, base)
	if err != nil {
		return nil, err
	}
	return floatPtr(round2(pct)), nil
}

func classifyAverage(scores []float64) models.OverallPerformance {
	if len(scores) == 0 {
		return models.InsufficientData
	}

	avg := stat.Mean(scores, nil)
	switch {
	case math.Abs(avg) < AtMarketBand:
		return models.OverallAtMarket
	case avg > 0:
		return models.OverallOutperforming
	default:
		return models.OverallUnderperforming
	}
}

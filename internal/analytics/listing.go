package analytics

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"creanalytics/server/internal/models"
)

// SortKey selects the field a market listing is ordered by.
type SortKey int

const (
	SortNone SortKey = iota
	SortByOccupancyVariance
	SortByRentVariance
	SortByPropertyName
)

func (k SortKey) String() string {
	switch k {
	case SortByOccupancyVariance:
		return "occupancy_variance"
	case SortByRentVariance:
		return "rent_variance"
	case SortByPropertyName:
		return "property_name"
	default:
		return ""
	}
}

// ParseSortKey accepts the query form of a sort key. An empty string keeps
// load order.
func ParseSortKey(s string) (SortKey, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return SortNone, nil
	case "occupancy_variance":
		return SortByOccupancyVariance, nil
	case "rent_variance":
		return SortByRentVariance, nil
	case "property_name":
		return SortByPropertyName, nil
	default:
		return SortNone, fmt.Errorf("unsupported sort_by %q: use occupancy_variance, rent_variance or property_name", s)
	}
}

type SortOrder int

const (
	Descending SortOrder = iota
	Ascending
)

func (o SortOrder) String() string {
	if o == Ascending {
		return "asc"
	}
	return "desc"
}

// ParseSortOrder accepts asc or desc, defaulting to desc.
func ParseSortOrder(s string) (SortOrder, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "desc":
		return Descending, nil
	case "asc":
		return Ascending, nil
	default:
		return Descending, fmt.Errorf("unsupported sort_order %q: use asc or desc", s)
	}
}

// SortSummaries orders summaries in place. The sort is stable in both
// directions and missing variances rank below every present value.
func SortSummaries(summaries []models.PropertySummary, key SortKey, order SortOrder) {
	var less func(a, b models.PropertySummary) bool
	switch key {
	case SortByOccupancyVariance:
		less = func(a, b models.PropertySummary) bool {
			return orNegInf(a.OccupancyVsMarket) < orNegInf(b.OccupancyVsMarket)
		}
	case SortByRentVariance:
		less = func(a, b models.PropertySummary) bool {
			return orNegInf(a.RentVsMarket) < orNegInf(b.RentVsMarket)
		}
	case SortByPropertyName:
		less = func(a, b models.PropertySummary) bool {
			return a.PropertyName < b.PropertyName
		}
	default:
		return
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		if order == Descending {
			return less(summaries[j], summaries[i])
		}
		return less(summaries[i], summaries[j])
	})
}

// Paginate slices summaries by offset and limit. Total is the length of the
// input.
func Paginate(summaries []models.PropertySummary, offset, limit int) ([]models.PropertySummary, models.Pagination) {
	total := len(summaries)
	start := min(max(offset, 0), total)
	end := start + min(max(limit, 0), total-start)

	page := models.Pagination{
		Limit:   limit,
		Offset:  offset,
		Total:   total,
		HasMore: end < total,
	}

	result := make([]models.PropertySummary, end-start)
	copy(result, summaries[start:end])
	return result, page
}

func orNegInf(v *float64) float64 {
	if v == nil {
		return math.Inf(-1)
	}
	return *v
}

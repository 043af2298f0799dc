package analytics

import "github.com/shopspring/decimal"

// round2 rounds half away from zero at two decimal places, on the shortest
// decimal representation of v.
func round2(v float64) float64 {
	rounded, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return rounded
}

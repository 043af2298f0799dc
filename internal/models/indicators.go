package models

import "fmt"

// PerformanceIndicator classifies a single property metric against the market.
type PerformanceIndicator int

const (
	NoData PerformanceIndicator = iota
	AtMarket
	Outperforming
	Underperforming
)

// String returns the string representation of a PerformanceIndicator
func (i PerformanceIndicator) String() string {
	switch i {
	case Outperforming:
		return "outperforming"
	case Underperforming:
		return "underperforming"
	case AtMarket:
		return "at-market"
	case NoData:
		return "no-data"
	default:
		return "unknown"
	}
}

// Invert swaps outperforming and underperforming for metrics where lower is better.
func (i PerformanceIndicator) Invert() PerformanceIndicator {
	switch i {
	case Outperforming:
		return Underperforming
	case Underperforming:
		return Outperforming
	default:
		return i
	}
}

func (i PerformanceIndicator) MarshalText() ([]byte, error) {
	if i < NoData || i > Underperforming {
		return nil, fmt.Errorf("invalid performance indicator %d", int(i))
	}
	return []byte(i.String()), nil
}

func (i *PerformanceIndicator) UnmarshalText(text []byte) error {
	for candidate := NoData; candidate <= Underperforming; candidate++ {
		if candidate.String() == string(text) {
			*i = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown performance indicator %q", text)
}

// TrendDirection is the period-over-period direction of a market metric.
type TrendDirection int

const (
	Stable TrendDirection = iota
	Up
	Down
)

func (d TrendDirection) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Stable:
		return "stable"
	default:
		return "unknown"
	}
}

func (d TrendDirection) MarshalText() ([]byte, error) {
	if d < Stable || d > Down {
		return nil, fmt.Errorf("invalid trend direction %d", int(d))
	}
	return []byte(d.String()), nil
}

func (d *TrendDirection) UnmarshalText(text []byte) error {
	for candidate := Stable; candidate <= Down; candidate++ {
		if candidate.String() == string(text) {
			*d = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown trend direction %q", text)
}

// OverallPerformance is the rolled-up classification of a property.
type OverallPerformance int

const (
	InsufficientData OverallPerformance = iota
	OverallAtMarket
	OverallOutperforming
	OverallUnderperforming
)

func (o OverallPerformance) String() string {
	switch o {
	case OverallOutperforming:
		return "outperforming"
	case OverallUnderperforming:
		return "underperforming"
	case OverallAtMarket:
		return "at-market"
	case InsufficientData:
		return "insufficient-data"
	default:
		return "unknown"
	}
}

func (o OverallPerformance) MarshalText() ([]byte, error) {
	if o < InsufficientData || o > OverallUnderperforming {
		return nil, fmt.Errorf("invalid overall performance %d", int(o))
	}
	return []byte(o.String()), nil
}

func (o *OverallPerformance) UnmarshalText(text []byte) error {
	for candidate := InsufficientData; candidate <= OverallUnderperforming; candidate++ {
		if candidate.String() == string(text) {
			*o = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown overall performance %q", text)
}

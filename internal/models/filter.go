package models

import (
	"strings"

	"github.com/paulmach/orb"
)

// PropertyFilter narrows the properties of a market listing.
type PropertyFilter struct {
	PropertyClass string
	Bound         *orb.Bound
}

// IsPropertyAllowed checks if a property matches the filter criteria
func (f *PropertyFilter) IsPropertyAllowed(property Property) bool {
	if f == nil {
		return true
	}

	if f.PropertyClass != "" && !strings.EqualFold(property.PropertyClass, f.PropertyClass) {
		return false
	}

	if f.Bound != nil {
		point, ok := property.Location()
		if !ok {
			return false // Filter requires coordinates but property has none
		}
		if !f.Bound.Contains(point) {
			return false
		}
	}

	return true
}

// Apply returns the allowed properties, preserving order.
func (f *PropertyFilter) Apply(properties []Property) []Property {
	allowed := make([]Property, 0, len(properties))
	for _, p := range properties {
		if f.IsPropertyAllowed(p) {
			allowed = append(allowed, p)
		}
	}
	return allowed
}

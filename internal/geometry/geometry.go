// Package geometry handles property coordinates: bounding-box filters and
// GeoJSON output for map views.
package geometry

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"creanalytics/server/internal/models"
)

// ParseBound parses "minLon,minLat,maxLon,maxLat".
func ParseBound(s string) (orb.Bound, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return orb.Bound{}, fmt.Errorf("invalid bbox %q: expected minLon,minLat,maxLon,maxLat", s)
	}

	var values [4]float64
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return orb.Bound{}, fmt.Errorf("invalid bbox %q: %q is not a number", s, part)
		}
		values[i] = v
	}

	minLon, minLat, maxLon, maxLat := values[0], values[1], values[2], values[3]
	if minLon < -180 || maxLon > 180 || minLat < -90 || maxLat > 90 {
		return orb.Bound{}, fmt.Errorf("invalid bbox %q: coordinates out of range", s)
	}
	if minLon > maxLon || minLat > maxLat {
		return orb.Bound{}, fmt.Errorf("invalid bbox %q: minimum exceeds maximum", s)
	}

	return orb.Bound{Min: orb.Point{minLon, minLat}, Max: orb.Point{maxLon, maxLat}}, nil
}

// PropertyCollection builds one point feature per located property, carrying
// its listing summary, plus a convex footprint when at least three
// properties are located. Unlocated properties are skipped.
func PropertyCollection(properties []models.Property, summaries []models.PropertySummary) *geojson.FeatureCollection {
	byID := make(map[int]models.PropertySummary, len(summaries))
	for _, s := range summaries {
		byID[s.PropertyID] = s
	}

	fc := geojson.NewFeatureCollection()
	var points []orb.Point
	for _, p := range properties {
		point, ok := p.Location()
		if !ok {
			continue
		}
		points = append(points, point)

		feature := geojson.NewFeature(point)
		feature.ID = p.ID
		feature.Properties = geojson.Properties{
			"property_id":    p.ID,
			"property_name":  p.Name,
			"address":        p.Address,
			"property_class": p.PropertyClass,
		}
		if s, ok := byID[p.ID]; ok {
			feature.Properties["occupancy_vs_market"] = s.OccupancyVsMarket
			feature.Properties["rent_vs_market"] = s.RentVsMarket
			feature.Properties["overall_performance"] = s.OverallPerformance.String()
		}
		fc.Append(feature)
	}

	if len(points) == 0 {
		return fc
	}

	fc.BBox = geojson.NewBBox(orb.MultiPoint(points).Bound())

	if hull := ConvexHull(points); hull != nil {
		footprint := geojson.NewFeature(orb.Polygon{hull})
		footprint.Properties = geojson.Properties{
			"geometry_type": "hull",
			"hull_type":     "convex",
			"point_count":   len(points),
		}
		fc.Append(footprint)
	}

	return fc
}

// ConvexHull returns the closed counter-clockwise hull of the points, or nil
// when they do not span an area.
func ConvexHull(points []orb.Point) orb.Ring {
	if len(points) < 3 {
		return nil
	}

	sorted := make([]orb.Point, len(points))
	copy(sorted, points)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i][0] != sorted[j][0] {
			return sorted[i][0] < sorted[j][0]
		}
		return sorted[i][1] < sorted[j][1]
	})

	// Andrew's monotone chain
	hull := make([]orb.Point, 0, 2*len(sorted))
	for _, p := range sorted {
		for len(hull) >= 2 && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	lower := len(hull) + 1
	for i := len(sorted) - 2; i >= 0; i-- {
		p := sorted[i]
		for len(hull) >= lower && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}

	// hull ends with its first point, so three entries is a degenerate line
	if len(hull) < 4 {
		return nil
	}
	return orb.Ring(hull)
}

func cross(o, a, b orb.Point) float64 {
	return (a[0]-o[0])*(b[1]-o[1]) - (a[1]-o[1])*(b[0]-o[0])
}

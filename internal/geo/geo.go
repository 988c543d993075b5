// Package geo parses the GeoJSON fields of a partner document and evaluates
// the planar geometry predicates behind the nearest-partner search.
package geo

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"
)

var (
	ErrNotAPoint        = errors.New("address must be a GeoJSON Point")
	ErrNotAMultiPolygon = errors.New("coverage area must be a GeoJSON MultiPolygon or Polygon")
	ErrEmptyCoverage    = errors.New("coverage area geometry is empty")
	ErrBadCoordinates   = errors.New("coordinates out of range")
)

// ParsePoint decodes a GeoJSON Point. Coordinates are [lng, lat].
func ParsePoint(raw json.RawMessage) (orb.Point, error) {
	g, err := geojson.UnmarshalGeometry(raw)
	if err != nil {
		return orb.Point{}, fmt.Errorf("parse point: %w", err)
	}

	p, ok := g.Geometry().(orb.Point)
	if !ok {
		return orb.Point{}, ErrNotAPoint
	}
	return p, nil
}

// ParseCoverage decodes a GeoJSON coverage area. A bare Polygon is promoted
// to a single-element MultiPolygon.
func ParseCoverage(raw json.RawMessage) (orb.MultiPolygon, error) {
	g, err := geojson.UnmarshalGeometry(raw)
	if err != nil {
		return nil, fmt.Errorf("parse coverage area: %w", err)
	}

	var mp orb.MultiPolygon
	switch geom := g.Geometry().(type) {
	case orb.Polygon:
		mp = orb.MultiPolygon{geom}
	case orb.MultiPolygon:
		mp = geom
	default:
		return nil, ErrNotAMultiPolygon
	}

	if err := validateRings(mp); err != nil {
		return nil, err
	}
	return mp, nil
}

// validateRings rejects a coverage area with no polygons or with any polygon
// whose outer ring is empty. A bare hole has no interior to cover and would
// still stretch the bounding box.
func validateRings(mp orb.MultiPolygon) error {
	if len(mp) == 0 {
		return ErrEmptyCoverage
	}
	for _, poly := range mp {
		if len(poly) == 0 || len(poly[0]) == 0 {
			return ErrEmptyCoverage
		}
	}
	return nil
}

// Covers reports whether the coverage area contains the point.
func Covers(mp orb.MultiPolygon, p orb.Point) bool {
	return planar.MultiPolygonContains(mp, p)
}

// Distance is the planar euclidean distance between two points in degrees.
// Partner ranking only compares distances, so no projection is applied.
func Distance(a, b orb.Point) float64 {
	return planar.Distance(a, b)
}

// Bound returns the bounding box of the coverage area.
func Bound(mp orb.MultiPolygon) orb.Bound {
	return mp.Bound()
}

// ValidateCoordinates checks that a query coordinate is a real lng/lat pair.
func ValidateCoordinates(lng, lat float64) error {
	if lng < -180 || lng > 180 {
		return fmt.Errorf("%w: lng must be between -180 and 180", ErrBadCoordinates)
	}
	if lat < -90 || lat > 90 {
		return fmt.Errorf("%w: lat must be between -90 and 90", ErrBadCoordinates)
	}
	return nil
}

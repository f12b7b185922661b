package kmz

import (
	"log"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"
	"github.com/paulmach/orb/project"
)

// DistanceKm sums the planar Web Mercator length of every LineString and
// MultiLineString feature and returns kilometers rounded to two decimals.
// Points and polygons contribute nothing; a polygon boundary is a line but
// is excluded by design. Returns nil when the collection is nil or any
// qualifying feature carries coordinates that do not survive projection; a
// collection with no linear features yields 0.00.
//
// Distance and extraction fail independently: a nil result here does not
// invalidate the FeatureCollection it was computed from.
func DistanceKm(fc *geojson.FeatureCollection) *float64 {
	if fc == nil {
		return nil
	}

	total := 0.0
	for _, f := range fc.Features {
		var line orb.Geometry
		switch g := f.Geometry.(type) {
		case orb.LineString:
			line = g.Clone()
		case orb.MultiLineString:
			line = g.Clone()
		default:
			continue
		}

		if !projectable(line) {
			log.Printf("kmz: feature has coordinates outside the projectable range")
			return nil
		}

		projected := project.Geometry(line, project.WGS84.ToMercator)
		length := planar.Length(projected)
		if math.IsNaN(length) || math.IsInf(length, 0) {
			log.Printf("kmz: projected length is not finite")
			return nil
		}
		total += length
	}

	km := math.Round(total/10) / 100 // meters -> km at 2 decimals
	return &km
}

// projectable reports whether every coordinate can be reprojected to Web
// Mercator. Latitudes at or beyond the poles map to infinity.
func projectable(g orb.Geometry) bool {
	for _, p := range pooledCoordinates(g) {
		lon, lat := p[0], p[1]
		if math.IsNaN(lon) || math.IsInf(lon, 0) {
			return false
		}
		if math.IsNaN(lat) || lat <= -90 || lat >= 90 {
			return false
		}
	}
	return true
}

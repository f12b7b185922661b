// Package kmz turns an uploaded KMZ or KML circuit-path file into a GeoJSON
// FeatureCollection, a map center point, and a total path distance.
//
// All entry points use a soft-failure contract: a corrupt or empty upload
// degrades to "no path data" (nil results) instead of returning an error, so
// the surrounding save operation is never blocked by a bad file.
package kmz

import (
	"archive/zip"
	"bytes"
	"io"
	"log"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Center is a map center point. Note the order: persisted records store
// (lat, lon) even though coordinates are handled as (lon, lat) internally.
type Center struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// ParseArchive opens a KMZ (a zip wrapping one KML document), locates the
// first entry whose name ends in ".kml" in archive order, and parses it.
// Returns (nil, nil) when the bytes are not a zip, no KML entry exists, or
// the embedded document fails to parse.
func ParseArchive(data []byte) (*geojson.FeatureCollection, *Center) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		log.Printf("kmz: not a readable archive: %v", err)
		return nil, nil
	}

	var entry *zip.File
	for _, f := range zr.File {
		if strings.HasSuffix(f.Name, ".kml") {
			entry = f
			break
		}
	}
	if entry == nil {
		log.Printf("kmz: archive contains no .kml entry")
		return nil, nil
	}

	rc, err := entry.Open()
	if err != nil {
		log.Printf("kmz: failed to open %s: %v", entry.Name, err)
		return nil, nil
	}
	defer rc.Close()

	kmlData, err := io.ReadAll(rc)
	if err != nil {
		log.Printf("kmz: failed to read %s: %v", entry.Name, err)
		return nil, nil
	}

	return ParseKML(kmlData)
}

// ParseKML parses a KML document into a FeatureCollection plus the mean of
// every coordinate encountered. One feature is emitted per placemark that
// carries a geometry; placemarks without geometry are skipped. Any parse
// error fails the whole document: partial results are never returned, so a
// nil collection means "parse failed" while an empty non-nil collection
// means "valid document with no placemarks".
func ParseKML(data []byte) (*geojson.FeatureCollection, *Center) {
	root, err := parseRoot(data)
	if err != nil {
		log.Printf("kmz: failed to parse KML document: %v", err)
		return nil, nil
	}

	fc := geojson.NewFeatureCollection()
	var pool []orb.Point
	if err := root.walk(fc, &pool); err != nil {
		log.Printf("kmz: failed to extract features: %v", err)
		return nil, nil
	}

	var center *Center
	if len(pool) > 0 {
		var sumLon, sumLat float64
		for _, p := range pool {
			sumLon += p[0]
			sumLat += p[1]
		}
		n := float64(len(pool))
		center = &Center{Lat: sumLat / n, Lon: sumLon / n}
	}

	return fc, center
}

// walk recurses through the container tree in document order, accumulating
// features and pooled coordinates flatly across the whole document.
func (c *kmlContainer) walk(fc *geojson.FeatureCollection, pool *[]orb.Point) error {
	for _, n := range c.nodes {
		if n.container != nil {
			if err := n.container.walk(fc, pool); err != nil {
				return err
			}
			continue
		}

		pm := n.placemark
		geom, err := pm.geometry()
		if err != nil {
			return err
		}
		if geom == nil {
			continue
		}

		*pool = append(*pool, pooledCoordinates(geom)...)

		f := geojson.NewFeature(geom)
		f.Properties["name"] = pm.Name
		f.Properties["description"] = pm.Description
		fc.Append(f)
	}
	return nil
}

// pooledCoordinates gathers the coordinate pairs a geometry contributes to
// the centroid pool. Polygons contribute only their exterior ring; interior
// rings are excluded on purpose.
func pooledCoordinates(g orb.Geometry) []orb.Point {
	switch g := g.(type) {
	case orb.Point:
		return []orb.Point{g}
	case orb.LineString:
		return g
	case orb.Ring:
		return g
	case orb.Polygon:
		if len(g) == 0 {
			return nil
		}
		return g[0]
	case orb.MultiPoint:
		return g
	case orb.MultiLineString:
		var pts []orb.Point
		for _, ls := range g {
			pts = append(pts, ls...)
		}
		return pts
	case orb.MultiPolygon:
		var pts []orb.Point
		for _, poly := range g {
			pts = append(pts, pooledCoordinates(poly)...)
		}
		return pts
	case orb.Collection:
		var pts []orb.Point
		for _, child := range g {
			pts = append(pts, pooledCoordinates(child)...)
		}
		return pts
	}
	return nil
}

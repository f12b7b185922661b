package kmz

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
)

// KML nests features arbitrarily deep: a Document or Folder holds more
// containers and Placemarks, a Placemark holds exactly one geometry. The
// decoder below keeps children in document order, which encoding/xml's
// per-field slices would not.

type kmlNode struct {
	container *kmlContainer
	placemark *kmlPlacemark
}

type kmlContainer struct {
	nodes []kmlNode
}

func (c *kmlContainer) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "Document", "Folder":
				var child kmlContainer
				if err := d.DecodeElement(&child, &t); err != nil {
					return err
				}
				c.nodes = append(c.nodes, kmlNode{container: &child})
			case "Placemark":
				var pm kmlPlacemark
				if err := d.DecodeElement(&pm, &t); err != nil {
					return err
				}
				c.nodes = append(c.nodes, kmlNode{placemark: &pm})
			default:
				if err := d.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			return nil
		}
	}
}

type kmlPlacemark struct {
	Name          string            `xml:"name"`
	Description   string            `xml:"description"`
	Point         *kmlPoint         `xml:"Point"`
	LineString    *kmlLineString    `xml:"LineString"`
	LinearRing    *kmlLinearRing    `xml:"LinearRing"`
	Polygon       *kmlPolygon       `xml:"Polygon"`
	MultiGeometry *kmlMultiGeometry `xml:"MultiGeometry"`
}

type kmlPoint struct {
	Coordinates string `xml:"coordinates"`
}

type kmlLineString struct {
	Coordinates string `xml:"coordinates"`
}

type kmlLinearRing struct {
	Coordinates string `xml:"coordinates"`
}

type kmlPolygon struct {
	OuterBoundaryIs kmlBoundary   `xml:"outerBoundaryIs"`
	InnerBoundaryIs []kmlBoundary `xml:"innerBoundaryIs"`
}

type kmlBoundary struct {
	LinearRing kmlLinearRing `xml:"LinearRing"`
}

// kmlMultiGeometry decodes its children by hand so that mixed-kind
// collections keep their document order.
type kmlMultiGeometry struct {
	children []kmlGeometryChild
}

type kmlGeometryChild struct {
	point      *kmlPoint
	lineString *kmlLineString
	linearRing *kmlLinearRing
	polygon    *kmlPolygon
	multi      *kmlMultiGeometry
}

func (m *kmlMultiGeometry) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "Point":
				var g kmlPoint
				if err := d.DecodeElement(&g, &t); err != nil {
					return err
				}
				m.children = append(m.children, kmlGeometryChild{point: &g})
			case "LineString":
				var g kmlLineString
				if err := d.DecodeElement(&g, &t); err != nil {
					return err
				}
				m.children = append(m.children, kmlGeometryChild{lineString: &g})
			case "LinearRing":
				var g kmlLinearRing
				if err := d.DecodeElement(&g, &t); err != nil {
					return err
				}
				m.children = append(m.children, kmlGeometryChild{linearRing: &g})
			case "Polygon":
				var g kmlPolygon
				if err := d.DecodeElement(&g, &t); err != nil {
					return err
				}
				m.children = append(m.children, kmlGeometryChild{polygon: &g})
			case "MultiGeometry":
				var g kmlMultiGeometry
				if err := d.DecodeElement(&g, &t); err != nil {
					return err
				}
				m.children = append(m.children, kmlGeometryChild{multi: &g})
			default:
				if err := d.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			return nil
		}
	}
}

// parseRoot decodes the whole KML document, treating the <kml> element
// itself as the outermost container.
func parseRoot(data []byte) (*kmlContainer, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if se.Name.Local != "kml" {
			return nil, fmt.Errorf("unexpected root element <%s>", se.Name.Local)
		}
		var root kmlContainer
		if err := dec.DecodeElement(&root, &se); err != nil {
			return nil, err
		}
		return &root, nil
	}
}

// geometry converts a placemark's geometry to its orb representation.
// Returns (nil, nil) for a placemark that carries no geometry at all.
func (p *kmlPlacemark) geometry() (orb.Geometry, error) {
	switch {
	case p.Point != nil:
		return parsePoint(p.Point)
	case p.LineString != nil:
		return parseLineString(p.LineString)
	case p.LinearRing != nil:
		return parseLinearRing(p.LinearRing)
	case p.Polygon != nil:
		return parsePolygon(p.Polygon)
	case p.MultiGeometry != nil:
		return parseMultiGeometry(p.MultiGeometry)
	}
	return nil, nil
}

func parsePoint(g *kmlPoint) (orb.Geometry, error) {
	pts, err := parseCoordinates(g.Coordinates)
	if err != nil {
		return nil, err
	}
	if len(pts) != 1 {
		return nil, fmt.Errorf("point has %d coordinate tuples, want 1", len(pts))
	}
	return pts[0], nil
}

func parseLineString(g *kmlLineString) (orb.Geometry, error) {
	pts, err := parseCoordinates(g.Coordinates)
	if err != nil {
		return nil, err
	}
	if len(pts) < 2 {
		return nil, fmt.Errorf("line string has %d coordinate tuples, want at least 2", len(pts))
	}
	return orb.LineString(pts), nil
}

func parseLinearRing(g *kmlLinearRing) (orb.Geometry, error) {
	ring, err := parseRing(g)
	if err != nil {
		return nil, err
	}
	return ring, nil
}

func parseRing(g *kmlLinearRing) (orb.Ring, error) {
	pts, err := parseCoordinates(g.Coordinates)
	if err != nil {
		return nil, err
	}
	if len(pts) < 3 {
		return nil, fmt.Errorf("linear ring has %d coordinate tuples, want at least 3", len(pts))
	}
	return orb.Ring(pts), nil
}

func parsePolygon(g *kmlPolygon) (orb.Geometry, error) {
	exterior, err := parseRing(&g.OuterBoundaryIs.LinearRing)
	if err != nil {
		return nil, fmt.Errorf("polygon outer boundary: %w", err)
	}
	poly := orb.Polygon{exterior}
	for _, inner := range g.InnerBoundaryIs {
		ring, err := parseRing(&inner.LinearRing)
		if err != nil {
			return nil, fmt.Errorf("polygon inner boundary: %w", err)
		}
		poly = append(poly, ring)
	}
	return poly, nil
}

// parseMultiGeometry converts children in document order. Homogeneous
// collections collapse to the matching Multi* kind, the way shapely-style
// tooling represents them; mixed collections stay a GeometryCollection.
func parseMultiGeometry(g *kmlMultiGeometry) (orb.Geometry, error) {
	var children orb.Collection
	for _, child := range g.children {
		var (
			geom orb.Geometry
			err  error
		)
		switch {
		case child.point != nil:
			geom, err = parsePoint(child.point)
		case child.lineString != nil:
			geom, err = parseLineString(child.lineString)
		case child.linearRing != nil:
			geom, err = parseLinearRing(child.linearRing)
		case child.polygon != nil:
			geom, err = parsePolygon(child.polygon)
		case child.multi != nil:
			geom, err = parseMultiGeometry(child.multi)
		}
		if err != nil {
			return nil, err
		}
		children = append(children, geom)
	}
	if len(children) == 0 {
		return nil, fmt.Errorf("empty MultiGeometry")
	}
	return collapseCollection(children), nil
}

func collapseCollection(children orb.Collection) orb.Geometry {
	points := orb.MultiPoint{}
	lines := orb.MultiLineString{}
	polys := orb.MultiPolygon{}
	for _, child := range children {
		switch g := child.(type) {
		case orb.Point:
			points = append(points, g)
		case orb.LineString:
			lines = append(lines, g)
		case orb.Polygon:
			polys = append(polys, g)
		}
	}
	switch {
	case len(points) == len(children):
		return points
	case len(lines) == len(children):
		return lines
	case len(polys) == len(children):
		return polys
	}
	return children
}

// parseCoordinates tokenizes a KML coordinate block: whitespace-separated
// "lon,lat[,alt]" tuples. Altitude is dropped. Unlike lenient viewers, a
// malformed tuple is an error here so that a bad document fails whole.
func parseCoordinates(s string) ([]orb.Point, error) {
	fields := strings.Fields(strings.TrimSpace(s))
	pts := make([]orb.Point, 0, len(fields))
	for _, tuple := range fields {
		parts := strings.Split(tuple, ",")
		if len(parts) < 2 {
			return nil, fmt.Errorf("malformed coordinate tuple %q", tuple)
		}
		lon, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		if err != nil {
			return nil, fmt.Errorf("malformed longitude in %q: %w", tuple, err)
		}
		lat, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("malformed latitude in %q: %w", tuple, err)
		}
		pts = append(pts, orb.Point{lon, lat})
	}
	return pts, nil
}

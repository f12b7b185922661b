package kmz

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"math"
	"testing"

	"github.com/paulmach/orb"
)

const lineStringKML = `<?xml version="1.0" encoding="UTF-8"?>
<kml xmlns="http://www.opengis.net/kml/2.2">
  <Document>
    <name>Test Circuit Path</name>
    <Placemark>
      <name>Circuit Route</name>
      <description>Test circuit path</description>
      <LineString>
        <coordinates>
          -122.4194,37.7749,0
          -122.4084,37.7849,0
        </coordinates>
      </LineString>
    </Placemark>
  </Document>
</kml>`

// zipEntry preserves archive order, which ParseArchive depends on.
type zipEntry struct {
	name string
	data []byte
}

func buildArchive(t *testing.T, entries ...zipEntry) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, e := range entries {
		w, err := zw.Create(e.name)
		if err != nil {
			t.Fatalf("creating zip entry %s: %v", e.name, err)
		}
		if _, err := w.Write(e.data); err != nil {
			t.Fatalf("writing zip entry %s: %v", e.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("closing zip: %v", err)
	}
	return buf.Bytes()
}

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestParseArchive_LineStringScenario(t *testing.T) {
	data := buildArchive(t, zipEntry{"doc.kml", []byte(lineStringKML)})

	fc, center := ParseArchive(data)
	if fc == nil {
		t.Fatal("expected a FeatureCollection, got nil")
	}
	if len(fc.Features) != 1 {
		t.Fatalf("expected 1 feature, got %d", len(fc.Features))
	}
	if _, ok := fc.Features[0].Geometry.(orb.LineString); !ok {
		t.Errorf("expected LineString geometry, got %T", fc.Features[0].Geometry)
	}
	if got := fc.Features[0].Properties["name"]; got != "Circuit Route" {
		t.Errorf("expected name %q, got %v", "Circuit Route", got)
	}

	if center == nil {
		t.Fatal("expected a center, got nil")
	}
	if !almostEqual(center.Lat, 37.7799, 1e-9) || !almostEqual(center.Lon, -122.4139, 1e-9) {
		t.Errorf("expected center (37.7799, -122.4139), got (%v, %v)", center.Lat, center.Lon)
	}

	dist := DistanceKm(fc)
	if dist == nil {
		t.Fatal("expected a distance, got nil")
	}
	// Web Mercator inflates planar lengths by roughly 1/cos(lat); at 37.78N
	// the ~1.47 km geodesic segment measures ~1.87 km.
	if *dist < 1.8 || *dist > 1.95 {
		t.Errorf("expected distance near 1.87 km, got %v", *dist)
	}
}

func TestParseArchive_NotAnArchive(t *testing.T) {
	fc, center := ParseArchive([]byte("This is not a KMZ file"))
	if fc != nil || center != nil {
		t.Errorf("expected (nil, nil) for garbage input, got (%v, %v)", fc, center)
	}
}

func TestParseArchive_NoKMLEntry(t *testing.T) {
	data := buildArchive(t, zipEntry{"other_file.txt", []byte("Not a KML file")})

	fc, center := ParseArchive(data)
	if fc != nil || center != nil {
		t.Errorf("expected (nil, nil) for archive without KML, got (%v, %v)", fc, center)
	}
}

func TestParseArchive_EmptyKMLEntry(t *testing.T) {
	data := buildArchive(t, zipEntry{"doc.kml", nil})

	fc, center := ParseArchive(data)
	if fc != nil || center != nil {
		t.Errorf("expected (nil, nil) for zero-byte KML entry, got (%v, %v)", fc, center)
	}
}

func TestParseArchive_FirstKMLEntryWins(t *testing.T) {
	first := `<kml><Document><Placemark><name>first</name><Point><coordinates>1,2</coordinates></Point></Placemark></Document></kml>`
	second := `<kml><Document><Placemark><name>second</name><Point><coordinates>3,4</coordinates></Point></Placemark></Document></kml>`
	data := buildArchive(t,
		zipEntry{"a.kml", []byte(first)},
		zipEntry{"b.kml", []byte(second)},
	)

	fc, _ := ParseArchive(data)
	if fc == nil || len(fc.Features) != 1 {
		t.Fatalf("expected 1 feature, got %v", fc)
	}
	if got := fc.Features[0].Properties["name"]; got != "first" {
		t.Errorf("expected the first .kml entry to win, got feature %v", got)
	}
}

func TestParseKML_PointsOnlyDistanceIsZero(t *testing.T) {
	kml := `<kml><Document>
	  <Placemark><name>A</name><Point><coordinates>-122.0,37.0</coordinates></Point></Placemark>
	  <Placemark><name>B</name><Point><coordinates>-122.5,37.5</coordinates></Point></Placemark>
	</Document></kml>`

	fc, center := ParseKML([]byte(kml))
	if fc == nil || len(fc.Features) != 2 {
		t.Fatalf("expected 2 features, got %v", fc)
	}
	if center == nil {
		t.Fatal("expected a center")
	}

	dist := DistanceKm(fc)
	if dist == nil {
		t.Fatal("expected a defined distance for a point-only document")
	}
	if *dist != 0 {
		t.Errorf("expected zero distance for points, got %v", *dist)
	}
}

func TestParseKML_PolygonBoundaryExcludedFromDistance(t *testing.T) {
	// Closed 5-vertex ring; the duplicated closing vertex stays in the pool.
	kml := `<kml><Document><Placemark>
	  <name>Site boundary</name>
	  <Polygon><outerBoundaryIs><LinearRing><coordinates>
	    -122.42,37.77 -122.41,37.77 -122.41,37.78 -122.42,37.78 -122.42,37.77
	  </coordinates></LinearRing></outerBoundaryIs></Polygon>
	</Placemark></Document></kml>`

	fc, center := ParseKML([]byte(kml))
	if fc == nil || len(fc.Features) != 1 {
		t.Fatalf("expected 1 feature, got %v", fc)
	}
	if _, ok := fc.Features[0].Geometry.(orb.Polygon); !ok {
		t.Errorf("expected Polygon geometry, got %T", fc.Features[0].Geometry)
	}

	// Mean over all 5 pooled vertices, closing duplicate included.
	wantLat := (37.77*3 + 37.78*2) / 5
	wantLon := (-122.42*3 + -122.41*2) / 5
	if center == nil {
		t.Fatal("expected a center")
	}
	if !almostEqual(center.Lat, wantLat, 1e-9) || !almostEqual(center.Lon, wantLon, 1e-9) {
		t.Errorf("expected center (%v, %v), got (%v, %v)", wantLat, wantLon, center.Lat, center.Lon)
	}

	dist := DistanceKm(fc)
	if dist == nil {
		t.Fatal("expected a defined distance")
	}
	if *dist != 0 {
		t.Errorf("expected zero distance for a polygon-only document, got %v", *dist)
	}
}

func TestParseKML_PolygonInteriorRingsNotPooled(t *testing.T) {
	kml := `<kml><Document><Placemark>
	  <Polygon>
	    <outerBoundaryIs><LinearRing><coordinates>0,0 4,0 4,4 0,4 0,0</coordinates></LinearRing></outerBoundaryIs>
	    <innerBoundaryIs><LinearRing><coordinates>1,1 2,1 2,2 1,2 1,1</coordinates></LinearRing></innerBoundaryIs>
	  </Polygon>
	</Placemark></Document></kml>`

	fc, center := ParseKML([]byte(kml))
	if fc == nil {
		t.Fatal("expected a FeatureCollection")
	}

	// The hole must still be present on the persisted geometry.
	poly, ok := fc.Features[0].Geometry.(orb.Polygon)
	if !ok || len(poly) != 2 {
		t.Fatalf("expected polygon with 2 rings, got %T %v", fc.Features[0].Geometry, fc.Features[0].Geometry)
	}

	// But only the 5 exterior vertices feed the centroid: mean of
	// (0,0) (4,0) (4,4) (0,4) (0,0) is (1.6, 1.6).
	if center == nil || !almostEqual(center.Lat, 1.6, 1e-9) || !almostEqual(center.Lon, 1.6, 1e-9) {
		t.Errorf("expected center (1.6, 1.6) from exterior ring only, got %v", center)
	}
}

func TestParseKML_NestedFoldersFlattenInOrder(t *testing.T) {
	kml := `<kml><Document>
	  <Folder><name>Outer</name>
	    <Placemark><name>one</name><Point><coordinates>1,1</coordinates></Point></Placemark>
	    <Folder><name>Inner</name>
	      <Placemark><name>two</name><Point><coordinates>2,2</coordinates></Point></Placemark>
	    </Folder>
	    <Placemark><name>three</name><Point><coordinates>3,3</coordinates></Point></Placemark>
	  </Folder>
	  <Placemark><name>four</name><Point><coordinates>4,4</coordinates></Point></Placemark>
	</Document></kml>`

	fc, _ := ParseKML([]byte(kml))
	if fc == nil {
		t.Fatal("expected a FeatureCollection")
	}
	want := []string{"one", "two", "three", "four"}
	if len(fc.Features) != len(want) {
		t.Fatalf("expected %d features, got %d", len(want), len(fc.Features))
	}
	for i, name := range want {
		if got := fc.Features[i].Properties["name"]; got != name {
			t.Errorf("feature %d: expected name %q, got %v", i, name, got)
		}
	}
}

func TestParseKML_MultiGeometry(t *testing.T) {
	// Homogeneous line strings collapse to MultiLineString and count
	// toward the distance total.
	lines := `<kml><Document><Placemark>
	  <MultiGeometry>
	    <LineString><coordinates>-122.4194,37.7749 -122.4084,37.7849</coordinates></LineString>
	    <LineString><coordinates>-122.4084,37.7849 -122.3974,37.7949</coordinates></LineString>
	  </MultiGeometry>
	</Placemark></Document></kml>`

	fc, _ := ParseKML([]byte(lines))
	if fc == nil || len(fc.Features) != 1 {
		t.Fatalf("expected 1 feature, got %v", fc)
	}
	if _, ok := fc.Features[0].Geometry.(orb.MultiLineString); !ok {
		t.Fatalf("expected MultiLineString, got %T", fc.Features[0].Geometry)
	}
	dist := DistanceKm(fc)
	if dist == nil || *dist <= 3.0 {
		t.Errorf("expected both segments summed (about 3.73 km), got %v", dist)
	}

	// Mixed kinds stay a GeometryCollection and contribute nothing.
	mixed := `<kml><Document><Placemark>
	  <MultiGeometry>
	    <Point><coordinates>1,1</coordinates></Point>
	    <LineString><coordinates>0,0 1,0</coordinates></LineString>
	  </MultiGeometry>
	</Placemark></Document></kml>`

	fc, _ = ParseKML([]byte(mixed))
	if fc == nil || len(fc.Features) != 1 {
		t.Fatalf("expected 1 feature, got %v", fc)
	}
	if _, ok := fc.Features[0].Geometry.(orb.Collection); !ok {
		t.Fatalf("expected GeometryCollection, got %T", fc.Features[0].Geometry)
	}
	dist = DistanceKm(fc)
	if dist == nil || *dist != 0 {
		t.Errorf("expected zero distance for a mixed collection, got %v", dist)
	}
}

func TestParseKML_MalformedDocumentFailsWhole(t *testing.T) {
	fc, center := ParseKML([]byte("<kml><Document><Placemark>"))
	if fc != nil || center != nil {
		t.Errorf("expected (nil, nil) for truncated XML, got (%v, %v)", fc, center)
	}

	// One bad placemark fails the whole document, not just itself.
	kml := `<kml><Document>
	  <Placemark><name>good</name><Point><coordinates>1,2</coordinates></Point></Placemark>
	  <Placemark><name>bad</name><Point><coordinates>not-a-number,2</coordinates></Point></Placemark>
	</Document></kml>`
	fc, center = ParseKML([]byte(kml))
	if fc != nil || center != nil {
		t.Errorf("expected whole-document failure, got (%v, %v)", fc, center)
	}
}

func TestParseKML_EmptyDocumentIsValid(t *testing.T) {
	fc, center := ParseKML([]byte(`<kml><Document><name>empty</name></Document></kml>`))
	if fc == nil {
		t.Fatal("a well-formed document with no placemarks must parse")
	}
	if len(fc.Features) != 0 {
		t.Errorf("expected no features, got %d", len(fc.Features))
	}
	if center != nil {
		t.Errorf("expected no center for an empty pool, got %v", center)
	}
}

func TestParseKML_PlacemarkWithoutGeometrySkipped(t *testing.T) {
	kml := `<kml><Document>
	  <Placemark><name>note only</name><description>no geometry</description></Placemark>
	  <Placemark><name>real</name><Point><coordinates>5,6</coordinates></Point></Placemark>
	</Document></kml>`

	fc, _ := ParseKML([]byte(kml))
	if fc == nil {
		t.Fatal("expected a FeatureCollection")
	}
	if len(fc.Features) != 1 {
		t.Fatalf("expected geometry-less placemark to be dropped, got %d features", len(fc.Features))
	}
	if got := fc.Features[0].Properties["name"]; got != "real" {
		t.Errorf("expected feature %q, got %v", "real", got)
	}
}

func TestParseKML_CentroidOfSymmetricLineIsMidpoint(t *testing.T) {
	kml := `<kml><Document><Placemark>
	  <LineString><coordinates>10,20 30,40</coordinates></LineString>
	</Placemark></Document></kml>`

	_, center := ParseKML([]byte(kml))
	if center == nil {
		t.Fatal("expected a center")
	}
	if center.Lat != 30 || center.Lon != 20 {
		t.Errorf("expected midpoint (30, 20), got (%v, %v)", center.Lat, center.Lon)
	}
}

func TestDistanceKm_NilAndInvalidInput(t *testing.T) {
	if got := DistanceKm(nil); got != nil {
		t.Errorf("expected nil distance for nil collection, got %v", *got)
	}

	kml := `<kml><Document><Placemark>
	  <LineString><coordinates>0,95 1,95</coordinates></LineString>
	</Placemark></Document></kml>`
	fc, _ := ParseKML([]byte(kml))
	if fc == nil {
		t.Fatal("extraction itself must succeed for out-of-range latitudes")
	}
	if got := DistanceKm(fc); got != nil {
		t.Errorf("expected nil distance for unprojectable latitude, got %v", *got)
	}
}

func TestDistanceKm_DoesNotMutateCollection(t *testing.T) {
	fc, _ := ParseKML([]byte(lineStringKML))
	if fc == nil {
		t.Fatal("expected a FeatureCollection")
	}

	before, err := json.Marshal(fc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	DistanceKm(fc)
	after, err := json.Marshal(fc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !bytes.Equal(before, after) {
		t.Error("DistanceKm must not reproject the caller's geometry in place")
	}
}

func TestParseArchive_Idempotent(t *testing.T) {
	data := buildArchive(t, zipEntry{"doc.kml", []byte(lineStringKML)})

	fc1, c1 := ParseArchive(data)
	fc2, c2 := ParseArchive(data)
	if fc1 == nil || fc2 == nil {
		t.Fatal("expected both parses to succeed")
	}

	j1, _ := json.Marshal(fc1)
	j2, _ := json.Marshal(fc2)
	if !bytes.Equal(j1, j2) {
		t.Error("expected identical FeatureCollections across parses")
	}
	if *c1 != *c2 {
		t.Errorf("expected identical centers, got %v and %v", c1, c2)
	}

	d1, d2 := DistanceKm(fc1), DistanceKm(fc2)
	if d1 == nil || d2 == nil || *d1 != *d2 {
		t.Errorf("expected identical distances, got %v and %v", d1, d2)
	}
}

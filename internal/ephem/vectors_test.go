package ephem

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/mgeist/flyby/internal/geom"
)

// Constant-velocity motion: 1000 km/day along +X starting at the origin,
// tabulated daily. Velocity column is km/s.
const sampleVectors = `API VERSION: 1.2
API SOURCE: NASA/JPL Horizons API

$$SOE
2447762.500000000, A.D. 1989-Aug-24 00:00:00.0000,  0.000000E+00,  0.000000E+00,  0.000000E+00,  1.157407407E-02,  0.000000E+00,  0.000000E+00,
2447763.500000000, A.D. 1989-Aug-25 00:00:00.0000,  1.000000E+03,  0.000000E+00,  0.000000E+00,  1.157407407E-02,  0.000000E+00,  0.000000E+00,
2447764.500000000, A.D. 1989-Aug-26 00:00:00.0000,  2.000000E+03,  0.000000E+00,  0.000000E+00,  1.157407407E-02,  0.000000E+00,  0.000000E+00,
$$EOE

Coordinate system: ICRF
`

func parseVectors(t *testing.T) *VectorTable {
	t.Helper()
	vt, err := ParseVectorTable(strings.NewReader(sampleVectors))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	return vt
}

func TestParseVectorTable(t *testing.T) {
	vt := parseVectors(t)
	if vt.Len() != 3 {
		t.Fatalf("expected 3 records, got %d", vt.Len())
	}
	first, last := vt.Span()
	if first != 2447762.5 || last != 2447764.5 {
		t.Errorf("span = [%f, %f], want [2447762.5, 2447764.5]", first, last)
	}
}

func TestAtTableNode(t *testing.T) {
	vt := parseVectors(t)
	pos, err := vt.At(2447763.5)
	if err != nil {
		t.Fatal(err)
	}
	if pos != (geom.Vec3{X: 1000}) {
		t.Errorf("node position = %+v, want {1000 0 0}", pos)
	}
}

func TestAtReproducesLinearMotion(t *testing.T) {
	// Hermite interpolation with consistent velocities is exact for a
	// straight line, so any intermediate epoch must land on it.
	vt := parseVectors(t)
	for _, frac := range []float64{0.1, 0.25, 0.5, 0.9} {
		jd := 2447762.5 + frac
		pos, err := vt.At(jd)
		if err != nil {
			t.Fatal(err)
		}
		want := 1000 * frac
		if math.Abs(pos.X-want) > 1e-6 {
			t.Errorf("At(%.2f).X = %f, want %f", jd, pos.X, want)
		}
		if math.Abs(pos.Y) > 1e-9 || math.Abs(pos.Z) > 1e-9 {
			t.Errorf("At(%.2f) drifted off axis: %+v", jd, pos)
		}
	}
}

func TestAtOutsideSpan(t *testing.T) {
	vt := parseVectors(t)
	for _, jd := range []float64{2447761.0, 2447765.0} {
		if _, err := vt.At(jd); !errors.Is(err, ErrOutsideSpan) {
			t.Errorf("At(%f) error = %v, want ErrOutsideSpan", jd, err)
		}
	}
}

func TestParseRejectsShortTable(t *testing.T) {
	short := "$$SOE\n2447762.5, A.D. 1989-Aug-24 00:00:00.0000, 1, 2, 3, 4, 5, 6,\n$$EOE\n"
	if _, err := ParseVectorTable(strings.NewReader(short)); err == nil {
		t.Fatal("expected error for single-record table")
	}
}

func TestParseRejectsMalformedRecord(t *testing.T) {
	bad := "$$SOE\nnot, a, vector, line, at, all, x, y,\n$$EOE\n"
	if _, err := ParseVectorTable(strings.NewReader(bad)); err == nil {
		t.Fatal("expected error for malformed record")
	}
}

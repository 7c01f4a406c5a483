package catalog

import "testing"

func TestSatelliteCount(t *testing.T) {
	if len(Satellites) != 8 {
		t.Fatalf("expected 8 satellites, got %d", len(Satellites))
	}
}

func TestOffsetsMatchSemiMajorAxis(t *testing.T) {
	// Planar distance must equal the orbital radius the offset was built from.
	axes := map[string]float64{
		"Naiad":    48227,
		"Thalassa": 50074,
		"Despina":  52526,
		"Galatea":  61953,
		"Larissa":  73548,
		"Proteus":  117646,
		"Triton":   354759,
		"Nereid":   5513818,
	}
	for _, sat := range Satellites {
		want, ok := axes[sat.Name]
		if !ok {
			t.Fatalf("unexpected satellite %q", sat.Name)
		}
		planar := sat.Offset
		planar.Z = 0
		if got := planar.Norm(); got < want-1 || got > want+1 {
			t.Errorf("%s: offset distance %.0f, want %.0f", sat.Name, got, want)
		}
	}
}

func TestCentral(t *testing.T) {
	if !Neptune.Central() {
		t.Error("Neptune should be central")
	}
	for _, sat := range Satellites {
		if sat.Central() {
			t.Errorf("%s should not be central", sat.Name)
		}
	}
}

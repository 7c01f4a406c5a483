package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/mgeist/flyby/internal/geom"
	"github.com/mgeist/flyby/internal/scene"
	"github.com/onsi/gomega"
)

func testScene(t *testing.T, n int) *scene.Scene {
	t.Helper()
	start := time.Date(1989, 8, 24, 0, 0, 0, 0, time.UTC)
	times := make([]time.Time, n)
	traj := make([]geom.Vec3, n)
	for i := 0; i < n; i++ {
		times[i] = start.Add(time.Duration(i) * time.Hour)
		traj[i] = geom.Vec3{X: float64(i) * 10000, Y: 50000, Z: 0}
	}
	s, err := scene.Assemble(times, traj, nil)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestBuildTraceInventory(t *testing.T) {
	g := gomega.NewWithT(t)
	fig := Build(testScene(t, 73), "Voyager 2 at Neptune")

	surfaces, lines, markers := 0, 0, 0
	for _, tr := range fig.Data {
		switch {
		case tr.Type == "surface":
			surfaces++
		case tr.Mode == "lines":
			lines++
		case tr.Mode == "markers":
			markers++
		}
	}
	g.Expect(surfaces).To(gomega.Equal(9), "1 central sphere + 8 satellite spheres")
	g.Expect(lines).To(gomega.Equal(2), "full trajectory + animated flown path")
	g.Expect(markers).To(gomega.Equal(3), "start, end, spacecraft")
	g.Expect(fig.Frames).To(gomega.HaveLen(73))
}

func TestBuildFramesTargetAnimatedTraces(t *testing.T) {
	s := testScene(t, 10)
	fig := Build(s, "t")

	markerIdx, traceIdx := len(s.Spheres)+3, len(s.Spheres)+4
	for i, f := range fig.Frames {
		if len(f.Data) != 2 {
			t.Fatalf("frame %d carries %d traces, want 2", i, len(f.Data))
		}
		if len(f.Traces) != 2 || f.Traces[0] != markerIdx || f.Traces[1] != traceIdx {
			t.Fatalf("frame %d targets %v, want [%d %d]", i, f.Traces, markerIdx, traceIdx)
		}
		xs, ok := f.Data[1].X.([]float64)
		if !ok {
			t.Fatalf("frame %d flown path X has type %T", i, f.Data[1].X)
		}
		if len(xs) != i+1 {
			t.Fatalf("frame %d flown path has %d points, want %d", i, len(xs), i+1)
		}
	}
}

func TestBuildSliderMatchesFrames(t *testing.T) {
	fig := Build(testScene(t, 73), "t")

	if len(fig.Layout.Sliders) != 1 {
		t.Fatalf("expected one slider, got %d", len(fig.Layout.Sliders))
	}
	steps := fig.Layout.Sliders[0].Steps
	if len(steps) != len(fig.Frames) {
		t.Fatalf("%d slider steps for %d frames", len(steps), len(fig.Frames))
	}
	for i, st := range steps {
		if st.Method != "animate" {
			t.Fatalf("step %d method %q", i, st.Method)
		}
	}
	if len(fig.Layout.UpdateMenus) != 1 || len(fig.Layout.UpdateMenus[0].Buttons) != 2 {
		t.Fatal("expected one update menu with play and pause buttons")
	}
}

func TestFigureMarshalsToPlotlySchema(t *testing.T) {
	fig := Build(testScene(t, 5), "t")

	raw, err := json.Marshal(fig)
	if err != nil {
		t.Fatal(err)
	}

	var decoded struct {
		Data   []map[string]any `json:"data"`
		Layout map[string]any   `json:"layout"`
		Frames []map[string]any `json:"frames"`
	}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("figure JSON does not round-trip: %v", err)
	}
	if len(decoded.Data) != len(fig.Data) {
		t.Errorf("decoded %d traces, want %d", len(decoded.Data), len(fig.Data))
	}
	if _, ok := decoded.Layout["sliders"]; !ok {
		t.Error("layout JSON missing sliders")
	}
	if _, ok := decoded.Layout["updatemenus"]; !ok {
		t.Error("layout JSON missing updatemenus")
	}
	// Surfaces carry 2D mesh coordinates.
	if _, ok := decoded.Data[0]["z"].([]any); !ok {
		t.Error("surface z should be a nested array")
	}
}

func TestWriteHTML(t *testing.T) {
	g := gomega.NewWithT(t)
	fig := Build(testScene(t, 3), "Voyager 2")

	var buf bytes.Buffer
	g.Expect(WriteHTML(&buf, "Voyager 2", fig)).To(gomega.Succeed())

	doc := buf.String()
	g.Expect(doc).To(gomega.ContainSubstring("<div id=\"flyby\">"))
	g.Expect(doc).To(gomega.ContainSubstring(plotlyCDN))
	g.Expect(doc).To(gomega.ContainSubstring("Plotly.newPlot"))
	g.Expect(doc).To(gomega.ContainSubstring("Plotly.addFrames"))
	g.Expect(strings.Count(doc, "<html>")).To(gomega.Equal(1))
}

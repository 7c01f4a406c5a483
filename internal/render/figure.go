// Package render turns an assembled scene into an interactive plotly figure
// and writes it as a single HTML document. The figure is built as typed
// structs and marshalled to the plotly JSON schema; the document embeds the
// JSON and pulls the plotly.js runtime from the official CDN.
package render

import (
	"fmt"

	"github.com/mgeist/flyby/internal/catalog"
	"github.com/mgeist/flyby/internal/geom"
	"github.com/mgeist/flyby/internal/scene"
)

// Animation pacing in the rendered document, 20 frames per second.
const frameMillis = 50

// Figure is a complete plotly figure: static traces, layout, animation frames.
type Figure struct {
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
	Frames []Frame `json:"frames,omitempty"`
}

// Trace covers the two trace kinds the scene needs: scatter3d (X/Y/Z are
// []float64) and surface (X/Y/Z are [][]float64).
type Trace struct {
	Type       string   `json:"type"`
	Name       string   `json:"name,omitempty"`
	X          any      `json:"x,omitempty"`
	Y          any      `json:"y,omitempty"`
	Z          any      `json:"z,omitempty"`
	Mode       string   `json:"mode,omitempty"`
	Line       *Line    `json:"line,omitempty"`
	Marker     *Marker  `json:"marker,omitempty"`
	Colorscale [][2]any `json:"colorscale,omitempty"`
	ShowScale  *bool    `json:"showscale,omitempty"`
	ShowLegend *bool    `json:"showlegend,omitempty"`
	Opacity    float64  `json:"opacity,omitempty"`
}

// Line styles a scatter3d line.
type Line struct {
	Color string  `json:"color,omitempty"`
	Width float64 `json:"width,omitempty"`
}

// Marker styles a scatter3d marker.
type Marker struct {
	Size   float64 `json:"size,omitempty"`
	Color  string  `json:"color,omitempty"`
	Symbol string  `json:"symbol,omitempty"`
}

// Layout is the subset of the plotly layout schema the figure uses.
type Layout struct {
	Title       *Title       `json:"title,omitempty"`
	Scene       *SceneLayout `json:"scene,omitempty"`
	PaperColor  string       `json:"paper_bgcolor,omitempty"`
	Font        *Font        `json:"font,omitempty"`
	ShowLegend  *bool        `json:"showlegend,omitempty"`
	Legend      *Legend      `json:"legend,omitempty"`
	UpdateMenus []UpdateMenu `json:"updatemenus,omitempty"`
	Sliders     []Slider     `json:"sliders,omitempty"`
}

type Title struct {
	Text string `json:"text"`
}

type Font struct {
	Color string `json:"color,omitempty"`
	Size  int    `json:"size,omitempty"`
}

type Legend struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// SceneLayout configures the 3D axes.
type SceneLayout struct {
	XAxis      Axis   `json:"xaxis"`
	YAxis      Axis   `json:"yaxis"`
	ZAxis      Axis   `json:"zaxis"`
	AspectMode string `json:"aspectmode,omitempty"`
	BGColor    string `json:"bgcolor,omitempty"`
}

type Axis struct {
	Title     *Title `json:"title,omitempty"`
	BGColor   string `json:"backgroundcolor,omitempty"`
	GridColor string `json:"gridcolor,omitempty"`
}

// Frame is one plotly animation frame; Traces holds the indices of the data
// traces the frame replaces.
type Frame struct {
	Name   string  `json:"name"`
	Data   []Trace `json:"data"`
	Traces []int   `json:"traces,omitempty"`
	Layout *Layout `json:"layout,omitempty"`
}

// UpdateMenu hosts the play/pause buttons.
type UpdateMenu struct {
	Type       string   `json:"type"`
	ShowActive bool     `json:"showactive"`
	X          float64  `json:"x"`
	Y          float64  `json:"y"`
	XAnchor    string   `json:"xanchor,omitempty"`
	Buttons    []Button `json:"buttons"`
}

type Button struct {
	Label  string `json:"label"`
	Method string `json:"method"`
	Args   []any  `json:"args"`
}

// Slider is the frame scrubber.
type Slider struct {
	Active       int           `json:"active"`
	X            float64       `json:"x"`
	Y            float64       `json:"y"`
	Len          float64       `json:"len"`
	Pad          *Pad          `json:"pad,omitempty"`
	CurrentValue *CurrentValue `json:"currentvalue,omitempty"`
	Steps        []Step        `json:"steps"`
}

type Pad struct {
	B int `json:"b,omitempty"`
	T int `json:"t,omitempty"`
}

type CurrentValue struct {
	Prefix  string `json:"prefix,omitempty"`
	Visible bool   `json:"visible"`
	XAnchor string `json:"xanchor,omitempty"`
}

type Step struct {
	Label  string `json:"label"`
	Method string `json:"method"`
	Args   []any  `json:"args"`
}

// centralScale bands the central body in blues; satellites get a flat
// scale of their catalog color.
var centralScale = [][2]any{{0.0, "#1a237e"}, {0.5, "#3949ab"}, {1.0, "#7986cb"}}

func flatScale(color string) [][2]any {
	return [][2]any{{0.0, color}, {1.0, color}}
}

func boolPtr(b bool) *bool { return &b }

// Indices of the animated traces: the spacecraft marker and its trace line
// come last, after 9 spheres and the three static trajectory traces.
func animatedIndices(s *scene.Scene) (marker, trace int) {
	base := len(s.Spheres) + 3
	return base, base + 1
}

// Build assembles the full figure for a scene.
func Build(s *scene.Scene, title string) *Figure {
	fig := &Figure{}

	for _, sp := range s.Spheres {
		scale := flatScale(sp.Color)
		opacity := 1.0
		if sp.Central {
			scale = centralScale
			opacity = 0.9
		}
		fig.Data = append(fig.Data, Trace{
			Type:       "surface",
			Name:       sp.Name,
			X:          sp.X,
			Y:          sp.Y,
			Z:          sp.Z,
			Colorscale: scale,
			ShowScale:  boolPtr(false),
			ShowLegend: boolPtr(true),
			Opacity:    opacity,
		})
	}

	xs, ys, zs := splitCoords(s.Trajectory)
	fig.Data = append(fig.Data,
		Trace{
			Type: "scatter3d",
			Name: catalog.SpacecraftName + " trajectory",
			X:    xs, Y: ys, Z: zs,
			Mode: "lines",
			Line: &Line{Color: "white", Width: 3},
		},
		pointTrace("Start", s.Trajectory[0], &Marker{Size: 6, Color: "green"}),
		pointTrace("End", s.Trajectory[len(s.Trajectory)-1], &Marker{Size: 6, Color: "red"}),
	)

	// Animated traces, initialized to the first frame.
	first := s.Frames[0]
	fig.Data = append(fig.Data,
		pointTrace(catalog.SpacecraftName, first.Position, &Marker{Size: 8, Color: catalog.SpacecraftColor, Symbol: "diamond"}),
		traceLine(first),
	)

	markerIdx, traceIdx := animatedIndices(s)
	for _, f := range s.Frames {
		fig.Frames = append(fig.Frames, Frame{
			Name: fmt.Sprintf("%d", f.Index),
			Data: []Trace{
				pointTrace(catalog.SpacecraftName, f.Position, &Marker{Size: 8, Color: catalog.SpacecraftColor, Symbol: "diamond"}),
				traceLine(f),
			},
			Traces: []int{markerIdx, traceIdx},
			Layout: &Layout{Title: &Title{Text: title + "<br>" + f.Label()}},
		})
	}

	fig.Layout = buildLayout(s, title)
	return fig
}

func buildLayout(s *scene.Scene, title string) Layout {
	axis := func(label string) Axis {
		return Axis{
			Title:     &Title{Text: label},
			BGColor:   "black",
			GridColor: "gray",
		}
	}

	steps := make([]Step, len(s.Frames))
	for i, f := range s.Frames {
		steps[i] = Step{
			Label:  fmt.Sprintf("%d", f.Index),
			Method: "animate",
			Args:   []any{[]any{fmt.Sprintf("%d", f.Index)}, frameOpts(frameMillis, true)},
		}
	}

	return Layout{
		Title: &Title{Text: title + "<br>" + s.Frames[0].Label()},
		Scene: &SceneLayout{
			XAxis:      axis("X (km)"),
			YAxis:      axis("Y (km)"),
			ZAxis:      axis("Z (km)"),
			AspectMode: "data",
			BGColor:    "black",
		},
		PaperColor: "black",
		Font:       &Font{Color: "white"},
		ShowLegend: boolPtr(true),
		Legend:     &Legend{X: 0.02, Y: 0.98},
		UpdateMenus: []UpdateMenu{{
			Type:    "buttons",
			X:       0.1,
			Y:       0.1,
			XAnchor: "left",
			Buttons: []Button{
				{
					Label:  "Play",
					Method: "animate",
					Args:   []any{nil, playOpts()},
				},
				{
					Label:  "Pause",
					Method: "animate",
					Args:   []any{[]any{nil}, frameOpts(0, false)},
				},
			},
		}},
		Sliders: []Slider{{
			X:            0.1,
			Y:            0,
			Len:          0.9,
			Pad:          &Pad{B: 10, T: 50},
			CurrentValue: &CurrentValue{Prefix: "Frame: ", Visible: true, XAnchor: "right"},
			Steps:        steps,
		}},
	}
}

func frameOpts(durationMillis int, redraw bool) map[string]any {
	return map[string]any{
		"mode":       "immediate",
		"frame":      map[string]any{"duration": durationMillis, "redraw": redraw},
		"transition": map[string]any{"duration": 0},
	}
}

func playOpts() map[string]any {
	opts := frameOpts(frameMillis, true)
	opts["fromcurrent"] = true
	return opts
}

func pointTrace(name string, p geom.Vec3, m *Marker) Trace {
	return Trace{
		Type: "scatter3d",
		Name: name,
		X:    []float64{p.X}, Y: []float64{p.Y}, Z: []float64{p.Z},
		Mode:   "markers",
		Marker: m,
	}
}

func traceLine(f scene.Frame) Trace {
	xs, ys, zs := splitCoords(f.Trace)
	return Trace{
		Type: "scatter3d",
		Name: "Flown path",
		X:    xs, Y: ys, Z: zs,
		Mode: "lines",
		Line: &Line{Color: catalog.SpacecraftColor, Width: 5},
	}
}

func splitCoords(points []geom.Vec3) (xs, ys, zs []float64) {
	xs = make([]float64, len(points))
	ys = make([]float64, len(points))
	zs = make([]float64, len(points))
	for i, p := range points {
		xs[i], ys[i], zs[i] = p.X, p.Y, p.Z
	}
	return xs, ys, zs
}

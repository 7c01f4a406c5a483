// Package export writes static SVG snapshots of the flyby geometry, either
// as a vector drawing of a scene frame or as a rasterised preview canvas.
package export

import (
	"fmt"
	"os"
	"strings"

	"github.com/mgeist/flyby/internal/catalog"
	"github.com/mgeist/flyby/internal/geom"
	"github.com/mgeist/flyby/internal/scene"
	"github.com/mgeist/flyby/internal/viz"
)

const background = "#0a0a1a"

// SceneSVG renders one frame of the scene as a vector drawing: body disks in
// catalog colors, the flown path up to the frame and a marker for the
// spacecraft. Width and height are output pixels.
func SceneSVG(s *scene.Scene, frame, width, height int) (string, error) {
	if s == nil || len(s.Frames) == 0 {
		return "", fmt.Errorf("export: empty scene")
	}
	if frame < 0 || frame >= len(s.Frames) {
		return "", fmt.Errorf("export: frame %d out of range [0,%d)", frame, len(s.Frames))
	}

	cam := viz.NewCamera()
	cam.Aspect = 1 // square SVG pixels
	cam.Fit(s.Trajectory)
	// A canvas sized so subpixels map 1:1 onto SVG pixels.
	cv := viz.NewCanvas(width/2, height/4)

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, background)

	fmt.Fprint(&sb, `<path fill="none" stroke="#555" stroke-width="1" stroke-dasharray="4 3" d="`)
	writePath(&sb, cam, cv, s.Trajectory)
	fmt.Fprintln(&sb, `"/>`)

	for _, sp := range s.Spheres {
		x, y := cam.Project(sp.Center, cv)
		r := cam.ProjectRadius(sp.Radius, cv)
		if r < 2 {
			r = 2
		}
		fmt.Fprintf(&sb, "<circle cx=\"%d\" cy=\"%d\" r=\"%d\" fill=\"%s\"/>\n", x, y, r, sp.Color)
		if sp.Central {
			fmt.Fprintf(&sb, "<text x=\"%d\" y=\"%d\" fill=\"#ccc\" font-size=\"12\" font-family=\"monospace\">%s</text>\n",
				x+r+4, y, sp.Name)
		}
	}

	f := s.Frames[frame]
	fmt.Fprintf(&sb, `<path fill="none" stroke="%s" stroke-width="2" d="`, catalog.SpacecraftColor)
	writePath(&sb, cam, cv, f.Trace)
	fmt.Fprintln(&sb, `"/>`)

	x, y := cam.Project(f.Position, cv)
	fmt.Fprintf(&sb, "<circle cx=\"%d\" cy=\"%d\" r=\"4\" fill=\"%s\" stroke=\"#fff\"/>\n", x, y, catalog.SpacecraftColor)
	fmt.Fprintf(&sb, "<text x=\"8\" y=\"%d\" fill=\"#ccc\" font-size=\"12\" font-family=\"monospace\">%s | %s</text>\n",
		height-8, catalog.SpacecraftName, f.Label())

	fmt.Fprint(&sb, "</svg>\n")
	return sb.String(), nil
}

func writePath(sb *strings.Builder, cam *viz.Camera, cv *viz.Canvas, pts []geom.Vec3) {
	for i, p := range pts {
		x, y := cam.Project(p, cv)
		if i == 0 {
			fmt.Fprintf(sb, "M%d,%d", x, y)
		} else {
			fmt.Fprintf(sb, " L%d,%d", x, y)
		}
	}
}

// WriteSceneSVG renders a frame and writes it to path.
func WriteSceneSVG(path string, s *scene.Scene, frame, width, height int) error {
	doc, err := SceneSVG(s, frame, width, height)
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(doc), 0o644)
}

// CanvasSVG converts a Braille preview canvas to SVG dots, for saving what
// the terminal scrubber shows.
func CanvasSVG(cv *viz.Canvas, scale float64) string {
	if cv == nil {
		return ""
	}
	width := float64(cv.Width) * scale * 2
	height := float64(cv.Height) * scale * 4

	dotBits := [4][2]int{
		{0x01, 0x08},
		{0x02, 0x10},
		{0x04, 0x20},
		{0x40, 0x80},
	}
	dotRadius := scale * 0.4

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
<g fill="#9fa8da">
`, width, height, width, height, background)

	for row := 0; row < cv.Height; row++ {
		for col := 0; col < cv.Width; col++ {
			pattern := int(cv.Cell(col, row) - 0x2800)
			if pattern <= 0 {
				continue
			}
			baseX := float64(col) * scale * 2
			baseY := float64(row) * scale * 4
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&dotBits[dy][dx] != 0 {
						fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\"/>\n",
							baseX+float64(dx)*scale+scale/2,
							baseY+float64(dy)*scale+scale/2,
							dotRadius)
					}
				}
			}
		}
	}

	sb.WriteString("</g>\n</svg>\n")
	return sb.String()
}

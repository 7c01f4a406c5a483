// Package scene assembles the renderable parts of the flyby animation from
// resolved coordinates: one sphere per body, the full trajectory polyline and
// one immutable frame per timestamp. Assembly is pure; it never touches the
// network or the kernel files, which keeps it testable on synthetic data.
package scene

import (
	"fmt"
	"math"
	"time"

	"github.com/mgeist/flyby/internal/catalog"
	"github.com/mgeist/flyby/internal/geom"
)

// Mesh resolution for body spheres, matching the readable-density grid the
// figure needs without bloating the output document.
const (
	meshLongitudes = 36
	meshLatitudes  = 18
)

// Sphere is one static body in the scene.
type Sphere struct {
	Name    string
	Color   string
	Center  geom.Vec3
	Radius  float64
	Central bool
	X, Y, Z [][]float64 // parametric mesh grid
}

// Frame is one animation step: the spacecraft position at a timestamp and
// the trajectory trace up to it. Frames are built once and never mutated.
type Frame struct {
	Index    int
	Time     time.Time
	Position geom.Vec3
	Trace    []geom.Vec3 // prefix of the full trajectory, inclusive
	Range    float64     // km to the central body
}

// Label returns the frame caption used by the renderer and the preview.
func (f Frame) Label() string {
	return fmt.Sprintf("%s | %.0f km", f.Time.UTC().Format("2006-01-02 15:04 UTC"), f.Range)
}

// Scene is the fully assembled animation input.
type Scene struct {
	Spheres    []Sphere // central body first, then satellites in catalog order
	Trajectory []geom.Vec3
	Frames     []Frame
	Closest    int // frame index of closest approach
}

// RadiusFunc resolves a body's mean radius by NAIF id; ok=false falls back
// to the catalog value. The ephem context's MeanRadius satisfies it.
type RadiusFunc func(naif int) (float64, bool)

// Assemble builds the scene from parallel timestamp and position slices.
// Frame order equals timestamp order and each trace is a prefix of the next.
func Assemble(times []time.Time, traj []geom.Vec3, radius RadiusFunc) (*Scene, error) {
	if len(times) == 0 {
		return nil, fmt.Errorf("scene: no timestamps")
	}
	if len(times) != len(traj) {
		return nil, fmt.Errorf("scene: %d timestamps but %d positions", len(times), len(traj))
	}
	if radius == nil {
		radius = func(int) (float64, bool) { return 0, false }
	}

	s := &Scene{Trajectory: traj}

	s.Spheres = append(s.Spheres, newSphere(catalog.Neptune, radius))
	for _, sat := range catalog.Satellites {
		s.Spheres = append(s.Spheres, newSphere(sat, radius))
	}

	s.Frames = make([]Frame, len(times))
	minRange := math.Inf(1)
	for i, t := range times {
		r := traj[i].Norm()
		s.Frames[i] = Frame{
			Index:    i,
			Time:     t,
			Position: traj[i],
			Trace:    traj[: i+1 : i+1],
			Range:    r,
		}
		if r < minRange {
			minRange = r
			s.Closest = i
		}
	}
	return s, nil
}

// ClosestApproach returns the frame of minimum range to the central body.
func (s *Scene) ClosestApproach() Frame { return s.Frames[s.Closest] }

// Ranges returns the per-frame range to the central body, in frame order.
func (s *Scene) Ranges() []float64 {
	out := make([]float64, len(s.Frames))
	for i, f := range s.Frames {
		out[i] = f.Range
	}
	return out
}

func newSphere(b catalog.Body, radius RadiusFunc) Sphere {
	r := b.Radius
	if pck, ok := radius(b.NAIF); ok {
		r = pck
	}
	x, y, z := SphereMesh(b.Offset, r)
	return Sphere{
		Name:    b.Name,
		Color:   b.Color,
		Center:  b.Offset,
		Radius:  r,
		Central: b.Central(),
		X:       x, Y: y, Z: z,
	}
}

// SphereMesh builds a parametric sphere grid centered at c with radius r.
func SphereMesh(c geom.Vec3, r float64) (x, y, z [][]float64) {
	x = make([][]float64, meshLongitudes+1)
	y = make([][]float64, meshLongitudes+1)
	z = make([][]float64, meshLongitudes+1)
	for i := 0; i <= meshLongitudes; i++ {
		theta := 2 * math.Pi * float64(i) / meshLongitudes
		x[i] = make([]float64, meshLatitudes+1)
		y[i] = make([]float64, meshLatitudes+1)
		z[i] = make([]float64, meshLatitudes+1)
		for j := 0; j <= meshLatitudes; j++ {
			phi := math.Pi * float64(j) / meshLatitudes
			x[i][j] = c.X + r*math.Cos(theta)*math.Sin(phi)
			y[i][j] = c.Y + r*math.Sin(theta)*math.Sin(phi)
			z[i][j] = c.Z + r*math.Cos(phi)
		}
	}
	return x, y, z
}

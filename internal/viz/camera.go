package viz

import (
	"math"

	"github.com/mgeist/flyby/internal/geom"
)

// Camera projects planet-centered kilometre coordinates onto canvas
// subpixels: yaw/pitch rotation, orthographic projection, then an autofit
// scale chosen from the scene extent so the whole trajectory stays in view.
type Camera struct {
	Yaw, Pitch float64
	Zoom       float64
	// Aspect stretches the horizontal axis; Braille dots are about twice
	// as tall as wide, square-pixel targets want 1.
	Aspect float64
	extent float64
}

func NewCamera() *Camera {
	return &Camera{Yaw: 0.6, Pitch: 0.4, Zoom: 1, Aspect: 2}
}

// Fit picks the reference extent from a point cloud. Call once with the
// trajectory before projecting; Zoom scales around it afterwards.
func (c *Camera) Fit(points []geom.Vec3) {
	max := 1.0
	for _, p := range points {
		if r := p.Norm(); r > max {
			max = r
		}
	}
	c.extent = max
}

// rotate applies yaw about Z then pitch about X.
func (c *Camera) rotate(p geom.Vec3) geom.Vec3 {
	sy, cy := math.Sin(c.Yaw), math.Cos(c.Yaw)
	sp, cp := math.Sin(c.Pitch), math.Cos(c.Pitch)
	x := p.X*cy - p.Y*sy
	y := p.X*sy + p.Y*cy
	y, z := y*cp-p.Z*sp, y*sp+p.Z*cp
	return geom.Vec3{X: x, Y: y, Z: z}
}

// scale is subpixels per kilometre, fit so an extent-length vector stays in
// view on both axes after the aspect stretch.
func (c *Camera) scale(cv *Canvas) float64 {
	half := math.Min(float64(cv.SubHeight())/2, float64(cv.SubWidth())/(2*c.Aspect))
	return c.Zoom * half * 0.9 / c.extent
}

// Project maps a point to subpixel coordinates on the given canvas. The Y
// axis is flipped so +Z in world space points up on screen.
func (c *Camera) Project(p geom.Vec3, cv *Canvas) (int, int) {
	r := c.rotate(p)
	s := c.scale(cv)
	x := float64(cv.SubWidth())/2 + r.X*s*c.Aspect
	y := float64(cv.SubHeight())/2 - r.Z*s
	return int(math.Round(x)), int(math.Round(y))
}

// ProjectRadius converts a kilometre radius to subpixels at the current zoom.
func (c *Camera) ProjectRadius(km float64, cv *Canvas) int {
	return int(math.Round(km * c.scale(cv)))
}

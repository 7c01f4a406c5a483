// Package catalog holds the fixed body table for the Neptune encounter scene:
// the central body and the eight satellites known at the time of the flyby,
// with the display constants the scene needs (radius, color, layout offset).
package catalog

import (
	"math"

	"github.com/mgeist/flyby/internal/geom"
)

// NAIF integer codes for the bodies in the scene.
const (
	NeptuneID  = 899
	TritonID   = 801
	NereidID   = 802
	NaiadID    = 803
	ThalassaID = 804
	DespinaID  = 805
	GalateaID  = 806
	LarissaID  = 807
	ProteusID  = 808
)

// Body is a celestial body rendered as a sphere. Satellites carry a fixed
// illustrative offset from the central body; they are not re-resolved per
// frame. Radius is a fallback, the PCK value wins when the kernel has one.
type Body struct {
	Name   string
	NAIF   int
	Radius float64 // mean radius, km
	Color  string
	Offset geom.Vec3 // km from the central body; zero for the central body
}

// Central reports whether the body sits at the scene origin.
func (b Body) Central() bool { return b.Offset == (geom.Vec3{}) && b.NAIF == NeptuneID }

// Neptune is the central body. The radius matches the IAU mean value used by
// pck00010.tpc.
var Neptune = Body{
	Name:   "Neptune",
	NAIF:   NeptuneID,
	Radius: 24764,
	Color:  "#3949ab",
}

// Satellites lists the eight moons in increasing orbital radius. Each sits at
// its true semi-major axis, spread at 45 degree bearings in the equatorial
// plane so the scene stays readable; Triton is dropped below the plane as a
// nod to its retrograde, inclined orbit.
var Satellites = []Body{
	{Name: "Naiad", NAIF: NaiadID, Radius: 33, Color: "#48dbfb", Offset: offset(48227, 0, 0)},
	{Name: "Thalassa", NAIF: ThalassaID, Radius: 41, Color: "#ff9ff3", Offset: offset(50074, 45, 0)},
	{Name: "Despina", NAIF: DespinaID, Radius: 75, Color: "#54a0ff", Offset: offset(52526, 90, 0)},
	{Name: "Galatea", NAIF: GalateaID, Radius: 88, Color: "#5f27cd", Offset: offset(61953, 135, 0)},
	{Name: "Larissa", NAIF: LarissaID, Radius: 97, Color: "#00d2d3", Offset: offset(73548, 180, 0)},
	{Name: "Proteus", NAIF: ProteusID, Radius: 210, Color: "#ff9f43", Offset: offset(117646, 225, 0)},
	{Name: "Triton", NAIF: TritonID, Radius: 1353, Color: "#ff6b6b", Offset: offset(354759, 270, -120000)},
	{Name: "Nereid", NAIF: NereidID, Radius: 170, Color: "#feca57", Offset: offset(5513818, 315, 0)},
}

// Spacecraft display constants.
const (
	SpacecraftName  = "Voyager 2"
	SpacecraftColor = "#ffd32a"
)

func offset(a, bearingDeg, z float64) geom.Vec3 {
	rad := bearingDeg * math.Pi / 180
	return geom.Vec3{X: a * math.Cos(rad), Y: a * math.Sin(rad), Z: z}
}

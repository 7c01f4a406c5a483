// Package ephem resolves positions from the provisioned reference kernels:
// Voyager 2 relative to the Neptune barycenter from a Horizons vector table,
// body radii from the PCK, and Earth-Neptune geometry from the JPL DE
// ephemeris. All resolution errors are fatal to the run and propagate.
package ephem

import (
	"fmt"
	"time"

	"github.com/mgeist/flyby/internal/geom"
	"github.com/mgeist/flyby/internal/kernel"
	"github.com/mshafiee/jpleph"
)

// c in km/s, for one-way light time.
const lightSpeed = 299792.458

// Context is the loaded ephemeris working set. Load it once, resolve any
// number of timestamps, then Close it.
type Context struct {
	ls  *LeapSeconds
	pck *PCK
	de  *jpleph.Ephemeris
	sc  *VectorTable
}

// Load opens the four kernels provisioned under dir. Every file must be
// present and parseable; a missing or truncated kernel fails the load.
func Load(dir string) (*Context, error) {
	st := kernel.New(dir)

	ls, err := LoadLeapSeconds(st.Path(kernel.LeapSecondsFile))
	if err != nil {
		return nil, err
	}
	pck, err := LoadPCK(st.Path(kernel.PCKFile))
	if err != nil {
		return nil, err
	}
	sc, err := LoadVectorTable(st.Path(kernel.SpacecraftFile))
	if err != nil {
		return nil, err
	}
	de, err := jpleph.NewEphemeris(st.Path(kernel.PlanetaryFile), false)
	if err != nil {
		return nil, fmt.Errorf("loading planetary ephemeris: %w", err)
	}

	return &Context{ls: ls, pck: pck, de: de, sc: sc}, nil
}

// Close releases the planetary ephemeris file handle.
func (c *Context) Close() error {
	if c.de != nil {
		return c.de.Close()
	}
	return nil
}

// Spacecraft returns the Voyager 2 position (km) relative to the Neptune
// barycenter at a UTC instant.
func (c *Context) Spacecraft(t time.Time) (geom.Vec3, error) {
	pos, err := c.sc.At(c.ls.JD(t))
	if err != nil {
		return geom.Vec3{}, fmt.Errorf("resolving spacecraft at %s: %w", t.UTC().Format(time.RFC3339), err)
	}
	return pos, nil
}

// Trajectory resolves the spacecraft position at every timestamp, in order.
func (c *Context) Trajectory(times []time.Time) ([]geom.Vec3, error) {
	positions := make([]geom.Vec3, len(times))
	for i, t := range times {
		pos, err := c.Spacecraft(t)
		if err != nil {
			return nil, err
		}
		positions[i] = pos
	}
	return positions, nil
}

// Span returns the UTC coverage of the spacecraft vector table, truncated to
// whole seconds.
func (c *Context) Span() (start, end time.Time) {
	first, last := c.sc.Span()
	return jdToUTC(first, c.ls), jdToUTC(last, c.ls)
}

// MeanRadius returns the PCK mean radius (km) for a NAIF body id.
func (c *Context) MeanRadius(naif int) (float64, bool) {
	return c.pck.MeanRadius(naif)
}

// Pole returns the PCK pole orientation (J2000 RA/Dec, degrees) for a body.
func (c *Context) Pole(naif int) (ra, dec float64, ok bool) {
	return c.pck.Pole(naif)
}

// EarthRange returns the Earth-Neptune distance in km at a UTC instant,
// resolved from the DE ephemeris.
func (c *Context) EarthRange(t time.Time) (float64, error) {
	jd := c.ls.JD(t)
	if start, end := c.de.GetEphemerisDouble(jpleph.EphemerisStartJD), c.de.GetEphemerisDouble(jpleph.EphemerisEndJD); jd < start || jd > end {
		return 0, fmt.Errorf("%w: JD %.6f not in DE span [%.1f, %.1f]", ErrOutsideSpan, jd, start, end)
	}
	pos, _, err := c.de.CalculatePV(jd, jpleph.Neptune, jpleph.CenterEarth, false)
	if err != nil {
		return 0, fmt.Errorf("resolving Earth-Neptune range: %w", err)
	}
	au := c.de.GetEphemerisDouble(jpleph.AUinKM)
	return geom.Vec3{X: pos.X, Y: pos.Y, Z: pos.Z}.Norm() * au, nil
}

// LightTime returns the one-way Earth-Neptune light time at a UTC instant.
func (c *Context) LightTime(t time.Time) (time.Duration, error) {
	km, err := c.EarthRange(t)
	if err != nil {
		return 0, err
	}
	return time.Duration(km / lightSpeed * float64(time.Second)), nil
}

func jdToUTC(jd float64, ls *LeapSeconds) time.Time {
	// Invert ET->UTC using the ΔAT in effect at the rough UTC instant; a
	// one-second table-boundary error is irrelevant at animation timescales.
	et := (jd - j2000JD) * 86400.0
	rough := J2000.Add(time.Duration(et * float64(time.Second)))
	utc := rough.Add(-time.Duration((ls.DeltaAT(rough) + ls.deltaTA) * float64(time.Second)))
	return utc.Truncate(time.Second)
}

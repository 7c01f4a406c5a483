package ephem

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/mgeist/flyby/internal/geom"
)

// ErrOutsideSpan is returned when a requested timestamp falls outside the
// loaded ephemeris coverage. It is fatal to the run.
var ErrOutsideSpan = errors.New("timestamp outside ephemeris span")

// StateRecord is one tabulated spacecraft state: TDB Julian date, position
// (km) and velocity (km/s) relative to the center body in the J2000 frame.
type StateRecord struct {
	JD  float64
	Pos geom.Vec3
	Vel geom.Vec3
}

// VectorTable is a parsed Horizons VECTORS table (VEC_TABLE=2, CSV_FORMAT=YES).
// Records are kept sorted by Julian date and interpolated with a cubic Hermite
// using the tabulated velocities.
type VectorTable struct {
	recs []StateRecord
}

// LoadVectorTable reads a Horizons vector table from disk.
func LoadVectorTable(path string) (*VectorTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening vector table: %w", err)
	}
	defer f.Close()
	vt, err := ParseVectorTable(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return vt, nil
}

// ParseVectorTable parses the $$SOE..$$EOE block of a Horizons text response.
// Each record line is "JDTDB, calendar date, X, Y, Z, VX, VY, VZ,".
func ParseVectorTable(r io.Reader) (*VectorTable, error) {
	vt := &VectorTable{}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	inBlock := false
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		switch line {
		case "$$SOE":
			inBlock = true
			continue
		case "$$EOE":
			inBlock = false
			continue
		}
		if !inBlock || line == "" {
			continue
		}

		rec, err := parseVectorRecord(line)
		if err != nil {
			return nil, err
		}
		vt.recs = append(vt.recs, rec)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(vt.recs) < 2 {
		return nil, fmt.Errorf("vector table: need at least 2 records, got %d", len(vt.recs))
	}
	sort.Slice(vt.recs, func(i, j int) bool { return vt.recs[i].JD < vt.recs[j].JD })
	return vt, nil
}

func parseVectorRecord(line string) (StateRecord, error) {
	fields := strings.Split(strings.TrimSuffix(line, ","), ",")
	if len(fields) < 8 {
		return StateRecord{}, fmt.Errorf("vector table: short record %q", line)
	}
	nums := make([]float64, 0, 7)
	for i, f := range fields {
		if i == 1 {
			continue // calendar date column
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return StateRecord{}, fmt.Errorf("vector table: bad field %q in %q", f, line)
		}
		nums = append(nums, v)
		if len(nums) == 7 {
			break
		}
	}
	if len(nums) != 7 {
		return StateRecord{}, fmt.Errorf("vector table: short record %q", line)
	}
	return StateRecord{
		JD:  nums[0],
		Pos: geom.Vec3{X: nums[1], Y: nums[2], Z: nums[3]},
		Vel: geom.Vec3{X: nums[4], Y: nums[5], Z: nums[6]},
	}, nil
}

// Len returns the number of tabulated records.
func (vt *VectorTable) Len() int { return len(vt.recs) }

// Span returns the covered Julian date range.
func (vt *VectorTable) Span() (startJD, endJD float64) {
	return vt.recs[0].JD, vt.recs[len(vt.recs)-1].JD
}

// At interpolates the position at a TDB Julian date. Exact at table nodes,
// cubic Hermite between them; ErrOutsideSpan outside the covered range.
func (vt *VectorTable) At(jd float64) (geom.Vec3, error) {
	first, last := vt.Span()
	if jd < first || jd > last {
		return geom.Vec3{}, fmt.Errorf("%w: JD %.6f not in [%.6f, %.6f]", ErrOutsideSpan, jd, first, last)
	}

	// Index of the first record at or after jd.
	i := sort.Search(len(vt.recs), func(k int) bool { return vt.recs[k].JD >= jd })
	if vt.recs[i].JD == jd {
		return vt.recs[i].Pos, nil
	}

	a, b := vt.recs[i-1], vt.recs[i]
	h := (b.JD - a.JD) * 86400.0 // interval in seconds, velocities are km/s
	s := (jd - a.JD) / (b.JD - a.JD)

	h00 := 2*s*s*s - 3*s*s + 1
	h10 := s*s*s - 2*s*s + s
	h01 := -2*s*s*s + 3*s*s
	h11 := s*s*s - s*s

	p := a.Pos.Scale(h00).
		Add(a.Vel.Scale(h10 * h)).
		Add(b.Pos.Scale(h01)).
		Add(b.Vel.Scale(h11 * h))
	return p, nil
}

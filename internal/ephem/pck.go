package ephem

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// PCK holds the body constants of a NAIF text PCK kernel (pck00010.tpc):
// triaxial radii and pole orientation per NAIF id. Only the assignments
// inside \begindata blocks are read.
type PCK struct {
	values map[string][]float64
}

// LoadPCK reads a text PCK kernel from disk.
func LoadPCK(path string) (*PCK, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening PCK kernel: %w", err)
	}
	defer f.Close()
	p, err := ParsePCK(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// ParsePCK parses the data sections of a text PCK kernel.
func ParsePCK(r io.Reader) (*PCK, error) {
	p := &PCK{values: make(map[string][]float64)}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	inData := false
	var name string    // assignment being accumulated, "" when idle
	var pending string // value text accumulated so far

	flush := func() {
		if name == "" {
			return
		}
		body := strings.TrimSpace(pending)
		body = strings.TrimPrefix(body, "(")
		body = strings.TrimSuffix(body, ")")
		var vals []float64
		for _, field := range strings.Fields(strings.ReplaceAll(body, ",", " ")) {
			v, err := parseKernelFloat(field)
			if err != nil {
				// Non-numeric assignment (frame names etc), skip it.
				name, pending = "", ""
				return
			}
			vals = append(vals, v)
		}
		if len(vals) > 0 {
			p.values[name] = vals
		}
		name, pending = "", ""
	}

	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		switch line {
		case `\begindata`:
			inData = true
			continue
		case `\begintext`:
			flush()
			inData = false
			continue
		}
		if !inData || line == "" {
			continue
		}

		if eq := strings.Index(line, "="); eq >= 0 && name == "" {
			name = strings.TrimSpace(line[:eq])
			pending = line[eq+1:]
		} else if name != "" {
			pending += " " + line
		}

		// An assignment ends when its parentheses balance (or it never had any).
		if name != "" && strings.Count(pending, "(") == strings.Count(pending, ")") {
			flush()
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	flush()
	if len(p.values) == 0 {
		return nil, fmt.Errorf("PCK kernel: no data assignments found")
	}
	return p, nil
}

// Radii returns the triaxial radii (km) for a NAIF body id.
func (p *PCK) Radii(naif int) ([3]float64, bool) {
	vals, ok := p.values[fmt.Sprintf("BODY%d_RADII", naif)]
	if !ok || len(vals) < 3 {
		return [3]float64{}, false
	}
	return [3]float64{vals[0], vals[1], vals[2]}, true
}

// MeanRadius returns the mean of the triaxial radii for a NAIF body id.
func (p *PCK) MeanRadius(naif int) (float64, bool) {
	r, ok := p.Radii(naif)
	if !ok {
		return 0, false
	}
	return (r[0] + r[1] + r[2]) / 3, true
}

// Pole returns the J2000 right ascension and declination (degrees) of the
// body's north pole, constant terms only.
func (p *PCK) Pole(naif int) (ra, dec float64, ok bool) {
	raVals, okRA := p.values[fmt.Sprintf("BODY%d_POLE_RA", naif)]
	decVals, okDec := p.values[fmt.Sprintf("BODY%d_POLE_DEC", naif)]
	if !okRA || !okDec || len(raVals) == 0 || len(decVals) == 0 {
		return 0, 0, false
	}
	return raVals[0], decVals[0], true
}

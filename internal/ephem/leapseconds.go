package ephem

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// LeapSeconds converts UTC instants to ephemeris time using the ΔAT table of
// a NAIF leap-second kernel (naif0012.tls). The periodic TDB-TT term is
// microseconds and ignored; the kernels downstream do not resolve it either.
type LeapSeconds struct {
	deltaTA float64 // TT - TAI, seconds
	entries []leapEntry
}

type leapEntry struct {
	at   float64 // TAI - UTC, seconds
	from time.Time
}

// J2000 is the ephemeris time epoch, 2000-01-01 12:00:00 TT expressed in UTC
// coordinates. Offsets from it plus ΔAT+ΔT_A give seconds past J2000 TDB.
var J2000 = time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC)

const j2000JD = 2451545.0

// LoadLeapSeconds reads a leap-second kernel from disk.
func LoadLeapSeconds(path string) (*LeapSeconds, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening leap-second kernel: %w", err)
	}
	defer f.Close()
	ls, err := ParseLeapSeconds(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ls, nil
}

// ParseLeapSeconds parses the DELTET assignments of a text leap-second kernel.
func ParseLeapSeconds(r io.Reader) (*LeapSeconds, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	text := string(raw)

	ls := &LeapSeconds{}

	if v, ok := scalarAfter(text, "DELTET/DELTA_T_A"); ok {
		ls.deltaTA = v
	} else {
		return nil, fmt.Errorf("leap-second kernel: DELTET/DELTA_T_A not found")
	}

	body, ok := parenAfter(text, "DELTET/DELTA_AT")
	if !ok {
		return nil, fmt.Errorf("leap-second kernel: DELTET/DELTA_AT not found")
	}
	fields := strings.FieldsFunc(body, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	if len(fields)%2 != 0 || len(fields) == 0 {
		return nil, fmt.Errorf("leap-second kernel: malformed DELTA_AT table")
	}
	for i := 0; i < len(fields); i += 2 {
		at, err := parseKernelFloat(fields[i])
		if err != nil {
			return nil, fmt.Errorf("leap-second kernel: bad ΔAT value %q", fields[i])
		}
		from, err := parseKernelDate(fields[i+1])
		if err != nil {
			return nil, err
		}
		ls.entries = append(ls.entries, leapEntry{at: at, from: from})
	}
	return ls, nil
}

// DeltaAT returns TAI-UTC in effect at t. Before the first table entry the
// first value applies; the table is in effect-date order in the kernel.
func (ls *LeapSeconds) DeltaAT(t time.Time) float64 {
	at := ls.entries[0].at
	for _, e := range ls.entries {
		if t.Before(e.from) {
			break
		}
		at = e.at
	}
	return at
}

// ET returns seconds past J2000 TDB for a UTC instant.
func (ls *LeapSeconds) ET(t time.Time) float64 {
	return t.Sub(J2000).Seconds() + ls.DeltaAT(t) + ls.deltaTA
}

// JD returns the TDB Julian date for a UTC instant.
func (ls *LeapSeconds) JD(t time.Time) float64 {
	return j2000JD + ls.ET(t)/86400.0
}

// scalarAfter finds `name = value` and returns the value.
func scalarAfter(text, name string) (float64, bool) {
	rest, ok := afterAssign(text, name)
	if !ok {
		return 0, false
	}
	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return 0, false
	}
	v, err := parseKernelFloat(fields[0])
	if err != nil {
		return 0, false
	}
	return v, true
}

// parenAfter finds `name = ( ... )` and returns the parenthesized body.
func parenAfter(text, name string) (string, bool) {
	rest, ok := afterAssign(text, name)
	if !ok {
		return "", false
	}
	open := strings.IndexByte(rest, '(')
	if open < 0 {
		return "", false
	}
	closeIdx := strings.IndexByte(rest[open:], ')')
	if closeIdx < 0 {
		return "", false
	}
	return rest[open+1 : open+closeIdx], true
}

func afterAssign(text, name string) (string, bool) {
	idx := strings.Index(text, name)
	if idx < 0 {
		return "", false
	}
	rest := text[idx+len(name):]
	eq := strings.IndexByte(rest, '=')
	if eq < 0 {
		return "", false
	}
	return rest[eq+1:], true
}

// parseKernelFloat handles Fortran-style D exponents (1.657D-3).
func parseKernelFloat(s string) (float64, error) {
	s = strings.ReplaceAll(strings.ReplaceAll(s, "D", "E"), "d", "e")
	return strconv.ParseFloat(s, 64)
}

var kernelMonths = map[string]time.Month{
	"JAN": time.January, "FEB": time.February, "MAR": time.March,
	"APR": time.April, "MAY": time.May, "JUN": time.June,
	"JUL": time.July, "AUG": time.August, "SEP": time.September,
	"OCT": time.October, "NOV": time.November, "DEC": time.December,
}

// parseKernelDate parses the @1989-JAN-1 form used in DELTA_AT tables.
func parseKernelDate(s string) (time.Time, error) {
	s = strings.TrimPrefix(s, "@")
	parts := strings.Split(s, "-")
	if len(parts) != 3 {
		return time.Time{}, fmt.Errorf("leap-second kernel: bad date %q", s)
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return time.Time{}, fmt.Errorf("leap-second kernel: bad year in %q", s)
	}
	month, ok := kernelMonths[strings.ToUpper(parts[1])]
	if !ok {
		return time.Time{}, fmt.Errorf("leap-second kernel: bad month in %q", s)
	}
	day, err := strconv.Atoi(parts[2])
	if err != nil {
		return time.Time{}, fmt.Errorf("leap-second kernel: bad day in %q", s)
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC), nil
}

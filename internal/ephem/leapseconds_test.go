package ephem

import (
	"math"
	"strings"
	"testing"
	"time"
)

const sampleLSK = `KPL/LSK


\begindata

DELTET/DELTA_T_A       =   32.184
DELTET/K               =    1.657D-3
DELTET/EB              =    1.671D-2
DELTET/M               = (  6.239996   1.99096871D-7 )

DELTET/DELTA_AT        = ( 10,   @1972-JAN-1
                           23,   @1988-JAN-1
                           24,   @1989-JAN-1
                           25,   @1990-JAN-1
                           32,   @1999-JAN-1 )

\begintext
`

func parseSample(t *testing.T) *LeapSeconds {
	t.Helper()
	ls, err := ParseLeapSeconds(strings.NewReader(sampleLSK))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	return ls
}

func TestDeltaAT(t *testing.T) {
	ls := parseSample(t)

	cases := []struct {
		when time.Time
		want float64
	}{
		{time.Date(1989, 8, 25, 0, 0, 0, 0, time.UTC), 24},
		{time.Date(1988, 6, 1, 0, 0, 0, 0, time.UTC), 23},
		{time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC), 25},
		{time.Date(1971, 1, 1, 0, 0, 0, 0, time.UTC), 10},
		{time.Date(2005, 1, 1, 0, 0, 0, 0, time.UTC), 32},
	}
	for _, c := range cases {
		if got := ls.DeltaAT(c.when); got != c.want {
			t.Errorf("DeltaAT(%s) = %f, want %f", c.when, got, c.want)
		}
	}
}

func TestETAtJ2000(t *testing.T) {
	ls := parseSample(t)

	// ET - UTC = ΔAT + 32.184 = 64.184 s at the J2000 epoch.
	et := ls.ET(time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC))
	if math.Abs(et-64.184) > 1e-9 {
		t.Errorf("ET at J2000 epoch = %f, want 64.184", et)
	}
}

func TestJDDuringEncounter(t *testing.T) {
	ls := parseSample(t)

	// 1989-08-24 00:00 UTC is JD 2447762.5 (UTC); TDB adds 56.184 s.
	jd := ls.JD(time.Date(1989, 8, 24, 0, 0, 0, 0, time.UTC))
	want := 2447762.5 + 56.184/86400.0
	if math.Abs(jd-want) > 1e-9 {
		t.Errorf("JD = %.9f, want %.9f", jd, want)
	}
}

func TestParseRejectsMissingTable(t *testing.T) {
	if _, err := ParseLeapSeconds(strings.NewReader("KPL/LSK\n\\begindata\nDELTET/DELTA_T_A = 32.184\n")); err == nil {
		t.Fatal("expected error for kernel without DELTA_AT table")
	}
}

package ephem

import (
	"testing"
	"time"
)

func TestTimelineThreeDaysHourly(t *testing.T) {
	start := time.Date(1989, 8, 24, 0, 0, 0, 0, time.UTC)
	end := start.Add(72 * time.Hour)

	times, err := Timeline(start, end, time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	if len(times) != 73 {
		t.Fatalf("expected 73 timestamps for 3 days at 1h, got %d", len(times))
	}
	if !times[0].Equal(start) || !times[72].Equal(end) {
		t.Error("timeline must include both endpoints")
	}
	for i := 1; i < len(times); i++ {
		if !times[i].After(times[i-1]) {
			t.Fatalf("timestamps not strictly increasing at %d", i)
		}
		if d := times[i].Sub(times[i-1]); d != time.Hour {
			t.Errorf("step %d is %v, want 1h", i, d)
		}
	}
}

func TestTimelineAppendsRaggedEnd(t *testing.T) {
	start := time.Date(1989, 8, 24, 0, 0, 0, 0, time.UTC)
	end := start.Add(10 * time.Hour)

	times, err := Timeline(start, end, 4*time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	// 0h, 4h, 8h, then the end itself.
	if len(times) != 4 {
		t.Fatalf("expected 4 timestamps, got %d", len(times))
	}
	if !times[3].Equal(end) {
		t.Errorf("last timestamp %v, want window end %v", times[3], end)
	}
}

func TestTimelineRejectsBadWindow(t *testing.T) {
	start := time.Date(1989, 8, 24, 0, 0, 0, 0, time.UTC)

	if _, err := Timeline(start, start, time.Hour); err == nil {
		t.Error("expected error for empty window")
	}
	if _, err := Timeline(start, start.Add(time.Hour), 0); err == nil {
		t.Error("expected error for zero step")
	}
	if _, err := Timeline(start.Add(time.Hour), start, time.Hour); err == nil {
		t.Error("expected error for reversed window")
	}
}

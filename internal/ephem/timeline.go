package ephem

import (
	"fmt"
	"time"
)

// Timeline returns the ordered, evenly spaced timestamps of the animation
// window, inclusive of both endpoints: start + i*step for every step that
// fits, with end appended when the last step does not land on it exactly.
// 3 days at 1 hour yields 73 timestamps.
func Timeline(start, end time.Time, step time.Duration) ([]time.Time, error) {
	if step <= 0 {
		return nil, fmt.Errorf("timeline: step must be positive, got %v", step)
	}
	if !end.After(start) {
		return nil, fmt.Errorf("timeline: window end %v not after start %v", end, start)
	}

	n := int(end.Sub(start)/step) + 1
	times := make([]time.Time, 0, n+1)
	for i := 0; i < n; i++ {
		times = append(times, start.Add(time.Duration(i)*step))
	}
	if last := times[len(times)-1]; last.Before(end) {
		times = append(times, end)
	}
	return times, nil
}

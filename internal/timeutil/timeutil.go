// Package timeutil provides utility functions for formatting durations.
package timeutil

import (
	"fmt"
	"math"
	"time"
)

const secondsInAMinute = 60

// Round rounds a time value in seconds, minutes, or hours to the nearest integer.
func Round(t float64) int {
	return int(math.Round(t))
}

// SecsToMinsAndSecs expresses a seconds value in minutes and seconds.
func SecsToMinsAndSecs(val int) (mins, secs int) {
	mins = val / secondsInAMinute
	secs = val % secondsInAMinute

	return
}

// Clock formats d as MM:SS, truncated to whole seconds. Minutes are not
// wrapped into hours. Negative durations format as 00:00.
func Clock(d time.Duration) string {
	if d < 0 {
		d = 0
	}

	mins, secs := SecsToMinsAndSecs(int(d / time.Second))

	return fmt.Sprintf("%02d:%02d", mins, secs)
}

// Human formats d for people, e.g. "1h 5m" or "25m 30s".
func Human(d time.Duration) string {
	d = d.Round(time.Second)

	h := int(d / time.Hour)
	m := int(d % time.Hour / time.Minute)
	s := int(d % time.Minute / time.Second)

	switch {
	case h > 0:
		return fmt.Sprintf("%dh %dm", h, m)
	case m > 0 && s > 0:
		return fmt.Sprintf("%dm %ds", m, s)
	case m > 0:
		return fmt.Sprintf("%dm", m)
	}

	return fmt.Sprintf("%ds", s)
}

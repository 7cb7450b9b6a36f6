package game

import (
	"fmt"
	"math"
	"time"
)

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// tiltOffset is the magnetic lag of the cursor marker for a pointer moving
// by (dx, dy) in one frame.
func tiltOffset(dx, dy float64) (float64, float64) {
	const (
		gainX = 1.2
		gainY = 0.5
		limit = 8
	)
	return clamp(dx*gainX, -limit, limit), clamp(dy*gainY, -limit, limit)
}

// formatDuration formats a duration as MM:SS
func formatDuration(d time.Duration) string {
	minutes := int(d.Minutes())
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

// formatMillis renders a frame cost with two decimals.
func formatMillis(d time.Duration) string {
	ms := float64(d) / float64(time.Millisecond)
	return fmt.Sprintf("%.2fms", math.Round(ms*100)/100)
}

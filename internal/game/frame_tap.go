package game

import "time"

// frameTap records the last N frame costs into a ring buffer so the HUD can
// show a smoothed figure. Only the game loop touches it.
type frameTap struct {
	buffer    []time.Duration
	nextIndex int
	filled    int
}

func newFrameTap(ringSize int) *frameTap {
	if ringSize <= 0 {
		ringSize = 1
	}
	return &frameTap{buffer: make([]time.Duration, ringSize)}
}

func (t *frameTap) record(d time.Duration) {
	t.buffer[t.nextIndex] = d
	t.nextIndex++
	if t.nextIndex >= len(t.buffer) {
		t.nextIndex = 0
	}
	if t.filled < len(t.buffer) {
		t.filled++
	}
}

// snapshot returns up to the last n frame costs, most recent last.
func (t *frameTap) snapshot(n int) []time.Duration {
	if n > t.filled {
		n = t.filled
	}
	out := make([]time.Duration, n)
	// Walk backwards from nextIndex - 1
	idx := t.nextIndex - 1
	for i := n - 1; i >= 0; i-- {
		if idx < 0 {
			idx = len(t.buffer) - 1
		}
		out[i] = t.buffer[idx]
		idx--
	}
	return out
}

// average is the mean over every recorded frame still in the ring.
func (t *frameTap) average() time.Duration {
	samples := t.snapshot(len(t.buffer))
	if len(samples) == 0 {
		return 0
	}
	var sum time.Duration
	for _, d := range samples {
		sum += d
	}
	return sum / time.Duration(len(samples))
}

package render

import (
	"math"
	"testing"

	"github.com/iburimskiy/particle-field/internal/particles"
)

func pair(d float64) []particles.Particle {
	return []particles.Particle{
		{X: 100, Y: 100, Size: 1, Hue: particles.Orange},
		{X: 100 + d, Y: 100, Size: 2, Z: 2, Hue: particles.DodgerBlue},
	}
}

func TestDrawDisks(t *testing.T) {
	rec := &Recorder{}
	r := NewProximity(DefaultProximityConfig())
	st := r.Draw(rec, pair(500))

	if st.Disks != 2 || len(rec.Disks) != 2 {
		t.Fatalf("disks = %d/%d, want 2", st.Disks, len(rec.Disks))
	}
	if got := rec.Disks[0]; got.R != 1 || got.Color.A != 85 || got.Color.R != particles.Orange.R {
		t.Errorf("first disk = %+v", got)
	}
	if got := rec.Disks[1]; got.R != 6 || got.Color.A != 255 || got.X != 600 {
		t.Errorf("second disk = %+v", got)
	}
}

func TestDrawConnectionThreshold(t *testing.T) {
	tests := []struct {
		d     float64
		lines int
	}{
		{0, 1},
		{60, 1},
		{119.999, 1},
		{120, 0},
		{120.001, 0},
		{400, 0},
	}
	r := NewProximity(DefaultProximityConfig())
	for _, tt := range tests {
		rec := &Recorder{}
		st := r.Draw(rec, pair(tt.d))
		if st.Lines != tt.lines || len(rec.Lines) != tt.lines {
			t.Errorf("d=%v: lines = %d/%d, want %d", tt.d, st.Lines, len(rec.Lines), tt.lines)
		}
	}
}

func TestDrawLineStyle(t *testing.T) {
	rec := &Recorder{}
	r := NewProximity(DefaultProximityConfig())
	r.Draw(rec, pair(60))
	if len(rec.Lines) != 1 {
		t.Fatalf("lines = %d, want 1", len(rec.Lines))
	}
	l := rec.Lines[0]
	if l.Width != 0.8 {
		t.Errorf("width = %v, want 0.8", l.Width)
	}
	if l.Color.R != 30 || l.Color.G != 144 || l.Color.B != 255 {
		t.Errorf("line hue = %v", l.Color)
	}
	// (1 - 60/120) * 0.3 = 0.15
	if want := uint8(math.Round(0.15 * 255)); l.Color.A != want {
		t.Errorf("line alpha = %d, want %d", l.Color.A, want)
	}
	if l.X1 != 100 || l.X2 != 160 {
		t.Errorf("endpoints = %v..%v", l.X1, l.X2)
	}
}

func TestLineAlphaDecreasing(t *testing.T) {
	r := NewProximity(DefaultProximityConfig())
	if got := r.LineAlpha(0); math.Abs(got-0.3) > 1e-12 {
		t.Fatalf("LineAlpha(0) = %v, want 0.3", got)
	}
	prev := r.LineAlpha(0)
	for d := 1.0; d < 120; d++ {
		a := r.LineAlpha(d)
		if a >= prev {
			t.Fatalf("LineAlpha(%v) = %v not below %v", d, a, prev)
		}
		prev = a
	}
	if got := r.LineAlpha(120); got != 0 {
		t.Fatalf("LineAlpha(120) = %v, want 0", got)
	}
}

func TestDrawAllPairs(t *testing.T) {
	ps := []particles.Particle{
		{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 0, Y: 10}, {X: 500, Y: 500},
	}
	rec := &Recorder{}
	st := NewProximity(DefaultProximityConfig()).Draw(rec, ps)
	// the three clustered particles form a triangle; the outlier joins none
	if st.Lines != 3 {
		t.Fatalf("lines = %d, want 3", st.Lines)
	}
}

func TestDrawEmpty(t *testing.T) {
	rec := &Recorder{}
	st := NewProximity(DefaultProximityConfig()).Draw(rec, nil)
	if st != (Stats{}) {
		t.Fatalf("stats = %+v, want zero", st)
	}
}

func TestRecorderClear(t *testing.T) {
	rec := &Recorder{}
	NewProximity(DefaultProximityConfig()).Draw(rec, pair(10))
	rec.Clear()
	if rec.Clears != 1 || len(rec.Disks) != 0 || len(rec.Lines) != 0 {
		t.Fatalf("recorder after clear = %+v", rec)
	}
}

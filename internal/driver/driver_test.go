package driver

import (
	"context"
	"math/rand/v2"
	"testing"

	"github.com/iburimskiy/particle-field/internal/config"
	"github.com/iburimskiy/particle-field/internal/motion"
	"github.com/iburimskiy/particle-field/internal/particles"
	"github.com/iburimskiy/particle-field/internal/render"
	"github.com/iburimskiy/particle-field/internal/reveal"
	"github.com/iburimskiy/particle-field/internal/storage"
)

type spyController struct{ refreshes, disables int }

func (s *spyController) Refresh() error    { s.refreshes++; return nil }
func (s *spyController) DisableAll() error { s.disables++; return nil }

func newDriver(t *testing.T, stored string) (*Driver, *motion.Gate, *spyController) {
	t.Helper()
	ctx := context.Background()
	store := storage.NewMemory()
	if stored != "" {
		if err := store.Set(ctx, config.MotionKey, stored); err != nil {
			t.Fatal(err)
		}
	}
	gate := motion.NewGate(store, nil)
	hub := reveal.NewHub(nil)
	spy := &spyController{}
	hub.Register(spy)
	field := particles.NewField(particles.DefaultFieldConfig(), rand.New(rand.NewPCG(3, 4)))
	d := New(Options{Field: field, Gate: gate, Reveal: hub})
	return d, gate, spy
}

func TestStartStates(t *testing.T) {
	tests := []struct {
		name     string
		stored   string
		surface  bool
		want     State
		disables int
	}{
		{"default enabled", "", true, Running, 0},
		{"explicitly enabled", "true", true, Running, 0},
		{"disabled", "false", true, Inactive, 1},
		{"no surface", "", false, Inactive, 0},
		{"disabled without surface", "false", false, Inactive, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, _, spy := newDriver(t, tt.stored)
			if got := d.Start(context.Background(), tt.surface); got != tt.want {
				t.Fatalf("Start = %v, want %v", got, tt.want)
			}
			if spy.disables != tt.disables {
				t.Fatalf("DisableAll calls = %d, want %d", spy.disables, tt.disables)
			}
		})
	}
}

func TestInactiveDoesNothing(t *testing.T) {
	d, _, _ := newDriver(t, "false")
	d.Start(context.Background(), true)
	d.Resize(800, 600)
	if d.Field().Len() != 0 {
		t.Fatalf("inactive driver allocated %d particles", d.Field().Len())
	}
	rec := &render.Recorder{}
	d.Frame(rec)
	if rec.Clears != 0 {
		t.Fatal("inactive driver touched the surface")
	}
}

func TestFrameClearsTicksDraws(t *testing.T) {
	d, _, _ := newDriver(t, "")
	d.Start(context.Background(), true)
	d.Resize(800, 600)

	before := append([]particles.Particle(nil), d.Field().Particles()...)
	rec := &render.Recorder{}
	st := d.Frame(rec)

	if rec.Clears != 1 {
		t.Fatalf("clears = %d, want 1", rec.Clears)
	}
	if st.Disks != 60 || len(rec.Disks) != 60 {
		t.Fatalf("disks = %d/%d, want 60", st.Disks, len(rec.Disks))
	}
	if st.Lines != len(rec.Lines) {
		t.Fatalf("stats lines %d != recorded %d", st.Lines, len(rec.Lines))
	}
	if d.LastStats() != st {
		t.Fatal("LastStats does not match frame result")
	}
	// disks are drawn after the tick, so they sit at the advanced positions
	after := d.Field().Particles()
	for i := range after {
		if rec.Disks[i].X != after[i].X || rec.Disks[i].Y != after[i].Y {
			t.Fatalf("disk %d drawn at stale position", i)
		}
	}
	if before[0].X == after[0].X && before[0].Y == after[0].Y {
		t.Fatal("frame did not advance the field")
	}
}

func TestZeroAreaKeepsLooping(t *testing.T) {
	d, _, _ := newDriver(t, "")
	d.Start(context.Background(), true)
	d.Resize(0, 0)
	rec := &render.Recorder{}
	for i := 0; i < 3; i++ {
		d.Frame(rec)
	}
	if rec.Clears != 3 {
		t.Fatalf("clears = %d, want 3", rec.Clears)
	}
	d.Resize(800, 600)
	d.Frame(rec)
	if len(rec.Disks) != 60 {
		t.Fatalf("disks after regaining area = %d, want 60", len(rec.Disks))
	}
}

func TestPointerFeedsTick(t *testing.T) {
	d, _, _ := newDriver(t, "")
	d.Start(context.Background(), true)
	d.Resize(800, 600)
	d.PointerMoved(12, 34)
	if got := d.Pointer(); got.X != 12 || got.Y != 34 {
		t.Fatalf("Pointer = %+v", got)
	}
	// moving the pointer alone does not draw
	rec := &render.Recorder{}
	d.PointerMoved(400, 300)
	if rec.Clears != 0 || len(rec.Disks) != 0 {
		t.Fatal("pointer move drew to the surface")
	}
}

func TestToggleAfterStartKeepsRunning(t *testing.T) {
	d, gate, _ := newDriver(t, "")
	d.Start(context.Background(), true)
	if _, err := gate.Toggle(context.Background()); err != nil {
		t.Fatal(err)
	}
	if d.State() != Running {
		t.Fatalf("state = %v after toggle, want running", d.State())
	}
	d.Resize(800, 600)
	rec := &render.Recorder{}
	d.Frame(rec)
	if rec.Clears != 1 {
		t.Fatal("loop stopped after motion was toggled off")
	}
}

func TestStateString(t *testing.T) {
	if Running.String() != "running" || Inactive.String() != "inactive" {
		t.Fatal("unexpected state names")
	}
}

package game

import (
	"testing"
	"time"
)

func TestFrameTapSnapshotOrder(t *testing.T) {
	tap := newFrameTap(4)
	for i := 1; i <= 6; i++ {
		tap.record(time.Duration(i) * time.Millisecond)
	}
	got := tap.snapshot(10)
	want := []time.Duration{3, 4, 5, 6}
	if len(got) != len(want) {
		t.Fatalf("snapshot len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i]*time.Millisecond {
			t.Fatalf("snapshot[%d] = %v, want %v", i, got[i], want[i]*time.Millisecond)
		}
	}

	last := tap.snapshot(2)
	if len(last) != 2 || last[0] != 5*time.Millisecond || last[1] != 6*time.Millisecond {
		t.Fatalf("snapshot(2) = %v", last)
	}
}

func TestFrameTapPartial(t *testing.T) {
	tap := newFrameTap(8)
	if tap.average() != 0 {
		t.Fatal("empty tap average should be 0")
	}
	tap.record(2 * time.Millisecond)
	tap.record(4 * time.Millisecond)
	if got := tap.snapshot(8); len(got) != 2 {
		t.Fatalf("partial snapshot len = %d, want 2", len(got))
	}
	if got := tap.average(); got != 3*time.Millisecond {
		t.Fatalf("average = %v, want 3ms", got)
	}
}

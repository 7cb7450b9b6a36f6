package storage

import (
	"context"
	"errors"
	"testing"
)

func TestMemory(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	if _, err := m.Get(ctx, "a"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get missing = %v, want ErrNotFound", err)
	}
	if err := m.Set(ctx, "a", "1"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, err := m.Get(ctx, "a")
	if err != nil || got != "1" {
		t.Fatalf("Get = %q, %v", got, err)
	}

	canceled, cancel := context.WithCancel(ctx)
	cancel()
	if err := m.Set(canceled, "a", "2"); !errors.Is(err, context.Canceled) {
		t.Fatalf("Set canceled = %v", err)
	}
}

// Package motion holds the persisted preference that enables motion-heavy
// effects.
package motion

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"sync"

	"github.com/iburimskiy/particle-field/internal/config"
	"github.com/iburimskiy/particle-field/internal/storage"
)

// DisabledValue is the only stored value that turns motion off.
const DisabledValue = "false"

// Gate reads and flips the motion preference. It fails open: anything other
// than DisabledValue, including a missing or unreadable value, means enabled.
type Gate struct {
	store  storage.Store
	key    string
	logger *slog.Logger

	mu        sync.Mutex
	observers []func(enabled bool)
}

func NewGate(store storage.Store, logger *slog.Logger) *Gate {
	if logger == nil {
		logger = slog.Default()
	}
	return &Gate{store: store, key: config.MotionKey, logger: logger}
}

// IsEnabled reports the persisted preference.
func (g *Gate) IsEnabled(ctx context.Context) bool {
	if g == nil || g.store == nil {
		return true
	}
	v, err := g.store.Get(ctx, g.key)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			g.logger.Warn("motion preference unreadable, assuming enabled", "error", err)
		}
		return true
	}
	return v != DisabledValue
}

// Toggle flips and persists the preference, returning the new state.
func (g *Gate) Toggle(ctx context.Context) (bool, error) {
	next := !g.IsEnabled(ctx)
	if err := g.Set(ctx, next); err != nil {
		return !next, err
	}
	return next, nil
}

// Set persists an explicit state and notifies observers.
func (g *Gate) Set(ctx context.Context, enabled bool) error {
	if g.store == nil {
		return fmt.Errorf("motion gate has no store")
	}
	if err := g.store.Set(ctx, g.key, strconv.FormatBool(enabled)); err != nil {
		return fmt.Errorf("persist motion preference: %w", err)
	}
	g.logger.Info("motion preference changed", "enabled", enabled)

	g.mu.Lock()
	observers := slices.Clone(g.observers)
	g.mu.Unlock()
	for _, fn := range observers {
		fn(enabled)
	}
	return nil
}

// Subscribe registers fn to run after every successful change.
func (g *Gate) Subscribe(fn func(enabled bool)) {
	g.mu.Lock()
	g.observers = append(g.observers, fn)
	g.mu.Unlock()
}

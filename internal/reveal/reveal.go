// Package reveal carries the two signals shared with reveal-on-show
// animations: re-measure after content changed, and switch everything off.
package reveal

import (
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Controller is a cooperating reveal animation.
type Controller interface {
	Refresh() error
	DisableAll() error
}

// Hub fans signals out to controllers. Calls are best-effort: errors and
// panics from a controller are logged and never reach the caller.
type Hub struct {
	logger *slog.Logger

	mu          sync.Mutex
	controllers []Controller
}

func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{logger: logger}
}

func (h *Hub) Register(c Controller) {
	if h == nil || c == nil {
		return
	}
	h.mu.Lock()
	h.controllers = append(h.controllers, c)
	h.mu.Unlock()
}

// Refresh asks every controller to re-measure.
func (h *Hub) Refresh() {
	h.each("refresh", Controller.Refresh)
}

// DisableAll turns every controller's animation off.
func (h *Hub) DisableAll() {
	h.each("disable", Controller.DisableAll)
}

func (h *Hub) each(signal string, fn func(Controller) error) {
	if h == nil {
		return
	}
	h.mu.Lock()
	cs := append([]Controller(nil), h.controllers...)
	h.mu.Unlock()
	for _, c := range cs {
		if err := call(c, fn); err != nil {
			h.logger.Debug("reveal signal failed", "signal", signal, "error", err)
		}
	}
}

func call(c Controller, fn func(Controller) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("reveal controller panicked: %v", r)
		}
	}()
	return fn(c)
}

// Fade is a Controller that fades content in over Duration after each
// Refresh. While disabled it reports fully visible; the next Refresh turns
// the fade back on.
type Fade struct {
	Duration time.Duration
	Now      func() time.Time

	start    time.Time
	disabled bool
}

func NewFade(d time.Duration) *Fade {
	f := &Fade{Duration: d, Now: time.Now}
	f.start = f.Now()
	return f
}

func (f *Fade) Refresh() error {
	f.disabled = false
	f.start = f.Now()
	return nil
}

func (f *Fade) DisableAll() error {
	f.disabled = true
	return nil
}

// Alpha is the current opacity in [0, 1].
func (f *Fade) Alpha() float64 {
	if f.disabled || f.Duration <= 0 {
		return 1
	}
	elapsed := f.Now().Sub(f.start)
	if elapsed <= 0 {
		return 0
	}
	a := float64(elapsed) / float64(f.Duration)
	if a > 1 {
		return 1
	}
	return a
}

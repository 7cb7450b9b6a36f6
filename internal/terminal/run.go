package terminal

import (
	"context"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/iburimskiy/particle-field/internal/config"
	"github.com/iburimskiy/particle-field/internal/driver"
	"github.com/iburimskiy/particle-field/internal/motion"
)

type Options struct {
	Driver     *driver.Driver
	Gate       *motion.Gate
	Logger     *slog.Logger
	FPS        int
	CellWidth  int
	CellHeight int
}

// Run drives the field on screen until ctx ends or the user quits. Events
// and ticks share one select, so every handler finishes before the next
// frame starts. The caller owns screen Init and Fini.
func Run(ctx context.Context, screen tcell.Screen, opts Options) error {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	if opts.CellWidth <= 0 || opts.CellHeight <= 0 {
		opts.CellWidth, opts.CellHeight = config.CellWidth, config.CellHeight
	}
	surface := newCellSurface(screen, opts.CellWidth, opts.CellHeight)
	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.HideCursor()

	d := opts.Driver
	state := d.Start(ctx, true)
	d.Resize(surface.virtualSize())

	// no ticker when inactive: only input is handled
	var tick <-chan time.Time
	if state == driver.Running {
		ticker := time.NewTicker(time.Second / time.Duration(opts.FPS))
		defer ticker.Stop()
		tick = ticker.C
	}

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case eventChan <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev := <-eventChan:
			if !handleEvent(ctx, ev, surface, opts) {
				return nil
			}

		case <-tick:
			d.Frame(surface)
			screen.Show()
		}
	}
}

// handleEvent applies one input event; false means quit.
func handleEvent(ctx context.Context, ev tcell.Event, s *cellSurface, opts Options) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC:
			return false
		case ev.Key() == tcell.KeyRune && ev.Rune() == 'q':
			return false
		case ev.Key() == tcell.KeyRune && ev.Rune() == 'm':
			if opts.Gate == nil {
				break
			}
			if enabled, err := opts.Gate.Toggle(ctx); err != nil {
				opts.Logger.Error("toggle motion", "error", err)
			} else {
				opts.Logger.Info("motion toggled, loop unchanged until restart", "enabled", enabled)
			}
		}

	case *tcell.EventMouse:
		col, row := ev.Position()
		opts.Driver.PointerMoved(s.toPixel(col, row))

	case *tcell.EventResize:
		s.screen.Sync()
		opts.Driver.Resize(s.virtualSize())
	}
	return true
}

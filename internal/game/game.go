// Package game is the ebiten window frontend for the particle field.
package game

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/particle-field/internal/config"
	"github.com/iburimskiy/particle-field/internal/driver"
	"github.com/iburimskiy/particle-field/internal/motion"
	"github.com/iburimskiy/particle-field/internal/reveal"
)

type Options struct {
	Driver *driver.Driver
	Gate   *motion.Gate
	Reveal *reveal.Hub
	Logger *slog.Logger
	HUD    bool
}

// Game implements ebiten.Game. Update handles input and resizes, Draw runs
// one driver frame, so each presented frame gets exactly one tick.
type Game struct {
	ctx    context.Context
	driver *driver.Driver
	gate   *motion.Gate
	reveal *reveal.Hub
	logger *slog.Logger

	// surface size in device pixels, as reported by Layout
	layoutW, layoutH int
	fieldW, fieldH   int

	// pointer
	cursor      image.Point
	cursorDX    float64
	cursorDY    float64
	cursorKnown bool
	motionOn    bool

	hud      *hud
	frames   *frameTap
	started  time.Time
	snapshot *image.RGBA
	wantShot bool

	status  string
	lastErr error
}

func New(ctx context.Context, opts Options) *Game {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	g := &Game{
		ctx:      ctx,
		driver:   opts.Driver,
		gate:     opts.Gate,
		reveal:   opts.Reveal,
		logger:   opts.Logger,
		hud:      newHUD(opts.HUD),
		frames:   newFrameTap(config.FrameRingSize),
		started:  time.Now(),
		motionOn: opts.Gate.IsEnabled(ctx),
	}
	opts.Reveal.Register(g.hud.fade)
	if opts.Gate != nil {
		opts.Gate.Subscribe(func(enabled bool) {
			g.motionOn = enabled
		})
	}
	return g
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}

	// Surface resize
	if g.layoutW != g.fieldW || g.layoutH != g.fieldH {
		g.fieldW, g.fieldH = g.layoutW, g.layoutH
		g.driver.Resize(float64(g.fieldW), float64(g.fieldH))
		g.reveal.Refresh()
	}

	// Pointer tracking
	mx, my := ebiten.CursorPosition()
	if !g.cursorKnown || mx != g.cursor.X || my != g.cursor.Y {
		if g.cursorKnown {
			g.cursorDX = float64(mx - g.cursor.X)
			g.cursorDY = float64(my - g.cursor.Y)
		}
		g.cursor = image.Pt(mx, my)
		g.cursorKnown = true
		g.driver.PointerMoved(float64(mx), float64(my))
	} else {
		g.cursorDX *= 0.8
		g.cursorDY *= 0.8
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		g.toggleMotion()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.hud.toggleVisible()
		g.reveal.Refresh()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		g.hud.toggleExpanded()
		// panel content changed size
		g.reveal.Refresh()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.wantShot = true
	}

	if g.snapshot != nil {
		shot := g.snapshot
		g.snapshot = nil
		path, err := saveSnapshotDialog(shot)
		if err != nil {
			g.lastErr = err
			g.logger.Error("snapshot failed", "error", err)
		} else if path != "" {
			g.status = "saved " + path
			g.logger.Info("snapshot saved", "path", path)
		}
	}
	return nil
}

func (g *Game) toggleMotion() {
	if g.gate == nil {
		return
	}
	enabled, err := g.gate.Toggle(g.ctx)
	if err != nil {
		g.lastErr = err
		g.logger.Error("toggle motion", "error", err)
		return
	}
	if enabled {
		g.status = "motion on"
	} else {
		// the particle loop keeps running until restart
		g.status = "motion off (applies on restart)"
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	start := time.Now()
	st := g.driver.Frame(imageSurface{img: screen})
	g.frames.record(time.Since(start))

	g.drawCursor(screen)
	g.hud.draw(screen, g.hud.rows(g.summary(st.Lines), g.details()))

	if g.wantShot {
		g.wantShot = false
		g.snapshot = captureFrame(screen)
	}
}

// drawCursor draws the pointer ring; the magnetic tilt only applies while
// motion is enabled.
func (g *Game) drawCursor(screen *ebiten.Image) {
	if !g.cursorKnown || !image.Pt(g.cursor.X, g.cursor.Y).In(image.Rect(0, 0, g.layoutW, g.layoutH)) {
		return
	}
	x, y := float64(g.cursor.X), float64(g.cursor.Y)
	if g.motionOn {
		ox, oy := tiltOffset(g.cursorDX, g.cursorDY)
		x -= ox
		y -= oy
	}
	vector.StrokeCircle(screen, float32(x), float32(y), 10, 1.5, color.NRGBA{R: 255, G: 165, B: 0, A: 160}, true)
}

func (g *Game) summary(lines int) string {
	return fmt.Sprintf("FPS %.0f  particles %d  links %d", ebiten.ActualFPS(), g.driver.Field().Len(), lines)
}

func (g *Game) details() []string {
	motionState := "on"
	if !g.motionOn {
		motionState = "off"
	}
	rows := []string{
		fmt.Sprintf("TPS %.0f  frame %s", ebiten.ActualTPS(), formatMillis(g.frames.average())),
		fmt.Sprintf("surface %dx%d  loop %s", g.layoutW, g.layoutH, g.driver.State()),
		fmt.Sprintf("pointer %d,%d", g.cursor.X, g.cursor.Y),
		fmt.Sprintf("motion %s  uptime %s", motionState, formatDuration(time.Since(g.started))),
		"[M] motion [S] snapshot [H] hide",
	}
	if g.status != "" {
		rows = append(rows, g.status)
	}
	if g.lastErr != nil {
		rows = append(rows, "Error: "+g.lastErr.Error())
	}
	return rows
}

// Layout reports a surface in device pixels so lines stay crisp on HiDPI.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	scale := 1.0
	if m := ebiten.Monitor(); m != nil {
		scale = m.DeviceScaleFactor()
	}
	g.layoutW = max(1, int(float64(outsideWidth)*scale))
	g.layoutH = max(1, int(float64(outsideHeight)*scale))
	return g.layoutW, g.layoutH
}

// Run opens a resizable window and blocks until it is closed.
func Run(g *Game, width, height int) error {
	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowTitle("Particle Field - M: motion, H: HUD, S: snapshot, Esc/Q: quit")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetCursorMode(ebiten.CursorModeHidden)

	// the field decides activation once, before the first frame
	g.driver.Start(g.ctx, true)
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

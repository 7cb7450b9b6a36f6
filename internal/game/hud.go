package game

import (
	"image/color"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/particle-field/internal/reveal"
)

const (
	hudX       = 12
	hudY       = 12
	hudWidth   = 280
	hudLineH   = 16
	hudPadding = 8
	hudMaxRows = 10
	hudFade    = 400 * time.Millisecond
)

// hud is a collapsible stats panel that fades in whenever its content
// changes.
type hud struct {
	visible  bool
	expanded bool
	fade     *reveal.Fade
	canvas   *ebiten.Image
}

func newHUD(visible bool) *hud {
	return &hud{
		visible: visible,
		fade:    reveal.NewFade(hudFade),
	}
}

func (h *hud) toggleVisible() { h.visible = !h.visible }

func (h *hud) toggleExpanded() { h.expanded = !h.expanded }

// rows picks what the panel shows in its current state.
func (h *hud) rows(summary string, details []string) []string {
	if !h.expanded {
		return []string{summary + "  [Tab] more"}
	}
	out := append([]string{summary}, details...)
	if len(out) > hudMaxRows {
		out = out[:hudMaxRows]
	}
	return out
}

func (h *hud) draw(screen *ebiten.Image, lines []string) {
	if !h.visible || len(lines) == 0 {
		return
	}
	height := hudPadding*2 + hudLineH*len(lines)
	if h.canvas == nil {
		h.canvas = ebiten.NewImage(hudWidth, hudPadding*2+hudLineH*hudMaxRows)
	}
	h.canvas.Clear()

	vector.DrawFilledRect(h.canvas, 0, 0, hudWidth, float32(height), color.NRGBA{R: 10, G: 14, B: 24, A: 190}, false)
	vector.StrokeRect(h.canvas, 0, 0, hudWidth, float32(height), 1, color.NRGBA{R: 30, G: 144, B: 255, A: 160}, false)
	ebitenutil.DebugPrintAt(h.canvas, strings.Join(lines, "\n"), hudPadding, hudPadding-2)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(hudX, hudY)
	op.ColorScale.ScaleAlpha(float32(h.fade.Alpha()))
	screen.DrawImage(h.canvas, op)
}

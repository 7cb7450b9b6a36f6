// Package terminal renders the particle field into a tcell screen, mapping
// each cell onto a block of virtual pixels.
package terminal

import (
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/iburimskiy/particle-field/internal/render"
)

const (
	glyphDot   = '·'
	glyphSmall = '•'
	glyphLarge = '●'
)

// cellSurface adapts a tcell screen to render.Surface.
type cellSurface struct {
	screen       tcell.Screen
	cellW, cellH float64
}

func newCellSurface(screen tcell.Screen, cellW, cellH int) *cellSurface {
	return &cellSurface{screen: screen, cellW: float64(cellW), cellH: float64(cellH)}
}

// virtualSize is the pixel space the field lives in for the current screen.
func (s *cellSurface) virtualSize() (float64, float64) {
	cols, rows := s.screen.Size()
	return float64(cols) * s.cellW, float64(rows) * s.cellH
}

// toCell maps a virtual pixel to a cell.
func (s *cellSurface) toCell(x, y float64) (int, int) {
	return int(math.Floor(x / s.cellW)), int(math.Floor(y / s.cellH))
}

// toPixel maps a cell to the virtual pixel at its centre.
func (s *cellSurface) toPixel(col, row int) (float64, float64) {
	return (float64(col) + 0.5) * s.cellW, (float64(row) + 0.5) * s.cellH
}

func (s *cellSurface) Clear() {
	s.screen.Clear()
}

func (s *cellSurface) FillDisk(x, y, r float64, c color.NRGBA) {
	col, row := s.toCell(x, y)
	glyph := glyphDot
	switch {
	case r >= 4:
		glyph = glyphLarge
	case r >= 2:
		glyph = glyphSmall
	}
	s.screen.SetContent(col, row, glyph, nil, tcell.StyleDefault.Foreground(fade(c)))
}

// StrokeLine walks the cells between the endpoints. Cells already holding a
// disk are left alone so particles stay on top.
func (s *cellSurface) StrokeLine(x1, y1, x2, y2 float64, c color.NRGBA, _ float64) {
	c0, r0 := s.toCell(x1, y1)
	c1, r1 := s.toCell(x2, y2)
	glyph := lineGlyph(c1-c0, r1-r0)
	style := tcell.StyleDefault.Foreground(fade(c))

	dc, dr := abs(c1-c0), -abs(r1-r0)
	sc, sr := sign(c1-c0), sign(r1-r0)
	e := dc + dr
	col, row := c0, r0
	for {
		if !(col == c0 && row == r0) && !(col == c1 && row == r1) {
			if existing, _, _, _ := s.screen.GetContent(col, row); existing == ' ' || existing == 0 {
				s.screen.SetContent(col, row, glyph, nil, style)
			}
		}
		if col == c1 && row == r1 {
			return
		}
		e2 := 2 * e
		if e2 >= dr {
			e += dr
			col += sc
		}
		if e2 <= dc {
			e += dc
			row += sr
		}
	}
}

// fade premultiplies the colour against a black terminal background.
func fade(c color.NRGBA) tcell.Color {
	a := int32(c.A)
	return tcell.NewRGBColor(int32(c.R)*a/255, int32(c.G)*a/255, int32(c.B)*a/255)
}

func lineGlyph(dc, dr int) rune {
	switch {
	case dr == 0:
		return '─'
	case dc == 0:
		return '│'
	}
	slope := math.Abs(float64(dr) / float64(dc))
	switch {
	case slope < 0.5:
		return '─'
	case slope > 2:
		return '│'
	case (dc > 0) == (dr > 0):
		return '╲'
	default:
		return '╱'
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

var _ render.Surface = (*cellSurface)(nil)

package game

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/particle-field/internal/render"
)

// imageSurface adapts an ebiten image to render.Surface.
type imageSurface struct {
	img *ebiten.Image
}

func (s imageSurface) Clear() {
	s.img.Clear()
}

func (s imageSurface) FillDisk(x, y, r float64, c color.NRGBA) {
	vector.DrawFilledCircle(s.img, float32(x), float32(y), float32(r), c, true)
}

func (s imageSurface) StrokeLine(x1, y1, x2, y2 float64, c color.NRGBA, width float64) {
	vector.StrokeLine(s.img, float32(x1), float32(y1), float32(x2), float32(y2), float32(width), c, true)
}

var _ render.Surface = imageSurface{}

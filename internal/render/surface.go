// Package render draws particle fields onto a 2D raster surface.
package render

import "image/color"

// Surface is the minimal raster context the renderer needs.
type Surface interface {
	Clear()
	FillDisk(x, y, r float64, c color.NRGBA)
	StrokeLine(x1, y1, x2, y2 float64, c color.NRGBA, width float64)
}

// Recorder is a Surface that keeps every call, for tests and headless runs.
type Recorder struct {
	Clears int
	Disks  []Disk
	Lines  []Line
}

type Disk struct {
	X, Y, R float64
	Color   color.NRGBA
}

type Line struct {
	X1, Y1, X2, Y2 float64
	Color          color.NRGBA
	Width          float64
}

func (r *Recorder) Clear() {
	r.Clears++
	r.Disks = r.Disks[:0]
	r.Lines = r.Lines[:0]
}

func (r *Recorder) FillDisk(x, y, radius float64, c color.NRGBA) {
	r.Disks = append(r.Disks, Disk{X: x, Y: y, R: radius, Color: c})
}

func (r *Recorder) StrokeLine(x1, y1, x2, y2 float64, c color.NRGBA, width float64) {
	r.Lines = append(r.Lines, Line{X1: x1, Y1: y1, X2: x2, Y2: y2, Color: c, Width: width})
}

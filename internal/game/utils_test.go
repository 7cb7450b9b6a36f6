package game

import (
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestTiltOffset(t *testing.T) {
	x, y := tiltOffset(0, 0)
	if x != 0 || y != 0 {
		t.Fatalf("still pointer tilt = %v,%v", x, y)
	}
	x, y = tiltOffset(5, 4)
	if math.Abs(x-6) > 1e-9 || math.Abs(y-2) > 1e-9 {
		t.Fatalf("tilt(5,4) = %v,%v want 6,2", x, y)
	}
	x, y = tiltOffset(-100, 100)
	if x != -8 || y != 8 {
		t.Fatalf("tilt clamps to 8, got %v,%v", x, y)
	}
}

func TestFormatting(t *testing.T) {
	if got := formatDuration(125 * time.Second); got != "02:05" {
		t.Errorf("formatDuration = %q", got)
	}
	if got := formatMillis(1234567 * time.Nanosecond); got != "1.23ms" {
		t.Errorf("formatMillis = %q", got)
	}
}

func TestWithPNGExt(t *testing.T) {
	tests := map[string]string{
		"shot":      "shot.png",
		"shot.png":  "shot.png",
		"shot.PNG":  "shot.PNG",
		"shot.jpeg": "shot.jpeg.png",
	}
	for in, want := range tests {
		if got := withPNGExt(in); got != want {
			t.Errorf("withPNGExt(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestWritePNG(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 3, 2))
	img.Set(1, 1, color.RGBA{R: 30, G: 144, B: 255, A: 255})
	path := filepath.Join(t.TempDir(), "frame.png")
	if err := writePNG(path, img); err != nil {
		t.Fatalf("writePNG: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	decoded, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.Bounds().Dx() != 3 || decoded.Bounds().Dy() != 2 {
		t.Fatalf("bounds = %v", decoded.Bounds())
	}
	r, g, b, _ := decoded.At(1, 1).RGBA()
	if r>>8 != 30 || g>>8 != 144 || b>>8 != 255 {
		t.Fatalf("pixel = %d,%d,%d", r>>8, g>>8, b>>8)
	}

	if err := writePNG(filepath.Join(t.TempDir(), "missing", "x.png"), img); err == nil {
		t.Fatal("expected error for missing directory")
	}
}

func TestHUDRows(t *testing.T) {
	h := newHUD(true)
	details := []string{"a", "b"}

	rows := h.rows("sum", details)
	if len(rows) != 1 || rows[0] != "sum  [Tab] more" {
		t.Fatalf("collapsed rows = %q", rows)
	}

	h.toggleExpanded()
	rows = h.rows("sum", details)
	if len(rows) != 3 || rows[0] != "sum" || rows[2] != "b" {
		t.Fatalf("expanded rows = %q", rows)
	}

	long := make([]string, 20)
	if got := len(h.rows("sum", long)); got != hudMaxRows {
		t.Fatalf("rows capped at %d, got %d", hudMaxRows, got)
	}
}

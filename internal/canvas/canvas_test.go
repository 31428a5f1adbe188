package canvas

import (
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/Hilthkess/flow-map-painter/internal/paint"
	"github.com/Hilthkess/flow-map-painter/pkg/math"
)

func rgbAt(img image.Image, x, y int) (uint8, uint8, uint8) {
	r, g, b, _ := img.At(x, y).RGBA()
	return uint8(r >> 8), uint8(g >> 8), uint8(b >> 8)
}

func near(a, b uint8) bool {
	d := int(a) - int(b)
	return d >= -3 && d <= 3
}

func expectRGB(t *testing.T, img image.Image, x, y int, r, g, b uint8) {
	t.Helper()
	gr, gg, gb := rgbAt(img, x, y)
	if !near(gr, r) || !near(gg, g) || !near(gb, b) {
		t.Errorf("pixel (%d,%d) = (%d,%d,%d), want about (%d,%d,%d)", x, y, gr, gg, gb, r, g, b)
	}
}

func TestBackgroundFill(t *testing.T) {
	c := New(64, 64, "#808080", 10)

	expectRGB(t, c.Image(), 0, 0, 0x80, 0x80, 0x80)
	expectRGB(t, c.Image(), 32, 32, 0x80, 0x80, 0x80)
	expectRGB(t, c.Image(), 63, 63, 0x80, 0x80, 0x80)
}

func TestDotAt(t *testing.T) {
	c := New(64, 64, "#000000", 5)
	c.SetBrushColor(paint.Color{1.0, 0.5, 0.0})

	c.DotAt(math.Vec2{X: 32, Y: 32}, 1)

	expectRGB(t, c.Image(), 32, 32, 255, 127, 0)
	// Dot radius is 5, so 10 pixels away is untouched background.
	expectRGB(t, c.Image(), 32, 42, 0, 0, 0)
}

func TestDotAtUV(t *testing.T) {
	c := New(100, 100, "#000000", 8)
	c.SetBrushColor(paint.Color{0.0, 1.0, 0.0})

	// V is measured from the bottom, so uv (0.5, 0.9) lands near the top.
	c.DotAtUV(math.Vec2{X: 0.5, Y: 0.9}, 1)

	expectRGB(t, c.Image(), 50, 10, 0, 255, 0)
	expectRGB(t, c.Image(), 50, 90, 0, 0, 0)
}

func TestPressureScalesRadius(t *testing.T) {
	c := New(64, 64, "#000000", 10)
	c.SetBrushColor(paint.Color{1.0, 1.0, 1.0})

	// Half pressure halves the radius: 5 instead of 10.
	c.DotAt(math.Vec2{X: 32, Y: 32}, 0.5)

	expectRGB(t, c.Image(), 32, 32, 255, 255, 255)
	expectRGB(t, c.Image(), 32+8, 32, 0, 0, 0)
}

func TestCursorDoesNotTouchPaintLayer(t *testing.T) {
	c := New(64, 64, "#000000", 8)
	c.SetBrushColor(paint.Color{1.0, 1.0, 1.0})

	c.MoveCursor(math.Vec2{X: 32, Y: 32})

	// The ring shows up in the composite at the brush radius.
	comp := c.Composite()
	if r, _, _ := rgbAt(comp, 32+8, 32); r == 0 {
		t.Error("expected cursor ring in composite")
	}

	// The paint layer stays clean.
	expectRGB(t, c.Image(), 32+8, 32, 0, 0, 0)

	c.ClearCursor()
	expectRGB(t, c.Composite(), 32+8, 32, 0, 0, 0)
}

func TestPreviewScaling(t *testing.T) {
	c := New(200, 100, "#808080", 10)

	img := c.Preview(100, 100)
	bounds := img.Bounds()
	if bounds.Dx() != 100 || bounds.Dy() != 50 {
		t.Errorf("expected 100x50 preview, got %dx%d", bounds.Dx(), bounds.Dy())
	}

	// A canvas already inside the bounds is returned as-is.
	img = c.Preview(400, 400)
	bounds = img.Bounds()
	if bounds.Dx() != 200 || bounds.Dy() != 100 {
		t.Errorf("expected 200x100 preview, got %dx%d", bounds.Dx(), bounds.Dy())
	}
}

func TestReset(t *testing.T) {
	c := New(32, 32, "#808080", 10)
	c.SetBrushColor(paint.Color{1.0, 0.0, 0.0})
	c.DotAt(math.Vec2{X: 16, Y: 16}, 1)

	c.Reset()

	expectRGB(t, c.Image(), 16, 16, 0x80, 0x80, 0x80)
}

func TestSavePNG(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.png")

	c := New(16, 16, "#808080", 4)
	if err := c.SavePNG(path); err != nil {
		t.Fatalf("SavePNG failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat failed: %v", err)
	}
	if info.Size() == 0 {
		t.Error("expected non-empty PNG file")
	}
}

func TestBrushSizeClamp(t *testing.T) {
	c := New(16, 16, "#808080", 10)
	c.SetBrushSize(-5)
	if c.BrushSize() != 1 {
		t.Errorf("expected brush size clamped to 1, got %v", c.BrushSize())
	}
}

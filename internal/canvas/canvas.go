// Package canvas provides the raster target that brush strokes are
// painted onto. Dots land either at screen positions (2D image mode)
// or at UV coordinates mapped onto the texture (3D mesh mode).
package canvas

import (
	"image"

	"github.com/gogpu/gg"
	"github.com/nfnt/resize"

	"github.com/Hilthkess/flow-map-painter/internal/paint"
	"github.com/Hilthkess/flow-map-painter/pkg/math"
)

// Canvas is a paintable raster image with a current brush color and size.
// It is not safe for concurrent use; all painting happens on the main loop.
type Canvas struct {
	ctx        *gg.Context
	background gg.RGBA
	brush      paint.Color
	brushSize  float32

	cursorPos     math.Vec2
	cursorVisible bool
}

// New creates a canvas of the given pixel size filled with the background
// color (a hex string such as "#808080"). brushSize is the dot radius in
// pixels at full pressure.
func New(width, height int, background string, brushSize float32) *Canvas {
	c := &Canvas{
		ctx:        gg.NewContext(width, height),
		background: gg.Hex(background),
		brush:      paint.Neutral,
		brushSize:  brushSize,
	}
	c.ctx.ClearWithColor(c.background)
	return c
}

// Width returns the canvas width in pixels.
func (c *Canvas) Width() int { return c.ctx.Width() }

// Height returns the canvas height in pixels.
func (c *Canvas) Height() int { return c.ctx.Height() }

// SetBrushColor updates the color used for subsequent dots.
func (c *Canvas) SetBrushColor(col paint.Color) {
	c.brush = col
}

// BrushColor returns the current brush color.
func (c *Canvas) BrushColor() paint.Color {
	return c.brush
}

// SetBrushSize updates the dot radius in pixels at full pressure.
func (c *Canvas) SetBrushSize(size float32) {
	if size < 1 {
		size = 1
	}
	c.brushSize = size
}

// BrushSize returns the dot radius in pixels at full pressure.
func (c *Canvas) BrushSize() float32 {
	return c.brushSize
}

// DotAt paints a filled dot at a pixel position. Pressure scales the dot
// radius; values outside (0, 1] are treated as full pressure.
func (c *Canvas) DotAt(pos math.Vec2, pressure float32) {
	r := c.dotRadius(pressure)
	c.ctx.SetRGB(float64(c.brush[0]), float64(c.brush[1]), float64(c.brush[2]))
	c.ctx.DrawCircle(float64(pos.X), float64(pos.Y), r)
	c.ctx.Fill()
}

// DotAtUV paints a filled dot at a UV coordinate. U maps to x left-to-right,
// V maps to y bottom-to-top, matching the usual texture convention.
func (c *Canvas) DotAtUV(uv math.Vec2, pressure float32) {
	px := math.Vec2{
		X: uv.X * float32(c.ctx.Width()),
		Y: (1 - uv.Y) * float32(c.ctx.Height()),
	}
	c.DotAt(px, pressure)
}

func (c *Canvas) dotRadius(pressure float32) float64 {
	if pressure <= 0 || pressure > 1 {
		pressure = 1
	}
	r := float64(c.brushSize) * float64(pressure)
	if r < 0.5 {
		r = 0.5
	}
	return r
}

// MoveCursor places the brush outline preview at a pixel position.
func (c *Canvas) MoveCursor(pos math.Vec2) {
	c.cursorPos = pos
	c.cursorVisible = true
}

// ClearCursor hides the brush outline preview.
func (c *Canvas) ClearCursor() {
	c.cursorVisible = false
}

// Image returns the painted image without the cursor overlay.
func (c *Canvas) Image() image.Image {
	return c.ctx.Image()
}

// Composite returns the painted image with the brush outline drawn on top.
// The paint layer itself is never touched by the cursor.
func (c *Canvas) Composite() image.Image {
	if !c.cursorVisible {
		return c.ctx.Image()
	}
	overlay := gg.NewContextForImage(c.ctx.Image())
	overlay.SetRGB(float64(c.brush[0]), float64(c.brush[1]), float64(c.brush[2]))
	overlay.SetLineWidth(1.5)
	overlay.DrawCircle(float64(c.cursorPos.X), float64(c.cursorPos.Y), float64(c.brushSize))
	overlay.Stroke()
	return overlay.Image()
}

// Preview returns the painted image scaled to fit the given bounds,
// preserving aspect ratio.
func (c *Canvas) Preview(maxWidth, maxHeight int) image.Image {
	img := c.Composite()
	w, h := c.ctx.Width(), c.ctx.Height()
	if w <= maxWidth && h <= maxHeight {
		return img
	}
	scaleW := float64(maxWidth) / float64(w)
	scaleH := float64(maxHeight) / float64(h)
	scale := scaleW
	if scaleH < scale {
		scale = scaleH
	}
	return resize.Resize(uint(float64(w)*scale), uint(float64(h)*scale), img, resize.Bilinear)
}

// Reset clears the canvas back to the background color.
func (c *Canvas) Reset() {
	c.ctx.ClearWithColor(c.background)
}

// SavePNG writes the painted image (without cursor) to a PNG file.
func (c *Canvas) SavePNG(path string) error {
	return c.ctx.SavePNG(path)
}

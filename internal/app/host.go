package app

import (
	"image"

	"github.com/gogpu/gg"

	"github.com/Hilthkess/flow-map-painter/internal/paint"
	"github.com/Hilthkess/flow-map-painter/pkg/math"
)

// App implements paint.Host: the session pushes brush color changes,
// dots and cursor updates here and this file routes them to the canvas
// and, for vertex paint, the working mesh.

// SetBrushColor updates the canvas brush color.
func (a *App) SetBrushColor(c paint.Color) {
	a.canvas.SetBrushColor(c)
}

// PaintDot lands one brush dot. In image mode the window position maps
// straight onto the canvas. In mesh mode the position is ray cast onto
// the mesh and the dot lands at the hit's UV coordinate; dots that miss
// the mesh are dropped.
func (a *App) PaintDot(pos math.Vec2, pressure float32, world *math.Vec3) {
	if !a.meshMode {
		a.canvas.DotAt(a.toCanvas(pos), pressure)
		return
	}

	uv, hit, ok := a.vp.SampleUV(pos)
	if !ok {
		return
	}
	a.canvas.DotAtUV(uv, pressure)

	if a.cfg.Paint.VertexPaint {
		c := a.canvas.BrushColor()
		radius := a.vertexRadius()
		a.working.PaintVertexColors(hit.World, radius,
			math.Vec3{X: c[0], Y: c[1], Z: c[2]})
	}
}

// MoveCursor tracks the brush preview position.
func (a *App) MoveCursor(pos math.Vec2) {
	a.cursorPos = pos
	a.cursorVisible = true
	if !a.meshMode {
		a.canvas.MoveCursor(a.toCanvas(pos))
	}
}

// ClearCursor hides the brush preview.
func (a *App) ClearCursor() {
	a.cursorVisible = false
	a.canvas.ClearCursor()
}

// toCanvas maps a window position onto canvas pixels.
func (a *App) toCanvas(pos math.Vec2) math.Vec2 {
	return math.Vec2{
		X: pos.X * float32(a.canvas.Width()) / float32(a.width),
		Y: pos.Y * float32(a.canvas.Height()) / float32(a.height),
	}
}

// vertexRadius approximates the brush's world-space radius: the pixel
// radius scaled by the view depth at the camera target.
func (a *App) vertexRadius() float32 {
	cam := a.vp.Camera()
	return a.canvas.BrushSize() / float32(a.height) * cam.Distance
}

// drawCursorRing overlays the brush outline on a rendered frame.
func drawCursorRing(img image.Image, pos math.Vec2, radius float32, c paint.Color) image.Image {
	dc := gg.NewContextForImage(img)
	dc.SetRGB(float64(c[0]), float64(c[1]), float64(c[2]))
	dc.SetLineWidth(1.5)
	dc.DrawCircle(float64(pos.X), float64(pos.Y), float64(radius))
	_ = dc.Stroke()
	return dc.Image()
}

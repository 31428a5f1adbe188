// Package viewport hosts the 3D paint view: an orbit camera, a software
// rasterizer for display, and ray-cast sampling of pointer positions
// against the working mesh.
package viewport

import (
	"github.com/Hilthkess/flow-map-painter/internal/engine/picking"
	"github.com/Hilthkess/flow-map-painter/internal/mesh"
	"github.com/Hilthkess/flow-map-painter/internal/paint"
	"github.com/Hilthkess/flow-map-painter/pkg/math"
)

// Viewport projects pointer positions into the scene and resolves them
// against the working mesh. It implements paint.Sampler.
type Viewport struct {
	cam     *Camera
	working *mesh.Working

	width, height int
	traceDist     float32

	viewProj    math.Mat4
	invViewProj math.Mat4
}

// New creates a viewport over a working mesh. traceDist bounds how far a
// pointer ray may travel before a hit is discarded; zero or negative
// means unbounded.
func New(working *mesh.Working, cam *Camera, width, height int, traceDist float32) *Viewport {
	v := &Viewport{
		cam:       cam,
		working:   working,
		width:     width,
		height:    height,
		traceDist: traceDist,
	}
	v.refresh()
	return v
}

// Camera returns the orbit camera.
func (v *Viewport) Camera() *Camera { return v.cam }

// Working returns the mesh being painted.
func (v *Viewport) Working() *mesh.Working { return v.working }

// Size returns the viewport dimensions in pixels.
func (v *Viewport) Size() (int, int) { return v.width, v.height }

// Resize updates the viewport dimensions.
func (v *Viewport) Resize(width, height int) {
	if width < 1 || height < 1 {
		return
	}
	v.width = width
	v.height = height
	v.refresh()
}

// Orbit rotates the camera around its target.
func (v *Viewport) Orbit(dYaw, dPitch float32) {
	v.cam.Orbit(dYaw, dPitch)
	v.refresh()
}

// Zoom scales the camera distance.
func (v *Viewport) Zoom(factor float32) {
	v.cam.Zoom(factor)
	v.refresh()
}

func (v *Viewport) refresh() {
	v.viewProj = v.cam.ViewProjection(v.width, v.height)
	v.invViewProj = v.viewProj.Inverse()
}

// ViewProjection returns the current world-to-clip matrix.
func (v *Viewport) ViewProjection() math.Mat4 { return v.viewProj }

func (v *Viewport) hitAt(p math.Vec2) (mesh.Hit, bool) {
	if v.working == nil || v.working.Released() {
		return mesh.Hit{}, false
	}
	ray := picking.ScreenToRay(p.X, p.Y, float32(v.width), float32(v.height), v.invViewProj)
	return v.working.Raycast(ray, v.traceDist)
}

// Sample ray casts the screen point onto the mesh surface.
func (v *Viewport) Sample(p math.Vec2) (paint.SurfaceHit, bool) {
	h, ok := v.hitAt(p)
	if !ok {
		return paint.SurfaceHit{}, false
	}
	return paint.SurfaceHit{Local: h.Local, World: h.World}, true
}

// SampleUV ray casts the screen point and interpolates the hit
// triangle's UVs. Misses when the pointer is off the mesh or the mesh
// has no UV layer.
func (v *Viewport) SampleUV(p math.Vec2) (math.Vec2, paint.SurfaceHit, bool) {
	h, ok := v.hitAt(p)
	if !ok {
		return math.Vec2{}, paint.SurfaceHit{}, false
	}
	uv, ok := v.working.UVAt(h)
	if !ok {
		return math.Vec2{}, paint.SurfaceHit{}, false
	}
	return uv, paint.SurfaceHit{Local: h.Local, World: h.World}, true
}

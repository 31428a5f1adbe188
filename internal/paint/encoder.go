package paint

import "github.com/Hilthkess/flow-map-painter/pkg/math"

// SurfaceHit is a resolved point on the paint surface.
type SurfaceHit struct {
	Local math.Vec3 // object-local space
	World math.Vec3 // world space
}

// Sampler resolves screen positions against the 3D paint surface.
// Both methods report misses as a normal outcome: the pointer simply
// is not over the mesh, or the mesh carries no UV layer.
type Sampler interface {
	// Sample ray casts through the screen point onto the surface.
	Sample(p math.Vec2) (SurfaceHit, bool)
	// SampleUV additionally interpolates the hit triangle's UVs.
	SampleUV(p math.Vec2) (math.Vec2, SurfaceHit, bool)
}

// resolveFunc maps the current and previous screen positions into a pair
// of positions in the encoder's coordinate space. planar marks 2D spaces
// (screen, UV) whose third channel stays unused. loc, when non-nil, is
// the world-space surface point brush dots should anchor to.
type resolveFunc func(cur, prev math.Vec2) (a, b math.Vec3, planar bool, loc *math.Vec3, ok bool)

// Encoder turns two successive pointer positions into a direction color.
// All coordinate-space variants share one normalization and remapping
// path; only the resolver differs.
type Encoder struct {
	resolve resolveFunc
}

// Encode computes the normalized direction from prev to cur in the
// encoder's space and remaps it to a color. Returns false when either
// position cannot be resolved or the two positions coincide; the caller
// keeps the previous brush color in that case, never black.
func (e Encoder) Encode(cur, prev math.Vec2) (Color, *math.Vec3, bool) {
	a, b, planar, loc, ok := e.resolve(cur, prev)
	if !ok {
		return Color{}, nil, false
	}

	delta := a.Sub(b)
	norm := delta.Length()
	if norm == 0 {
		// The positions coincide: no direction signal.
		return Color{}, nil, false
	}
	unit := delta.Scale(1 / norm)

	c := Color{
		(unit.X + 1) * 0.5,
		(unit.Y + 1) * 0.5,
		(unit.Z + 1) * 0.5,
	}
	if planar {
		c[2] = 0
	}
	return c, loc, true
}

// ScreenEncoder encodes directions in raw screen space. Used for 2D image
// painting, where the canvas is axis aligned with the view.
func ScreenEncoder() Encoder {
	return Encoder{resolve: func(cur, prev math.Vec2) (math.Vec3, math.Vec3, bool, *math.Vec3, bool) {
		a := math.Vec3{X: cur.X, Y: cur.Y}
		b := math.Vec3{X: prev.X, Y: prev.Y}
		return a, b, true, nil, true
	}}
}

// UVEncoder encodes directions in the mesh's texture space: both screen
// positions are ray cast onto the mesh and converted to UV coordinates
// by barycentric interpolation.
func UVEncoder(smp Sampler) Encoder {
	return Encoder{resolve: func(cur, prev math.Vec2) (math.Vec3, math.Vec3, bool, *math.Vec3, bool) {
		uvCur, hit, ok := smp.SampleUV(cur)
		if !ok {
			return math.Vec3{}, math.Vec3{}, false, nil, false
		}
		uvPrev, _, ok := smp.SampleUV(prev)
		if !ok {
			return math.Vec3{}, math.Vec3{}, false, nil, false
		}
		a := math.Vec3{X: uvCur.X, Y: uvCur.Y}
		b := math.Vec3{X: uvPrev.X, Y: uvPrev.Y}
		return a, b, true, &hit.World, true
	}}
}

// ObjectEncoder encodes directions in an object's local space. refInv is
// the inverse world matrix of the reference object (the painted mesh
// itself when no explicit reference is configured).
func ObjectEncoder(smp Sampler, refInv math.Mat4) Encoder {
	return Encoder{resolve: func(cur, prev math.Vec2) (math.Vec3, math.Vec3, bool, *math.Vec3, bool) {
		hitCur, ok := smp.Sample(cur)
		if !ok {
			return math.Vec3{}, math.Vec3{}, false, nil, false
		}
		hitPrev, ok := smp.Sample(prev)
		if !ok {
			return math.Vec3{}, math.Vec3{}, false, nil, false
		}
		a := refInv.TransformPoint(hitCur.World)
		b := refInv.TransformPoint(hitPrev.World)
		return a, b, false, &hitCur.World, true
	}}
}

// WorldEncoder encodes directions in world space.
func WorldEncoder(smp Sampler) Encoder {
	return Encoder{resolve: func(cur, prev math.Vec2) (math.Vec3, math.Vec3, bool, *math.Vec3, bool) {
		hitCur, ok := smp.Sample(cur)
		if !ok {
			return math.Vec3{}, math.Vec3{}, false, nil, false
		}
		hitPrev, ok := smp.Sample(prev)
		if !ok {
			return math.Vec3{}, math.Vec3{}, false, nil, false
		}
		return hitCur.World, hitPrev.World, false, &hitCur.World, true
	}}
}

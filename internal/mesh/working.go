package mesh

import (
	"github.com/Hilthkess/flow-map-painter/internal/engine/picking"
	"github.com/Hilthkess/flow-map-painter/pkg/math"
)

// Triangle is one triangulated face of the working copy, carrying the
// per-corner UVs of the source face it was fanned out of.
type Triangle struct {
	A, B, C       int // indices into Working.Vertices
	UVA, UVB, UVC math.Vec2
	SourceFace    int
}

// Hit is the result of a ray cast against the working mesh.
type Hit struct {
	Local    math.Vec3 // intersection in object-local space
	World    math.Vec3 // intersection in world space
	Normal   math.Vec3 // world-space face normal
	Triangle int       // index into Working.Triangles

	// Barycentric weights of the hit relative to the triangle corners.
	w0, w1, w2 float32
}

// Working is a triangulated, temporary copy of a source mesh. It is owned
// by exactly one paint session and must be released on every exit path.
// Ray casts and UV lookups only ever run against a working copy, so the
// barycentric math always sees three-corner faces.
type Working struct {
	Vertices  []math.Vec3
	Colors    []math.Vec3 // per-vertex paint colors, RGB in [0,1]
	Triangles []Triangle

	matrix    math.Mat4
	invMatrix math.Mat4
	bounds    picking.AABB
	hasUV     bool
	released  bool
}

// NewWorking builds the triangulated working copy of src. Polygons with
// more than three corners are fanned around their first corner; faces
// with fewer than three corners are skipped.
func NewWorking(src *Source) *Working {
	w := &Working{
		Vertices:  make([]math.Vec3, len(src.Vertices)),
		Colors:    make([]math.Vec3, len(src.Vertices)),
		matrix:    src.Matrix,
		invMatrix: src.Matrix.Inverse(),
		hasUV:     src.HasUV,
	}
	copy(w.Vertices, src.Vertices)
	for i := range w.Colors {
		w.Colors[i] = math.Vec3{X: 1, Y: 1, Z: 1}
	}

	for fi, face := range src.Faces {
		if len(face.Corners) < 3 {
			continue
		}
		for i := 2; i < len(face.Corners); i++ {
			a, b, c := face.Corners[0], face.Corners[i-1], face.Corners[i]
			w.Triangles = append(w.Triangles, Triangle{
				A: a.Vertex, B: b.Vertex, C: c.Vertex,
				UVA: a.UV, UVB: b.UV, UVC: c.UV,
				SourceFace: fi,
			})
		}
	}

	if len(w.Vertices) > 0 {
		w.bounds = picking.NewAABB(w.Vertices[0], w.Vertices[0])
		for _, v := range w.Vertices[1:] {
			w.bounds = w.bounds.Extend(v)
		}
	}

	return w
}

// Release drops the working copy's geometry. Safe to call more than once;
// only the first call does anything.
func (w *Working) Release() {
	if w.released {
		return
	}
	w.released = true
	w.Vertices = nil
	w.Colors = nil
	w.Triangles = nil
}

// Released reports whether Release has run.
func (w *Working) Released() bool {
	return w.released
}

// Matrix returns the object-to-world transform.
func (w *Working) Matrix() math.Mat4 {
	return w.matrix
}

// InvMatrix returns the world-to-object transform.
func (w *Working) InvMatrix() math.Mat4 {
	return w.invMatrix
}

// HasUV reports whether the mesh carries an active UV layer.
func (w *Working) HasUV() bool {
	return w.hasUV
}

// Raycast intersects a world-space ray with the mesh, bounded by maxDist
// (world units). Returns the nearest hit. A miss is a normal outcome, not
// an error: the stroke simply drifted off the mesh.
func (w *Working) Raycast(r picking.Ray, maxDist float32) (Hit, bool) {
	if w.released || len(w.Triangles) == 0 {
		return Hit{}, false
	}

	local := r.Transformed(w.invMatrix)

	if _, ok := local.IntersectAABB(w.bounds); !ok {
		return Hit{}, false
	}

	best := Hit{}
	bestT := float32(-1)
	for ti, tri := range w.Triangles {
		a, b, c := w.Vertices[tri.A], w.Vertices[tri.B], w.Vertices[tri.C]
		t, w0, w1, w2, ok := local.IntersectTriangle(a, b, c)
		if !ok {
			continue
		}
		if bestT >= 0 && t >= bestT {
			continue
		}
		bestT = t
		best = Hit{
			Local:    local.At(t),
			Triangle: ti,
			w0:       w0, w1: w1, w2: w2,
		}
		normal := b.Sub(a).Cross(c.Sub(a))
		best.Normal = w.matrix.TransformDirection(normal).Normalize()
	}

	if bestT < 0 {
		return Hit{}, false
	}

	best.World = w.matrix.TransformPoint(best.Local)
	if maxDist > 0 && best.World.Distance(r.Origin) > maxDist {
		return Hit{}, false
	}
	return best, true
}

// UVAt interpolates the hit triangle's per-corner UVs at the hit point
// using its barycentric weights. Returns false when the mesh has no
// active UV layer.
func (w *Working) UVAt(h Hit) (math.Vec2, bool) {
	if w.released || !w.hasUV || h.Triangle < 0 || h.Triangle >= len(w.Triangles) {
		return math.Vec2{}, false
	}
	tri := w.Triangles[h.Triangle]
	uv := tri.UVA.Scale(h.w0).
		Add(tri.UVB.Scale(h.w1)).
		Add(tri.UVC.Scale(h.w2))
	return uv, true
}

// PaintVertexColors sets the paint color of every vertex within radius
// (world units) of the world-space point. Used by the vertex paint target.
func (w *Working) PaintVertexColors(world math.Vec3, radius float32, color math.Vec3) int {
	if w.released {
		return 0
	}
	painted := 0
	for i, v := range w.Vertices {
		if w.matrix.TransformPoint(v).Distance(world) <= radius {
			w.Colors[i] = color
			painted++
		}
	}
	return painted
}

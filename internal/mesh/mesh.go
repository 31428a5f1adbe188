// Package mesh holds the paint target's geometry: the source mesh as the
// scene stores it and the triangulated working copy that ray casts and UV
// lookups run against.
package mesh

import (
	"github.com/Hilthkess/flow-map-painter/pkg/math"
)

// Corner is one face corner: a vertex index plus that corner's UV
// coordinate in the active UV layer.
type Corner struct {
	Vertex int
	UV     math.Vec2
}

// Face is a polygon with three or more corners, wound consistently.
type Face struct {
	Corners []Corner
}

// Source is a mesh as the scene stores it: polygons of arbitrary arity,
// object-local vertex positions and an object-to-world transform.
// HasUV marks whether the corner UVs form an active UV layer.
type Source struct {
	Name     string
	Vertices []math.Vec3
	Faces    []Face
	Matrix   math.Mat4
	HasUV    bool
}

// NewSource creates an empty source mesh with an identity transform.
func NewSource(name string) *Source {
	return &Source{
		Name:   name,
		Matrix: math.Identity(),
	}
}

// AddFace appends a polygon over the given vertex indices with their
// per-corner UVs. uvs may be nil when the mesh carries no UV layer.
func (s *Source) AddFace(verts []int, uvs []math.Vec2) {
	corners := make([]Corner, len(verts))
	for i, v := range verts {
		corners[i].Vertex = v
		if uvs != nil {
			corners[i].UV = uvs[i]
		}
	}
	s.Faces = append(s.Faces, Face{Corners: corners})
}

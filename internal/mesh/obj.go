package mesh

import (
	"fmt"

	"github.com/fogleman/fauxgl"

	"github.com/Hilthkess/flow-map-painter/pkg/math"
)

// LoadOBJ reads a Wavefront OBJ file into a source mesh. Vertices are
// deduplicated by position so shared corners stay shared; per-corner UVs
// come from the OBJ's texture coordinates when present.
func LoadOBJ(path string) (*Source, error) {
	fm, err := fauxgl.LoadOBJ(path)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return FromFauxgl(path, fm), nil
}

// LoadFauxgl reads an OBJ file as a fauxgl mesh for software display.
func LoadFauxgl(path string) (*fauxgl.Mesh, error) {
	fm, err := fauxgl.LoadOBJ(path)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return fm, nil
}

// FromFauxgl converts a fauxgl mesh into a source mesh.
func FromFauxgl(name string, fm *fauxgl.Mesh) *Source {
	src := NewSource(name)

	index := make(map[fauxgl.Vector]int)
	vertexOf := func(v fauxgl.Vector) int {
		if i, ok := index[v]; ok {
			return i
		}
		i := len(src.Vertices)
		index[v] = i
		src.Vertices = append(src.Vertices, math.Vec3{
			X: float32(v.X), Y: float32(v.Y), Z: float32(v.Z),
		})
		return i
	}

	hasUV := false
	for _, t := range fm.Triangles {
		verts := []int{
			vertexOf(t.V1.Position),
			vertexOf(t.V2.Position),
			vertexOf(t.V3.Position),
		}
		uvs := []math.Vec2{
			{X: float32(t.V1.Texture.X), Y: float32(t.V1.Texture.Y)},
			{X: float32(t.V2.Texture.X), Y: float32(t.V2.Texture.Y)},
			{X: float32(t.V3.Texture.X), Y: float32(t.V3.Texture.Y)},
		}
		for _, uv := range uvs {
			if uv != (math.Vec2{}) {
				hasUV = true
			}
		}
		src.AddFace(verts, uvs)
	}
	src.HasUV = hasUV

	return src
}

package viewport

import (
	"image"

	"github.com/fogleman/fauxgl"

	"github.com/Hilthkess/flow-map-painter/pkg/math"
)

// Renderer rasterizes the scene mesh in software for display. The GPU is
// left to the presentation blit; shading a single mesh on the CPU keeps
// the paint loop free of GL state.
type Renderer struct {
	mesh       *fauxgl.Mesh
	background fauxgl.Color
	object     fauxgl.Color
	light      fauxgl.Vector
}

// NewRenderer creates a renderer for a mesh. Colors are hex strings.
func NewRenderer(m *fauxgl.Mesh, background, object string) *Renderer {
	return &Renderer{
		mesh:       m,
		background: fauxgl.HexColor(background),
		object:     fauxgl.HexColor(object),
		light:      fauxgl.V(-0.5, 1, 0.75).Normalize(),
	}
}

// Render draws the mesh through the given camera into a new image.
func (r *Renderer) Render(cam *Camera, width, height int) image.Image {
	ctx := fauxgl.NewContext(width, height)
	ctx.ClearColorBufferWith(r.background)

	matrix := toFauxglMatrix(cam.ViewProjection(width, height))
	shader := fauxgl.NewPhongShader(matrix, r.light, toFauxglVector(cam.Eye()))
	shader.ObjectColor = r.object
	ctx.Shader = shader

	ctx.DrawMesh(r.mesh)
	return ctx.Image()
}

// toFauxglMatrix converts a column-major matrix to fauxgl's row-field form.
func toFauxglMatrix(m math.Mat4) fauxgl.Matrix {
	return fauxgl.Matrix{
		X00: float64(m[0]), X01: float64(m[4]), X02: float64(m[8]), X03: float64(m[12]),
		X10: float64(m[1]), X11: float64(m[5]), X12: float64(m[9]), X13: float64(m[13]),
		X20: float64(m[2]), X21: float64(m[6]), X22: float64(m[10]), X23: float64(m[14]),
		X30: float64(m[3]), X31: float64(m[7]), X32: float64(m[11]), X33: float64(m[15]),
	}
}

func toFauxglVector(v math.Vec3) fauxgl.Vector {
	return fauxgl.Vector{X: float64(v.X), Y: float64(v.Y), Z: float64(v.Z)}
}

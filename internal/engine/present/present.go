// Package present blits a CPU-rendered frame to the screen as a
// textured quad. Both the 3D viewport and the 2D canvas are rasterized
// in software; this is the only place that touches GL each frame.
package present

import (
	"fmt"
	"image"
	"image/draw"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Hilthkess/flow-map-painter/internal/engine/shader"
	"github.com/Hilthkess/flow-map-painter/pkg/math"
)

const vertexSrc = `
#version 410 core

layout (location = 0) in vec3 aPos;
layout (location = 1) in vec2 aTexCoord;

uniform mat4 uProjection;

out vec2 vTexCoord;

void main() {
	gl_Position = uProjection * vec4(aPos, 1.0);
	vTexCoord = aTexCoord;
}
`

// Colors encode direction vectors, so the frame is sampled untouched:
// no gamma, no tint.
const fragmentSrc = `
#version 410 core

uniform sampler2D uTexture;

in vec2 vTexCoord;
out vec4 FragColor;

void main() {
	FragColor = texture(uTexture, vTexCoord);
}
`

// Presenter owns the program, quad buffers and frame texture.
type Presenter struct {
	program uint32
	vao     uint32
	vbo     uint32
	texture uint32

	projLoc int32
	texLoc  int32

	texW, texH int32
	screenW    int
	screenH    int

	scratch *image.RGBA
}

// New creates a presenter for the given screen size.
func New(screenW, screenH int) (*Presenter, error) {
	p := &Presenter{screenW: screenW, screenH: screenH}

	var err error
	p.program, err = shader.CompileProgram(vertexSrc, fragmentSrc)
	if err != nil {
		return nil, fmt.Errorf("compiling present shader: %w", err)
	}
	p.projLoc = shader.Uniform(p.program, "uProjection")
	p.texLoc = shader.Uniform(p.program, "uTexture")

	gl.GenVertexArrays(1, &p.vao)
	gl.BindVertexArray(p.vao)
	gl.GenBuffers(1, &p.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, p.vbo)

	// pos(3) + uv(2), 20 bytes per vertex
	stride := int32(5 * 4)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, stride, 3*4)
	gl.EnableVertexAttribArray(1)

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	gl.GenTextures(1, &p.texture)
	gl.BindTexture(gl.TEXTURE_2D, p.texture)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	return p, nil
}

// Resize updates the screen dimensions used for projection.
func (p *Presenter) Resize(screenW, screenH int) {
	p.screenW = screenW
	p.screenH = screenH
}

// Upload copies a frame into the texture. The texture storage is
// reallocated only when the frame size changes.
func (p *Presenter) Upload(img image.Image) {
	rgba := p.toRGBA(img)
	b := rgba.Bounds()
	w, h := int32(b.Dx()), int32(b.Dy())

	gl.BindTexture(gl.TEXTURE_2D, p.texture)
	if w != p.texW || h != p.texH {
		gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, w, h, 0,
			gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(rgba.Pix))
		p.texW, p.texH = w, h
	} else {
		gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, w, h,
			gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(rgba.Pix))
	}
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

func (p *Presenter) toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Stride == rgba.Bounds().Dx()*4 {
		return rgba
	}
	b := img.Bounds()
	if p.scratch == nil || p.scratch.Bounds() != b {
		p.scratch = image.NewRGBA(b)
	}
	draw.Draw(p.scratch, b, img, b.Min, draw.Src)
	return p.scratch
}

// Draw renders the current texture into the given screen rectangle.
// Coordinates are in pixels with the origin at the top left.
func (p *Presenter) Draw(x, y, w, h float32) {
	if p.texW == 0 || p.texH == 0 {
		return
	}

	gl.Disable(gl.BLEND)
	gl.Disable(gl.DEPTH_TEST)

	gl.UseProgram(p.program)
	proj := math.Ortho(0, float32(p.screenW), float32(p.screenH), 0, -1, 1)
	gl.UniformMatrix4fv(p.projLoc, 1, false, proj.Ptr())
	gl.Uniform1i(p.texLoc, 0)

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, p.texture)

	// Image row 0 is the top, so the top edge samples v=0.
	vertices := []float32{
		x, y, 0, 0, 0,
		x + w, y, 0, 1, 0,
		x + w, y + h, 0, 1, 1,
		x, y, 0, 0, 0,
		x + w, y + h, 0, 1, 1,
		x, y + h, 0, 0, 1,
	}

	gl.BindVertexArray(p.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, p.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, unsafe.Pointer(&vertices[0]), gl.STREAM_DRAW)
	gl.DrawArrays(gl.TRIANGLES, 0, 6)

	gl.BindVertexArray(0)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	gl.UseProgram(0)
}

// Close releases the GL resources.
func (p *Presenter) Close() {
	if p.texture != 0 {
		gl.DeleteTextures(1, &p.texture)
	}
	if p.vbo != 0 {
		gl.DeleteBuffers(1, &p.vbo)
	}
	if p.vao != 0 {
		gl.DeleteVertexArrays(1, &p.vao)
	}
	if p.program != 0 {
		gl.DeleteProgram(p.program)
	}
}

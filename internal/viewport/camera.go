package viewport

import (
	"github.com/chewxy/math32"

	"github.com/Hilthkess/flow-map-painter/pkg/math"
)

const (
	minPitch    = -math32.Pi/2 + 0.01
	maxPitch    = math32.Pi/2 - 0.01
	minDistance = 0.2
	maxDistance = 100.0
)

// Camera orbits a target point at a fixed distance. Yaw and pitch are in
// radians; FOV is the vertical field of view in degrees.
type Camera struct {
	Target   math.Vec3
	Distance float32
	Yaw      float32
	Pitch    float32
	FOV      float32
	Near     float32
	Far      float32
}

// NewCamera creates an orbit camera looking at the origin.
func NewCamera(fovDegrees, distance float32) *Camera {
	c := &Camera{
		Distance: distance,
		FOV:      fovDegrees,
		Near:     0.1,
		Far:      1000,
	}
	c.clamp()
	return c
}

// Eye returns the camera position in world space.
func (c *Camera) Eye() math.Vec3 {
	cp := math32.Cos(c.Pitch)
	dir := math.Vec3{
		X: cp * math32.Sin(c.Yaw),
		Y: math32.Sin(c.Pitch),
		Z: cp * math32.Cos(c.Yaw),
	}
	return c.Target.Add(dir.Scale(c.Distance))
}

// Orbit rotates the camera around the target.
func (c *Camera) Orbit(dYaw, dPitch float32) {
	c.Yaw += dYaw
	c.Pitch += dPitch
	c.clamp()
}

// Zoom scales the orbit distance. Factors below 1 move closer.
func (c *Camera) Zoom(factor float32) {
	if factor <= 0 {
		return
	}
	c.Distance *= factor
	c.clamp()
}

func (c *Camera) clamp() {
	if c.Pitch < minPitch {
		c.Pitch = minPitch
	}
	if c.Pitch > maxPitch {
		c.Pitch = maxPitch
	}
	if c.Distance < minDistance {
		c.Distance = minDistance
	}
	if c.Distance > maxDistance {
		c.Distance = maxDistance
	}
}

// View returns the world-to-camera matrix.
func (c *Camera) View() math.Mat4 {
	return math.LookAt(c.Eye(), c.Target, math.Vec3{Y: 1})
}

// Projection returns the perspective projection for a viewport size.
func (c *Camera) Projection(width, height int) math.Mat4 {
	aspect := float32(width) / float32(height)
	return math.Perspective(c.FOV*math32.Pi/180, aspect, c.Near, c.Far)
}

// ViewProjection returns the combined world-to-clip matrix.
func (c *Camera) ViewProjection(width, height int) math.Mat4 {
	return c.Projection(width, height).Mul(c.View())
}

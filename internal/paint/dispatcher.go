package paint

import (
	"fmt"

	"github.com/Hilthkess/flow-map-painter/pkg/math"
)

// Surface selects what is being painted on.
type Surface int

const (
	// SurfaceImage paints a 2D image; directions are screen space.
	SurfaceImage Surface = iota
	// SurfaceMesh paints a 3D mesh; directions use the configured Space.
	SurfaceMesh
)

// Space is the coordinate space directions are encoded in when painting
// a mesh.
type Space int

const (
	SpaceUV Space = iota
	SpaceObject
	SpaceWorld
)

// ParseSpace maps a configuration string to a Space.
func ParseSpace(s string) (Space, error) {
	switch s {
	case "uv_space":
		return SpaceUV, nil
	case "object_space":
		return SpaceObject, nil
	case "world_space":
		return SpaceWorld, nil
	}
	return 0, fmt.Errorf("unknown space type %q", s)
}

func (s Space) String() string {
	switch s {
	case SpaceUV:
		return "uv_space"
	case SpaceObject:
		return "object_space"
	case SpaceWorld:
		return "world_space"
	}
	return "unknown"
}

// Dispatcher selects the encoder variant for a paint mode. It is a pure
// lookup: identical settings always yield the same selection.
type Dispatcher struct {
	Sampler Sampler

	// ActiveInv is the inverse world matrix of the painted mesh.
	ActiveInv math.Mat4
	// ReferenceInv, when set, is the inverse world matrix of an
	// explicitly configured reference object. Object space only.
	ReferenceInv *math.Mat4
}

// Select returns the encoder for the given surface kind and space.
// Image painting always encodes in screen space; the space setting only
// applies to mesh painting.
func (d Dispatcher) Select(surface Surface, space Space) Encoder {
	if surface == SurfaceImage {
		return ScreenEncoder()
	}
	switch space {
	case SpaceObject:
		refInv := d.ActiveInv
		if d.ReferenceInv != nil {
			refInv = *d.ReferenceInv
		}
		return ObjectEncoder(d.Sampler, refInv)
	case SpaceWorld:
		return WorldEncoder(d.Sampler)
	default:
		return UVEncoder(d.Sampler)
	}
}

package paint

import "github.com/Hilthkess/flow-map-painter/pkg/math"

// EventType identifies a pointer event delivered to a paint session.
type EventType int

const (
	EventNone EventType = iota
	EventMove
	EventButtonDown
	EventButtonUp
	EventCancel
)

// Event is one pointer event. Pos is in pixels relative to the drawable
// area's origin. Pressure is 1.0 for mouse input; tablets may deliver
// less.
type Event struct {
	Type     EventType
	Pos      math.Vec2
	Pressure float32
}

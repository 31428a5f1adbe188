// Package paint implements the flow-map painting core: the direction
// encoder, the stroke session state machine and the paint-mode
// dispatcher. The package has no host dependencies; everything it needs
// from the outside comes in through the Sampler and Host interfaces.
package paint

import "github.com/Hilthkess/flow-map-painter/pkg/math"

// Host receives the session's output: brush color changes, dot
// descriptors and cursor preview updates.
type Host interface {
	// SetBrushColor updates the active brush color. Only called with
	// finite channel values.
	SetBrushColor(c Color)
	// PaintDot paints one brush dot at the given screen position.
	// world, when non-nil, is the surface point the dot resolved to.
	PaintDot(pos math.Vec2, pressure float32, world *math.Vec3)
	// MoveCursor moves the live cursor preview.
	MoveCursor(pos math.Vec2)
	// ClearCursor removes the cursor preview. Called on session end.
	ClearCursor()
}

// State is the stroke state machine's current state.
type State int

const (
	// StateIdle: the paint button is up; moves update color and cursor
	// but emit no dots.
	StateIdle State = iota
	// StateStroking: the button is held; spaced dots are emitted.
	StateStroking
	// StateStopped: the session ended; events are ignored.
	StateStopped
)

// Session is one interactive painting session. It owns the per-stroke
// state the event stream mutates and guarantees its cleanup runs exactly
// once, on any exit path.
type Session struct {
	host    Host
	enc     Encoder
	spacing float32
	cleanup func()

	state    State
	furthest math.Vec2 // last position a sample was committed at
	prev     math.Vec2 // previous endpoint for direction computation
	released bool
}

// NewSession creates a session. spacing is the minimum pointer travel in
// pixels before a new sample is emitted; values below zero clamp to
// zero. cleanup releases session resources (working mesh, cursor hook)
// and is invoked at most once.
func NewSession(enc Encoder, host Host, spacing float32, cleanup func()) *Session {
	if spacing < 0 {
		spacing = 0
	}
	return &Session{
		host:    host,
		enc:     enc,
		spacing: spacing,
		cleanup: cleanup,
	}
}

// State returns the current stroke state.
func (s *Session) State() State {
	return s.state
}

// HandleEvent feeds one pointer event through the state machine. Events
// are processed strictly in delivery order; all sampling and dot
// emission for an event completes before HandleEvent returns.
func (s *Session) HandleEvent(ev Event) {
	switch ev.Type {
	case EventButtonDown:
		if s.state == StateStopped {
			return
		}
		// Anchor the stroke. prev is deliberately left alone so color
		// continuity resumes correctly when painting restarts in place.
		s.furthest = ev.Pos
		s.state = StateStroking

	case EventButtonUp:
		if s.state == StateStroking {
			s.state = StateIdle
		}

	case EventMove:
		if s.state == StateStopped {
			return
		}
		s.move(ev)

	case EventCancel:
		s.cancel()
	}
}

// move handles a position update: sample emission when enough distance
// accumulated, otherwise just the cursor preview.
func (s *Session) move(ev Event) {
	pos := ev.Pos

	distance := s.furthest.Distance(pos)
	if distance >= s.spacing {
		s.furthest = pos

		color, world, ok := s.enc.Encode(pos, s.prev)
		if ok && color.IsFinite() {
			s.host.SetBrushColor(color)
		}

		if s.state == StateStroking {
			s.emitDots(pos, distance, ev.Pressure, world)
		}

		s.prev = pos
	}

	s.host.MoveCursor(pos)
}

// emitDots paints the segment from prev to pos. Fast moves subdivide
// into floor(distance/spacing) evenly spaced sub-steps, placed from the
// far end back toward the near end. The divisor is the sub-step count
// itself, so the first fraction is exactly 1.0 and the far endpoint
// always receives a dot.
func (s *Session) emitDots(pos math.Vec2, distance, pressure float32, world *math.Vec3) {
	if s.spacing > 0 && distance > 2*s.spacing {
		substeps := int(distance / s.spacing)
		for step := substeps; step > 0; step-- {
			mix := float32(step) / float32(substeps)
			s.host.PaintDot(s.prev.Lerp(pos, mix), pressure, world)
		}
		return
	}
	s.host.PaintDot(pos, pressure, world)
}

// cancel forces the brush color back to neutral, releases session
// resources and stops the session. Safe to deliver more than once.
func (s *Session) cancel() {
	s.host.SetBrushColor(Neutral)
	s.shutdown()
	s.state = StateStopped
}

// Close releases session resources without touching the brush color.
// Runs the cleanup at most once regardless of how often it is called or
// whether a cancel already ran.
func (s *Session) Close() {
	s.shutdown()
	s.state = StateStopped
}

func (s *Session) shutdown() {
	if s.released {
		return
	}
	s.released = true
	s.host.ClearCursor()
	if s.cleanup != nil {
		s.cleanup()
	}
}

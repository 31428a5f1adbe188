package paint

import (
	"testing"

	"github.com/chewxy/math32"

	"github.com/Hilthkess/flow-map-painter/pkg/math"
)

// fakeHost records everything a session pushes out.
type fakeHost struct {
	colors   []Color
	dots     []math.Vec2
	cursor   []math.Vec2
	cleared  int
	cleanups int
}

func (h *fakeHost) SetBrushColor(c Color) { h.colors = append(h.colors, c) }
func (h *fakeHost) PaintDot(pos math.Vec2, pressure float32, world *math.Vec3) {
	h.dots = append(h.dots, pos)
}
func (h *fakeHost) MoveCursor(pos math.Vec2) { h.cursor = append(h.cursor, pos) }
func (h *fakeHost) ClearCursor()             { h.cleared++ }

func newTestSession(spacing float32) (*Session, *fakeHost) {
	h := &fakeHost{}
	s := NewSession(ScreenEncoder(), h, spacing, func() { h.cleanups++ })
	return s, h
}

func press(s *Session, x, y float32) {
	s.HandleEvent(Event{Type: EventButtonDown, Pos: math.Vec2{X: x, Y: y}, Pressure: 1})
}

func move(s *Session, x, y float32) {
	s.HandleEvent(Event{Type: EventMove, Pos: math.Vec2{X: x, Y: y}, Pressure: 1})
}

func release(s *Session) {
	s.HandleEvent(Event{Type: EventButtonUp, Pressure: 1})
}

func TestSessionStateTransitions(t *testing.T) {
	s, _ := newTestSession(10)
	if s.State() != StateIdle {
		t.Fatalf("initial state = %v, want idle", s.State())
	}
	press(s, 0, 0)
	if s.State() != StateStroking {
		t.Fatalf("state after press = %v, want stroking", s.State())
	}
	release(s)
	if s.State() != StateIdle {
		t.Fatalf("state after release = %v, want idle", s.State())
	}
	s.HandleEvent(Event{Type: EventCancel})
	if s.State() != StateStopped {
		t.Fatalf("state after cancel = %v, want stopped", s.State())
	}
}

func TestSlowMovesEmitNothing(t *testing.T) {
	s, h := newTestSession(10)
	press(s, 0, 0)

	// Every position stays within the spacing threshold of the anchor.
	move(s, 4, 0)
	move(s, 8, 0)
	move(s, 5, 0)
	move(s, 9, 0)

	if len(h.dots) != 0 {
		t.Errorf("emitted %d dots, want 0", len(h.dots))
	}
	if len(h.colors) != 0 {
		t.Errorf("brush color updated %d times, want 0", len(h.colors))
	}
	// The cursor preview still follows every move.
	if len(h.cursor) != 4 {
		t.Errorf("cursor moved %d times, want 4", len(h.cursor))
	}
}

func TestAnchorStaysUntilCommit(t *testing.T) {
	s, h := newTestSession(10)
	press(s, 0, 0)

	// 9 px from the anchor: below threshold, anchor must not advance.
	move(s, 9, 0)
	if len(h.dots) != 0 {
		t.Fatal("sub-threshold move emitted a dot")
	}

	// 18 px from the original anchor triggers, even though it is only
	// 9 px past the previous event.
	move(s, 18, 0)
	if len(h.dots) != 1 {
		t.Fatalf("emitted %d dots, want 1", len(h.dots))
	}
}

func TestSingleStepDot(t *testing.T) {
	s, h := newTestSession(10)
	press(s, 0, 0)

	// 15 px is over the threshold but under 2*spacing: exactly one dot
	// at the new position.
	move(s, 15, 0)
	if len(h.dots) != 1 {
		t.Fatalf("emitted %d dots, want 1", len(h.dots))
	}
	if h.dots[0] != (math.Vec2{X: 15}) {
		t.Errorf("dot at %v, want (15, 0)", h.dots[0])
	}
}

func TestFastMoveSubdivides(t *testing.T) {
	s, h := newTestSession(10)
	press(s, 0, 0)

	// A 52 px jump with spacing 10 subdivides into floor(5.2) = 5 dots
	// at fractions 5/5, 4/5, 3/5, 2/5, 1/5 of the segment, far end
	// first. The 5/5 fraction repainting the endpoint is deliberate.
	move(s, 52, 0)

	want := []float32{52, 41.6, 31.2, 20.8, 10.4}
	if len(h.dots) != len(want) {
		t.Fatalf("emitted %d dots, want %d", len(h.dots), len(want))
	}
	for i, x := range want {
		if math32.Abs(h.dots[i].X-x) > 1e-3 || h.dots[i].Y != 0 {
			t.Errorf("dot %d at %v, want (%v, 0)", i, h.dots[i], x)
		}
	}
}

func TestIdleMovesUpdateColorOnly(t *testing.T) {
	s, h := newTestSession(10)

	// No button held: a committed sample updates the brush color but
	// paints nothing.
	move(s, 20, 0)
	if len(h.colors) != 1 {
		t.Fatalf("brush color updated %d times, want 1", len(h.colors))
	}
	if len(h.dots) != 0 {
		t.Errorf("emitted %d dots while idle, want 0", len(h.dots))
	}
}

func TestColorContinuityAcrossRelease(t *testing.T) {
	s, h := newTestSession(10)
	press(s, 0, 0)
	move(s, 10, 0) // commits, prev = (10, 0)
	release(s)

	// prev survives the release: the next committed sample encodes the
	// direction from (10,0), not from some reset origin.
	move(s, 10, 10)
	last := h.colors[len(h.colors)-1]
	if math32.Abs(last[0]-0.5) > 1e-5 || math32.Abs(last[1]-1.0) > 1e-5 {
		t.Errorf("color after release = %v, want (0.5, 1.0, 0)", last)
	}
}

func TestCancelResetsBrushAndCleansUpOnce(t *testing.T) {
	s, h := newTestSession(10)
	press(s, 0, 0)
	move(s, 52, 0)

	s.HandleEvent(Event{Type: EventCancel})
	last := h.colors[len(h.colors)-1]
	if last != Neutral {
		t.Errorf("brush color after cancel = %v, want %v", last, Neutral)
	}
	if h.cleanups != 1 || h.cleared != 1 {
		t.Fatalf("cleanup ran %d times, cursor cleared %d times, want 1 and 1", h.cleanups, h.cleared)
	}

	// A second cancel must not release resources again.
	s.HandleEvent(Event{Type: EventCancel})
	if h.cleanups != 1 || h.cleared != 1 {
		t.Errorf("repeated cancel reran cleanup (%d) or cursor clear (%d)", h.cleanups, h.cleared)
	}

	// Events after cancel are ignored.
	dots := len(h.dots)
	press(s, 0, 0)
	move(s, 100, 0)
	if len(h.dots) != dots {
		t.Error("stopped session still painted dots")
	}
}

func TestCloseRunsCleanupOnce(t *testing.T) {
	s, h := newTestSession(10)
	s.Close()
	s.Close()
	if h.cleanups != 1 {
		t.Errorf("cleanup ran %d times, want 1", h.cleanups)
	}
	// Close does not touch the brush color.
	if len(h.colors) != 0 {
		t.Errorf("Close changed the brush color %d times", len(h.colors))
	}
}

func TestCancelAfterCloseDoesNotRerunCleanup(t *testing.T) {
	s, h := newTestSession(10)
	s.Close()
	s.HandleEvent(Event{Type: EventCancel})
	if h.cleanups != 1 {
		t.Errorf("cleanup ran %d times, want 1", h.cleanups)
	}
}

func TestNonFiniteColorNeverReachesHost(t *testing.T) {
	bad := &fakeSampler{
		sample: func(p math.Vec2) (SurfaceHit, bool) {
			return SurfaceHit{World: math.Vec3{X: math32.NaN(), Y: p.Y}}, true
		},
	}
	h := &fakeHost{}
	s := NewSession(WorldEncoder(bad), h, 10, nil)

	press(s, 0, 0)
	move(s, 50, 0)

	for _, c := range h.colors {
		if !c.IsFinite() {
			t.Fatalf("non-finite color %v reached the host", c)
		}
	}
}

func TestMissKeepsPreviousColor(t *testing.T) {
	h := &fakeHost{}
	s := NewSession(UVEncoder(&fakeSampler{}), h, 10, nil) // all rays miss

	press(s, 0, 0)
	move(s, 50, 0)

	if len(h.colors) != 0 {
		t.Errorf("ray miss updated the brush color %d times, want 0", len(h.colors))
	}
	// The dot is still painted with whatever color the brush had.
	if len(h.dots) == 0 {
		t.Error("expected dots even when the color sample missed")
	}
}

func TestNegativeSpacingClamps(t *testing.T) {
	s, h := newTestSession(-5)
	press(s, 0, 0)
	move(s, 1, 0)
	if len(h.dots) != 1 {
		t.Errorf("emitted %d dots, want 1 (spacing clamped to 0)", len(h.dots))
	}
}

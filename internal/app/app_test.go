package app

import (
	"testing"

	"github.com/Hilthkess/flow-map-painter/internal/canvas"
	"github.com/Hilthkess/flow-map-painter/internal/config"
	"github.com/Hilthkess/flow-map-painter/internal/mesh"
	"github.com/Hilthkess/flow-map-painter/internal/paint"
	"github.com/Hilthkess/flow-map-painter/internal/viewport"
	"github.com/Hilthkess/flow-map-painter/pkg/math"
)

// testApp builds an App without a window: just the paint routing.
func testApp(t *testing.T, meshMode bool) *App {
	t.Helper()

	cfg := config.Default()
	cfg.Canvas.Width = 100
	cfg.Canvas.Height = 100
	cfg.Canvas.Background = "#000000"
	cfg.Paint.BrushSize = 10

	a := &App{
		cfg:      cfg,
		width:    200,
		height:   100,
		meshMode: meshMode,
		canvas:   canvas.New(100, 100, "#000000", 10),
	}

	if meshMode {
		src := mesh.NewSource("quad")
		src.Vertices = []math.Vec3{
			{X: -1, Y: -1}, {X: 1, Y: -1}, {X: 1, Y: 1}, {X: -1, Y: 1},
		}
		src.AddFace([]int{0, 1, 2, 3}, []math.Vec2{
			{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1},
		})
		src.HasUV = true
		a.working = mesh.NewWorking(src)
		cam := viewport.NewCamera(45, 3)
		a.vp = viewport.New(a.working, cam, a.width, a.height, 0)
	}

	return a
}

func paintedAt(a *App, x, y int) bool {
	r, g, b, _ := a.canvas.Image().At(x, y).RGBA()
	return r != 0 || g != 0 || b != 0
}

func TestImageModeDotMapsToCanvas(t *testing.T) {
	a := testApp(t, false)
	a.SetBrushColor(paint.Color{1, 1, 1})

	// Window is 200x100, canvas 100x100: window (100,50) is canvas (50,50).
	a.PaintDot(math.Vec2{X: 100, Y: 50}, 1, nil)

	if !paintedAt(a, 50, 50) {
		t.Error("expected dot at canvas center")
	}
	if paintedAt(a, 90, 50) {
		t.Error("expected right edge untouched")
	}
}

func TestMeshModeDotLandsAtUV(t *testing.T) {
	a := testApp(t, true)
	a.SetBrushColor(paint.Color{1, 1, 1})

	// The viewport center ray hits the quad at uv (0.5, 0.5), which is
	// the canvas center with V measured from the bottom.
	a.PaintDot(math.Vec2{X: 100, Y: 50}, 1, nil)

	if !paintedAt(a, 50, 50) {
		t.Error("expected dot at canvas center")
	}
}

func TestMeshModeMissDropsDot(t *testing.T) {
	a := testApp(t, true)
	a.SetBrushColor(paint.Color{1, 1, 1})

	a.PaintDot(math.Vec2{X: 1, Y: 1}, 1, nil)

	for y := 0; y < 100; y += 10 {
		for x := 0; x < 100; x += 10 {
			if paintedAt(a, x, y) {
				t.Fatalf("expected empty canvas, found paint at (%d,%d)", x, y)
			}
		}
	}
}

func TestVertexPaint(t *testing.T) {
	a := testApp(t, true)
	a.cfg.Paint.VertexPaint = true
	a.SetBrushColor(paint.Color{1, 0, 0})
	a.cfg.Paint.BrushSize = 400 // large world radius so corners are reached
	a.canvas.SetBrushSize(400)

	a.PaintDot(math.Vec2{X: 100, Y: 50}, 1, nil)

	colors := a.working.Colors
	changed := false
	for _, c := range colors {
		if c != (math.Vec3{X: 1, Y: 1, Z: 1}) {
			changed = true
		}
	}
	if !changed {
		t.Error("expected vertex colors to change")
	}
}

func TestSessionCancelReleasesWorking(t *testing.T) {
	a := testApp(t, true)
	a.session = a.buildSession()

	a.session.HandleEvent(paint.Event{Type: paint.EventCancel})

	if !a.working.Released() {
		t.Error("expected working mesh released on cancel")
	}
	if a.canvas.BrushColor() != paint.Neutral {
		t.Error("expected brush reset to neutral on cancel")
	}

	// A second cancel is a no-op.
	a.session.HandleEvent(paint.Event{Type: paint.EventCancel})
}

func TestCursorRouting(t *testing.T) {
	a := testApp(t, false)

	a.MoveCursor(math.Vec2{X: 100, Y: 50})
	if !a.cursorVisible {
		t.Error("expected cursor visible after move")
	}

	a.ClearCursor()
	if a.cursorVisible {
		t.Error("expected cursor hidden after clear")
	}
}

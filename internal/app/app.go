// Package app wires the window, input, canvas, viewport and paint
// session into the interactive flow-map painting tool.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Hilthkess/flow-map-painter/internal/canvas"
	"github.com/Hilthkess/flow-map-painter/internal/config"
	"github.com/Hilthkess/flow-map-painter/internal/engine/input"
	"github.com/Hilthkess/flow-map-painter/internal/engine/present"
	"github.com/Hilthkess/flow-map-painter/internal/engine/window"
	"github.com/Hilthkess/flow-map-painter/internal/export"
	"github.com/Hilthkess/flow-map-painter/internal/logger"
	"github.com/Hilthkess/flow-map-painter/internal/mesh"
	"github.com/Hilthkess/flow-map-painter/internal/paint"
	"github.com/Hilthkess/flow-map-painter/internal/viewport"
	"github.com/Hilthkess/flow-map-painter/pkg/math"
)

const orbitSensitivity = 0.008

// App is the running application.
type App struct {
	cfg *config.Config

	win  *window.Window
	in   *input.Input
	pres *present.Presenter

	canvas  *canvas.Canvas
	working *mesh.Working
	vp      *viewport.Viewport
	rend    *viewport.Renderer
	refInv  *math.Mat4

	session  *paint.Session
	uploader *export.Uploader

	width, height int
	meshMode      bool
	showCanvas    bool // mesh mode: Tab toggles flow map view
	orbiting      bool
	running       bool

	cursorPos     math.Vec2
	cursorVisible bool
}

// New builds the application from a validated configuration. The window
// and GL context are created here; call Run next and Close last.
func New(cfg *config.Config) (*App, error) {
	a := &App{
		cfg:      cfg,
		width:    cfg.Window.Width,
		height:   cfg.Window.Height,
		meshMode: cfg.Paint.Mode == "mesh",
	}

	var err error
	a.win, err = window.New(window.Config{
		Title:      "Flow Map Painter",
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("creating window: %w", err)
	}

	a.pres, err = present.New(a.width, a.height)
	if err != nil {
		a.win.Close()
		return nil, fmt.Errorf("creating presenter: %w", err)
	}

	a.in = input.New()
	a.canvas = canvas.New(cfg.Canvas.Width, cfg.Canvas.Height,
		cfg.Canvas.Background, cfg.Paint.BrushSize)

	if a.meshMode {
		if err := a.setupScene(); err != nil {
			a.pres.Close()
			a.win.Close()
			return nil, err
		}
	}

	a.session = a.buildSession()

	if cfg.Export.Enabled {
		a.uploader, err = export.NewUploader(cfg.Export)
		if err != nil {
			logger.Warn("export disabled", zap.Error(err))
		}
	}

	return a, nil
}

func (a *App) setupScene() error {
	src, err := mesh.LoadOBJ(a.cfg.Scene.Mesh)
	if err != nil {
		return fmt.Errorf("loading mesh: %w", err)
	}
	a.working = mesh.NewWorking(src)

	cam := viewport.NewCamera(a.cfg.Scene.FOV, a.cfg.Scene.Distance)
	a.vp = viewport.New(a.working, cam, a.width, a.height, a.cfg.Paint.TraceDistance)

	fm, err := mesh.LoadFauxgl(a.cfg.Scene.Mesh)
	if err != nil {
		return fmt.Errorf("loading mesh for display: %w", err)
	}
	a.rend = viewport.NewRenderer(fm, "#202328", "#9aa0a8")

	if ref := a.cfg.Paint.ReferenceObject; ref != "" {
		refSrc, err := mesh.LoadOBJ(ref)
		if err != nil {
			return fmt.Errorf("loading reference object: %w", err)
		}
		refWorking := mesh.NewWorking(refSrc)
		inv := refWorking.InvMatrix()
		a.refInv = &inv
		refWorking.Release()
	}

	logger.Info("scene loaded",
		zap.String("mesh", a.cfg.Scene.Mesh),
		zap.Bool("uv", a.working.HasUV()),
	)
	return nil
}

// buildSession selects the encoder for the configured mode and space and
// creates the stroke session. The cleanup releases the working mesh; the
// session guarantees it runs exactly once.
func (a *App) buildSession() *paint.Session {
	surface := paint.SurfaceImage
	var disp paint.Dispatcher
	if a.meshMode {
		surface = paint.SurfaceMesh
		disp.Sampler = a.vp
		disp.ActiveInv = a.working.InvMatrix()
		disp.ReferenceInv = a.refInv
	}

	space, _ := paint.ParseSpace(a.cfg.Paint.SpaceType)
	enc := disp.Select(surface, space)

	cleanup := func() {
		if a.working != nil {
			a.working.Release()
		}
	}
	return paint.NewSession(enc, a, a.cfg.Paint.BrushSpacing, cleanup)
}

// Run drives the main loop until quit.
func (a *App) Run() error {
	a.running = true
	logger.Info("starting paint loop")

	for a.running {
		if a.in.Update() {
			a.running = false
			break
		}
		for _, ev := range a.in.Events() {
			a.handleEvent(ev)
		}

		a.renderFrame()
	}

	a.session.Close()
	return a.finish()
}

func (a *App) handleEvent(ev input.Event) {
	switch ev.Type {
	case input.EventWindowResize:
		a.width, a.height = ev.Width, ev.Height
		a.pres.Resize(ev.Width, ev.Height)
		if a.vp != nil {
			a.vp.Resize(ev.Width, ev.Height)
		}

	case input.EventKeyDown:
		switch ev.Key {
		case sdl.SCANCODE_ESCAPE:
			a.session.HandleEvent(paint.Event{Type: paint.EventCancel})
			a.running = false
		case sdl.SCANCODE_TAB:
			if a.meshMode {
				a.showCanvas = !a.showCanvas
			}
		case sdl.SCANCODE_S:
			a.saveCanvas()
		}

	case input.EventMouseDown:
		switch ev.Button {
		case input.ButtonLeft:
			a.session.HandleEvent(paint.Event{
				Type:     paint.EventButtonDown,
				Pos:      math.Vec2{X: float32(ev.X), Y: float32(ev.Y)},
				Pressure: 1,
			})
		case input.ButtonMiddle, input.ButtonRight:
			a.orbiting = true
		}

	case input.EventMouseUp:
		switch ev.Button {
		case input.ButtonLeft:
			a.session.HandleEvent(paint.Event{Type: paint.EventButtonUp})
		case input.ButtonMiddle, input.ButtonRight:
			a.orbiting = false
		}

	case input.EventMouseMove:
		if a.orbiting && a.vp != nil {
			a.vp.Orbit(float32(ev.RelX)*orbitSensitivity, float32(ev.RelY)*orbitSensitivity)
			return
		}
		a.session.HandleEvent(paint.Event{
			Type:     paint.EventMove,
			Pos:      math.Vec2{X: float32(ev.X), Y: float32(ev.Y)},
			Pressure: 1,
		})

	case input.EventMouseWheel:
		if a.vp != nil && ev.WheelY != 0 {
			factor := float32(1)
			for n := ev.WheelY; n > 0; n-- {
				factor *= 0.9
			}
			for n := ev.WheelY; n < 0; n++ {
				factor *= 1.1
			}
			a.vp.Zoom(factor)
		}
	}
}

func (a *App) renderFrame() {
	if a.meshMode && !a.showCanvas {
		img := a.rend.Render(a.vp.Camera(), a.width, a.height)
		if a.cursorVisible {
			img = drawCursorRing(img, a.cursorPos, a.canvas.BrushSize(), a.canvas.BrushColor())
		}
		a.pres.Upload(img)
	} else {
		a.pres.Upload(a.canvas.Composite())
	}
	a.pres.Draw(0, 0, float32(a.width), float32(a.height))
	a.win.SwapBuffers()
}

func (a *App) saveCanvas() {
	out := a.cfg.Canvas.Output
	if err := a.canvas.SavePNG(out); err != nil {
		logger.Error("saving flow map failed", zap.Error(err))
		return
	}
	logger.Info("flow map saved", zap.String("path", out))
}

// finish saves the flow map and uploads it when export is configured.
func (a *App) finish() error {
	if err := a.canvas.SavePNG(a.cfg.Canvas.Output); err != nil {
		return fmt.Errorf("saving flow map: %w", err)
	}
	logger.Info("flow map saved", zap.String("path", a.cfg.Canvas.Output))

	if a.uploader != nil {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		key, err := a.uploader.UploadPNG(ctx, a.canvas.Image(), a.cfg.Canvas.Output)
		if err != nil {
			return fmt.Errorf("uploading flow map: %w", err)
		}
		logger.Info("flow map uploaded", zap.String("key", key))
	}

	// Persist settings so brush tweaks survive restarts.
	if err := a.cfg.Save(); err != nil {
		logger.Warn("saving settings failed", zap.Error(err))
	}
	return nil
}

// Close releases window and GL resources.
func (a *App) Close() {
	if a.pres != nil {
		a.pres.Close()
	}
	if a.win != nil {
		a.win.Close()
	}
}

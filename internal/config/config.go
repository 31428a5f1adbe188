// Package config handles painter configuration loading and management.
package config

import (
	"fmt"

	"github.com/Hilthkess/flow-map-painter/internal/paint"
)

// Config holds all painter settings.
type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Paint   PaintConfig   `yaml:"paint"`
	Canvas  CanvasConfig  `yaml:"canvas"`
	Scene   SceneConfig   `yaml:"scene"`
	Export  ExportConfig  `yaml:"export"`
	Logging LoggingConfig `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
}

// PaintConfig holds the brush and direction-encoding settings.
type PaintConfig struct {
	// Mode selects the paint surface: "image" (2D) or "mesh" (3D).
	Mode string `yaml:"mode"`
	// BrushSpacing is how far the pointer travels, in pixels, before a
	// new dot is painted. Minimum 0.
	BrushSpacing float32 `yaml:"brush_spacing"`
	// BrushSize is the dot radius in pixels.
	BrushSize float32 `yaml:"brush_size"`
	// TraceDistance bounds the ray cast depth in scene units. Minimum 0.
	TraceDistance float32 `yaml:"trace_distance"`
	// SpaceType is the direction coordinate space for mesh painting:
	// uv_space, object_space or world_space.
	SpaceType string `yaml:"space_type"`
	// ReferenceObject names the object whose frame object_space uses.
	// Empty means the painted mesh itself.
	ReferenceObject string `yaml:"reference_object"`
	// VertexPaint additionally writes vertex colors on the mesh.
	VertexPaint bool `yaml:"vertex_paint"`
}

// CanvasConfig holds the flow-map canvas settings.
type CanvasConfig struct {
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Background string `yaml:"background"` // hex color
	Output     string `yaml:"output"`     // PNG path written on exit
}

// SceneConfig holds the 3D scene settings for mesh painting.
type SceneConfig struct {
	Mesh     string  `yaml:"mesh"` // OBJ path
	FOV      float32 `yaml:"fov"`  // vertical field of view, degrees
	Distance float32 `yaml:"distance"`
}

// ExportConfig holds optional S3 upload settings for finished maps.
type ExportConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Bucket    string `yaml:"bucket"`
	Endpoint  string `yaml:"endpoint"`
	Region    string `yaml:"region"`
	KeyPrefix string `yaml:"key_prefix"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
		},
		Paint: PaintConfig{
			Mode:          "mesh",
			BrushSpacing:  20,
			BrushSize:     35,
			TraceDistance: 1000,
			SpaceType:     "uv_space",
		},
		Canvas: CanvasConfig{
			Width:      1024,
			Height:     1024,
			Background: "#808080",
			Output:     "flowmap.png",
		},
		Scene: SceneConfig{
			FOV:      45,
			Distance: 3,
		},
		Export: ExportConfig{
			Region:    "us-east-1",
			KeyPrefix: "flowmaps/",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate clamps out-of-range values and rejects settings that have no
// usable interpretation.
func (c *Config) Validate() error {
	if c.Paint.BrushSpacing < 0 {
		c.Paint.BrushSpacing = 0
	}
	if c.Paint.TraceDistance < 0 {
		c.Paint.TraceDistance = 0
	}
	if c.Paint.BrushSize < 1 {
		c.Paint.BrushSize = 1
	}

	if c.Paint.Mode != "image" && c.Paint.Mode != "mesh" {
		return fmt.Errorf("paint.mode must be \"image\" or \"mesh\", got %q", c.Paint.Mode)
	}
	if _, err := paint.ParseSpace(c.Paint.SpaceType); err != nil {
		return fmt.Errorf("paint.space_type: %w", err)
	}
	if c.Paint.Mode == "mesh" && c.Scene.Mesh == "" {
		return fmt.Errorf("scene.mesh is required in mesh mode")
	}
	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
		return fmt.Errorf("canvas size %dx%d is not paintable", c.Canvas.Width, c.Canvas.Height)
	}
	if c.Export.Enabled && c.Export.Bucket == "" {
		return fmt.Errorf("export.bucket is required when export is enabled")
	}
	return nil
}

package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagMesh       = flag.String("mesh", "", "OBJ mesh to paint on")
	flagMode       = flag.String("mode", "", "Paint surface: image or mesh")
	flagSpace      = flag.String("space", "", "Direction space: uv_space, object_space or world_space")
	flagSpacing    = flag.Float64("spacing", -1, "Brush spacing in pixels")
	flagOutput     = flag.String("output", "", "Flow map PNG output path")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagUpload     = flag.Bool("upload", false, "Upload the finished map to S3")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagMesh != "" {
		cfg.Scene.Mesh = *flagMesh
	}
	if *flagMode != "" {
		cfg.Paint.Mode = *flagMode
	}
	if *flagSpace != "" {
		cfg.Paint.SpaceType = *flagSpace
	}
	if *flagSpacing >= 0 {
		cfg.Paint.BrushSpacing = float32(*flagSpacing)
	}
	if *flagOutput != "" {
		cfg.Canvas.Output = *flagOutput
	}
	if *flagWidth > 0 {
		cfg.Window.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Window.Height = *flagHeight
	}
	if *flagFullscreen {
		cfg.Window.Fullscreen = true
	}
	if *flagUpload {
		cfg.Export.Enabled = true
	}
}

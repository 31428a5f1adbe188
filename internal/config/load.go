package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Load loads configuration with priority: defaults < file < env < flags.
func Load() (*Config, error) {
	// Start with defaults
	cfg := Default()

	// Try to load from file (explicit path takes priority)
	configPath := ConfigPath()
	if configPath == "" {
		configPath = findConfigFile()
	}

	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
		}
	}

	// Pull a local .env into the environment, then apply env overrides.
	// Missing .env is fine.
	_ = godotenv.Load()
	applyEnv(cfg)

	// Apply CLI flags (highest priority)
	applyFlags(cfg)

	return cfg, nil
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		"./flowpaint.yaml",
		filepath.Join(ConfigDir(), "flowpaint.yaml"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "FlowPaint")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "FlowPaint")
	default: // Linux and others
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "flowpaint")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "flowpaint")
	}
}

// loadFromFile loads config from a YAML file, merging with existing values.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// applyEnv applies environment overrides. S3 credentials usually arrive
// this way rather than through the config file.
func applyEnv(cfg *Config) {
	if v := os.Getenv("FLOWPAINT_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("FLOWPAINT_OUTPUT"); v != "" {
		cfg.Canvas.Output = v
	}
	if v := os.Getenv("FLOWPAINT_SPACE_TYPE"); v != "" {
		cfg.Paint.SpaceType = v
	}
	if v := os.Getenv("FLOWPAINT_BRUSH_SPACING"); v != "" {
		if f, err := strconv.ParseFloat(v, 32); err == nil {
			cfg.Paint.BrushSpacing = float32(f)
		}
	}
	if v := os.Getenv("S3_BUCKET"); v != "" {
		cfg.Export.Bucket = v
	}
	if v := os.Getenv("S3_ENDPOINT"); v != "" {
		cfg.Export.Endpoint = v
	}
	if v := os.Getenv("S3_REGION"); v != "" {
		cfg.Export.Region = v
	}
	if v := os.Getenv("S3_ACCESS_KEY"); v != "" {
		cfg.Export.AccessKey = v
	}
	if v := os.Getenv("S3_SECRET_KEY"); v != "" {
		cfg.Export.SecretKey = v
	}
}

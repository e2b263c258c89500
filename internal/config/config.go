package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// Config holds all configurable paths and run settings.
type Config struct {
	// Paths
	BaseDir   string `json:"base_dir"`
	SkinDir   string `json:"skin_dir"`
	SceneFile string `json:"scene_file"`
	OutputDir string `json:"output_dir"`

	// Run settings
	OverlayScale int    `json:"overlay_scale"`
	Workers      int    `json:"workers"`
	LogLevel     string `json:"log_level"`
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Resolve fills in any empty fields with defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.BaseDir != "" {
		c.BaseDir = flags.BaseDir
	}
	if flags.SkinDir != "" {
		c.SkinDir = flags.SkinDir
	}
	if flags.SceneFile != "" {
		c.SceneFile = flags.SceneFile
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.OverlayScale > 0 {
		c.OverlayScale = flags.OverlayScale
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.LogLevel != "" {
		c.LogLevel = flags.LogLevel
	}

	if c.BaseDir == "" {
		c.BaseDir, _ = os.Getwd()
	}

	// Resolve relative paths against base dir
	c.SkinDir = resolvePath(c.BaseDir, c.SkinDir, "skins")
	c.SceneFile = resolvePath(c.BaseDir, c.SceneFile, "scene.json")
	c.OutputDir = resolvePath(c.BaseDir, c.OutputDir, "out")

	// Defaults for run settings
	if c.OverlayScale <= 0 {
		c.OverlayScale = 4
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

// Level parses LogLevel. Unknown names fall back to info.
func (c *Config) Level() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToLower(c.LogLevel))); err != nil {
		return slog.LevelInfo
	}
	return level
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	BaseDir      string
	SkinDir      string
	SceneFile    string
	OutputDir    string
	OverlayScale int
	Workers      int
	LogLevel     string
}

func resolvePath(base, path, fallback string) string {
	if path == "" {
		path = fallback
	}
	if filepath.IsAbs(path) || base == "" {
		return path
	}
	return filepath.Join(base, path)
}

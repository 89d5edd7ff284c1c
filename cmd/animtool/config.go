package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/milk9111/spritefight/render"
	"github.com/pelletier/go-toml/v2"
)

const (
	defaultWindowWidth  = 640
	defaultWindowHeight = 360
)

// Config is the optional animtool.toml. Empty directories fall back to the
// assets bundled with the binary.
type Config struct {
	AnimationsDir string  `toml:"animations_dir"`
	SheetsDir     string  `toml:"sheets_dir"`
	ResourceFile  string  `toml:"resource_file"`
	PixelsPerUnit float64 `toml:"pixels_per_unit"`
	WindowWidth   int     `toml:"window_width"`
	WindowHeight  int     `toml:"window_height"`
	ShowBoxes     bool    `toml:"show_boxes"`
}

func defaultConfig() Config {
	return Config{
		PixelsPerUnit: render.DefaultPixelsPerUnit,
		WindowWidth:   defaultWindowWidth,
		WindowHeight:  defaultWindowHeight,
		ShowBoxes:     true,
	}
}

// loadConfig reads path over the defaults. An empty path returns the defaults.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if cfg.PixelsPerUnit <= 0 {
		return cfg, fmt.Errorf("pixels_per_unit must be positive, got %v", cfg.PixelsPerUnit)
	}
	if cfg.WindowWidth <= 0 || cfg.WindowHeight <= 0 {
		return cfg, fmt.Errorf("invalid window size %dx%d", cfg.WindowWidth, cfg.WindowHeight)
	}
	return cfg, nil
}

// sheetsDir defaults to the animations directory, where small projects keep
// sheets next to their animation files.
func (c Config) sheetsDir() string {
	if c.SheetsDir != "" {
		return c.SheetsDir
	}
	return c.AnimationsDir
}

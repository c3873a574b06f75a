package config

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"strings"
)

// Preview limits. The render canvas is PreviewSize*Supersample on each edge.
const (
	MaxPreviewSize = 2048
	MaxSupersample = 4
)

// Config holds output locations, preview settings and server options.
type Config struct {
	// Paths
	OutputDir string `json:"output_dir"`

	// Export / preview settings
	Format        string `json:"format"`         // json, yaml or msgpack
	PreviewFormat string `json:"preview_format"` // webp, png or tga; "" disables batch previews
	PreviewSize   int    `json:"preview_size"`
	Supersample   int    `json:"supersample"`
	View          string `json:"view"` // top, front or side
	Labels        bool   `json:"labels"`
	Workers       int    `json:"workers"`

	// Server
	Addr           string `json:"addr"`
	RequestLogging bool   `json:"request_logging"`
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
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Format != "" {
		c.Format = flags.Format
	}
	if flags.PreviewFormat != "" {
		c.PreviewFormat = flags.PreviewFormat
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.Addr != "" {
		c.Addr = flags.Addr
	}

	if c.OutputDir == "" {
		c.OutputDir = "out"
	}
	c.Format = strings.ToLower(c.Format)
	if c.Format == "" {
		c.Format = "json"
	}
	c.PreviewFormat = strings.ToLower(c.PreviewFormat)
	if c.PreviewSize <= 0 {
		c.PreviewSize = 512
	}
	c.PreviewSize = min(c.PreviewSize, MaxPreviewSize)
	if c.Supersample <= 0 {
		c.Supersample = 2
	}
	c.Supersample = min(c.Supersample, MaxSupersample)
	if c.View == "" {
		c.View = "top"
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.Addr == "" {
		c.Addr = ":8080"
	}
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	OutputDir     string
	Format        string
	PreviewFormat string
	Workers       int
	Addr          string
}

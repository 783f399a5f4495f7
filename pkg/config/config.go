// Package config provides configuration loading and management.
package config

import (
	"fmt"
	"image/color"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/user/framegrid/pkg/orchestrator"
	"github.com/user/framegrid/pkg/pipeline"
)

// Config represents the full configuration for framegrid.
type Config struct {
	// Tools
	FFmpegPath  string `yaml:"ffmpeg_path"`
	FFprobePath string `yaml:"ffprobe_path"`
	ChromePath  string `yaml:"chrome_path"`
	// AutoInstallChrome downloads Chromium when no browser is found.
	AutoInstallChrome bool `yaml:"auto_install_chrome"`

	Sampler  SamplerConfig  `yaml:"sampler"`
	Splitter SplitterConfig `yaml:"splitter"`
	Server   ServerConfig   `yaml:"server"`

	// Debug
	Debug    bool   `yaml:"debug"`
	DebugDir string `yaml:"debug_dir"`
}

// SamplerConfig holds the frame-sampler settings.
type SamplerConfig struct {
	SettleDelayMs    int  `yaml:"settle_delay_ms"`
	CaptureTimeoutMs int  `yaml:"capture_timeout_ms"`
	FastProbe        bool `yaml:"fast_probe"`

	Preview PreviewConfig `yaml:"preview"`
}

// PreviewConfig styles the optional PNG contact sheet.
type PreviewConfig struct {
	CellWidth  int    `yaml:"cell_width"`
	Gap        int    `yaml:"gap"`
	Labels     bool   `yaml:"labels"`
	Background string `yaml:"background"`
}

// SplitterConfig holds the sheet-splitter settings.
type SplitterConfig struct {
	DelayMs     int  `yaml:"delay_ms"`
	Workers     int  `yaml:"workers"`
	Quality     int  `yaml:"quality"`
	HideDelayMs int  `yaml:"hide_delay_ms"`
	Dither      bool `yaml:"dither"`
}

// ServerConfig holds the HTTP service settings.
type ServerConfig struct {
	Addr           string   `yaml:"addr"`
	MaxJobs        int      `yaml:"max_jobs"`
	MaxUploadMB    int      `yaml:"max_upload_mb"`
	AllowedOrigins []string `yaml:"allowed_origins"`
	UploadDir      string   `yaml:"upload_dir"`
}

// Defaults returns a Config with default values.
func Defaults() Config {
	anim := pipeline.DefaultAnimationOptions()
	return Config{
		Sampler: SamplerConfig{
			SettleDelayMs: 500,
			FastProbe:     true,
			Preview: PreviewConfig{
				Gap:        8,
				Labels:     true,
				Background: "#ffffff",
			},
		},
		Splitter: SplitterConfig{
			DelayMs:     anim.DelayMs,
			Workers:     anim.Workers,
			Quality:     anim.Quality,
			HideDelayMs: int(orchestrator.DefaultHideDelay / time.Millisecond),
			Dither:      true,
		},
		Server: ServerConfig{
			Addr:           ":8080",
			MaxJobs:        2,
			MaxUploadMB:    512,
			AllowedOrigins: []string{"*"},
		},
		DebugDir: "./debug",
	}
}

// LoadFromFile loads configuration from a YAML file over Defaults.
func LoadFromFile(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}

	return cfg, cfg.Validate()
}

// Validate rejects values no run could use.
func (c Config) Validate() error {
	switch {
	case c.Splitter.DelayMs < 0:
		return fmt.Errorf("splitter.delay_ms must not be negative")
	case c.Splitter.Workers < 0:
		return fmt.Errorf("splitter.workers must not be negative")
	case c.Splitter.Quality < 0:
		return fmt.Errorf("splitter.quality must not be negative")
	case c.Sampler.SettleDelayMs < 0 || c.Sampler.CaptureTimeoutMs < 0:
		return fmt.Errorf("sampler delays must not be negative")
	case c.Server.MaxJobs < 0:
		return fmt.Errorf("server.max_jobs must not be negative")
	}
	return nil
}

// ParseColor parses "#rrggbb" or "#rgb" to a color. Anything else is black.
func ParseColor(hex string) color.Color {
	if len(hex) > 0 && hex[0] == '#' {
		hex = hex[1:]
	}
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return color.Black
	}

	var rgb [3]uint8
	for i := range rgb {
		rgb[i] = hexValue(hex[2*i])<<4 | hexValue(hex[2*i+1])
	}
	return color.RGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: 255}
}

func hexValue(c byte) uint8 {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10
	default:
		return 0
	}
}

// ToSamplerConfig converts Config to orchestrator.SamplerConfig.
func (c Config) ToSamplerConfig() orchestrator.SamplerConfig {
	cfg := orchestrator.DefaultSamplerConfig()
	cfg.SettleDelay = time.Duration(c.Sampler.SettleDelayMs) * time.Millisecond
	cfg.CaptureTimeout = time.Duration(c.Sampler.CaptureTimeoutMs) * time.Millisecond
	cfg.PreviewCellWidth = c.Sampler.Preview.CellWidth
	cfg.PreviewGap = c.Sampler.Preview.Gap
	cfg.PreviewLabels = c.Sampler.Preview.Labels
	cfg.PreviewBackground = ParseColor(c.Sampler.Preview.Background)
	return cfg
}

// ToSplitterConfig converts Config to orchestrator.SplitterConfig.
func (c Config) ToSplitterConfig() orchestrator.SplitterConfig {
	cfg := orchestrator.DefaultSplitterConfig()
	cfg.Options = pipeline.AnimationOptions{
		DelayMs: c.Splitter.DelayMs,
		Workers: c.Splitter.Workers,
		Quality: c.Splitter.Quality,
	}
	cfg.HideDelay = time.Duration(c.Splitter.HideDelayMs) * time.Millisecond
	return cfg
}

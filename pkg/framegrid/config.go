// Package framegrid provides a high-level API for sampling video frames into
// print sheets and turning sheets back into animations.
package framegrid

import (
	"image/color"
	"time"

	"github.com/user/framegrid/pkg/config"
	"github.com/user/framegrid/pkg/orchestrator"
	"github.com/user/framegrid/pkg/pipeline"
)

// Config represents the configuration of a framegrid toolkit.
type Config struct {
	// External tools
	FFmpegPath        string // ffmpeg executable (default: PATH lookup)
	FFprobePath       string // ffprobe executable (default: next to ffmpeg)
	ChromePath        string // Chrome executable (default: CHROME_PATH, then system)
	AutoInstallChrome bool   // Download Chromium when none is found
	FastProbe         bool   // Read MP4 metadata in-process before ffprobe

	// Sampler
	SettleDelay    time.Duration // Wait between layout and print
	CaptureTimeout time.Duration // Per-seek bound (0 = none)
	PreviewWidth   int           // Preview cell width (0 = source size)
	PreviewGap     int           // Preview gap in pixels
	PreviewLabels  bool          // Draw timestamps on preview cells
	PreviewColor   color.Color   // Preview background

	// Splitter
	Animation pipeline.AnimationOptions
	Dither    bool          // Floyd-Steinberg dithering in the GIF palette
	HideDelay time.Duration // Indicator linger after a successful split

	// Debug
	DebugDir string // Write intermediate results here (empty = off)
}

// ConfigBuilder provides a fluent interface for building Config.
type ConfigBuilder struct {
	config Config
}

// NewConfigBuilder creates a ConfigBuilder with default values.
func NewConfigBuilder() *ConfigBuilder {
	return FromConfig(config.Defaults())
}

// FromConfig seeds a ConfigBuilder from a loaded configuration file.
func FromConfig(c config.Config) *ConfigBuilder {
	sampler := c.ToSamplerConfig()
	splitter := c.ToSplitterConfig()

	cfg := Config{
		FFmpegPath:        c.FFmpegPath,
		FFprobePath:       c.FFprobePath,
		ChromePath:        c.ChromePath,
		AutoInstallChrome: c.AutoInstallChrome,
		FastProbe:         c.Sampler.FastProbe,

		SettleDelay:    sampler.SettleDelay,
		CaptureTimeout: sampler.CaptureTimeout,
		PreviewWidth:   sampler.PreviewCellWidth,
		PreviewGap:     sampler.PreviewGap,
		PreviewLabels:  sampler.PreviewLabels,
		PreviewColor:   sampler.PreviewBackground,

		Animation: splitter.Options,
		Dither:    c.Splitter.Dither,
		HideDelay: splitter.HideDelay,
	}
	if c.Debug {
		cfg.DebugDir = c.DebugDir
	}
	return &ConfigBuilder{config: cfg}
}

// Build returns the final Config, applying constraints.
func (b *ConfigBuilder) Build() Config {
	cfg := b.config

	defaults := pipeline.DefaultAnimationOptions()
	if cfg.Animation.DelayMs <= 0 {
		cfg.Animation.DelayMs = defaults.DelayMs
	}
	if cfg.Animation.Workers < 1 {
		cfg.Animation.Workers = defaults.Workers
	}
	if cfg.Animation.Quality < 1 {
		cfg.Animation.Quality = defaults.Quality
	}
	if cfg.SettleDelay < 0 {
		cfg.SettleDelay = 0
	}
	if cfg.HideDelay < 0 {
		cfg.HideDelay = 0
	}
	return cfg
}

// WithFFmpegPath sets the ffmpeg executable.
func (b *ConfigBuilder) WithFFmpegPath(path string) *ConfigBuilder {
	b.config.FFmpegPath = path
	return b
}

// WithFFprobePath sets the ffprobe executable.
func (b *ConfigBuilder) WithFFprobePath(path string) *ConfigBuilder {
	b.config.FFprobePath = path
	return b
}

// WithChromePath sets the Chrome executable used for printing.
func (b *ConfigBuilder) WithChromePath(path string) *ConfigBuilder {
	b.config.ChromePath = path
	return b
}

// WithAutoInstallChrome downloads Chromium when no browser is found.
func (b *ConfigBuilder) WithAutoInstallChrome(enabled bool) *ConfigBuilder {
	b.config.AutoInstallChrome = enabled
	return b
}

// WithFastProbe reads MP4 metadata from the container before falling back to ffprobe.
func (b *ConfigBuilder) WithFastProbe(enabled bool) *ConfigBuilder {
	b.config.FastProbe = enabled
	return b
}

// WithSettleDelay sets the pause between laying out and printing the sheet.
func (b *ConfigBuilder) WithSettleDelay(d time.Duration) *ConfigBuilder {
	b.config.SettleDelay = d
	return b
}

// WithCaptureTimeout bounds each frame seek. Zero waits indefinitely.
func (b *ConfigBuilder) WithCaptureTimeout(d time.Duration) *ConfigBuilder {
	b.config.CaptureTimeout = d
	return b
}

// WithPreview styles the PNG contact sheet.
func (b *ConfigBuilder) WithPreview(cellWidth, gap int, labels bool) *ConfigBuilder {
	b.config.PreviewWidth = cellWidth
	b.config.PreviewGap = gap
	b.config.PreviewLabels = labels
	return b
}

// WithPreviewColor sets the contact sheet background.
func (b *ConfigBuilder) WithPreviewColor(c color.Color) *ConfigBuilder {
	b.config.PreviewColor = c
	return b
}

// WithDelayMs sets the per-frame animation delay.
func (b *ConfigBuilder) WithDelayMs(ms int) *ConfigBuilder {
	b.config.Animation.DelayMs = ms
	return b
}

// WithWorkers sets the number of palette workers.
// Values below 1 fall back to the default.
func (b *ConfigBuilder) WithWorkers(n int) *ConfigBuilder {
	b.config.Animation.Workers = n
	return b
}

// WithQuality sets the palette sampling interval (1 is best).
// Values below 1 fall back to the default.
func (b *ConfigBuilder) WithQuality(q int) *ConfigBuilder {
	b.config.Animation.Quality = q
	return b
}

// WithDither enables error diffusion in the GIF encoder.
func (b *ConfigBuilder) WithDither(enabled bool) *ConfigBuilder {
	b.config.Dither = enabled
	return b
}

// WithHideDelay sets how long the indicator stays at 100% after a split.
func (b *ConfigBuilder) WithHideDelay(d time.Duration) *ConfigBuilder {
	b.config.HideDelay = d
	return b
}

// WithDebugDir enables debug output into dir.
func (b *ConfigBuilder) WithDebugDir(dir string) *ConfigBuilder {
	b.config.DebugDir = dir
	return b
}

// SamplerConfig returns the orchestrator settings for one Sampler run.
func (c Config) SamplerConfig(inputPath, outputPath string) orchestrator.SamplerConfig {
	cfg := orchestrator.DefaultSamplerConfig()
	cfg.InputPath = inputPath
	cfg.OutputPath = outputPath
	cfg.SettleDelay = c.SettleDelay
	cfg.CaptureTimeout = c.CaptureTimeout
	cfg.PreviewCellWidth = c.PreviewWidth
	cfg.PreviewGap = c.PreviewGap
	cfg.PreviewLabels = c.PreviewLabels
	cfg.PreviewBackground = c.PreviewColor
	return cfg
}

// SplitterConfig returns the orchestrator settings for one Splitter run.
func (c Config) SplitterConfig(inputPath, outputPath string) orchestrator.SplitterConfig {
	cfg := orchestrator.DefaultSplitterConfig()
	cfg.InputPath = inputPath
	cfg.OutputPath = outputPath
	cfg.Options = c.Animation
	cfg.HideDelay = c.HideDelay
	return cfg
}

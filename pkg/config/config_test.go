package config

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	if cfg.Splitter.DelayMs != 200 || cfg.Splitter.Workers != 2 || cfg.Splitter.Quality != 10 {
		t.Errorf("unexpected splitter defaults: %+v", cfg.Splitter)
	}
	if cfg.Sampler.SettleDelayMs != 500 {
		t.Errorf("expected settle delay 500ms, got %d", cfg.Sampler.SettleDelayMs)
	}
	if cfg.Server.MaxJobs != 2 {
		t.Errorf("expected max_jobs 2, got %d", cfg.Server.MaxJobs)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("expected :8080, got %s", cfg.Server.Addr)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "framegrid.yaml")
	yaml := `
ffmpeg_path: /opt/ffmpeg/bin/ffmpeg
splitter:
  delay_ms: 100
  workers: 4
sampler:
  capture_timeout_ms: 3000
  preview:
    background: "#000"
server:
  max_jobs: 1
`
	if err := os.WriteFile(path, []byte(yaml), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}

	if cfg.FFmpegPath != "/opt/ffmpeg/bin/ffmpeg" {
		t.Errorf("unexpected ffmpeg path %q", cfg.FFmpegPath)
	}
	if cfg.Splitter.DelayMs != 100 || cfg.Splitter.Workers != 4 {
		t.Errorf("unexpected splitter config: %+v", cfg.Splitter)
	}
	// Unset keys keep their defaults
	if cfg.Splitter.Quality != 10 {
		t.Errorf("expected default quality 10, got %d", cfg.Splitter.Quality)
	}
	if cfg.Sampler.SettleDelayMs != 500 {
		t.Errorf("expected default settle delay, got %d", cfg.Sampler.SettleDelayMs)
	}
	if cfg.Server.MaxJobs != 1 {
		t.Errorf("expected max_jobs 1, got %d", cfg.Server.MaxJobs)
	}

	sampler := cfg.ToSamplerConfig()
	if sampler.CaptureTimeout != 3*time.Second {
		t.Errorf("expected 3s capture timeout, got %v", sampler.CaptureTimeout)
	}
	if sampler.PreviewBackground != (color.RGBA{A: 255}) {
		t.Errorf("expected black background, got %v", sampler.PreviewBackground)
	}
}

func TestLoadFromFile_Invalid(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
	}{
		{"syntax", "splitter: [unclosed"},
		{"negative delay", "splitter:\n  delay_ms: -1\n"},
		{"negative jobs", "server:\n  max_jobs: -2\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := LoadFromFile(path); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoadFromFile_Missing(t *testing.T) {
	if _, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestToSplitterConfig(t *testing.T) {
	cfg := Defaults()
	cfg.Splitter.HideDelayMs = 0

	got := cfg.ToSplitterConfig()
	if got.Options.DelayMs != 200 || got.Options.Workers != 2 || got.Options.Quality != 10 {
		t.Errorf("unexpected options: %+v", got.Options)
	}
	if got.HideDelay != 0 {
		t.Errorf("expected immediate hide, got %v", got.HideDelay)
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.RGBA
	}{
		{"#ff8000", color.RGBA{255, 128, 0, 255}},
		{"00FF00", color.RGBA{0, 255, 0, 255}},
		{"#fff", color.RGBA{255, 255, 255, 255}},
		{"", color.RGBA{0, 0, 0, 255}},
		{"#12345", color.RGBA{0, 0, 0, 255}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			r, g, b, a := ParseColor(tt.in).RGBA()
			got := color.RGBA{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), uint8(a >> 8)}
			if got != tt.want {
				t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

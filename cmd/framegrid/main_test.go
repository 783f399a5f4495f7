package main

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/urfave/cli/v2"
)

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	app := newApp()
	app.Writer = &out

	if err := app.Run([]string{"framegrid", "version"}); err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if !strings.Contains(out.String(), version) {
		t.Errorf("expected version %q in %q", version, out.String())
	}
}

func TestSplitCommand_Arguments(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"missing output", []string{"framegrid", "--quiet", "split", "sheet.png"}},
		{"missing input", []string{"framegrid", "--quiet", "split", "-o", "out.gif"}},
		{"missing config", []string{"framegrid", "--quiet", "--config", "/nonexistent.yaml", "split", "-o", "out.gif", "sheet.png"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newApp()
			app.Writer = &bytes.Buffer{}
			app.ErrWriter = &bytes.Buffer{}
			if err := app.Run(tt.args); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestSplitCommand(t *testing.T) {
	dir := t.TempDir()
	sheetPath := filepath.Join(dir, "sheet.png")
	outPath := filepath.Join(dir, "out", "anim.gif")
	summaryPath := filepath.Join(dir, "summary.md")

	sheet := image.NewRGBA(image.Rect(0, 0, 60, 60))
	for y := 0; y < 60; y++ {
		for x := 0; x < 60; x++ {
			i := (y/20)*3 + x/20
			sheet.Set(x, y, color.RGBA{R: uint8(i * 25), G: 90, B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, sheet); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(sheetPath, buf.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}

	app := newApp()
	err := app.Run([]string{
		"framegrid", "--quiet",
		"split", "-o", outPath, "--delay", "100", "--summary", summaryPath,
		sheetPath,
	})
	if err != nil {
		t.Fatalf("split failed: %v", err)
	}

	f, err := os.Open(outPath)
	if err != nil {
		t.Fatalf("expected output GIF: %v", err)
	}
	defer f.Close()
	anim, err := gif.DecodeAll(f)
	if err != nil {
		t.Fatalf("decode GIF: %v", err)
	}
	if len(anim.Image) != 9 || anim.Delay[0] != 10 {
		t.Errorf("expected 9 frames at 10cs, got %d frames, delay %d", len(anim.Image), anim.Delay[0])
	}

	summary, err := os.ReadFile(summaryPath)
	if err != nil {
		t.Fatalf("expected summary: %v", err)
	}
	if !strings.Contains(string(summary), "100 ms") {
		t.Errorf("expected delay in summary, got:\n%s", summary)
	}
}

func TestLoadConfig_Flags(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "framegrid.yaml")
	if err := os.WriteFile(path, []byte("ffmpeg_path: /from/file\nchrome_path: /from/file\n"), 0644); err != nil {
		t.Fatal(err)
	}

	app := newApp()
	app.Commands = nil
	app.Action = func(c *cli.Context) error {
		cfg, err := loadConfig(c)
		if err != nil {
			return err
		}
		if cfg.FFmpegPath != "/from/flag" {
			t.Errorf("expected flag to override file, got %q", cfg.FFmpegPath)
		}
		if cfg.ChromePath != "/from/file" {
			t.Errorf("expected file value kept, got %q", cfg.ChromePath)
		}
		if !cfg.Debug || cfg.DebugDir != "./debug" {
			t.Errorf("unexpected debug settings %v %q", cfg.Debug, cfg.DebugDir)
		}
		return nil
	}

	if err := app.Run([]string{"framegrid", "--config", path, "--ffmpeg-path", "/from/flag", "--debug"}); err != nil {
		t.Fatal(err)
	}
}

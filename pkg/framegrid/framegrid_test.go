package framegrid

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"path/filepath"
	"testing"
	"time"

	"github.com/user/framegrid/pkg/adapters/logger"
	"github.com/user/framegrid/pkg/config"
	"github.com/user/framegrid/pkg/mocks"
	"github.com/user/framegrid/pkg/pipeline"
	"github.com/user/framegrid/pkg/progress"
)

func TestConfigBuilder_Defaults(t *testing.T) {
	cfg := NewConfigBuilder().Build()

	if cfg.Animation != pipeline.DefaultAnimationOptions() {
		t.Errorf("expected default animation options, got %+v", cfg.Animation)
	}
	if cfg.SettleDelay != 500*time.Millisecond {
		t.Errorf("expected 500ms settle delay, got %v", cfg.SettleDelay)
	}
	if !cfg.FastProbe || !cfg.Dither {
		t.Error("expected fast probe and dithering on by default")
	}
	if cfg.DebugDir != "" {
		t.Errorf("expected debug output off, got %q", cfg.DebugDir)
	}
}

func TestConfigBuilder_Constraints(t *testing.T) {
	cfg := NewConfigBuilder().
		WithWorkers(0).
		WithQuality(-3).
		WithDelayMs(0).
		WithSettleDelay(-time.Second).
		WithHideDelay(-time.Second).
		Build()

	if cfg.Animation != pipeline.DefaultAnimationOptions() {
		t.Errorf("expected invalid options to fall back to defaults, got %+v", cfg.Animation)
	}
	if cfg.SettleDelay != 0 || cfg.HideDelay != 0 {
		t.Errorf("expected negative delays clamped, got %v/%v", cfg.SettleDelay, cfg.HideDelay)
	}
}

func TestConfigBuilder_Chain(t *testing.T) {
	cfg := NewConfigBuilder().
		WithFFmpegPath("/usr/local/bin/ffmpeg").
		WithChromePath("/usr/bin/chromium").
		WithDelayMs(100).
		WithWorkers(4).
		WithQuality(1).
		WithPreview(320, 4, false).
		WithCaptureTimeout(2 * time.Second).
		Build()

	run := cfg.SamplerConfig("in.mp4", "out.pdf")
	if run.InputPath != "in.mp4" || run.OutputPath != "out.pdf" {
		t.Errorf("unexpected paths %+v", run)
	}
	if run.PreviewCellWidth != 320 || run.PreviewGap != 4 || run.PreviewLabels {
		t.Errorf("unexpected preview settings %+v", run)
	}
	if run.CaptureTimeout != 2*time.Second {
		t.Errorf("expected 2s capture timeout, got %v", run.CaptureTimeout)
	}

	split := cfg.SplitterConfig("sheet.png", "out.gif")
	want := pipeline.AnimationOptions{DelayMs: 100, Workers: 4, Quality: 1}
	if split.Options != want {
		t.Errorf("expected %+v, got %+v", want, split.Options)
	}
	if cfg.FFmpegPath != "/usr/local/bin/ffmpeg" || cfg.ChromePath != "/usr/bin/chromium" {
		t.Errorf("unexpected tool paths %+v", cfg)
	}
}

func TestFromConfig_Debug(t *testing.T) {
	c := config.Defaults()
	c.DebugDir = "dbg"
	if got := FromConfig(c).Build().DebugDir; got != "" {
		t.Errorf("expected debug off unless enabled, got %q", got)
	}

	c.Debug = true
	if got := FromConfig(c).Build().DebugDir; got != "dbg" {
		t.Errorf("expected dbg, got %q", got)
	}
}

// colorSheet returns a PNG sheet whose tiles are solid colours.
func colorSheet(t *testing.T, tile int) ([]byte, []color.RGBA) {
	t.Helper()

	colors := make([]color.RGBA, pipeline.GridFrames)
	img := image.NewRGBA(image.Rect(0, 0, 3*tile, 3*tile))
	for i := range colors {
		colors[i] = color.RGBA{R: uint8(i * 28), G: uint8(255 - i*28), B: 128, A: 255}
		x0, y0 := (i%3)*tile, (i/3)*tile
		for y := y0; y < y0+tile; y++ {
			for x := x0; x < x0+tile; x++ {
				img.SetRGBA(x, y, colors[i])
			}
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes(), colors
}

func TestToolkit_Split(t *testing.T) {
	fs := mocks.NewFileSystem()
	sheet, _ := colorSheet(t, 30)
	input := filepath.Join("in", "sheet.png")
	output := filepath.Join("out", "anim.gif")
	if err := fs.WriteFile(input, sheet); err != nil {
		t.Fatal(err)
	}

	cfg := NewConfigBuilder().WithHideDelay(0).WithDither(false).Build()
	kit, err := NewWith(cfg, logger.NewNoop(), Overrides{FileSystem: fs})
	if err != nil {
		t.Fatalf("NewWith failed: %v", err)
	}

	ind := progress.New()
	result, err := kit.Splitter.Run(context.Background(), cfg.SplitterConfig(input, output), ind)
	if err != nil {
		t.Fatalf("split failed: %v", err)
	}
	if len(result.Slices) != pipeline.GridFrames {
		t.Errorf("expected %d slices, got %d", pipeline.GridFrames, len(result.Slices))
	}

	data, ok := fs.GetFile(output)
	if !ok {
		t.Fatalf("expected GIF at %s", output)
	}
	anim, err := gif.DecodeAll(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if len(anim.Image) != pipeline.GridFrames {
		t.Errorf("expected %d GIF frames, got %d", pipeline.GridFrames, len(anim.Image))
	}
	if b := anim.Image[0].Bounds(); b.Dx() != 30 || b.Dy() != 30 {
		t.Errorf("expected 30x30 frames, got %dx%d", b.Dx(), b.Dy())
	}
	if s := ind.Snapshot(); s.Visible || s.Percent != 100 {
		t.Errorf("expected hidden indicator at 100, got %+v", s)
	}
}

func TestToolkit_Sample(t *testing.T) {
	fs := mocks.NewFileSystem()
	printer := &mocks.Printer{}
	video := mocks.NewVideo(64, 36, 8)

	cfg := NewConfigBuilder().WithSettleDelay(0).WithDebugDir("debug").Build()
	kit, err := NewWith(cfg, logger.NewNoop(), Overrides{
		Opener:     &mocks.VideoOpener{Video: video},
		Printer:    printer,
		FileSystem: fs,
	})
	if err != nil {
		t.Fatalf("NewWith failed: %v", err)
	}

	result, err := kit.Sampler.Run(context.Background(), cfg.SamplerConfig("clip.mp4", "sheet.pdf"), progress.New())
	if err != nil {
		t.Fatalf("sample failed: %v", err)
	}
	if result.State != pipeline.StateDone {
		t.Errorf("expected done, got %s", result.State)
	}
	if printer.Calls != 1 {
		t.Errorf("expected one print, got %d", printer.Calls)
	}
	if _, ok := fs.GetFile("sheet.pdf"); !ok {
		t.Error("expected printed document to be written")
	}
	if _, ok := fs.GetFile(filepath.Join("debug", "timeline.json")); !ok {
		t.Error("expected debug timeline to be written")
	}
}

package chromeprinter

import (
	"bytes"
	"context"
	"errors"
	"os"
	"runtime"
	"testing"
	"time"

	"github.com/user/framegrid/pkg/adapters/logger"
	"github.com/user/framegrid/pkg/pipeline"
	"github.com/user/framegrid/pkg/stages/layout"
)

func TestPrintParams(t *testing.T) {
	tests := []struct {
		name      string
		w, h      int
		landscape bool
	}{
		{"landscape", 1920, 1080, true},
		{"portrait", 1080, 1920, false},
		{"square", 900, 900, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := PrintParams(layout.ComputeGeometry(tt.w, tt.h))
			if params.Landscape != tt.landscape {
				t.Errorf("expected landscape=%t, got %t", tt.landscape, params.Landscape)
			}
			if params.PaperWidth != 8 || params.PaperHeight != 10.5 {
				t.Errorf("expected 8x10.5 paper, got %vx%v", params.PaperWidth, params.PaperHeight)
			}
			if !params.PrintBackground || !params.PreferCSSPageSize {
				t.Error("expected background printing and CSS page size")
			}
		})
	}
}

func TestPrintParams_ZeroGeometry(t *testing.T) {
	params := PrintParams(pipeline.LayoutGeometry{})
	if params.PaperWidth != pipeline.LetterShortIn || params.PaperHeight != pipeline.LetterLongIn {
		t.Errorf("expected letter fallback, got %vx%v", params.PaperWidth, params.PaperHeight)
	}
}

func TestPrinter_Print(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping browser test in short mode")
	}
	if ResolveChromePath("") == "" {
		t.Skip("Chrome not installed")
	}

	html := `<!DOCTYPE html><html><body><img class="frame" src="data:image/gif;base64,R0lGODlhAQABAAAAACw="></body></html>`

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	pdf, err := New(Options{}, logger.NewNoop()).Print(ctx, html, layout.ComputeGeometry(1920, 1080))
	if err != nil {
		t.Fatalf("Print failed: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Errorf("expected PDF output, got %q", pdf[:min(len(pdf), 8)])
	}
}

func TestPrinter_ChromeNotFound(t *testing.T) {
	t.Setenv("CHROME_PATH", "")
	t.Setenv("PATH", "/nonexistent")
	if runtime.GOOS != "linux" {
		t.Skip("PATH-only lookup is reliable on Linux")
	}

	p := New(Options{}, logger.NewNoop())
	_, err := p.Print(context.Background(), "<html></html>", layout.ComputeGeometry(640, 480))
	if !errors.Is(err, ErrChromeNotFound) {
		t.Errorf("expected ErrChromeNotFound, got %v", err)
	}
}

func TestResolveChromePath_ExplicitPath(t *testing.T) {
	if got := ResolveChromePath("/custom/path/to/chrome"); got != "/custom/path/to/chrome" {
		t.Errorf("expected explicit path to be returned, got %s", got)
	}
}

func TestResolveChromePath_EnvVar(t *testing.T) {
	t.Setenv("CHROME_PATH", "/env/chrome")

	if got := ResolveChromePath(""); got != "/env/chrome" {
		t.Errorf("expected CHROME_PATH to be used, got %s", got)
	}
	if got := ResolveChromePath("/explicit/chrome"); got != "/explicit/chrome" {
		t.Errorf("expected explicit path to take precedence, got %s", got)
	}
}

func TestResolveExecutable(t *testing.T) {
	var existing string
	switch runtime.GOOS {
	case "windows":
		existing = os.Getenv("COMSPEC")
	default:
		existing = "/bin/sh"
	}
	if existing == "" {
		t.Skip("No known executable path for this platform")
	}

	if got := resolveExecutable(existing); got != existing {
		t.Errorf("expected %s, got %s", existing, got)
	}
	if got := resolveExecutable("/definitely/not/a/real/path/chrome"); got != "" {
		t.Errorf("expected empty for missing path, got %s", got)
	}
	if got := resolveExecutable("definitely-not-a-real-command-xyz123"); got != "" {
		t.Errorf("expected empty for unknown command, got %s", got)
	}
}

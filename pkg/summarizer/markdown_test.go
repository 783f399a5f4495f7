package summarizer

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/user/framegrid/pkg/mocks"
)

func sampleSummary() *Summary {
	return &Summary{
		GeneratedAt: time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
		Kind:        KindSample,
		Source:      SourceInfo{Name: "clip.mp4", Path: "/videos/clip.mp4"},
		Video:       VideoInfo{Width: 1920, Height: 1080, DurationSec: 16},
		Layout: LayoutInfo{
			Orientation:  "landscape",
			PageWidthIn:  10.5,
			PageHeightIn: 8,
			PrintWidthIn: 10.5,
		},
		Timeline: []float64{0, 2, 4, 6, 8, 10, 12, 14, 75.5},
		Output:   OutputInfo{Path: "sheet.pdf", FileSize: 1024 * 1024},
	}
}

func TestMarkdownFormatter_Format_Sample(t *testing.T) {
	result := NewMarkdownFormatter().Format(sampleSummary())

	checks := []string{
		"# Frame Sampling Summary",
		"clip.mp4",
		"1920x1080",
		"16.00 s",
		"landscape",
		"10.5in x 8in",
		"| 9 | 1:15.500 |",
		"| 1 | 0:00.000 |",
		"1.00 MB",
		"sheet.pdf",
		"2024-01-15T10:30:00Z",
	}
	for _, check := range checks {
		if !strings.Contains(result, check) {
			t.Errorf("expected output to contain %q\n%s", check, result)
		}
	}
	if strings.Contains(result, "## Animation") {
		t.Error("sampler summary should not contain an animation section")
	}
}

func TestMarkdownFormatter_Format_Split(t *testing.T) {
	s := &Summary{
		GeneratedAt: time.Now(),
		Kind:        KindSplit,
		Source:      SourceInfo{Name: "sheet.png"},
		Animation: AnimationInfo{
			SheetWidth: 900, SheetHeight: 900,
			FrameWidth: 300, FrameHeight: 300,
			FrameCount: 9, DelayMs: 200, Workers: 2, Quality: 10,
		},
		Output:  OutputInfo{FileSize: 1536},
		Elapsed: 1500 * time.Millisecond,
	}

	result := NewMarkdownFormatter().Format(s)

	for _, check := range []string{"# Animation Summary", "900x900", "300x300", "200 ms", "1.50 KB", "1.5s"} {
		if !strings.Contains(result, check) {
			t.Errorf("expected output to contain %q\n%s", check, result)
		}
	}
	if strings.Contains(result, "## Video") {
		t.Error("split summary should not contain a video section")
	}
}

func TestMarkdownFormatter_WithTranslator(t *testing.T) {
	translator := func(key string) string {
		translations := map[string]string{
			"Frame Sampling Summary": "フレーム抽出サマリー",
			"Orientation":            "向き",
			"landscape":              "横向き",
		}
		if v, ok := translations[key]; ok {
			return v
		}
		return key
	}

	result := NewMarkdownFormatter(WithTranslator(translator)).Format(sampleSummary())

	for _, check := range []string{"フレーム抽出サマリー", "向き", "横向き"} {
		if !strings.Contains(result, check) {
			t.Errorf("expected translated %q", check)
		}
	}
}

func TestMarkdownFormatter_WithVersion(t *testing.T) {
	result := NewMarkdownFormatter(WithVersion("v1.2.0")).Format(sampleSummary())
	if !strings.Contains(result, "v1.2.0") {
		t.Error("expected output to contain version 'v1.2.0'")
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		bytes int64
		want  string
	}{
		{0, "0 B"},
		{100, "100 B"},
		{1024, "1.00 KB"},
		{1536, "1.50 KB"},
		{1024 * 1024, "1.00 MB"},
		{1024 * 1024 * 1024, "1.00 GB"},
		{1536 * 1024 * 1024, "1.50 GB"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := formatBytes(tt.bytes); got != tt.want {
				t.Errorf("formatBytes(%d) = %q, want %q", tt.bytes, got, tt.want)
			}
		})
	}
}

func TestWriter_Write(t *testing.T) {
	fs := mocks.NewFileSystem()
	w := NewWriter(FormatFunc(func(*Summary) string { return "# ok" }), fs)

	if err := w.Write("out/summary.md", sampleSummary()); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	data, ok := fs.GetFile("out/summary.md")
	if !ok || string(data) != "# ok" {
		t.Errorf("unexpected file content %q", data)
	}
}

func TestWriter_Write_Error(t *testing.T) {
	fs := mocks.NewFileSystem()
	writeErr := errors.New("disk full")
	fs.WriteFileFunc = func(string, []byte) error { return writeErr }

	err := NewWriter(NewMarkdownFormatter(), fs).Write("summary.md", sampleSummary())
	if !errors.Is(err, writeErr) {
		t.Errorf("expected wrapped write error, got %v", err)
	}
}

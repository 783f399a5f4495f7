package framegrid

import (
	"fmt"

	"github.com/user/framegrid/pkg/adapters/chromeprinter"
	"github.com/user/framegrid/pkg/adapters/ffmpegsource"
	"github.com/user/framegrid/pkg/adapters/filesink"
	"github.com/user/framegrid/pkg/adapters/ggrenderer"
	"github.com/user/framegrid/pkg/adapters/gifencoder"
	"github.com/user/framegrid/pkg/adapters/mp4probe"
	"github.com/user/framegrid/pkg/adapters/nullsink"
	"github.com/user/framegrid/pkg/adapters/osfilesystem"
	"github.com/user/framegrid/pkg/orchestrator"
	"github.com/user/framegrid/pkg/ports"
	"github.com/user/framegrid/pkg/stages/animate"
	"github.com/user/framegrid/pkg/stages/capture"
	"github.com/user/framegrid/pkg/stages/layout"
	"github.com/user/framegrid/pkg/stages/preview"
	"github.com/user/framegrid/pkg/stages/printsheet"
	"github.com/user/framegrid/pkg/stages/slice"
	"github.com/user/framegrid/pkg/stages/timeline"
)

// Toolkit holds a wired Sampler and Splitter sharing one set of adapters.
type Toolkit struct {
	Config   Config
	Sampler  *orchestrator.Sampler
	Splitter *orchestrator.Splitter

	Opener     *ffmpegsource.Opener
	Encoder    *gifencoder.Encoder
	FileSystem ports.FileSystem
}

// Overrides replaces adapters, mainly for tests.
type Overrides struct {
	Opener     ports.VideoOpener
	Printer    ports.Printer
	Encoder    ports.AnimationEncoder
	FileSystem ports.FileSystem
}

// New wires the default adapters for cfg.
func New(cfg Config, log ports.Logger) (*Toolkit, error) {
	return NewWith(cfg, log, Overrides{})
}

// NewWith wires cfg, substituting any non-nil overrides.
func NewWith(cfg Config, log ports.Logger, o Overrides) (*Toolkit, error) {
	t := &Toolkit{Config: cfg}

	fs := o.FileSystem
	if fs == nil {
		fs = osfilesystem.New()
	}
	t.FileSystem = fs
	renderer := ggrenderer.New()

	var sink ports.DebugSink = nullsink.New()
	if cfg.DebugDir != "" {
		if err := fs.MkdirAll(cfg.DebugDir); err != nil {
			return nil, fmt.Errorf("create debug directory: %w", err)
		}
		sink = filesink.New(cfg.DebugDir, fs, renderer)
	}

	opener := o.Opener
	if opener == nil {
		var probers []ports.MetadataProber
		if cfg.FastProbe {
			probers = append(probers, mp4probe.New())
		}
		t.Opener = ffmpegsource.New(ffmpegsource.Options{
			FFmpegPath:  cfg.FFmpegPath,
			FFprobePath: cfg.FFprobePath,
			Probers:     probers,
		}, log)
		opener = t.Opener
	}

	printer := o.Printer
	if printer == nil {
		printer = chromeprinter.New(chromeprinter.Options{
			ChromePath:  cfg.ChromePath,
			AutoInstall: cfg.AutoInstallChrome,
		}, log)
	}

	encoder := o.Encoder
	if encoder == nil {
		t.Encoder = gifencoder.New(log)
		t.Encoder.Dither = cfg.Dither
		encoder = t.Encoder
	}

	t.Sampler = orchestrator.NewSampler(orchestrator.SamplerDeps{
		Opener:        opener,
		LayoutStage:   layout.NewStage(),
		TimelineStage: timeline.NewStage(),
		CaptureStage:  capture.NewStage(sink, log),
		PrintStage:    printsheet.NewStage(renderer, printer, sink, log),
		PreviewStage:  preview.NewStage(renderer, log),
		Renderer:      renderer,
		FileSystem:    fs,
		Sink:          sink,
		Logger:        log,
	})

	t.Splitter = orchestrator.NewSplitter(orchestrator.SplitterDeps{
		Encoder:      encoder,
		SliceStage:   slice.NewStage(renderer, sink, log),
		AnimateStage: animate.NewStage(encoder, log),
		Renderer:     renderer,
		FileSystem:   fs,
		Logger:       log,
	})

	return t, nil
}

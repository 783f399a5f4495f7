package orchestrator

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"time"

	"github.com/ideamans/go-l10n"

	"github.com/user/framegrid/pkg/pipeline"
	"github.com/user/framegrid/pkg/ports"
	"github.com/user/framegrid/pkg/progress"
	"github.com/user/framegrid/pkg/stages/capture"
	"github.com/user/framegrid/pkg/stages/preview"
	"github.com/user/framegrid/pkg/stages/printsheet"
)

// SamplerConfig contains the settings of one Sampler run.
type SamplerConfig struct {
	InputPath string
	// InputName overrides the display name, e.g. an uploaded file name.
	InputName string

	// OutputPath receives the printed document. Empty keeps it in memory.
	OutputPath string
	// HTMLPath receives the print page when set.
	HTMLPath string
	// PreviewPath receives a PNG contact sheet when set.
	PreviewPath       string
	PreviewCellWidth  int
	PreviewGap        int
	PreviewLabels     bool
	PreviewBackground color.Color

	SettleDelay time.Duration
	// CaptureTimeout bounds each seek. Zero waits indefinitely.
	CaptureTimeout time.Duration
}

// DefaultSamplerConfig returns a SamplerConfig with default values.
func DefaultSamplerConfig() SamplerConfig {
	return SamplerConfig{
		SettleDelay: printsheet.DefaultSettleDelay,
	}
}

// SamplerDeps are the collaborators of a Sampler.
type SamplerDeps struct {
	Opener        ports.VideoOpener
	LayoutStage   pipeline.Stage[pipeline.Dimension, pipeline.LayoutGeometry]
	TimelineStage pipeline.Stage[float64, pipeline.FrameTimeline]
	CaptureStage  pipeline.Stage[capture.Input, capture.Result]
	PrintStage    pipeline.Stage[printsheet.Input, printsheet.Result]
	PreviewStage  pipeline.Stage[preview.Input, image.Image]
	Renderer      ports.Renderer
	FileSystem    ports.FileSystem
	Sink          ports.DebugSink
	Logger        ports.Logger
}

// SampleResult describes a completed Sampler run.
type SampleResult struct {
	Source   pipeline.MediaSource
	Metadata pipeline.VideoMetadata
	Geometry pipeline.LayoutGeometry
	Timeline pipeline.FrameTimeline
	Frames   []pipeline.FrameImage
	HTML     string
	Document []byte
	Preview  []byte
	State    pipeline.SamplerState
}

// Sampler extracts nine evenly spaced frames from a video and prints them as
// a 3x3 sheet.
type Sampler struct {
	deps SamplerDeps
}

// NewSampler creates a new Sampler.
func NewSampler(deps SamplerDeps) *Sampler {
	return &Sampler{deps: deps}
}

// Run executes one Sampler run, reporting on ind.
//
// A failure before printing leaves ind showing its last state.
func (s *Sampler) Run(ctx context.Context, cfg SamplerConfig, ind *progress.Indicator) (SampleResult, error) {
	if ind == nil {
		ind = progress.New()
	}
	log := s.deps.Logger

	result := SampleResult{
		Source: pipeline.NewMediaSource(cfg.InputPath),
	}
	if cfg.InputName != "" {
		result.Source.Name = cfg.InputName
	}
	// Each run fills its own grid so runs never see each other's frames
	grid := &pipeline.FrameGrid{}

	machine := pipeline.NewSamplerMachine(pipeline.GridFrames)
	fail := func(msg string, err error) (SampleResult, error) {
		machine.Fail(err)
		result.State = machine.State()
		log.Error(msg, err)
		return result, err
	}

	if err := machine.Start(); err != nil {
		return result, err
	}
	log.Info("Sampling frames from %s", result.Source.Name)
	ind.Show(SamplerTitle, l10n.T("Loading video"))

	video, err := s.deps.Opener.Open(ctx, cfg.InputPath)
	if err != nil {
		return fail("Failed to open video: %s", fmt.Errorf("open source: %w", err))
	}
	defer video.Close()

	// Metadata: dimensions drive the layout hints
	meta, err := video.Metadata(ctx)
	if err != nil {
		return fail("Failed to load video metadata: %s", fmt.Errorf("load metadata: %w", err))
	}
	result.Metadata = meta
	if err := machine.MetadataLoaded(); err != nil {
		return fail("Failed to load video metadata: %s", err)
	}
	log.Info("Video metadata: %dx%d, %.2fs", meta.Width, meta.Height, meta.Duration)

	geom, err := s.deps.LayoutStage.Execute(ctx, pipeline.Dimension{Width: meta.Width, Height: meta.Height})
	if err != nil {
		return fail("Failed to calculate layout: %s", fmt.Errorf("layout stage: %w", err))
	}
	result.Geometry = geom
	grid.SetLayout(geom)
	saveJSON(s.deps.Sink, geom, s.deps.Sink.SaveLayoutJSON)
	log.Info("Layout: %s, print width %s", string(geom.Orientation), geom.PrintWidthCSS())
	ind.SetPercent(MetadataProgress)

	// Data: the timeline needs a decodable stream
	if err := video.LoadData(ctx); err != nil {
		return fail("Failed to load video data: %s", fmt.Errorf("load data: %w", err))
	}
	if err := machine.DataLoaded(); err != nil {
		return fail("Failed to load video data: %s", err)
	}

	timeline, err := s.deps.TimelineStage.Execute(ctx, meta.Duration)
	if err != nil {
		return fail("Failed to compute timeline: %s", fmt.Errorf("timeline stage: %w", err))
	}
	result.Timeline = timeline
	saveJSON(s.deps.Sink, timeline, s.deps.Sink.SaveTimelineJSON)
	log.Info("Frame interval: %.3fs", timeline.Interval())
	ind.SetPercent(TimelineProgress)

	captured, err := s.deps.CaptureStage.Execute(ctx, capture.Input{
		Video:        video,
		Timeline:     timeline,
		Machine:      machine,
		Grid:         grid,
		Progress:     ind,
		FrameTimeout: cfg.CaptureTimeout,
	})
	if err != nil {
		return fail("Failed to capture frames: %s", err)
	}
	result.Frames = captured.Frames

	if err := machine.Finish(); err != nil {
		return fail("Failed to capture frames: %s", err)
	}
	result.State = machine.State()
	ind.SetPercent(100)
	log.Info("Captured %d frames", len(captured.Frames))

	printed, err := s.deps.PrintStage.Execute(ctx, printsheet.Input{
		Grid:        grid,
		SettleDelay: cfg.SettleDelay,
	})
	result.HTML = printed.HTML
	if err != nil {
		ind.Hide()
		log.Error("Failed to print sheet: %s", err)
		return result, err
	}
	result.Document = printed.Document

	if err := s.writeOutputs(ctx, cfg, grid, &result); err != nil {
		ind.Hide()
		log.Error("Failed to write output: %s", err)
		return result, err
	}

	ind.Hide()
	log.Info("Sampler completed successfully")
	return result, nil
}

func (s *Sampler) writeOutputs(ctx context.Context, cfg SamplerConfig, grid *pipeline.FrameGrid, result *SampleResult) error {
	fs := s.deps.FileSystem

	if cfg.OutputPath != "" {
		if err := fs.WriteFile(cfg.OutputPath, result.Document); err != nil {
			return fmt.Errorf("write document: %w", err)
		}
		s.deps.Logger.Info("Output saved to %s", cfg.OutputPath)
	}

	if cfg.HTMLPath != "" {
		if err := fs.WriteFile(cfg.HTMLPath, []byte(result.HTML)); err != nil {
			return fmt.Errorf("write print page: %w", err)
		}
		s.deps.Logger.Info("Print page saved to %s", cfg.HTMLPath)
	}

	if cfg.PreviewPath != "" && s.deps.PreviewStage != nil {
		img, err := s.deps.PreviewStage.Execute(ctx, preview.Input{
			Grid:       grid,
			CellWidth:  cfg.PreviewCellWidth,
			Gap:        cfg.PreviewGap,
			Labels:     cfg.PreviewLabels,
			Background: cfg.PreviewBackground,
		})
		if err != nil {
			return fmt.Errorf("preview stage: %w", err)
		}
		data, err := s.deps.Renderer.EncodeImage(img, ports.FormatPNG, 0)
		if err != nil {
			return fmt.Errorf("encode preview: %w", err)
		}
		if err := fs.WriteFile(cfg.PreviewPath, data); err != nil {
			return fmt.Errorf("write preview: %w", err)
		}
		result.Preview = data
		s.deps.Logger.Info("Preview saved to %s", cfg.PreviewPath)
	}

	return nil
}

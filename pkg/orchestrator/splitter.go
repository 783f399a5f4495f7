package orchestrator

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/ideamans/go-l10n"

	"github.com/user/framegrid/pkg/pipeline"
	"github.com/user/framegrid/pkg/ports"
	"github.com/user/framegrid/pkg/progress"
	"github.com/user/framegrid/pkg/stages/animate"
)

// DefaultHideDelay is how long the indicator stays at 100% after a
// successful Splitter run.
const DefaultHideDelay = time.Second

// SplitterConfig contains the settings of one Splitter run.
type SplitterConfig struct {
	InputPath string
	// InputName overrides the display name, e.g. an uploaded file name.
	InputName string

	// OutputPath receives the animation. Empty keeps it in memory.
	OutputPath string

	Options   pipeline.AnimationOptions
	HideDelay time.Duration
}

// DefaultSplitterConfig returns a SplitterConfig with default values.
func DefaultSplitterConfig() SplitterConfig {
	return SplitterConfig{
		Options:   pipeline.DefaultAnimationOptions(),
		HideDelay: DefaultHideDelay,
	}
}

// SplitterDeps are the collaborators of a Splitter.
type SplitterDeps struct {
	Encoder      ports.AnimationEncoder
	SliceStage   pipeline.Stage[image.Image, []pipeline.SheetSlice]
	AnimateStage pipeline.Stage[animate.Input, pipeline.EncodedAnimation]
	Renderer     ports.Renderer
	FileSystem   ports.FileSystem
	Logger       ports.Logger
}

// SplitResult describes a completed Splitter run.
type SplitResult struct {
	Source      pipeline.MediaSource
	SheetWidth  int
	SheetHeight int
	Slices      []pipeline.SheetSlice
	Animation   pipeline.EncodedAnimation
}

// Splitter cuts a 3x3 sheet into frames and encodes them as a looping
// animation.
type Splitter struct {
	deps SplitterDeps
}

// NewSplitter creates a new Splitter.
func NewSplitter(deps SplitterDeps) *Splitter {
	return &Splitter{deps: deps}
}

// Run executes one Splitter run, reporting on ind.
//
// When the encoder is unavailable the run aborts before any work and ind
// stays visible. An encoder failure hides ind and writes nothing.
func (s *Splitter) Run(ctx context.Context, cfg SplitterConfig, ind *progress.Indicator) (SplitResult, error) {
	if ind == nil {
		ind = progress.New()
	}
	log := s.deps.Logger

	result := SplitResult{
		Source: pipeline.NewMediaSource(cfg.InputPath),
	}
	if cfg.InputName != "" {
		result.Source.Name = cfg.InputName
	}

	log.Info("Splitting sheet %s", result.Source.Name)
	ind.Show(SplitterTitle, l10n.T("Preparing frames"))

	if !s.deps.Encoder.Available() {
		log.Error("Animation encoder is not available")
		return result, ports.ErrEncoderUnavailable
	}

	data, err := s.deps.FileSystem.ReadFile(cfg.InputPath)
	if err != nil {
		log.Error("Failed to read sheet: %s", err)
		return result, fmt.Errorf("read sheet: %w", err)
	}

	sheet, err := s.deps.Renderer.DecodeImage(data, ports.FormatAuto)
	if err != nil {
		log.Error("Failed to decode sheet: %s", err)
		return result, fmt.Errorf("decode sheet: %w", err)
	}
	bounds := sheet.Bounds()
	result.SheetWidth, result.SheetHeight = bounds.Dx(), bounds.Dy()
	log.Info("Sheet loaded: %dx%d", result.SheetWidth, result.SheetHeight)

	slices, err := s.deps.SliceStage.Execute(ctx, sheet)
	if err != nil {
		log.Error("Failed to split sheet: %s", err)
		return result, fmt.Errorf("slice stage: %w", err)
	}
	result.Slices = slices
	if len(slices) > 0 {
		b := slices[0].Image.Bounds()
		log.Info("Frame dimensions: %dx%d", b.Dx(), b.Dy())
	}

	ind.SetBody(l10n.T("Rendering animation"))
	anim, err := s.deps.AnimateStage.Execute(ctx, animate.Input{
		Slices:   slices,
		Options:  cfg.Options,
		Progress: ind,
	})
	if err != nil {
		ind.Hide()
		log.Error("Failed to encode animation: %s", err)
		return result, err
	}
	result.Animation = anim
	log.Info("Animation encoded: %d bytes", len(anim.Data))

	if cfg.OutputPath != "" {
		if err := s.deps.FileSystem.WriteFile(cfg.OutputPath, anim.Data); err != nil {
			ind.Hide()
			log.Error("Failed to write output: %s", err)
			return result, fmt.Errorf("write animation: %w", err)
		}
		log.Info("Output saved to %s", cfg.OutputPath)
	}

	if cfg.HideDelay > 0 {
		time.AfterFunc(cfg.HideDelay, ind.Hide)
	} else {
		ind.Hide()
	}
	log.Info("Splitter completed successfully")
	return result, nil
}

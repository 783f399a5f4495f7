// Package summarizer provides summary generation for sampler and splitter runs.
package summarizer

import (
	"time"

	"github.com/user/framegrid/pkg/orchestrator"
	"github.com/user/framegrid/pkg/pipeline"
)

// Kind names the pipeline that produced a summary.
type Kind string

const (
	KindSample Kind = "sample"
	KindSplit  Kind = "split"
)

// Summary contains the data collected during one run.
type Summary struct {
	// Metadata
	GeneratedAt time.Time
	Kind        Kind
	Elapsed     time.Duration

	Source SourceInfo

	// Sampler only
	Video    VideoInfo
	Layout   LayoutInfo
	Timeline []float64

	// Splitter only
	Animation AnimationInfo

	Output OutputInfo
}

// SourceInfo identifies the input file.
type SourceInfo struct {
	Name string
	Path string
}

// VideoInfo contains the source video metadata.
type VideoInfo struct {
	Width       int
	Height      int
	DurationSec float64
}

// LayoutInfo contains the print layout decisions.
type LayoutInfo struct {
	Orientation  string
	PageWidthIn  float64
	PageHeightIn float64
	PrintWidthIn float64
}

// AnimationInfo contains the encoder settings and results.
type AnimationInfo struct {
	SheetWidth  int
	SheetHeight int
	FrameWidth  int
	FrameHeight int
	FrameCount  int
	DelayMs     int
	Workers     int
	Quality     int
}

// OutputInfo describes the written result.
type OutputInfo struct {
	Path     string
	FileSize int64
}

// NewSummary creates a new Summary with the current timestamp.
func NewSummary(kind Kind) *Summary {
	return &Summary{
		GeneratedAt: time.Now(),
		Kind:        kind,
	}
}

// Builder provides a fluent interface for building a Summary.
type Builder struct {
	summary *Summary
}

// NewBuilder creates a new Builder.
func NewBuilder(kind Kind) *Builder {
	return &Builder{
		summary: NewSummary(kind),
	}
}

// FromSample fills a sampler summary from its run result.
func FromSample(r orchestrator.SampleResult) *Builder {
	return NewBuilder(KindSample).
		WithSource(r.Source).
		WithVideo(r.Metadata).
		WithLayout(r.Geometry).
		WithTimeline(r.Timeline).
		WithOutputSize(int64(len(r.Document)))
}

// FromSplit fills a splitter summary from its run result and options.
func FromSplit(r orchestrator.SplitResult, opts pipeline.AnimationOptions) *Builder {
	return NewBuilder(KindSplit).
		WithSource(r.Source).
		WithAnimation(AnimationInfo{
			SheetWidth:  r.SheetWidth,
			SheetHeight: r.SheetHeight,
			FrameWidth:  r.Animation.Width,
			FrameHeight: r.Animation.Height,
			FrameCount:  r.Animation.Frames,
			DelayMs:     opts.DelayMs,
			Workers:     opts.Workers,
			Quality:     opts.Quality,
		}).
		WithOutputSize(int64(len(r.Animation.Data)))
}

// WithSource sets the input file.
func (b *Builder) WithSource(src pipeline.MediaSource) *Builder {
	b.summary.Source = SourceInfo{Name: src.Name, Path: src.Path}
	return b
}

// WithVideo sets the video dimensions and duration.
func (b *Builder) WithVideo(meta pipeline.VideoMetadata) *Builder {
	b.summary.Video = VideoInfo{
		Width:       meta.Width,
		Height:      meta.Height,
		DurationSec: meta.Duration,
	}
	return b
}

// WithLayout sets the print layout.
func (b *Builder) WithLayout(geom pipeline.LayoutGeometry) *Builder {
	b.summary.Layout = LayoutInfo{
		Orientation:  string(geom.Orientation),
		PageWidthIn:  geom.PageWidthIn,
		PageHeightIn: geom.PageHeightIn,
		PrintWidthIn: geom.PrintWidthIn,
	}
	return b
}

// WithTimeline sets the frame timestamps.
func (b *Builder) WithTimeline(tl pipeline.FrameTimeline) *Builder {
	b.summary.Timeline = append([]float64(nil), tl...)
	return b
}

// WithAnimation sets the animation details.
func (b *Builder) WithAnimation(info AnimationInfo) *Builder {
	b.summary.Animation = info
	return b
}

// WithOutput records where the result was written.
func (b *Builder) WithOutput(path string) *Builder {
	b.summary.Output.Path = path
	return b
}

// WithOutputSize sets the output size in bytes.
func (b *Builder) WithOutputSize(size int64) *Builder {
	b.summary.Output.FileSize = size
	return b
}

// WithElapsed records the wall time of the run.
func (b *Builder) WithElapsed(d time.Duration) *Builder {
	b.summary.Elapsed = d
	return b
}

// Build returns the constructed Summary.
func (b *Builder) Build() *Summary {
	return b.summary
}

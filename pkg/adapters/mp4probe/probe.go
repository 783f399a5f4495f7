// Package mp4probe reads video metadata directly from MP4 boxes.
package mp4probe

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/Eyevinn/mp4ff/mp4"

	"github.com/user/framegrid/pkg/pipeline"
	"github.com/user/framegrid/pkg/ports"
)

// Prober implements ports.MetadataProber for MP4 and MOV files.
type Prober struct{}

// New creates a new Prober.
func New() *Prober {
	return &Prober{}
}

// Ensure Prober implements ports.MetadataProber
var _ ports.MetadataProber = (*Prober)(nil)

// Probe returns the dimensions of the first video track and the movie
// duration.
func (p *Prober) Probe(ctx context.Context, path string) (pipeline.VideoMetadata, error) {
	f, err := os.Open(path)
	if err != nil {
		return pipeline.VideoMetadata{}, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	return ProbeReader(f)
}

// ProbeReader reads metadata from an MP4 stream.
func ProbeReader(reader io.ReadSeeker) (pipeline.VideoMetadata, error) {
	mp4File, err := mp4.DecodeFile(reader, mp4.WithDecodeMode(mp4.DecModeLazyMdat))
	if err != nil {
		return pipeline.VideoMetadata{}, fmt.Errorf("decode mp4: %w", err)
	}

	moov := mp4File.Moov
	if moov == nil && mp4File.Init != nil {
		moov = mp4File.Init.Moov
	}
	if moov == nil {
		return pipeline.VideoMetadata{}, fmt.Errorf("%w: no moov box", ports.ErrNoVideoStream)
	}

	matrices, err := trackMatrices(reader)
	if err != nil {
		return pipeline.VideoMetadata{}, fmt.Errorf("read track matrix: %w", err)
	}

	return fromMoov(moov, matrices)
}

// fromMoov reports display dimensions: a track rotated by a quarter turn
// has its stored width and height swapped.
func fromMoov(moov *mp4.MoovBox, matrices []matrix) (pipeline.VideoMetadata, error) {
	var meta pipeline.VideoMetadata

	var video *mp4.TrakBox
	rotation := unity
	for i, trak := range moov.Traks {
		if trak.Mdia != nil && trak.Mdia.Hdlr != nil && trak.Mdia.Hdlr.HandlerType == "vide" {
			video = trak
			if i < len(matrices) {
				rotation = matrices[i]
			}
			break
		}
	}
	if video == nil || video.Tkhd == nil {
		return meta, ports.ErrNoVideoStream
	}

	// Track header sizes are 16.16 fixed point
	meta.Width = int(uint32(video.Tkhd.Width) >> 16)
	meta.Height = int(uint32(video.Tkhd.Height) >> 16)
	if rotation.quarterTurn() {
		meta.Width, meta.Height = meta.Height, meta.Width
	}

	switch {
	case moov.Mvhd != nil && moov.Mvhd.Timescale > 0 && moov.Mvhd.Duration > 0:
		meta.Duration = float64(moov.Mvhd.Duration) / float64(moov.Mvhd.Timescale)
	case video.Mdia.Mdhd != nil && video.Mdia.Mdhd.Timescale > 0:
		meta.Duration = float64(video.Mdia.Mdhd.Duration) / float64(video.Mdia.Mdhd.Timescale)
	}

	if meta.Width <= 0 || meta.Height <= 0 {
		return meta, fmt.Errorf("invalid track size %dx%d", meta.Width, meta.Height)
	}
	if meta.Duration <= 0 {
		return meta, fmt.Errorf("%w: no duration in movie header", pipeline.ErrInvalidDuration)
	}
	return meta, nil
}

package ffmpegsource

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/user/framegrid/pkg/pipeline"
	"github.com/user/framegrid/pkg/ports"
)

// ffprobe JSON wire types

type ffprobeOutput struct {
	Format  ffprobeFormat   `json:"format"`
	Streams []ffprobeStream `json:"streams"`
}

type ffprobeFormat struct {
	FormatName string `json:"format_name"`
	Duration   string `json:"duration"`
}

type ffprobeStream struct {
	Index        int               `json:"index"`
	CodecName    string            `json:"codec_name"`
	CodecType    string            `json:"codec_type"`
	Width        int               `json:"width"`
	Height       int               `json:"height"`
	Duration     string            `json:"duration"`
	Disposition  map[string]int    `json:"disposition"`
	Tags         map[string]string `json:"tags"`
	SideDataList []ffprobeSideData `json:"side_data_list"`
}

type ffprobeSideData struct {
	SideDataType string  `json:"side_data_type"`
	Rotation     float64 `json:"rotation"`
}

// ParseProbeJSON converts ffprobe JSON output into VideoMetadata.
//
// Dimensions are the displayed size: a stream rotated by 90 or 270 degrees
// has its width and height swapped. The stream duration is preferred over
// the container duration.
func ParseProbeJSON(data []byte) (pipeline.VideoMetadata, error) {
	var raw ffprobeOutput
	if err := json.Unmarshal(data, &raw); err != nil {
		return pipeline.VideoMetadata{}, fmt.Errorf("parse ffprobe JSON: %w", err)
	}

	var video *ffprobeStream
	for i := range raw.Streams {
		s := &raw.Streams[i]
		if s.CodecType == "video" && s.Disposition["attached_pic"] != 1 {
			video = s
			break
		}
	}
	if video == nil {
		return pipeline.VideoMetadata{}, ports.ErrNoVideoStream
	}

	meta := pipeline.VideoMetadata{
		Width:    video.Width,
		Height:   video.Height,
		Duration: parseFloat(video.Duration),
	}
	if meta.Duration <= 0 {
		meta.Duration = parseFloat(raw.Format.Duration)
	}

	if quarterTurn(rotation(video)) {
		meta.Width, meta.Height = meta.Height, meta.Width
	}

	return meta, nil
}

func rotation(s *ffprobeStream) int {
	for _, sd := range s.SideDataList {
		if sd.SideDataType == "Display Matrix" && sd.Rotation != 0 {
			return int(sd.Rotation)
		}
	}
	if r, ok := s.Tags["rotate"]; ok {
		n, _ := strconv.Atoi(strings.TrimSpace(r))
		return n
	}
	return 0
}

func quarterTurn(deg int) bool {
	deg %= 180
	if deg < 0 {
		deg += 180
	}
	return deg == 90
}

func parseFloat(s string) float64 {
	s = strings.TrimSpace(s)
	f, _ := strconv.ParseFloat(s, 64)
	return f
}

// Package orchestrator coordinates the pipeline stages of the two framegrid
// runs: the Sampler (video to print sheet) and the Splitter (sheet to
// animation).
package orchestrator

import (
	"encoding/json"

	"github.com/user/framegrid/pkg/ports"
)

// Indicator titles and fill levels reported by the runs.
const (
	SamplerTitle  = "Extracting frames"
	SplitterTitle = "Creating animation"

	MetadataProgress = 10
	TimelineProgress = 20
)

func saveJSON(sink ports.DebugSink, v interface{}, save func([]byte) error) {
	if !sink.Enabled() {
		return
	}
	if data, err := json.MarshalIndent(v, "", "  "); err == nil {
		save(data)
	}
}

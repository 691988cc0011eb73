package orchestrator

import (
	"time"

	"github.com/maastricht-university/diarview/rttm"
	"github.com/maastricht-university/diarview/stats"
	"github.com/maastricht-university/diarview/timeline"
	"github.com/maastricht-university/diarview/waveform"
)

type Kind string

const (
	KindRTTM     Kind = "rttm"
	KindSegments Kind = "segments"
	KindAudio    Kind = "audio"
)

type Input struct {
	Path string
	Kind Kind // detected from the extension when empty
	// Audio optionally names a WAV file to draw the waveform from when Path
	// is an annotation.
	Audio string
}

type Bundle struct {
	SessionID   string             `json:"session_id" yaml:"session_id"`
	Input       string             `json:"input" yaml:"input"`
	Kind        Kind               `json:"kind" yaml:"kind"`
	GeneratedAt time.Time          `json:"generated_at" yaml:"generated_at"`
	Language    string             `json:"language,omitempty" yaml:"language,omitempty"`
	Segments    []timeline.Segment `json:"segments" yaml:"segments"`
	Layout      *timeline.Layout   `json:"layout" yaml:"layout"`
	Markers     []timeline.Marker  `json:"markers" yaml:"markers"`
	Heights     []int              `json:"heights" yaml:"heights"`
	MaxHeight   int                `json:"max_height" yaml:"max_height"`
	Colors      map[string]string  `json:"colors" yaml:"colors"`
	Stats       stats.Summary      `json:"stats" yaml:"stats"`
	Peaks       []waveform.Peak    `json:"peaks,omitempty" yaml:"peaks,omitempty"`
	Rejected    []*rttm.LineError  `json:"rejected,omitempty" yaml:"rejected,omitempty"`
}

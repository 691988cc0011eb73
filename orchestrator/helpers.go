package orchestrator

import (
	"math"
	"path/filepath"
	"strings"

	"github.com/maastricht-university/diarview/rttm"
	"github.com/maastricht-university/diarview/timeline"
)

func detectKind(path string) Kind {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".rttm", ".txt":
		return KindRTTM
	case ".json":
		return KindSegments
	default:
		return KindAudio
	}
}

func isWAV(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".wav")
}

// assignSpeakers labels each transcript segment with the diarized speaker it
// overlaps most. Segments with no overlap keep their label.
func assignSpeakers(segs []timeline.Segment, turns []rttm.Segment) int {
	assigned := 0
	for i := range segs {
		best, bestOverlap := "", 0.0
		for _, t := range turns {
			o := math.Min(segs[i].End, t.End()) - math.Max(segs[i].Start, t.Start)
			if o > bestOverlap {
				best, bestOverlap = t.Speaker, o
			}
		}
		if best != "" {
			segs[i].Speaker = best
			assigned++
		}
	}
	return assigned
}

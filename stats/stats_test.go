package stats

import (
	"math"
	"reflect"
	"testing"

	"github.com/maastricht-university/diarview/palette"
	"github.com/maastricht-university/diarview/timeline"
)

func TestCompute(t *testing.T) {
	segs := []timeline.Segment{
		{Speaker: "A", Start: 0, End: 4},
		{Speaker: "B", Start: 3, End: 6},
		{Speaker: "B", Start: 6, End: 7},
		{Speaker: "A", Start: 8, End: 10},
	}
	s := Compute(segs)

	if s.Duration != 10 {
		t.Errorf("duration = %v, want 10", s.Duration)
	}
	if !reflect.DeepEqual(s.Speakers, []string{"A", "B"}) {
		t.Errorf("speakers = %v", s.Speakers)
	}
	if s.SpeakingTime["A"] != 6 || s.SpeakingTime["B"] != 4 {
		t.Errorf("speaking time = %v", s.SpeakingTime)
	}
	if math.Abs(s.SpeakingShare["A"]-0.6) > 1e-9 || math.Abs(s.SpeakingShare["B"]-0.4) > 1e-9 {
		t.Errorf("speaking share = %v", s.SpeakingShare)
	}
	if s.Turns["A"] != 2 || s.Turns["B"] != 1 {
		t.Errorf("turns = %v", s.Turns)
	}
	// only [3,4] has two speakers; touching segments at 6 do not count
	if math.Abs(s.OverlapRate-0.1) > 1e-9 {
		t.Errorf("overlap rate = %v, want 0.1", s.OverlapRate)
	}
}

func TestCompute_Empty(t *testing.T) {
	s := Compute(nil)
	if s.Duration != 0 || s.OverlapRate != 0 || len(s.Speakers) != 0 {
		t.Errorf("unexpected summary %+v", s)
	}
}

func TestCompute_UnknownSpeaker(t *testing.T) {
	s := Compute([]timeline.Segment{{Start: 0, End: 1}})
	if s.SpeakingShare[palette.Unknown] != 1 {
		t.Errorf("expected all speech attributed to %q, got %v", palette.Unknown, s.SpeakingShare)
	}
}

// Package stats summarises who spoke when in a diarized session.
package stats

import (
	"math"
	"sort"

	"github.com/maastricht-university/diarview/palette"
	"github.com/maastricht-university/diarview/timeline"
)

type Summary struct {
	Duration      float64            `json:"duration" yaml:"duration"`
	Speakers      []string           `json:"speakers" yaml:"speakers"` // first appearance order
	SpeakingTime  map[string]float64 `json:"speaking_time" yaml:"speaking_time"`
	SpeakingShare map[string]float64 `json:"speaking_share" yaml:"speaking_share"`
	Turns         map[string]int     `json:"turns" yaml:"turns"`
	OverlapRate   float64            `json:"overlap_rate" yaml:"overlap_rate"`
}

// Compute expects segments in chronological order; turns are counted in the
// order given.
func Compute(segs []timeline.Segment) Summary {
	sum := Summary{
		SpeakingTime:  map[string]float64{},
		SpeakingShare: map[string]float64{},
		Turns:         map[string]int{},
	}
	if len(segs) == 0 {
		return sum
	}

	type edge struct {
		t     float64
		delta int
	}
	edges := make([]edge, 0, 2*len(segs))
	total := 0.0
	prev := ""
	for i, s := range segs {
		spk := s.Speaker
		if spk == "" {
			spk = palette.Unknown
		}
		if _, seen := sum.SpeakingTime[spk]; !seen {
			sum.Speakers = append(sum.Speakers, spk)
		}
		d := math.Max(0, s.End-s.Start)
		total += d
		sum.SpeakingTime[spk] += d
		if i == 0 || spk != prev {
			sum.Turns[spk]++
		}
		prev = spk
		if s.End > sum.Duration {
			sum.Duration = s.End
		}
		if d > 0 {
			edges = append(edges, edge{t: s.Start, delta: +1}, edge{t: s.End, delta: -1})
		}
	}

	if total > 0 {
		for k, v := range sum.SpeakingTime {
			sum.SpeakingShare[k] = v / total
		}
	}

	if len(edges) == 0 || sum.Duration <= 0 {
		return sum
	}
	// ends sort before starts at the same instant so touching segments do not overlap
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].t != edges[j].t {
			return edges[i].t < edges[j].t
		}
		return edges[i].delta < edges[j].delta
	})
	active := 0
	last := edges[0].t
	overlap := 0.0
	for _, e := range edges {
		if active > 1 {
			overlap += e.t - last
		}
		active += e.delta
		last = e.t
	}
	sum.OverlapRate = overlap / sum.Duration
	return sum
}

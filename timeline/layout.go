// Package timeline lays diarized speech segments out on a horizontally
// scrolling canvas and maps time onto that canvas.
package timeline

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

const (
	PixelsPerSecond = 10
	MinWidth        = 300
	Padding         = 10

	// MinDuration replaces zero or negative durations when computing a scale.
	MinDuration = 1e-3
)

var ErrNonFinite = errors.New("non-finite segment time")

type Segment struct {
	Speaker string  `json:"speaker" yaml:"speaker"`
	Start   float64 `json:"start" yaml:"start"`
	End     float64 `json:"end" yaml:"end"`
	Text    string  `json:"text" yaml:"text"`
}

type Position struct {
	Left  float64 `json:"left" yaml:"left"`
	Width float64 `json:"width" yaml:"width"`
}

// ScaleRange maps [Start, End) seconds onto (End-Start)*Scale pixels.
type ScaleRange struct {
	Start float64 `json:"start" yaml:"start"`
	End   float64 `json:"end" yaml:"end"`
	Scale float64 `json:"scale" yaml:"scale"`
}

type Layout struct {
	Positions   []Position   `json:"positions" yaml:"positions"`
	TimeScaling []ScaleRange `json:"timeScaling" yaml:"timeScaling"`
	TotalWidth  float64      `json:"totalWidth" yaml:"totalWidth"`
}

// Options overrides the layout constants. A non-positive PixelsPerSecond or
// MinWidth uses the default. Padding is a pointer so that 0 can mean no gap:
// nil or a negative value uses the default.
type Options struct {
	PixelsPerSecond float64
	MinWidth        float64
	Padding         *float64
}

// padding is only read after withDefaults has filled it in.
func (o Options) padding() float64 { return *o.Padding }

func (o Options) withDefaults() Options {
	if o.PixelsPerSecond <= 0 {
		o.PixelsPerSecond = PixelsPerSecond
	}
	if o.MinWidth <= 0 {
		o.MinWidth = MinWidth
	}
	if o.Padding == nil || *o.Padding < 0 {
		p := float64(Padding)
		o.Padding = &p
	}
	return o
}

// Compute places every segment at least MinWidth pixels wide, in input order.
// Gaps between segments are kept at scale 1. Overlapping segments keep their
// own position, but their scaling range starts where the previous one ended
// so the ranges stay an ordered partition of time.
func Compute(segs []Segment, opts Options) (*Layout, error) {
	opts = opts.withDefaults()
	out := &Layout{
		Positions:   make([]Position, 0, len(segs)),
		TimeScaling: make([]ScaleRange, 0, 2*len(segs)),
	}

	pos := 0.0
	cursor := 0.0
	for i, s := range segs {
		if !finite(s.Start) || !finite(s.End) {
			return nil, fmt.Errorf("segment %d: %w", i, ErrNonFinite)
		}
		end := math.Max(s.End, s.Start)
		dur := end - s.Start
		width := math.Max(dur*opts.PixelsPerSecond, opts.MinWidth)

		if s.Start > cursor {
			out.TimeScaling = append(out.TimeScaling, ScaleRange{Start: cursor, End: s.Start, Scale: 1})
		}

		from := math.Max(s.Start, cursor)
		switch {
		case dur <= 0:
			out.TimeScaling = append(out.TimeScaling, ScaleRange{Start: from, End: from, Scale: width / MinDuration})
		case end > from:
			out.TimeScaling = append(out.TimeScaling, ScaleRange{Start: from, End: end, Scale: width / (end - from)})
		}

		out.Positions = append(out.Positions, Position{Left: pos, Width: width})
		pos += width + opts.padding()
		cursor = math.Max(cursor, end)
	}
	out.TotalWidth = pos
	return out, nil
}

// ScaledPosition returns where t falls on the layout as a percentage of
// TotalWidth. An empty layout maps everything to 0.
func (l *Layout) ScaledPosition(t float64) float64 {
	if l == nil || l.TotalWidth == 0 {
		return 0
	}
	acc := 0.0
	for _, r := range l.TimeScaling {
		if t >= r.End {
			acc += (r.End - r.Start) * r.Scale
			continue
		}
		if t > r.Start {
			acc += (t - r.Start) * r.Scale
		}
		break
	}
	return acc / l.TotalWidth * 100
}

// Playhead is ScaledPosition clamped to [0, 100].
func (l *Layout) Playhead(t float64) float64 {
	return math.Min(math.Max(l.ScaledPosition(t), 0), 100)
}

func finite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }

// SortByStart orders segs by start time, keeping input order for ties, and
// reports whether anything moved. Compute itself never reorders.
func SortByStart(segs []Segment) bool {
	less := func(i, j int) bool { return segs[i].Start < segs[j].Start }
	if sort.SliceIsSorted(segs, less) {
		return false
	}
	sort.SliceStable(segs, less)
	return true
}

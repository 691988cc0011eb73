package waveform

import "math"

// MinSpan is the narrowest window a viewport can zoom to, in seconds.
const MinSpan = 0.5

// Viewport is the visible [Start, End] window of an audio track lasting
// Duration seconds.
type Viewport struct {
	Duration float64 `json:"duration" yaml:"duration"`
	Start    float64 `json:"start" yaml:"start"`
	End      float64 `json:"end" yaml:"end"`
}

func NewViewport(duration float64) Viewport {
	return Viewport{Duration: duration, Start: 0, End: duration}
}

func (v Viewport) Span() float64 { return v.End - v.Start }

// TimeToPixel maps t onto a chart width pixels wide.
func (v Viewport) TimeToPixel(t float64, width int) float64 {
	if v.Span() <= 0 {
		return 0
	}
	return (t - v.Start) / v.Span() * float64(width)
}

// PixelToTime is the inverse of TimeToPixel.
func (v Viewport) PixelToTime(x float64, width int) float64 {
	if width <= 0 {
		return v.Start
	}
	return v.Start + x/float64(width)*v.Span()
}

// Zoom scales the window by 1/factor around anchor, so factor 2 shows half as
// much time. The result stays inside the track and no narrower than MinSpan.
func (v Viewport) Zoom(factor, anchor float64) Viewport {
	if factor <= 0 || v.Duration <= 0 {
		return v
	}
	minSpan := math.Min(MinSpan, v.Duration)
	span := math.Min(math.Max(v.Span()/factor, minSpan), v.Duration)
	anchor = math.Min(math.Max(anchor, v.Start), v.End)

	ratio := 0.5
	if v.Span() > 0 {
		ratio = (anchor - v.Start) / v.Span()
	}
	start := anchor - ratio*span
	return v.clamp(start, span)
}

// Pan moves the window by delta seconds without leaving the track.
func (v Viewport) Pan(delta float64) Viewport {
	return v.clamp(v.Start+delta, v.Span())
}

func (v Viewport) clamp(start, span float64) Viewport {
	start = math.Max(0, math.Min(start, v.Duration-span))
	return Viewport{Duration: v.Duration, Start: start, End: start + span}
}

// Peaks downsamples only the visible part of a into width columns.
func (v Viewport) Peaks(a *Audio, width int) []Peak {
	if a == nil || a.SampleRate <= 0 {
		return nil
	}
	n := len(a.Samples)
	lo := int(math.Floor(v.Start * float64(a.SampleRate)))
	hi := int(math.Ceil(v.End * float64(a.SampleRate)))
	lo = max(0, min(lo, n))
	hi = max(lo, min(hi, n))
	return Downsample(a.Samples[lo:hi], width)
}

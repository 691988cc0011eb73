package timeline

import (
	"errors"
	"fmt"
	"math"
	"unicode/utf8"
)

const (
	MarkerInterval = 60.0
	// MaxMarkers bounds the gridlines of one layout.
	MaxMarkers = 10000

	baseHeight  = 80
	maxHeight   = 200
	heightStep  = 20
	charsPerRow = 50
)

var ErrTooManyMarkers = errors.New("too many markers")

// Marker is a gridline on the layout.
type Marker struct {
	Time    float64 `json:"time" yaml:"time"`
	Percent float64 `json:"percent" yaml:"percent"`
	Label   string  `json:"label" yaml:"label"`
}

// Markers places a gridline every interval seconds from 0 through duration.
// A non-positive interval uses MarkerInterval. More than MaxMarkers gridlines
// give ErrTooManyMarkers.
func (l *Layout) Markers(duration, interval float64) ([]Marker, error) {
	if interval <= 0 {
		interval = MarkerInterval
	}
	if !finite(duration) || duration < 0 {
		return nil, nil
	}
	count := math.Floor(duration/interval) + 1
	if count > MaxMarkers {
		return nil, fmt.Errorf("%w: %.0f at %gs over %gs (max %d)", ErrTooManyMarkers, count, interval, duration, MaxMarkers)
	}
	n := int(count)
	out := make([]Marker, 0, n)
	for i := 0; i < n; i++ {
		t := float64(i) * interval
		out = append(out, Marker{Time: t, Percent: l.ScaledPosition(t), Label: Clock(t)})
	}
	return out, nil
}

// Clock formats seconds as m:ss.
func Clock(sec float64) string {
	s := int(math.Max(sec, 0))
	return fmt.Sprintf("%d:%02d", s/60, s%60)
}

// SegmentHeight grows 20px per 50 characters of text, from 80px up to 200px.
func SegmentHeight(text string) int {
	h := baseHeight + utf8.RuneCountInString(text)/charsPerRow*heightStep
	if h > maxHeight {
		return maxHeight
	}
	return h
}

// Heights returns SegmentHeight for each segment and the tallest of them.
func Heights(segs []Segment) ([]int, int) {
	out := make([]int, len(segs))
	tallest := 0
	for i, s := range segs {
		out[i] = SegmentHeight(s.Text)
		if out[i] > tallest {
			tallest = out[i]
		}
	}
	return out, tallest
}

// Duration is the latest segment end.
func Duration(segs []Segment) float64 {
	d := 0.0
	for _, s := range segs {
		if s.End > d {
			d = s.End
		}
	}
	return d
}

// Speakers lists the speaker of each segment, in order.
func Speakers(segs []Segment) []string {
	out := make([]string, len(segs))
	for i, s := range segs {
		out[i] = s.Speaker
	}
	return out
}

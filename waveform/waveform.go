// Package waveform decodes WAV audio and reduces it to chart-sized peaks.
package waveform

import (
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/go-audio/wav"
)

var ErrInvalidWAV = errors.New("invalid WAV file")

// Audio is a mono mixdown with samples in [-1, 1].
type Audio struct {
	Samples    []float32
	SampleRate int
	Channels   int
	Duration   time.Duration
}

// Seconds is the audio length in seconds.
func (a *Audio) Seconds() float64 { return a.Duration.Seconds() }

// Decode reads a PCM WAV stream and mixes all channels down to mono.
func Decode(r io.ReadSeeker) (*Audio, error) {
	decoder := wav.NewDecoder(r)
	if !decoder.IsValidFile() {
		return nil, ErrInvalidWAV
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("read PCM buffer: %w", err)
	}
	if buf == nil || buf.Format == nil {
		return nil, ErrInvalidWAV
	}

	chans := buf.Format.NumChannels
	if chans < 1 {
		chans = 1
	}
	depth := buf.SourceBitDepth
	if depth == 0 {
		depth = int(decoder.BitDepth)
	}
	if depth == 0 {
		depth = 16
	}
	scale := float32(1.0 / math.Pow(2, float64(depth-1)))
	// 8-bit PCM is unsigned with silence at 128.
	offset := 0
	if depth == 8 {
		offset = 128
	}

	frames := len(buf.Data) / chans
	samples := make([]float32, frames)
	for i := 0; i < frames; i++ {
		var sum float32
		for c := 0; c < chans; c++ {
			sum += float32(buf.Data[i*chans+c]-offset) * scale
		}
		samples[i] = sum / float32(chans)
	}

	rate := buf.Format.SampleRate
	var dur time.Duration
	if rate > 0 {
		dur = time.Duration(float64(frames) / float64(rate) * float64(time.Second))
	}
	return &Audio{Samples: samples, SampleRate: rate, Channels: chans, Duration: dur}, nil
}

// Peak is the sample range of one chart column.
type Peak struct {
	Min float32 `json:"min" yaml:"min"`
	Max float32 `json:"max" yaml:"max"`
}

// Downsample splits samples into buckets even buckets and keeps the extremes
// of each. With more buckets than samples every sample is its own peak.
func Downsample(samples []float32, buckets int) []Peak {
	if buckets <= 0 || len(samples) == 0 {
		return nil
	}
	if buckets >= len(samples) {
		out := make([]Peak, len(samples))
		for i, s := range samples {
			out[i] = Peak{Min: s, Max: s}
		}
		return out
	}

	out := make([]Peak, buckets)
	n := len(samples)
	for b := 0; b < buckets; b++ {
		lo := b * n / buckets
		hi := (b + 1) * n / buckets
		p := Peak{Min: samples[lo], Max: samples[lo]}
		for _, s := range samples[lo+1 : hi] {
			if s < p.Min {
				p.Min = s
			}
			if s > p.Max {
				p.Max = s
			}
		}
		out[b] = p
	}
	return out
}

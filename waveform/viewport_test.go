package waveform

import "testing"

func TestViewport_Zoom(t *testing.T) {
	v := NewViewport(100)
	tests := []struct {
		name   string
		factor float64
		anchor float64
		want   Viewport
	}{
		{"centre", 2, 50, Viewport{Duration: 100, Start: 25, End: 75}},
		{"left edge", 2, 0, Viewport{Duration: 100, Start: 0, End: 50}},
		{"right edge", 4, 100, Viewport{Duration: 100, Start: 75, End: 100}},
		{"min span", 1e9, 10, Viewport{Duration: 100, Start: 9.95, End: 10.45}},
		{"zoom out capped", 0.1, 50, v},
		{"bad factor", -1, 50, v},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := v.Zoom(tt.factor, tt.anchor)
			if !approx(got.Start, tt.want.Start) || !approx(got.End, tt.want.End) {
				t.Errorf("Zoom(%v, %v) = %+v, want %+v", tt.factor, tt.anchor, got, tt.want)
			}
		})
	}
}

func TestViewport_Pan(t *testing.T) {
	v := Viewport{Duration: 100, Start: 25, End: 75}
	if got := v.Pan(-100); got.Start != 0 || got.End != 50 {
		t.Errorf("Pan(-100) = %+v", got)
	}
	if got := v.Pan(1000); got.Start != 50 || got.End != 100 {
		t.Errorf("Pan(1000) = %+v", got)
	}
	if got := v.Pan(5); got.Start != 30 || got.End != 80 {
		t.Errorf("Pan(5) = %+v", got)
	}
}

func TestViewport_Mapping(t *testing.T) {
	v := Viewport{Duration: 100, Start: 25, End: 75}
	if got := v.TimeToPixel(50, 1000); got != 500 {
		t.Errorf("TimeToPixel = %v, want 500", got)
	}
	if got := v.PixelToTime(500, 1000); got != 50 {
		t.Errorf("PixelToTime = %v, want 50", got)
	}
	if got := (Viewport{}).TimeToPixel(3, 100); got != 0 {
		t.Errorf("empty viewport TimeToPixel = %v, want 0", got)
	}
}

func TestViewport_Peaks(t *testing.T) {
	a := &Audio{Samples: make([]float32, 100), SampleRate: 10}
	a.Samples[55] = 0.9
	v := Viewport{Duration: 10, Start: 5, End: 6}
	peaks := v.Peaks(a, 5)
	if len(peaks) != 5 {
		t.Fatalf("got %d peaks, want 5", len(peaks))
	}
	if peaks[2].Max != 0.9 {
		t.Errorf("visible spike missing: %+v", peaks)
	}
	if (Viewport{Duration: 10, End: 10}).Peaks(nil, 5) != nil {
		t.Error("nil audio should give nil peaks")
	}
}

func approx(a, b float64) bool {
	d := a - b
	return d < 1e-9 && d > -1e-9
}

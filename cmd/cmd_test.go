package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const sampleRTTM = `SPEAKER meeting 1 0 2 <NA> <NA> A <NA> <NA>
SPEAKER meeting 1 10 1 <NA> <NA> B <NA> <NA>
`

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("CONFIG_ENV", "cmd-test")
	root := NewRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func tempFile(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestParseCmd(t *testing.T) {
	out, err := execute(t, "parse", tempFile(t, "m.rttm", sampleRTTM+"bad line\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	var segs []struct {
		Start    float64 `json:"start"`
		Duration float64 `json:"duration"`
		Speaker  string  `json:"speaker"`
	}
	if err := json.Unmarshal([]byte(out), &segs); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if len(segs) != 2 || segs[1].Start != 10 || segs[1].Speaker != "B" {
		t.Errorf("segments = %+v", segs)
	}
}

func TestParseCmd_Strict(t *testing.T) {
	_, err := execute(t, "parse", "--strict", tempFile(t, "m.rttm", sampleRTTM+"bad line\n"))
	if err == nil || !strings.Contains(err.Error(), "line 3") {
		t.Errorf("expected strict parse error on line 3, got %v", err)
	}
}

func TestParseCmd_RTTMFormat(t *testing.T) {
	messy := ";; header\nSPEAKER   meeting 1 0.0 2   <NA> <NA> A <NA> <NA>\n\nbad line\nSPEAKER meeting 1 10 1 <NA> <NA> B <NA> <NA>\n"
	out, err := execute(t, "parse", "--format", "rttm", tempFile(t, "m.rttm", messy))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if out != sampleRTTM {
		t.Errorf("normalised output = %q, want %q", out, sampleRTTM)
	}
}

func TestParseCmd_UnknownFormat(t *testing.T) {
	if _, err := execute(t, "parse", "--format", "csv", tempFile(t, "m.rttm", sampleRTTM)); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestLayoutCmd(t *testing.T) {
	out, err := execute(t, "layout", tempFile(t, "m.rttm", sampleRTTM))
	if err != nil {
		t.Fatalf("layout: %v", err)
	}
	var b struct {
		Layout struct {
			TotalWidth float64 `json:"totalWidth"`
		} `json:"layout"`
		Colors map[string]string `json:"colors"`
	}
	if err := json.Unmarshal([]byte(out), &b); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if b.Layout.TotalWidth != 620 || len(b.Colors) != 2 {
		t.Errorf("bundle = %+v", b)
	}
}

func TestRunCmd(t *testing.T) {
	outDir := t.TempDir()
	out, err := execute(t, "run", "-o", outDir, "--format", "yaml", tempFile(t, "m.rttm", sampleRTTM))
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	path := strings.TrimSpace(out)
	if !strings.HasPrefix(path, outDir) || filepath.Base(path) != "timeline.yaml" {
		t.Errorf("unexpected bundle path %q", path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("bundle not written: %v", err)
	}
}

func TestConfigCmd(t *testing.T) {
	out, err := execute(t, "config")
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	if !strings.Contains(out, "min_width: 300") {
		t.Errorf("config dump = %s", out)
	}
}

func writeTone(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tone.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	data := make([]int, 1600)
	for i := range data {
		if i%2 == 0 {
			data[i] = 8192
		} else {
			data[i] = -8192
		}
	}
	enc := wav.NewEncoder(f, 1600, 16, 1, 1)
	if err := enc.Write(&audio.IntBuffer{Format: &audio.Format{NumChannels: 1, SampleRate: 1600}, Data: data, SourceBitDepth: 16}); err != nil {
		t.Fatal(err)
	}
	if err := enc.Close(); err != nil {
		t.Fatal(err)
	}
	f.Close()
	return path
}

func TestWaveformCmd(t *testing.T) {
	out, err := execute(t, "waveform", "--peaks", "8", writeTone(t))
	if err != nil {
		t.Fatalf("waveform: %v", err)
	}
	var w struct {
		Duration float64 `json:"duration"`
		Peaks    []struct {
			Min float64 `json:"min"`
			Max float64 `json:"max"`
		} `json:"peaks"`
	}
	if err := json.Unmarshal([]byte(out), &w); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if w.Duration != 1 || len(w.Peaks) != 8 {
		t.Fatalf("duration = %v peaks = %d", w.Duration, len(w.Peaks))
	}
	if w.Peaks[0].Min != -0.25 || w.Peaks[0].Max != 0.25 {
		t.Errorf("peak = %+v", w.Peaks[0])
	}
}

func TestWaveformCmd_PanAndCursor(t *testing.T) {
	out, err := execute(t, "waveform", "--peaks", "8", "--zoom", "2", "--start", "0.5", "--at", "0.75", writeTone(t))
	if err != nil {
		t.Fatalf("waveform: %v", err)
	}
	var w struct {
		Viewport struct {
			Start float64 `json:"start"`
			End   float64 `json:"end"`
		} `json:"viewport"`
		Times  []float64 `json:"times"`
		Cursor *float64  `json:"cursor"`
	}
	if err := json.Unmarshal([]byte(out), &w); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if w.Viewport.Start != 0.5 || w.Viewport.End != 1 {
		t.Errorf("viewport = %+v, want [0.5, 1]", w.Viewport)
	}
	if len(w.Times) != 8 || w.Times[0] != 0.5 || w.Times[1] != 0.5625 {
		t.Errorf("times = %v", w.Times)
	}
	if w.Cursor == nil || *w.Cursor != 4 {
		t.Errorf("cursor = %v, want 4", w.Cursor)
	}
}

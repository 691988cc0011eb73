package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	t.Setenv("CONFIG_ENV", "does-not-exist")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Layout.MinWidth != 300 || cfg.Layout.PixelsPerSecond != 10 || cfg.Layout.Padding != 10 {
		t.Errorf("unexpected layout defaults: %+v", cfg.Layout)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("server addr = %q, want :8080", cfg.Server.Addr)
	}
	if cfg.Paths.Format != "json" {
		t.Errorf("format = %q, want json", cfg.Paths.Format)
	}
}

func TestLoad_FileAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := `pipeline:
  log_level: debug
services:
  transcription:
    url: http://asr.local
layout:
  min_width: 200
paths:
  outputs: /tmp/out
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("DIARVIEW_SERVER_ADDR", ":9999")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Pipeline.LogLvl != "debug" {
		t.Errorf("log level = %q, want debug", cfg.Pipeline.LogLvl)
	}
	if cfg.Services.Transcription.URL != "http://asr.local" {
		t.Errorf("transcription url = %q", cfg.Services.Transcription.URL)
	}
	if cfg.Layout.MinWidth != 200 {
		t.Errorf("min width = %v, want 200", cfg.Layout.MinWidth)
	}
	// untouched keys keep their defaults
	if cfg.Layout.Padding != 10 {
		t.Errorf("padding = %v, want 10", cfg.Layout.Padding)
	}
	if cfg.Server.Addr != ":9999" {
		t.Errorf("server addr = %q, want env override :9999", cfg.Server.Addr)
	}
}

func TestLoad_ZeroPaddingKept(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("layout:\n  padding: 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	opts := cfg.Layout.TimelineOptions()
	if opts.Padding == nil || *opts.Padding != 0 {
		t.Errorf("padding = %v, want 0", opts.Padding)
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}

func TestDump(t *testing.T) {
	var buf bytes.Buffer
	if err := Default().Dump(&buf); err != nil {
		t.Fatalf("Dump: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"pipeline:", "min_width: 300", "outputs: outputs"} {
		if !strings.Contains(out, want) {
			t.Errorf("dump missing %q:\n%s", want, out)
		}
	}
}

func TestDurSeconds(t *testing.T) {
	if got := DurSeconds(3).Seconds(); got != 3 {
		t.Errorf("DurSeconds(3) = %v", got)
	}
}

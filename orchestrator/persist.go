package orchestrator

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

func mkSessionDir(outputsRoot string, now time.Time) (string, string, error) {
	ts := now.Format("20060102-150405")
	sid := "session_" + ts + "_" + uuid.NewString()[:8]
	dir := filepath.Join(outputsRoot, sid)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", "", err
	}
	return sid, dir, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeYAML(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

// persist writes b to <outputsRoot>/<session>/timeline.<format> and fills in
// the session ID. format is "json" or "yaml".
func persist(outputsRoot, format string, b *Bundle) (string, error) {
	sid, outDir, err := mkSessionDir(outputsRoot, b.GeneratedAt)
	if err != nil {
		return "", err
	}
	b.SessionID = sid

	if format == "yaml" || format == "yml" {
		path := filepath.Join(outDir, "timeline.yaml")
		return path, writeYAML(path, b)
	}
	path := filepath.Join(outDir, "timeline.json")
	return path, writeJSON(path, b)
}

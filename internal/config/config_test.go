package config

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"

	"github.com/ivlev/beat2frame/internal/frames"
)

func TestSettingsPathFromEnv(t *testing.T) {
	t.Setenv(SettingsEnv, "/tmp/custom.json")
	if got := SettingsPath(); got != "/tmp/custom.json" {
		t.Errorf("Expected env override, got %s", got)
	}
}

func TestDefault(t *testing.T) {
	t.Setenv(SettingsEnv, "")
	cfg := Default()
	if cfg.RowCount != frames.DefaultRowCount {
		t.Errorf("Expected %d rows, got %d", frames.DefaultRowCount, cfg.RowCount)
	}
	if cfg.ScriptName != "AddKeyframes" {
		t.Errorf("Expected AddKeyframes, got %s", cfg.ScriptName)
	}
	if !strings.HasSuffix(cfg.SettingsPath, "settings.json") && cfg.SettingsPath != ".beat2frame.json" {
		t.Errorf("Unexpected settings path %s", cfg.SettingsPath)
	}
}

func TestBatchWriteRead(t *testing.T) {
	batch := &BatchFile{
		Version: BatchVersion,
		Presets: []Preset{
			{Name: "verse", Rows: 16, Params: frames.Params{BeatInterval: 1, FPS: 30, BPM: 176}},
			{Name: "chorus", Output: "chorus_half", Params: frames.Params{BeatInterval: 0.5, BeatOffset: 2, FPS: 24, BPM: 128, FrameOffset: 10}},
		},
	}

	path := filepath.Join(t.TempDir(), "batch.yaml")
	if err := WriteBatch(batch, path); err != nil {
		t.Fatalf("WriteBatch failed: %v", err)
	}

	got, err := ReadBatch(path)
	if err != nil {
		t.Fatalf("ReadBatch failed: %v", err)
	}
	if got.Version != BatchVersion {
		t.Errorf("Expected version %s, got %s", BatchVersion, got.Version)
	}
	if len(got.Presets) != 2 {
		t.Fatalf("Expected 2 presets, got %d", len(got.Presets))
	}
	if got.Presets[1].Params != batch.Presets[1].Params {
		t.Errorf("Params mismatch: expected %+v, got %+v", batch.Presets[1].Params, got.Presets[1].Params)
	}
	if got.Presets[1].OutputName() != "chorus_half" || got.Presets[0].OutputName() != "verse" {
		t.Error("Unexpected output names")
	}
	if got.Presets[0].RowCount() != 16 || got.Presets[1].RowCount() != frames.DefaultRowCount {
		t.Error("Unexpected row counts")
	}
}

func TestReadBatchInlineParams(t *testing.T) {
	doc := `version: "1.0"
presets:
  - name: intro
    fps: 60
    bpm: 90
    beat_interval: 2
    frame_offset: -4
`
	path := filepath.Join(t.TempDir(), "batch.yaml")
	os.WriteFile(path, []byte(doc), 0644)

	got, err := ReadBatch(path)
	if err != nil {
		t.Fatalf("ReadBatch failed: %v", err)
	}
	want := frames.Params{BeatInterval: 2, FPS: 60, BPM: 90, FrameOffset: -4}
	if got.Presets[0].Params != want {
		t.Errorf("Expected %+v, got %+v", want, got.Presets[0].Params)
	}
}

func TestReadBatchRejects(t *testing.T) {
	docs := map[string]string{
		"empty":    "version: \"1.0\"\npresets: []\n",
		"zero fps": "presets:\n  - name: a\n    fps: 0\n    bpm: 120\n",
		"no name":  "presets:\n  - fps: 30\n",
		"garbage":  "presets: [",
	}

	for name, doc := range docs {
		path := filepath.Join(t.TempDir(), "batch.yaml")
		os.WriteFile(path, []byte(doc), 0644)
		if _, err := ReadBatch(path); err == nil {
			t.Errorf("%s: expected an error", name)
		}
	}
}

func TestReadBatchMissingFile(t *testing.T) {
	_, err := ReadBatch(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("Expected an error for a missing file")
	}
	if !os.IsNotExist(errors.Cause(err)) {
		t.Errorf("Expected a wrapped not-exist error, got %v", err)
	}
	if !strings.HasPrefix(err.Error(), "reading batch file: ") {
		t.Errorf("Unexpected message %q", err)
	}
}

func TestWriteBatchCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "presets")
	batch := &BatchFile{
		Version: BatchVersion,
		Presets: []Preset{{Name: "intro", Params: frames.Params{BeatInterval: 1, FPS: 30, BPM: 120}}},
	}

	path := GenerateBatchPath(dir)
	if err := WriteBatch(batch, path); err != nil {
		t.Fatalf("WriteBatch failed: %v", err)
	}

	latest, err := FindLatestBatch(dir)
	if err != nil {
		t.Fatalf("FindLatestBatch failed: %v", err)
	}
	if latest != path {
		t.Errorf("Expected %s, got %s", path, latest)
	}
}

func TestPresetValidateMessages(t *testing.T) {
	err := Preset{Name: "a", Params: frames.Params{FPS: 0, BPM: 120}}.Validate()
	if err == nil || err.Error() != `preset "a": fps must not be zero` {
		t.Errorf("Unexpected error %v", err)
	}
}

func TestPresetValidateNonFinite(t *testing.T) {
	p := Preset{Name: "x", Params: frames.Params{FPS: 30, BPM: math.Inf(1)}}
	if err := p.Validate(); err == nil {
		t.Error("Expected an error for infinite bpm")
	}
}

func TestGenerateBatchPath(t *testing.T) {
	path := GenerateBatchPath("presets")
	if !strings.HasPrefix(path, filepath.Join("presets", "batch_")) || !strings.HasSuffix(path, ".yaml") {
		t.Errorf("Unexpected path %s", path)
	}
}

func TestFindLatestBatch(t *testing.T) {
	dir := t.TempDir()
	files := []string{
		filepath.Join(dir, "batch_2026-02-12_10-00-00.yaml"),
		filepath.Join(dir, "batch_2026-02-13_01-00-00.yaml"),
		filepath.Join(dir, "batch_2026-02-11_15-30-00.yaml"),
	}
	for i, f := range files {
		os.WriteFile(f, []byte("test"), 0644)
		modTime := time.Now().Add(time.Duration(i) * time.Hour)
		os.Chtimes(f, modTime, modTime)
	}

	latest, err := FindLatestBatch(dir)
	if err != nil {
		t.Fatalf("FindLatestBatch failed: %v", err)
	}
	if latest != files[len(files)-1] {
		t.Errorf("Expected latest to be %s, got %s", files[len(files)-1], latest)
	}

	if _, err := FindLatestBatch(t.TempDir()); err == nil {
		t.Error("Expected an error for an empty directory")
	}
}

package settings

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestRestoreFallsBackToDefaults(t *testing.T) {
	for _, raw := range []string{"", "{}", `{"fps":30}`, "garbage"} {
		if got := Restore(NewMemoryStore(raw)); got != Default() {
			t.Errorf("Restore(%q): expected defaults, got %+v", raw, got)
		}
	}
}

func TestRestoreValid(t *testing.T) {
	want := Settings{BeatInterval: 2, BeatOffset: 0, FPS: 60, BPM: 120, FrameOffset: 5, Lang: English}
	raw, _ := Encode(want)

	if got := Restore(NewMemoryStore(raw)); got != want {
		t.Errorf("Expected %+v, got %+v", want, got)
	}
}

func TestSessionSkipsFirstWrite(t *testing.T) {
	store := NewMemoryStore("")
	sess := NewSession(store)

	if err := sess.Observe(sess.Current()); err != nil {
		t.Fatalf("Observe failed: %v", err)
	}
	if store.Saves() != 0 {
		t.Fatalf("Initial observe should not write, got %d saves", store.Saves())
	}

	next := sess.Current()
	next.FPS = 24
	next.BPM = 100
	if err := sess.Observe(next); err != nil {
		t.Fatalf("Observe failed: %v", err)
	}
	if store.Saves() != 1 {
		t.Fatalf("Expected 1 save after a change, got %d", store.Saves())
	}

	// unchanged values do not write again
	sess.Observe(next)
	if store.Saves() != 1 {
		t.Errorf("Unchanged observe should not write, got %d saves", store.Saves())
	}

	stored := Restore(store)
	if stored != next {
		t.Errorf("Expected stored %+v, got %+v", next, stored)
	}
}

func TestSessionSetLanguage(t *testing.T) {
	store := NewMemoryStore("")
	sess := NewSession(store)
	sess.Observe(sess.Current())

	if err := sess.SetLanguage(English); err != nil {
		t.Fatalf("SetLanguage failed: %v", err)
	}
	if store.Saves() != 1 {
		t.Errorf("Expected language switch to write, got %d saves", store.Saves())
	}
	if Restore(store).Lang != English {
		t.Error("Stored language should be en")
	}

	if err := sess.SetLanguage("fr"); err == nil {
		t.Error("Expected an error for an unknown language")
	}
}

func TestSessionReset(t *testing.T) {
	raw, _ := Encode(Settings{BeatInterval: 3, FPS: 25, BPM: 90, Lang: English})
	store := NewMemoryStore(raw)
	sess := NewSession(store)

	if err := sess.Reset(); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}
	if Restore(store) != Default() {
		t.Error("Reset should store defaults")
	}
}

func TestFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "settings.json")
	store := NewFileStore(path)

	raw, err := store.Load()
	if err != nil || raw != "" {
		t.Fatalf("Missing file should load empty, got %q, %v", raw, err)
	}

	if err := store.Save(`{"a":1}`); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	raw, err = store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if raw != `{"a":1}` {
		t.Errorf("Expected saved value, got %q", raw)
	}
}

func TestFileStoreExpiry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	store := NewFileStore(path)
	store.Save("value")

	old := time.Now().Add(-31 * 24 * time.Hour)
	if err := os.Chtimes(path, old, old); err != nil {
		t.Fatalf("Chtimes failed: %v", err)
	}

	raw, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if raw != "" {
		t.Errorf("Expired file should load empty, got %q", raw)
	}

	store.MaxAge = 0
	if raw, _ := store.Load(); raw != "value" {
		t.Errorf("MaxAge 0 should disable expiry, got %q", raw)
	}
}

// Package watch reacts to edits of the settings file.
package watch

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"

	"github.com/ivlev/beat2frame/internal/settings"
)

// DefaultDebounce groups the burst of events a single save produces.
const DefaultDebounce = 100 * time.Millisecond

// Watcher calls OnChange with the restored settings each time the settings
// file is written. Identical consecutive states are reported once.
type Watcher struct {
	Path     string
	Debounce time.Duration
	OnChange func(settings.Settings) error

	store   settings.Store
	started chan struct{}
	last    *settings.Settings
}

// New creates a Watcher for the settings file at path.
func New(path string, onChange func(settings.Settings) error) *Watcher {
	return &Watcher{
		Path:     path,
		Debounce: DefaultDebounce,
		OnChange: onChange,
		store:    settings.NewFileStore(path),
		started:  make(chan struct{}),
	}
}

// Started is closed once the file system watch is in place.
func (w *Watcher) Started() <-chan struct{} {
	return w.started
}

// Run watches until ctx is done. The parent directory is watched, not the
// file, so editors that replace the file are handled.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "creating watcher")
	}
	defer fw.Close()

	dir := filepath.Dir(w.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrap(err, "creating settings directory")
	}
	if err := fw.Add(dir); err != nil {
		return errors.Wrapf(err, "watching %s", dir)
	}
	close(w.started)

	target := filepath.Clean(w.Path)
	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(w.Debounce)
			fire = timer.C

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			log.Printf("[!] Watch error: %v", err)

		case <-fire:
			fire = nil
			w.deliver()
		}
	}
}

func (w *Watcher) deliver() {
	s := settings.Restore(w.store)
	if w.last != nil && *w.last == s {
		return
	}
	w.last = &s

	if w.OnChange == nil {
		return
	}
	if err := w.OnChange(s); err != nil {
		log.Printf("[!] Regeneration failed: %v", err)
	}
}

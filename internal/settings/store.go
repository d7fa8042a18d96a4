package settings

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
)

// DefaultMaxAge is how long a saved record stays readable.
const DefaultMaxAge = 30 * 24 * time.Hour

// Store keeps one opaque string.
type Store interface {
	Load() (string, error)
	Save(raw string) error
}

// MemoryStore is a Store held in memory.
type MemoryStore struct {
	mu    sync.Mutex
	raw   string
	saves int
}

// NewMemoryStore creates a MemoryStore holding raw.
func NewMemoryStore(raw string) *MemoryStore {
	return &MemoryStore{raw: raw}
}

func (m *MemoryStore) Load() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.raw, nil
}

func (m *MemoryStore) Save(raw string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.raw = raw
	m.saves++
	return nil
}

// Saves returns how many times Save was called.
func (m *MemoryStore) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

// FileStore keeps the record in a single file. A file older than MaxAge
// reads as empty, the same as a missing one.
type FileStore struct {
	Path   string
	MaxAge time.Duration

	now func() time.Time
}

// NewFileStore creates a FileStore at path with DefaultMaxAge.
func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path, MaxAge: DefaultMaxAge, now: time.Now}
}

func (f *FileStore) Load() (string, error) {
	info, err := os.Stat(f.Path)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", errors.Wrap(err, "stat settings file")
	}

	now := time.Now
	if f.now != nil {
		now = f.now
	}
	if f.MaxAge > 0 && now().Sub(info.ModTime()) > f.MaxAge {
		return "", nil
	}

	data, err := os.ReadFile(f.Path)
	if err != nil {
		return "", errors.Wrap(err, "reading settings file")
	}
	return strings.TrimSpace(string(data)), nil
}

func (f *FileStore) Save(raw string) error {
	if err := os.MkdirAll(filepath.Dir(f.Path), 0755); err != nil {
		return errors.Wrap(err, "creating settings directory")
	}
	if err := os.WriteFile(f.Path, []byte(raw+"\n"), 0644); err != nil {
		return errors.Wrap(err, "writing settings file")
	}
	return nil
}

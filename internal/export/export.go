// Package export writes generated text to disk.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
)

const (
	// DefaultName is the base name of an exported keyframe script.
	DefaultName = "AddKeyframes"
	// DefaultExtension is the extension of an exported keyframe script.
	DefaultExtension = "jsx"
)

// EnsureExtension appends "."+ext to name unless it already ends with it.
func EnsureExtension(name, ext string) string {
	if strings.HasSuffix(name, "."+ext) {
		return name
	}
	return name + "." + ext
}

// TimestampedName returns name with the current time appended, e.g.
// AddKeyframes_2026-02-12_10-00-00.
func TimestampedName(name string) string {
	timestamp := time.Now().Format("2006-01-02_15-04-05")
	return fmt.Sprintf("%s_%s", strings.ReplaceAll(name, " ", "_"), timestamp)
}

// WriteText writes text as UTF-8 to dir/name.ext, creating dir when needed,
// and returns the written path.
func WriteText(dir, name, ext, text string) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", errors.Wrap(err, "creating output directory")
	}

	path := filepath.Join(dir, EnsureExtension(name, ext))
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		return "", errors.Wrapf(err, "writing %s", path)
	}
	return path, nil
}

// FindLatest returns the most recently modified file in dir with extension ext.
func FindLatest(dir, ext string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", errors.Wrapf(err, "reading %s", dir)
	}

	var latestFile string
	var latestTime time.Time

	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(strings.ToLower(e.Name()), "."+ext) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(latestTime) {
			latestTime = info.ModTime()
			latestFile = filepath.Join(dir, e.Name())
		}
	}

	if latestFile == "" {
		return "", errors.Errorf("no .%s files found in %s", ext, dir)
	}
	return latestFile, nil
}

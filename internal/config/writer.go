package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// WriteBatch writes a batch file as YAML, creating its directory.
func WriteBatch(batch *BatchFile, path string) error {
	data, err := yaml.Marshal(batch)
	if err != nil {
		return errors.Wrap(err, "encoding batch file")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(err, "creating batch directory")
	}
	return errors.Wrapf(os.WriteFile(path, data, 0644), "writing %s", path)
}

// ReadBatch reads a batch file and validates every preset.
func ReadBatch(path string) (*BatchFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading batch file")
	}

	var batch BatchFile
	if err := yaml.Unmarshal(data, &batch); err != nil {
		return nil, errors.Wrap(err, "parsing batch file")
	}

	if len(batch.Presets) == 0 {
		return nil, errors.Errorf("no presets in %s", path)
	}
	for _, p := range batch.Presets {
		if err := p.Validate(); err != nil {
			return nil, err
		}
	}

	return &batch, nil
}

// GenerateBatchPath creates a timestamped batch filename in dir.
func GenerateBatchPath(dir string) string {
	timestamp := time.Now().Format("2006-01-02_15-04-05")
	return filepath.Join(dir, fmt.Sprintf("batch_%s.yaml", timestamp))
}

// FindLatestBatch finds the most recent batch file in dir.
func FindLatestBatch(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", errors.Wrap(err, "failed to read batch directory")
	}

	var batches []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".yaml") {
			batches = append(batches, filepath.Join(dir, entry.Name()))
		}
	}

	if len(batches) == 0 {
		return "", errors.Errorf("no batch files found in %s", dir)
	}

	// newest first
	sort.Slice(batches, func(i, j int) bool {
		infoI, _ := os.Stat(batches[i])
		infoJ, _ := os.Stat(batches[j])
		return infoI.ModTime().After(infoJ.ModTime())
	})

	return batches[0], nil
}

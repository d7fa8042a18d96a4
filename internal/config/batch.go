package config

import (
	"math"

	"github.com/pkg/errors"

	"github.com/ivlev/beat2frame/internal/frames"
)

// BatchVersion is written into new batch files.
const BatchVersion = "1.0"

// BatchFile lists presets to export in one run.
type BatchFile struct {
	Version string   `yaml:"version"`
	Presets []Preset `yaml:"presets"`
}

// Preset is one table to export.
type Preset struct {
	Name          string `yaml:"name"`
	Output        string `yaml:"output,omitempty"` // file name, defaults to Name
	Rows          int    `yaml:"rows,omitempty"`   // defaults to frames.DefaultRowCount
	frames.Params `yaml:",inline"`
}

// RowCount returns the preset row count or the default.
func (p Preset) RowCount() int {
	if p.Rows <= 0 {
		return frames.DefaultRowCount
	}
	return p.Rows
}

// OutputName returns the file name to write, without extension.
func (p Preset) OutputName() string {
	if p.Output != "" {
		return p.Output
	}
	return p.Name
}

// Validate rejects presets that cannot produce a script.
func (p Preset) Validate() error {
	if p.Name == "" && p.Output == "" {
		return errors.New("preset needs a name or an output")
	}
	values := map[string]float64{
		"beat_interval": p.BeatInterval,
		"beat_offset":   p.BeatOffset,
		"fps":           p.FPS,
		"bpm":           p.BPM,
		"frame_offset":  p.FrameOffset,
	}
	for k, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return errors.Errorf("preset %q: %s is not finite", p.OutputName(), k)
		}
	}
	if p.FPS == 0 {
		return errors.Errorf("preset %q: fps must not be zero", p.OutputName())
	}
	return nil
}

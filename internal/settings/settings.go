// Package settings persists the calculator state: the five table parameters
// and the interface language.
//
// A stored record is either fully valid or ignored. There is no per-field
// recovery: when anything is wrong the caller starts over from Default.
package settings

import (
	"math"

	"github.com/pkg/errors"

	"github.com/ivlev/beat2frame/internal/frames"
)

// Language is the interface language tag.
type Language string

const (
	Japanese Language = "ja"
	English  Language = "en"
)

// Primary is the language used when nothing else is known.
const Primary = Japanese

// Languages lists the recognized tags, primary first.
func Languages() []Language {
	return []Language{Japanese, English}
}

// Valid reports whether l is a recognized tag.
func (l Language) Valid() bool {
	return l == Japanese || l == English
}

// Settings is one stored calculator state.
type Settings struct {
	BeatInterval float64  `json:"beatInterval" yaml:"beat_interval"`
	BeatOffset   float64  `json:"beatOffset" yaml:"beat_offset"`
	FPS          float64  `json:"fps" yaml:"fps"`
	BPM          float64  `json:"bpm" yaml:"bpm"`
	FrameOffset  float64  `json:"frameOffset" yaml:"frame_offset"`
	Lang         Language `json:"lang" yaml:"lang"`
}

// Default returns the state used on first run or after a rejected record.
func Default() Settings {
	return Settings{
		BeatInterval: 1,
		BeatOffset:   0,
		FPS:          30,
		BPM:          176,
		FrameOffset:  0,
		Lang:         Primary,
	}
}

// Params returns the table inputs.
func (s Settings) Params() frames.Params {
	return frames.Params{
		BeatInterval: s.BeatInterval,
		BeatOffset:   s.BeatOffset,
		FPS:          s.FPS,
		BPM:          s.BPM,
		FrameOffset:  s.FrameOffset,
	}
}

// Validate checks that every number is finite and the language is known.
func (s Settings) Validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"beatInterval", s.BeatInterval},
		{"beatOffset", s.BeatOffset},
		{"fps", s.FPS},
		{"bpm", s.BPM},
		{"frameOffset", s.FrameOffset},
	}
	for _, f := range fields {
		if !isFinite(f.value) {
			return errors.Wrapf(ErrInvalid, "%s is not finite", f.name)
		}
	}
	if !s.Lang.Valid() {
		return errors.Wrapf(ErrInvalid, "unknown language %q", s.Lang)
	}
	return nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

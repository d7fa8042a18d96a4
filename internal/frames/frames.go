// Package frames maps beats to video frames.
//
// A beat index i becomes beat = i*BeatInterval + BeatOffset, and a beat
// becomes a frame position through the tempo and frame rate:
//
//	exact = 60*FPS/BPM*beat + FrameOffset
//
// Everything here is pure: the same Params and row count always give the
// same rows.
package frames

import (
	"iter"

	"github.com/ivlev/beat2frame/internal/numfmt"
	"github.com/ivlev/beat2frame/internal/timecode"
)

// DefaultRowCount is the table length used when no row count is given.
const DefaultRowCount = 512

// Params are the five numeric inputs of the table.
type Params struct {
	BeatInterval float64 `yaml:"beat_interval" json:"beatInterval"`
	BeatOffset   float64 `yaml:"beat_offset" json:"beatOffset"`
	FPS          float64 `yaml:"fps" json:"fps"`
	BPM          float64 `yaml:"bpm" json:"bpm"`
	FrameOffset  float64 `yaml:"frame_offset" json:"frameOffset"`
}

// Row is one line of the frame table.
type Row struct {
	Index      int     `yaml:"index" json:"index"`
	Beat       float64 `yaml:"beat" json:"beat"`
	Exact      float64 `yaml:"exact" json:"exact"`
	Rounded    float64 `yaml:"frame" json:"frame"`
	Rounded2dp float64 `yaml:"frame_2dp" json:"frame2dp"`
	Timecode   string  `yaml:"timecode" json:"timecode"`
}

// FramesPerBeat returns how many frames one beat lasts. A zero BPM divides
// by 1 instead; negative BPM is used as is.
func (p Params) FramesPerBeat() float64 {
	bpm := p.BPM
	if bpm == 0 {
		bpm = 1
	}
	return 60 * p.FPS / bpm
}

// At computes row i.
func (p Params) At(i int) Row {
	beat := float64(i)*p.BeatInterval + p.BeatOffset
	exact := p.FramesPerBeat()*beat + p.FrameOffset
	rounded := numfmt.Round(exact)

	return Row{
		Index:      i,
		Beat:       beat,
		Exact:      exact,
		Rounded:    rounded,
		Rounded2dp: numfmt.Round(exact*100) / 100,
		Timecode:   timecode.Format(rounded, p.FPS),
	}
}

// All yields rows 0..rowCount-1. The sequence can be ranged over any number
// of times.
func All(p Params, rowCount int) iter.Seq[Row] {
	return func(yield func(Row) bool) {
		for i := 0; i < rowCount; i++ {
			if !yield(p.At(i)) {
				return
			}
		}
	}
}

// Generate returns exactly rowCount rows (none when rowCount <= 0).
func Generate(p Params, rowCount int) []Row {
	if rowCount <= 0 {
		return []Row{}
	}
	rows := make([]Row, 0, rowCount)
	for row := range All(p, rowCount) {
		rows = append(rows, row)
	}
	return rows
}

// Package timecode renders elapsed frame counts as HH:MM:SS:FF.
package timecode

import (
	"math"

	"github.com/ivlev/beat2frame/internal/numfmt"
)

// Format converts totalFrames at fps into "HH:MM:SS:FF".
//
// Every part is printed as its absolute value padded to two digits, with no
// upper width limit, so hours past 99 widen the first field. Negative inputs
// lose their sign: Format(-1, 30) is "01:01:01:29".
// fps must not be zero.
func Format(totalFrames, fps float64) string {
	totalSeconds := math.Floor(totalFrames / fps)
	framePart := numfmt.Round(totalFrames - totalSeconds*fps)
	hours := math.Floor(totalSeconds / 3600)
	minutes := math.Floor(math.Mod(totalSeconds, 3600) / 60)
	seconds := math.Mod(totalSeconds, 60)

	return numfmt.Pad(hours, 2) + ":" +
		numfmt.Pad(minutes, 2) + ":" +
		numfmt.Pad(seconds, 2) + ":" +
		numfmt.Pad(framePart, 2)
}

// Seconds returns the position of totalFrames in seconds.
func Seconds(totalFrames, fps float64) float64 {
	return totalFrames / fps
}

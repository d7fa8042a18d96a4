// Package script produces After Effects keyframe scripts with the frame
// positions embedded as a literal array.
package script

import (
	_ "embed"
	"encoding/json"
	"math"
	"regexp"
	"strings"

	"github.com/pkg/errors"

	"github.com/ivlev/beat2frame/internal/frames"
	"github.com/ivlev/beat2frame/internal/numfmt"
)

const (
	// TimesPlaceholder is replaced by the JSON array of frame numbers.
	TimesPlaceholder = "<TIMES_ARRAY>"
	// FPSPlaceholder is replaced by the frame rate.
	FPSPlaceholder = "<FPS>"
)

// Template is the keyframe script. It holds each placeholder exactly once.
//
//go:embed add_keyframes.jsx
var Template string

var timesLiteral = regexp.MustCompile(`var times = (\[[^\]]*\]);`)

// Render fills the template with frameList and fps. Only the first
// occurrence of each placeholder is replaced; the rest of the template is
// returned byte for byte.
func Render(frameList []float64, fps float64) string {
	out := strings.Replace(Template, TimesPlaceholder, Literal(frameList), 1)
	return strings.Replace(out, FPSPlaceholder, numfmt.Format(fps), 1)
}

// Literal renders frameList as a JSON array, numbers in their shortest form.
// NaN and infinities become null.
func Literal(frameList []float64) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, v := range frameList {
		if i > 0 {
			b.WriteByte(',')
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			b.WriteString("null")
			continue
		}
		b.WriteString(numfmt.Format(v))
	}
	b.WriteByte(']')
	return b.String()
}

// Frames collects the rounded frame of every row.
func Frames(rows []frames.Row) []float64 {
	out := make([]float64, len(rows))
	for i, row := range rows {
		out[i] = row.Rounded
	}
	return out
}

// ExtractTimes parses the embedded frame array back out of a rendered script.
// A null entry comes back as NaN.
func ExtractTimes(text string) ([]float64, error) {
	m := timesLiteral.FindStringSubmatch(text)
	if m == nil {
		return nil, errors.New("no times array found in script")
	}
	var raw []*float64
	if err := json.Unmarshal([]byte(m[1]), &raw); err != nil {
		return nil, errors.Wrap(err, "parsing times array")
	}
	out := make([]float64, len(raw))
	for i, v := range raw {
		if v == nil {
			out[i] = math.NaN()
			continue
		}
		out[i] = *v
	}
	return out, nil
}

// Same reports whether two frame lists render to the same literal.
func Same(a, b []float64) bool {
	return Literal(a) == Literal(b)
}

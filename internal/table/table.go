// Package table prints frame rows for the terminal or for other tools.
package table

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/ivlev/beat2frame/internal/frames"
	"github.com/ivlev/beat2frame/internal/locale"
	"github.com/ivlev/beat2frame/internal/numfmt"
)

// Format selects the output encoding.
type Format string

const (
	FormatText Format = "text"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatText, FormatYAML, FormatJSON:
		return f, nil
	}
	return "", errors.Errorf("unknown format %q (text, yaml, json)", s)
}

// Write encodes rows to w. Text output uses loc for the column headers.
func Write(w io.Writer, rows []frames.Row, format Format, loc *locale.Localizer) error {
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(rows); err != nil {
			return errors.Wrap(err, "encoding yaml")
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(rows), "encoding json")
	default:
		return writeText(w, rows, loc)
	}
}

func writeText(w io.Writer, rows []frames.Row, loc *locale.Localizer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	unit := loc.T(locale.FrameUnit)

	fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t\n",
		loc.T(locale.TableIndex),
		loc.T(locale.TableBeat),
		loc.T(locale.TableFrameInt),
		loc.T(locale.TableFrame),
		loc.T(locale.TableTimecode),
	)
	for _, row := range rows {
		fmt.Fprintf(tw, "%d\t%s\t%s %s\t%s %s\t%s\t\n",
			row.Index,
			numfmt.Format(row.Beat),
			numfmt.Format(row.Rounded), unit,
			numfmt.Format(row.Rounded2dp), unit,
			row.Timecode,
		)
	}
	return errors.Wrap(tw.Flush(), "writing table")
}

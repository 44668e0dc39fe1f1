// Package output renders redaction results in text, JSON, and table
// formats, with optional ANSI highlighting of redacted markers.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/bimmerbailey/scour/internal/redact"
)

// Format represents an output format type.
type Format string

const (
	FormatText  Format = "text"
	FormatJSON  Format = "json"
	FormatTable Format = "table"
)

// ParseFormat converts a string to a Format, defaulting to text.
func ParseFormat(s string) Format {
	switch strings.ToLower(s) {
	case "json":
		return FormatJSON
	case "table":
		return FormatTable
	default:
		return FormatText
	}
}

// Result is the outcome of redacting one input line.
type Result struct {
	File     string           `json:"file,omitempty"`
	Line     int              `json:"line"`
	Original string           `json:"original,omitempty"`
	Redacted string           `json:"redacted"`
	Findings []redact.Finding `json:"findings,omitempty"`
}

// Writer handles writing formatted output.
type Writer struct {
	w      io.Writer
	format Format
	color  bool
	marker string
}

// New creates a new output Writer. The marker is used for highlight
// detection in comparative mode.
func New(w io.Writer, format Format, marker string) *Writer {
	return &Writer{
		w:      w,
		format: format,
		color:  shouldColorize(ColorAuto, w),
		marker: marker,
	}
}

// WriteResults outputs redaction results in the configured format.
func (wr *Writer) WriteResults(results []Result) error {
	switch wr.format {
	case FormatJSON:
		return wr.WriteJSON(results)
	case FormatTable:
		return wr.writeResultTable(results)
	default:
		for _, r := range results {
			if _, err := fmt.Fprintln(wr.w, r.Redacted); err != nil {
				return err
			}
		}
		return nil
	}
}

// WriteComparative outputs original/redacted pairs, highlighting marker
// runs when the destination is a terminal.
func (wr *Writer) WriteComparative(results []Result) error {
	if wr.format == FormatJSON {
		return wr.WriteJSON(results)
	}
	for _, r := range results {
		redacted := r.Redacted
		if wr.color {
			redacted = HighlightMarkers(redacted, wr.marker)
		}
		if _, err := fmt.Fprintf(wr.w, "Original:  %s\nRedacted:  %s\n\n", r.Original, redacted); err != nil {
			return err
		}
	}
	return nil
}

// WriteFindings outputs scan findings in the configured format.
func (wr *Writer) WriteFindings(results []Result) error {
	switch wr.format {
	case FormatJSON:
		return wr.WriteJSON(results)
	case FormatTable:
		return wr.writeFindingTable(results)
	default:
		for _, r := range results {
			for _, f := range r.Findings {
				loc := fmt.Sprintf("%d:%d-%d", r.Line, f.Start, f.End)
				if r.File != "" {
					loc = r.File + ":" + loc
				}
				if f.Rule == "entropy" {
					fmt.Fprintf(wr.w, "%s\t%s\t%q\tentropy=%.2f\n", loc, f.Rule, f.Text, f.Entropy)
				} else {
					fmt.Fprintf(wr.w, "%s\t%s\t%q\n", loc, f.Rule, f.Text)
				}
			}
		}
		return nil
	}
}

// WriteJSON outputs any value as indented JSON.
func (wr *Writer) WriteJSON(v interface{}) error {
	enc := json.NewEncoder(wr.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (wr *Writer) writeResultTable(results []Result) error {
	tw := tabwriter.NewWriter(wr.w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "LINE\tREDACTED")
	fmt.Fprintln(tw, "----\t--------")
	for _, r := range results {
		fmt.Fprintf(tw, "%d\t%s\n", r.Line, r.Redacted)
	}
	return tw.Flush()
}

func (wr *Writer) writeFindingTable(results []Result) error {
	tw := tabwriter.NewWriter(wr.w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "LINE\tRANGE\tRULE\tENTROPY\tTEXT")
	fmt.Fprintln(tw, "----\t-----\t----\t-------\t----")
	for _, r := range results {
		for _, f := range r.Findings {
			ent := "-"
			if f.Rule == "entropy" {
				ent = fmt.Sprintf("%.2f", f.Entropy)
			}
			fmt.Fprintf(tw, "%d\t%d-%d\t%s\t%s\t%s\n", r.Line, f.Start, f.End, f.Rule, ent, f.Text)
		}
	}
	return tw.Flush()
}

package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/bimmerbailey/scour/internal/redact"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"text", FormatText},
		{"json", FormatJSON},
		{"JSON", FormatJSON},
		{"table", FormatTable},
		{"", FormatText},
		{"bogus", FormatText},
	}

	for _, tt := range tests {
		if got := ParseFormat(tt.in); got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestWriter_WriteResults_Text(t *testing.T) {
	var buf bytes.Buffer
	w := New(&buf, FormatText, "*")

	err := w.WriteResults([]Result{
		{Line: 1, Redacted: "connection from *************"},
		{Line: 2, Redacted: "all quiet"},
	})
	if err != nil {
		t.Fatalf("WriteResults() error = %v", err)
	}

	want := "connection from *************\nall quiet\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestWriter_WriteResults_JSON(t *testing.T) {
	var buf bytes.Buffer
	w := New(&buf, FormatJSON, "*")

	in := []Result{{File: "app.log", Line: 3, Redacted: "x *"}}
	if err := w.WriteResults(in); err != nil {
		t.Fatalf("WriteResults() error = %v", err)
	}

	var out []Result
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, buf.String())
	}
	if len(out) != 1 {
		t.Fatalf("round-tripped %d results, want 1", len(out))
	}
	if out[0].File != in[0].File || out[0].Line != in[0].Line || out[0].Redacted != in[0].Redacted {
		t.Errorf("round-tripped = %+v, want %+v", out[0], in[0])
	}
}

func TestWriter_WriteResults_Table(t *testing.T) {
	var buf bytes.Buffer
	w := New(&buf, FormatTable, "*")

	err := w.WriteResults([]Result{{Line: 7, Redacted: "masked ****"}})
	if err != nil {
		t.Fatalf("WriteResults() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{"LINE", "REDACTED", "7", "masked ****"} {
		if !strings.Contains(out, want) {
			t.Errorf("table output missing %q:\n%s", want, out)
		}
	}
}

func TestWriter_WriteComparative(t *testing.T) {
	var buf bytes.Buffer
	w := New(&buf, FormatText, "*")

	err := w.WriteComparative([]Result{{
		Original: "key abc123def456",
		Redacted: "key ************",
	}})
	if err != nil {
		t.Fatalf("WriteComparative() error = %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "Original:  key abc123def456") {
		t.Errorf("missing original line:\n%s", out)
	}
	if !strings.Contains(out, "Redacted:  key ************") {
		t.Errorf("missing redacted line:\n%s", out)
	}
	// A buffer is not a terminal, so no escape codes appear.
	if strings.Contains(out, "\033[") {
		t.Errorf("unexpected ANSI codes in non-TTY output:\n%s", out)
	}
}

func TestWriter_WriteFindings_Text(t *testing.T) {
	var buf bytes.Buffer
	w := New(&buf, FormatText, "*")

	err := w.WriteFindings([]Result{{
		File: "app.log",
		Line: 12,
		Findings: []redact.Finding{
			{Start: 16, End: 29, Text: "192.168.1.100", Rule: "ip_address"},
			{Start: 33, End: 43, Text: "xae9kqz2vu", Rule: "entropy", Entropy: 3.32},
		},
	}})
	if err != nil {
		t.Fatalf("WriteFindings() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"app.log:12:16-29",
		"ip_address",
		`"192.168.1.100"`,
		"entropy=3.32",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("findings output missing %q:\n%s", want, out)
		}
	}
}

func TestWriter_WriteFindings_Table(t *testing.T) {
	var buf bytes.Buffer
	w := New(&buf, FormatTable, "*")

	err := w.WriteFindings([]Result{{
		Line: 1,
		Findings: []redact.Finding{
			{Start: 0, End: 5, Text: "ab12c", Rule: "entropy", Entropy: 2.32},
			{Start: 8, End: 20, Text: "4e5021d210f6", Rule: "container_id"},
		},
	}})
	if err != nil {
		t.Fatalf("WriteFindings() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{"RULE", "ENTROPY", "2.32", "container_id", "-"} {
		if !strings.Contains(out, want) {
			t.Errorf("table output missing %q:\n%s", want, out)
		}
	}
}

func TestHighlightMarkers(t *testing.T) {
	tests := []struct {
		name   string
		line   string
		marker string
		want   string
	}{
		{
			name:   "no markers",
			line:   "plain text",
			marker: "*",
			want:   "plain text",
		},
		{
			name:   "single run",
			line:   "key ****",
			marker: "*",
			want:   "key " + colorBold + colorRed + "****" + colorReset,
		},
		{
			name:   "two runs",
			line:   "**-**",
			marker: "*",
			want:   colorBold + colorRed + "**" + colorReset + "-" + colorBold + colorRed + "**" + colorReset,
		},
		{
			name:   "empty marker",
			line:   "text",
			marker: "",
			want:   "text",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HighlightMarkers(tt.line, tt.marker); got != tt.want {
				t.Errorf("HighlightMarkers() = %q, want %q", got, tt.want)
			}
		})
	}
}

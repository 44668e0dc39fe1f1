// Package window implements the sliding-window entropy scan: fixed-size
// windows stride across each token, hot windows merge into spans, and each
// merged span is re-validated on its full text before it is finalized.
package window

import (
	"github.com/bimmerbailey/scour/internal/config"
	"github.com/bimmerbailey/scour/internal/entropy"
	"github.com/bimmerbailey/scour/internal/tokenize"
)

// Span is a candidate redaction range in byte offsets, End exclusive.
type Span struct {
	Start int
	End   int
}

// Scanner runs windowed entropy scans against one engine and configuration.
// It holds no mutable state.
type Scanner struct {
	engine *entropy.Engine
	size   int
	stride int
	gap    int
}

// NewScanner builds a Scanner from a validated configuration.
func NewScanner(engine *entropy.Engine, rc *config.RedactionConfig) *Scanner {
	return &Scanner{
		engine: engine,
		size:   rc.WindowSize,
		stride: rc.WindowStride,
		gap:    rc.MergeGap,
	}
}

// Scan returns the high-entropy spans of text using the configured
// threshold and window size.
func (s *Scanner) Scan(text string) []Span {
	return s.ScanWith(text, s.engine.Threshold(), s.size, s.engine.MinLength())
}

// ScanWith is Scan with per-call overrides. Windows slide only inside
// alphanumeric tokens, so separators and marker runs are never scanned.
// Overlapping hot windows, and hot windows separated by at most the merge
// gap, fuse into one span; each fused span must then pass classification
// on its actual merged text, which keeps one narrow noisy window from
// condemning a structured region around it.
func (s *Scanner) ScanWith(text string, threshold float64, size, minLength int) []Span {
	if size <= 0 || len(text) < size {
		return nil
	}

	var spans []Span
	for _, token := range tokenize.Tokens(text) {
		spans = append(spans, s.scanToken(text, token, threshold, size, minLength)...)
	}
	return spans
}

func (s *Scanner) scanToken(text string, token tokenize.Segment, threshold float64, size, minLength int) []Span {
	if token.Len() < minLength || token.Len() < size {
		return nil
	}

	// Rune-aligned byte offsets within the token, so windows never split a
	// multi-byte character.
	offsets := runeOffsets(token.Text)
	n := len(offsets) - 1 // rune count
	if n < size {
		return nil
	}

	var hot []Span
	for i := 0; i+size <= n; i += s.stride {
		win := token.Text[offsets[i]:offsets[i+size]]
		if s.engine.IsHighEntropyWith(win, threshold, minLength) {
			hot = append(hot, Span{
				Start: token.Start + offsets[i],
				End:   token.Start + offsets[i+size],
			})
		}
	}

	merged := Merge(hot, s.gap)

	// Re-validate each merged span on its full text.
	final := merged[:0]
	for _, sp := range merged {
		if s.engine.IsHighEntropyWith(text[sp.Start:sp.End], threshold, minLength) {
			final = append(final, sp)
		}
	}
	return final
}

// Merge fuses spans that overlap or sit within gap bytes of each other.
// Input spans must be sorted by Start, which scan order guarantees.
func Merge(spans []Span, gap int) []Span {
	if len(spans) == 0 {
		return nil
	}

	merged := []Span{spans[0]}
	for _, sp := range spans[1:] {
		last := &merged[len(merged)-1]
		if sp.Start <= last.End+gap {
			if sp.End > last.End {
				last.End = sp.End
			}
			continue
		}
		merged = append(merged, sp)
	}
	return merged
}

// runeOffsets returns the byte offset of every rune in s plus a trailing
// entry for len(s).
func runeOffsets(s string) []int {
	offsets := make([]int, 0, len(s)+1)
	for i := range s {
		offsets = append(offsets, i)
	}
	return append(offsets, len(s))
}

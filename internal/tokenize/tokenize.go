// Package tokenize splits text into alternating token and separator
// segments with byte offsets, so a redacted copy can be reassembled
// without disturbing any unredacted character.
package tokenize

import (
	"iter"
	"unicode"
)

// Segment is a contiguous run of either token characters (letters and
// digits) or separator characters. Start and End are byte offsets into the
// source string; End is exclusive.
type Segment struct {
	Text  string
	Start int
	End   int
	Sep   bool
}

// Len returns the segment length in bytes.
func (s Segment) Len() int { return s.End - s.Start }

// Segments returns a lazy sequence over the token and separator runs of
// text, in order. The sequence is restartable; iterating it twice yields
// identical segments. Concatenating every segment reproduces text exactly.
func Segments(text string) iter.Seq[Segment] {
	return func(yield func(Segment) bool) {
		start := 0
		inToken := false
		started := false

		for i, r := range text {
			tok := isTokenRune(r)
			if !started {
				started = true
				inToken = tok
				continue
			}
			if tok == inToken {
				continue
			}
			if !yield(Segment{Text: text[start:i], Start: start, End: i, Sep: !inToken}) {
				return
			}
			start = i
			inToken = tok
		}

		if started {
			yield(Segment{Text: text[start:], Start: start, End: len(text), Sep: !inToken})
		}
	}
}

// Tokens collects only the token (non-separator) segments of text.
func Tokens(text string) []Segment {
	var tokens []Segment
	for seg := range Segments(text) {
		if !seg.Sep {
			tokens = append(tokens, seg)
		}
	}
	return tokens
}

// isTokenRune reports whether r belongs inside a token. Tokens are
// contiguous alphanumeric runs; everything else, including the redaction
// marker, separates them.
func isTokenRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

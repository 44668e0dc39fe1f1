// Package pattern recognizes structured identifier shapes (timestamps, IP
// addresses, AWS hostnames and paths, container names) and substitutes
// marker runs for them before any entropy scoring happens.
//
// All matching is purely syntactic. Replacements preserve string length
// wherever the matched text is ASCII, so downstream offsets stay stable,
// and no rule can ever re-match an already-substituted marker run.
package pattern

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/bimmerbailey/scour/internal/config"
)

// Category identifies a structural pattern family.
type Category string

const (
	CategoryTimestamp   Category = "timestamp"
	CategoryIPAddress   Category = "ip_address"
	CategoryAWSHostname Category = "aws_hostname"
	CategoryAWSPath     Category = "aws_path"
	CategoryContainerID Category = "container_id"
	CategoryFilePath    Category = "file_path"
	CategoryGeneric     Category = "generic"
)

// Span is a replaced range in the working text. Offsets are byte positions
// in the text returned alongside the span.
type Span struct {
	Start    int
	End      int
	Category Category
}

// Overlaps reports whether two spans share any byte.
func (s Span) Overlaps(o Span) bool {
	return s.Start < o.End && o.Start < s.End
}

// Rule matches one structural category and substitutes markers for it.
// Implementations must be safe for concurrent use.
type Rule interface {
	Category() Category

	// apply rewrites text, skipping ranges that overlap spans, and returns
	// the new text plus the combined span list in new-text coordinates.
	apply(text string, marker rune, spans []Span) (string, []Span)
}

// Matcher applies an ordered list of rules. Earlier rules consume text;
// later rules never re-match what an earlier rule replaced.
type Matcher struct {
	rules []Rule
}

// New builds a Matcher from the configured pattern order plus any custom
// regular expressions (applied last, as the generic category).
func New(rc *config.RedactionConfig) (*Matcher, error) {
	rules := make([]Rule, 0, len(rc.Patterns)+1)
	for _, name := range rc.Patterns {
		rule, ok := builtinRules[name]
		if !ok {
			return nil, fmt.Errorf("unknown pattern %q", name)
		}
		rules = append(rules, rule)
	}

	if len(rc.CustomPatterns) > 0 {
		res := make([]*regexp.Regexp, 0, len(rc.CustomPatterns))
		for _, expr := range rc.CustomPatterns {
			re, err := regexp.Compile(expr)
			if err != nil {
				return nil, fmt.Errorf("invalid custom pattern %q: %w", expr, err)
			}
			res = append(res, re)
		}
		rules = append(rules, &regexpRule{category: CategoryGeneric, regexps: res})
	}

	return &Matcher{rules: rules}, nil
}

// Apply runs every rule in order and returns the transformed text together
// with the ordered, non-overlapping list of replaced spans.
func (m *Matcher) Apply(text string, marker rune) (string, []Span) {
	var spans []Span
	for _, rule := range m.rules {
		text, spans = rule.apply(text, marker, spans)
	}
	sort.Slice(spans, func(i, j int) bool { return spans[i].Start < spans[j].Start })
	return text, spans
}

// regexpRule redacts either the whole match or selected capture groups of
// one or more regular expressions. Leaving groups empty redacts the full
// match; naming groups implements selective redaction, where unnamed
// groups (domain suffixes, structural labels) survive verbatim.
type regexpRule struct {
	category Category
	regexps  []*regexp.Regexp
	groups   []int
}

func (r *regexpRule) Category() Category { return r.category }

func (r *regexpRule) apply(text string, marker rune, spans []Span) (string, []Span) {
	for _, re := range r.regexps {
		var ranges [][2]int
		for _, m := range re.FindAllStringSubmatchIndex(text, -1) {
			if len(r.groups) == 0 {
				ranges = append(ranges, [2]int{m[0], m[1]})
				continue
			}
			for _, g := range r.groups {
				lo, hi := m[2*g], m[2*g+1]
				if lo >= 0 && hi > lo {
					ranges = append(ranges, [2]int{lo, hi})
				}
			}
		}
		text, spans = replaceRanges(text, ranges, marker, spans, r.category)
	}
	return text, spans
}

// replaceRanges substitutes a marker run for each range, skipping ranges
// that overlap an existing span, and keeps every span offset consistent
// with the returned text even when a replacement changes the byte length
// (possible only for non-ASCII matches).
func replaceRanges(text string, ranges [][2]int, marker rune, spans []Span, cat Category) (string, []Span) {
	if len(ranges) == 0 {
		return text, spans
	}
	sort.Slice(ranges, func(i, j int) bool { return ranges[i][0] < ranges[j][0] })

	type edit struct {
		lo, hi, newLen int
	}

	var b strings.Builder
	var edits []edit
	out := make([]Span, 0, len(spans)+len(ranges))
	prev := 0
	shift := 0

	for _, rng := range ranges {
		lo, hi := rng[0], rng[1]
		if lo < prev {
			continue // overlaps the previous replacement in this batch
		}
		if overlapsAny(Span{Start: lo, End: hi}, spans) {
			continue
		}

		b.WriteString(text[prev:lo])
		run := strings.Repeat(string(marker), len([]rune(text[lo:hi])))
		b.WriteString(run)

		out = append(out, Span{Start: lo + shift, End: lo + shift + len(run), Category: cat})
		edits = append(edits, edit{lo: lo, hi: hi, newLen: len(run)})
		shift += len(run) - (hi - lo)
		prev = hi
	}
	b.WriteString(text[prev:])

	// Carry existing spans over, shifted where replacements before them
	// changed the byte length. Existing spans never overlap applied edits,
	// so each edit falls entirely before or after a span.
	for _, s := range spans {
		d := 0
		for _, e := range edits {
			if e.hi <= s.Start {
				d += e.newLen - (e.hi - e.lo)
			}
		}
		out = append(out, Span{Start: s.Start + d, End: s.End + d, Category: s.Category})
	}

	return b.String(), out
}

func overlapsAny(s Span, spans []Span) bool {
	for _, o := range spans {
		if s.Overlaps(o) {
			return true
		}
	}
	return false
}

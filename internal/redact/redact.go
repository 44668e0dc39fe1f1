// Package redact composes pattern matching, tokenization, and entropy
// scanning into the redaction pipeline. A Redactor is built once from a
// validated configuration; every call is a pure function of its input and
// options, so one instance can serve concurrent callers.
package redact

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/bimmerbailey/scour/internal/config"
	"github.com/bimmerbailey/scour/internal/entropy"
	"github.com/bimmerbailey/scour/internal/pattern"
	"github.com/bimmerbailey/scour/internal/tokenize"
	"github.com/bimmerbailey/scour/internal/window"
)

// Mode selects the entropy strategy. Pattern-based structural redaction
// always runs first regardless of mode.
type Mode int

const (
	// ModeToken classifies whole tokens. This is the default and the
	// recommended strategy.
	ModeToken Mode = iota

	// ModeWindow slides a fixed-size window across tokens and merges hot
	// regions. More aggressive; can redact parts of long compound tokens.
	ModeWindow
)

// String returns the flag spelling of the mode.
func (m Mode) String() string {
	switch m {
	case ModeWindow:
		return "window"
	default:
		return "token"
	}
}

// ParseMode converts a flag value to a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "token":
		return ModeToken, nil
	case "window", "sliding":
		return ModeWindow, nil
	default:
		return ModeToken, fmt.Errorf("invalid mode %q (want token or window)", s)
	}
}

// Finding describes one redacted range, for reporting.
type Finding struct {
	Start   int     `json:"start"`
	End     int     `json:"end"`
	Text    string  `json:"text"`
	Rule    string  `json:"rule"`
	Entropy float64 `json:"entropy,omitempty"`
}

// Redactor is the redaction pipeline bound to one configuration.
type Redactor struct {
	cfg        config.RedactionConfig
	engine     *entropy.Engine
	matcher    *pattern.Matcher
	scanner    *window.Scanner
	condenseRE *regexp.Regexp
	mode       Mode
}

// New builds a Redactor. The configuration must already have passed
// Validate; an unparseable pattern here still surfaces as an error rather
// than a panic.
func New(cfg *config.Config) (*Redactor, error) {
	rc := cfg.Redaction

	matcher, err := pattern.New(&rc)
	if err != nil {
		return nil, fmt.Errorf("failed to build pattern matcher: %w", err)
	}

	mode, err := ParseMode(rc.Mode)
	if err != nil {
		return nil, err
	}

	engine := entropy.NewEngine(&rc)
	return &Redactor{
		cfg:        rc,
		engine:     engine,
		matcher:    matcher,
		scanner:    window.NewScanner(engine, &rc),
		condenseRE: regexp.MustCompile(regexp.QuoteMeta(rc.Marker) + `+`),
		mode:       mode,
	}, nil
}

// Engine exposes the entropy engine for callers that score strings
// directly.
func (r *Redactor) Engine() *entropy.Engine { return r.engine }

// Mode returns the configured default mode.
func (r *Redactor) Mode() Mode { return r.mode }

// Option tunes a single call without touching the shared configuration.
type Option func(*callOptions)

type callOptions struct {
	mode       Mode
	threshold  float64
	minLength  int
	windowSize int
	condense   bool
}

// WithMode overrides the entropy strategy for this call.
func WithMode(m Mode) Option { return func(o *callOptions) { o.mode = m } }

// WithThreshold overrides the entropy threshold for this call.
func WithThreshold(t float64) Option { return func(o *callOptions) { o.threshold = t } }

// WithMinLength overrides the minimum segment length for this call.
func WithMinLength(n int) Option { return func(o *callOptions) { o.minLength = n } }

// WithWindowSize overrides the window size for this call.
func WithWindowSize(n int) Option { return func(o *callOptions) { o.windowSize = n } }

// WithCondense overrides marker condensation for this call.
func WithCondense(on bool) Option { return func(o *callOptions) { o.condense = on } }

func (r *Redactor) options(opts []Option) callOptions {
	o := callOptions{
		mode:       r.mode,
		threshold:  r.cfg.EntropyThreshold,
		minLength:  r.cfg.MinSegmentLength,
		windowSize: r.cfg.WindowSize,
		condense:   r.cfg.Condense,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Redact returns a sanitized copy of text. Structural patterns run first;
// the selected entropy strategy then covers whatever they left; marker
// runs are optionally condensed. Empty or too-short input passes through
// unchanged. Redact never fails: an anomalous segment is left as is rather
// than aborting the call.
func (r *Redactor) Redact(text string, opts ...Option) string {
	o := r.options(opts)

	if len(text) < o.minLength {
		return text
	}

	working, patSpans := r.matcher.Apply(text, r.cfg.MarkerRune())
	entSpans := r.entropySpans(working, patSpans, o)
	out := r.assemble(working, entSpans)

	if o.condense {
		out = r.condenseRE.ReplaceAllString(out, r.cfg.Marker)
	}
	return out
}

// Scan classifies text without rewriting it and reports every range that
// would be redacted, with the rule that claimed it.
func (r *Redactor) Scan(text string, opts ...Option) []Finding {
	o := r.options(opts)

	if len(text) < o.minLength {
		return nil
	}

	working, patSpans := r.matcher.Apply(text, r.cfg.MarkerRune())

	findings := make([]Finding, 0, len(patSpans))
	for _, sp := range patSpans {
		f := Finding{Start: sp.Start, End: sp.End, Rule: string(sp.Category)}
		// Pattern replacements preserve length for ASCII input, so the
		// original text sits at the same offsets.
		if sp.End <= len(text) && len(working) == len(text) {
			f.Text = text[sp.Start:sp.End]
		} else {
			f.Text = working[sp.Start:sp.End]
		}
		findings = append(findings, f)
	}

	for _, sp := range r.entropySpans(working, patSpans, o) {
		findings = append(findings, Finding{
			Start:   sp.Start,
			End:     sp.End,
			Text:    working[sp.Start:sp.End],
			Rule:    "entropy",
			Entropy: entropy.Shannon(working[sp.Start:sp.End]),
		})
	}

	sort.Slice(findings, func(i, j int) bool { return findings[i].Start < findings[j].Start })
	return findings
}

// entropySpans runs the selected strategy over the non-pattern ranges of
// the working text. Pattern spans win any overlap.
func (r *Redactor) entropySpans(working string, patSpans []pattern.Span, o callOptions) []window.Span {
	var spans []window.Span

	switch o.mode {
	case ModeWindow:
		for _, sp := range r.scanner.ScanWith(working, o.threshold, o.windowSize, o.minLength) {
			if !overlapsPattern(sp.Start, sp.End, patSpans) {
				spans = append(spans, sp)
			}
		}
	default:
		for _, token := range tokenize.Tokens(working) {
			if overlapsPattern(token.Start, token.End, patSpans) {
				continue
			}
			if r.engine.IsHighEntropyWith(token.Text, o.threshold, o.minLength) {
				spans = append(spans, window.Span{Start: token.Start, End: token.End})
			}
		}
	}
	return spans
}

// assemble replaces each span with a marker run of equal rune count.
// Spans arrive ordered and non-overlapping.
func (r *Redactor) assemble(text string, spans []window.Span) string {
	if len(spans) == 0 {
		return text
	}

	var b strings.Builder
	b.Grow(len(text))
	prev := 0
	for _, sp := range spans {
		b.WriteString(text[prev:sp.Start])
		b.WriteString(strings.Repeat(r.cfg.Marker, len([]rune(text[sp.Start:sp.End]))))
		prev = sp.End
	}
	b.WriteString(text[prev:])
	return b.String()
}

func overlapsPattern(start, end int, spans []pattern.Span) bool {
	for _, sp := range spans {
		if start < sp.End && sp.Start < end {
			return true
		}
	}
	return false
}

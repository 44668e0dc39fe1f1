// Package config provides configuration types and helpers for scour.
package config

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the full redaction configuration. It is populated once at
// startup and treated as read-only afterwards; per-call tuning happens via
// redact options, never by mutating this struct.
type Config struct {
	Format    string          `mapstructure:"format" yaml:"format"`
	Verbose   bool            `mapstructure:"verbose" yaml:"verbose"`
	Redaction RedactionConfig `mapstructure:"redaction" yaml:"redaction"`
}

// RedactionConfig holds the tunables for entropy scoring, pattern matching,
// and marker assembly.
type RedactionConfig struct {
	// EntropyThreshold is the Shannon entropy, in bits per character, at or
	// above which a segment becomes a redaction candidate.
	EntropyThreshold float64 `mapstructure:"entropy_threshold" yaml:"entropy_threshold"`

	// WordPatternBonus is added to the threshold for tokens that look like
	// real words (known prefix/suffix, healthy vowel ratio), making them
	// harder to redact by accident.
	WordPatternBonus float64 `mapstructure:"word_pattern_bonus" yaml:"word_pattern_bonus"`

	// MinSegmentLength is the shortest segment ever considered for
	// redaction; anything shorter passes through regardless of entropy.
	MinSegmentLength int `mapstructure:"min_segment_length" yaml:"min_segment_length"`

	// WindowSize is the width, in characters, of the sliding-window scan.
	WindowSize int `mapstructure:"window_size" yaml:"window_size"`

	// WindowStride is how far the window advances per step. 1 catches
	// everything; larger values trade recall for speed.
	WindowStride int `mapstructure:"window_stride" yaml:"window_stride"`

	// MergeGap is the maximum number of characters between two hot windows
	// that still merge into a single span.
	MergeGap int `mapstructure:"merge_gap" yaml:"merge_gap"`

	// Marker is the single rune substituted for redacted characters.
	Marker string `mapstructure:"marker" yaml:"marker"`

	// Condense collapses each marker run (and runs separated only by
	// delimiters) to a single marker in the output.
	Condense bool `mapstructure:"condense" yaml:"condense"`

	// Mode selects the entropy strategy: "token" or "window".
	Mode string `mapstructure:"mode" yaml:"mode"`

	// PreservedWords are never redacted, whatever they score.
	// Matching is case-insensitive.
	PreservedWords []string `mapstructure:"preserved_words" yaml:"preserved_words"`

	// PreservedPrefixes and PreservedSuffixes feed the word-shape check.
	PreservedPrefixes []string `mapstructure:"preserved_prefixes" yaml:"preserved_prefixes"`
	PreservedSuffixes []string `mapstructure:"preserved_suffixes" yaml:"preserved_suffixes"`

	// PreservedYears is the inclusive range of four-digit values exempted
	// from numeric redaction.
	PreservedYears YearRange `mapstructure:"preserved_years" yaml:"preserved_years"`

	// Patterns names the built-in structural patterns to apply, in order.
	// Earlier patterns consume text; later ones never re-match marker runs.
	Patterns []string `mapstructure:"patterns" yaml:"patterns"`

	// CustomPatterns are raw regular expressions applied after the built-in
	// patterns; every match is fully replaced with markers.
	CustomPatterns []string `mapstructure:"custom_patterns" yaml:"custom_patterns"`
}

// YearRange is an inclusive range of four-digit years.
type YearRange struct {
	Min int `mapstructure:"min" yaml:"min"`
	Max int `mapstructure:"max" yaml:"max"`
}

// Contains reports whether y falls inside the range.
func (r YearRange) Contains(y int) bool {
	return y >= r.Min && y <= r.Max
}

// KnownPatterns is the closed set of built-in pattern category names, in
// their recommended application order.
var KnownPatterns = []string{
	"timestamp",
	"ip_address",
	"aws_hostname",
	"aws_path",
	"container_id",
	"file_path",
}

// Default returns the built-in configuration. It is valid on its own; a
// config file only needs to list the fields it wants to change.
func Default() *Config {
	return &Config{
		Format: "text",
		Redaction: RedactionConfig{
			EntropyThreshold:  2.5,
			WordPatternBonus:  0.5,
			MinSegmentLength:  4,
			WindowSize:        6,
			WindowStride:      1,
			MergeGap:          1,
			Marker:            "*",
			Mode:              "token",
			PreservedWords:    DefaultPreservedWords(),
			PreservedPrefixes: DefaultPreservedPrefixes(),
			PreservedSuffixes: DefaultPreservedSuffixes(),
			PreservedYears:    YearRange{Min: 1900, Max: 2100},
			Patterns:          append([]string(nil), KnownPatterns...),
		},
	}
}

// SetDefaults registers the default configuration values on a viper
// instance so that a partial config file overlays cleanly.
func SetDefaults(v *viper.Viper) {
	def := Default()
	v.SetDefault("format", def.Format)
	v.SetDefault("verbose", def.Verbose)
	v.SetDefault("redaction.entropy_threshold", def.Redaction.EntropyThreshold)
	v.SetDefault("redaction.word_pattern_bonus", def.Redaction.WordPatternBonus)
	v.SetDefault("redaction.min_segment_length", def.Redaction.MinSegmentLength)
	v.SetDefault("redaction.window_size", def.Redaction.WindowSize)
	v.SetDefault("redaction.window_stride", def.Redaction.WindowStride)
	v.SetDefault("redaction.merge_gap", def.Redaction.MergeGap)
	v.SetDefault("redaction.marker", def.Redaction.Marker)
	v.SetDefault("redaction.condense", def.Redaction.Condense)
	v.SetDefault("redaction.mode", def.Redaction.Mode)
	v.SetDefault("redaction.preserved_words", def.Redaction.PreservedWords)
	v.SetDefault("redaction.preserved_prefixes", def.Redaction.PreservedPrefixes)
	v.SetDefault("redaction.preserved_suffixes", def.Redaction.PreservedSuffixes)
	v.SetDefault("redaction.preserved_years.min", def.Redaction.PreservedYears.Min)
	v.SetDefault("redaction.preserved_years.max", def.Redaction.PreservedYears.Max)
	v.SetDefault("redaction.patterns", def.Redaction.Patterns)
	v.SetDefault("redaction.custom_patterns", def.Redaction.CustomPatterns)
}

// FromViper unmarshals and validates the configuration held by v.
// A validation failure here is fatal: the caller should surface it once
// and exit rather than retry.
func FromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that every required field is populated and coherent.
func (c *Config) Validate() error {
	r := &c.Redaction

	if r.EntropyThreshold <= 0 {
		return fmt.Errorf("redaction.entropy_threshold must be positive, got %v", r.EntropyThreshold)
	}
	if r.WordPatternBonus < 0 {
		return fmt.Errorf("redaction.word_pattern_bonus must not be negative, got %v", r.WordPatternBonus)
	}
	if r.MinSegmentLength <= 0 {
		return fmt.Errorf("redaction.min_segment_length must be positive, got %d", r.MinSegmentLength)
	}
	if r.WindowSize <= 0 {
		return fmt.Errorf("redaction.window_size must be positive, got %d", r.WindowSize)
	}
	if r.WindowStride <= 0 {
		return fmt.Errorf("redaction.window_stride must be positive, got %d", r.WindowStride)
	}
	if r.MergeGap < 0 {
		return fmt.Errorf("redaction.merge_gap must not be negative, got %d", r.MergeGap)
	}
	if n := len([]rune(r.Marker)); n != 1 {
		return fmt.Errorf("redaction.marker must be a single character, got %q", r.Marker)
	}
	if r.Mode != "token" && r.Mode != "window" {
		return fmt.Errorf("redaction.mode must be \"token\" or \"window\", got %q", r.Mode)
	}
	if r.PreservedYears.Min > r.PreservedYears.Max {
		return fmt.Errorf("redaction.preserved_years: min %d exceeds max %d",
			r.PreservedYears.Min, r.PreservedYears.Max)
	}

	known := make(map[string]struct{}, len(KnownPatterns))
	for _, name := range KnownPatterns {
		known[name] = struct{}{}
	}
	for _, name := range r.Patterns {
		if _, ok := known[name]; !ok {
			return fmt.Errorf("redaction.patterns: unknown pattern %q (known: %s)",
				name, strings.Join(KnownPatterns, ", "))
		}
	}

	for _, expr := range r.CustomPatterns {
		if _, err := regexp.Compile(expr); err != nil {
			return fmt.Errorf("redaction.custom_patterns: invalid regexp %q: %w", expr, err)
		}
	}

	return nil
}

// MarkerRune returns the configured marker as a rune.
// Validate guarantees there is exactly one.
func (r *RedactionConfig) MarkerRune() rune {
	for _, ru := range r.Marker {
		return ru
	}
	return '*'
}

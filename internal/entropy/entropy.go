// Package entropy implements Shannon entropy scoring and the segment
// classification rules that decide whether a token looks like noise
// (keys, hashes, random identifiers) or readable content.
package entropy

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/bimmerbailey/scour/internal/config"
)

// Shannon returns the Shannon entropy of s in bits per character, computed
// over the empirical character-frequency distribution of the lowercased
// string. The empty string and single-repeated-character strings score 0.
func Shannon(s string) float64 {
	if s == "" {
		return 0
	}

	counts := make(map[rune]int)
	length := 0
	for _, r := range strings.ToLower(s) {
		counts[r]++
		length++
	}

	var entropy float64
	for _, count := range counts {
		p := float64(count) / float64(length)
		entropy -= p * math.Log2(p)
	}
	return entropy
}

// Engine classifies segments against a loaded configuration. It holds no
// mutable state; one instance can be shared across goroutines.
type Engine struct {
	threshold float64
	bonus     float64
	minLength int
	years     config.YearRange
	words     map[string]struct{}
	prefixes  []string
	suffixes  []string
}

// NewEngine builds an Engine from the redaction configuration.
// The configuration must already be validated.
func NewEngine(rc *config.RedactionConfig) *Engine {
	words := make(map[string]struct{}, len(rc.PreservedWords))
	for _, w := range rc.PreservedWords {
		words[strings.ToLower(w)] = struct{}{}
	}

	return &Engine{
		threshold: rc.EntropyThreshold,
		bonus:     rc.WordPatternBonus,
		minLength: rc.MinSegmentLength,
		years:     rc.PreservedYears,
		words:     words,
		prefixes:  rc.PreservedPrefixes,
		suffixes:  rc.PreservedSuffixes,
	}
}

// Threshold returns the configured entropy threshold.
func (e *Engine) Threshold() float64 { return e.threshold }

// MinLength returns the configured minimum segment length.
func (e *Engine) MinLength() int { return e.minLength }

// IsHighEntropy reports whether segment should be redacted, using the
// engine's configured threshold and minimum length.
func (e *Engine) IsHighEntropy(segment string) bool {
	return e.IsHighEntropyWith(segment, e.threshold, e.minLength)
}

// IsHighEntropyWith is IsHighEntropy with per-call overrides. The rules
// apply in a fixed order: segments shorter than minLength are never
// redacted, explicit preservation (word list, years) overrides everything,
// structural always-redact shapes (UUIDs, hex runs, long numeric IDs,
// epoch timestamps, base64 tails) override the statistical score, and only
// then is the adjusted entropy compared against the threshold.
func (e *Engine) IsHighEntropyWith(segment string, threshold float64, minLength int) bool {
	if len(segment) < minLength {
		return false
	}

	// Undecodable input is treated as already opaque and passed through.
	if !utf8.ValidString(segment) {
		return false
	}

	if e.IsPreserved(segment) {
		return false
	}

	if looksAlwaysRandom(segment, e.years) {
		return true
	}

	// Word-shaped tokens need to clear a higher bar.
	if e.looksWordShaped(segment) {
		threshold += e.bonus
	}

	return adjustedEntropy(segment) >= threshold
}

// IsPreserved reports whether segment is explicitly exempt from redaction:
// a preserved word (case-insensitive) or a four-digit year in the
// configured range.
func (e *Engine) IsPreserved(segment string) bool {
	if _, ok := e.words[strings.ToLower(segment)]; ok {
		return true
	}
	return isPreservedYear(segment, e.years)
}

func isPreservedYear(segment string, years config.YearRange) bool {
	trimmed := strings.TrimFunc(segment, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	if len(trimmed) != 4 {
		return false
	}
	y, err := strconv.Atoi(trimmed)
	if err != nil {
		return false
	}
	return years.Contains(y)
}

// adjustedEntropy boosts the raw score for shapes typical of machine
// identifiers: mixed case, letter/digit mixes, and mostly-numeric runs.
func adjustedEntropy(segment string) float64 {
	score := Shannon(segment)

	var upper, lower, digits, letters int
	total := 0
	for _, r := range segment {
		total++
		switch {
		case unicode.IsUpper(r):
			upper++
			letters++
		case unicode.IsLower(r):
			lower++
			letters++
		case unicode.IsDigit(r):
			digits++
		}
	}

	if upper > 0 && lower > 0 {
		score += 0.3
	}
	if digits > 0 && letters > 0 {
		score += 0.4
	}
	if total > 0 && float64(digits)/float64(total) > 0.6 {
		score += 0.2
	}
	return score
}

var (
	uuidShape = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)
	hexShape  = regexp.MustCompile(`^[0-9a-fA-F]+$`)
	b64Shape  = regexp.MustCompile(`^[A-Za-z0-9+/]+=*$`)
)

// English words that happen to be valid hex.
var hexWords = map[string]struct{}{
	"bead": {}, "beef": {}, "cafe": {}, "dead": {}, "deaf": {},
	"deed": {}, "face": {}, "fade": {}, "feed": {},
}

// Ports and similar small values that look like IDs but are not.
var commonNumbers = map[int]struct{}{
	3000: {}, 3306: {}, 5000: {}, 5432: {}, 8080: {}, 8443: {}, 9000: {},
}

// looksAlwaysRandom recognizes character shapes that warrant redaction no
// matter what the entropy score says: UUIDs, hex runs, long numeric IDs,
// epoch timestamps, base64 tails, and vowel-free alphanumeric jumbles.
func looksAlwaysRandom(text string, years config.YearRange) bool {
	if uuidShape.MatchString(text) {
		return true
	}

	isNumeric := isAllDigits(text)

	if len(text) >= 4 && hexShape.MatchString(text) {
		if isNumeric {
			n, _ := strconv.Atoi(text)
			if years.Contains(n) || (n >= 1 && n <= 1000) {
				return false
			}
			if _, ok := commonNumbers[n]; ok {
				return false
			}
		}
		if len(text) >= 6 || (containsDigit(text) && containsLetter(text)) {
			if _, ok := hexWords[strings.ToLower(text)]; !ok {
				return true
			}
		}
	}

	if isNumeric {
		// Epoch timestamps: seconds (10 digits) or milliseconds (13 digits).
		if len(text) == 10 || len(text) == 13 {
			return true
		}
		if len(text) >= 8 {
			return true
		}
		if len(text) >= 6 {
			n, _ := strconv.Atoi(text)
			if !years.Contains(n) && n > 100 {
				return true
			}
		}
	}

	// Mixed alphanumerics with no interior vowels rarely spell anything.
	if len(text) >= 6 && containsDigit(text) && containsLetter(text) &&
		!hasInteriorVowel(text) {
		return true
	}

	if len(text) >= 8 && strings.HasSuffix(text, "=") && b64Shape.MatchString(text) {
		return true
	}

	return false
}

// looksWordShaped reports whether text resembles a real word: it carries a
// known prefix or suffix, or its vowel ratio sits in the typical 20-50%
// band for English.
func (e *Engine) looksWordShaped(text string) bool {
	lower := strings.ToLower(text)

	for _, prefix := range e.prefixes {
		if strings.HasPrefix(lower, prefix) && len(text) > len(prefix)+2 {
			return true
		}
	}
	for _, suffix := range e.suffixes {
		if strings.HasSuffix(lower, suffix) && len(text) > len(suffix)+2 {
			return true
		}
	}

	vowels := 0
	total := 0
	for _, r := range lower {
		total++
		if strings.ContainsRune("aeiou", r) {
			vowels++
		}
	}
	if total == 0 {
		return false
	}
	ratio := float64(vowels) / float64(total)
	return ratio >= 0.2 && ratio <= 0.5
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func containsDigit(s string) bool {
	return strings.ContainsFunc(s, unicode.IsDigit)
}

func containsLetter(s string) bool {
	return strings.ContainsFunc(s, unicode.IsLetter)
}

func hasInteriorVowel(s string) bool {
	runes := []rune(s)
	if len(runes) <= 2 {
		return false
	}
	for _, r := range runes[1 : len(runes)-1] {
		if strings.ContainsRune("aeiouAEIOU", r) {
			return true
		}
	}
	return false
}

package config

import (
	"strings"
	"testing"

	"github.com/spf13/viper"
)

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() error = %v", err)
	}

	if cfg.Redaction.Mode != "token" {
		t.Errorf("default mode = %q, want token", cfg.Redaction.Mode)
	}
	if cfg.Redaction.Marker != "*" {
		t.Errorf("default marker = %q, want *", cfg.Redaction.Marker)
	}
	if len(cfg.Redaction.PreservedWords) == 0 {
		t.Error("default preserved words are empty")
	}
	if len(cfg.Redaction.Patterns) != len(KnownPatterns) {
		t.Errorf("default patterns = %v, want all of %v", cfg.Redaction.Patterns, KnownPatterns)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid default",
			mutate: func(c *Config) {},
		},
		{
			name:    "zero threshold",
			mutate:  func(c *Config) { c.Redaction.EntropyThreshold = 0 },
			wantErr: "entropy_threshold",
		},
		{
			name:    "negative bonus",
			mutate:  func(c *Config) { c.Redaction.WordPatternBonus = -1 },
			wantErr: "word_pattern_bonus",
		},
		{
			name:    "zero min length",
			mutate:  func(c *Config) { c.Redaction.MinSegmentLength = 0 },
			wantErr: "min_segment_length",
		},
		{
			name:    "zero window size",
			mutate:  func(c *Config) { c.Redaction.WindowSize = 0 },
			wantErr: "window_size",
		},
		{
			name:    "zero stride",
			mutate:  func(c *Config) { c.Redaction.WindowStride = 0 },
			wantErr: "window_stride",
		},
		{
			name:    "negative merge gap",
			mutate:  func(c *Config) { c.Redaction.MergeGap = -1 },
			wantErr: "merge_gap",
		},
		{
			name:    "empty marker",
			mutate:  func(c *Config) { c.Redaction.Marker = "" },
			wantErr: "marker",
		},
		{
			name:    "multi-rune marker",
			mutate:  func(c *Config) { c.Redaction.Marker = "**" },
			wantErr: "marker",
		},
		{
			name:    "bad mode",
			mutate:  func(c *Config) { c.Redaction.Mode = "aggressive" },
			wantErr: "mode",
		},
		{
			name:    "inverted year range",
			mutate:  func(c *Config) { c.Redaction.PreservedYears = YearRange{Min: 2100, Max: 1900} },
			wantErr: "preserved_years",
		},
		{
			name:    "unknown pattern",
			mutate:  func(c *Config) { c.Redaction.Patterns = []string{"nonsense"} },
			wantErr: "unknown pattern",
		},
		{
			name:    "invalid custom regexp",
			mutate:  func(c *Config) { c.Redaction.CustomPatterns = []string{"[unclosed"} },
			wantErr: "custom_patterns",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Validate() error = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %q, want it to mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestFromViper_Defaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)

	cfg, err := FromViper(v)
	if err != nil {
		t.Fatalf("FromViper() error = %v", err)
	}

	def := Default()
	if cfg.Redaction.EntropyThreshold != def.Redaction.EntropyThreshold {
		t.Errorf("threshold = %v, want %v", cfg.Redaction.EntropyThreshold, def.Redaction.EntropyThreshold)
	}
	if cfg.Redaction.PreservedYears != def.Redaction.PreservedYears {
		t.Errorf("years = %+v, want %+v", cfg.Redaction.PreservedYears, def.Redaction.PreservedYears)
	}
	if len(cfg.Redaction.PreservedWords) != len(def.Redaction.PreservedWords) {
		t.Errorf("preserved words = %d entries, want %d",
			len(cfg.Redaction.PreservedWords), len(def.Redaction.PreservedWords))
	}
}

func TestFromViper_Overrides(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	v.Set("redaction.entropy_threshold", 3.2)
	v.Set("redaction.mode", "window")
	v.Set("redaction.marker", "#")

	cfg, err := FromViper(v)
	if err != nil {
		t.Fatalf("FromViper() error = %v", err)
	}
	if cfg.Redaction.EntropyThreshold != 3.2 {
		t.Errorf("threshold = %v, want 3.2", cfg.Redaction.EntropyThreshold)
	}
	if cfg.Redaction.Mode != "window" {
		t.Errorf("mode = %q, want window", cfg.Redaction.Mode)
	}
	if cfg.Redaction.MarkerRune() != '#' {
		t.Errorf("marker rune = %q, want '#'", cfg.Redaction.MarkerRune())
	}
}

func TestFromViper_InvalidFailsFast(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	v.Set("redaction.marker", "##")

	if _, err := FromViper(v); err == nil {
		t.Error("FromViper() error = nil, want validation error")
	}
}

func TestYearRange_Contains(t *testing.T) {
	r := YearRange{Min: 1900, Max: 2100}

	for y, want := range map[int]bool{1899: false, 1900: true, 2026: true, 2100: true, 2101: false} {
		if got := r.Contains(y); got != want {
			t.Errorf("Contains(%d) = %v, want %v", y, got, want)
		}
	}
}

func TestMarkerRune_Unicode(t *testing.T) {
	rc := RedactionConfig{Marker: "█"}
	if got := rc.MarkerRune(); got != '█' {
		t.Errorf("MarkerRune() = %q, want '█'", got)
	}
}

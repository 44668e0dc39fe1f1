package tokenize

import (
	"strings"
	"testing"
)

func TestSegments_RoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"single token", "hello"},
		{"single separator", "---"},
		{"log line", "model-scheduler-667689996-jd4g7"},
		{"mixed separators", "a=1, b=2; c=[3]"},
		{"leading separator", " lead"},
		{"trailing separator", "trail "},
		{"unicode", "naïve café-42"},
		{"markers", "user-****-done"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b strings.Builder
			for seg := range Segments(tt.input) {
				if seg.Text != tt.input[seg.Start:seg.End] {
					t.Errorf("segment text %q does not match offsets [%d:%d]", seg.Text, seg.Start, seg.End)
				}
				b.WriteString(seg.Text)
			}
			if b.String() != tt.input {
				t.Errorf("reassembled = %q, want %q", b.String(), tt.input)
			}
		})
	}
}

func TestSegments_Alternates(t *testing.T) {
	prev := -1 // -1 unset, 0 token, 1 separator
	for seg := range Segments("abc--def g") {
		cur := 0
		if seg.Sep {
			cur = 1
		}
		if cur == prev {
			t.Fatalf("adjacent segments share kind at [%d:%d]", seg.Start, seg.End)
		}
		prev = cur
	}
}

func TestSegments_Restartable(t *testing.T) {
	seq := Segments("one-two-three")

	var first, second []Segment
	for seg := range seq {
		first = append(first, seg)
	}
	for seg := range seq {
		second = append(second, seg)
	}

	if len(first) != len(second) {
		t.Fatalf("second pass yielded %d segments, want %d", len(second), len(first))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("segment %d differs between passes: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestSegments_EarlyStop(t *testing.T) {
	count := 0
	for range Segments("a-b-c-d") {
		count++
		if count == 2 {
			break
		}
	}
	if count != 2 {
		t.Errorf("iterated %d segments after break, want 2", count)
	}
}

func TestTokens(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "", nil},
		{"separators only", "-- --", nil},
		{"pod name", "model-scheduler-667689996-jd4g7", []string{"model", "scheduler", "667689996", "jd4g7"}},
		{"ip address", "192.168.1.100", []string{"192", "168", "1", "100"}},
		{"marker runs are separators", "user-****-id", []string{"user", "id"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokens(tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("Tokens() returned %d tokens, want %d", len(got), len(tt.want))
			}
			for i, seg := range got {
				if seg.Text != tt.want[i] {
					t.Errorf("token %d = %q, want %q", i, seg.Text, tt.want[i])
				}
				if seg.Sep {
					t.Errorf("token %d marked as separator", i)
				}
			}
		})
	}
}

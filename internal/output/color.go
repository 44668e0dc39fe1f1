package output

import (
	"os"
	"strings"

	"golang.org/x/term"
)

// ANSI color codes
const (
	colorReset = "\033[0m"
	colorRed   = "\033[31m"
	colorBold  = "\033[1m"
)

// ColorMode determines when to use colored output.
type ColorMode int

const (
	ColorAuto   ColorMode = iota // Auto-detect based on TTY
	ColorAlways                  // Always use colors
	ColorNever                   // Never use colors
)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// shouldColorize determines if output should be colorized based on mode and TTY detection.
func shouldColorize(mode ColorMode, w interface{}) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	case ColorAuto:
		if f, ok := w.(*os.File); ok {
			return isTerminal(f)
		}
		return false
	}
	return false
}

// HighlightMarkers wraps each marker run in line with bold red so redacted
// spans stand out in comparative output.
func HighlightMarkers(line, marker string) string {
	if marker == "" || !strings.Contains(line, marker) {
		return line
	}

	var b strings.Builder
	i := 0
	for i < len(line) {
		j := strings.Index(line[i:], marker)
		if j < 0 {
			b.WriteString(line[i:])
			break
		}
		j += i
		b.WriteString(line[i:j])

		k := j
		for k < len(line) && strings.HasPrefix(line[k:], marker) {
			k += len(marker)
		}
		b.WriteString(colorBold + colorRed + line[j:k] + colorReset)
		i = k
	}
	return b.String()
}

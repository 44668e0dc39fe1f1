package tail

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sync"
	"testing"
	"time"
)

func writeTempLog(t *testing.T, lines []string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "app.log")
	content := ""
	for _, line := range lines {
		content += line + "\n"
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write temp log: %v", err)
	}
	return path
}

type lineCollector struct {
	mu    sync.Mutex
	lines []string
}

func (c *lineCollector) collect(line string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = append(c.lines, line)
	return nil
}

func (c *lineCollector) snapshot() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.lines...)
}

func TestTailer_InitialLines(t *testing.T) {
	path := writeTempLog(t, []string{"one", "two", "three", "four", "five"})

	var c lineCollector
	tailer := New(Options{
		FilePath:   path,
		Lines:      3,
		OutputFunc: c.collect,
	})

	if err := tailer.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	got := c.snapshot()
	want := []string{"three", "four", "five"}
	if len(got) != len(want) {
		t.Fatalf("emitted %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestTailer_InitialLines_FewerThanRequested(t *testing.T) {
	path := writeTempLog(t, []string{"only", "two"})

	var c lineCollector
	tailer := New(Options{FilePath: path, Lines: 10, OutputFunc: c.collect})

	if err := tailer.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if got := c.snapshot(); len(got) != 2 {
		t.Errorf("emitted %v, want both lines", got)
	}
}

func TestTailer_PatternFilter(t *testing.T) {
	path := writeTempLog(t, []string{
		"INFO started",
		"ERROR connection refused",
		"INFO idle",
		"ERROR timeout",
	})

	var c lineCollector
	tailer := New(Options{
		FilePath:   path,
		Lines:      10,
		Pattern:    regexp.MustCompile(`^ERROR`),
		OutputFunc: c.collect,
	})

	if err := tailer.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	got := c.snapshot()
	if len(got) != 2 {
		t.Fatalf("emitted %v, want the two ERROR lines", got)
	}
	for _, line := range got {
		if !regexp.MustCompile(`^ERROR`).MatchString(line) {
			t.Errorf("emitted non-matching line %q", line)
		}
	}
}

func TestTailer_SkipsBlankLines(t *testing.T) {
	path := writeTempLog(t, []string{"first", "", "   ", "second"})

	var c lineCollector
	tailer := New(Options{FilePath: path, Lines: 10, OutputFunc: c.collect})

	if err := tailer.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if got := c.snapshot(); len(got) != 2 {
		t.Errorf("emitted %v, want blank lines skipped", got)
	}
}

func TestTailer_MissingFile(t *testing.T) {
	tailer := New(Options{
		FilePath:   filepath.Join(t.TempDir(), "absent.log"),
		Lines:      1,
		OutputFunc: func(string) error { return nil },
	})

	if err := tailer.Run(context.Background()); err == nil {
		t.Error("Run() error = nil, want error for missing file")
	}
}

func TestTailer_Follow(t *testing.T) {
	path := writeTempLog(t, []string{"existing"})

	var c lineCollector
	tailer := New(Options{
		FilePath:   path,
		Follow:     true,
		OutputFunc: c.collect,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- tailer.Run(ctx) }()

	// Give the watcher time to attach, then append.
	time.Sleep(200 * time.Millisecond)
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		t.Fatalf("failed to reopen log: %v", err)
	}
	fmt.Fprintln(f, "appended line")
	f.Close()

	deadline := time.After(3 * time.Second)
	for {
		if lines := c.snapshot(); len(lines) > 0 {
			if lines[0] != "appended line" {
				t.Errorf("emitted %q, want %q", lines[0], "appended line")
			}
			break
		}
		select {
		case <-deadline:
			t.Fatal("timed out waiting for appended line")
		case <-time.After(20 * time.Millisecond):
		}
	}

	cancel()
	if err := <-done; err != nil {
		t.Errorf("Run() error = %v", err)
	}
}

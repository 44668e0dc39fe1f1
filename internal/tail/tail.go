// Package tail follows a growing log file and hands each new line to a
// caller-supplied function, typically the redaction pipeline.
//
// It implements "tail -f" like behavior with optional pattern filtering
// and log rotation detection.
package tail

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Options configures the tailer behavior.
type Options struct {
	FilePath     string                 // Path to the log file
	Lines        int                    // Number of initial lines to emit
	Follow       bool                   // Whether to follow the file for new content
	FollowRotate bool                   // Whether to follow through log rotations
	Pattern      *regexp.Regexp         // Optional regex pattern to filter lines
	OutputFunc   func(line string) error // Called for each matching line
}

// Tailer handles tailing a log file with filtering.
type Tailer struct {
	opts    Options
	file    *os.File
	offset  int64
	watcher *fsnotify.Watcher
}

// New creates a new Tailer with the given options.
func New(opts Options) *Tailer {
	return &Tailer{opts: opts}
}

// Run starts the tailing process. It blocks until context is cancelled or an error occurs.
func (t *Tailer) Run(ctx context.Context) error {
	if err := t.openFile(); err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer t.close()

	if t.opts.Lines > 0 {
		if err := t.readInitialLines(); err != nil {
			return fmt.Errorf("failed to read initial lines: %w", err)
		}
	}

	if !t.opts.Follow {
		return nil
	}

	if err := t.setupWatcher(); err != nil {
		return fmt.Errorf("failed to setup watcher: %w", err)
	}
	defer t.watcher.Close()

	return t.watch(ctx)
}

// openFile opens the log file and records the end offset if following.
func (t *Tailer) openFile() error {
	f, err := os.Open(t.opts.FilePath)
	if err != nil {
		return err
	}
	t.file = f

	if t.opts.Follow {
		stat, err := f.Stat()
		if err != nil {
			return err
		}
		t.offset = stat.Size()
	}

	return nil
}

// readInitialLines emits the last N lines of the file.
func (t *Tailer) readInitialLines() error {
	stat, err := t.file.Stat()
	if err != nil {
		return err
	}
	fileSize := stat.Size()
	if fileSize == 0 {
		return nil
	}

	// Heuristic starting position: assume ~300 bytes per line, doubled so
	// we land early enough to collect N full lines.
	estimatedBytesNeeded := int64(t.opts.Lines * 300 * 2)
	startPos := fileSize - estimatedBytesNeeded
	if startPos < 0 {
		startPos = 0
	}

	if _, err := t.file.Seek(startPos, io.SeekStart); err != nil {
		return err
	}

	scanner := newLineScanner(t.file)

	// If we're not at the start, skip the first partial line
	if startPos > 0 {
		if scanner.Scan() {
			// Discard first partial line
		}
	}

	var lines []string
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		if t.shouldEmit(line) {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	// Keep only the last N lines
	if len(lines) > t.opts.Lines {
		lines = lines[len(lines)-t.opts.Lines:]
	}

	for _, line := range lines {
		if err := t.opts.OutputFunc(line); err != nil {
			return err
		}
	}

	t.offset, err = t.file.Seek(0, io.SeekEnd)
	return err
}

// setupWatcher initializes the fsnotify watcher.
func (t *Tailer) setupWatcher() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	t.watcher = watcher

	if err := watcher.Add(t.opts.FilePath); err != nil {
		return err
	}

	return nil
}

// watch monitors the file for changes and emits new lines.
func (t *Tailer) watch(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-t.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher closed unexpectedly")
			}
			if err := t.handleEvent(ctx, event); err != nil {
				return err
			}

		case err, ok := <-t.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher error channel closed")
			}
			return fmt.Errorf("watcher error: %w", err)
		}
	}
}

// handleEvent processes a file system event.
func (t *Tailer) handleEvent(ctx context.Context, event fsnotify.Event) error {
	switch {
	case event.Op&fsnotify.Write == fsnotify.Write:
		return t.readNewContent()

	case event.Op&fsnotify.Remove == fsnotify.Remove || event.Op&fsnotify.Rename == fsnotify.Rename:
		// File was removed or renamed (log rotation)
		return t.handleRotation(ctx)

	case event.Op&fsnotify.Chmod == fsnotify.Chmod:
		return nil
	}

	return nil
}

// readNewContent emits lines appended since the last read.
func (t *Tailer) readNewContent() error {
	if _, err := t.file.Seek(t.offset, io.SeekStart); err != nil {
		return err
	}

	scanner := newLineScanner(t.file)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		if t.shouldEmit(line) {
			if err := t.opts.OutputFunc(line); err != nil {
				return err
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	var err error
	t.offset, err = t.file.Seek(0, io.SeekCurrent)
	return err
}

// handleRotation handles log file rotation.
func (t *Tailer) handleRotation(ctx context.Context) error {
	if !t.opts.FollowRotate {
		fmt.Fprintf(os.Stderr, "\nFile rotated. Exiting. Use --follow-rotate to follow through rotations.\n")
		return fmt.Errorf("file rotated")
	}

	if t.file != nil {
		t.file.Close()
		t.file = nil
	}

	// Wait for new file to appear (with timeout)
	timeout := time.After(10 * time.Second)
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-timeout:
			return fmt.Errorf("timeout waiting for rotated file to reappear")
		case <-ticker.C:
			f, err := os.Open(t.opts.FilePath)
			if err == nil {
				t.file = f
				t.offset = 0

				if err := t.watcher.Add(t.opts.FilePath); err != nil {
					return fmt.Errorf("failed to watch rotated file: %w", err)
				}

				fmt.Fprintf(os.Stderr, "\n==> File rotated, following new file <==\n")
				return nil
			}
		}
	}
}

// shouldEmit checks if a line matches the filter criteria.
func (t *Tailer) shouldEmit(line string) bool {
	if t.opts.Pattern != nil && !t.opts.Pattern.MatchString(line) {
		return false
	}
	return true
}

// newLineScanner builds a scanner sized for long log lines.
func newLineScanner(r io.Reader) *bufio.Scanner {
	scanner := bufio.NewScanner(r)
	const maxScanTokenSize = 1024 * 1024 // 1MB
	buf := make([]byte, maxScanTokenSize)
	scanner.Buffer(buf, maxScanTokenSize)
	return scanner
}

// close closes all resources.
func (t *Tailer) close() {
	if t.file != nil {
		t.file.Close()
	}
	if t.watcher != nil {
		t.watcher.Close()
	}
}

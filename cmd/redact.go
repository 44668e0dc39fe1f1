package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/bimmerbailey/scour/internal/config"
	"github.com/bimmerbailey/scour/internal/output"
	"github.com/bimmerbailey/scour/internal/redact"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var redactCmd = &cobra.Command{
	Use:   "redact [flags] [file...]",
	Short: "Redact sensitive strings from files or stdin",
	Long: `Redact high-entropy and structurally sensitive substrings from log
text. Input is processed line by line; use "-" or no arguments to read
from stdin.

Examples:
  scour redact /var/log/app.log
  cat app.log | scour redact
  scour redact --mode window --condense app.log
  scour redact --comparative --threshold 3.0 app.log
  scour redact -o clean.log "/var/log/app/*.log"`,
	RunE: runRedact,
}

func init() {
	redactCmd.Flags().StringP("mode", "m", "", "entropy strategy: token or window (default from config)")
	redactCmd.Flags().Float64P("threshold", "t", 0, "override entropy threshold (bits/char)")
	redactCmd.Flags().Int("min-length", 0, "override minimum segment length")
	redactCmd.Flags().Int("window-size", 0, "override sliding window size")
	redactCmd.Flags().Bool("condense", false, "collapse marker runs to a single marker")
	redactCmd.Flags().BoolP("comparative", "c", false, "show original and redacted lines side by side")
	redactCmd.Flags().StringP("output", "o", "", "output file path (default: stdout)")

	rootCmd.AddCommand(redactCmd)
}

func runRedact(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	redactor, err := redact.New(cfg)
	if err != nil {
		return err
	}

	opts, err := redactOptions(cmd)
	if err != nil {
		return err
	}

	comparative, _ := cmd.Flags().GetBool("comparative")
	outputPath, _ := cmd.Flags().GetString("output")

	dest := io.Writer(os.Stdout)
	if outputPath != "" {
		f, err := os.Create(outputPath)
		if err != nil {
			return fmt.Errorf("failed to open output file: %w", err)
		}
		defer f.Close()
		dest = f
	}

	var results []output.Result
	process := func(name string, r io.Reader) error {
		lineResults, err := redactLines(r, name, redactor, opts)
		if err != nil {
			return err
		}
		results = append(results, lineResults...)
		return nil
	}

	if err := forEachInput(args, process); err != nil {
		return err
	}

	writer := output.New(dest, output.ParseFormat(viper.GetString("format")), cfg.Redaction.Marker)
	if comparative {
		return writer.WriteComparative(results)
	}
	return writer.WriteResults(results)
}

// redactLines redacts a stream line by line. Blank lines pass through so
// the output keeps the input's shape.
func redactLines(r io.Reader, name string, redactor *redact.Redactor, opts []redact.Option) ([]output.Result, error) {
	var results []output.Result
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		results = append(results, output.Result{
			File:     name,
			Line:     lineNum,
			Original: line,
			Redacted: redactor.Redact(line, opts...),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return results, nil
}

// redactOptions collects per-call overrides from flags that were set.
func redactOptions(cmd *cobra.Command) ([]redact.Option, error) {
	var opts []redact.Option

	if cmd.Flags().Changed("mode") {
		modeStr, _ := cmd.Flags().GetString("mode")
		mode, err := redact.ParseMode(modeStr)
		if err != nil {
			return nil, err
		}
		opts = append(opts, redact.WithMode(mode))
	}
	if cmd.Flags().Changed("threshold") {
		threshold, _ := cmd.Flags().GetFloat64("threshold")
		if threshold <= 0 {
			return nil, fmt.Errorf("--threshold must be positive, got %v", threshold)
		}
		opts = append(opts, redact.WithThreshold(threshold))
	}
	if cmd.Flags().Changed("min-length") {
		minLength, _ := cmd.Flags().GetInt("min-length")
		if minLength <= 0 {
			return nil, fmt.Errorf("--min-length must be positive, got %d", minLength)
		}
		opts = append(opts, redact.WithMinLength(minLength))
	}
	if cmd.Flags().Changed("window-size") {
		windowSize, _ := cmd.Flags().GetInt("window-size")
		if windowSize <= 0 {
			return nil, fmt.Errorf("--window-size must be positive, got %d", windowSize)
		}
		opts = append(opts, redact.WithWindowSize(windowSize))
	}
	if cmd.Flags().Changed("condense") {
		condense, _ := cmd.Flags().GetBool("condense")
		opts = append(opts, redact.WithCondense(condense))
	}

	return opts, nil
}

// forEachInput runs fn over each input file, or stdin when no files (or
// "-") are given.
func forEachInput(args []string, fn func(name string, r io.Reader) error) error {
	if len(args) == 0 || (len(args) == 1 && args[0] == "-") {
		return fn("", os.Stdin)
	}

	files, err := config.ExpandGlobs(args)
	if err != nil {
		return err
	}

	for _, path := range files {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", path, err)
		}
		if err := fn(path, f); err != nil {
			f.Close()
			return err
		}
		f.Close()
	}
	return nil
}

package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"regexp"
	"syscall"

	"github.com/bimmerbailey/scour/internal/redact"
	"github.com/bimmerbailey/scour/internal/tail"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch [flags] <file>",
	Short: "Follow a log file and emit redacted lines",
	Long: `Watch a log file in real-time, similar to 'tail -f', printing each
new line with sensitive content already redacted.

Examples:
  scour watch /var/log/app.log
  scour watch --pattern "request_id" /var/log/app.log
  scour watch --follow-rotate --mode window /var/log/app.log`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringP("pattern", "p", "", "only show lines matching regex pattern")
	watchCmd.Flags().IntP("lines", "n", 10, "number of initial lines to show")
	watchCmd.Flags().Bool("no-follow", false, "print last N lines and exit (don't follow)")
	watchCmd.Flags().Bool("follow-rotate", false, "follow through log rotations (continue when file is renamed/removed)")
	watchCmd.Flags().StringP("mode", "m", "", "entropy strategy: token or window (default from config)")
	watchCmd.Flags().Float64P("threshold", "t", 0, "override entropy threshold (bits/char)")
	watchCmd.Flags().Int("min-length", 0, "override minimum segment length")
	watchCmd.Flags().Int("window-size", 0, "override sliding window size")
	watchCmd.Flags().Bool("condense", false, "collapse marker runs to a single marker")

	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	filePath := args[0]
	patternStr, _ := cmd.Flags().GetString("pattern")
	lines, _ := cmd.Flags().GetInt("lines")
	noFollow, _ := cmd.Flags().GetBool("no-follow")
	followRotate, _ := cmd.Flags().GetBool("follow-rotate")

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

	var pattern *regexp.Regexp
	if patternStr != "" {
		pattern, err = regexp.Compile(patternStr)
		if err != nil {
			return fmt.Errorf("invalid pattern: %w", err)
		}
	}

	tailer := tail.New(tail.Options{
		FilePath:     filePath,
		Lines:        lines,
		Follow:       !noFollow,
		FollowRotate: followRotate,
		Pattern:      pattern,
		OutputFunc: func(line string) error {
			_, err := fmt.Println(redactor.Redact(line, opts...))
			return err
		},
	})

	// Cancel on SIGINT/SIGTERM so follow mode exits cleanly.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	return tailer.Run(ctx)
}

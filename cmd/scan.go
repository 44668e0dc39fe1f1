package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/bimmerbailey/scour/internal/output"
	"github.com/bimmerbailey/scour/internal/redact"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var scanCmd = &cobra.Command{
	Use:   "scan [flags] <file...>",
	Short: "Report redactable content without rewriting it",
	Long: `Scan files (or stdin) and report every range that redaction would
replace: its location, the matched text, the rule that claimed it, and the
entropy score for statistical findings.

Examples:
  scour scan /var/log/app.log
  scour scan --format table app.log
  scour scan --format json --mode window app.log`,
	RunE: runScan,
}

func init() {
	scanCmd.Flags().StringP("mode", "m", "", "entropy strategy: token or window (default from config)")
	scanCmd.Flags().Float64P("threshold", "t", 0, "override entropy threshold (bits/char)")
	scanCmd.Flags().Int("min-length", 0, "override minimum segment length")
	scanCmd.Flags().Int("window-size", 0, "override sliding window size")
	scanCmd.Flags().Bool("summary", false, "print only per-file finding counts")

	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	redactor, err := redact.New(cfg)
	if err != nil {
		return err
	}

	opts, err := scanOptions(cmd)
	if err != nil {
		return err
	}

	summary, _ := cmd.Flags().GetBool("summary")

	var results []output.Result
	counts := make(map[string]int)
	process := func(name string, r io.Reader) error {
		scanner := bufio.NewScanner(r)
		scanner.Buffer(make([]byte, 1024*1024), 1024*1024)

		lineNum := 0
		for scanner.Scan() {
			lineNum++
			line := scanner.Text()
			findings := redactor.Scan(line, opts...)
			if len(findings) == 0 {
				continue
			}
			counts[name] += len(findings)
			results = append(results, output.Result{
				File:     name,
				Line:     lineNum,
				Redacted: redactor.Redact(line, opts...),
				Findings: findings,
			})
		}
		return scanner.Err()
	}

	if err := forEachInput(args, process); err != nil {
		return err
	}

	if summary {
		names := make([]string, 0, len(counts))
		for name := range counts {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			label := name
			if label == "" {
				label = "(stdin)"
			}
			fmt.Printf("%s: %d findings\n", label, counts[name])
		}
		return nil
	}

	writer := output.New(os.Stdout, output.ParseFormat(viper.GetString("format")), cfg.Redaction.Marker)
	return writer.WriteFindings(results)
}

// scanOptions reuses the redact flag handling for the shared flags.
func scanOptions(cmd *cobra.Command) ([]redact.Option, error) {
	return redactOptions(cmd)
}

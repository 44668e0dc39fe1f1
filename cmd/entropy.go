package cmd

import (
	"fmt"

	"github.com/bimmerbailey/scour/internal/entropy"
	"github.com/bimmerbailey/scour/internal/redact"
	"github.com/spf13/cobra"
)

var entropyCmd = &cobra.Command{
	Use:   "entropy <string>...",
	Short: "Score strings and show how they would be classified",
	Long: `Print the Shannon entropy (bits per character) of each argument and
whether the configured classifier would redact it. Useful for calibrating
the entropy threshold against your own data.

Examples:
  scour entropy "a1b2c3d4e5f6"
  scour entropy password hunter2 550e8400-e29b-41d4-a716-446655440000`,
	Args: cobra.MinimumNArgs(1),
	RunE: runEntropy,
}

func init() {
	rootCmd.AddCommand(entropyCmd)
}

func runEntropy(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	redactor, err := redact.New(cfg)
	if err != nil {
		return err
	}
	engine := redactor.Engine()

	for _, arg := range args {
		verdict := "keep"
		if engine.IsHighEntropy(arg) {
			verdict = "redact"
		}
		fmt.Printf("%.4f\t%s\t%s\n", entropy.Shannon(arg), verdict, arg)
	}
	return nil
}

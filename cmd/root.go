package cmd

import (
	"fmt"
	"os"

	"github.com/bimmerbailey/scour/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "scour",
	Short: "Redact secrets and high-entropy strings from log text",
	Long: `Scour removes sensitive or random-looking substrings (API keys, UUIDs,
session IDs, hashes) from log files and streams while keeping the readable
structure intact.

Detection combines Shannon entropy scoring with structural pattern matching
for known identifier shapes: timestamps, IP addresses, AWS hostnames and
paths, container and pod names.

Examples:
  scour redact /var/log/app.log
  cat app.log | scour redact --mode window --condense
  scour scan --format table /var/log/app.log
  scour entropy "a1b2c3d4e5f6"
  scour watch /var/log/app.log`,
}

// Execute is called by main.main(). It runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.scour.yaml)")
	rootCmd.PersistentFlags().StringP("format", "f", "text", "output format (text, json, table)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable verbose output")

	_ = viper.BindPFlag("format", rootCmd.PersistentFlags().Lookup("format"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error finding home directory:", err)
			os.Exit(1)
		}

		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigName(".scour")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("SCOUR")
	viper.AutomaticEnv()

	config.SetDefaults(viper.GetViper())

	if err := viper.ReadInConfig(); err == nil {
		if viper.GetBool("verbose") {
			fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}
	}
}

// loadConfig unmarshals and validates the active configuration.
// Validation failures are fatal and reported once.
func loadConfig() (*config.Config, error) {
	cfg, err := config.FromViper(viper.GetViper())
	if err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}
	return cfg, nil
}

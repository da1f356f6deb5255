package main

import (
	"fmt"
	"os"

	"github.com/aretw0/typeset/internal/cli"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "typeset",
	Short:         "Typeset renders math expression trees as TeX",
	Long:          `Typeset loads expression documents (YAML or JSON) and renders them as MathJax-ready TeX or as a diagnostic text form.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// globalOptions reads the persistent flags.
func globalOptions(cmd *cobra.Command) cli.Options {
	config, _ := cmd.Flags().GetString("config")
	level, _ := cmd.Flags().GetString("log-level")
	jsonLogs, _ := cmd.Flags().GetBool("log-json")
	plain, _ := cmd.Flags().GetBool("plain")
	return cli.Options{ConfigPath: config, LogLevel: level, JSONLogs: jsonLogs, Plain: plain}
}

func streams(cmd *cobra.Command) cli.IO {
	return cli.IO{In: cmd.InOrStdin(), Out: cmd.OutOrStdout(), Err: cmd.ErrOrStderr()}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().StringP("config", "c", "", "Marker config file (defaults to ./"+cli.DefaultConfigName+" when present)")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("log-json", false, "Write logs as JSON")
	rootCmd.PersistentFlags().Bool("plain", false, "Disable all markers")
}

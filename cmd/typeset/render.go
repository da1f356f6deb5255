package main

import (
	"github.com/aretw0/typeset/internal/cli"
	"github.com/spf13/cobra"
)

var renderCmd = &cobra.Command{
	Use:   "render FILE",
	Short: "Print the TeX markup of an expression",
	Long:  `Renders an expression document as TeX. Use "-" to read YAML from stdin.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.Render(globalOptions(cmd), args[0], streams(cmd))
	},
}

var describeCmd = &cobra.Command{
	Use:   "describe FILE",
	Short: "Print the diagnostic text form of an expression",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		strict, _ := cmd.Flags().GetBool("strict")
		return cli.Describe(globalOptions(cmd), args[0], strict, streams(cmd))
	},
}

var inspectCmd = &cobra.Command{
	Use:   "inspect FILE",
	Short: "Show a report or a Mermaid graph of an expression",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mermaid, _ := cmd.Flags().GetBool("mermaid")
		raw, _ := cmd.Flags().GetBool("raw")
		return cli.Inspect(globalOptions(cmd), args[0], cli.InspectOptions{Mermaid: mermaid, Raw: raw}, streams(cmd))
	},
}

func init() {
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(describeCmd)
	rootCmd.AddCommand(inspectCmd)

	describeCmd.Flags().Bool("strict", false, "Fail when segments are flagged with errors")
	inspectCmd.Flags().Bool("mermaid", false, "Output a Mermaid graph of the tree")
	inspectCmd.Flags().Bool("raw", false, "Print markdown without terminal rendering")
}

package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/typeset"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of typeset",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "typeset version %s\n", strings.TrimSpace(typeset.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

package cmd

import (
	"fmt"

	"github.com/saltyorg/ktx/internal/runtime"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print ktx version",
	Long:  `Print ktx version`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintf(cmd.OutOrStdout(), "ktx version: %s\n", runtime.VersionString())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

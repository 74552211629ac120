package cmd

import (
	"fmt"

	"github.com/saltyorg/ktx/internal/config"
	"github.com/saltyorg/ktx/internal/constants"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the profile file",
	Long: `Validate the profile file: unknown keys, invalid option values, jobs that
reference missing profiles and outputs that clash are all reported.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		path := configFile
		if path == "" {
			path = constants.DefaultConfigFile
		}
		f, err := config.Load(path)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s is valid: %d profile(s), %d job(s)\n", f.Path(), len(f.Profiles), len(f.Jobs))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

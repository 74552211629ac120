package cmd

import (
	"fmt"
	"io"

	"github.com/saltyorg/ktx/internal/constants"
	"github.com/saltyorg/ktx/internal/executor"
	"github.com/saltyorg/ktx/internal/styles"
	"github.com/saltyorg/ktx/internal/toolcheck"

	"github.com/spf13/cobra"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check that toktx is installed and recent enough",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runDoctor(cmd, executor.Blocking{})
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, b executor.Backend) error {
	program, err := configuredProgram()
	if err != nil {
		return err
	}

	info, err := toolcheck.Check(cmd.Context(), b, program)
	w := cmd.OutOrStdout()
	styled := isTerminal(w)
	if info.Path != "" {
		printCheck(w, styled, true, "toktx found at %s", info.Path)
	}
	if err != nil {
		printCheck(w, styled, false, "%v", err)
		return fmt.Errorf("toktx check failed")
	}
	printCheck(w, styled, info.Supported, "version %s (%s required)", info.Version, constants.MinToktxVersion)
	if !info.Supported {
		return fmt.Errorf("toktx %s is too old", info.Version)
	}
	return nil
}

// configuredProgram returns the executable convert and batch would use
// for the default profile.
func configuredProgram() (string, error) {
	f, err := loadConfig()
	if err != nil {
		return "", err
	}
	profile, err := resolveProfile(f, "", nil)
	if err != nil {
		return "", err
	}
	return profile.Program(), nil
}

func printCheck(w io.Writer, styled, ok bool, format string, args ...any) {
	mark, style := "✓", styles.SuccessStyle
	if !ok {
		mark, style = "✗", styles.ErrorStyle
	}
	if styled {
		mark = style.Render(mark)
	}
	fmt.Fprintf(w, "%s %s\n", mark, fmt.Sprintf(format, args...))
}

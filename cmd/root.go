package cmd

import (
	"context"
	"io"
	"os"

	"github.com/saltyorg/ktx/internal/config"
	"github.com/saltyorg/ktx/internal/constants"
	"github.com/saltyorg/ktx/internal/errors"
	"github.com/saltyorg/ktx/internal/logging"
	"github.com/saltyorg/ktx/internal/spinners"
	"github.com/saltyorg/ktx/internal/tty"
	"github.com/saltyorg/ktx/toktx"

	"github.com/spf13/cobra"
)

var (
	configFile string
	toktxPath  string
	verbosity  int
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "ktx",
	Short: "Convert images to KTX textures with toktx",
	Long: `ktx renders texture profiles into toktx command lines and runs them.

Profiles live in ktx.yml next to your assets. Single images are converted
with "ktx convert"; every job in the file is built with "ktx batch".`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.SetVerbosity(verbosity)
		spinners.SetVerboseMode(verbosity > 0)
	},
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
}

// GetRootCommand returns the root command for use with fang.Execute
func GetRootCommand() *cobra.Command {
	return rootCmd
}

// ExecuteContext runs the root command with ctx available to every
// subcommand through cmd.Context().
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "profile file (default "+constants.DefaultConfigFile+" if present)")
	rootCmd.PersistentFlags().StringVar(&toktxPath, "toktx", "", "toktx executable, overriding the profile file and $"+constants.ToktxEnv)
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "increase log output (repeat for more)")
}

// loadConfig reads --config, or ktx.yml in the working directory when it
// exists.
func loadConfig() (*config.File, error) {
	if configFile != "" {
		return config.Load(configFile)
	}
	return config.LoadOptional(constants.DefaultConfigFile, false)
}

// resolveProfile returns the named profile with --set overrides and the
// --toktx flag applied.
func resolveProfile(f *config.File, name string, sets []string) (*toktx.ToKtx, error) {
	profile, err := f.Profile(name)
	if err != nil {
		return nil, err
	}
	profile, err = config.ApplyOverrides(profile, sets)
	if err != nil {
		return nil, err
	}
	if toktxPath != "" {
		profile.PathToToktx = toktxPath
	}
	logging.Debug("Using %s with options %v", profile.Program(), profile.Args())
	return profile, nil
}

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && tty.IsTerminal(f)
}

// handleInterruptError checks if the error is from a user interrupt and
// triggers shutdown.
func handleInterruptError(err error) {
	errors.HandleInterruptError(err)
}

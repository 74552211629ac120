package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/saltyorg/ktx/internal/constants"
	"github.com/saltyorg/ktx/internal/logging"
	"github.com/saltyorg/ktx/internal/spinners"
	"github.com/saltyorg/ktx/toktx"

	"github.com/spf13/cobra"
)

var (
	convertProfile    string
	convertOutput     string
	convertBackend    string
	convertRemoveTemp bool
	convertForce      bool
	convertSets       []string
)

var backendNames = []string{"blocking", "goroutine", "pool"}

var convertCmd = &cobra.Command{
	Use:   "convert [flags] <input...>",
	Short: "Convert one texture",
	Long: `Convert one texture using a profile from the profile file.

Several inputs form a single texture (cubemap faces, array layers or mip
levels). Use - as the only input to read an image from stdin and -o - to
write the result to stdout.`,
	Example: `  ktx convert --profile albedo wood.png
  ktx convert --set encode=uastc --set encode.uastc_quality=2 -o out.ktx2 in.png
  cat in.png | ktx convert -o - - > out.ktx2`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, inputs []string) error {
		return runConvert(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), inputs)
	},
}

func init() {
	rootCmd.AddCommand(convertCmd)
	convertCmd.Flags().StringVarP(&convertProfile, "profile", "p", "", "profile to use (default \""+constants.DefaultProfile+"\" if defined)")
	convertCmd.Flags().StringVarP(&convertOutput, "output", "o", "", "output file, or - for stdout (default: input with the container extension)")
	convertCmd.Flags().StringVarP(&convertBackend, "backend", "b", "blocking", "execution backend: "+strings.Join(backendNames, ", "))
	convertCmd.Flags().BoolVar(&convertRemoveTemp, "remove-temp", false, "delete the temporary copy of stdin input afterwards")
	convertCmd.Flags().BoolVarP(&convertForce, "force", "f", false, "write to stdout even when it is a terminal")
	convertCmd.Flags().StringArrayVarP(&convertSets, "set", "s", nil, "override a profile option, e.g. --set zcmp=19")
}

func runConvert(ctx context.Context, stdin io.Reader, stdout io.Writer, inputs []string) error {
	if !slices.Contains(backendNames, convertBackend) {
		return fmt.Errorf("unknown backend %q (expected one of %s)", convertBackend, strings.Join(backendNames, ", "))
	}

	f, err := loadConfig()
	if err != nil {
		return err
	}
	profile, err := resolveProfile(f, convertProfile, convertSets)
	if err != nil {
		return err
	}

	src, err := inputSource(inputs, stdin)
	if err != nil {
		return err
	}
	dest := convertOutput
	if dest == "" {
		dest = defaultOutput(inputs[0], profile.OutputFormat)
	}
	if dest == constants.StdoutOutput && isTerminal(stdout) && !convertForce {
		return fmt.Errorf("refusing to write texture data to a terminal (redirect stdout or use --force)")
	}

	conv := profile.Convert(src)
	if convertRemoveTemp {
		conv = conv.RemoveTemp()
	}

	label := strings.Join(inputs, " ")
	if label == constants.StdinInput {
		label = "stdin"
	}
	err = spinners.RunTaskWithSpinnerCustomContext(ctx, spinners.SpinnerOptions{
		TaskName:    fmt.Sprintf("Converting %s", label),
		StopMessage: fmt.Sprintf("Converted %s", label),
	}, func() error {
		return convertTo(ctx, conv, dest, stdout)
	})
	if err != nil {
		handleInterruptError(err)
		return err
	}
	logging.Debug("Wrote %s", dest)
	return nil
}

// convertTo runs conv on the selected backend. Output to stdout is
// collected in memory and copied to w once toktx has exited.
func convertTo(ctx context.Context, conv toktx.Conversion, dest string, w io.Writer) error {
	if dest != constants.StdoutOutput {
		if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
			return err
		}
	}

	var async toktx.AsyncBackend
	switch convertBackend {
	case "goroutine":
		async = toktx.Goroutine{}
	case "pool":
		async = toktx.NewPool(0)
	}

	var data []byte
	var err error
	switch {
	case async == nil && dest == constants.StdoutOutput:
		data, err = conv.ToMemory(ctx)
	case async == nil:
		err = conv.ToPath(ctx, dest)
	case dest == constants.StdoutOutput:
		data, err = conv.Future(async).ToMemory(ctx).Await(ctx)
	default:
		_, err = conv.Future(async).ToPath(ctx, dest).Await(ctx)
	}
	if err != nil {
		return err
	}
	if dest == constants.StdoutOutput {
		_, err = w.Write(data)
	}
	return err
}

// inputSource turns the positional arguments into an input. "-" reads the
// whole of stdin and may not be combined with other inputs.
func inputSource(inputs []string, stdin io.Reader) (toktx.InputSource, error) {
	if slices.Contains(inputs, constants.StdinInput) {
		if len(inputs) > 1 {
			return nil, fmt.Errorf("stdin input (-) cannot be combined with other inputs")
		}
		return toktx.Reader(stdin), nil
	}
	if len(inputs) == 1 {
		return toktx.Path(inputs[0]), nil
	}
	return toktx.Paths(inputs), nil
}

// defaultOutput derives the destination from the first input: stdin goes
// to stdout, files get the container's extension.
func defaultOutput(input string, format toktx.OutputFormat) string {
	if input == constants.StdinInput {
		return constants.StdoutOutput
	}
	ext := ".ktx2"
	if format == toktx.KTX {
		ext = ".ktx"
	}
	return strings.TrimSuffix(input, filepath.Ext(input)) + ext
}

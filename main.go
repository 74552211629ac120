package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/saltyorg/ktx/cmd"
	"github.com/saltyorg/ktx/internal/constants"
	"github.com/saltyorg/ktx/internal/errors"
	"github.com/saltyorg/ktx/internal/signals"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// customErrorHandler handles error formatting with proper line break support.
// Unlike the default handler, this respects \n characters in error messages
// and renders each line separately, so config validation problems and toktx
// stderr stay readable.
func customErrorHandler(w io.Writer, styles fang.Styles, err error) {
	fmt.Fprintf(w, "%s\n", styles.ErrorHeader.String())

	errorText := err.Error()
	for line := range strings.SplitSeq(errorText, "\n") {
		if line == "" {
			fmt.Fprintf(w, "\n")
			continue
		}
		// Unset width and transform so fang does not rewrap or recapitalise
		// tool output.
		lineStyle := styles.ErrorText.UnsetTransform().UnsetWidth()
		fmt.Fprintf(w, "%s\n", lineStyle.Render(line))
	}

	if !strings.HasSuffix(errorText, "\n") {
		fmt.Fprintf(w, "\n")
	}
}

// colorProfile maps a KTX_COLOR_PROFILE value to a termenv profile. The
// empty string keeps lipgloss's own detection.
func colorProfile(name string) (termenv.Profile, bool) {
	switch strings.ToLower(name) {
	case "truecolor":
		return termenv.TrueColor, true
	case "ansi256":
		return termenv.ANSI256, true
	case "ansi":
		return termenv.ANSI, true
	case "ascii", "none":
		return termenv.Ascii, true
	}
	return termenv.Ascii, false
}

func main() {
	// Can be overridden with KTX_COLOR_PROFILE: truecolor, ansi256, ansi,
	// ascii. Unlike most CLIs we do not force colour, since stdout often
	// carries texture data.
	if name := os.Getenv(constants.ColorProfileEnv); name != "" {
		if profile, ok := colorProfile(name); ok {
			lipgloss.SetColorProfile(profile)
		} else {
			fmt.Fprintf(os.Stderr, "ignoring unknown %s %q\n", constants.ColorProfileEnv, name)
		}
	}

	sigManager := signals.GetGlobalManager()
	ctx := sigManager.Context()

	err := fang.Execute(ctx, cmd.GetRootCommand(),
		fang.WithErrorHandler(customErrorHandler),
	)
	sigManager.Stop()

	// Exit with appropriate code if shutdown was triggered
	if sigManager.IsShutdown() {
		os.Exit(sigManager.ExitCode())
	}
	os.Exit(errors.ExitCode(err))
}

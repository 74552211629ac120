package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/saltyorg/ktx/internal/constants"
	"github.com/saltyorg/ktx/internal/styles"
	"github.com/saltyorg/ktx/toktx"

	"github.com/charmbracelet/lipgloss"
	"github.com/goccy/go-json"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	argsProfile string
	argsOutput  string
	argsSets    []string
	argsJSON    bool
)

// stdinPlaceholder stands in for the temporary file stdin would be copied
// to, which args never creates.
const stdinPlaceholder = "<stdin>"

var argsCmd = &cobra.Command{
	Use:   "args [flags] <input...>",
	Short: "Print the toktx command line a conversion would run",
	Long: `Print the toktx command line a conversion would run, without running it.

The output is shell-quoted and can be pasted into a terminal, or printed as a
JSON array with --json.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, inputs []string) error {
		argv, err := dryRunArgv(inputs)
		if err != nil {
			return err
		}
		return printArgv(cmd.OutOrStdout(), argv, len(inputs)+1)
	},
}

func init() {
	rootCmd.AddCommand(argsCmd)
	argsCmd.Flags().StringVarP(&argsProfile, "profile", "p", "", "profile to use")
	argsCmd.Flags().StringVarP(&argsOutput, "output", "o", "", "output file, or - for stdout")
	argsCmd.Flags().StringArrayVarP(&argsSets, "set", "s", nil, "override a profile option")
	argsCmd.Flags().BoolVar(&argsJSON, "json", false, "print the arguments as a JSON array")
}

func dryRunArgv(inputs []string) ([]string, error) {
	f, err := loadConfig()
	if err != nil {
		return nil, err
	}
	profile, err := resolveProfile(f, argsProfile, argsSets)
	if err != nil {
		return nil, err
	}

	dest := argsOutput
	if dest == "" {
		dest = defaultOutput(inputs[0], profile.OutputFormat)
	}
	shown := make([]string, len(inputs))
	for i, in := range inputs {
		shown[i] = in
		if in == constants.StdinInput {
			shown[i] = stdinPlaceholder
		}
	}
	return profile.Convert(toktx.Paths(shown)).Argv(dest)
}

// printArgv writes argv, the last positional tokens being the destination
// and inputs. On a terminal tokens are coloured and wrapped to its width.
func printArgv(w io.Writer, argv []string, positional int) error {
	if argsJSON {
		data, err := json.Marshal(argv)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "%s\n", data)
		return err
	}

	styled := isTerminal(w)
	width := 0
	if f, ok := w.(*os.File); ok && styled {
		if cols, _, err := term.GetSize(int(f.Fd())); err == nil {
			width = cols
		}
	}

	tokens := make([]string, len(argv))
	for i, arg := range argv {
		tokens[i] = shellQuote(arg)
	}
	for _, line := range wrapTokens(tokens, width) {
		parts := make([]string, len(line.tokens))
		for j, tok := range line.tokens {
			if styled {
				tok = argStyle(line.first+j, tok, len(argv)-positional).Render(tok)
			}
			parts[j] = tok
		}
		text := strings.Join(parts, " ")
		if line.first > 0 {
			text = "    " + text
		}
		if line.more {
			text += " \\"
		}
		if _, err := fmt.Fprintln(w, text); err != nil {
			return err
		}
	}
	return nil
}

func argStyle(i int, token string, firstPositional int) lipgloss.Style {
	switch {
	case i == 0:
		return styles.ProgramStyle
	case i >= firstPositional:
		return styles.PathStyle
	case strings.HasPrefix(token, "--"):
		return styles.FlagStyle
	default:
		return styles.ValueStyle
	}
}

type argLine struct {
	first  int
	tokens []string
	more   bool
}

// wrapTokens packs tokens into lines no wider than width display columns,
// leaving room for the indent and trailing backslash. A flag is kept on the
// same line as its value. Width zero disables wrapping.
func wrapTokens(tokens []string, width int) []argLine {
	if width <= 0 || len(tokens) == 0 {
		return []argLine{{tokens: tokens}}
	}

	var lines []argLine
	cur := argLine{}
	used := 0
	for i := 0; i < len(tokens); {
		group := tokens[i : i+1]
		if strings.HasPrefix(tokens[i], "--") && i+1 < len(tokens) && !strings.HasPrefix(tokens[i+1], "--") {
			group = tokens[i : i+2]
		}
		w := runewidth.StringWidth(strings.Join(group, " "))
		indent := 0
		if len(lines) > 0 {
			indent = 4
		}
		if len(cur.tokens) > 0 && indent+used+1+w+2 > width {
			cur.more = true
			lines = append(lines, cur)
			cur = argLine{first: i}
			used = 0
		}
		if used > 0 {
			used++
		}
		used += w
		cur.tokens = append(cur.tokens, group...)
		i += len(group)
	}
	return append(lines, cur)
}

// shellQuote quotes s for a POSIX shell when it contains anything beyond a
// conservative safe set.
func shellQuote(s string) string {
	if s == "" {
		return "''"
	}
	safe := true
	for _, r := range s {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || strings.ContainsRune("-_./:=,+@%", r)) {
			safe = false
			break
		}
	}
	if safe {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

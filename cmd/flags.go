package cmd

import (
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/saltyorg/ktx/args"
	"github.com/saltyorg/ktx/internal/styles"
	"github.com/saltyorg/ktx/internal/table"
	"github.com/saltyorg/ktx/toktx"
	"github.com/saltyorg/ktx/toktx/enc"

	"github.com/spf13/cobra"
)

var flagsCmd = &cobra.Command{
	Use:   "flags",
	Short: "List the toktx flags a profile can set",
	Long: `List every toktx flag a profile can set and the kind of value it takes.

A profile key is shown where it differs from the flag name. Encoder flags are
set inside the encode mapping next to the encoding key, e.g.

  encode: {encoding: uastc, uastc_quality: 2}`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		printFlags(cmd.OutOrStdout())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(flagsCmd)
}

type flagRow struct {
	flag, key, kind string
}

// profileFlagRows lists the ToKtx flags in the order toktx receives them.
func profileFlagRows() []flagRow {
	var rows []flagRow
	for _, f := range toktx.Flags() {
		row := flagRow{args.Flag(f.Name), yamlKey(reflect.TypeFor[toktx.ToKtx](), f.GoName), f.Kind}
		switch f.Name {
		case "encode":
			row.key = "encode.encoding"
		case "output_format":
			// KTX is toktx's default, so only KTX2 is passed.
			row.flag = "--t2"
		}
		if row.key == f.Name {
			row.key = ""
		}
		rows = append(rows, row)
	}
	return rows
}

// encoderFlagRows lists the options of e. Their keys always match the flag
// names.
func encoderFlagRows(e enc.Encoding) []flagRow {
	var rows []flagRow
	for _, f := range args.Fields(reflect.TypeOf(e)) {
		rows = append(rows, flagRow{flag: args.Flag(f.Name), kind: f.Kind})
	}
	return rows
}

func yamlKey(t reflect.Type, goName string) string {
	sf, ok := t.FieldByName(goName)
	if !ok {
		return goName
	}
	name, _, _ := strings.Cut(sf.Tag.Get("yaml"), ",")
	return name
}

func printFlags(w io.Writer) {
	styled := isTerminal(w)
	heading := func(s string) {
		if styled {
			s = styles.HeaderStyle.Render(s)
		}
		fmt.Fprintln(w, s)
	}

	heading("Profile options")
	t := table.New(w, styled)
	t.SetHeaders("Flag", "Profile key", "Value")
	t.SetAlignment(table.AlignLeft, table.AlignLeft, table.AlignLeft)
	for _, r := range profileFlagRows() {
		t.AddRow(r.flag, r.key, r.kind)
	}
	t.Render()

	for _, e := range []enc.Encoding{enc.ASTC(), enc.ETC1S(), enc.UASTC()} {
		fmt.Fprintln(w)
		heading("encoding: " + e.Name())
		t := table.New(w, styled)
		t.SetHeaders("Flag", "Value")
		t.SetAlignment(table.AlignLeft, table.AlignLeft)
		for _, r := range encoderFlagRows(e) {
			t.AddRow(r.flag, r.kind)
		}
		t.Render()
	}
}

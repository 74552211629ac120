// Package enc holds the texture encodings toktx can apply and their option
// groups.
package enc

import (
	"github.com/saltyorg/ktx/args"
)

// Encoding selects one of the three toktx encoders. Exactly one of
// ASTCOptions, ETC1SOptions or UASTCOptions is active at a time; a nil
// Encoding emits no encoding flags at all.
type Encoding interface {
	args.Arg

	// Name is the value passed to --encode.
	Name() string

	encoding()
}

// Names of the encodings as accepted by --encode.
const (
	NameASTC  = "astc"
	NameETC1S = "etc1s"
	NameUASTC = "uastc"
)

// ASTC returns an ASTC encoding with default options.
func ASTC() Encoding { return ASTCOptions{} }

// ETC1S returns an ETC1S / BasisLZ encoding with default options.
func ETC1S() Encoding { return ETC1SOptions{} }

// UASTC returns a UASTC encoding with default options.
func UASTC() Encoding { return UASTCOptions{} }

// addEncoding emits `--<name> <encoding>` followed by the option tokens.
func addEncoding(name string, e Encoding, c args.Consumer) bool {
	c.AddArg(args.Flag(name))
	c.AddArg(e.Name())
	e.AddUnnamedTo(c)
	return true
}

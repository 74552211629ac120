// Package args renders typed option values into ordered command-line tokens.
//
// A value takes part in rendering by implementing Arg, or by being a bool,
// string, integer or float kind that the struct walker knows how to format.
// Structs are rendered through a declarative table built from `arg` struct
// tags:
//
//	type Options struct {
//	    Mipmap bool    `arg:"genmipmap"`
//	    Levels *uint32 `arg:"levels"`
//	    Path   string  `arg:"-"` // never rendered
//	}
//
// Fields render in declaration order, so two equal values always produce
// byte-identical token sequences.
package args

// Consumer accumulates argument tokens in insertion order.
type Consumer interface {
	AddArg(arg string)
}

// Arg is a value that can append zero or more tokens to a Consumer.
type Arg interface {
	// AddTo renders the value as a named argument, usually a flag token
	// followed by value tokens. It reports whether anything was emitted.
	AddTo(name string, c Consumer) bool

	// AddUnnamedTo renders only the value tokens.
	AddUnnamedTo(c Consumer) bool
}

// List is a Consumer backed by a string slice.
type List []string

// AddArg appends arg to the list.
func (l *List) AddArg(arg string) {
	*l = append(*l, arg)
}

// Flag returns the flag token for name.
func Flag(name string) string {
	return "--" + name
}

// AddNamed emits the flag token for name followed by a's unnamed tokens.
func AddNamed(name string, a Arg, c Consumer) bool {
	c.AddArg(Flag(name))
	a.AddUnnamedTo(c)
	return true
}

// Render collects the tokens produced by a struct value (or pointer to one)
// into a fresh slice.
func Render(v any) []string {
	var l List
	AddFieldsTo(v, &l)
	return l
}

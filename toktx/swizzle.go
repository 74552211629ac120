package toktx

import (
	"fmt"

	"github.com/saltyorg/ktx/args"
)

// SwizzleChar is one component selector: r, g, b, a, 0 or 1.
type SwizzleChar byte

const (
	SwizzleR    SwizzleChar = 'r'
	SwizzleG    SwizzleChar = 'g'
	SwizzleB    SwizzleChar = 'b'
	SwizzleA    SwizzleChar = 'a'
	SwizzleZero SwizzleChar = '0'
	SwizzleOne  SwizzleChar = '1'
)

// Valid reports whether c is one of the six selector characters.
func (c SwizzleChar) Valid() bool {
	switch c {
	case SwizzleR, SwizzleG, SwizzleB, SwizzleA, SwizzleZero, SwizzleOne:
		return true
	}
	return false
}

// Swizzle is a component mapping matching ^[rgba01]{4}$.
type Swizzle [4]SwizzleChar

// InvalidSwizzleError is returned by ParseSwizzle. Index is the position of
// the first bad character, or -1 when the text is not four bytes long.
type InvalidSwizzleError struct {
	Value string
	Index int
}

func (e *InvalidSwizzleError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("invalid swizzle %q: must be exactly 4 characters", e.Value)
	}
	return fmt.Sprintf("invalid swizzle %q: character %d must be one of r, g, b, a, 0, 1", e.Value, e.Index)
}

// ParseSwizzle parses a swizzle such as "rgb1".
func ParseSwizzle(s string) (Swizzle, error) {
	var sw Swizzle
	if len(s) != len(sw) {
		return sw, &InvalidSwizzleError{Value: s, Index: -1}
	}
	for i := range len(sw) {
		c := SwizzleChar(s[i])
		if !c.Valid() {
			return Swizzle{}, &InvalidSwizzleError{Value: s, Index: i}
		}
		sw[i] = c
	}
	return sw, nil
}

// MustParseSwizzle is like ParseSwizzle but panics on error.
func MustParseSwizzle(s string) Swizzle {
	sw, err := ParseSwizzle(s)
	if err != nil {
		panic(err)
	}
	return sw
}

func (s Swizzle) String() string {
	return string([]byte{byte(s[0]), byte(s[1]), byte(s[2]), byte(s[3])})
}

func (s Swizzle) AddTo(name string, c args.Consumer) bool { return args.AddNamed(name, s, c) }

func (s Swizzle) AddUnnamedTo(c args.Consumer) bool {
	c.AddArg(s.String())
	return true
}

func (s Swizzle) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *Swizzle) UnmarshalText(text []byte) error {
	return unmarshalEnum(s, text, ParseSwizzle)
}

package args

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Unsigned is the set of component types accepted by XY and XYZ.
type Unsigned interface {
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// XY is a 2D vector rendered as a single `XxY` token.
type XY[T Unsigned] struct {
	X, Y T
}

// XYZ is a 3D vector rendered as a single `XxYxZ` token.
type XYZ[T Unsigned] struct {
	X, Y, Z T
}

func (v XY[T]) String() string {
	return fmt.Sprintf("%dx%d", v.X, v.Y)
}

func (v XYZ[T]) String() string {
	return fmt.Sprintf("%dx%dx%d", v.X, v.Y, v.Z)
}

func (v XY[T]) AddTo(name string, c Consumer) bool { return AddNamed(name, v, c) }

func (v XY[T]) AddUnnamedTo(c Consumer) bool {
	c.AddArg(v.String())
	return true
}

func (v XYZ[T]) AddTo(name string, c Consumer) bool { return AddNamed(name, v, c) }

func (v XYZ[T]) AddUnnamedTo(c Consumer) bool {
	c.AddArg(v.String())
	return true
}

func (v XY[T]) MarshalText() ([]byte, error) { return []byte(v.String()), nil }

func (v *XY[T]) UnmarshalText(text []byte) error {
	parsed, err := ParseXY[T](string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

func (v XYZ[T]) MarshalText() ([]byte, error) { return []byte(v.String()), nil }

func (v *XYZ[T]) UnmarshalText(text []byte) error {
	parsed, err := ParseXYZ[T](string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// ParseXY parses a `WxH` token.
func ParseXY[T Unsigned](s string) (XY[T], error) {
	parts, err := splitComponents[T](s, 2)
	if err != nil {
		return XY[T]{}, err
	}
	return XY[T]{X: parts[0], Y: parts[1]}, nil
}

// ParseXYZ parses a `WxHxD` token.
func ParseXYZ[T Unsigned](s string) (XYZ[T], error) {
	parts, err := splitComponents[T](s, 3)
	if err != nil {
		return XYZ[T]{}, err
	}
	return XYZ[T]{X: parts[0], Y: parts[1], Z: parts[2]}, nil
}

func splitComponents[T Unsigned](s string, n int) ([]T, error) {
	fields := strings.Split(s, "x")
	if len(fields) != n {
		return nil, &InvalidValueError{Kind: fmt.Sprintf("%d-component vector", n), Value: s}
	}
	bits := reflect.TypeFor[T]().Bits()
	out := make([]T, n)
	for i, f := range fields {
		u, err := strconv.ParseUint(f, 10, bits)
		if err != nil {
			return nil, &InvalidValueError{Kind: fmt.Sprintf("%d-component vector", n), Value: s}
		}
		out[i] = T(u)
	}
	return out, nil
}

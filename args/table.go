package args

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"
)

// Field describes one rendered struct field.
type Field struct {
	// GoName is the struct field name.
	GoName string
	// Name is the flag name without the leading dashes.
	Name string
	// Kind is a short description of the field's value type.
	Kind string

	index []int
}

var (
	argType = reflect.TypeFor[Arg]()
	tables  sync.Map // reflect.Type -> []Field
)

// Fields returns the flag table for the struct type t (or pointer to struct).
// The table is built once per type and cached.
//
// Every exported field must carry an `arg` tag. A tag of "-" excludes the
// field from rendering.
func Fields(t reflect.Type) []Field {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if cached, ok := tables.Load(t); ok {
		return cached.([]Field)
	}

	if t.Kind() != reflect.Struct {
		panic(fmt.Sprintf("args: %s is not a struct", t))
	}

	fields := make([]Field, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		tag, ok := sf.Tag.Lookup("arg")
		if !ok {
			panic(fmt.Sprintf("args: field %s.%s has no arg tag", t.Name(), sf.Name))
		}
		name, _, _ := strings.Cut(tag, ",")
		if name == "-" {
			continue
		}
		fields = append(fields, Field{
			GoName: sf.Name,
			Name:   name,
			Kind:   describe(sf.Type),
			index:  sf.Index,
		})
	}

	actual, _ := tables.LoadOrStore(t, fields)
	return actual.([]Field)
}

// AddFieldsTo renders every present field of the struct v, in declaration
// order, as named arguments. It reports whether any token was emitted.
func AddFieldsTo(v any, c Consumer) bool {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return false
		}
		rv = rv.Elem()
	}

	emitted := false
	for _, f := range Fields(rv.Type()) {
		if addValue(f.Name, rv.FieldByIndex(f.index), c) {
			emitted = true
		}
	}
	return emitted
}

func addValue(name string, v reflect.Value, c Consumer) bool {
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface:
		if v.IsNil() {
			return false
		}
	}

	if v.Type().Implements(argType) {
		return v.Interface().(Arg).AddTo(name, c)
	}

	switch v.Kind() {
	case reflect.Pointer, reflect.Interface:
		return addValue(name, v.Elem(), c)
	case reflect.Bool:
		if !v.Bool() {
			return false
		}
		c.AddArg(Flag(name))
		return true
	case reflect.String:
		if v.String() == "" {
			return false
		}
		c.AddArg(Flag(name))
		c.AddArg(v.String())
		return true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		c.AddArg(Flag(name))
		c.AddArg(strconv.FormatInt(v.Int(), 10))
		return true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		c.AddArg(Flag(name))
		c.AddArg(strconv.FormatUint(v.Uint(), 10))
		return true
	case reflect.Float32, reflect.Float64:
		c.AddArg(Flag(name))
		c.AddArg(FormatFloat(v.Float(), v.Type().Bits()))
		return true
	default:
		panic(fmt.Sprintf("args: cannot render --%s of type %s", name, v.Type()))
	}
}

// FormatFloat renders f with the fewest digits that round-trip at the given
// bit size, never using exponent notation.
func FormatFloat(f float64, bits int) string {
	return strconv.FormatFloat(f, 'f', -1, bits)
}

func describe(t reflect.Type) string {
	optional := false
	for t.Kind() == reflect.Pointer {
		optional = true
		t = t.Elem()
	}

	var kind string
	switch {
	case t.Kind() == reflect.Bool:
		return "flag"
	case t.Kind() == reflect.Interface:
		kind = t.Name()
	case t.Kind() == reflect.String && t.Name() != "string":
		kind = "enum " + t.Name()
	case t.PkgPath() != "":
		kind = t.Name()
	default:
		kind = t.Kind().String()
	}
	if optional {
		return kind + "?"
	}
	return kind
}

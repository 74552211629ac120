package enc

import (
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// UnknownKeyError reports a key that no option accepts. Decoders outside
// this package see it through errors.As even when it comes from a nested
// mapping.
type UnknownKeyError struct {
	Key string
	// In names the mapping the key appeared in.
	In string
	// Line is the YAML line of the key, or 0 for JSON.
	Line int
	// Valid lists the keys the mapping accepts.
	Valid []string
}

func (e *UnknownKeyError) Error() string {
	msg := fmt.Sprintf("unknown key %q in %s", e.Key, e.In)
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, msg)
	}
	return msg
}

// Keys returns the serialized names of t's fields under the given struct
// tag ("yaml" or "json"), in declaration order. Inlined embedded structs
// contribute their own keys.
func Keys(t reflect.Type, tag string) []string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	var keys []string
	for i := range t.NumField() {
		sf := t.Field(i)
		name, opts, _ := strings.Cut(sf.Tag.Get(tag), ",")
		switch {
		case sf.Anonymous && (name == "" || strings.Contains(opts, "inline")):
			keys = append(keys, Keys(sf.Type, tag)...)
		case !sf.IsExported() || name == "-":
		case name == "":
			keys = append(keys, sf.Name)
		default:
			keys = append(keys, name)
		}
	}
	return keys
}

// CheckYAMLKeys returns an *UnknownKeyError for the first key of the
// mapping node that is not in valid. Other node kinds are left for Decode
// to reject.
func CheckYAMLKeys(node *yaml.Node, in string, valid []string) error {
	if node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i]
		if key.Tag == "!!merge" || slices.Contains(valid, key.Value) {
			continue
		}
		return &UnknownKeyError{Key: key.Value, In: in, Line: key.Line, Valid: valid}
	}
	return nil
}

// CheckJSONKeys is CheckYAMLKeys for a JSON object. Keys are checked in
// sorted order so the reported key does not depend on map iteration.
func CheckJSONKeys(data []byte, in string, valid []string) error {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil
	}
	for _, key := range slices.Sorted(maps.Keys(obj)) {
		if !slices.Contains(valid, key) {
			return &UnknownKeyError{Key: key, In: in, Valid: valid}
		}
	}
	return nil
}

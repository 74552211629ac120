package config

import (
	"fmt"
	"reflect"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/saltyorg/ktx/toktx"
)

// ProfileKeys lists the top-level keys a profile may contain, in the order
// toktx receives them.
func ProfileKeys() []string {
	t := reflect.TypeFor[toktx.ToKtx]()
	keys := make([]string, 0, t.NumField()+1)
	for i := range t.NumField() {
		name := strings.Split(t.Field(i).Tag.Get("yaml"), ",")[0]
		switch name {
		case "":
		case "-":
			if t.Field(i).Tag.Get("arg") == "encode" {
				keys = append(keys, "encode")
			}
		default:
			keys = append(keys, name)
		}
	}
	return keys
}

// ApplyOverrides returns a copy of base with each "key=value" assignment
// applied. Values are YAML scalars, so numbers and booleans need no
// quoting; "encode.key=value" sets an encoding option and "encode=name"
// selects the encoding.
func ApplyOverrides(base *toktx.ToKtx, sets []string) (*toktx.ToKtx, error) {
	if len(sets) == 0 {
		cp := *base
		return &cp, nil
	}

	data, err := yaml.Marshal(base)
	if err != nil {
		return nil, err
	}
	doc := map[string]any{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	keys := ProfileKeys()
	for _, set := range sets {
		key, raw, ok := strings.Cut(set, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid override %q: expected key=value", set)
		}
		var value any
		if err := yaml.Unmarshal([]byte(raw), &value); err != nil {
			return nil, fmt.Errorf("invalid override %q: %w", set, err)
		}

		top, sub, nested := strings.Cut(key, ".")
		if !slices.Contains(keys, top) {
			return nil, fmt.Errorf("unknown profile key %q%s", top, didYouMean(top, keys))
		}
		switch {
		case top == "encode" && !nested:
			doc["encode"] = map[string]any{"encoding": raw}
		case nested && top == "encode":
			enc, _ := doc["encode"].(map[string]any)
			if enc == nil {
				return nil, fmt.Errorf("override %q: select an encoding first with encode=<name>", set)
			}
			enc[sub] = value
		case nested:
			return nil, fmt.Errorf("override %q: %s has no nested keys", set, top)
		default:
			doc[key] = value
		}
	}

	out, err := yaml.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var result toktx.ToKtx
	if err := yaml.Unmarshal(out, &result); err != nil {
		return nil, fmt.Errorf("invalid override: %w%s", err, unknownKeyHint(err))
	}
	return &result, nil
}

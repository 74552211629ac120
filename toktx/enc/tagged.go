package enc

import (
	"bytes"
	"fmt"
	"reflect"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// TagKey is the key that names the encoding in serialized form.
const TagKey = "encoding"

// Tagged wraps an Encoding for serialization. The encoding name is stored
// under TagKey next to the variant's own option keys:
//
//	encoding: uastc
//	uastc_quality: 0
type Tagged struct {
	Encoding
}

type tagProbe struct {
	Encoding string `yaml:"encoding" json:"encoding"`
}

// newByName returns a pointer to the zero options struct for name.
func newByName(name string) (any, error) {
	switch name {
	case NameASTC:
		return &ASTCOptions{}, nil
	case NameETC1S:
		return &ETC1SOptions{}, nil
	case NameUASTC:
		return &UASTCOptions{}, nil
	case "":
		return nil, fmt.Errorf("encoding: missing %q key", TagKey)
	}
	return nil, fmt.Errorf("encoding: unknown variant %q (valid: %s, %s, %s)", name, NameASTC, NameETC1S, NameUASTC)
}

// optionKeys lists the keys valid next to TagKey for the options struct
// opts points to.
func optionKeys(opts any, tag string) []string {
	return append([]string{TagKey}, Keys(reflect.TypeOf(opts), tag)...)
}

func deref(v any) Encoding {
	switch o := v.(type) {
	case *ASTCOptions:
		return *o
	case *ETC1SOptions:
		return *o
	case *UASTCOptions:
		return *o
	}
	return nil
}

func (t Tagged) MarshalYAML() (any, error) {
	if t.Encoding == nil {
		return nil, nil
	}
	var node yaml.Node
	if err := node.Encode(t.Encoding); err != nil {
		return nil, err
	}
	tag := []*yaml.Node{
		{Kind: yaml.ScalarNode, Tag: "!!str", Value: TagKey},
		{Kind: yaml.ScalarNode, Tag: "!!str", Value: t.Name()},
	}
	node.Content = append(tag, node.Content...)
	node.Style = 0
	return &node, nil
}

func (t *Tagged) UnmarshalYAML(node *yaml.Node) error {
	var probe tagProbe
	if err := node.Decode(&probe); err != nil {
		return err
	}
	opts, err := newByName(probe.Encoding)
	if err != nil {
		return err
	}
	if err := CheckYAMLKeys(node, probe.Encoding+" options", optionKeys(opts, "yaml")); err != nil {
		return err
	}
	if err := node.Decode(opts); err != nil {
		return err
	}
	t.Encoding = deref(opts)
	return nil
}

func (t Tagged) MarshalJSON() ([]byte, error) {
	if t.Encoding == nil {
		return []byte("null"), nil
	}
	body, err := json.Marshal(t.Encoding)
	if err != nil {
		return nil, err
	}
	name, err := json.Marshal(t.Name())
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteString(`{"` + TagKey + `":`)
	buf.Write(name)
	if rest := bytes.TrimSpace(body[1:]); len(rest) > 1 {
		buf.WriteByte(',')
		buf.Write(rest)
	} else {
		buf.WriteByte('}')
	}
	return buf.Bytes(), nil
}

func (t *Tagged) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		t.Encoding = nil
		return nil
	}
	var probe tagProbe
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}
	opts, err := newByName(probe.Encoding)
	if err != nil {
		return err
	}
	if err := CheckJSONKeys(data, probe.Encoding+" options", optionKeys(opts, "json")); err != nil {
		return err
	}
	if err := json.Unmarshal(data, opts); err != nil {
		return err
	}
	t.Encoding = deref(opts)
	return nil
}

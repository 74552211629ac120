package toktx

import (
	"reflect"

	"github.com/goccy/go-json"
	"github.com/saltyorg/ktx/toktx/enc"
	"gopkg.in/yaml.v3"
)

// toKtxFields has ToKtx's fields and tags but none of its methods, so it can
// be inlined without recursing into the custom marshalers below.
type toKtxFields ToKtx

// toKtxDoc is the serialized shape of ToKtx: the plain fields plus the
// encoding under "encode", tagged by enc.TagKey.
type toKtxDoc struct {
	toKtxFields `yaml:",inline"`

	Encode *enc.Tagged `yaml:"encode,omitempty" json:"encode,omitempty"`
}

// Unknown keys are rejected rather than dropped, since a misspelled option
// would silently change the texture.
var (
	yamlKeys = enc.Keys(reflect.TypeFor[toKtxDoc](), "yaml")
	jsonKeys = enc.Keys(reflect.TypeFor[toKtxDoc](), "json")
)

func (t *ToKtx) doc() toKtxDoc {
	d := toKtxDoc{toKtxFields: toKtxFields(*t)}
	if t.Encoding != nil {
		d.Encode = &enc.Tagged{Encoding: t.Encoding}
	}
	return d
}

func (t *ToKtx) fromDoc(d toKtxDoc) {
	*t = ToKtx(d.toKtxFields)
	if d.Encode != nil {
		t.Encoding = d.Encode.Encoding
	}
}

func (t ToKtx) MarshalYAML() (any, error) {
	return t.doc(), nil
}

func (t *ToKtx) UnmarshalYAML(node *yaml.Node) error {
	if err := enc.CheckYAMLKeys(node, "profile", yamlKeys); err != nil {
		return err
	}
	var d toKtxDoc
	if err := node.Decode(&d); err != nil {
		return err
	}
	t.fromDoc(d)
	return nil
}

func (t ToKtx) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.doc())
}

func (t *ToKtx) UnmarshalJSON(data []byte) error {
	if err := enc.CheckJSONKeys(data, "profile", jsonKeys); err != nil {
		return err
	}
	var d toKtxDoc
	if err := json.Unmarshal(data, &d); err != nil {
		return err
	}
	t.fromDoc(d)
	return nil
}

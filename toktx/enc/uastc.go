package enc

import (
	"fmt"
	"strconv"

	"github.com/saltyorg/ktx/args"
	"gopkg.in/yaml.v3"
)

// UASTCOptions configures the transcodable UASTC encoder.
type UASTCOptions struct {
	// Quality selects the speed vs. quality tradeoff. Pair it with --zcmp.
	Quality *UASTCQuality `arg:"uastc_quality" yaml:"uastc_quality,omitempty" json:"uastc_quality,omitempty"`

	// RDOLambda enables RDO post-processing with the given lambda,
	// 0.001 to 10.0, default 1.0.
	RDOLambda *float32 `arg:"uastc_rdo_l" yaml:"uastc_rdo_l,omitempty" json:"uastc_rdo_l,omitempty"`

	// RDODictionarySize in bytes, default 4096.
	RDODictionarySize *uint16 `arg:"uastc_rdo_d" yaml:"uastc_rdo_d,omitempty" json:"uastc_rdo_d,omitempty"`

	// RDOBlockErrorScale is the max smooth block error scale, 1.0 to 300.0.
	RDOBlockErrorScale *float32 `arg:"uastc_rdo_b" yaml:"uastc_rdo_b,omitempty" json:"uastc_rdo_b,omitempty"`

	// RDOStdDev is the max smooth block standard deviation, 0.01 to 65536.0.
	RDOStdDev *float32 `arg:"uastc_rdo_s" yaml:"uastc_rdo_s,omitempty" json:"uastc_rdo_s,omitempty"`

	// RDONoFavorSimpler disables favoring simpler UASTC modes in RDO mode.
	RDONoFavorSimpler bool `arg:"uastc_rdo_f" yaml:"uastc_rdo_f,omitempty" json:"uastc_rdo_f,omitempty"`

	// RDONoMultithreading makes RDO deterministic at a small speed cost.
	RDONoMultithreading bool `arg:"uastc_rdo_m" yaml:"uastc_rdo_m,omitempty" json:"uastc_rdo_m,omitempty"`
}

func (UASTCOptions) Name() string { return NameUASTC }
func (UASTCOptions) encoding()    {}

func (o UASTCOptions) AddTo(name string, c args.Consumer) bool { return addEncoding(name, o, c) }

func (o UASTCOptions) AddUnnamedTo(c args.Consumer) bool {
	args.AddFieldsTo(o, c)
	return true
}

// UASTCQuality is the --uastc_quality level.
type UASTCQuality uint8

const (
	UASTCQualityFastest UASTCQuality = iota
	UASTCQualityFaster
	UASTCQualityDefault
	UASTCQualitySlower
	UASTCQualityVerySlow
)

// ErrUASTCQualityRange is returned for numeric levels outside 0..=4.
var ErrUASTCQualityRange = fmt.Errorf("uastc quality: only values 0..=%d are valid", UASTCQualityVerySlow)

// UASTCQualityFromUint8 converts a numeric level to a UASTCQuality.
func UASTCQualityFromUint8(v uint8) (UASTCQuality, error) {
	if v > uint8(UASTCQualityVerySlow) {
		return 0, fmt.Errorf("%w: got %d", ErrUASTCQualityRange, v)
	}
	return UASTCQuality(v), nil
}

// Uint8 returns the numeric level.
func (q UASTCQuality) Uint8() uint8 { return uint8(q) }

func (q UASTCQuality) String() string {
	switch q {
	case UASTCQualityFastest:
		return "fastest"
	case UASTCQualityFaster:
		return "faster"
	case UASTCQualityDefault:
		return "default"
	case UASTCQualitySlower:
		return "slower"
	case UASTCQualityVerySlow:
		return "very slow"
	}
	return "UASTCQuality(" + strconv.Itoa(int(q)) + ")"
}

func (q *UASTCQuality) UnmarshalYAML(node *yaml.Node) error {
	var v uint8
	if err := node.Decode(&v); err != nil {
		return err
	}
	parsed, err := UASTCQualityFromUint8(v)
	if err != nil {
		return err
	}
	*q = parsed
	return nil
}

func (q *UASTCQuality) UnmarshalJSON(data []byte) error {
	v, err := strconv.ParseUint(string(data), 10, 8)
	if err != nil {
		return fmt.Errorf("uastc quality: %w", err)
	}
	parsed, err := UASTCQualityFromUint8(uint8(v))
	if err != nil {
		return err
	}
	*q = parsed
	return nil
}

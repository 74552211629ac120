package enc

import "github.com/saltyorg/ktx/args"

// ETC1SOptions configures ETC1S / BasisLZ supercompression.
type ETC1SOptions struct {
	// CompressionLevel is the speed vs. quality tradeoff, [0,5], default 1.
	CompressionLevel *float32 `arg:"clevel" yaml:"clevel,omitempty" json:"clevel,omitempty"`

	// QualityLevel is [1,255]; lower gives better compression and lower
	// quality. It derives max_endpoints, max_selectors and both RDO
	// thresholds unless those are set explicitly.
	QualityLevel *uint8 `arg:"qlevel" yaml:"qlevel,omitempty" json:"qlevel,omitempty"`

	// MaxEndpoints is the maximum number of color endpoint clusters, [1,16128].
	MaxEndpoints *uint16 `arg:"max_endpoints" yaml:"max_endpoints,omitempty" json:"max_endpoints,omitempty"`

	// EndpointRDOThreshold is the endpoint RDO quality threshold, default 1.25.
	EndpointRDOThreshold *float32 `arg:"endpoint_rdo_threshold" yaml:"endpoint_rdo_threshold,omitempty" json:"endpoint_rdo_threshold,omitempty"`

	// MaxSelectors is the maximum number of color selector clusters, [1,16128].
	MaxSelectors *uint16 `arg:"max_selectors" yaml:"max_selectors,omitempty" json:"max_selectors,omitempty"`

	// SelectorRDOThreshold is the selector RDO quality threshold, default 1.25.
	SelectorRDOThreshold *float32 `arg:"selector_rdo_threshold" yaml:"selector_rdo_threshold,omitempty" json:"selector_rdo_threshold,omitempty"`

	NoEndpointRDO bool `arg:"no_endpoint_rdo" yaml:"no_endpoint_rdo,omitempty" json:"no_endpoint_rdo,omitempty"`
	NoSelectorRDO bool `arg:"no_selector_rdo" yaml:"no_selector_rdo,omitempty" json:"no_selector_rdo,omitempty"`
}

func (ETC1SOptions) Name() string { return NameETC1S }
func (ETC1SOptions) encoding()    {}

func (o ETC1SOptions) AddTo(name string, c args.Consumer) bool { return addEncoding(name, o, c) }

func (o ETC1SOptions) AddUnnamedTo(c args.Consumer) bool {
	args.AddFieldsTo(o, c)
	return true
}

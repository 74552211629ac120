package toktx

import (
	"github.com/saltyorg/ktx/args"
)

// Primaries is the value of --assign_primaries.
type Primaries string

const (
	PrimariesBT709 Primaries = "bt709"
	PrimariesSRGB  Primaries = "srgb"
	PrimariesNone  Primaries = "none"
)

// ParsePrimaries parses a --assign_primaries value.
func ParsePrimaries(s string) (Primaries, error) {
	return args.ParseEnum("primaries", s, []Primaries{PrimariesBT709, PrimariesSRGB, PrimariesNone})
}

func (p *Primaries) UnmarshalText(text []byte) error {
	return unmarshalEnum(p, text, ParsePrimaries)
}

// WMode controls how pixels near the image boundaries are sampled.
type WMode string

const (
	WModeWrap    WMode = "wrap"
	WModeReflect WMode = "reflect"
	WModeClamp   WMode = "clamp"
)

// ParseWMode parses a --wmode value.
func ParseWMode(s string) (WMode, error) {
	return args.ParseEnum("wmode", s, []WMode{WModeWrap, WModeReflect, WModeClamp})
}

func (m *WMode) UnmarshalText(text []byte) error {
	return unmarshalEnum(m, text, ParseWMode)
}

// TransferFunction is the value of --assign_oetf and --convert_oetf.
type TransferFunction string

const (
	TransferLinear TransferFunction = "linear"
	TransferSRGB   TransferFunction = "srgb"
)

// ParseTransferFunction parses an OETF name.
func ParseTransferFunction(s string) (TransferFunction, error) {
	return args.ParseEnum("transfer function", s, []TransferFunction{TransferLinear, TransferSRGB})
}

func (f *TransferFunction) UnmarshalText(text []byte) error {
	return unmarshalEnum(f, text, ParseTransferFunction)
}

// Filter is the resampling filter used when generating mipmaps.
type Filter string

const (
	FilterBox             Filter = "box"
	FilterTent            Filter = "tent"
	FilterBell            Filter = "bell"
	FilterBSpline         Filter = "b-spline"
	FilterMitchell        Filter = "mitchell"
	FilterLanczos3        Filter = "lanczos3"
	FilterLanczos4        Filter = "lanczos4"
	FilterLanczos6        Filter = "lanczos6"
	FilterLanczos12       Filter = "lanczos12"
	FilterBlackman        Filter = "blackman"
	FilterKaiser          Filter = "kaiser"
	FilterGaussian        Filter = "gaussian"
	FilterCatmullrom      Filter = "catmullrom"
	FilterQuadraticInterp Filter = "quadratic_interp"
	FilterQuadraticApprox Filter = "quadratic_approx"
	FilterQuadraticMix    Filter = "quadratic_mix"
)

// Filters lists every filter toktx accepts.
var Filters = []Filter{
	FilterBox, FilterTent, FilterBell, FilterBSpline, FilterMitchell,
	FilterLanczos3, FilterLanczos4, FilterLanczos6, FilterLanczos12,
	FilterBlackman, FilterKaiser, FilterGaussian, FilterCatmullrom,
	FilterQuadraticInterp, FilterQuadraticApprox, FilterQuadraticMix,
}

// ParseFilter parses a --filter value.
func ParseFilter(s string) (Filter, error) {
	return args.ParseEnum("filter", s, Filters)
}

func (f *Filter) UnmarshalText(text []byte) error {
	return unmarshalEnum(f, text, ParseFilter)
}

// TargetType is the component layout of the created texture.
type TargetType string

const (
	TargetR    TargetType = "R"
	TargetRG   TargetType = "RG"
	TargetRGB  TargetType = "RGB"
	TargetRGBA TargetType = "RGBA"
)

// ParseTargetType parses a --target_type value.
func ParseTargetType(s string) (TargetType, error) {
	return args.ParseEnum("target type", s, []TargetType{TargetR, TargetRG, TargetRGB, TargetRGBA})
}

func (t *TargetType) UnmarshalText(text []byte) error {
	return unmarshalEnum(t, text, ParseTargetType)
}

// OutputFormat selects the container. The zero value is KTX2.
type OutputFormat uint8

const (
	KTX2 OutputFormat = iota
	KTX
)

// ParseOutputFormat parses "ktx2" or "ktx".
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch s {
	case "ktx2":
		return KTX2, nil
	case "ktx":
		return KTX, nil
	}
	return 0, &args.InvalidValueError{Kind: "output format", Value: s, Valid: []string{"ktx2", "ktx"}}
}

func (f OutputFormat) String() string {
	if f == KTX {
		return "ktx"
	}
	return "ktx2"
}

// AddTo ignores name: KTX2 is selected by the bare --t2 flag and KTX is
// toktx's default.
func (f OutputFormat) AddTo(_ string, c args.Consumer) bool {
	return f.AddUnnamedTo(c)
}

func (f OutputFormat) AddUnnamedTo(c args.Consumer) bool {
	if f != KTX2 {
		return false
	}
	c.AddArg("--t2")
	return true
}

func (f OutputFormat) MarshalText() ([]byte, error) { return []byte(f.String()), nil }

func (f *OutputFormat) UnmarshalText(text []byte) error {
	return unmarshalEnum(f, text, ParseOutputFormat)
}

func unmarshalEnum[T any](dst *T, text []byte, parse func(string) (T, error)) error {
	v, err := parse(string(text))
	if err != nil {
		return err
	}
	*dst = v
	return nil
}

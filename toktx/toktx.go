// Package toktx drives the KTX-Software `toktx` command-line tool.
//
// A ToKtx value mirrors toktx's flags. Converting an input renders the value
// into an argument vector of the form
//
//	toktx [options...] <outfile|-> <infile...>
//
// runs the tool, and returns either the bytes it wrote to stdout or nothing
// when it wrote the destination file itself:
//
//	cfg := &toktx.ToKtx{
//	    TwoD:       true,
//	    AssignOETF: toktx.TransferSRGB,
//	    Encoding:   enc.UASTCOptions{Quality: toktx.Ptr(enc.UASTCQualityFastest)},
//	}
//	data, err := cfg.Convert(toktx.Path("albedo.png")).ToMemory(ctx)
//
// Options are passed through without semantic validation. Combinations toktx
// rejects surface as *ExitStatusError carrying its stderr.
package toktx

import (
	"reflect"

	"github.com/saltyorg/ktx/args"
	"github.com/saltyorg/ktx/toktx/enc"
)

const (
	// DefaultProgram is executed when PathToToktx is empty. It is resolved
	// through PATH.
	DefaultProgram = "toktx"

	// Stdout is the destination token that makes toktx write to stdout.
	Stdout = "-"
)

// ToKtx holds every toktx option. The zero value converts to KTX2 with
// toktx's defaults. Fields render in declaration order; see Args.
//
// A ToKtx must not be modified while a conversion using it is being built,
// but may be shared read-only by any number of concurrent conversions.
type ToKtx struct {
	// TwoD creates a 2D texture even when the image height is 1.
	TwoD bool `arg:"2d" yaml:"2d,omitempty" json:"2d,omitempty"`

	// AutoMipmap marks the file to request mipmap generation on load.
	// Mutually exclusive with GenMipmap, Levels and Mipmap.
	AutoMipmap bool `arg:"automipmap" yaml:"automipmap,omitempty" json:"automipmap,omitempty"`

	// Cubemap needs at least six inputs in the order +X, -X, +Y, -Y, +Z, -Z.
	Cubemap bool `arg:"cubemap" yaml:"cubemap,omitempty" json:"cubemap,omitempty"`

	// Depth creates a 3D texture. Not valid with Layers or Cubemap.
	Depth *uint32 `arg:"depth" yaml:"depth,omitempty" json:"depth,omitempty"`

	// GenMipmap generates mipmaps for each input. Filter, FilterScale and
	// WMode only apply when it is set.
	GenMipmap bool `arg:"genmipmap" yaml:"genmipmap,omitempty" json:"genmipmap,omitempty"`

	Filter      Filter   `arg:"filter" yaml:"filter,omitempty" json:"filter,omitempty"`
	FilterScale *float32 `arg:"fscale" yaml:"fscale,omitempty" json:"fscale,omitempty"`
	WMode       WMode    `arg:"wmode" yaml:"wmode,omitempty" json:"wmode,omitempty"`

	// Layers creates an array texture. Not valid with Depth.
	Layers *uint32 `arg:"layers" yaml:"layers,omitempty" json:"layers,omitempty"`

	// Levels limits the mipmap pyramid to this many levels.
	Levels *uint32 `arg:"levels" yaml:"levels,omitempty" json:"levels,omitempty"`

	// Mipmap takes one input per level, base level first.
	Mipmap bool `arg:"mipmap" yaml:"mipmap,omitempty" json:"mipmap,omitempty"`

	NoMetadata bool `arg:"nometadata" yaml:"nometadata,omitempty" json:"nometadata,omitempty"`
	NoWarn     bool `arg:"nowarn" yaml:"nowarn,omitempty" json:"nowarn,omitempty"`

	UpperLeftMapsToS0T0 bool `arg:"upper_left_maps_to_s0t0" yaml:"upper_left_maps_to_s0t0,omitempty" json:"upper_left_maps_to_s0t0,omitempty"`
	LowerLeftMapsToS0T0 bool `arg:"lower_left_maps_to_s0t0" yaml:"lower_left_maps_to_s0t0,omitempty" json:"lower_left_maps_to_s0t0,omitempty"`

	// AssignOETF and AssignPrimaries override whatever the input declares.
	// No color conversion is performed.
	AssignOETF      TransferFunction `arg:"assign_oetf" yaml:"assign_oetf,omitempty" json:"assign_oetf,omitempty"`
	AssignPrimaries Primaries        `arg:"assign_primaries" yaml:"assign_primaries,omitempty" json:"assign_primaries,omitempty"`

	// ConvertOETF converts the input to this transfer function.
	ConvertOETF TransferFunction `arg:"convert_oetf" yaml:"convert_oetf,omitempty" json:"convert_oetf,omitempty"`

	// Swizzle is written as metadata only.
	Swizzle *Swizzle `arg:"swizzle" yaml:"swizzle,omitempty" json:"swizzle,omitempty"`

	TargetType TargetType       `arg:"target_type" yaml:"target_type,omitempty" json:"target_type,omitempty"`
	Resize     *args.XY[uint32] `arg:"resize" yaml:"resize,omitempty" json:"resize,omitempty"`
	Scale      *float32         `arg:"scale" yaml:"scale,omitempty" json:"scale,omitempty"`

	// OutputFormat renders as the bare --t2 flag for KTX2.
	OutputFormat OutputFormat `arg:"output_format" yaml:"output_format,omitempty" json:"output_format,omitempty"`

	// Encoding selects ASTC, ETC1S or UASTC. Nil leaves the data
	// uncompressed.
	Encoding enc.Encoding `arg:"encode" yaml:"-" json:"-"`

	// InputSwizzle rearranges the input components before encoding.
	InputSwizzle *Swizzle `arg:"input_swizzle" yaml:"input_swizzle,omitempty" json:"input_swizzle,omitempty"`

	NormalMode bool `arg:"normal_mode" yaml:"normal_mode,omitempty" json:"normal_mode,omitempty"`
	Normalize  bool `arg:"normalize" yaml:"normalise,omitempty" json:"normalise,omitempty"`
	NoSSE      bool `arg:"no_sse" yaml:"no_sse,omitempty" json:"no_sse,omitempty"`

	// Zcmp supercompresses with Zstandard at level 1..22. Not valid with
	// ETC1S.
	Zcmp *uint8 `arg:"zcmp" yaml:"zcmp,omitempty" json:"zcmp,omitempty"`

	Threads *uint16 `arg:"threads" yaml:"threads,omitempty" json:"threads,omitempty"`

	// PathToToktx overrides DefaultProgram. It is never rendered.
	PathToToktx string `arg:"-" yaml:"path_to_toktx,omitempty" json:"path_to_toktx,omitempty"`
}

// Ptr returns a pointer to v, for filling optional fields.
func Ptr[T any](v T) *T { return &v }

// AddArgsTo appends every set option to c in declaration order.
func (t *ToKtx) AddArgsTo(c args.Consumer) {
	args.AddFieldsTo(t, c)
}

// Args returns the option tokens, excluding the program, destination and
// inputs.
func (t *ToKtx) Args() []string {
	return args.Render(t)
}

// Program returns the executable a conversion will run.
func (t *ToKtx) Program() string {
	if t.PathToToktx != "" {
		return t.PathToToktx
	}
	return DefaultProgram
}

// Flags returns the flag table ToKtx renders from.
func Flags() []args.Field {
	return args.Fields(reflect.TypeFor[ToKtx]())
}

package enc

import (
	"strings"

	"github.com/saltyorg/ktx/args"
)

// ASTCOptions configures the high-quality ASTC encoder.
type ASTCOptions struct {
	// BlockDimension is the block footprint, e.g. 6x6 for 2D or 6x6x6 for 3D.
	// toktx defaults to 6x6.
	BlockDimension *ASTCBlockDimension `arg:"astc_blk_d" yaml:"astc_blk_d,omitempty" json:"astc_blk_d,omitempty"`

	// Mode is LDR unless the input is 16-bit, in which case toktx picks HDR.
	Mode ASTCMode `arg:"astc_mode" yaml:"astc_mode,omitempty" json:"astc_mode,omitempty"`

	// Quality trades compression time for quality, 0 (fastest) to
	// 100 (exhaustive). See the ASTCQuality* presets.
	Quality *uint8 `arg:"astc_quality" yaml:"astc_quality,omitempty" json:"astc_quality,omitempty"`

	// Perceptual optimizes for perceptual error instead of RMS error.
	Perceptual bool `arg:"astc_perceptual" yaml:"astc_perceptual,omitempty" json:"astc_perceptual,omitempty"`
}

// --astc_quality presets.
const (
	ASTCQualityFastest    uint8 = 0
	ASTCQualityFast       uint8 = 10
	ASTCQualityMedium     uint8 = 60
	ASTCQualityThorough   uint8 = 98
	ASTCQualityExhaustive uint8 = 100
)

func (ASTCOptions) Name() string { return NameASTC }
func (ASTCOptions) encoding()    {}

func (o ASTCOptions) AddTo(name string, c args.Consumer) bool { return addEncoding(name, o, c) }

func (o ASTCOptions) AddUnnamedTo(c args.Consumer) bool {
	args.AddFieldsTo(o, c)
	return true
}

// ASTCMode is the ASTC encoding mode.
type ASTCMode string

const (
	ASTCModeLDR ASTCMode = "ldr"
	ASTCModeHDR ASTCMode = "hdr"
)

// ParseASTCMode parses "ldr" or "hdr".
func ParseASTCMode(s string) (ASTCMode, error) {
	return args.ParseEnum("astc mode", s, []ASTCMode{ASTCModeLDR, ASTCModeHDR})
}

func (m *ASTCMode) UnmarshalText(text []byte) error {
	parsed, err := ParseASTCMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// ASTCBlockDimension is a 2D or 3D ASTC block footprint.
type ASTCBlockDimension struct {
	xy    args.XY[uint8]
	xyz   args.XYZ[uint8]
	three bool
}

// Block2D returns a 2D footprint such as 6x6.
func Block2D(x, y uint8) ASTCBlockDimension {
	return ASTCBlockDimension{xy: args.XY[uint8]{X: x, Y: y}}
}

// Block3D returns a 3D footprint such as 5x5x5.
func Block3D(x, y, z uint8) ASTCBlockDimension {
	return ASTCBlockDimension{xyz: args.XYZ[uint8]{X: x, Y: y, Z: z}, three: true}
}

// ParseBlockDimension parses `XxY` or `XxYxZ`.
func ParseBlockDimension(s string) (ASTCBlockDimension, error) {
	if strings.Count(s, "x") == 2 {
		xyz, err := args.ParseXYZ[uint8](s)
		if err != nil {
			return ASTCBlockDimension{}, err
		}
		return ASTCBlockDimension{xyz: xyz, three: true}, nil
	}
	xy, err := args.ParseXY[uint8](s)
	if err != nil {
		return ASTCBlockDimension{}, err
	}
	return ASTCBlockDimension{xy: xy}, nil
}

// Is3D reports whether d is a 3D footprint.
func (d ASTCBlockDimension) Is3D() bool { return d.three }

func (d ASTCBlockDimension) String() string {
	if d.three {
		return d.xyz.String()
	}
	return d.xy.String()
}

func (d ASTCBlockDimension) AddTo(name string, c args.Consumer) bool {
	return args.AddNamed(name, d, c)
}

func (d ASTCBlockDimension) AddUnnamedTo(c args.Consumer) bool {
	c.AddArg(d.String())
	return true
}

func (d ASTCBlockDimension) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

func (d *ASTCBlockDimension) UnmarshalText(text []byte) error {
	parsed, err := ParseBlockDimension(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

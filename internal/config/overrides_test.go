package config

import (
	"slices"
	"strings"
	"testing"

	"github.com/saltyorg/ktx/toktx"
	"github.com/saltyorg/ktx/toktx/enc"
)

func TestApplyOverrides(t *testing.T) {
	base := &toktx.ToKtx{
		TwoD:       true,
		AssignOETF: toktx.TransferSRGB,
		Encoding:   enc.UASTCOptions{Quality: toktx.Ptr(enc.UASTCQualityFastest)},
	}

	tests := []struct {
		name string
		sets []string
		want []string
	}{
		{
			name: "none",
			want: []string{"--2d", "--assign_oetf", "srgb", "--t2", "--encode", "uastc", "--uastc_quality", "0"},
		},
		{
			name: "scalar and bool",
			sets: []string{"scale=0.5", "2d=false", "output_format=ktx"},
			want: []string{"--assign_oetf", "srgb", "--scale", "0.5", "--encode", "uastc", "--uastc_quality", "0"},
		},
		{
			name: "encoding option",
			sets: []string{"encode.uastc_quality=4", "encode.uastc_rdo_l=1.5"},
			want: []string{"--2d", "--assign_oetf", "srgb", "--t2", "--encode", "uastc", "--uastc_quality", "4", "--uastc_rdo_l", "1.5"},
		},
		{
			name: "switch encoding",
			sets: []string{"encode=etc1s", "encode.qlevel=64"},
			want: []string{"--2d", "--assign_oetf", "srgb", "--t2", "--encode", "etc1s", "--qlevel", "64"},
		},
		{
			name: "clear value",
			sets: []string{"assign_oetf="},
			want: []string{"--2d", "--t2", "--encode", "uastc", "--uastc_quality", "0"},
		},
		{
			name: "composite",
			sets: []string{"resize=64x32", "swizzle=bgra"},
			want: []string{"--2d", "--assign_oetf", "srgb", "--swizzle", "bgra", "--resize", "64x32", "--t2", "--encode", "uastc", "--uastc_quality", "0"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ApplyOverrides(base, tt.sets)
			if err != nil {
				t.Fatalf("ApplyOverrides() error: %v", err)
			}
			if args := got.Args(); !slices.Equal(args, tt.want) {
				t.Errorf("args = %q, want %q", args, tt.want)
			}
			if got == base {
				t.Error("base returned instead of a copy")
			}
		})
	}
	if !base.TwoD || base.Scale != nil {
		t.Error("base was modified")
	}
}

func TestApplyOverridesErrors(t *testing.T) {
	tests := []struct {
		name string
		base *toktx.ToKtx
		set  string
		want string
	}{
		{"no equals", &toktx.ToKtx{}, "2d", "expected key=value"},
		{"unknown key", &toktx.ToKtx{}, "scael=1", `Did you mean "scale"?`},
		{"nested non-encode", &toktx.ToKtx{}, "scale.x=1", "has no nested keys"},
		{"encoding option without encoding", &toktx.ToKtx{}, "encode.qlevel=1", "select an encoding first"},
		{"bad value", &toktx.ToKtx{}, "filter=bicubic", "invalid override"},
		{"bad encoding", &toktx.ToKtx{}, "encode=bc7", "invalid override"},
		{"misspelled encoding option", &toktx.ToKtx{Encoding: enc.UASTCOptions{}}, "encode.uastc_qualty=2", `Did you mean "uastc_quality"?`},
		{"bad swizzle", &toktx.ToKtx{}, "swizzle=rgbx", "character 3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ApplyOverrides(tt.base, []string{tt.set})
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("ApplyOverrides(%q) error = %v, want %q", tt.set, err, tt.want)
			}
		})
	}
}

func TestProfileKeys(t *testing.T) {
	keys := ProfileKeys()
	for _, k := range []string{"2d", "normalise", "encode", "path_to_toktx", "threads"} {
		if !slices.Contains(keys, k) {
			t.Errorf("missing key %q in %q", k, keys)
		}
	}
	if slices.Contains(keys, "normalize") {
		t.Error("flag name used instead of serialized key")
	}
}

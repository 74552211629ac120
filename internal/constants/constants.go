package constants

import "github.com/saltyorg/ktx/toktx"

const (
	// DefaultConfigFile is looked up in the working directory when --config
	// is not given.
	DefaultConfigFile = "ktx.yml"
	// DefaultCacheFile holds batch fingerprints, relative to the config file.
	DefaultCacheFile = ".ktx-cache.json"
	// MinToktxVersion is the oldest toktx whose flag set matches ours.
	MinToktxVersion = ">= 4.0.0"
	// DefaultProfile is used by convert and args when --profile is omitted
	// and the config defines a profile with this name.
	DefaultProfile = "default"
	// ColorProfileEnv overrides the terminal colour profile.
	ColorProfileEnv = "KTX_COLOR_PROFILE"
	// ToktxEnv overrides the toktx executable when neither --toktx nor the
	// config file names one.
	ToktxEnv = "KTX_TOKTX"
)

// StdinInput is the CLI spelling of "read the input from standard input".
const StdinInput = "-"

// StdoutOutput is the destination that writes the texture to stdout.
const StdoutOutput = toktx.Stdout

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/saltyorg/ktx/internal/constants"
	"github.com/saltyorg/ktx/internal/logging"
	"github.com/saltyorg/ktx/toktx"
)

var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrProfileNotFound = errors.New("profile not found")
	ErrInvalidConfig   = errors.New("invalid config")
)

// File is a ktx.yml profile file.
type File struct {
	// Toktx overrides the executable for every profile that does not set
	// path_to_toktx itself.
	Toktx string `yaml:"toktx,omitempty" json:"toktx,omitempty"`

	// Cache is the batch fingerprint file, relative to the config file.
	Cache string `yaml:"cache,omitempty" json:"cache,omitempty"`

	Profiles map[string]*toktx.ToKtx `yaml:"profiles,omitempty" json:"profiles,omitempty" validate:"dive,keys,ktx_profile_name,endkeys,required"`

	Jobs []Job `yaml:"jobs,omitempty" json:"jobs,omitempty" validate:"dive"`

	// path is where the file was loaded from; relative job paths resolve
	// against its directory.
	path string
}

// Job is one batch conversion.
type Job struct {
	Name    string   `yaml:"name,omitempty" json:"name,omitempty"`
	Profile string   `yaml:"profile" json:"profile" validate:"required"`
	Input   []string `yaml:"input" json:"input" validate:"required,min=1,dive,required"`
	Output  string   `yaml:"output" json:"output" validate:"required,ktx_output"`
}

// Label names the job in progress output.
func (j Job) Label() string {
	if j.Name != "" {
		return j.Name
	}
	return j.Output
}

// Load reads and validates the file at path. JSON is used for files ending
// in .json, YAML otherwise.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	logging.Debug("Loading config from %s (%d bytes)", path, len(data))

	f, err := Parse(data, strings.EqualFold(filepath.Ext(path), ".json"))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	f.path = path
	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	logging.Debug("Loaded %d profile(s) and %d job(s)", len(f.Profiles), len(f.Jobs))
	return f, nil
}

// LoadOptional is Load, returning an empty File when path does not exist
// and was not explicitly requested.
func LoadOptional(path string, explicit bool) (*File, error) {
	f, err := Load(path)
	if errors.Is(err, ErrConfigNotFound) && !explicit {
		logging.Debug("No config file at %s, using defaults", path)
		return &File{}, nil
	}
	return f, err
}

// Parse decodes a profile file without validating it. Unknown keys are
// rejected at every level.
func Parse(data []byte, isJSON bool) (*File, error) {
	var f File
	if isJSON {
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&f); err != nil {
			return nil, fmt.Errorf("%w: %w%s", ErrInvalidConfig, err, unknownKeyHint(err))
		}
		return &f, nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %w%s", ErrInvalidConfig, err, unknownKeyHint(err))
	}
	return &f, nil
}

// Path returns the file the config was loaded from, if any.
func (f *File) Path() string { return f.path }

// Resolve interprets p relative to the config file's directory. Absolute
// paths and the stdin/stdout marker pass through.
func (f *File) Resolve(p string) string {
	if p == "" || p == constants.StdinInput || filepath.IsAbs(p) || f.path == "" {
		return p
	}
	return filepath.Join(filepath.Dir(f.path), p)
}

// CachePath returns the resolved fingerprint file path.
func (f *File) CachePath() string {
	if f.Cache == "" {
		return f.Resolve(constants.DefaultCacheFile)
	}
	return f.Resolve(f.Cache)
}

// ProfileNames returns the profile names in sorted order.
func (f *File) ProfileNames() []string {
	names := make([]string, 0, len(f.Profiles))
	for name := range f.Profiles {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Profile returns a copy of the named profile with the file-level toktx
// override applied. An empty name selects the "default" profile when it
// exists and an empty configuration otherwise.
func (f *File) Profile(name string) (*toktx.ToKtx, error) {
	explicit := name != ""
	if !explicit {
		name = constants.DefaultProfile
	}
	p, ok := f.Profiles[name]
	if !ok {
		if !explicit {
			return f.withProgram(&toktx.ToKtx{}), nil
		}
		return nil, fmt.Errorf("%w: %q%s", ErrProfileNotFound, name, didYouMean(name, f.ProfileNames()))
	}
	cp := *p
	return f.withProgram(&cp), nil
}

func (f *File) withProgram(t *toktx.ToKtx) *toktx.ToKtx {
	if t.PathToToktx == "" {
		t.PathToToktx = f.Toktx
	}
	if t.PathToToktx == "" {
		t.PathToToktx = os.Getenv(constants.ToktxEnv)
	}
	return t
}

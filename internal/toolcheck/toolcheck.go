// Package toolcheck locates the toktx executable and checks that its version
// understands the flags ktx renders.
package toolcheck

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/saltyorg/ktx/internal/constants"
	"github.com/saltyorg/ktx/internal/executor"
	"github.com/saltyorg/ktx/internal/logging"
)

var ErrNoVersion = errors.New("no version number in output")

var versionRe = regexp.MustCompile(`v?(\d+\.\d+(?:\.\d+)?(?:-[0-9A-Za-z.-]+)?)`)

// Info describes a toktx installation.
type Info struct {
	// Program is the name or path as configured.
	Program string
	// Path is Program resolved through PATH.
	Path string
	// Raw is the first line printed by --version.
	Raw     string
	Version *semver.Version
	// Supported reports whether Version satisfies the minimum version.
	Supported bool
}

// Check resolves program and runs `program --version` on b.
func Check(ctx context.Context, b executor.Backend, program string) (*Info, error) {
	info := &Info{Program: program}

	path, err := exec.LookPath(program)
	if err != nil {
		return info, fmt.Errorf("toktx not found: %w", err)
	}
	info.Path = path
	logging.Debug("Resolved %s to %s", program, path)

	result, err := b.Output(ctx, executor.NewCommand(path, executor.WithArgs("--version")))
	if err != nil {
		return info, result.FormatError(path + " --version")
	}
	// Some builds print the version to stderr.
	out := strings.TrimSpace(string(result.Stdout))
	if out == "" {
		out = strings.TrimSpace(string(result.Stderr))
	}
	info.Raw, _, _ = strings.Cut(out, "\n")
	logging.Trace("%s --version: %q", path, out)

	v, err := ParseVersion(out)
	if err != nil {
		return info, err
	}
	info.Version = v
	info.Supported, err = Satisfies(v, constants.MinToktxVersion)
	return info, err
}

// ParseVersion extracts the first version number from toktx output such as
// "toktx v4.3.2" or "toktx v4.0.0-beta2~3".
func ParseVersion(output string) (*semver.Version, error) {
	m := versionRe.FindStringSubmatch(output)
	if m == nil {
		return nil, fmt.Errorf("%w: %q", ErrNoVersion, output)
	}
	v, err := semver.NewVersion(m[1])
	if err != nil {
		return nil, fmt.Errorf("failed to parse version %q: %w", m[1], err)
	}
	return v, nil
}

// Satisfies checks v against constraint, treating pre-releases as the
// release they precede.
func Satisfies(v *semver.Version, constraint string) (bool, error) {
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return false, fmt.Errorf("invalid version constraint %q: %w", constraint, err)
	}
	if v.Prerelease() != "" {
		release, err := v.SetPrerelease("")
		if err != nil {
			return false, err
		}
		v = &release
	}
	return c.Check(v), nil
}

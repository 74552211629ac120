package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"reflect"
	"regexp"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/go-playground/validator/v10"

	"github.com/saltyorg/ktx/internal/logging"
	"github.com/saltyorg/ktx/toktx"
	"github.com/saltyorg/ktx/toktx/enc"
)

// suggestionThreshold is the largest edit distance still offered as a
// "did you mean" hint.
const suggestionThreshold = 2

var profileNameRe = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.-]*$`)

// newValidator returns a validator that reports yaml key names and knows
// the ktx_* tags.
func newValidator() (*validator.Validate, error) {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.Split(field.Tag.Get("yaml"), ",")[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := validate.RegisterValidation("ktx_output", ktxOutputValidator); err != nil {
		return nil, fmt.Errorf("failed to register ktx_output validator: %w", err)
	}
	if err := validate.RegisterValidation("ktx_profile_name", profileNameValidator); err != nil {
		return nil, fmt.Errorf("failed to register ktx_profile_name validator: %w", err)
	}
	return validate, nil
}

// ktxOutputValidator accepts paths ending in .ktx or .ktx2.
func ktxOutputValidator(fl validator.FieldLevel) bool {
	_, ok := outputFormatFor(fl.Field().String())
	return ok
}

func profileNameValidator(fl validator.FieldLevel) bool {
	return profileNameRe.MatchString(fl.Field().String())
}

func outputFormatFor(path string) (toktx.OutputFormat, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ktx2":
		return toktx.KTX2, true
	case ".ktx":
		return toktx.KTX, true
	}
	return 0, false
}

// Validate checks field constraints and cross references. All problems are
// reported, one per line.
func (f *File) Validate() error {
	validate, err := newValidator()
	if err != nil {
		return err
	}

	var errs []error
	if err := validate.Struct(f); err != nil {
		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) {
			return err
		}
		for _, e := range validationErrors {
			errs = append(errs, describeFieldError(e))
		}
	}
	errs = append(errs, f.checkJobs()...)

	if len(errs) == 0 {
		return nil
	}
	for _, e := range errs {
		logging.Debug("validation: %v", e)
	}
	return fmt.Errorf("%w:\n%w", ErrInvalidConfig, errors.Join(errs...))
}

func describeFieldError(e validator.FieldError) error {
	fieldPath := strings.TrimPrefix(e.Namespace(), "File.")
	switch e.Tag() {
	case "required":
		return fmt.Errorf("field '%s' is required", fieldPath)
	case "min":
		return fmt.Errorf("field '%s' needs at least %s entries", fieldPath, e.Param())
	case "ktx_output":
		return fmt.Errorf("field '%s' must end in .ktx2 or .ktx, got: %v", fieldPath, e.Value())
	case "ktx_profile_name":
		return fmt.Errorf("profile name %q may only contain letters, digits, '.', '_' and '-'", e.Value())
	}
	return fmt.Errorf("field '%s' is invalid: %s", fieldPath, e.Error())
}

func (f *File) checkJobs() []error {
	var errs []error
	names := f.ProfileNames()
	outputs := make(map[string]int, len(f.Jobs))

	for i, job := range f.Jobs {
		if job.Profile != "" {
			p, ok := f.Profiles[job.Profile]
			switch {
			case !ok:
				errs = append(errs, fmt.Errorf("jobs[%d]: %w: %q%s", i, ErrProfileNotFound, job.Profile, didYouMean(job.Profile, names)))
			case p != nil:
				if want, ok := outputFormatFor(job.Output); ok && want != p.OutputFormat {
					errs = append(errs, fmt.Errorf("jobs[%d]: output %s does not match profile %q which writes %s", i, job.Output, job.Profile, p.OutputFormat))
				}
			}
		}
		if job.Output != "" {
			key := filepath.Clean(job.Output)
			if prev, dup := outputs[key]; dup {
				errs = append(errs, fmt.Errorf("jobs[%d]: output %s is also written by jobs[%d]", i, job.Output, prev))
			} else {
				outputs[key] = i
			}
		}
	}
	return errs
}

// Suggest returns the candidate closest to name within a small edit
// distance, or "" if none is close enough.
func Suggest(name string, candidates []string) string {
	best, bestDistance := "", suggestionThreshold+1
	for _, c := range candidates {
		distance := levenshtein.ComputeDistance(name, c)
		logging.Trace("Distance between '%s' and '%s': %d", name, c, distance)
		if distance < bestDistance {
			best, bestDistance = c, distance
		}
	}
	return best
}

func didYouMean(name string, candidates []string) string {
	if s := Suggest(name, candidates); s != "" {
		return fmt.Sprintf(". Did you mean %q?", s)
	}
	return ""
}

// unknownKeyHint suggests a replacement when err carries a misspelled
// profile or encoder option key.
func unknownKeyHint(err error) string {
	var unknown *enc.UnknownKeyError
	if errors.As(err, &unknown) {
		return didYouMean(unknown.Key, unknown.Valid)
	}
	return ""
}

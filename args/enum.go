package args

import (
	"fmt"
	"slices"
	"strings"
)

// InvalidValueError reports text that does not name a known value.
type InvalidValueError struct {
	Kind  string
	Value string
	// Valid lists the accepted spellings, when the set is closed.
	Valid []string
}

func (e *InvalidValueError) Error() string {
	if len(e.Valid) == 0 {
		return fmt.Sprintf("invalid %s %q", e.Kind, e.Value)
	}
	return fmt.Sprintf("invalid %s %q (valid: %s)", e.Kind, e.Value, strings.Join(e.Valid, ", "))
}

// ParseEnum returns the member of valid spelled s.
func ParseEnum[T ~string](kind, s string, valid []T) (T, error) {
	if slices.Contains(valid, T(s)) {
		return T(s), nil
	}
	names := make([]string, len(valid))
	for i, v := range valid {
		names[i] = string(v)
	}
	return "", &InvalidValueError{Kind: kind, Value: s, Valid: names}
}

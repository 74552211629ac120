package logging

import (
	"bytes"
	"testing"
)

func TestLevels(t *testing.T) {
	tests := []struct {
		name      string
		verbosity int
		want      string
	}{
		{"quiet", 0, ""},
		{"debug", 1, "DEBUG: loaded 2\n"},
		{"trace", 2, "DEBUG: loaded 2\nTRACE: argv [a]\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			prev := SetOutput(&buf)
			defer SetOutput(prev)
			SetVerbosity(tt.verbosity)
			defer SetVerbosity(0)

			Debug("loaded %d", 2)
			Trace("argv %v", []string{"a"})

			if got := buf.String(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestVerbosity(t *testing.T) {
	SetVerbosity(3)
	defer SetVerbosity(0)
	if Verbosity() != 3 {
		t.Errorf("Verbosity() = %d, want 3", Verbosity())
	}
}

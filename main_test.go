package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/fang"
	"github.com/muesli/termenv"

	"github.com/saltyorg/ktx/internal/signals"
)

func TestColorProfile(t *testing.T) {
	tests := []struct {
		name   string
		want   termenv.Profile
		wantOK bool
	}{
		{"truecolor", termenv.TrueColor, true},
		{"ANSI256", termenv.ANSI256, true},
		{"ansi", termenv.ANSI, true},
		{"ascii", termenv.Ascii, true},
		{"none", termenv.Ascii, true},
		{"sepia", termenv.Ascii, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := colorProfile(tt.name)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("colorProfile(%q) = %v, %v, want %v, %v", tt.name, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestCustomErrorHandlerKeepsLines(t *testing.T) {
	var buf bytes.Buffer
	err := errors.New("ktx.yml: invalid config:\njobs[0].profile: unknown profile \"albdo\"\n\njobs[1].output: required")
	customErrorHandler(&buf, fang.Styles{}, err)

	out := buf.String()
	for _, want := range []string{"invalid config:", "unknown profile \"albdo\"", "jobs[1].output: required"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if !strings.Contains(out, "\n\n") {
		t.Errorf("blank line not preserved:\n%s", out)
	}
	if !strings.HasSuffix(out, "\n") {
		t.Error("output should end with a newline")
	}
}

func TestSignalManagerIntegration(t *testing.T) {
	t.Run("get global manager multiple times", func(t *testing.T) {
		mgr1 := signals.GetGlobalManager()
		mgr2 := signals.GetGlobalManager()

		if mgr1 == nil || mgr2 == nil {
			t.Fatal("Signal managers should not be nil")
		}
		if mgr1 != mgr2 {
			t.Error("GetGlobalManager should return the same instance")
		}
	})

	t.Run("manager context validity", func(t *testing.T) {
		ctx := signals.GetGlobalManager().Context()
		if ctx == nil {
			t.Fatal("Manager context should not be nil")
		}
		select {
		case <-ctx.Done():
			// May be done if previous tests triggered shutdown
		default:
		}
	})
}

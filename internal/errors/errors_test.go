package errors

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"sync"
	"testing"

	"github.com/saltyorg/ktx/internal/signals"
	"github.com/saltyorg/ktx/toktx"
)

// mockSignalManager is a mock implementation of the signal manager for testing
type mockSignalManager struct {
	shutdownCalled bool
	shutdownCode   int
	mu             sync.Mutex
}

func (m *mockSignalManager) Shutdown(code int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.shutdownCalled = true
	m.shutdownCode = code
}

func TestIsInterruptError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"nil error", nil, false},
		{"context.Canceled", context.Canceled, true},
		{"wrapped context.Canceled", fmt.Errorf("operation failed: %w", context.Canceled), true},
		{"shutdown cause", fmt.Errorf("%w (exit code 130)", signals.ErrShutdown), true},
		{"signal killed text", errors.New("signal: killed"), true},
		{"signal interrupt text", errors.New("process terminated: signal: interrupt"), true},
		{"killed toktx", &toktx.ExitStatusError{Code: -1, Status: "signal: killed"}, true},
		{"failed toktx", &toktx.ExitStatusError{Code: 1, Status: "exit status 1"}, false},
		{"signal term text", errors.New("signal: term"), false},
		{"case sensitive", errors.New("SIGNAL: INTERRUPT"), false},
		{"deadline", context.DeadlineExceeded, false},
		{"regular error", errors.New("regular error"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsInterruptError(tt.err); got != tt.expected {
				t.Errorf("IsInterruptError(%v) = %v, expected %v", tt.err, got, tt.expected)
			}
		})
	}
}

func TestHandleInterruptErrorWith(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"canceled", context.Canceled, true},
		{"interrupt", errors.New("signal: interrupt"), true},
		{"regular", errors.New("regular error"), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &mockSignalManager{}
			if got := HandleInterruptErrorWith(m, tt.err); got != tt.expected {
				t.Errorf("HandleInterruptErrorWith(%v) = %v, expected %v", tt.err, got, tt.expected)
			}
			if m.shutdownCalled != tt.expected {
				t.Errorf("shutdown called = %v, expected %v", m.shutdownCalled, tt.expected)
			}
			if tt.expected && m.shutdownCode != signals.ExitInterrupt {
				t.Errorf("shutdown code = %d, expected %d", m.shutdownCode, signals.ExitInterrupt)
			}
		})
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, 0},
		{"toktx exit 3", &toktx.ExitStatusError{Code: 3, Status: "exit status 3"}, 3},
		{"wrapped toktx exit", fmt.Errorf("job a.png: %w", &toktx.ExitStatusError{Code: 2}), 2},
		{"spawn", &toktx.SpawnError{Err: exec.ErrNotFound}, ExitNotFound},
		{"spawn cancelled", &toktx.SpawnError{Err: context.Canceled}, signals.ExitInterrupt},
		{"killed", &toktx.ExitStatusError{Code: -1, Status: "signal: killed"}, signals.ExitInterrupt},
		{"source", &toktx.SourcePathError{Err: errors.New("disk full")}, ExitFailure},
		{"other", errors.New("boom"), ExitFailure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestExitWithError(t *testing.T) {
	tests := []struct {
		name     string
		format   string
		args     []any
		expected string
	}{
		{"simple", "error occurred", nil, "error occurred\n"},
		{"formatted", "error: %s", []any{"file not found"}, "error: file not found\n"},
		{"multiple args", "error at line %d: %s", []any{42, "syntax error"}, "error at line 42: syntax error\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			m := &mockSignalManager{}
			ExitWithError(m, &buf, tt.format, tt.args...)

			if buf.String() != tt.expected {
				t.Errorf("ExitWithError() output = %q, expected %q", buf.String(), tt.expected)
			}
			if !m.shutdownCalled || m.shutdownCode != ExitFailure {
				t.Errorf("expected shutdown with code %d, got called=%v code=%d", ExitFailure, m.shutdownCalled, m.shutdownCode)
			}
		})
	}
}

func TestIsInterruptError_Concurrency(t *testing.T) {
	errs := []error{
		nil,
		context.Canceled,
		errors.New("signal: interrupt"),
		errors.New("regular error"),
	}

	var wg sync.WaitGroup
	for i := range 100 {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			_ = IsInterruptError(errs[idx%len(errs)])
		}(i)
	}
	wg.Wait()
}

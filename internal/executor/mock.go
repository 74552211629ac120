package executor

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
)

// MockBackend is a mock implementation of Backend and AsyncBackend for testing
type MockBackend struct {
	// OutputFunc is called for every command, blocking or not
	OutputFunc func(cmd *Command) (*Result, error)
	// Calls tracks all executed commands for verification
	Calls []MockCall

	mu sync.Mutex
}

// MockCall represents a single execution
type MockCall struct {
	Command *Command
	Result  *Result
	Error   error
}

// NewMockBackend creates a new mock backend
func NewMockBackend() *MockBackend {
	return &MockBackend{
		Calls: make([]MockCall, 0),
	}
}

// Output mocks blocking execution
func (m *MockBackend) Output(ctx context.Context, cmd *Command) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return unstarted(err)
	}

	m.mu.Lock()
	fn := m.OutputFunc
	m.mu.Unlock()

	var result *Result
	var err error
	if fn != nil {
		result, err = fn(cmd)
	} else {
		// Default mock behavior: return success
		result = &Result{
			Exited:   true,
			ExitCode: 0,
			Status:   "exit status 0",
		}
	}

	// Snapshot the command so later mutation by the caller is not observed
	snapshot := &Command{
		Program:    cmd.Program,
		Args:       slices.Clone(cmd.Args),
		OutputMode: cmd.OutputMode,
	}

	m.mu.Lock()
	m.Calls = append(m.Calls, MockCall{Command: snapshot, Result: result, Error: err})
	m.mu.Unlock()

	return result, err
}

// Start mocks non-blocking execution; the Future is already resolved
func (m *MockBackend) Start(ctx context.Context, cmd *Command) *Future[*Result] {
	return Resolved(m.Output(ctx, cmd))
}

// Reset clears all tracked calls
func (m *MockBackend) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = make([]MockCall, 0)
	m.OutputFunc = nil
}

// CallCount returns the number of executed commands
func (m *MockBackend) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// LastCall returns the last call, or nil if no calls were made
func (m *MockBackend) LastCall() *MockCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Calls) == 0 {
		return nil
	}
	return &m.Calls[len(m.Calls)-1]
}

// GetCall returns the call at the specified index, or nil if out of bounds
func (m *MockBackend) GetCall(index int) *MockCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	if index < 0 || index >= len(m.Calls) {
		return nil
	}
	return &m.Calls[index]
}

// VerifyCommandCalled checks if a program with the given name was called
func (m *MockBackend) VerifyCommandCalled(program string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, call := range m.Calls {
		if call.Command.Program == program {
			return true
		}
	}
	return false
}

// VerifyCommandWithArgs checks if a program with exactly these args was called
func (m *MockBackend) VerifyCommandWithArgs(program string, args ...string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, call := range m.Calls {
		if call.Command.Program == program && slices.Equal(call.Command.Args, args) {
			return true
		}
	}
	return false
}

// WithMockResult is a helper to set up a mock that returns a specific result
func (m *MockBackend) WithMockResult(result *Result, err error) *MockBackend {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.OutputFunc = func(cmd *Command) (*Result, error) {
		return result, err
	}
	return m
}

// WithMockStdout sets up a mock that succeeds and echoes stdout when the
// command captures it
func (m *MockBackend) WithMockStdout(stdout []byte) *MockBackend {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.OutputFunc = func(cmd *Command) (*Result, error) {
		r := &Result{Exited: true, Status: "exit status 0"}
		if cmd.OutputMode == OutputModeCapture {
			r.Stdout = stdout
		}
		return r, nil
	}
	return m
}

// String returns a string representation of all calls for debugging
func (m *MockBackend) String() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Calls) == 0 {
		return "MockBackend: no calls"
	}
	var output strings.Builder
	output.WriteString(fmt.Sprintf("MockBackend: %d calls\n", len(m.Calls)))
	for i, call := range m.Calls {
		output.WriteString(fmt.Sprintf("  Call %d: %s (stdout: %s, exit code: %d)\n",
			i, call.Command, call.Command.OutputMode, call.Result.ExitCode))
	}
	return output.String()
}

package signals

import (
	"context"
	"errors"
	"os"
	"syscall"
	"testing"
	"time"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	m := New()
	t.Cleanup(m.Stop)
	return m
}

func TestSignalManager_Shutdown(t *testing.T) {
	manager := newTestManager(t)

	if manager.IsShutdown() {
		t.Error("Expected manager to not be shutdown initially")
	}

	manager.Shutdown(1)

	if !manager.IsShutdown() {
		t.Error("Expected manager to be shutdown after Shutdown() call")
	}
	if manager.ExitCode() != 1 {
		t.Errorf("Expected exit code 1, got %d", manager.ExitCode())
	}

	select {
	case <-manager.Context().Done():
	case <-time.After(100 * time.Millisecond):
		t.Error("Expected context to be cancelled after shutdown")
	}
}

func TestSignalManager_ContextCause(t *testing.T) {
	manager := newTestManager(t)
	ctx := manager.Context()

	select {
	case <-ctx.Done():
		t.Fatal("Expected context to not be cancelled initially")
	default:
	}

	manager.Shutdown(ExitInterrupt)

	if !errors.Is(ctx.Err(), context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", ctx.Err())
	}
	if !errors.Is(context.Cause(ctx), ErrShutdown) {
		t.Errorf("Expected cause to wrap ErrShutdown, got %v", context.Cause(ctx))
	}
}

func TestSignalManager_IdempotentShutdown(t *testing.T) {
	manager := newTestManager(t)

	manager.Shutdown(1)
	manager.Shutdown(2)
	manager.Shutdown(3)

	if manager.ExitCode() != 1 {
		t.Errorf("Expected exit code to remain 1 (from first shutdown), got %d", manager.ExitCode())
	}
}

func TestSignalManager_ConcurrentShutdown(t *testing.T) {
	manager := newTestManager(t)

	done := make(chan bool)
	for i := range 10 {
		go func(exitCode int) {
			_ = manager.IsShutdown()
			manager.Shutdown(exitCode)
			done <- true
		}(i)
	}
	for range 10 {
		<-done
	}

	if !manager.IsShutdown() {
		t.Error("Expected manager to be shutdown after concurrent calls")
	}
	<-manager.Context().Done()
}

func TestSignalManager_GlobalManager(t *testing.T) {
	m1 := GetGlobalManager()
	m2 := GetGlobalManager()
	if m1 == nil || m1 != m2 {
		t.Error("Expected GetGlobalManager() to return the same non-nil instance")
	}
}

func TestSignalManager_DerivedContext(t *testing.T) {
	manager := newTestManager(t)
	derived, cancel := context.WithTimeout(manager.Context(), time.Minute)
	defer cancel()

	manager.Shutdown(0)

	select {
	case <-derived.Done():
	case <-time.After(100 * time.Millisecond):
		t.Error("Expected derived context to be cancelled after parent shutdown")
	}
}

func TestSignalManager_StopLeavesContextAlive(t *testing.T) {
	manager := New()
	manager.Stop()
	manager.Stop()

	if manager.IsShutdown() || manager.Context().Err() != nil {
		t.Error("Stop must not shut the manager down")
	}
}

func TestSignalManager_ReceivesSIGTERM(t *testing.T) {
	manager := newTestManager(t)

	if err := syscall.Kill(os.Getpid(), syscall.SIGTERM); err != nil {
		t.Fatalf("failed to signal self: %v", err)
	}

	select {
	case <-manager.Context().Done():
	case <-time.After(2 * time.Second):
		t.Fatal("Expected SIGTERM to shut the manager down")
	}
	if manager.ExitCode() != ExitTerminate {
		t.Errorf("Expected exit code %d, got %d", ExitTerminate, manager.ExitCode())
	}
}

func TestExitCodeFor(t *testing.T) {
	tests := []struct {
		name   string
		signal os.Signal
		want   int
	}{
		{"SIGINT", os.Interrupt, ExitInterrupt},
		{"SIGTERM", syscall.SIGTERM, ExitTerminate},
		{"SIGHUP", syscall.SIGHUP, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exitCodeFor(tt.signal); got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.signal, got, tt.want)
			}
		})
	}
}

package signals

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// Exit codes used for signal-triggered shutdowns (128 + signal number).
const (
	ExitInterrupt = 130
	ExitTerminate = 143
)

// ErrShutdown is the cancellation cause of a Manager's context. Use
// context.Cause to tell a shutdown apart from an ordinary cancellation.
var ErrShutdown = errors.New("shutdown requested")

// Manager owns the application context and cancels it when SIGINT or
// SIGTERM arrives, so a running toktx child is killed and temp files are
// cleaned up before exit.
type Manager struct {
	ctx    context.Context
	cancel context.CancelCauseFunc
	sigCh  chan os.Signal
	stop   chan struct{}

	once       sync.Once
	stopOnce   sync.Once
	shutdownMu sync.RWMutex
	isShutdown bool
	exitCode   int
}

var (
	globalManager *Manager
	initOnce      sync.Once
)

// New creates a manager and starts listening for signals.
func New() *Manager {
	ctx, cancel := context.WithCancelCause(context.Background())
	m := &Manager{
		ctx:    ctx,
		cancel: cancel,
		sigCh:  make(chan os.Signal, 1),
		stop:   make(chan struct{}),
	}
	signal.Notify(m.sigCh, os.Interrupt, syscall.SIGTERM)
	go m.wait()
	return m
}

// GetGlobalManager returns the process-wide manager, creating it on first use.
func GetGlobalManager() *Manager {
	initOnce.Do(func() {
		globalManager = New()
	})
	return globalManager
}

// Context is cancelled with ErrShutdown once Shutdown is called.
func (m *Manager) Context() context.Context {
	return m.ctx
}

func (m *Manager) IsShutdown() bool {
	m.shutdownMu.RLock()
	defer m.shutdownMu.RUnlock()
	return m.isShutdown
}

// ExitCode is the code passed to the first Shutdown call, or 0.
func (m *Manager) ExitCode() int {
	m.shutdownMu.RLock()
	defer m.shutdownMu.RUnlock()
	return m.exitCode
}

// Shutdown cancels the context. Only the first call has any effect.
func (m *Manager) Shutdown(exitCode int) {
	m.once.Do(func() {
		m.shutdownMu.Lock()
		m.isShutdown = true
		m.exitCode = exitCode
		m.shutdownMu.Unlock()
		m.cancel(fmt.Errorf("%w (exit code %d)", ErrShutdown, exitCode))
	})
}

// Stop detaches the manager from OS signals without cancelling its context.
func (m *Manager) Stop() {
	m.stopOnce.Do(func() {
		signal.Stop(m.sigCh)
		close(m.stop)
	})
}

func (m *Manager) wait() {
	select {
	case sig := <-m.sigCh:
		m.Stop()
		m.Shutdown(exitCodeFor(sig))
	case <-m.stop:
	}
}

func exitCodeFor(sig os.Signal) int {
	switch sig {
	case os.Interrupt:
		return ExitInterrupt
	case syscall.SIGTERM:
		return ExitTerminate
	}
	return 1
}

package toolcheck

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Masterminds/semver/v3"

	"github.com/saltyorg/ktx/internal/executor"
)

func TestParseVersion(t *testing.T) {
	tests := []struct {
		output  string
		want    string
		wantErr bool
	}{
		{"toktx v4.3.2", "4.3.2", false},
		{"toktx v4.0.0-beta2\n", "4.0.0-beta2", false},
		{"toktx 4.1", "4.1.0", false},
		{"toktx version: v4.3.0-rc1~5 / libktx v4.3.0", "4.3.0-rc1", false},
		{"toktx v3.0.0", "3.0.0", false},
		{"toktx", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.output, func(t *testing.T) {
			v, err := ParseVersion(tt.output)
			if tt.wantErr {
				if !errors.Is(err, ErrNoVersion) {
					t.Errorf("expected ErrNoVersion, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseVersion() error: %v", err)
			}
			if v.String() != tt.want {
				t.Errorf("ParseVersion() = %s, want %s", v, tt.want)
			}
		})
	}
}

func TestSatisfies(t *testing.T) {
	tests := []struct {
		version string
		want    bool
	}{
		{"4.0.0", true},
		{"4.3.2", true},
		{"4.0.0-beta2", true},
		{"3.9.9", false},
		{"5.0.0", true},
	}
	for _, tt := range tests {
		ok, err := Satisfies(semver.MustParse(tt.version), ">= 4.0.0")
		if err != nil {
			t.Fatal(err)
		}
		if ok != tt.want {
			t.Errorf("Satisfies(%s) = %v, want %v", tt.version, ok, tt.want)
		}
	}
	if _, err := Satisfies(semver.MustParse("1.0.0"), "not a constraint"); err == nil {
		t.Error("expected error for invalid constraint")
	}
}

func writeScript(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "toktx")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name      string
		script    string
		version   string
		supported bool
		wantErr   bool
	}{
		{"stdout", `echo "toktx v4.3.2"`, "4.3.2", true, false},
		{"stderr", `echo "toktx v4.1.0" >&2`, "4.1.0", true, false},
		{"old", `echo "toktx v3.1.0"`, "3.1.0", false, false},
		{"garbage", `echo "hello"`, "", false, true},
		{"failing", `exit 2`, "", false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			program := writeScript(t, tt.script)
			info, err := Check(context.Background(), executor.Blocking{}, program)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error, got %+v", info)
				}
				return
			}
			if err != nil {
				t.Fatalf("Check() error: %v", err)
			}
			if info.Path != program || info.Version.String() != tt.version || info.Supported != tt.supported {
				t.Errorf("unexpected info %+v", info)
			}
		})
	}
}

func TestCheckNotFound(t *testing.T) {
	mock := executor.NewMockBackend()
	_, err := Check(context.Background(), mock, filepath.Join(t.TempDir(), "nope"))
	if err == nil {
		t.Fatal("expected error")
	}
	if mock.CallCount() != 0 {
		t.Error("missing program must not be run")
	}
}

func TestCheckWithMock(t *testing.T) {
	program := writeScript(t, "exit 0")
	mock := executor.NewMockBackend().WithMockStdout([]byte("toktx v4.2.0\n"))

	info, err := Check(context.Background(), mock, program)
	if err != nil {
		t.Fatal(err)
	}
	if !mock.VerifyCommandWithArgs(program, "--version") {
		t.Errorf("unexpected call:\n%s", mock)
	}
	if info.Raw != "toktx v4.2.0" || !info.Supported {
		t.Errorf("unexpected info %+v", info)
	}
}

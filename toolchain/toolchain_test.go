package toolchain

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestExecRunnerExitError(t *testing.T) {
	err := ExecRunner{}.Run(context.Background(), "sh", "-c", "echo boom >&2; exit 3")
	if err == nil {
		t.Fatal("expected error for non-zero exit")
	}

	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("expected *ExitError, got %T: %v", err, err)
	}
	if exitErr.Code != 3 {
		t.Errorf("expected exit code 3, got %d", exitErr.Code)
	}
	if !strings.Contains(exitErr.Stderr, "boom") {
		t.Errorf("stderr not captured: %q", exitErr.Stderr)
	}
	if !strings.Contains(exitErr.Error(), "boom") {
		t.Errorf("Error() should include diagnostics: %q", exitErr.Error())
	}
}

func TestExecRunnerSuccess(t *testing.T) {
	if err := (ExecRunner{}).Run(context.Background(), "true"); err != nil {
		t.Fatalf("expected success, got %v", err)
	}
}

func TestExecRunnerMissingTool(t *testing.T) {
	err := ExecRunner{}.Run(context.Background(), "definitely-not-a-real-tool-9f2c")
	if err == nil {
		t.Fatal("expected error for missing binary")
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		t.Fatalf("start failure should not map to ExitError: %v", err)
	}
}

// recordingRunner records invocations for argument assertions.
type recordingRunner struct {
	name string
	args []string
	err  error
}

func (r *recordingRunner) Run(_ context.Context, name string, args ...string) error {
	r.name = name
	r.args = args
	return r.err
}

func TestFetcherArguments(t *testing.T) {
	rec := &recordingRunner{}
	f := NewFetcher("")
	f.Runner = rec

	if err := f.Fetch(context.Background(), "https://example.com/repo", "/tmp/src/tree-sitter-demo"); err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if rec.name != DefaultFetchTool {
		t.Errorf("expected %s, got %s", DefaultFetchTool, rec.name)
	}
	want := []string{"clone", "https://example.com/repo", "/tmp/src/tree-sitter-demo"}
	if len(rec.args) != len(want) {
		t.Fatalf("args = %v, want %v", rec.args, want)
	}
	for i := range want {
		if rec.args[i] != want[i] {
			t.Errorf("arg %d = %q, want %q", i, rec.args[i], want[i])
		}
	}
}

func TestCompilerArguments(t *testing.T) {
	tests := []struct {
		name    string
		sources []string
		want    []string
	}{
		{
			name:    "primary only",
			sources: []string{"src/parser.c"},
			want:    []string{"-shared", "-fPIC", "-o", "out/libdemo.so", "src/parser.c"},
		},
		{
			name:    "primary and secondary",
			sources: []string{"src/parser.c", "src/scanner.c"},
			want:    []string{"-shared", "-fPIC", "-o", "out/libdemo.so", "src/parser.c", "src/scanner.c"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recordingRunner{}
			c := NewCompiler("gcc")
			c.Runner = rec

			if err := c.Compile(context.Background(), "out/libdemo.so", tt.sources...); err != nil {
				t.Fatalf("Compile: %v", err)
			}
			if rec.name != "gcc" {
				t.Errorf("expected gcc, got %s", rec.name)
			}
			if len(rec.args) != len(tt.want) {
				t.Fatalf("args = %v, want %v", rec.args, tt.want)
			}
			for i := range tt.want {
				if rec.args[i] != tt.want[i] {
					t.Errorf("arg %d = %q, want %q", i, rec.args[i], tt.want[i])
				}
			}
		})
	}
}

package cmd

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/urfave/cli/v2"
)

func TestSplitLanguages(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"", nil},
		{"rust", []string{"rust"}},
		{"rust,go,c", []string{"rust", "go", "c"}},
		{"rust,,go,", []string{"rust", "go"}},
		{" rust , go ", []string{"rust", "go"}},
	}

	for _, tt := range tests {
		if got := splitLanguages(tt.input); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("splitLanguages(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

// resolveWithArgs parses args through the build command's flag set and
// returns the resolved choice.
func resolveWithArgs(t *testing.T, args ...string) buildChoice {
	t.Helper()

	var choice buildChoice
	var resolveErr error
	app := &cli.App{
		Commands: []*cli.Command{
			{
				Name:  "build",
				Flags: BuildCommand().Flags,
				Action: func(c *cli.Context) error {
					choice, resolveErr = resolveBuildChoice(c)
					return nil
				},
			},
		},
	}

	if err := app.Run(append([]string{"grove"}, args...)); err != nil {
		t.Fatalf("app.Run: %v", err)
	}
	if resolveErr != nil {
		t.Fatalf("resolveBuildChoice: %v", resolveErr)
	}
	return choice
}

func TestResolveBuildChoiceDefaults(t *testing.T) {
	choice := resolveWithArgs(t, "build")

	if choice.output != defaultOutput {
		t.Errorf("output = %q, want %q", choice.output, defaultOutput)
	}
	if choice.threads != defaultThreads {
		t.Errorf("threads = %d, want %d", choice.threads, defaultThreads)
	}
	if choice.compiler != "cc" || choice.fetchTool != "git" {
		t.Errorf("tool defaults wrong: %q / %q", choice.compiler, choice.fetchTool)
	}
	if choice.languages != nil {
		t.Errorf("languages should default empty, got %v", choice.languages)
	}
}

func TestResolveBuildChoiceSettingsPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grove.yaml")
	content := `
output: /settings/out
threads: 3
compiler: gcc
languages: [zig]
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write settings: %v", err)
	}

	// Flags explicitly set on the command line beat the settings file;
	// settings beat flag defaults.
	choice := resolveWithArgs(t, "build", "--settings", path, "--output", "/flag/out")

	if choice.output != "/flag/out" {
		t.Errorf("explicit flag should win: output = %q", choice.output)
	}
	if choice.threads != 3 {
		t.Errorf("settings should override default: threads = %d", choice.threads)
	}
	if choice.compiler != "gcc" {
		t.Errorf("settings should override default: compiler = %q", choice.compiler)
	}
	if len(choice.languages) != 1 || choice.languages[0] != "zig" {
		t.Errorf("settings languages not applied: %v", choice.languages)
	}
	if choice.configDest != defaultConfigDest {
		t.Errorf("unset everywhere should keep default: %q", choice.configDest)
	}
}

func TestResolveBuildChoiceMissingSettings(t *testing.T) {
	var gotErr error
	app := &cli.App{
		Commands: []*cli.Command{
			{
				Name:  "build",
				Flags: BuildCommand().Flags,
				Action: func(c *cli.Context) error {
					_, gotErr = resolveBuildChoice(c)
					return nil
				},
			},
		},
	}
	if err := app.Run([]string{"grove", "build", "--settings", "/does/not/exist.yaml"}); err != nil {
		t.Fatalf("app.Run: %v", err)
	}
	if gotErr == nil {
		t.Fatal("expected error for missing settings file")
	}
}

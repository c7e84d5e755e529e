package toolchain

import "context"

// DefaultCompiler is the native compiler used when none is configured.
const DefaultCompiler = "cc"

// Compiler builds a shared-library artifact from one or more C sources.
type Compiler struct {
	// Tool is the compiler binary. Defaults to DefaultCompiler.
	Tool   string
	Runner Runner
}

// NewCompiler creates a Compiler running the given tool via ExecRunner.
func NewCompiler(tool string) *Compiler {
	if tool == "" {
		tool = DefaultCompiler
	}
	return &Compiler{Tool: tool, Runner: ExecRunner{}}
}

// Compile produces a shared object at out from the given sources.
func (c *Compiler) Compile(ctx context.Context, out string, sources ...string) error {
	args := append([]string{"-shared", "-fPIC", "-o", out}, sources...)
	return c.Runner.Run(ctx, c.Tool, args...)
}

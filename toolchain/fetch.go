package toolchain

import "context"

// DefaultFetchTool is the source-control tool used when none is configured.
const DefaultFetchTool = "git"

// Fetcher obtains a named source tree from a source locator.
type Fetcher struct {
	// Tool is the fetch binary. Defaults to DefaultFetchTool.
	Tool   string
	Runner Runner
}

// NewFetcher creates a Fetcher running the given tool via ExecRunner.
func NewFetcher(tool string) *Fetcher {
	if tool == "" {
		tool = DefaultFetchTool
	}
	return &Fetcher{Tool: tool, Runner: ExecRunner{}}
}

// Fetch clones the source tree at locator into dest.
func (f *Fetcher) Fetch(ctx context.Context, locator, dest string) error {
	return f.Runner.Run(ctx, f.Tool, "clone", locator, dest)
}

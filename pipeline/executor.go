// Package pipeline executes the fetch → discover → compile → merge job
// pipeline across a catalog of grammar repositories.
//
// The Executor runs one job; the Coordinator fans jobs out over a bounded
// worker pool. Failures are isolated per job: a stage error terminates
// that job's pipeline and is counted, never aborting the run or its
// siblings.
package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/justapithecus/grove/log"
	"github.com/justapithecus/grove/registry"
	"github.com/justapithecus/grove/toolchain"
	"github.com/justapithecus/grove/types"
)

// Build input and output naming conventions shared by every job.
const (
	// ParserFileName is the required primary source file.
	ParserFileName = "parser.c"
	// ScannerFileName is the optional secondary source file.
	ScannerFileName = "scanner.c"
	// CheckoutPrefix prefixes each grammar's source checkout directory.
	CheckoutPrefix = "tree-sitter-"
	// ArtifactExtension is the shared-library suffix of compiled artifacts.
	ArtifactExtension = ".so"
)

// Executor runs the full pipeline for one catalog entry.
// It touches no shared mutable state except through the registry store,
// so one Executor may serve any number of concurrent workers.
type Executor struct {
	// Fetcher obtains source trees.
	Fetcher *toolchain.Fetcher
	// Compiler builds shared-library artifacts.
	Compiler *toolchain.Compiler
	// Registry is the shared registry store merges go through.
	Registry *registry.Store
	// SourceDir is the directory source trees are checked out under.
	SourceDir string
	// OutputDir is the directory compiled artifacts are written to.
	OutputDir string
	// Logger receives per-job diagnostics. Nil discards them.
	Logger *log.Logger
}

// CheckoutPath returns the source checkout directory for a grammar name.
func (e *Executor) CheckoutPath(name string) string {
	return filepath.Join(e.SourceDir, CheckoutPrefix+name)
}

// ArtifactPath returns the artifact output path for a grammar name.
func (e *Executor) ArtifactPath(name string) string {
	return filepath.Join(e.OutputDir, "lib"+name+ArtifactExtension)
}

// Execute runs the stages strictly in order. The first stage failure
// short-circuits the rest and becomes the job outcome. The merge stage is
// best-effort: once the artifact is built the job is a success, and merge
// problems are logged as warnings only.
func (e *Executor) Execute(ctx context.Context, entry types.CatalogEntry) types.JobOutcome {
	logger := e.Logger
	if logger == nil {
		logger = log.Nop()
	}
	logger = logger.WithGrammar(entry.Name)

	checkout := e.CheckoutPath(entry.Name)
	logger.Info("fetching source", map[string]any{"locator": entry.SourceLocator, "dest": checkout})
	if err := e.Fetcher.Fetch(ctx, entry.SourceLocator, checkout); err != nil {
		return types.Failed(types.StageFetch, err)
	}

	parser, err := FindFile(checkout, ParserFileName)
	if err != nil {
		return types.Failed(types.StageDiscover, err)
	}
	sources := []string{parser}
	// The scanner is optional; compile from the parser alone when absent.
	if scanner, err := FindFile(checkout, ScannerFileName); err == nil {
		sources = append(sources, scanner)
	}

	artifact := e.ArtifactPath(entry.Name)
	logger.Info("compiling grammar", map[string]any{"sources": sources, "artifact": artifact})
	if err := e.Compiler.Compile(ctx, artifact, sources...); err != nil {
		return types.Failed(types.StageCompile, err)
	}

	if err := e.mergeMetadata(checkout, artifact); err != nil {
		logger.Warn("registry merge skipped", map[string]any{"error": err.Error()})
	}

	return types.Succeeded(artifact)
}

// mergeMetadata locates and parses the tree's metadata descriptor and
// applies it to the registry. Every failure path here is non-fatal to the
// job; the returned error is for the warning log only.
func (e *Executor) mergeMetadata(checkout, artifact string) error {
	path, err := FindFile(checkout, types.MetadataFileName)
	if errors.Is(err, ErrFileNotFound) {
		return fmt.Errorf("no %s in source tree", types.MetadataFileName)
	}
	if err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("cannot read %s: %w", path, err)
	}

	var desc types.MetadataDescriptor
	if err := json.Unmarshal(data, &desc); err != nil {
		return fmt.Errorf("malformed metadata descriptor %s: %w", path, err)
	}

	return e.Registry.Apply(desc, artifact)
}

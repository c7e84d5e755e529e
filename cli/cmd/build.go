package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	"github.com/justapithecus/grove/catalog"
	"github.com/justapithecus/grove/cli/config"
	"github.com/justapithecus/grove/iox"
	"github.com/justapithecus/grove/log"
	"github.com/justapithecus/grove/pipeline"
	"github.com/justapithecus/grove/progress"
	"github.com/justapithecus/grove/registry"
	"github.com/justapithecus/grove/toolchain"
	"github.com/justapithecus/grove/types"
)

// Exit codes. Per-job failures never affect the exit code; only a catalog
// discovery failure yields exitCatalogFailure.
const (
	exitSuccess        = 0
	exitCatalogFailure = 1
	exitConfigError    = 2
)

// Flag defaults mirroring the historical CLI surface.
const (
	defaultOutput     = "./shared_libs/"
	defaultSourceDest = "./shared_libs_src/"
	defaultConfigDest = "./config.json"
	defaultThreads    = 10
	defaultLogFile    = "log/output.log"
)

// BuildCommand returns the build command, the only command that executes
// work.
func BuildCommand() *cli.Command {
	return &cli.Command{
		Name:  "build",
		Usage: "Fetch, compile, and register every grammar in the catalog",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "settings",
				Usage:   "Path to YAML settings file (flags override file values)",
				EnvVars: []string{"GROVE_SETTINGS"},
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Artifact output directory",
				Value:   defaultOutput,
			},
			&cli.StringFlag{
				Name:    "source-destination",
				Aliases: []string{"s"},
				Usage:   "Directory source trees are checked out under",
				Value:   defaultSourceDest,
			},
			&cli.StringFlag{
				Name:    "config-destination",
				Aliases: []string{"c"},
				Usage:   "Registry document path",
				Value:   defaultConfigDest,
			},
			&cli.IntFlag{
				Name:    "threads",
				Aliases: []string{"t"},
				Usage:   "Worker pool size",
				Value:   defaultThreads,
			},
			&cli.StringFlag{
				Name:    "languages",
				Aliases: []string{"l"},
				Usage:   "Comma-delimited grammar name filter (empty builds all)",
			},
			&cli.StringFlag{
				Name:  "catalog-url",
				Usage: "Catalog page to scrape",
				Value: catalog.DefaultURL,
			},
			&cli.StringFlag{
				Name:  "compiler",
				Usage: "Native compiler binary",
				Value: toolchain.DefaultCompiler,
			},
			&cli.StringFlag{
				Name:  "fetch-tool",
				Usage: "Source-control fetch binary",
				Value: toolchain.DefaultFetchTool,
			},
			&cli.StringFlag{
				Name:  "log-file",
				Usage: "Structured log destination (empty logs to stderr)",
				Value: defaultLogFile,
			},
			&cli.BoolFlag{
				Name:  "no-tui",
				Usage: "Disable the live progress view, print plain lines",
			},
		},
		Action: buildAction,
	}
}

// buildChoice is the merged flag/settings configuration for one run.
type buildChoice struct {
	catalogURL string
	output     string
	sourceDest string
	configDest string
	threads    int
	languages  []string
	compiler   string
	fetchTool  string
	logFile    string
	noTUI      bool
}

// resolveBuildChoice merges CLI flags with the optional settings file.
// Explicitly-set flags win over file values; file values win over flag
// defaults.
func resolveBuildChoice(c *cli.Context) (buildChoice, error) {
	choice := buildChoice{
		catalogURL: c.String("catalog-url"),
		output:     c.String("output"),
		sourceDest: c.String("source-destination"),
		configDest: c.String("config-destination"),
		threads:    c.Int("threads"),
		languages:  splitLanguages(c.String("languages")),
		compiler:   c.String("compiler"),
		fetchTool:  c.String("fetch-tool"),
		logFile:    c.String("log-file"),
		noTUI:      c.Bool("no-tui"),
	}

	settingsPath := c.String("settings")
	if settingsPath == "" {
		return choice, nil
	}

	settings, err := config.Load(settingsPath)
	if err != nil {
		return buildChoice{}, err
	}

	apply := func(flag string, dst *string, value string) {
		if !c.IsSet(flag) && value != "" {
			*dst = value
		}
	}
	apply("catalog-url", &choice.catalogURL, settings.CatalogURL)
	apply("output", &choice.output, settings.Output)
	apply("source-destination", &choice.sourceDest, settings.SourceDestination)
	apply("config-destination", &choice.configDest, settings.ConfigDestination)
	apply("compiler", &choice.compiler, settings.Compiler)
	apply("fetch-tool", &choice.fetchTool, settings.FetchTool)
	apply("log-file", &choice.logFile, settings.LogFile)
	if !c.IsSet("threads") && settings.Threads > 0 {
		choice.threads = settings.Threads
	}
	if !c.IsSet("languages") && len(settings.Languages) > 0 {
		choice.languages = settings.Languages
	}

	return choice, nil
}

func buildAction(c *cli.Context) error {
	choice, err := resolveBuildChoice(c)
	if err != nil {
		return cli.Exit(fmt.Sprintf("invalid settings: %v", err), exitConfigError)
	}
	if choice.threads < 1 {
		return cli.Exit(fmt.Sprintf("worker pool size must be at least 1, got %d", choice.threads), exitConfigError)
	}

	runID := uuid.New().String()
	logger, closeLog, err := openLogger(choice.logFile, runID)
	if err != nil {
		return cli.Exit(fmt.Sprintf("cannot open log: %v", err), exitConfigError)
	}
	defer iox.DiscardErr(closeLog)
	sugar := logger.Sugar().With("command", "build")

	for _, dir := range []string{choice.output, choice.sourceDest} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			sugar.Errorf("cannot create directory %q: %v", dir, err)
			return cli.Exit(fmt.Sprintf("cannot create directory %q: %v", dir, err), exitConfigError)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		<-sigCh
		sugar.Warnf("signal received, cancelling run")
		cancel()
	}()

	// Catalog discovery. Any failure here is fatal to the whole run,
	// independent of the job pipeline.
	source := catalog.NewHTTPSource(choice.catalogURL)
	entries, err := source.Entries(ctx)
	if err != nil {
		sugar.Errorf("catalog discovery failed: %v", err)
		return cli.Exit(fmt.Sprintf("Error scraping parsers: %v", err), exitCatalogFailure)
	}
	entries = catalog.Filter(entries, choice.languages)
	sugar.Infof("building %d grammars with %d workers", len(entries), choice.threads)

	store := registry.NewStore(choice.configDest, logger)
	executor := &pipeline.Executor{
		Fetcher:   toolchain.NewFetcher(choice.fetchTool),
		Compiler:  toolchain.NewCompiler(choice.compiler),
		Registry:  store,
		SourceDir: choice.sourceDest,
		OutputDir: choice.output,
		Logger:    logger,
	}

	summary, err := runPipeline(ctx, choice, runID, logger, executor, entries)
	if err != nil {
		sugar.Errorf("run aborted: %v", err)
		return fmt.Errorf("run aborted: %w", err)
	}

	logger.Info("run summary", map[string]any{
		"total":     summary.Total,
		"completed": summary.Completed,
		"failed":    summary.Failed,
		"duration":  summary.Duration.String(),
	})
	return cli.Exit("", exitSuccess)
}

// runPipeline drives the coordinator with either the live progress view
// or the plain reporter.
func runPipeline(
	ctx context.Context,
	choice buildChoice,
	runID string,
	logger *log.Logger,
	executor *pipeline.Executor,
	entries []types.CatalogEntry,
) (types.RunSummary, error) {
	if choice.noTUI || !isStderrTTY() {
		reporter := progress.NewPlainReporter(os.Stderr, len(entries))
		coordinator := pipeline.NewCoordinator(pipeline.CoordinatorConfig{
			Workers:  choice.threads,
			RunID:    runID,
			Observer: reporter.Observe,
			Logger:   logger,
		}, executor.Execute)

		summary, err := coordinator.Run(ctx, entries)
		if err != nil {
			return summary, err
		}
		reporter.Summary(summary)
		return summary, nil
	}

	program := tea.NewProgram(progress.New(len(entries)), tea.WithOutput(os.Stderr))
	coordinator := pipeline.NewCoordinator(pipeline.CoordinatorConfig{
		Workers:  choice.threads,
		RunID:    runID,
		Observer: func(e pipeline.Event) { program.Send(progress.JobMsg{Event: e}) },
		Logger:   logger,
	}, executor.Execute)

	var summary types.RunSummary
	var g errgroup.Group
	g.Go(func() error {
		_, err := program.Run()
		return err
	})
	g.Go(func() error {
		var err error
		summary, err = coordinator.Run(ctx, entries)
		// Always hand the view its final state so it can exit cleanly.
		program.Send(progress.DoneMsg{Summary: summary})
		return err
	})
	return summary, g.Wait()
}

// openLogger opens the configured log sink; an empty path logs to stderr.
func openLogger(path, runID string) (*log.Logger, func() error, error) {
	if path == "" {
		return log.New(os.Stderr, runID), func() error { return nil }, nil
	}
	return log.Open(path, runID)
}

// isStderrTTY returns true if stderr is a TTY.
func isStderrTTY() bool {
	info, err := os.Stderr.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}

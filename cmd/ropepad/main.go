// Package main is the entry point for the ropepad editor.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/ropepad/internal/app"
	"github.com/dshills/ropepad/internal/config"
	"github.com/dshills/ropepad/internal/engine"
	"github.com/dshills/ropepad/internal/renderer"
	"github.com/dshills/ropepad/internal/script"
	"github.com/dshills/ropepad/internal/storage"
	"github.com/dshills/ropepad/internal/tabs"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type options struct {
	configPath string
	exec       string
	batch      bool
	dryRun     bool
	files      []string
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	scriptPath := opts.exec
	if scriptPath == "" && opts.batch {
		scriptPath = cfg.Script.Path
	}
	if scriptPath != "" || opts.batch {
		return runBatch(ctx, cfg, scriptPath, opts.files, opts.dryRun)
	}
	return runTerminal(ctx, cfg, opts.files)
}

func parseFlags() options {
	var opts options
	var showVersion bool

	flag.StringVar(&opts.configPath, "config", "", "Path to configuration file (.toml, .yaml)")
	flag.StringVar(&opts.configPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.exec, "exec", "", "Run a Lua script against the file and exit")
	flag.BoolVar(&opts.batch, "batch", false, "Run script.path from the configuration and exit")
	flag.BoolVar(&opts.dryRun, "dry-run", false, "With -exec or -batch, print the edited text instead of saving it")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "ropepad - a small terminal text editor\n\n")
		fmt.Fprintf(os.Stderr, "Usage: ropepad [options] [files...]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  ropepad                         Open with an empty document\n")
		fmt.Fprintf(os.Stderr, "  ropepad a.txt b.txt             Open files in tabs\n")
		fmt.Fprintf(os.Stderr, "  ropepad -exec fix.lua a.txt     Edit a.txt with a script\n")
		fmt.Fprintf(os.Stderr, "  ropepad -exec fix.lua -dry-run a.txt   Print the result, leave a.txt alone\n")
		fmt.Fprintf(os.Stderr, "\nEnvironment:\n  %s\n", strings.Join(config.EnvNames(), " "))
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("ropepad %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	opts.files = flag.Args()
	return opts
}

// newLogger writes to the configured log file, or nowhere. The returned
// cleanup func must be called on exit.
func newLogger(cfg *config.Config) (*app.Logger, func(), error) {
	if cfg.Logging.File == "" {
		return app.NullLogger, func() {}, nil
	}
	f, err := os.OpenFile(cfg.Logging.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	lc := app.DefaultLoggerConfig()
	lc.Level = app.ParseLogLevel(cfg.Logging.Level)
	lc.Output = f
	return app.NewLogger(lc), func() { f.Close() }, nil
}

func runTerminal(ctx context.Context, cfg *config.Config, files []string) int {
	logger, cleanup, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer cleanup()

	m := tabs.NewManager(storage.NewOSStorage(), cfg.EngineOptions()...)
	for _, f := range files {
		if _, err := m.Open(f); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
	}

	watcher, err := storage.NewWatcher(0)
	if err != nil {
		logger.Warn("file watching disabled: %v", err)
	} else {
		defer watcher.Close()
	}

	// The screen is torn down before any error is printed.
	if err := runScreen(ctx, cfg, m, logger, watcher); err != nil {
		logger.Error("exit: %v", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func runScreen(ctx context.Context, cfg *config.Config, m *tabs.Manager, logger *app.Logger, watcher *storage.Watcher) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize terminal: %w", err)
	}
	defer screen.Fini()

	ropts := renderer.DefaultOptions()
	ropts.TabWidth = cfg.Editor.TabWidth

	logger.Info("starting ropepad %s (config %q)", version, cfg.Source)
	a := app.New(screen, m, app.Options{
		Logger:   logger,
		Watcher:  watcher,
		Renderer: ropts,
	})
	return a.Run(ctx)
}

// runBatch runs a script against a single file without a terminal.
func runBatch(ctx context.Context, cfg *config.Config, scriptPath string, files []string, dryRun bool) int {
	if scriptPath == "" {
		fmt.Fprintln(os.Stderr, "Error: no script given (use -exec or set script.path)")
		return 2
	}
	if len(files) != 1 {
		fmt.Fprintln(os.Stderr, "Error: batch mode needs exactly one file")
		return 2
	}

	job := batchJob{
		script: scriptPath,
		file:   files[0],
		store:  storage.NewOSStorage(),
		dryRun: dryRun,
		engine: cfg.EngineOptions(),
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
	if err := job.run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

type batchJob struct {
	script string
	file   string
	store  storage.Storage
	// dryRun edits an in-memory copy and prints the result instead of
	// touching the file.
	dryRun bool
	engine []engine.Option
	stdout io.Writer
	stderr io.Writer
}

func (j batchJob) run(ctx context.Context) error {
	store := j.store
	if j.dryRun {
		mem := storage.NewMemStorage()
		raw, err := store.ReadText(j.file)
		switch {
		case err == nil:
			if err := mem.WriteText(j.file, raw); err != nil {
				return err
			}
		case !errors.Is(err, fs.ErrNotExist):
			return err
		}
		store = mem
	}

	eng, err := engine.Open(store, j.file, j.engine...)
	if errors.Is(err, fs.ErrNotExist) {
		opts := append(j.engine, engine.WithStorage(store), engine.WithPath(j.file))
		eng, err = engine.New(opts...), nil
	}
	if err != nil {
		return err
	}

	r := script.New(eng, script.WithOutput(j.stdout))
	if err := r.RunFile(ctx, j.script); err != nil {
		return err
	}

	if j.dryRun {
		_, err := io.WriteString(j.stdout, storage.Encode(eng.Text(), eng.Format()))
		return err
	}
	if eng.IsModified() {
		fmt.Fprintf(j.stderr, "Warning: %s has unsaved changes (call buf.save())\n", eng.FileName())
	}
	return nil
}

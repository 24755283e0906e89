package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dd0wney/glsgraph/pkg/config"
	"github.com/dd0wney/glsgraph/pkg/importer"
	"github.com/dd0wney/glsgraph/pkg/logging"
	"github.com/dd0wney/glsgraph/pkg/metrics"
	"github.com/dd0wney/glsgraph/pkg/progress"
	"github.com/dd0wney/glsgraph/pkg/storage"
	"github.com/spf13/cobra"
)

// app carries flag values and the state built from them before a
// subcommand runs.
type app struct {
	// Persistent flags
	configPath string
	dbPath     string
	logLevel   string
	noProgress bool

	cfg     *config.Config
	logger  *logging.JSONLogger
	metrics *metrics.Registry
	stdout  io.Writer
	stderr  io.Writer
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "glsgraph",
		Short: "Delay-annotated netlist graph and critical-path queries",
		Long: `glsgraph ingests a gate-level Verilog netlist and a post-layout SDF file
into a SQLite graph, then answers "which path accumulates the most delay".

Typical session:
  glsgraph import-verilog top.v
  glsgraph import-sdf top.sdf
  glsgraph trace u_cell_42.ZN --max-depth 50`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "YAML configuration file")
	flags.StringVar(&a.dbPath, "db", "", "SQLite database file (default gls.db)")
	flags.StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	flags.BoolVar(&a.noProgress, "no-progress", false, "Disable the progress bar")

	root.AddCommand(
		a.importVerilogCmd(),
		a.importSDFCmd(),
		a.traceCmd(),
		a.statsCmd(),
		a.serveCmd(),
	)
	return root
}

// setup layers flags over the loaded configuration and builds the logger
// and metrics registry.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("db") {
		cfg.Database.Path = a.dbPath
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = a.logLevel
	}
	if a.noProgress {
		cfg.Import.Progress = false
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	a.cfg = cfg
	a.stdout = cmd.OutOrStdout()
	a.stderr = cmd.ErrOrStderr()
	a.logger = logging.NewJSONLogger(a.stderr, logging.ParseLevel(cfg.Log.Level))
	logging.SetDefaultLogger(a.logger)
	a.metrics = metrics.NewRegistry()
	return nil
}

// openStore opens and initializes the configured database
func (a *app) openStore(ctx context.Context) (*storage.Store, error) {
	store, err := storage.Open(a.cfg.Database.Path,
		storage.WithLogger(a.logger),
		storage.WithMetrics(a.metrics))
	if err != nil {
		return nil, err
	}
	if err := store.Initialize(ctx); err != nil {
		store.Close()
		return nil, err
	}
	return store, nil
}

// openExistingStore opens the configured database for commands that only
// read it. A missing file is an error rather than a fresh empty graph.
func (a *app) openExistingStore(ctx context.Context) (*storage.Store, error) {
	if _, err := os.Stat(a.cfg.Database.Path); err != nil {
		return nil, fmt.Errorf("open database (run import-verilog first): %w", err)
	}
	return a.openStore(ctx)
}

func (a *app) importerOptions() []importer.Option {
	return []importer.Option{importer.WithLogger(a.logger), importer.WithMetrics(a.metrics)}
}

// progressFor returns a terminal bar sized to the file at path, or nil when
// progress is disabled or the size is unknown. finish ends the bar's line.
func (a *app) progressFor(path string) (obs progress.Observer, finish func(ok bool)) {
	finish = func(bool) {}
	if !a.cfg.Import.Progress {
		return nil, finish
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, finish
	}

	term := progress.NewTerminal(a.stderr, info.Size())
	return term, func(ok bool) {
		if ok {
			term.Finish()
			return
		}
		fmt.Fprintln(a.stderr)
	}
}

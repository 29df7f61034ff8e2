// Package cli implements the ascfix command-line interface.
//
// The root command repairs Markdown files. Subcommands inspect diagram
// geometry, review repairs interactively, serve the HTTP API and manage
// configuration and the result cache. The CLI is built using cobra and logs
// through charmbracelet/log.
//
// # Commands
//
//   - ascfix [paths...]: repair files (stdout, --in-place or --check)
//   - inspect: print the detected and normalized geometry of each block
//   - review: accept or reject repaired blocks in a terminal UI
//   - serve: run the HTTP API
//   - config: show or initialize .ascfix.toml
//   - cache: clear the result cache or print its location
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
package cli

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/ascfix/pkg/buildinfo"
	"github.com/matzehuels/ascfix/pkg/cache"
	"github.com/matzehuels/ascfix/pkg/config"
	"github.com/matzehuels/ascfix/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "ascfix"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Out receives document content and machine-readable output; Err
	// receives status lines.
	Out io.Writer
	Err io.Writer

	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Out:    os.Stdout,
		Err:    w,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
// The root command itself repairs files.
func (c *CLI) RootCommand() *cobra.Command {
	root := c.fixCommand()
	root.Version = buildinfo.Version
	root.SilenceUsage = true
	root.SilenceErrors = true
	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: nearest "+config.FileName+")")
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		return nil
	}

	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.reviewCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// loadConfig reads the configuration named by --config, or the nearest one.
func (c *CLI) loadConfig() (config.Config, error) {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return config.Config{}, err
	}
	if cfg.Path != "" {
		c.Logger.Debug("loaded config", "path", cfg.Path)
	}
	return cfg, nil
}

// newRunner creates a pipeline runner for CLI use. A cache that cannot be
// opened is logged and replaced by the null cache.
func (c *CLI) newRunner(ctx context.Context, cfg config.Config, noCache bool) *pipeline.Runner {
	return pipeline.NewRunner(c.openCache(ctx, cfg, noCache), nil, c.Logger)
}

func (c *CLI) openCache(ctx context.Context, cfg config.Config, noCache bool) cache.Cache {
	if noCache || cfg.Cache.Backend == cache.BackendNone {
		return cache.NewNullCache()
	}
	ch, err := cache.Open(ctx, cfg.CacheOptions())
	if err != nil {
		c.Logger.Warn("cache disabled", "err", err)
		return cache.NewNullCache()
	}
	return ch
}

// pipelineOptions maps the formatting section onto pipeline options.
func pipelineOptions(cfg config.Config, mode pipeline.Mode) pipeline.Options {
	return pipeline.Options{
		Mode:             mode,
		MaxLineLength:    cfg.Formatting.MaxLineLength,
		PreserveUnicode:  cfg.Formatting.PreserveUnicode,
		ValidateDiagrams: cfg.Formatting.ValidateDiagrams,
		TTL:              cfg.Cache.TTL.Duration,
	}
}

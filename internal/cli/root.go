package cli

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/ascfix/pkg/config"
	"github.com/matzehuels/ascfix/pkg/discovery"
	"github.com/matzehuels/ascfix/pkg/errors"
	"github.com/matzehuels/ascfix/pkg/pipeline"
)

// ErrCheckFailed is returned by a check run when at least one file would
// change. main maps it to exit code 1 without printing it.
var ErrCheckFailed = stderrors.New("files need fixing")

// fixOpts holds the command-line flags of the root command.
type fixOpts struct {
	mode        string
	inPlace     bool
	check       bool
	ext         string
	noGitignore bool
	maxSize     int64
	fences      bool
	lists       bool
	all         bool
	jobs        int
	noCache     bool
	jsonOutput  bool
}

// fixReport is the --json document.
type fixReport struct {
	Files []pipeline.FileResult    `json:"files"`
	Stats pipeline.ProcessingStats `json:"stats"`
}

// fixCommand creates the root command that repairs files.
func (c *CLI) fixCommand() *cobra.Command {
	var opts fixOpts

	cmd := &cobra.Command{
		Use:   "ascfix [paths...]",
		Short: "Repair ASCII diagrams, code fences and wrapped tables in Markdown",
		Long: `ascfix repairs Markdown documents. In safe mode (the default) it only
joins wrapped table rows. Diagram mode also realigns boxes and arrows in
box-drawing diagrams; a block is only rewritten when every safety check passes.

Repaired content is written to stdout unless --in-place or --check is given.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.all {
				opts.fences = true
				opts.lists = true
				opts.mode = string(pipeline.ModeDiagram)
			}
			return c.runFix(cmd, args, opts)
		},
	}

	cmd.Flags().StringVar(&opts.mode, "mode", "", "processing mode: safe (default), diagram, check")
	cmd.Flags().BoolVarP(&opts.inPlace, "in-place", "i", false, "rewrite files in place")
	cmd.Flags().BoolVar(&opts.check, "check", false, "exit with status 1 if any file needs fixing; never writes")
	cmd.Flags().StringVar(&opts.ext, "ext", "", "comma-separated extensions to process (default from config: .md,.mdx)")
	cmd.Flags().BoolVar(&opts.noGitignore, "no-gitignore", false, "do not honour .gitignore files")
	cmd.Flags().Int64Var(&opts.maxSize, "max-size", 0, "skip files larger than this many bytes (0 = config value)")
	cmd.Flags().BoolVar(&opts.fences, "fences", false, "repair unbalanced code fences")
	cmd.Flags().BoolVar(&opts.lists, "lists", false, "normalize nested list indentation")
	cmd.Flags().BoolVar(&opts.all, "all", false, "enable every repair (implies --fences --lists --mode diagram)")
	cmd.Flags().IntVar(&opts.jobs, "jobs", 0, "files processed in parallel (default: number of CPUs)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the result cache")
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "print per-file results as JSON")

	return cmd
}

func (c *CLI) runFix(cmd *cobra.Command, paths []string, opts fixOpts) error {
	ctx := cmd.Context()
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}

	mode, err := pipeline.ParseMode(opts.mode)
	if err != nil {
		return err
	}
	check := opts.check || mode == pipeline.ModeCheck
	if check && opts.inPlace {
		return errors.New(errors.ErrCodeInvalidInput, "--in-place cannot be combined with check mode")
	}

	dopts := discoveryOptions(cfg, cmd, opts)
	files, err := discovery.Discover(ctx, paths, dopts)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		printWarning(c.Err, "No files matching %v", dopts.Extensions)
		return nil
	}
	c.Logger.Debug("discovered files", "count", len(files), "extensions", dopts.Extensions)

	runner := c.newRunner(ctx, cfg, opts.noCache)
	defer runner.Close()

	popts := pipelineOptions(cfg, mode)
	popts.Fences = opts.fences
	popts.Lists = opts.lists
	popts.Logger = c.Logger

	prog := newProgress(c.Logger)
	results, err := runner.ProcessFiles(ctx, files, popts, pipeline.BatchOptions{
		Jobs:  opts.jobs,
		Write: opts.inPlace && !check,
	})
	if err != nil {
		return err
	}
	stats := pipeline.Summarize(results)

	switch {
	case opts.jsonOutput:
		enc := json.NewEncoder(c.Out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(fixReport{Files: results, Stats: stats}); err != nil {
			return errors.Wrap(errors.ErrCodeIO, err, "write JSON")
		}
	case check:
		c.reportCheck(results)
	case opts.inPlace:
		c.reportWritten(results)
	default:
		c.writeContents(results)
	}
	prog.done(fmt.Sprintf("Processed %d files", stats.Total))

	if stats.Errors > 0 {
		for _, r := range results {
			if r.Status == pipeline.StatusError {
				printError(c.Err, "%s: %s", r.Path, r.Error)
			}
		}
		return fmt.Errorf("%d of %d files failed", stats.Errors, stats.Total)
	}
	if check && stats.Modified > 0 {
		return ErrCheckFailed
	}
	return nil
}

// discoveryOptions applies the discovery flags over the config section.
// Flags only override when they were set.
func discoveryOptions(cfg config.Config, cmd *cobra.Command, opts fixOpts) discovery.Options {
	d := cfg.DiscoveryOptions()
	if cmd.Flags().Changed("ext") {
		d.Extensions = discovery.ParseExtensions(opts.ext)
	}
	if opts.noGitignore {
		d.RespectGitignore = false
	}
	if cmd.Flags().Changed("max-size") {
		d.MaxSize = opts.maxSize
	}
	return d
}

// writeContents prints every processed document to Out. With more than one
// file each document is preceded by a header naming it.
func (c *CLI) writeContents(results []pipeline.FileResult) {
	for _, r := range results {
		if r.Result == nil {
			continue
		}
		if len(results) > 1 {
			fmt.Fprintf(c.Out, "==> %s <==\n", r.Path)
		}
		fmt.Fprint(c.Out, r.Result.Content)
	}
}

func (c *CLI) reportCheck(results []pipeline.FileResult) {
	var needFix int
	for _, r := range results {
		switch r.Status {
		case pipeline.StatusModified:
			needFix++
			printWarning(c.Err, "%s needs fixing", r.Path)
			printStats(c.Err, r.Result.Stats.BlocksScanned, r.Result.Stats.BlocksRepaired,
				skippedBlocks(r.Result.Stats), r.Result.CacheHit)
		case pipeline.StatusSkipped:
			printDetail(c.Err, "%s skipped: %s", r.Path, r.Reason)
		}
	}
	if needFix == 0 {
		printSuccess(c.Err, "All files are clean")
		return
	}
	printNewline(c.Err)
	printNextStep(c.Err, "Fix them", appName+" --in-place")
}

func (c *CLI) reportWritten(results []pipeline.FileResult) {
	var written int
	for _, r := range results {
		if r.Written {
			written++
			printFile(c.Err, r.Path)
		}
	}
	if written == 0 {
		printInfo(c.Err, "Nothing to fix")
		return
	}
	printSuccess(c.Err, "Fixed %d files", written)
}

func skippedBlocks(s pipeline.Stats) int {
	n := 0
	for _, v := range s.BlocksSkipped {
		n += v
	}
	return n
}

// ExitCode reports the exit status for err: 0 for nil, 130 for an
// interrupted run and 1 otherwise.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case stderrors.Is(err, context.Canceled):
		return 130
	default:
		return 1
	}
}

// PrintError writes err to w unless it is a check failure or an
// interruption, which are reported by the exit status alone.
func PrintError(w io.Writer, err error) {
	if err == nil || stderrors.Is(err, ErrCheckFailed) || ExitCode(err) == 130 {
		return
	}
	printError(w, "%s", errors.UserMessage(err))
}

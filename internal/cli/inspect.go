package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/ascfix/pkg/diagram"
	"github.com/matzehuels/ascfix/pkg/diagram/export"
	"github.com/matzehuels/ascfix/pkg/errors"
	"github.com/matzehuels/ascfix/pkg/pipeline"
)

// inspectOpts holds the command-line flags for the inspect command.
type inspectOpts struct {
	output   string  // output file; stdout for text formats when empty
	format   string  // text, json, dot, svg or png
	block    int     // 1-based block index; 0 means every block
	detected bool    // show the raw detection instead of the normalized inventory
	scale    float64 // PNG scale factor
}

// inspectCommand creates the inspect command, which prints the geometry of
// each diagram block without changing the file.
func (c *CLI) inspectCommand() *cobra.Command {
	opts := inspectOpts{format: "text", scale: 2}

	cmd := &cobra.Command{
		Use:   "inspect <file>",
		Short: "Show the boxes, arrows and labels found in each diagram block",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := errors.ValidateFormat(opts.format); err != nil {
				return err
			}
			if opts.block < 0 {
				return errors.New(errors.ErrCodeInvalidInput, "--block must be positive")
			}
			return c.runInspect(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: stdout, or <file>.block<N>.<format> for svg/png)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: text, json, dot, svg, png")
	cmd.Flags().IntVar(&opts.block, "block", 0, "only inspect block N (1-based)")
	cmd.Flags().BoolVar(&opts.detected, "detected", false, "show the detected inventory before normalization")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "PNG scale factor")

	return cmd
}

func (c *CLI) runInspect(ctx context.Context, path string, opts inspectOpts) error {
	logger := loggerFromContext(ctx)

	data, err := readDocument(path)
	if err != nil {
		return err
	}
	blocks := pipeline.Inspect(string(data))
	logger.Debugf("Found %d diagram blocks in %s", len(blocks), path)

	indices := make([]int, 0, len(blocks))
	if opts.block > 0 {
		if opts.block > len(blocks) {
			return errors.New(errors.ErrCodeInvalidInput, "%s has %d diagram blocks, cannot select block %d", path, len(blocks), opts.block)
		}
		indices = append(indices, opts.block-1)
	} else {
		for i := range blocks {
			indices = append(indices, i)
		}
	}

	inventory := func(b pipeline.BlockInspection) diagram.Inventory {
		if opts.detected {
			return b.Detected
		}
		return b.Normalized
	}

	switch opts.format {
	case "text":
		return c.writeOutput(opts.output, func(w io.Writer) error {
			if len(indices) == 0 {
				fmt.Fprintf(w, "No diagram blocks in %s\n", path)
			}
			for _, i := range indices {
				writeBlockText(w, i+1, blocks[i], inventory(blocks[i]))
			}
			return nil
		})

	case "json":
		docs := make([]json.RawMessage, 0, len(indices))
		for _, i := range indices {
			b := blocks[i]
			doc, err := export.ToJSON(inventory(b),
				export.WithJSONSource(path, b.StartLine+1),
				export.WithJSONGroups(b.Groups),
				export.WithJSONIssues(b.Issues))
			if err != nil {
				return errors.Wrap(errors.ErrCodeInternal, err, "encode block %d", i+1)
			}
			docs = append(docs, doc)
		}
		out, err := json.MarshalIndent(docs, "", "  ")
		if err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "encode blocks")
		}
		return c.writeOutput(opts.output, func(w io.Writer) error {
			_, err := fmt.Fprintln(w, string(out))
			return err
		})

	case "dot":
		return c.writeOutput(opts.output, func(w io.Writer) error {
			for _, i := range indices {
				if len(indices) > 1 {
					fmt.Fprintf(w, "// block %d, line %d\n", i+1, blocks[i].StartLine+1)
				}
				if _, err := io.WriteString(w, export.ToDOT(inventory(blocks[i]))); err != nil {
					return err
				}
			}
			return nil
		})
	}

	// svg and png render one block per file.
	if len(indices) == 0 {
		printWarning(c.Err, "No diagram blocks in %s", path)
		return nil
	}
	if len(indices) > 1 && opts.output != "" {
		return errors.New(errors.ErrCodeInvalidInput, "-o needs --block when %s has %d blocks", path, len(indices))
	}
	for _, i := range indices {
		out := opts.output
		if out == "" {
			out = fmt.Sprintf("%s.block%d.%s", strings.TrimSuffix(path, filepath.Ext(path)), i+1, opts.format)
		}
		data, err := renderImage(ctx, c.Err, inventory(blocks[i]), opts)
		if err != nil {
			return err
		}
		if err := os.WriteFile(out, data, 0o644); err != nil {
			return errors.Wrap(errors.ErrCodeIO, err, "write %s", out)
		}
		logger.Debugf("Generated %s: %d bytes", out, len(data))
		printFile(c.Err, out)
	}
	return nil
}

// renderImage renders inv as SVG through Graphviz or as a PNG preview.
func renderImage(ctx context.Context, status io.Writer, inv diagram.Inventory, opts inspectOpts) ([]byte, error) {
	if opts.format == "png" {
		data, err := export.RenderPNG(inv, opts.scale)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "render PNG")
		}
		return data, nil
	}

	spinner := newSpinnerWithContext(ctx, status, "Rendering SVG...")
	spinner.Start()
	data, err := export.RenderSVG(ctx, export.ToDOT(inv))
	if err != nil {
		spinner.StopWithError("Rendering failed")
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render SVG")
	}
	spinner.Stop()
	return data, nil
}

// writeBlockText prints a human-readable summary of one block.
func writeBlockText(w io.Writer, n int, b pipeline.BlockInspection, inv diagram.Inventory) {
	fmt.Fprintln(w, StyleTitle.Render(fmt.Sprintf("Block %d", n))+StyleDim.Render(fmt.Sprintf(" (line %d)", b.StartLine+1)))

	for i, box := range inv.Boxes {
		parent := "-"
		if box.HasParent {
			parent = fmt.Sprintf("#%d", box.Parent)
		}
		fmt.Fprintf(w, "  box #%d %s (%d,%d)-(%d,%d) parent %s\n",
			i, box.Style, box.Top(), box.Left(), box.Bottom(), box.Right(), parent)
	}
	for _, a := range inv.HorizontalArrows {
		fmt.Fprintf(w, "  arrow row %d cols %d-%d %c\n", a.Row, a.StartCol, a.EndCol, a.ArrowChar)
	}
	for _, a := range inv.VerticalArrows {
		tip := "│"
		if a.HasTip() {
			tip = string(a.ArrowChar)
		}
		fmt.Fprintf(w, "  arrow col %d rows %d-%d %s\n", a.Col, a.StartRow, a.EndRow, tip)
	}
	for _, t := range inv.TextRows {
		fmt.Fprintf(w, "  text  row %d cols %d-%d %q\n", t.Row, t.StartCol, t.EndCol, t.Content)
	}
	for _, l := range inv.Labels {
		fmt.Fprintf(w, "  label (%d,%d) %q on %s #%d\n", l.Row, l.Col, l.Content, l.AttachedTo.Kind, l.AttachedTo.Index)
	}

	ch := b.Changes
	if ch.Changed() {
		fmt.Fprintf(w, "  %s %d widened, %d expanded, %d arrows snapped\n",
			StyleHighlight.Render("normalize:"), ch.BoxesWidened, ch.ParentsExpanded, ch.ArrowsSnapped)
	} else {
		fmt.Fprintln(w, "  "+StyleDim.Render("normalize: no changes"))
	}
	for _, issue := range b.Issues {
		fmt.Fprintln(w, "  "+StyleWarning.Render(issue.String()))
	}
	q := b.Quality
	qline := fmt.Sprintf("  quality: %.2f (text %.2f, structure %.2f, visual %.2f)",
		q.Score, q.Metrics.TextPreservation, q.Metrics.StructurePreservation, q.Metrics.VisualConsistency)
	if q.Acceptable() {
		fmt.Fprintln(w, StyleDim.Render(qline))
	} else {
		fmt.Fprintln(w, StyleWarning.Render(qline))
	}
	for _, issue := range q.Issues {
		fmt.Fprintf(w, "  %s %d:%d %s\n", StyleWarning.Render(string(issue.Kind)), issue.Line+1, issue.Col+1, issue.Message)
	}
	fmt.Fprintln(w)
}

// writeOutput runs fn against path, or against Out when path is empty.
func (c *CLI) writeOutput(path string, fn func(io.Writer) error) error {
	if path == "" {
		return fn(c.Out)
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "create %s", path)
	}
	if err := fn(f); err != nil {
		f.Close()
		return errors.Wrap(errors.ErrCodeIO, err, "write %s", path)
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "write %s", path)
	}
	printFile(c.Err, path)
	return nil
}

// readDocument reads a Markdown file and rejects binary content.
func readDocument(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.ErrCodeFileNotFound, "no such file: %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeIO, err, "read %s", path)
	}
	if err := errors.ValidateContent(string(data), 0); err != nil {
		return nil, err
	}
	return data, nil
}

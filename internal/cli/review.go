package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/ascfix/pkg/config"
	"github.com/matzehuels/ascfix/pkg/errors"
	"github.com/matzehuels/ascfix/pkg/pipeline"
)

// reviewCommand creates the review command, an interactive alternative to
// --in-place that applies only the repairs the user accepts.
func (c *CLI) reviewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "review <file>",
		Short: "Interactively accept or reject diagram repairs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			return c.runReview(cmd.Context(), cfg, args[0])
		},
	}
}

func (c *CLI) runReview(ctx context.Context, cfg config.Config, path string) error {
	data, err := readDocument(path)
	if err != nil {
		return err
	}
	base, repaired, err := reviewBlocks(string(data), cfg)
	if err != nil {
		return err
	}
	if len(repaired) == 0 {
		printInfo(c.Err, "No diagram repairs in %s", path)
		return nil
	}

	final, err := tea.NewProgram(NewReviewModel(path, repaired), tea.WithContext(ctx)).Run()
	if err != nil {
		return fmt.Errorf("run review: %w", err)
	}
	m := final.(ReviewModel)
	if !m.Write {
		printInfo(c.Err, "No changes written")
		return nil
	}

	accepted := m.Accepted()
	out := pipeline.ApplyBlocks(base, accepted)
	if out == string(data) {
		printInfo(c.Err, "Nothing to write")
		return nil
	}
	if err := pipeline.WriteFileAtomic(path, []byte(out)); err != nil {
		return err
	}
	printSuccess(c.Err, "Applied %d of %d repairs", len(accepted), len(repaired))
	printFile(c.Err, path)
	return nil
}

// reviewBlocks returns the document with wrapped tables joined and the
// repaired blocks of that document. Line numbers in the reports refer to
// the returned base content.
func reviewBlocks(content string, cfg config.Config) (string, []pipeline.BlockReport, error) {
	opts := pipelineOptions(cfg, pipeline.ModeDiagram)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return "", nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "review options")
	}
	safe := opts
	safe.Mode = pipeline.ModeSafe
	base := pipeline.Process(content, safe).Content

	var repaired []pipeline.BlockReport
	for _, b := range pipeline.Process(base, opts).Blocks {
		if b.Outcome == pipeline.OutcomeRepaired {
			repaired = append(repaired, b)
		}
	}
	return base, repaired, nil
}

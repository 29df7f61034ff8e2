package pipeline

import (
	"slices"
	"time"

	"github.com/matzehuels/ascfix/pkg/markdown"
)

// Process runs every stage enabled by opts over content. It is pure: no
// cache, no logging, no hooks. Options are used as given, so callers
// should have called ValidateAndSetDefaults.
func Process(content string, opts Options) Result {
	start := time.Now()
	var res Result

	lines, trailing := markdown.SplitLines(content)

	if opts.Fences {
		res.Stats.FencesRepaired = len(markdown.CheckFences(lines))
		lines = markdown.RepairFences(lines)
	}

	text := markdown.JoinLines(lines, trailing)
	if markdown.HasWrappedCells(text) {
		text = markdown.UnwrapTables(text)
		res.Stats.TablesUnwrapped = true
	}

	if opts.Lists {
		text, res.Stats.ListItemsFixed = markdown.NormalizeLists(text)
	}

	if opts.Mode.RepairsDiagrams() {
		lines, trailing = markdown.SplitLines(text)
		lines, res.Blocks = repairBlocks(lines, opts, &res.Stats)
		text = markdown.JoinLines(lines, trailing)
	}

	res.Content = text
	res.Changed = text != content
	res.Stats.Duration = time.Since(start)
	return res
}

// repairBlocks processes diagram blocks bottom-up so replacing a block
// never shifts the start line of a block not yet processed. Reports are
// returned in document order with line numbers of the input.
func repairBlocks(lines []string, opts Options, stats *Stats) ([]string, []BlockReport) {
	blocks := markdown.ScanLines(lines)
	reports := make([]BlockReport, len(blocks))
	for i := len(blocks) - 1; i >= 0; i-- {
		b := blocks[i]
		start := time.Now()
		rep := RepairBlock(b.Lines, opts)
		rep.StartLine = b.StartLine
		rep.EndLine = b.EndLine()
		rep.Duration = time.Since(start)
		if rep.Outcome == OutcomeRepaired {
			lines = markdown.ReplaceBlock(lines, b, rep.After)
		}
		reports[i] = rep
	}
	for _, rep := range reports {
		stats.record(rep.Outcome)
	}
	return lines, reports
}

// ApplyBlocks replaces the lines of each repaired report in content with
// its After lines. Reports must come from processing content in diagram
// mode; other outcomes are ignored. It lets callers apply a chosen subset
// of repairs.
func ApplyBlocks(content string, reports []BlockReport) string {
	lines, trailing := markdown.SplitLines(content)
	sorted := slices.Clone(reports)
	slices.SortFunc(sorted, func(a, b BlockReport) int { return b.StartLine - a.StartLine })
	for _, r := range sorted {
		if r.Outcome != OutcomeRepaired || r.EndLine > len(lines) {
			continue
		}
		lines = markdown.ReplaceBlock(lines, markdown.DiagramBlock{StartLine: r.StartLine, Lines: r.Before}, r.After)
	}
	return markdown.JoinLines(lines, trailing)
}

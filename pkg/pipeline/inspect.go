package pipeline

import (
	"github.com/matzehuels/ascfix/pkg/diagram"
	"github.com/matzehuels/ascfix/pkg/diagram/detect"
	"github.com/matzehuels/ascfix/pkg/diagram/normalize"
	"github.com/matzehuels/ascfix/pkg/diagram/render"
	"github.com/matzehuels/ascfix/pkg/grid"
	"github.com/matzehuels/ascfix/pkg/markdown"
)

// BlockInspection is the geometry found in one diagram block.
type BlockInspection struct {
	StartLine  int               `json:"start_line"`
	Lines      []string          `json:"lines"`
	Detected   diagram.Inventory `json:"detected"`
	Normalized diagram.Inventory `json:"normalized"`
	Changes    normalize.Result  `json:"changes"`
	Groups     [][]int           `json:"groups,omitempty"`
	Issues     []render.Issue    `json:"issues,omitempty"`
	Quality    QualityReport     `json:"quality"`
}

// Inspect detects and normalizes every diagram block of content without
// changing it. Inline code and links are masked as in repair, and Issues
// lists what the validator finds on the re-rendered block. Quality scores
// the re-rendered block against the masked input.
func Inspect(content string) []BlockInspection {
	lines, _ := markdown.SplitLines(content)
	blocks := markdown.ScanLines(lines)
	out := make([]BlockInspection, 0, len(blocks))
	for _, b := range blocks {
		masked := make([]string, len(b.Lines))
		for i, l := range b.Lines {
			masked[i], _ = markdown.MaskProtected(l)
		}
		g := grid.FromLines(masked)
		inv := detect.Detect(g)
		norm, changes := normalize.Normalize(inv)
		rendered := render.RenderOntoGrid(g, norm)
		out = append(out, BlockInspection{
			StartLine:  b.StartLine,
			Lines:      b.Lines,
			Detected:   inv,
			Normalized: norm,
			Changes:    changes,
			Groups:     normalize.HorizontalGroups(norm),
			Issues:     render.Validate(rendered, norm),
			Quality:    Quality(masked, renderedLines(rendered, len(masked))),
		})
	}
	return out
}

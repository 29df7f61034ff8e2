package export

import (
	"encoding/json"

	"github.com/matzehuels/ascfix/pkg/diagram"
	"github.com/matzehuels/ascfix/pkg/diagram/render"
)

// JSONOption configures JSON output via [ToJSON].
type JSONOption func(*jsonDoc)

// WithJSONGroups records side-by-side box groups.
func WithJSONGroups(groups [][]int) JSONOption { return func(d *jsonDoc) { d.Groups = groups } }

// WithJSONIssues records validation issues for the rendered block.
func WithJSONIssues(issues []render.Issue) JSONOption {
	return func(d *jsonDoc) { d.Issues = issues }
}

// WithJSONSource records where the block starts in its document (1-based).
func WithJSONSource(path string, line int) JSONOption {
	return func(d *jsonDoc) { d.Path, d.Line = path, line }
}

type jsonDoc struct {
	Path    string            `json:"path,omitempty"`
	Line    int               `json:"line,omitempty"`
	Height  int               `json:"height"`
	Width   int               `json:"width"`
	Diagram diagram.Inventory `json:"diagram"`
	Groups  [][]int           `json:"groups,omitempty"`
	Issues  []render.Issue    `json:"issues,omitempty"`
}

// ToJSON exports inv as a pretty-printed JSON document. Glyph fields are
// written as code points.
func ToJSON(inv diagram.Inventory, opts ...JSONOption) ([]byte, error) {
	doc := jsonDoc{Diagram: inv}
	doc.Height, doc.Width = inv.Bounds()
	for _, opt := range opts {
		opt(&doc)
	}
	return json.MarshalIndent(doc, "", "  ")
}

package detect

import (
	"github.com/matzehuels/ascfix/pkg/diagram"
	"github.com/matzehuels/ascfix/pkg/grid"
)

// ConnectionLines always returns nil. Tracing L-shaped connectors needs a
// path search with collision checks against boxes and text; until that
// exists no connector is reported, so none can be redrawn wrongly.
//
// TODO(connectors): trace L-shaped paths between box borders with a BFS
// that refuses to cross box interiors and text rows.
func ConnectionLines(g *grid.Grid, inv diagram.Inventory) []diagram.ConnectionLine {
	return nil
}

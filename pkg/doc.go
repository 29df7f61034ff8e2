// Package pkg provides the core libraries for ascfix, a repair tool for
// ASCII box-drawing diagrams in Markdown.
//
// # Overview
//
// ascfix finds diagram blocks in Markdown, measures their geometry and
// rewrites them so boxes fit their text, nested boxes keep a margin and
// arrows line up with the boxes they connect. The pkg directory is
// organized into three areas:
//
//  1. Geometry core: [grid], [diagram] and its detect, normalize, render
//     and export subpackages. Pure functions, no I/O and no errors.
//  2. Documents: [markdown] (block scanner, fences, tables, lists, links),
//     [discovery] (files and .gitignore) and [pipeline] (modes, safety
//     gates, quality reports, batches).
//  3. Infrastructure: [cache], [config], [errors], [observability],
//     [buildinfo].
//
// # Architecture
//
// The typical data flow for one diagram block:
//
//	Markdown document
//	         ↓
//	    [markdown] package (find diagram blocks, mask inline code and links)
//	         ↓
//	    [grid] package (block lines as a 2D rune grid)
//	         ↓
//	    [diagram/detect] package (boxes, arrows, text rows, labels)
//	         ↓
//	    [diagram/normalize] package (widen, nest, snap arrows)
//	         ↓
//	    [diagram/render] package (draw the inventory onto the grid)
//	         ↓
//	    Repaired block (or the original, when a safety gate trips)
//
// # Quick Start
//
// Repair one block:
//
//	g := grid.FromLines(lines)
//	inv, _ := normalize.Normalize(detect.Detect(g))
//	fixed := render.RenderOntoGrid(g, inv).TrimmedLines()
//
// Repair a document with every safety gate:
//
//	opts := pipeline.DefaultOptions()
//	opts.Mode = pipeline.ModeDiagram
//	res, err := pipeline.NewRunner(nil, nil, logger).ProcessDocument(ctx, content, opts)
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...               # All tests
//	go test ./pkg/diagram/...       # Geometry core
//	go test -run Example ./pkg/...  # Examples only
//
// The Redis and MongoDB cache tests run only when ASCFIX_TEST_REDIS_URL or
// ASCFIX_TEST_MONGO_URI is set.
//
// [grid]: https://pkg.go.dev/github.com/matzehuels/ascfix/pkg/grid
// [diagram]: https://pkg.go.dev/github.com/matzehuels/ascfix/pkg/diagram
// [diagram/detect]: https://pkg.go.dev/github.com/matzehuels/ascfix/pkg/diagram/detect
// [diagram/normalize]: https://pkg.go.dev/github.com/matzehuels/ascfix/pkg/diagram/normalize
// [diagram/render]: https://pkg.go.dev/github.com/matzehuels/ascfix/pkg/diagram/render
// [markdown]: https://pkg.go.dev/github.com/matzehuels/ascfix/pkg/markdown
// [discovery]: https://pkg.go.dev/github.com/matzehuels/ascfix/pkg/discovery
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/ascfix/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/ascfix/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/ascfix/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/ascfix/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/ascfix/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/ascfix/pkg/buildinfo
package pkg

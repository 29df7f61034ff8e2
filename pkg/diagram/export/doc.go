// Package export converts a detected diagram into formats other tools read.
//
// # Formats
//
//   - [ToJSON] writes the inventory with optional grouping and validation
//     results, for scripting and debugging detection.
//   - [ToDOT] describes boxes as nodes and arrows as edges in Graphviz DOT.
//   - [RenderSVG] lays the DOT source out in-process.
//   - [RenderPNG] paints the diagram cell by cell in a monospace font.
//
// # Dependencies
//
// SVG output uses [github.com/goccy/go-graphviz]. PNG output uses
// [github.com/fogleman/gg] with the Go Mono face from golang.org/x/image.
package export

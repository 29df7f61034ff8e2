// Package detect finds diagram primitives in a character grid.
//
// [Detect] is a pure function from a [grid.Grid] to a [diagram.Inventory].
// It runs the individual detectors in a fixed order:
//
//  1. [Boxes] flood-fills connected box-drawing glyphs and keeps components
//     whose bounding rectangle has corner glyphs at its top-left and
//     bottom-right cells
//  2. [Hierarchy] links boxes that strictly contain one another
//  3. [HorizontalArrows] and [VerticalArrows] scan rows and columns for runs
//     of line and tip glyphs
//  4. [TextRows] extracts interior rows of every box, unless the block nests
//     boxes, in which case no text rows are extracted at all
//  5. [ConnectionLines] is a placeholder that never reports a line
//  6. [Labels] collects leftover words next to a box or a vertical arrow
//
// Every detector prefers to miss a primitive over reporting a wrong one.
// Nothing here returns an error: ambiguous input simply yields fewer
// primitives.
package detect

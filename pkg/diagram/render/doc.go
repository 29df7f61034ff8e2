// Package render draws a [diagram.Inventory] onto a character grid.
//
// [RenderDiagram] draws on a blank grid sized to the inventory.
// [RenderOntoGrid] draws on a copy of the block the inventory was detected
// from, so text the detector never modeled passes through untouched.
//
// Primitives are drawn in a fixed order and later ones win: box borders,
// interior text, horizontal arrows, vertical arrows, connection lines and
// finally labels. Arrows with an end inside a box interior are not drawn.
// Writes outside the grid are dropped.
package render

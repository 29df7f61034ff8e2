// Package diagram defines the primitive inventory: the data model shared by
// detection, normalization and rendering of box-and-arrow diagrams.
//
// # Primitives
//
// An [Inventory] holds every primitive found in one diagram block:
//
//   - [Box]: a rectangle drawn with one [BoxStyle] (Single, Double, Rounded)
//   - [HorizontalArrow] and [VerticalArrow]: runs of line glyphs with a tip
//   - [TextRow]: the content of one interior row of a box
//   - [Label]: free text attached to a box or a vertical arrow
//   - [ConnectionLine]: an L-shaped path made of [Segment] values
//
// # References
//
// Relationships are plain indices into the inventory's own slices. A box's
// parent is an index into Boxes, a label's [Attachment] is an index into
// Boxes or VerticalArrows. No transform in this module reorders or removes
// primitives, so indices stay valid from detection to rendering. Copying an
// inventory with [Inventory.Clone] keeps every reference intact.
//
// # Coordinates
//
// All positions are (row, col) cell coordinates with (0, 0) at the top left.
// Spans are inclusive on both ends.
package diagram

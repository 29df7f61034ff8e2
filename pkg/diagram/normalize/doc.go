// Package normalize repairs the geometry of a detected diagram inventory.
//
// # Overview
//
// Each transform takes a [diagram.Inventory] by value and returns a new one;
// the input is never mutated. [Normalize] runs them in a fixed order:
//
//  1. [BoxWidths] widens boxes that are narrower than their text.
//  2. [NestedBoxes] grows parents so every child keeps a one-cell margin.
//  3. [Padding] pins every text row to one cell inside its box.
//  4. [AlignHorizontalArrows] orders horizontal arrows by row and column.
//  5. [AlignVerticalArrows] snaps vertical arrows to a box edge or center.
//  6. [BalanceHorizontalBoxes] groups side-by-side boxes.
//
// # Idempotence
//
// Every transform is a fixed point on its own output, and so is the whole
// pipeline: running detect, normalize and render on an already normalized
// block reproduces it byte for byte. Boxes only ever grow right or down, and
// vertical arrows already on a candidate column stay where they are.
package normalize

// Package markdown finds and repairs the parts of a Markdown document that
// ascfix touches.
//
// # Diagram blocks
//
// [Scan] splits a document into blank-line separated blocks outside fenced
// code and ignore regions, and keeps the ones that contain box-drawing or
// arrow glyphs. Ignore regions look like:
//
//	<!-- ascfix:ignore -->
//	...
//	<!-- /ascfix:ignore -->
//
// Inline code spans and links are masked with [MaskProtected] before
// detection and put back with [RestoreInlineCode], so glyphs inside
// backticks or link text are never treated as geometry. [ReplaceBlock] swaps a block's lines while leaving
// every other line untouched.
//
// # Fences
//
// [DetectFences], [PairFences] and [ValidateFences] find code fences that
// are unclosed or closed with the wrong marker; [RepairFences] fixes them.
//
// # Tables
//
// [UnwrapTables] joins hard-wrapped table rows back into single rows. A
// pipe inside inline code or a link ([DetectLinks]) does not split a cell.
//
// # Lists
//
// [DetectLists] groups list items, and [NormalizeLists] rewrites nested
// items to two spaces of indentation per level.
package markdown

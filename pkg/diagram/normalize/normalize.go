package normalize

import "github.com/matzehuels/ascfix/pkg/diagram"

// Result contains metrics about the transforms applied to an inventory.
type Result struct {
	// BoxesWidened is the number of boxes expanded to fit their text.
	BoxesWidened int `json:"boxes_widened"`

	// ParentsExpanded is the number of parent boxes grown to keep a margin
	// around their children.
	ParentsExpanded int `json:"parents_expanded"`

	// ArrowsSnapped is the number of vertical arrows moved to a new column.
	ArrowsSnapped int `json:"arrows_snapped"`

	// Groups is the number of side-by-side box groups found.
	Groups int `json:"groups"`
}

// Changed reports whether any transform moved geometry.
func (r Result) Changed() bool {
	return r.BoxesWidened > 0 || r.ParentsExpanded > 0 || r.ArrowsSnapped > 0
}

// Options selects which transforms [NormalizeWithOptions] applies.
//
// The zero value applies all of them.
type Options struct {
	SkipBoxWidths      bool
	SkipNestedBoxes    bool
	SkipPadding        bool
	SkipArrowAlignment bool
	SkipBalance        bool
}

// Normalize runs every transform in order and returns the repaired inventory.
func Normalize(inv diagram.Inventory) (diagram.Inventory, Result) {
	return NormalizeWithOptions(inv, Options{})
}

// NormalizeWithOptions runs the transforms not disabled by opts.
func NormalizeWithOptions(inv diagram.Inventory, opts Options) (diagram.Inventory, Result) {
	var res Result
	out := inv.Clone()

	if !opts.SkipBoxWidths {
		next := BoxWidths(out)
		res.BoxesWidened = countResized(out.Boxes, next.Boxes)
		out = next
	}
	if !opts.SkipNestedBoxes {
		next := NestedBoxes(out)
		res.ParentsExpanded = countResized(out.Boxes, next.Boxes)
		out = next
	}
	if !opts.SkipPadding {
		out = Padding(out)
	}
	if !opts.SkipArrowAlignment {
		out = AlignHorizontalArrows(out)
		next := AlignVerticalArrows(out)
		for i := range next.VerticalArrows {
			if next.VerticalArrows[i].Col != out.VerticalArrows[i].Col {
				res.ArrowsSnapped++
			}
		}
		out = next
	}
	if !opts.SkipBalance {
		out = BalanceHorizontalBoxes(out)
		res.Groups = len(HorizontalGroups(out))
	}
	return out, res
}

func countResized(before, after []diagram.Box) int {
	n := 0
	for i := range before {
		if before[i].BottomRight != after[i].BottomRight {
			n++
		}
	}
	return n
}

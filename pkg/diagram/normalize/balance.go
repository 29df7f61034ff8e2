package normalize

import (
	"slices"

	"github.com/matzehuels/ascfix/pkg/diagram"
)

// maxGroupGap is the widest column gap between two boxes that still counts
// as side by side.
const maxGroupGap = 1

// HorizontalGroups returns groups of box indices that sit side by side: two
// boxes are adjacent when their row ranges overlap and at most one empty
// column separates them. Groups are the connected components of that
// relation, each listed in box order. Boxes with no neighbor are omitted,
// and stacked boxes never group.
func HorizontalGroups(inv diagram.Inventory) [][]int {
	n := len(inv.Boxes)
	grouped := make([]bool, n)
	var groups [][]int

	for seed := range n {
		if grouped[seed] {
			continue
		}
		group := []int{seed}
		grouped[seed] = true
		for changed := true; changed; {
			changed = false
			for k := range n {
				if grouped[k] {
					continue
				}
				for _, m := range group {
					if adjacent(inv.Boxes[m], inv.Boxes[k]) {
						group = append(group, k)
						grouped[k] = true
						changed = true
						break
					}
				}
			}
		}
		if len(group) > 1 {
			slices.Sort(group)
			groups = append(groups, group)
		}
	}
	return groups
}

func adjacent(a, b diagram.Box) bool {
	if !a.RowsOverlap(b) || a.ContainsBox(b) || b.ContainsBox(a) {
		return false
	}
	gap := a.HorizontalGap(b)
	return gap >= 0 && gap <= maxGroupGap
}

// BalanceHorizontalBoxes is the side-by-side stage of the pipeline. It
// leaves geometry untouched; callers read the grouping through
// [HorizontalGroups].
func BalanceHorizontalBoxes(inv diagram.Inventory) diagram.Inventory {
	return inv.Clone()
}

package detect

import (
	"slices"

	"github.com/matzehuels/ascfix/pkg/diagram"
)

// Hierarchy sets parent and child links on boxes in place. A box's parent is
// the smallest box that strictly contains it, so Children only ever lists
// direct descendants. Boxes that merely touch are left unrelated.
func Hierarchy(boxes []diagram.Box) {
	for i := range boxes {
		boxes[i].HasParent = false
		boxes[i].Parent = 0
		boxes[i].Children = nil
	}

	for i := range boxes {
		parent := -1
		for j := range boxes {
			if i == j || !boxes[j].ContainsBox(boxes[i]) {
				continue
			}
			if parent < 0 || area(boxes[j]) < area(boxes[parent]) {
				parent = j
			}
		}
		if parent < 0 {
			continue
		}
		boxes[i].Parent = parent
		boxes[i].HasParent = true
		if !slices.Contains(boxes[parent].Children, i) {
			boxes[parent].Children = append(boxes[parent].Children, i)
		}
	}
}

func area(b diagram.Box) int {
	return b.Width() * b.Height()
}

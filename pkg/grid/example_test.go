package grid_test

import (
	"fmt"

	"github.com/matzehuels/ascfix/pkg/grid"
)

func ExampleFromLines() {
	g := grid.FromLines([]string{"┌─┐", "│ │", "└─┘"})

	r, ok := g.Get(0, 0)
	fmt.Println(g.Height(), g.Width(), string(r), ok)

	_, ok = g.Get(5, 5)
	fmt.Println(ok)
	// Output:
	// 3 3 ┌ true
	// false
}

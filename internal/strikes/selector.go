// Package strikes derives the symmetric strike ladder collected around the
// at-the-money strike.
package strikes

import "sort"

// Select returns itm strikes below atm, the atm strike itself, and otm
// strikes above, each spaced by step, sorted ascending. Inputs are assumed
// well-formed; the caller validates non-negative counts.
func Select(atm float64, itm, otm int, step float64) []float64 {
	ladder := make([]float64, 0, itm+otm+1)

	for i := 1; i <= itm; i++ {
		ladder = append(ladder, atm-float64(i)*step)
	}
	ladder = append(ladder, atm)
	for i := 1; i <= otm; i++ {
		ladder = append(ladder, atm+float64(i)*step)
	}

	sort.Float64s(ladder)
	return ladder
}

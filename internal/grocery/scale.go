// Package grocery turns a cart of dishes into a persisted grocery list and
// keeps that list editable: scaling, expansion, merging, reconciliation and
// in-memory paging of the list's ingredients.
package grocery

import "github.com/shopspring/decimal"

// QuantityPlaces is the number of decimals every scaled quantity is rounded to.
const QuantityPlaces = 3

// Scale converts a quantity needed for basePeople into the quantity needed
// for targetPeople. A zero base or a non-positive basePeople yields zero.
func Scale(base decimal.Decimal, basePeople, targetPeople int) decimal.Decimal {
	if base.IsZero() || basePeople <= 0 {
		return decimal.Zero
	}
	ratio := float64(targetPeople) / float64(basePeople)
	// Round yarıyı sıfırdan uzağa yuvarlar (half-up)
	return base.Mul(decimal.NewFromFloat(ratio)).Round(QuantityPlaces)
}

package grocery

import (
	"slices"

	"github.com/shopspring/decimal"
)

// Merge sums the portions of every expansion per ingredient. Sums are exact,
// quantities are not rounded again.
func Merge(expansions [][]Portion) map[uint]decimal.Decimal {
	merged := make(map[uint]decimal.Decimal)
	for _, portions := range expansions {
		for _, p := range portions {
			if q, ok := merged[p.IngredientID]; ok {
				merged[p.IngredientID] = q.Add(p.Quantity)
				continue
			}
			merged[p.IngredientID] = p.Quantity
		}
	}
	return merged
}

// sortedIDs: map sırası rastgele, kayıt sırası sabit olsun
func sortedIDs(m map[uint]decimal.Decimal) []uint {
	ids := make([]uint, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

package grocery

import (
	"menuplanner-backend/internal/models"

	"github.com/shopspring/decimal"
)

// Reconciliation is the diff between a saved list and the quantities the
// client wants it to have.
type Reconciliation struct {
	// Updated holds the existing rows with their new quantity.
	Updated []models.GroceryListIngredient
	// Removed holds the existing rows missing from the desired state.
	Removed []models.GroceryListIngredient
	// Added holds desired ingredients the list does not have yet.
	Added map[uint]decimal.Decimal
}

// Reconcile diffs existing against desired. Desired quantities are assumed to
// be positive. The desired map is not modified.
func Reconcile(existing []models.GroceryListIngredient, desired map[uint]decimal.Decimal) Reconciliation {
	remaining := make(map[uint]decimal.Decimal, len(desired))
	for id, q := range desired {
		remaining[id] = q
	}

	rec := Reconciliation{
		Updated: make([]models.GroceryListIngredient, 0, len(existing)),
		Removed: make([]models.GroceryListIngredient, 0),
	}
	for _, item := range existing {
		q, ok := remaining[item.IngredientID]
		if !ok {
			rec.Removed = append(rec.Removed, item)
			continue
		}
		item.Quantity = q
		rec.Updated = append(rec.Updated, item)
		delete(remaining, item.IngredientID)
	}
	rec.Added = remaining
	return rec
}

package grocery

import (
	"slices"

	"menuplanner-backend/internal/models"
	"menuplanner-backend/internal/paging"
)

// IngredientPage is one page of a grocery list's ingredients.
type IngredientPage struct {
	Items         []models.GroceryListIngredient
	TotalElements int64
	TotalPages    int
}

// SortIngredients returns a copy of items ordered by category rank, then
// ingredient name. Equal keys keep their input order.
func SortIngredients(items []models.GroceryListIngredient) []models.GroceryListIngredient {
	sorted := slices.Clone(items)
	slices.SortStableFunc(sorted, func(a, b models.GroceryListIngredient) int {
		return models.CompareIngredients(&a.Ingredient, &b.Ingredient)
	})
	return sorted
}

// Paginate sorts items and returns the slice starting at offset, at most
// limit long. limit must be at least 1.
func Paginate(items []models.GroceryListIngredient, offset, limit int) IngredientPage {
	page := IngredientPage{
		Items:         []models.GroceryListIngredient{},
		TotalElements: int64(len(items)),
		TotalPages:    paging.TotalPages(int64(len(items)), limit),
	}
	if limit <= 0 || offset < 0 || offset >= len(items) {
		return page
	}

	sorted := SortIngredients(items)
	end := min(offset+limit, len(sorted))
	page.Items = sorted[offset:end]
	return page
}

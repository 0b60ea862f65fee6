package grocery

import (
	"fmt"
	"testing"

	"menuplanner-backend/internal/models"
)

func item(id uint, category models.IngredientCategory, name string) models.GroceryListIngredient {
	return models.GroceryListIngredient{
		IngredientID: id,
		Ingredient:   models.Ingredient{ID: id, Name: name, Category: category},
		Quantity:     dec("1"),
	}
}

func TestSortIngredientsOrder(t *testing.T) {
	items := []models.GroceryListIngredient{
		item(1, models.CategoryOther, "Foil"),
		item(2, models.CategoryDairy, "Milk"),
		item(3, models.CategoryVegetables, "Tomato"),
		item(4, models.CategoryDairy, "Butter"),
		item(5, models.CategoryVegetables, "Carrot"),
	}

	sorted := SortIngredients(items)
	var names []string
	for _, it := range sorted {
		names = append(names, it.Ingredient.Name)
	}
	want := "[Carrot Tomato Butter Milk Foil]"
	if fmt.Sprint(names) != want {
		t.Fatalf("got %v, want %s", names, want)
	}
	if items[0].Ingredient.Name != "Foil" {
		t.Fatal("input slice was reordered")
	}
}

func TestSortIngredientsIsStable(t *testing.T) {
	items := []models.GroceryListIngredient{
		item(1, models.CategorySpices, "Salt"),
		item(2, models.CategorySpices, "Salt"),
		item(3, models.CategorySpices, "Salt"),
	}
	sorted := SortIngredients(items)
	for i, it := range sorted {
		if it.IngredientID != uint(i+1) {
			t.Fatalf("equal keys reordered: %v", sorted)
		}
	}
}

func TestPaginateCoversEveryItemOnce(t *testing.T) {
	categories := models.IngredientCategories()
	var items []models.GroceryListIngredient
	for i := 0; i < 23; i++ {
		items = append(items, item(uint(i+1), categories[i%len(categories)], fmt.Sprintf("item-%02d", i)))
	}

	for _, size := range []int{1, 5, 10, 23, 50} {
		first := Paginate(items, 0, size)
		if first.TotalElements != 23 {
			t.Fatalf("size %d: totalElements = %d", size, first.TotalElements)
		}
		wantPages := (23 + size - 1) / size
		if first.TotalPages != wantPages {
			t.Fatalf("size %d: totalPages = %d, want %d", size, first.TotalPages, wantPages)
		}

		var all []models.GroceryListIngredient
		for p := 0; p < first.TotalPages; p++ {
			all = append(all, Paginate(items, p*size, size).Items...)
		}
		sorted := SortIngredients(items)
		if len(all) != len(sorted) {
			t.Fatalf("size %d: pages hold %d items, want %d", size, len(all), len(sorted))
		}
		for i := range all {
			if all[i].IngredientID != sorted[i].IngredientID {
				t.Fatalf("size %d: position %d holds %d, want %d", size, i, all[i].IngredientID, sorted[i].IngredientID)
			}
		}
	}
}

func TestPaginatePastTheEnd(t *testing.T) {
	items := []models.GroceryListIngredient{item(1, models.CategoryDairy, "Milk")}
	page := Paginate(items, 10, 10)
	if len(page.Items) != 0 || page.TotalElements != 1 || page.TotalPages != 1 {
		t.Fatalf("unexpected page: %+v", page)
	}

	empty := Paginate(nil, 0, 10)
	if len(empty.Items) != 0 || empty.TotalElements != 0 || empty.TotalPages != 0 {
		t.Fatalf("unexpected empty page: %+v", empty)
	}
}

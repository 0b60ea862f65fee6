package grocery

import (
	"testing"

	"menuplanner-backend/internal/cart"
	"menuplanner-backend/internal/models"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestScale(t *testing.T) {
	cases := []struct {
		base         string
		basePeople   int
		targetPeople int
		want         string
	}{
		{"200", 4, 2, "100.000"},
		{"100", 3, 1, "33.333"},
		{"100", 3, 2, "66.667"},
		{"0.005", 2, 1, "0.003"},
		{"100", 2, 4, "200.000"},
		{"7", 0, 3, "0.000"},
		{"7", -1, 3, "0.000"},
		{"0", 2, 3, "0.000"},
	}
	for _, tc := range cases {
		got := Scale(dec(tc.base), tc.basePeople, tc.targetPeople)
		if got.StringFixed(3) != tc.want {
			t.Errorf("Scale(%s, %d, %d) = %s, want %s", tc.base, tc.basePeople, tc.targetPeople, got.StringFixed(3), tc.want)
		}
	}

	// decimal.Decimal sıfır değeri "null" miktar yerine geçer
	var missing decimal.Decimal
	if !Scale(missing, 4, 2).IsZero() {
		t.Error("zero value quantity should scale to zero")
	}
}

func TestExpand(t *testing.T) {
	dish := &models.Dish{
		ID:     1,
		People: 4,
		Ingredients: []models.DishIngredient{
			{IngredientID: 10, Quantity: dec("200")},
			{IngredientID: 11, Quantity: dec("3")},
		},
	}

	got := Expand(cart.Entry{DishID: 1, People: 2}, dish)
	if len(got) != 2 {
		t.Fatalf("expected 2 portions, got %d", len(got))
	}
	if got[0].IngredientID != 10 || !got[0].Quantity.Equal(dec("100")) {
		t.Errorf("unexpected first portion: %+v", got[0])
	}
	if !got[1].Quantity.Equal(dec("1.5")) {
		t.Errorf("unexpected second portion: %+v", got[1])
	}

	if n := len(Expand(cart.Entry{People: 2}, nil)); n != 0 {
		t.Errorf("nil dish expanded to %d portions", n)
	}
	if n := len(Expand(cart.Entry{People: 2}, &models.Dish{People: 2})); n != 0 {
		t.Errorf("dish without ingredients expanded to %d portions", n)
	}
}

func TestMergeSharedIngredient(t *testing.T) {
	// A: 4 kişilik 200g un, B: 2 kişilik 100g un
	a := &models.Dish{People: 4, Ingredients: []models.DishIngredient{{IngredientID: 1, Quantity: dec("200")}}}
	b := &models.Dish{People: 2, Ingredients: []models.DishIngredient{{IngredientID: 1, Quantity: dec("100")}}}

	merged := Merge([][]Portion{
		Expand(cart.Entry{People: 2}, a),
		Expand(cart.Entry{People: 4}, b),
	})
	if len(merged) != 1 {
		t.Fatalf("expected one ingredient, got %v", merged)
	}
	if got := merged[1].StringFixed(3); got != "300.000" {
		t.Fatalf("flour = %s, want 300.000", got)
	}
}

func TestMergeIsOrderIndependent(t *testing.T) {
	a := []Portion{{1, dec("33.333")}, {2, dec("1.5")}}
	b := []Portion{{1, dec("66.667")}, {3, dec("0.001")}}
	c := []Portion{{2, dec("0.25")}}

	ab := Merge([][]Portion{a, b, c})
	ba := Merge([][]Portion{c, b, a})
	if len(ab) != 3 || len(ba) != 3 {
		t.Fatalf("expected 3 distinct ingredients, got %v and %v", ab, ba)
	}
	for id, q := range ab {
		if !ba[id].Equal(q) {
			t.Errorf("ingredient %d: %s vs %s", id, q, ba[id])
		}
	}
	// 33.333 + 66.667 tam toplanır, yeniden yuvarlanmaz
	if !ab[1].Equal(dec("100")) {
		t.Errorf("ingredient 1 = %s, want 100", ab[1])
	}
	if !ab[2].Equal(dec("1.75")) {
		t.Errorf("ingredient 2 = %s, want 1.75", ab[2])
	}
}

func TestMergeEmpty(t *testing.T) {
	if got := Merge(nil); len(got) != 0 {
		t.Fatalf("expected empty map, got %v", got)
	}
	if got := Merge([][]Portion{{}, {}}); len(got) != 0 {
		t.Fatalf("expected empty map, got %v", got)
	}
}

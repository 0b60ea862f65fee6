package grocery

import (
	"menuplanner-backend/internal/cart"
	"menuplanner-backend/internal/models"

	"github.com/shopspring/decimal"
)

// Portion is the amount of one ingredient a single cart entry needs.
type Portion struct {
	IngredientID uint
	Quantity     decimal.Decimal
}

// Expand scales every ingredient of dish to entry.People. A nil dish or a
// dish without ingredients expands to nothing.
func Expand(entry cart.Entry, dish *models.Dish) []Portion {
	if dish == nil || len(dish.Ingredients) == 0 {
		return []Portion{}
	}

	portions := make([]Portion, 0, len(dish.Ingredients))
	for _, di := range dish.Ingredients {
		portions = append(portions, Portion{
			IngredientID: di.IngredientID,
			Quantity:     Scale(di.Quantity, dish.People, entry.People),
		})
	}
	return portions
}

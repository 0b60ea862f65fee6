package grocery

import (
	"time"

	"menuplanner-backend/internal/ingredient"
	"menuplanner-backend/internal/models"

	"github.com/shopspring/decimal"
)

type SummaryResponse struct {
	ID          uint      `json:"id"`
	StartOfWeek time.Time `json:"startOfWeek"`
	EndOfWeek   time.Time `json:"endOfWeek"`
}

type IngredientResponse struct {
	Ingredient ingredient.Response `json:"ingredient"`
	Quantity   decimal.Decimal     `json:"quantity"`
}

type IngredientListResponse struct {
	Ingredients   []IngredientResponse `json:"ingredients"`
	TotalElements int64                `json:"totalElements"`
	TotalPages    int                  `json:"totalPages"`
}

// UpdateRequest is the body of PUT /api/grocerylists/:id.
type UpdateRequest struct {
	IngredientsWithQuantity map[uint]decimal.Decimal `json:"ingredientsWithQuantity"`
}

func NewSummaryResponse(l *models.GroceryList) SummaryResponse {
	return SummaryResponse{ID: l.ID, StartOfWeek: l.StartOfWeek, EndOfWeek: l.EndOfWeek}
}

func NewIngredientResponses(items []models.GroceryListIngredient) []IngredientResponse {
	out := make([]IngredientResponse, 0, len(items))
	for i := range items {
		out = append(out, IngredientResponse{
			Ingredient: ingredient.NewResponse(&items[i].Ingredient),
			Quantity:   items[i].Quantity,
		})
	}
	return out
}

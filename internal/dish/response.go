package dish

import (
	"menuplanner-backend/internal/ingredient"
	"menuplanner-backend/internal/models"

	"github.com/shopspring/decimal"
)

type IngredientResponse struct {
	Ingredient ingredient.Response `json:"ingredient"`
	Quantity   decimal.Decimal     `json:"quantity"`
}

type StepResponse struct {
	OrderIndex  int    `json:"orderIndex"`
	Description string `json:"description"`
}

type Response struct {
	ID          uint                 `json:"id"`
	Name        string               `json:"name"`
	Description string               `json:"description"`
	ImageURL    string               `json:"imageUrl"`
	People      int                  `json:"people"`
	Tags        []models.DishTag     `json:"tags"`
	Type        models.CuisineType   `json:"type"`
	Ingredients []IngredientResponse `json:"ingredients"`
	Steps       []StepResponse       `json:"steps"`
}

type ListResponse struct {
	Dishes        []Response `json:"dishes"`
	TotalElements int64      `json:"totalElements"`
	TotalPages    int        `json:"totalPages"`
}

func NewResponse(d *models.Dish) Response {
	resp := Response{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		ImageURL:    d.ImageURL,
		People:      d.People,
		Tags:        append([]models.DishTag{}, d.Tags...),
		Type:        d.Type,
		Ingredients: make([]IngredientResponse, 0, len(d.Ingredients)),
		Steps:       make([]StepResponse, 0, len(d.Steps)),
	}
	for _, di := range d.Ingredients {
		resp.Ingredients = append(resp.Ingredients, IngredientResponse{
			Ingredient: ingredient.NewResponse(&di.Ingredient),
			Quantity:   di.Quantity,
		})
	}
	for _, s := range d.Steps {
		resp.Steps = append(resp.Steps, StepResponse{
			OrderIndex:  s.OrderIndex,
			Description: s.Description,
		})
	}
	return resp
}

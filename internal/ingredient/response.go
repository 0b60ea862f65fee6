package ingredient

import "menuplanner-backend/internal/models"

type Response struct {
	ID          uint                      `json:"id"`
	Name        string                    `json:"name"`
	Description string                    `json:"description"`
	Category    models.IngredientCategory `json:"category"`
	Unit        models.MeasurementUnit    `json:"unit"`
}

type ListResponse struct {
	Ingredients   []Response `json:"ingredients"`
	TotalElements int64      `json:"totalElements"`
	TotalPages    int        `json:"totalPages"`
}

func NewResponse(i *models.Ingredient) Response {
	return Response{
		ID:          i.ID,
		Name:        i.Name,
		Description: i.Description,
		Category:    i.Category,
		Unit:        i.Unit,
	}
}

func NewResponses(items []models.Ingredient) []Response {
	out := make([]Response, 0, len(items))
	for i := range items {
		out = append(out, NewResponse(&items[i]))
	}
	return out
}

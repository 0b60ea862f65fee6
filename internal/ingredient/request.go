package ingredient

import (
	"errors"
	"strings"
	"unicode/utf8"

	"menuplanner-backend/internal/models"
)

type Request struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Unit        string `json:"unit"`
}

// Validate trims the request and converts it into an ingredient owned by
// userID.
func (r Request) Validate(userID uint) (*models.Ingredient, error) {
	name := strings.TrimSpace(r.Name)
	description := strings.TrimSpace(r.Description)

	if n := utf8.RuneCountInString(name); n < 1 || n > 100 {
		return nil, errors.New("name must be between 1 and 100 characters")
	}
	if utf8.RuneCountInString(description) > 250 {
		return nil, errors.New("description cannot be longer than 250 characters")
	}
	category, ok := models.ParseIngredientCategory(r.Category)
	if !ok {
		return nil, errors.New("unknown category: " + r.Category)
	}
	unit, ok := models.ParseMeasurementUnit(r.Unit)
	if !ok {
		return nil, errors.New("unknown unit: " + r.Unit)
	}

	return &models.Ingredient{
		UserID:      userID,
		Name:        name,
		Description: description,
		Category:    category,
		Unit:        unit,
	}, nil
}

// ParseCategories keeps the known categories of a comma separated or repeated
// query value. Unknown names are ignored.
func ParseCategories(values []string) []models.IngredientCategory {
	var out []models.IngredientCategory
	seen := make(map[models.IngredientCategory]bool)
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			c, ok := models.ParseIngredientCategory(part)
			if !ok || seen[c] {
				continue
			}
			seen[c] = true
			out = append(out, c)
		}
	}
	return out
}

package dish

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"menuplanner-backend/internal/models"

	"github.com/shopspring/decimal"
)

var (
	minQuantity = decimal.RequireFromString("0.001")
	maxQuantity = decimal.NewFromInt(1_000_000)

	imageURLPattern = regexp.MustCompile(`^(https?://|/).+`)
)

type IngredientRequest struct {
	IngredientID uint            `json:"ingredientId"`
	Quantity     decimal.Decimal `json:"quantity"`
}

type StepRequest struct {
	Description string `json:"description"`
}

type Request struct {
	Name        string              `json:"name"`
	Description string              `json:"description"`
	ImageURL    string              `json:"imageUrl"`
	People      int                 `json:"people"`
	Tags        []models.DishTag    `json:"tags"`
	Type        models.CuisineType  `json:"type"`
	Ingredients []IngredientRequest `json:"ingredients"`
	Steps       []StepRequest       `json:"steps"`
}

// Normalize trims free text fields in place.
func (r *Request) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Description = strings.TrimSpace(r.Description)
	r.ImageURL = strings.TrimSpace(r.ImageURL)
	r.Type, _ = models.ParseCuisineType(string(r.Type))
	for i := range r.Tags {
		r.Tags[i], _ = models.ParseDishTag(string(r.Tags[i]))
	}
	for i := range r.Steps {
		r.Steps[i].Description = strings.TrimSpace(r.Steps[i].Description)
	}
}

func (r *Request) Validate() error {
	if n := utf8.RuneCountInString(r.Name); n < 1 || n > 100 {
		return errors.New("name must be between 1 and 100 characters")
	}
	if n := utf8.RuneCountInString(r.Description); n < 10 || n > 500 {
		return errors.New("description must be between 10 and 500 characters")
	}
	if len(r.ImageURL) > 255 || !imageURLPattern.MatchString(r.ImageURL) {
		return errors.New("imageUrl must be a valid URL or path shorter than 255 characters")
	}
	if r.People < models.MinPeople || r.People > models.MaxPeople {
		return errors.New("people must be between 1 and 100")
	}
	if r.Type == "" {
		return errors.New("type is required")
	}
	if !r.Type.Valid() {
		return fmt.Errorf("unknown cuisine type %q", r.Type)
	}
	tags := make(map[models.DishTag]bool, len(r.Tags))
	for _, tag := range r.Tags {
		if !tag.Valid() {
			return fmt.Errorf("unknown tag %q", tag)
		}
		if tags[tag] {
			return fmt.Errorf("tag %s is listed more than once", tag)
		}
		tags[tag] = true
	}
	if len(r.Steps) > models.MaxDishStep {
		return fmt.Errorf("a dish cannot have more than %d steps", models.MaxDishStep)
	}
	for i, s := range r.Steps {
		if s.Description == "" || utf8.RuneCountInString(s.Description) > 500 {
			return fmt.Errorf("step %d must have a description of at most 500 characters", i+1)
		}
	}

	seen := make(map[uint]bool, len(r.Ingredients))
	for _, ing := range r.Ingredients {
		if ing.IngredientID == 0 {
			return errors.New("ingredientId is required")
		}
		if seen[ing.IngredientID] {
			return fmt.Errorf("ingredient %d is listed more than once", ing.IngredientID)
		}
		seen[ing.IngredientID] = true

		if ing.Quantity.LessThan(minQuantity) || ing.Quantity.GreaterThan(maxQuantity) {
			return fmt.Errorf("quantity of ingredient %d must be between 0.001 and 1000000", ing.IngredientID)
		}
		if !ing.Quantity.Equal(ing.Quantity.Round(3)) {
			return fmt.Errorf("quantity of ingredient %d can have at most 3 decimals", ing.IngredientID)
		}
	}
	return nil
}

// apply copies the request onto d. Ingredients must already be resolved and
// owned by the caller.
func (r *Request) apply(d *models.Dish, resolved map[uint]*models.Ingredient) {
	d.Name = r.Name
	d.Description = r.Description
	d.ImageURL = r.ImageURL
	d.People = r.People
	d.Type = r.Type
	d.Tags = append(models.DishTags{}, r.Tags...)

	d.Ingredients = make([]models.DishIngredient, 0, len(r.Ingredients))
	for _, ing := range r.Ingredients {
		d.Ingredients = append(d.Ingredients, models.DishIngredient{
			DishID:       d.ID,
			IngredientID: ing.IngredientID,
			Ingredient:   *resolved[ing.IngredientID],
			Quantity:     ing.Quantity,
		})
	}

	d.Steps = make([]models.RecipeStep, 0, len(r.Steps))
	for i, s := range r.Steps {
		d.Steps = append(d.Steps, models.RecipeStep{
			DishID:      d.ID,
			OrderIndex:  i,
			Description: s.Description,
		})
	}
}

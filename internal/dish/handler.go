package dish

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"menuplanner-backend/internal/auth"
	"menuplanner-backend/internal/models"
	"menuplanner-backend/internal/paging"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// IngredientResolver finds an ingredient of the given owner.
type IngredientResolver interface {
	FindByIDAndOwner(id, userID uint) (*models.Ingredient, error)
}

// GET /api/dishes?search=&page=&size=
func ListDishesHandler(repo Repository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}
		page, err := paging.FromQuery(c, paging.DefaultSize)
		if err != nil {
			return err
		}

		dishes, total, err := repo.FindAllByOwner(userID, c.Query("search"), page.Offset(), page.Size)
		if err != nil {
			log.Println("Dishes could not be listed:", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Dishes could not be listed")
		}
		return c.JSON(newListResponse(dishes, total, page.Size))
	}
}

// GET /api/dishes/filter?search=&countries=&page=&size=
func FilterDishesHandler(repo Repository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}
		page, err := paging.FromQuery(c, paging.DefaultSize)
		if err != nil {
			return err
		}

		// Bilinmeyen mutfaklar sessizce atlanır
		cuisines := models.ParseCuisineTypes(queryList(c, "countries"))

		dishes, total, err := repo.Filter(userID, c.Query("search"), cuisines, page.Offset(), page.Size)
		if err != nil {
			log.Println("Dishes could not be filtered:", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Dishes could not be filtered")
		}
		return c.JSON(newListResponse(dishes, total, page.Size))
	}
}

// queryList accepts both ?k=a,b and ?k=a&k=b.
func queryList(c *fiber.Ctx, key string) []string {
	var out []string
	for _, raw := range c.Context().QueryArgs().PeekMulti(key) {
		for _, v := range strings.Split(string(raw), ",") {
			if v = strings.TrimSpace(v); v != "" {
				out = append(out, v)
			}
		}
	}
	return out
}

func newListResponse(dishes []models.Dish, total int64, size int) ListResponse {
	resp := ListResponse{
		Dishes:        make([]Response, 0, len(dishes)),
		TotalElements: total,
		TotalPages:    paging.TotalPages(total, size),
	}
	for i := range dishes {
		resp.Dishes = append(resp.Dishes, NewResponse(&dishes[i]))
	}
	return resp
}

// GET /api/dishes/:id
func GetDishHandler(repo Repository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		d, err := ownedDish(c, repo)
		if err != nil {
			return err
		}
		return c.JSON(NewResponse(d))
	}
}

// POST /api/dishes
func CreateDishHandler(repo Repository, ingredients IngredientResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}

		var body Request
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		body.Normalize()
		if err := body.Validate(); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		resolved, err := resolveIngredients(ingredients, userID, body.Ingredients)
		if err != nil {
			return err
		}

		d := &models.Dish{UserID: userID}
		body.apply(d, resolved)
		if err := repo.Create(d); err != nil {
			log.Println("Dish could not be created:", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Dish could not be created")
		}

		return c.Status(fiber.StatusCreated).JSON(NewResponse(d))
	}
}

// PUT /api/dishes/:id
func UpdateDishHandler(repo Repository, ingredients IngredientResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		d, err := ownedDish(c, repo)
		if err != nil {
			return err
		}

		var body Request
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		body.Normalize()
		if err := body.Validate(); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		resolved, err := resolveIngredients(ingredients, d.UserID, body.Ingredients)
		if err != nil {
			return err
		}

		body.apply(d, resolved)
		if err := repo.Update(d); err != nil {
			log.Println("Dish could not be updated:", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Dish could not be updated")
		}

		return c.JSON(NewResponse(d))
	}
}

// DELETE /api/dishes/:id
func DeleteDishHandler(repo Repository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		d, err := ownedDish(c, repo)
		if err != nil {
			return err
		}
		if err := repo.Delete(d); err != nil {
			log.Println("Dish could not be deleted:", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Dish could not be deleted")
		}
		return c.JSON(NewResponse(d))
	}
}

func ownedDish(c *fiber.Ctx, repo Repository) (*models.Dish, error) {
	userID, err := auth.CurrentUserID(c)
	if err != nil {
		return nil, err
	}
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid dish id")
	}

	d, err := repo.FindByIDAndOwner(uint(id), userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Dish not found")
		}
		log.Printf("Dish %d could not be loaded: %v", id, err)
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Dish could not be loaded")
	}
	return d, nil
}

func resolveIngredients(ingredients IngredientResolver, userID uint, reqs []IngredientRequest) (map[uint]*models.Ingredient, error) {
	resolved := make(map[uint]*models.Ingredient, len(reqs))
	for _, r := range reqs {
		ing, err := ingredients.FindByIDAndOwner(r.IngredientID, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("Ingredient not found: %d", r.IngredientID))
			}
			log.Printf("Ingredient %d could not be loaded: %v", r.IngredientID, err)
			return nil, fiber.NewError(fiber.StatusInternalServerError, "Ingredient could not be loaded")
		}
		resolved[r.IngredientID] = ing
	}
	return resolved, nil
}

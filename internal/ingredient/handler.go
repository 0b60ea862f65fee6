package ingredient

import (
	"errors"
	"log"
	"strconv"
	"strings"

	"menuplanner-backend/internal/auth"
	"menuplanner-backend/internal/models"
	"menuplanner-backend/internal/paging"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// GET /api/ingredients?search=&categories=&page=&size=
func ListIngredientsHandler(repo Repository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}
		page, err := paging.FromQuery(c, paging.DefaultSize)
		if err != nil {
			return err
		}

		var raw []string
		for _, v := range c.Context().QueryArgs().PeekMulti("categories") {
			raw = append(raw, string(v))
		}
		categories := ParseCategories(raw)

		items, total, err := repo.Filter(userID, c.Query("search"), categories, page.Offset(), page.Size)
		if err != nil {
			log.Println("Ingredients could not be listed:", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Ingredients could not be listed")
		}

		return c.JSON(ListResponse{
			Ingredients:   NewResponses(items),
			TotalElements: total,
			TotalPages:    paging.TotalPages(total, page.Size),
		})
	}
}

// GET /api/ingredients/all
func ListAllIngredientsHandler(repo Repository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}
		items, err := repo.FindAllByOwner(userID)
		if err != nil {
			log.Println("Ingredients could not be listed:", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Ingredients could not be listed")
		}
		return c.JSON(NewResponses(items))
	}
}

// GET /api/ingredients/categories
func ListCategoriesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(models.IngredientCategories())
	}
}

// GET /api/ingredients/:id
func GetIngredientHandler(repo Repository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ing, err := ownedIngredient(c, repo)
		if err != nil {
			return err
		}
		return c.JSON(NewResponse(ing))
	}
}

// POST /api/ingredients
func CreateIngredientHandler(repo Repository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}

		var body Request
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		ing, err := body.Validate(userID)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		if err := repo.Create(ing); err != nil {
			log.Println("Ingredient could not be created:", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Ingredient could not be created")
		}

		c.Location("/api/ingredients/" + strconv.FormatUint(uint64(ing.ID), 10))
		return c.Status(fiber.StatusCreated).JSON(NewResponse(ing))
	}
}

// PUT /api/ingredients/:id
func UpdateIngredientHandler(repo Repository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ing, err := ownedIngredient(c, repo)
		if err != nil {
			return err
		}

		var body Request
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		updated, err := body.Validate(ing.UserID)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		ing.Name = updated.Name
		ing.Description = updated.Description
		ing.Category = updated.Category
		ing.Unit = updated.Unit
		if err := repo.Save(ing); err != nil {
			log.Println("Ingredient could not be updated:", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Ingredient could not be updated")
		}
		return c.JSON(NewResponse(ing))
	}
}

// DELETE /api/ingredients/:id
func DeleteIngredientHandler(repo Repository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ing, err := ownedIngredient(c, repo)
		if err != nil {
			return err
		}
		if err := repo.Delete(ing); err != nil {
			log.Println("Ingredient could not be deleted:", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Ingredient could not be deleted")
		}
		return c.JSON(NewResponse(ing))
	}
}

// POST /api/ingredients/import (multipart, "file" alanı .xlsx)
func ImportIngredientsHandler(repo Repository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}

		fileHeader, err := c.FormFile("file")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "File could not be uploaded: "+err.Error())
		}
		if !strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".xlsx") {
			return fiber.NewError(fiber.StatusBadRequest, "Only .xlsx files can be imported")
		}

		file, err := fileHeader.Open()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "File could not be opened")
		}
		defer file.Close()

		rows, err := ReadWorkbook(file)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Workbook could not be read: "+err.Error())
		}

		items, rowErrs := ParseRows(rows, userID)
		if err := repo.CreateMany(items); err != nil {
			log.Println("Ingredient import failed:", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Ingredients could not be imported")
		}

		log.Printf("User %d imported %d ingredients (%d rows skipped)", userID, len(items), len(rowErrs))
		return c.Status(fiber.StatusCreated).JSON(ImportResult{
			Imported: NewResponses(items),
			Skipped:  rowErrs,
		})
	}
}

func ownedIngredient(c *fiber.Ctx, repo Repository) (*models.Ingredient, error) {
	userID, err := auth.CurrentUserID(c)
	if err != nil {
		return nil, err
	}
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid ingredient id")
	}

	ing, err := repo.FindByIDAndOwner(uint(id), userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Ingredient not found")
		}
		log.Printf("Ingredient %d could not be loaded: %v", id, err)
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Ingredient could not be loaded")
	}
	return ing, nil
}

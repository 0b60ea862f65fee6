package grocery

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"menuplanner-backend/internal/auth"
	"menuplanner-backend/internal/cart"
	"menuplanner-backend/internal/paging"

	"github.com/gofiber/fiber/v2"
)

// Tarayıcıdan gelen saat dilimsiz format da kabul edilir
var timeLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02T15:04", "2006-01-02"}

// POST /api/grocerylists/save?startOfWeek=&endOfWeek=
func SaveGroceryListHandler(svc *Service, carts cart.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}

		start, err := parseTimeQuery(c, "startOfWeek")
		if err != nil {
			return err
		}
		end, err := parseTimeQuery(c, "endOfWeek")
		if err != nil {
			return err
		}

		current, err := carts.Get(c, userID)
		if err != nil {
			log.Println("Cart could not be read:", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Cart could not be read")
		}

		list, err := svc.SaveCart(userID, current.Entries(), start, end)
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidWeek):
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			case errors.Is(err, ErrEmptyCart):
				return fiber.NewError(fiber.StatusBadRequest, "Cart is empty")
			case errors.Is(err, ErrIngredientNotFound):
				return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
			}
			log.Println("Grocery list could not be saved:", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Grocery list could not be saved")
		}

		if err := carts.Clear(c); err != nil {
			// Liste kaydedildi, sepet temizlenemese de istek başarılı
			log.Printf("Cart could not be cleared after saving list %d: %v", list.ID, err)
		}
		return c.Status(fiber.StatusOK).Send(nil)
	}
}

// GET /api/grocerylists?page=&size=
func ListGroceryListsHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}
		page, err := paging.FromQuery(c, paging.DefaultSize)
		if err != nil {
			return err
		}

		lists, _, err := svc.Lists(userID, page.Offset(), page.Size)
		if err != nil {
			log.Println("Grocery lists could not be listed:", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Grocery lists could not be listed")
		}

		resp := make([]SummaryResponse, 0, len(lists))
		for i := range lists {
			resp = append(resp, NewSummaryResponse(&lists[i]))
		}
		return c.JSON(resp)
	}
}

// GET /api/grocerylists/:id/ingredients?page=&size=
func ListGroceryListIngredientsHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}
		listID, err := listIDParam(c)
		if err != nil {
			return err
		}
		page, err := paging.FromQuery(c, paging.DefaultSize)
		if err != nil {
			return err
		}

		result, err := svc.IngredientPage(listID, userID, page.Offset(), page.Size)
		if err != nil {
			log.Println("Grocery list ingredients could not be loaded:", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Grocery list could not be loaded")
		}
		// Liste yok ya da sayfa boş: ikisi de 404
		if len(result.Items) == 0 {
			return fiber.NewError(fiber.StatusNotFound, "No ingredients found")
		}

		return c.JSON(IngredientListResponse{
			Ingredients:   NewIngredientResponses(result.Items),
			TotalElements: result.TotalElements,
			TotalPages:    result.TotalPages,
		})
	}
}

// PUT /api/grocerylists/:id
func UpdateGroceryListHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}
		listID, err := listIDParam(c)
		if err != nil {
			return err
		}

		var body UpdateRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if len(body.IngredientsWithQuantity) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "ingredientsWithQuantity cannot be empty")
		}
		for id, q := range body.IngredientsWithQuantity {
			if id == 0 {
				return fiber.NewError(fiber.StatusBadRequest, "ingredient ids must be positive")
			}
			if !q.IsPositive() {
				return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("quantity of ingredient %d must be positive", id))
			}
		}

		if err := svc.UpdateIngredients(listID, userID, body.IngredientsWithQuantity); err != nil {
			log.Println("Grocery list could not be updated:", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Grocery list could not be updated")
		}
		return c.Status(fiber.StatusOK).Send(nil)
	}
}

// DELETE /api/grocerylists/:id
func DeleteGroceryListHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}
		listID, err := listIDParam(c)
		if err != nil {
			return err
		}

		list, err := svc.Delete(listID, userID)
		if err != nil {
			if errors.Is(err, ErrListNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Grocery list not found")
			}
			log.Println("Grocery list could not be deleted:", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Grocery list could not be deleted")
		}
		return c.JSON(NewSummaryResponse(list))
	}
}

// GET /api/grocerylists/:id/export
func ExportGroceryListHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}
		listID, err := listIDParam(c)
		if err != nil {
			return err
		}

		list, err := svc.Get(listID, userID)
		if err != nil {
			if errors.Is(err, ErrListNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Grocery list not found")
			}
			log.Println("Grocery list could not be loaded:", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Grocery list could not be loaded")
		}

		var buf bytes.Buffer
		if err := WriteWorkbook(&buf, list); err != nil {
			log.Println("Grocery list workbook could not be written:", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Grocery list could not be exported")
		}

		c.Attachment(fmt.Sprintf("grocery-list-%d.xlsx", list.ID))
		c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		return c.Send(buf.Bytes())
	}
}

func listIDParam(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "Invalid grocery list id")
	}
	return uint(id), nil
}

func parseTimeQuery(c *fiber.Ctx, key string) (time.Time, error) {
	v := c.Query(key)
	if v == "" {
		return time.Time{}, nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, v, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fiber.NewError(fiber.StatusBadRequest, key+" must be an ISO-8601 date time")
}

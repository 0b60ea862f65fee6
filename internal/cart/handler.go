package cart

import (
	"errors"
	"log"
	"strconv"

	"menuplanner-backend/internal/auth"
	"menuplanner-backend/internal/dish"
	"menuplanner-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// DishLookup resolves the dish a cart entry points at. Only dishes of the
// cart's user are visible.
type DishLookup interface {
	FindByIDAndOwner(id, userID uint) (*models.Dish, error)
}

type EntryRequest struct {
	DishID    uint      `json:"dishId"`
	DayOfWeek DayOfWeek `json:"dayOfWeek"`
	People    int       `json:"people"`
}

func (r EntryRequest) entry() Entry {
	return Entry{DishID: r.DishID, DayOfWeek: r.DayOfWeek, People: r.People}
}

// CartDishResponse: sepet satırı + yemeğin kendisi
type CartDishResponse struct {
	ID        int           `json:"id"`
	Dish      dish.Response `json:"dish"`
	DayOfWeek DayOfWeek     `json:"dayOfWeek"`
	People    int           `json:"people"`
}

// GET /api/cart
func ListCartHandler(store Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		_, cart, err := loadCart(c, store)
		if err != nil {
			return err
		}
		return c.JSON(cart.Entries())
	}
}

// GET /api/cart/dishes
func ListCartDishesHandler(store Store, dishes DishLookup) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, cart, err := loadCart(c, store)
		if err != nil {
			return err
		}

		resp := make([]CartDishResponse, 0, len(cart.Entries()))
		for _, e := range cart.Entries() {
			d, err := dishes.FindByIDAndOwner(e.DishID, userID)
			if err != nil {
				// Silinmiş ya da başkasına ait yemekler listede gösterilmez
				if errors.Is(err, gorm.ErrRecordNotFound) {
					continue
				}
				return fiber.NewError(fiber.StatusInternalServerError, "Dish could not be loaded")
			}
			resp = append(resp, CartDishResponse{
				ID:        e.ID,
				Dish:      dish.NewResponse(d),
				DayOfWeek: e.DayOfWeek,
				People:    e.People,
			})
		}
		return c.JSON(resp)
	}
}

// POST /api/cart/add
func AddToCartHandler(store Store, dishes DishLookup) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body EntryRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		entry := body.entry()
		if err := entry.Validate(); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		userID, cart, err := loadCart(c, store)
		if err != nil {
			return err
		}
		if err := ensureDish(dishes, entry.DishID, userID); err != nil {
			return err
		}
		added := cart.Add(entry)
		if err := store.Set(c, userID, cart); err != nil {
			log.Println("Cart could not be saved:", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Cart could not be saved")
		}

		return c.JSON(fiber.Map{
			"message": "Item added successfully",
			"item":    added,
		})
	}
}

// PUT /api/cart/edit/:id
func EditCartItemHandler(store Store, dishes DishLookup) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.Atoi(c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid cart item id")
		}

		var body EntryRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		entry := body.entry()
		if err := entry.Validate(); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		userID, cart, err := loadCart(c, store)
		if err != nil {
			return err
		}
		if err := ensureDish(dishes, entry.DishID, userID); err != nil {
			return err
		}
		edited, ok := cart.Edit(id, entry)
		if !ok {
			return fiber.NewError(fiber.StatusNotFound, "Cart item not found")
		}
		if err := store.Set(c, userID, cart); err != nil {
			log.Println("Cart could not be saved:", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Cart could not be saved")
		}

		return c.JSON(fiber.Map{
			"message": "Item edited successfully",
			"item":    edited,
		})
	}
}

// DELETE /api/cart/delete/:id
func DeleteCartItemHandler(store Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.Atoi(c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid cart item id")
		}

		userID, cart, err := loadCart(c, store)
		if err != nil {
			return err
		}
		if !cart.Remove(id) {
			return fiber.NewError(fiber.StatusNotFound, "Cart item not found")
		}
		if err := store.Set(c, userID, cart); err != nil {
			log.Println("Cart could not be saved:", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Cart could not be saved")
		}

		return c.JSON(fiber.Map{"message": "Item deleted successfully"})
	}
}

// DELETE /api/cart/clear
func ClearCartHandler(store Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := store.Clear(c); err != nil {
			log.Println("Cart could not be cleared:", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Cart could not be cleared")
		}
		return c.JSON(fiber.Map{"message": "Cart cleared successfully"})
	}
}

// loadCart returns the current user and the cart that belongs to them.
func loadCart(c *fiber.Ctx, store Store) (uint, *Cart, error) {
	userID, err := auth.CurrentUserID(c)
	if err != nil {
		return 0, nil, err
	}
	cart, err := store.Get(c, userID)
	if err != nil {
		log.Println("Cart could not be loaded:", err)
		return 0, nil, fiber.NewError(fiber.StatusInternalServerError, "Cart could not be loaded")
	}
	return userID, cart, nil
}

func ensureDish(dishes DishLookup, id, userID uint) error {
	if _, err := dishes.FindByIDAndOwner(id, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Dish not found")
		}
		log.Printf("Dish %d could not be loaded: %v", id, err)
		return fiber.NewError(fiber.StatusInternalServerError, "Dish could not be loaded")
	}
	return nil
}

package export

import (
	"errors"
	"fmt"
	"log"
	"time"

	"menuplanner-backend/internal/auth"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// GET /api/users/me/export
func ExportUserDataHandler(src Source) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}

		snap, err := src.Load(userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "User not found")
			}
			log.Printf("Export for user %d failed: %v", userID, err)
			return fiber.NewError(fiber.StatusInternalServerError, "Data could not be exported")
		}

		now := time.Now()
		c.Set(fiber.HeaderContentDisposition,
			fmt.Sprintf(`attachment; filename="menuplanner-export-%s.json"`, now.Format("2006-01-02")))
		return c.JSON(NewDocument(snap, now))
	}
}

package auth

import (
	"strings"

	"menuplanner-backend/internal/config"
	"menuplanner-backend/internal/models"
	"menuplanner-backend/internal/security"

	"github.com/gofiber/fiber/v2"
)

const (
	CtxUserIDKey   = "user_id"
	CtxUserRoleKey = "user_role"

	AccessTokenCookie  = "accessToken"
	RefreshTokenCookie = "refreshToken"
)

// EventRecorder is implemented by security.Recorder.
type EventRecorder interface {
	Record(opts security.EventOptions)
}

// JWTMiddleware kabul eder: "Authorization: Bearer <token>" ya da accessToken cookie'si
func JWTMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenStr := c.Cookies(AccessTokenCookie)

		if authHeader := c.Get(fiber.HeaderAuthorization); authHeader != "" {
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				return fiber.NewError(fiber.StatusUnauthorized, "Authorization header must be 'Bearer <token>'")
			}
			tokenStr = parts[1]
		}
		if tokenStr == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Missing access token")
		}

		claims, err := ParseToken(cfg.JWTSecret, tokenStr, AccessToken)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid or expired token")
		}

		c.Locals(CtxUserIDKey, claims.UserID)
		c.Locals(CtxUserRoleKey, claims.Role)

		return c.Next()
	}
}

// RequireRole rejects users without one of allowedRoles and records the
// attempt as an UNAUTHORIZED_ACCESS event.
func RequireRole(events EventRecorder, allowedRoles ...models.UserRole) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals(CtxUserRoleKey).(models.UserRole)
		if !ok {
			return fiber.NewError(fiber.StatusForbidden, "Role information is missing")
		}

		for _, r := range allowedRoles {
			if r == role {
				return c.Next()
			}
		}

		if userID, ok := c.Locals(CtxUserIDKey).(uint); ok && events != nil {
			events.Record(security.EventOptions{
				UserID:  userID,
				Type:    models.SecurityEventUnauthorizedAccess,
				Message: c.Method() + " " + c.Path(),
			})
		}
		return fiber.NewError(fiber.StatusForbidden, "You are not allowed to do this")
	}
}

// CurrentUserID returns the id JWTMiddleware stored on the request.
func CurrentUserID(c *fiber.Ctx) (uint, error) {
	userID, ok := c.Locals(CtxUserIDKey).(uint)
	if !ok || userID == 0 {
		return 0, fiber.NewError(fiber.StatusUnauthorized, "User information is missing")
	}
	return userID, nil
}

// CurrentUserRole returns the role JWTMiddleware stored on the request, or an
// empty role when there is none.
func CurrentUserRole(c *fiber.Ctx) models.UserRole {
	role, _ := c.Locals(CtxUserRoleKey).(models.UserRole)
	return role
}

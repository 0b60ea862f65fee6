package auth

import (
	"errors"
	"log"
	"time"

	"menuplanner-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

type ResetPasswordRequest struct {
	Token           string `json:"token"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

type UserResponse struct {
	ID    uint            `json:"id"`
	Name  string          `json:"name"`
	Email string          `json:"email"`
	Role  models.UserRole `json:"role"`
}

type LoginResponse struct {
	TokenPair
	User UserResponse `json:"user"`
}

func NewUserResponse(u *models.User) UserResponse {
	return UserResponse{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

// POST /api/auth/register
func RegisterHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body RegisterRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		user, err := svc.Register(body)
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidName), errors.Is(err, ErrInvalidEmail),
				errors.Is(err, ErrWeakPassword), errors.Is(err, ErrPasswordMismatch):
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			case errors.Is(err, ErrEmailTaken):
				return fiber.NewError(fiber.StatusConflict, err.Error())
			}
			log.Println("Registration failed:", err)
			return fiber.NewError(fiber.StatusInternalServerError, "User could not be registered")
		}

		return c.Status(fiber.StatusCreated).JSON(NewUserResponse(user))
	}
}

// GET /api/auth/activate?token=
func ActivateHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := svc.Activate(c.Query("token"))
		if err != nil {
			if errors.Is(err, ErrInvalidToken) {
				return fiber.NewError(fiber.StatusBadRequest, "Activation token is invalid")
			}
			log.Println("Activation failed:", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Account could not be activated")
		}
		return c.JSON(NewUserResponse(user))
	}
}

// POST /api/auth/login
func LoginHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body LoginRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if body.Email == "" || body.Password == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Email and password are required")
		}

		user, tokens, err := svc.Login(body.Email, body.Password)
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidCredentials):
				return fiber.NewError(fiber.StatusUnauthorized, "Invalid email or password")
			case errors.Is(err, ErrNotActivated):
				return fiber.NewError(fiber.StatusForbidden, err.Error())
			}
			log.Println("Login failed:", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Could not log in")
		}

		setTokenCookies(c, tokens)
		return c.JSON(LoginResponse{TokenPair: tokens, User: NewUserResponse(user)})
	}
}

// POST /api/auth/refresh
func RefreshHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(RefreshTokenCookie)
		if token == "" {
			var body RefreshRequest
			// Cookie yoksa gövdeden oku
			if err := c.BodyParser(&body); err == nil {
				token = body.RefreshToken
			}
		}
		if token == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Missing refresh token")
		}

		user, tokens, err := svc.Refresh(token)
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidToken):
				return fiber.NewError(fiber.StatusUnauthorized, "Invalid or expired token")
			case errors.Is(err, ErrNotActivated):
				return fiber.NewError(fiber.StatusForbidden, err.Error())
			}
			log.Println("Token refresh failed:", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Could not refresh token")
		}

		setTokenCookies(c, tokens)
		return c.JSON(LoginResponse{TokenPair: tokens, User: NewUserResponse(user)})
	}
}

// POST /api/auth/logout
func LogoutHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := CurrentUserID(c)
		if err != nil {
			return err
		}
		svc.Logout(userID)
		clearTokenCookies(c)
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// GET /api/auth/me
func MeHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := CurrentUserID(c)
		if err != nil {
			return err
		}
		user, err := svc.Me(userID)
		if err != nil {
			if errors.Is(err, ErrUserNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "User not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "User could not be loaded")
		}
		return c.JSON(NewUserResponse(user))
	}
}

// POST /api/auth/password/forgot
// Kayıtlı olmayan email de 200 döner, hesap varlığı sızdırılmaz.
func ForgotPasswordHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body ForgotPasswordRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if body.Email == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Email is required")
		}

		if err := svc.ForgotPassword(body.Email); err != nil {
			log.Println("Password reset request failed:", err)
		}
		return c.JSON(fiber.Map{"message": "If the email is registered, a reset link has been sent"})
	}
}

// GET /api/auth/password/reset?token=
func CheckResetTokenHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.CheckResetToken(c.Query("token")); err != nil {
			if errors.Is(err, ErrInvalidToken) {
				return fiber.NewError(fiber.StatusBadRequest, "Reset token is invalid or expired")
			}
			log.Println("Reset token check failed:", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Reset token could not be checked")
		}
		return c.JSON(fiber.Map{"valid": true})
	}
}

// POST /api/auth/password/reset
func ResetPasswordHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body ResetPasswordRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if err := svc.ResetPassword(body.Token, body.Password, body.ConfirmPassword); err != nil {
			switch {
			case errors.Is(err, ErrInvalidToken):
				return fiber.NewError(fiber.StatusBadRequest, "Reset token is invalid or expired")
			case errors.Is(err, ErrWeakPassword), errors.Is(err, ErrPasswordMismatch):
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
			log.Println("Password reset failed:", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Password could not be reset")
		}
		return c.JSON(fiber.Map{"message": "Password updated"})
	}
}

func setTokenCookies(c *fiber.Ctx, tokens TokenPair) {
	now := time.Now()
	c.Cookie(&fiber.Cookie{
		Name:     AccessTokenCookie,
		Value:    tokens.AccessToken,
		Path:     "/",
		Expires:  now.Add(AccessTokenTTL),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	c.Cookie(&fiber.Cookie{
		Name:     RefreshTokenCookie,
		Value:    tokens.RefreshToken,
		Path:     "/api/auth/refresh",
		Expires:  now.Add(RefreshTokenTTL),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func clearTokenCookies(c *fiber.Ctx) {
	expired := time.Unix(0, 0)
	c.Cookie(&fiber.Cookie{Name: AccessTokenCookie, Path: "/", Expires: expired, HTTPOnly: true})
	c.Cookie(&fiber.Cookie{Name: RefreshTokenCookie, Path: "/api/auth/refresh", Expires: expired, HTTPOnly: true})
}

package user

import (
	"errors"
	"log"
	"strconv"

	"menuplanner-backend/internal/auth"
	"menuplanner-backend/internal/models"
	"menuplanner-backend/internal/paging"

	"github.com/gofiber/fiber/v2"
)

type Response struct {
	ID           uint            `json:"id"`
	Name         string          `json:"name"`
	Email        string          `json:"email"`
	Role         models.UserRole `json:"role"`
	Enabled      bool            `json:"enabled"`
	PendingEmail *string         `json:"pendingEmail,omitempty"`
}

type ListResponse struct {
	Users         []Response `json:"users"`
	TotalElements int64      `json:"totalElements"`
	TotalPages    int        `json:"totalPages"`
}

func NewResponse(u *models.User) Response {
	return Response{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		Role:         u.Role,
		Enabled:      u.Enabled,
		PendingEmail: u.PendingEmail,
	}
}

// GET /api/users?search=&type=&page=&size=
func ListUsersHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		page, err := paging.FromQuery(c, paging.DefaultSize)
		if err != nil {
			return err
		}
		// Geçersiz type filtresi yok sayılır
		role, ok := models.ParseUserRole(c.Query("type"))
		if !ok {
			role = ""
		}

		users, total, err := svc.List(c.Query("search"), role, page.Offset(), page.Size)
		if err != nil {
			log.Println("Users could not be listed:", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Users could not be listed")
		}

		resp := ListResponse{
			Users:         make([]Response, 0, len(users)),
			TotalElements: total,
			TotalPages:    paging.TotalPages(total, page.Size),
		}
		for i := range users {
			resp.Users = append(resp.Users, NewResponse(&users[i]))
		}
		return c.JSON(resp)
	}
}

// GET /api/users/:id
func GetUserHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := userIDParam(c)
		if err != nil {
			return err
		}
		u, err := svc.Get(id)
		if err != nil {
			return mapError(err, "User could not be loaded")
		}
		return c.JSON(NewResponse(u))
	}
}

// PUT /api/users/:id?type=
func UpdateRoleHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := userIDParam(c)
		if err != nil {
			return err
		}
		role, ok := models.ParseUserRole(c.Query("type"))
		if !ok {
			return fiber.NewError(fiber.StatusBadRequest, ErrInvalidRole.Error())
		}
		u, err := svc.UpdateRole(id, role)
		if err != nil {
			return mapError(err, "Role could not be updated")
		}
		return c.JSON(NewResponse(u))
	}
}

// PUT /api/users/enable/:id
func EnableUserHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := userIDParam(c)
		if err != nil {
			return err
		}
		u, err := svc.Enable(id)
		if err != nil {
			return mapError(err, "User could not be enabled")
		}
		return c.JSON(NewResponse(u))
	}
}

// DELETE /api/users/:id
func DeleteUserHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actorID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}
		id, err := userIDParam(c)
		if err != nil {
			return err
		}
		u, err := svc.Delete(id, actorID, auth.CurrentUserRole(c))
		if err != nil {
			return mapError(err, "User could not be deleted")
		}
		return c.JSON(NewResponse(u))
	}
}

// DELETE /api/users
func DeleteOwnAccountHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actorID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}
		u, err := svc.Delete(actorID, actorID, auth.CurrentUserRole(c))
		if err != nil {
			return mapError(err, "Account could not be deleted")
		}
		return c.JSON(NewResponse(u))
	}
}

// PUT /api/users/email
func UpdateProfileHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}
		var body UpdateRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		u, err := svc.Update(userID, body)
		if err != nil {
			return mapError(err, "User could not be updated")
		}
		return c.JSON(NewResponse(u))
	}
}

// GET /api/users/email-confirm?token=
func ConfirmEmailHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.ConfirmEmail(c.Query("token")); err != nil {
			if errors.Is(err, auth.ErrInvalidToken) {
				return fiber.NewError(fiber.StatusBadRequest, "Invalid or expired token")
			}
			return mapError(err, "Email could not be confirmed")
		}
		return c.JSON(fiber.Map{"message": "Email confirmed"})
	}
}

func userIDParam(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "Invalid user id")
	}
	return uint(id), nil
}

func mapError(err error, fallback string) error {
	switch {
	case errors.Is(err, ErrUserNotFound):
		return fiber.NewError(fiber.StatusNotFound, "User not found")
	case errors.Is(err, ErrForbidden):
		return fiber.NewError(fiber.StatusForbidden, err.Error())
	case errors.Is(err, ErrInvalidRole), errors.Is(err, auth.ErrInvalidName), errors.Is(err, auth.ErrInvalidEmail):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, auth.ErrEmailTaken):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	}
	log.Printf("%s: %v", fallback, err)
	return fiber.NewError(fiber.StatusInternalServerError, fallback)
}

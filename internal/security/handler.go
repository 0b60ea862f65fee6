package security

import (
	"errors"
	"log"
	"strconv"
	"time"

	"menuplanner-backend/internal/models"
	"menuplanner-backend/internal/paging"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type EventResponse struct {
	ID           uint                     `json:"id"`
	CreatedAt    time.Time                `json:"createdAt"`
	UserID       uint                     `json:"userId"`
	UserEmail    string                   `json:"userEmail"`
	ActingUserID *uint                    `json:"actingUserId"`
	Type         models.SecurityEventType `json:"type"`
	Message      string                   `json:"message"`
	Verified     bool                     `json:"verified"`
}

type EventListResponse struct {
	Events        []EventResponse `json:"events"`
	TotalElements int64           `json:"totalElements"`
	TotalPages    int             `json:"totalPages"`
}

func NewEventResponse(e *models.SecurityEvent) EventResponse {
	return EventResponse{
		ID:           e.ID,
		CreatedAt:    e.CreatedAt,
		UserID:       e.UserID,
		UserEmail:    e.User.Email,
		ActingUserID: e.ActingUserID,
		Type:         e.Type,
		Message:      e.Message,
		Verified:     e.Verified,
	}
}

// GET /api/admin/security-events?since=2025-01-01T00:00:00Z&page=0&size=20
func ListEventsHandler(repo Repository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var since time.Time
		if v := c.Query("since"); v != "" {
			t, err := time.Parse(time.RFC3339, v)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "since must be an RFC3339 timestamp")
			}
			since = t
		}
		page, err := paging.FromQuery(c, 20)
		if err != nil {
			return err
		}

		events, total, err := repo.FindSince(since, page.Offset(), page.Size)
		if err != nil {
			log.Println("Security events could not be listed:", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Security events could not be listed")
		}

		resp := EventListResponse{
			Events:        make([]EventResponse, 0, len(events)),
			TotalElements: total,
			TotalPages:    paging.TotalPages(total, page.Size),
		}
		for i := range events {
			resp.Events = append(resp.Events, NewEventResponse(&events[i]))
		}
		return c.JSON(resp)
	}
}

// POST /api/admin/security-events/:id/verify
func VerifyEventHandler(repo Repository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.ParseUint(c.Params("id"), 10, 64)
		if err != nil || id == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid event id")
		}

		event, err := repo.FindByID(uint(id))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Security event not found")
			}
			log.Printf("Security event %d could not be loaded: %v", id, err)
			return fiber.NewError(fiber.StatusInternalServerError, "Security event could not be loaded")
		}

		if !event.Verified {
			if err := repo.MarkVerified(event); err != nil {
				log.Printf("Security event %d could not be verified: %v", id, err)
				return fiber.NewError(fiber.StatusInternalServerError, "Security event could not be verified")
			}
		}
		return c.JSON(NewEventResponse(event))
	}
}

// Package paging parses page/size query parameters the way the web client
// sends them (zero based page index).
package paging

import (
	"math"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

const (
	DefaultSize = 10
	MaxSize     = 100
)

type Request struct {
	Page int
	Size int
}

func (r Request) Offset() int {
	return r.Page * r.Size
}

// FromQuery reads ?page=&size=. Missing values fall back to page 0 and
// defaultSize.
func FromQuery(c *fiber.Ctx, defaultSize int) (Request, error) {
	req := Request{Page: 0, Size: defaultSize}

	if v := c.Query("page"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil || p < 0 {
			return req, fiber.NewError(fiber.StatusBadRequest, "page must be a non-negative integer")
		}
		req.Page = p
	}

	if v := c.Query("size"); v != "" {
		s, err := strconv.Atoi(v)
		if err != nil || s < 1 || s > MaxSize {
			return req, fiber.NewError(fiber.StatusBadRequest, "size must be between 1 and "+strconv.Itoa(MaxSize))
		}
		req.Size = s
	}

	// Offset int sınırını aşmasın
	if req.Page > math.MaxInt/req.Size {
		return req, fiber.NewError(fiber.StatusBadRequest, "page is too large")
	}

	return req, nil
}

// TotalPages is ceil(total/size); 0 when size is not positive.
func TotalPages(total int64, size int) int {
	if size <= 0 {
		return 0
	}
	return int((total + int64(size) - 1) / int64(size))
}

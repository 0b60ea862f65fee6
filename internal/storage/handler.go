package storage

import (
	"log"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const MaxImageSize = 5 * 1024 * 1024

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// ObjectKey: uploads/<uuid><ext>, uzantı dosya adından yoksa content type'tan
func ObjectKey(filename, contentType string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		ext = imageExtensions[contentType]
	}
	return "uploads/" + uuid.NewString() + ext
}

// POST /api/images (multipart, alan adı "file")
func UploadImageHandler(uploader Uploader) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if uploader == nil {
			return fiber.NewError(fiber.StatusServiceUnavailable, "Image storage is not configured")
		}

		fh, err := c.FormFile("file")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Field 'file' is required")
		}
		if fh.Size > MaxImageSize {
			return fiber.NewError(fiber.StatusRequestEntityTooLarge, "Image must be at most 5 MB")
		}

		contentType := fh.Header.Get(fiber.HeaderContentType)
		if _, ok := imageExtensions[contentType]; !ok {
			return fiber.NewError(fiber.StatusUnsupportedMediaType, "Only jpeg, png, webp and gif images are accepted")
		}

		f, err := fh.Open()
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "File could not be read")
		}
		defer f.Close()

		url, err := uploader.Upload(c.UserContext(), ObjectKey(fh.Filename, contentType), contentType, f)
		if err != nil {
			log.Println("Image upload failed:", err)
			return fiber.NewError(fiber.StatusBadGateway, "Image could not be uploaded")
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"url": url})
	}
}

package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// RequireJSON is a Fiber middleware that rejects any request whose
// Content-Type header is not application/json with a 415 response.
// It is attached to every route that reads a request body.
func RequireJSON() fiber.Handler {
	return func(c *fiber.Ctx) error {
		// The media type must match exactly; parameters like charset are
		// allowed but json-like types such as json-patch+json are not.
		contentType := c.Get(fiber.HeaderContentType)
		mediaType, _, _ := strings.Cut(contentType, ";")
		if !strings.EqualFold(strings.TrimSpace(mediaType), fiber.MIMEApplicationJSON) {
			return c.Status(fiber.StatusUnsupportedMediaType).JSON(fiber.Map{
				"message": "Content-Type must be application/json",
			})
		}
		return c.Next()
	}
}

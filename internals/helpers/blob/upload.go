package blob

import (
	"io"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// IsMultipart reports a multipart/form-data request.
func IsMultipart(c *fiber.Ctx) bool {
	ct := strings.ToLower(strings.TrimSpace(c.Get(fiber.HeaderContentType)))
	return strings.HasPrefix(ct, fiber.MIMEMultipartForm)
}

// ReadFormFile returns the bytes of the first present field, or nil when the
// request carries no such file. Files over maxBytes are a 413.
func ReadFormFile(c *fiber.Ctx, maxBytes int, fieldNames ...string) ([]byte, error) {
	if !IsMultipart(c) {
		return nil, nil
	}
	for _, fn := range fieldNames {
		fh, err := c.FormFile(fn)
		if err != nil || fh == nil {
			continue
		}
		if maxBytes > 0 && fh.Size > int64(maxBytes) {
			return nil, fiber.NewError(fiber.StatusRequestEntityTooLarge, "File too large")
		}
		f, err := fh.Open()
		if err != nil {
			return nil, fiber.NewError(fiber.StatusBadRequest, "Cannot read uploaded file")
		}
		defer f.Close()
		return io.ReadAll(f)
	}
	return nil, nil
}

package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
)

const (
	LocalAdminEmail = "admin_email"
	LocalRole       = "userRole"
)

func extractBearerToken(c *fiber.Ctx) (string, error) {
	auth := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if auth == "" {
		if cookieTok := c.Cookies("access_token"); cookieTok != "" {
			auth = "Bearer " + cookieTok
		}
	}
	if auth == "" {
		return "", errors.New("Unauthorized - No token provided")
	}

	// tolerate repeated spaces and any casing of the scheme
	fields := strings.Fields(auth)
	if len(fields) < 2 || !strings.EqualFold(fields[0], "Bearer") {
		return "", errors.New("Unauthorized - Invalid token format")
	}
	tok := strings.Trim(strings.TrimSpace(fields[1]), "\"'")
	if tok == "" {
		return "", errors.New("Unauthorized - Empty token")
	}
	return tok, nil
}

// AdminEmail returns the authenticated admin, or "" outside AuthAdmin.
func AdminEmail(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalAdminEmail).(string)
	return s
}

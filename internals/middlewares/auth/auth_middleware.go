package auth

import (
	"log"

	"github.com/gofiber/fiber/v2"

	adminService "fdp_backend/internals/features/admin/service"
)

// AuthAdmin guards admin routes. The bearer token (or access_token cookie)
// must be a valid admin JWT; its subject is stored under "admin_email".
func AuthAdmin(auth *adminService.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, err := extractBearerToken(c)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, err.Error())
		}

		claims, err := auth.ParseToken(tokenString)
		if err != nil {
			log.Printf("[AUTH] ❌ %s %s: %v", c.Method(), c.Path(), err)
			return err
		}

		c.Locals(LocalAdminEmail, claims.Subject)
		c.Locals(LocalRole, claims.Role)
		return c.Next()
	}
}

package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"fdp_backend/internals/features/admin/dto"
	adminService "fdp_backend/internals/features/admin/service"
	helper "fdp_backend/internals/helpers"
	authMiddleware "fdp_backend/internals/middlewares/auth"
)

type AdminController struct {
	Auth *adminService.AuthService
}

func NewAdminController(auth *adminService.AuthService) *AdminController {
	return &AdminController{Auth: auth}
}

// POST /api/admin/login
func (ctrl *AdminController) Login(c *fiber.Ctx) error {
	var body dto.LoginRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if fe := helper.ValidateStruct(&body); fe != nil {
		return helper.JsonValidationError(c, fe)
	}

	tok, err := ctrl.Auth.Login(body.Email, body.Password)
	if err != nil {
		log.Printf("[AUTH] login rejected for %s from %s", body.Email, c.IP())
		return err
	}

	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    tok.AccessToken,
		Expires:  tok.ExpiresAt,
		HTTPOnly: true,
		Secure:   c.Protocol() == "https",
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return helper.JsonOK(c, "Login successful", tok)
}

// GET /api/admin/me
func (ctrl *AdminController) Me(c *fiber.Ctx) error {
	return helper.JsonOK(c, "ok", fiber.Map{
		"email": authMiddleware.AdminEmail(c),
		"role":  c.Locals(authMiddleware.LocalRole),
	})
}

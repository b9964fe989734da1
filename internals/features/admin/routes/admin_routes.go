package routes

import (
	"github.com/gofiber/fiber/v2"

	"fdp_backend/internals/features/admin/controller"
	adminService "fdp_backend/internals/features/admin/service"
)

func AdminRoutes(api fiber.Router, auth *adminService.AuthService, loginLimit, adminOnly fiber.Handler) {
	ctrl := controller.NewAdminController(auth)

	api.Post("/admin/login", loginLimit, ctrl.Login)
	api.Get("/admin/me", adminOnly, ctrl.Me)
}

package routes

import (
	"github.com/gofiber/fiber/v2"

	"fdp_backend/internals/features/coupons/controller"
	pipelineService "fdp_backend/internals/features/pipeline/service"
)

func CouponPublicRoutes(api fiber.Router, p *pipelineService.Pipeline) {
	ctrl := controller.NewCouponController(p.Coupons(), p.Store())

	api.Post("/coupons/validate", ctrl.Validate)
}

func CouponAdminRoutes(api fiber.Router, p *pipelineService.Pipeline, adminOnly fiber.Handler) {
	ctrl := controller.NewCouponController(p.Coupons(), p.Store())

	api.Get("/coupons", adminOnly, ctrl.List)
	api.Post("/coupons", adminOnly, ctrl.Create)
	api.Put("/coupons/:id", adminOnly, ctrl.Update)
}

package routes

import (
	"github.com/gofiber/fiber/v2"

	"fdp_backend/internals/features/payments/controller"
	pipelineService "fdp_backend/internals/features/pipeline/service"
)

func PaymentPublicRoutes(api fiber.Router, p *pipelineService.Pipeline) {
	ctrl := controller.NewPaymentController(p)

	api.Post("/payments/verify", ctrl.Verify)
	api.Post("/payments/webhook", ctrl.Webhook)
}

func PaymentAdminRoutes(api fiber.Router, p *pipelineService.Pipeline, adminOnly fiber.Handler) {
	ctrl := controller.NewPaymentController(p)

	api.Get("/fdp-events/:fdpId/payments", adminOnly, ctrl.ListByEvent)
	api.Get("/payments/:orderId", adminOnly, ctrl.Get)
	api.Post("/payments/:orderId/refund", adminOnly, ctrl.Refund)
}

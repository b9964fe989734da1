package routes

import (
	"github.com/gofiber/fiber/v2"

	"fdp_backend/internals/features/communications/controller"
	pipelineService "fdp_backend/internals/features/pipeline/service"
)

func CommunicationAdminRoutes(api fiber.Router, p *pipelineService.Pipeline, adminOnly fiber.Handler) {
	ctrl := controller.NewCommunicationController(p)

	api.Post("/communications/bulk-email", adminOnly, ctrl.BulkEmail)
	api.Post("/communications/bulk-whatsapp", adminOnly, ctrl.BulkWhatsApp)
	api.Post("/fdp-events/:fdpId/reminders", adminOnly, ctrl.SendReminders)
	api.Get("/fdp-events/:fdpId/communications", adminOnly, ctrl.ListLogs)
}

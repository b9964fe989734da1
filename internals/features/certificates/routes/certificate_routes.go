package routes

import (
	"github.com/gofiber/fiber/v2"

	"fdp_backend/internals/features/certificates/controller"
	pipelineService "fdp_backend/internals/features/pipeline/service"
)

func CertificatePublicRoutes(api fiber.Router, p *pipelineService.Pipeline) {
	ctrl := controller.NewCertificateController(p)

	api.Get("/certificates/faculty/:facultyId", ctrl.GetByFaculty)
}

func CertificateAdminRoutes(api fiber.Router, p *pipelineService.Pipeline, adminOnly fiber.Handler) {
	ctrl := controller.NewCertificateController(p)
	tpl := controller.NewTemplateController(p.Store())

	api.Post("/certificates/generate/:facultyId", adminOnly, ctrl.Generate)
	api.Post("/certificates/bulk-generate/:fdpId", adminOnly, ctrl.BulkGenerate)
	api.Get("/fdp-events/:fdpId/certificates", adminOnly, ctrl.ListByEvent)

	api.Get("/certificate-templates", adminOnly, tpl.List)
	api.Post("/certificate-templates", adminOnly, tpl.Create)
	api.Post("/certificate-templates/preview", adminOnly, tpl.Preview)
	api.Get("/certificate-templates/:id", adminOnly, tpl.Get)
	api.Put("/certificate-templates/:id/default", adminOnly, tpl.SetDefault)
	api.Delete("/certificate-templates/:id", adminOnly, tpl.Delete)
}

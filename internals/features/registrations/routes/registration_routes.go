package routes

import (
	"github.com/gofiber/fiber/v2"

	"fdp_backend/internals/configs"
	pipelineService "fdp_backend/internals/features/pipeline/service"
	"fdp_backend/internals/features/registrations/controller"
	"fdp_backend/internals/helpers/blob"
)

func RegistrationPublicRoutes(api fiber.Router, p *pipelineService.Pipeline, blobs blob.Store, storage configs.Storage, limit fiber.Handler) {
	ctrl := controller.NewRegistrationController(p, blobs, storage)

	api.Post("/host-colleges", limit, ctrl.CreateHostCollege)
	api.Get("/host-colleges/:id", ctrl.GetHostCollege)
	api.Get("/fdp-events/:fdpId/host-colleges", ctrl.ListHostCollegesByEvent)
	api.Get("/host-colleges/:hostCollegeId/faculty", ctrl.ListFacultyByHostCollege)

	api.Post("/faculty-registrations", limit, ctrl.CreateFaculty)
	api.Get("/faculty-registrations/:id", ctrl.GetFaculty)
	api.Get("/fdp-events/:fdpId/faculty", ctrl.ListFacultyByEvent)
	api.Post("/faculty-registrations/:id/feedback", ctrl.SubmitFeedback)
}

func RegistrationAdminRoutes(api fiber.Router, p *pipelineService.Pipeline, blobs blob.Store, storage configs.Storage, adminOnly fiber.Handler) {
	ctrl := controller.NewRegistrationController(p, blobs, storage)

	api.Put("/host-colleges/:id", adminOnly, ctrl.UpdateHostCollege)
	api.Delete("/host-colleges/:id", adminOnly, ctrl.DeleteHostCollege)
	api.Put("/faculty-registrations/:id", adminOnly, ctrl.UpdateFaculty)
	api.Delete("/faculty-registrations/:id", adminOnly, ctrl.DeleteFaculty)
}

package routes

import (
	"github.com/gofiber/fiber/v2"

	"fdp_backend/internals/features/events/controller"
	"fdp_backend/internals/store"
)

func EventPublicRoutes(api fiber.Router, st *store.Store) {
	ctrl := controller.NewEventController(st)

	api.Get("/fdp-events", ctrl.ListActive)
	api.Get("/fdp-events/:id", ctrl.Get)
}

// EventAdminRoutes registers every route behind adminOnly.
func EventAdminRoutes(api fiber.Router, st *store.Store, adminOnly fiber.Handler) {
	ctrl := controller.NewEventController(st)

	api.Get("/admin/fdp-events", adminOnly, ctrl.ListAll)
	api.Post("/fdp-events", adminOnly, ctrl.Create)
	api.Put("/fdp-events/:id", adminOnly, ctrl.Update)
	api.Delete("/fdp-events/:id", adminOnly, ctrl.Delete)
	api.Get("/fdp-events/:fdpId/analytics", adminOnly, ctrl.Analytics)
}

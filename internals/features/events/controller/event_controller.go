package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"fdp_backend/internals/features/events/dto"
	helper "fdp_backend/internals/helpers"
	"fdp_backend/internals/store"
)

type EventController struct {
	Store *store.Store
}

func NewEventController(st *store.Store) *EventController {
	return &EventController{Store: st}
}

// GET /api/fdp-events
func (ctrl *EventController) ListActive(c *fiber.Ctx) error {
	rows, err := ctrl.Store.ListActiveEvents(c.UserContext())
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "ok", rows)
}

// GET /api/fdp-events/:id
func (ctrl *EventController) Get(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	ev, err := ctrl.Store.GetEvent(c.UserContext(), id)
	if err != nil {
		return err
	}
	if ev == nil {
		return fiber.NewError(fiber.StatusNotFound, "FDP event not found")
	}
	return helper.JsonOK(c, "ok", ev)
}

// GET /api/admin/fdp-events
func (ctrl *EventController) ListAll(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 100)
	rows, total, err := ctrl.Store.ListEvents(c.UserContext(), p)
	if err != nil {
		return err
	}
	return helper.JsonList(c, "ok", rows, helper.BuildPagination(total, p))
}

// POST /api/fdp-events
func (ctrl *EventController) Create(c *fiber.Ctx) error {
	var body dto.CreateEventRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if fe := helper.ValidateStruct(&body); fe != nil {
		return helper.JsonValidationError(c, fe)
	}

	ev := body.ToModel()
	if err := ctrl.Store.CreateEvent(c.UserContext(), ev); err != nil {
		log.Println("[ERROR] create event:", err)
		return err
	}
	log.Printf("[EVENT] ✅ created %s %q", ev.EventID, ev.EventTitle)
	return helper.JsonCreated(c, "FDP event created", ev)
}

// PUT /api/fdp-events/:id
func (ctrl *EventController) Update(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	var body dto.UpdateEventRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if fe := helper.ValidateStruct(&body); fe != nil {
		return helper.JsonValidationError(c, fe)
	}

	ctx := c.UserContext()
	cur, err := ctrl.Store.GetEvent(ctx, id)
	if err != nil {
		return err
	}
	if cur == nil {
		return fiber.NewError(fiber.StatusNotFound, "FDP event not found")
	}
	start, end := cur.EventStartDate, cur.EventEndDate
	if body.EventStartDate != nil {
		start = *body.EventStartDate
	}
	if body.EventEndDate != nil {
		end = *body.EventEndDate
	}
	if end.Before(start) {
		return helper.JsonValidationError(c, map[string][]string{"event_end_date": {"must be after event_start_date"}})
	}

	ev, err := ctrl.Store.UpdateEvent(ctx, id, body.ToUpdates())
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, "FDP event updated", ev)
}

// DELETE /api/fdp-events/:id
func (ctrl *EventController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	ok, err := ctrl.Store.DeleteEvent(c.UserContext(), id)
	if err != nil {
		return err
	}
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "FDP event not found")
	}
	return helper.JsonDeleted(c, "FDP event deleted", fiber.Map{"event_id": id})
}

// GET /api/fdp-events/:fdpId/analytics
func (ctrl *EventController) Analytics(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "fdpId")
	if err != nil {
		return err
	}
	ctx := c.UserContext()
	ev, err := ctrl.Store.GetEvent(ctx, id)
	if err != nil {
		return err
	}
	if ev == nil {
		return fiber.NewError(fiber.StatusNotFound, "FDP event not found")
	}
	out, err := ctrl.Store.EventAnalytics(ctx, id)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "ok", out)
}

package controller

import (
	"github.com/gofiber/fiber/v2"

	"fdp_backend/internals/features/communications/dto"
	pipelineService "fdp_backend/internals/features/pipeline/service"
	helper "fdp_backend/internals/helpers"
	"fdp_backend/internals/store"
)

type CommunicationController struct {
	Pipeline *pipelineService.Pipeline
	Store    *store.Store
}

func NewCommunicationController(p *pipelineService.Pipeline) *CommunicationController {
	return &CommunicationController{Pipeline: p, Store: p.Store()}
}

// POST /api/communications/bulk-email
func (ctrl *CommunicationController) BulkEmail(c *fiber.Ctx) error {
	var body dto.BulkEmailRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if fe := helper.ValidateStruct(&body); fe != nil {
		return helper.JsonValidationError(c, fe)
	}
	if body.FDPID == nil && len(body.Recipients) == 0 {
		return helper.JsonValidationError(c, map[string][]string{"fdp_id": {"fdp_id or recipients is required"}})
	}
	eventID, err := helper.ParseUUIDPtr(body.FDPID)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid fdp_id")
	}

	sum, err := ctrl.Pipeline.BulkEmail(c.UserContext(), pipelineService.BulkEmailInput{
		EventID:    eventID,
		Recipients: dto.ToRecipients(body.Recipients),
		Subject:    body.Subject,
		Content:    body.Content,
	})
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "Bulk email processed", sum)
}

// POST /api/communications/bulk-whatsapp
func (ctrl *CommunicationController) BulkWhatsApp(c *fiber.Ctx) error {
	var body dto.BulkWhatsAppRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if fe := helper.ValidateStruct(&body); fe != nil {
		return helper.JsonValidationError(c, fe)
	}
	if body.FDPID == nil && len(body.Recipients) == 0 {
		return helper.JsonValidationError(c, map[string][]string{"fdp_id": {"fdp_id or recipients is required"}})
	}
	eventID, err := helper.ParseUUIDPtr(body.FDPID)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid fdp_id")
	}

	sum, err := ctrl.Pipeline.BulkWhatsApp(c.UserContext(), pipelineService.BulkWhatsAppInput{
		EventID:    eventID,
		Recipients: dto.ToRecipients(body.Recipients),
		Message:    body.Message,
	})
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "Bulk WhatsApp processed", sum)
}

// POST /api/fdp-events/:fdpId/reminders
func (ctrl *CommunicationController) SendReminders(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "fdpId")
	if err != nil {
		return err
	}
	sum, err := ctrl.Pipeline.SendEventReminders(c.UserContext(), id)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "Reminders processed", sum)
}

// GET /api/fdp-events/:fdpId/communications
func (ctrl *CommunicationController) ListLogs(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "fdpId")
	if err != nil {
		return err
	}
	p := helper.ResolvePaging(c, 50, 200)
	rows, total, err := ctrl.Store.ListCommunicationLogsByEvent(c.UserContext(), id, p)
	if err != nil {
		return err
	}
	return helper.JsonList(c, "ok", rows, helper.BuildPagination(total, p))
}

package controller

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"fdp_backend/internals/features/certificates/dto"
	certService "fdp_backend/internals/features/certificates/service"
	helper "fdp_backend/internals/helpers"
	"fdp_backend/internals/store"
)

type TemplateController struct {
	Store *store.Store
}

func NewTemplateController(st *store.Store) *TemplateController {
	return &TemplateController{Store: st}
}

// GET /api/certificate-templates
func (ctrl *TemplateController) List(c *fiber.Ctx) error {
	rows, err := ctrl.Store.ListTemplates(c.UserContext())
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "ok", rows)
}

// GET /api/certificate-templates/:id
func (ctrl *TemplateController) Get(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	t, err := ctrl.Store.GetTemplate(c.UserContext(), id)
	if err != nil {
		return err
	}
	if t == nil {
		return fiber.NewError(fiber.StatusNotFound, "Template not found")
	}
	return helper.JsonOK(c, "ok", t)
}

// POST /api/certificate-templates
func (ctrl *TemplateController) Create(c *fiber.Ctx) error {
	var body dto.CreateTemplateRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if fe := helper.ValidateStruct(&body); fe != nil {
		return helper.JsonValidationError(c, fe)
	}

	m := body.ToModel()
	if err := ctrl.Store.CreateTemplate(c.UserContext(), m); err != nil {
		return err
	}
	log.Printf("[CERT] template %q created default=%v", m.TemplateName, m.TemplateIsDefault)
	return helper.JsonCreated(c, "Template created", m)
}

// PUT /api/certificate-templates/:id/default
func (ctrl *TemplateController) SetDefault(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	ok, err := ctrl.Store.SetDefaultTemplate(c.UserContext(), id)
	if err != nil {
		return err
	}
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "Template not found")
	}
	return helper.JsonUpdated(c, "Default template set", fiber.Map{"template_id": id})
}

// DELETE /api/certificate-templates/:id
func (ctrl *TemplateController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	ok, err := ctrl.Store.DeleteTemplate(c.UserContext(), id)
	if err != nil {
		return err
	}
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "Template not found")
	}
	return helper.JsonDeleted(c, "Template deleted", fiber.Map{"template_id": id})
}

// POST /api/certificate-templates/preview
func (ctrl *TemplateController) Preview(c *fiber.Ctx) error {
	var body dto.PreviewTemplateRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
	}
	html := body.HTML
	if html == "" {
		def, err := ctrl.Store.GetDefaultTemplate(c.UserContext())
		if err != nil {
			return err
		}
		html = certService.DefaultTemplateHTML
		if def != nil {
			html = def.TemplateHTML
		}
	}
	name := body.ParticipantName
	if name == "" {
		name = "Jane Doe"
	}

	now := time.Now()
	out := certService.FillTemplate(html, certService.CertificateData{
		ParticipantName: name,
		FDPTitle:        "Sample Faculty Development Programme",
		StartDate:       now,
		EndDate:         now.AddDate(0, 0, 4),
		CertificateID:   certService.NewCertificateNumber(now, "00000000-0000-0000-0000-000000000000"),
		IssueDate:       now,
		CollegeName:     "Sample Institute of Technology",
	})
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.SendString(out)
}

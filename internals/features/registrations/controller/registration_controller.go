package controller

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"fdp_backend/internals/configs"
	pipelineService "fdp_backend/internals/features/pipeline/service"
	"fdp_backend/internals/features/registrations/dto"
	helper "fdp_backend/internals/helpers"
	"fdp_backend/internals/helpers/blob"
	"fdp_backend/internals/store"
)

type RegistrationController struct {
	Pipeline *pipelineService.Pipeline
	Store    *store.Store
	Blobs    blob.Store
	Storage  configs.Storage
}

func NewRegistrationController(p *pipelineService.Pipeline, blobs blob.Store, storage configs.Storage) *RegistrationController {
	return &RegistrationController{Pipeline: p, Store: p.Store(), Blobs: blobs, Storage: storage}
}

// POST /api/host-colleges (JSON or multipart with "logo")
func (ctrl *RegistrationController) CreateHostCollege(c *fiber.Ctx) error {
	var body dto.HostCollegeRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if fe := helper.ValidateStruct(&body); fe != nil {
		return helper.JsonValidationError(c, fe)
	}

	m := body.ToModel()
	ctx := c.UserContext()

	// reject unknown or closed events before anything is uploaded
	if _, err := ctrl.Pipeline.OpenEvent(ctx, m.HostCollegeEventID); err != nil {
		return err
	}

	raw, err := blob.ReadFormFile(c, ctrl.Storage.MaxUploadBytes, "logo")
	if err != nil {
		return err
	}
	if raw != nil {
		webp, err := blob.NormalizeLogo(raw, ctrl.Storage.LogoMaxWidth, float32(ctrl.Storage.LogoWebPQuality))
		if errors.Is(err, blob.ErrUnsupportedImage) {
			return helper.JsonValidationError(c, map[string][]string{"logo": {"must be a jpeg, png, gif or webp image"}})
		}
		if err != nil {
			log.Println("[UPLOAD] ❌ logo conversion failed:", err)
			return fiber.NewError(fiber.StatusBadRequest, "Cannot process logo image")
		}
		url, err := ctrl.Blobs.Put(ctx, "logos/"+uuid.NewString()+".webp", "image/webp", webp)
		if err != nil {
			log.Println("[UPLOAD] ❌ logo store failed:", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to store logo")
		}
		m.HostCollegeLogoURL = &url
	}

	res, err := ctrl.Pipeline.RegisterHostCollege(ctx, m)
	if err != nil {
		if m.HostCollegeLogoURL != nil && !ctrl.hostCollegeSaved(c, m.HostCollegeID) {
			ctrl.dropLogo(c, *m.HostCollegeLogoURL)
		}
		return err
	}
	return helper.JsonCreated(c, "Host college registered", res)
}

// GET /api/host-colleges/:id
func (ctrl *RegistrationController) GetHostCollege(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	hc, err := ctrl.Store.GetHostCollege(c.UserContext(), id)
	if err != nil {
		return err
	}
	if hc == nil {
		return pipelineService.ErrHostCollegeNotFound
	}
	return helper.JsonOK(c, "ok", hc)
}

// GET /api/fdp-events/:fdpId/host-colleges
func (ctrl *RegistrationController) ListHostCollegesByEvent(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "fdpId")
	if err != nil {
		return err
	}
	rows, err := ctrl.Store.ListHostCollegesByEvent(c.UserContext(), id)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "ok", rows)
}

// PUT /api/host-colleges/:id
func (ctrl *RegistrationController) UpdateHostCollege(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	var body dto.UpdateHostCollegeRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if fe := helper.ValidateStruct(&body); fe != nil {
		return helper.JsonValidationError(c, fe)
	}
	hc, err := ctrl.Store.UpdateHostCollege(c.UserContext(), id, body.ToUpdates())
	if err != nil {
		return err
	}
	if hc == nil {
		return pipelineService.ErrHostCollegeNotFound
	}
	return helper.JsonUpdated(c, "Host college updated", hc)
}

// DELETE /api/host-colleges/:id
func (ctrl *RegistrationController) DeleteHostCollege(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	ctx := c.UserContext()
	hc, err := ctrl.Store.GetHostCollege(ctx, id)
	if err != nil {
		return err
	}
	if hc == nil {
		return pipelineService.ErrHostCollegeNotFound
	}
	if _, err := ctrl.Store.DeleteHostCollege(ctx, id); err != nil {
		return err
	}
	if hc.HostCollegeLogoURL != nil {
		ctrl.dropLogo(c, *hc.HostCollegeLogoURL)
	}
	return helper.JsonDeleted(c, "Host college deleted", fiber.Map{"host_college_id": id})
}

// POST /api/faculty-registrations
func (ctrl *RegistrationController) CreateFaculty(c *fiber.Ctx) error {
	var body dto.FacultyRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if fe := helper.ValidateStruct(&body); fe != nil {
		return helper.JsonValidationError(c, fe)
	}

	res, err := ctrl.Pipeline.RegisterFaculty(c.UserContext(), body.ToModel(), body.CouponCode)
	if err != nil {
		return err
	}
	return helper.JsonCreated(c, "Faculty registered", res)
}

// GET /api/faculty-registrations/:id
func (ctrl *RegistrationController) GetFaculty(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	f, err := ctrl.Store.GetFaculty(c.UserContext(), id)
	if err != nil {
		return err
	}
	if f == nil {
		return pipelineService.ErrFacultyNotFound
	}
	return helper.JsonOK(c, "ok", f)
}

// GET /api/fdp-events/:fdpId/faculty
func (ctrl *RegistrationController) ListFacultyByEvent(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "fdpId")
	if err != nil {
		return err
	}
	rows, err := ctrl.Store.ListFacultyByEvent(c.UserContext(), id)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "ok", rows)
}

// GET /api/host-colleges/:hostCollegeId/faculty
func (ctrl *RegistrationController) ListFacultyByHostCollege(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "hostCollegeId")
	if err != nil {
		return err
	}
	rows, err := ctrl.Store.ListFacultyByHostCollege(c.UserContext(), id)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "ok", rows)
}

// PUT /api/faculty-registrations/:id
func (ctrl *RegistrationController) UpdateFaculty(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	var body dto.UpdateFacultyRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if fe := helper.ValidateStruct(&body); fe != nil {
		return helper.JsonValidationError(c, fe)
	}
	f, err := ctrl.Store.UpdateFaculty(c.UserContext(), id, body.ToUpdates())
	if err != nil {
		return err
	}
	if f == nil {
		return pipelineService.ErrFacultyNotFound
	}
	return helper.JsonUpdated(c, "Faculty registration updated", f)
}

// DELETE /api/faculty-registrations/:id
func (ctrl *RegistrationController) DeleteFaculty(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	ok, err := ctrl.Store.DeleteFaculty(c.UserContext(), id)
	if err != nil {
		return err
	}
	if !ok {
		return pipelineService.ErrFacultyNotFound
	}
	return helper.JsonDeleted(c, "Faculty registration deleted", fiber.Map{"faculty_id": id})
}

// POST /api/faculty-registrations/:id/feedback
func (ctrl *RegistrationController) SubmitFeedback(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	res, err := ctrl.Pipeline.SubmitFeedback(c.UserContext(), id)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "Feedback submitted", res)
}

// dropLogo removes an uploaded logo; failures only leave an orphan object.
// hostCollegeSaved reports whether the registration row exists; an upstream
// payment failure keeps the row and its logo.
func (ctrl *RegistrationController) hostCollegeSaved(c *fiber.Ctx, id uuid.UUID) bool {
	if id == uuid.Nil {
		return false
	}
	hc, err := ctrl.Store.GetHostCollege(c.UserContext(), id)
	return err != nil || hc != nil
}

func (ctrl *RegistrationController) dropLogo(c *fiber.Ctx, url string) {
	key, ok := blob.KeyFromURL(url, ctrl.Storage.PublicPrefix)
	if !ok {
		return
	}
	if err := ctrl.Blobs.Delete(c.UserContext(), key); err != nil {
		log.Printf("[UPLOAD] ⚠️ could not delete %s: %v", key, err)
	}
}

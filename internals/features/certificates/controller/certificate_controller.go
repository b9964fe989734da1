package controller

import (
	"github.com/gofiber/fiber/v2"

	pipelineService "fdp_backend/internals/features/pipeline/service"
	helper "fdp_backend/internals/helpers"
	"fdp_backend/internals/store"
)

type CertificateController struct {
	Pipeline *pipelineService.Pipeline
	Store    *store.Store
}

func NewCertificateController(p *pipelineService.Pipeline) *CertificateController {
	return &CertificateController{Pipeline: p, Store: p.Store()}
}

// GET /api/certificates/faculty/:facultyId
func (ctrl *CertificateController) GetByFaculty(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "facultyId")
	if err != nil {
		return err
	}
	cert, err := ctrl.Store.GetCertificateByFaculty(c.UserContext(), id)
	if err != nil {
		return err
	}
	if cert == nil {
		return fiber.NewError(fiber.StatusNotFound, "Certificate not found")
	}
	return helper.JsonOK(c, "ok", cert)
}

// GET /api/fdp-events/:fdpId/certificates
func (ctrl *CertificateController) ListByEvent(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "fdpId")
	if err != nil {
		return err
	}
	rows, err := ctrl.Store.ListCertificatesByEvent(c.UserContext(), id)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "ok", rows)
}

// POST /api/certificates/generate/:facultyId?force=true
func (ctrl *CertificateController) Generate(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "facultyId")
	if err != nil {
		return err
	}
	cert, status, err := ctrl.Pipeline.IssueCertificate(c.UserContext(), id, c.QueryBool("force", false))
	if err != nil {
		return err
	}
	if status == pipelineService.CertGenerated {
		return helper.JsonCreated(c, "Certificate generated", fiber.Map{"status": status, "certificate": cert})
	}
	return helper.JsonOK(c, "Certificate already exists", fiber.Map{"status": status, "certificate": cert})
}

// POST /api/certificates/bulk-generate/:fdpId
func (ctrl *CertificateController) BulkGenerate(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "fdpId")
	if err != nil {
		return err
	}
	sum, err := ctrl.Pipeline.BulkGenerateCertificates(c.UserContext(), id)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "Bulk generation finished", sum)
}

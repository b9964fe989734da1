package controller

import (
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"fdp_backend/internals/features/payments/dto"
	pipelineService "fdp_backend/internals/features/pipeline/service"
	helper "fdp_backend/internals/helpers"
	"fdp_backend/internals/store"
)

// headers kept on the gateway event row for replay and debugging
var webhookHeaders = []string{
	fiber.HeaderContentType,
	fiber.HeaderUserAgent,
	"X-Webhook-Signature",
	"X-Webhook-Timestamp",
	"X-Webhook-Version",
	"X-Idempotency-Key",
}

type PaymentController struct {
	Pipeline *pipelineService.Pipeline
	Store    *store.Store
}

func NewPaymentController(p *pipelineService.Pipeline) *PaymentController {
	return &PaymentController{Pipeline: p, Store: p.Store()}
}

// POST /api/payments/verify
func (ctrl *PaymentController) Verify(c *fiber.Ctx) error {
	var body dto.VerifyPaymentRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if fe := helper.ValidateStruct(&body); fe != nil {
		return helper.JsonValidationError(c, fe)
	}

	res, err := ctrl.Pipeline.ConfirmPayment(c.UserContext(), pipelineService.ConfirmInput{
		OrderID:    strings.TrimSpace(body.OrderID),
		PaymentRef: strings.TrimSpace(body.PaymentID),
		Signature:  strings.TrimSpace(body.Signature),
		Method:     body.Method,
	})
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "Payment verified", res)
}

// POST /api/payments/webhook
//
// The signature is checked over the exact bytes received, so the body is
// never re-encoded before it reaches the pipeline.
func (ctrl *PaymentController) Webhook(c *fiber.Ctx) error {
	raw := append([]byte(nil), c.Body()...)

	headers := make(map[string]string, len(webhookHeaders))
	for _, h := range webhookHeaders {
		if v := c.Get(h); v != "" {
			headers[strings.ToLower(h)] = v
		}
	}

	err := ctrl.Pipeline.HandleWebhook(c.UserContext(), pipelineService.WebhookInput{
		RawBody:   raw,
		Signature: c.Get("X-Webhook-Signature"),
		Timestamp: c.Get("X-Webhook-Timestamp"),
		Headers:   headers,
	})
	switch {
	case err == nil:
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "ok"})
	case errors.Is(err, pipelineService.ErrInvalidSignature), errors.Is(err, pipelineService.ErrInvalidWebhook):
		return err
	default:
		log.Println("[WEBHOOK] ❌ processing failed:", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Webhook processing failed")
	}
}

// GET /api/payments/:orderId
func (ctrl *PaymentController) Get(c *fiber.Ctx) error {
	ctx := c.UserContext()
	pay, err := ctrl.Store.GetPaymentByOrderID(ctx, c.Params("orderId"))
	if err != nil {
		return err
	}
	if pay == nil {
		return pipelineService.ErrPaymentNotFound
	}
	events, err := ctrl.Store.ListGatewayEventsByPayment(ctx, pay.PaymentID)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "ok", fiber.Map{"payment": pay, "gateway_events": events})
}

// GET /api/fdp-events/:fdpId/payments
func (ctrl *PaymentController) ListByEvent(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "fdpId")
	if err != nil {
		return err
	}
	p := helper.ResolvePaging(c, 50, 200)
	rows, total, err := ctrl.Store.ListPaymentsByEvent(c.UserContext(), id, p)
	if err != nil {
		return err
	}
	return helper.JsonList(c, "ok", rows, helper.BuildPagination(total, p))
}

// POST /api/payments/:orderId/refund
func (ctrl *PaymentController) Refund(c *fiber.Ctx) error {
	var body dto.RefundRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
	}
	if fe := helper.ValidateStruct(&body); fe != nil {
		return helper.JsonValidationError(c, fe)
	}

	pay, err := ctrl.Pipeline.RefundPayment(c.UserContext(), c.Params("orderId"), body.Amount, body.Reason)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "Refund initiated", pay)
}

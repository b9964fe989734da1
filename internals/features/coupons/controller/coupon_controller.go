package controller

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"fdp_backend/internals/constants"
	"fdp_backend/internals/features/coupons/dto"
	"fdp_backend/internals/features/coupons/model"
	couponService "fdp_backend/internals/features/coupons/service"
	helper "fdp_backend/internals/helpers"
	"fdp_backend/internals/store"
)

type CouponController struct {
	Coupons *couponService.Service
	Store   *store.Store
}

func NewCouponController(coupons *couponService.Service, st *store.Store) *CouponController {
	return &CouponController{Coupons: coupons, Store: st}
}

// POST /api/coupons/validate
func (ctrl *CouponController) Validate(c *fiber.Ctx) error {
	var body dto.ValidateCouponRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if fe := helper.ValidateStruct(&body); fe != nil {
		return helper.JsonValidationError(c, fe)
	}
	entity := body.EntityType
	if entity == "" {
		entity = constants.EntityFaculty
	}

	v, err := ctrl.Coupons.Validate(c.UserContext(), body.Code, body.EventUUID(), entity, time.Now())
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "Coupon is valid", v)
}

// GET /api/coupons
func (ctrl *CouponController) List(c *fiber.Ctx) error {
	rows, err := ctrl.Store.ListCoupons(c.UserContext())
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "ok", rows)
}

// POST /api/coupons
func (ctrl *CouponController) Create(c *fiber.Ctx) error {
	var body dto.CreateCouponRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if fe := helper.ValidateStruct(&body); fe != nil {
		return helper.JsonValidationError(c, fe)
	}
	if body.ValidFrom != nil && body.ValidUntil != nil && body.ValidUntil.Before(*body.ValidFrom) {
		return fiber.NewError(fiber.StatusBadRequest, "coupon_valid_until must not be before coupon_valid_from")
	}

	m := body.ToModel()
	if m.CouponDiscountType == model.DiscountPercentage && m.CouponDiscountValue > 10000 {
		return fiber.NewError(fiber.StatusBadRequest, "Percentage discount cannot exceed 100")
	}
	if err := ctrl.Store.CreateCoupon(c.UserContext(), m); err != nil {
		return err
	}
	log.Printf("[COUPON] %s created (%s %s)", m.CouponCode, m.CouponDiscountType, m.CouponDiscountValue)
	return helper.JsonCreated(c, "Coupon created", m)
}

// PUT /api/coupons/:id
func (ctrl *CouponController) Update(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	var body dto.UpdateCouponRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if fe := helper.ValidateStruct(&body); fe != nil {
		return helper.JsonValidationError(c, fe)
	}

	m, err := ctrl.Store.UpdateCoupon(c.UserContext(), id, body.ToUpdates())
	if err != nil {
		return err
	}
	if m == nil {
		return fiber.NewError(fiber.StatusNotFound, "Coupon not found")
	}
	return helper.JsonUpdated(c, "Coupon updated", m)
}

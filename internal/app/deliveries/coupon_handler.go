package deliveries

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/safatanc/jewelry-backoffice/internal/app/errors"
	"github.com/safatanc/jewelry-backoffice/internal/app/middlewares"
	"github.com/safatanc/jewelry-backoffice/internal/app/models"
	"github.com/safatanc/jewelry-backoffice/internal/app/pkg"
	"github.com/safatanc/jewelry-backoffice/internal/app/services"
	"github.com/safatanc/jewelry-backoffice/internal/infrastructures"
	"github.com/safatanc/jewelry-backoffice/pkg/ratelimit"
)

type CouponHandler struct {
	couponPageService   *services.CouponPageService
	validator           *infrastructures.Validator
	authMiddleware      *middlewares.AuthMiddleware
	rateLimitMiddleware *middlewares.RateLimitMiddleware
}

func NewCouponHandler(couponPageService *services.CouponPageService, validator *infrastructures.Validator, authMiddleware *middlewares.AuthMiddleware, rateLimitMiddleware *middlewares.RateLimitMiddleware) *CouponHandler {
	return &CouponHandler{
		couponPageService:   couponPageService,
		validator:           validator,
		authMiddleware:      authMiddleware,
		rateLimitMiddleware: rateLimitMiddleware,
	}
}

func (h *CouponHandler) RegisterRoutes(router fiber.Router) {
	couponGroup := router.Group("/admin/coupons", h.authMiddleware.AuthBearer)

	read := h.rateLimitMiddleware.LimitByToken(ratelimit.AdminReadLimit)
	write := h.rateLimitMiddleware.LimitByToken(ratelimit.AdminWriteLimit)

	couponGroup.Get("/", read, h.GetCoupons)
	couponGroup.Post("/validate", read, h.ValidateCoupon)
	couponGroup.Get("/:id/form", read, h.GetCouponForm)
	couponGroup.Get("/:id/history", read, h.GetCouponHistory)

	couponGroup.Post("/", write, h.CreateCoupon)
	couponGroup.Patch("/:id", write, h.UpdateCoupon)
	couponGroup.Patch("/:id/active", write, h.SetCouponActive)
	couponGroup.Delete("/:id", write, h.DeleteCoupon)
}

func (h *CouponHandler) GetCoupons(c *fiber.Ctx) error {
	ctx := c.UserContext()

	if c.QueryBool("refresh") {
		// A failed fetch shows up as the view's notification
		_ = h.couponPageService.Refresh(ctx)
	}

	view, err := h.couponPageService.View(ctx, c.Query("search"))
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, view)
}

func (h *CouponHandler) ValidateCoupon(c *fiber.Ctx) error {
	var form models.CouponForm
	if err := c.BodyParser(&form); err != nil {
		return pkg.ErrorResponse(c, errors.NewBadRequestError("Invalid request body"))
	}

	result, err := h.couponPageService.Validate(form)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, result)
}

func (h *CouponHandler) GetCouponForm(c *fiber.Ctx) error {
	id, err := couponID(c)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	form, err := h.couponPageService.EditForm(c.UserContext(), id)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, form)
}

func (h *CouponHandler) GetCouponHistory(c *fiber.Ctx) error {
	id, err := couponID(c)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	pagination := &models.PaginationRequest{
		Page:  c.QueryInt("page", 1),
		Limit: c.QueryInt("limit", 10),
	}
	if err := h.validator.Validate(pagination); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	history, err := h.couponPageService.History(c.UserContext(), id, pagination)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, history)
}

func (h *CouponHandler) CreateCoupon(c *fiber.Ctx) error {
	var form models.CouponForm
	if err := c.BodyParser(&form); err != nil {
		return pkg.ErrorResponse(c, errors.NewBadRequestError("Invalid request body"))
	}

	state, err := h.couponPageService.Create(c.UserContext(), form)
	if err != nil {
		return pkg.ErrorResponseWithData(c, err, state)
	}

	return c.Status(fiber.StatusCreated).JSON(models.WebResponse[*models.CouponFormState]{
		Success: true,
		Message: state.Notification.Message,
		Data:    state,
	})
}

func (h *CouponHandler) UpdateCoupon(c *fiber.Ctx) error {
	id, err := couponID(c)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	var form models.CouponForm
	if err := c.BodyParser(&form); err != nil {
		return pkg.ErrorResponse(c, errors.NewBadRequestError("Invalid request body"))
	}

	state, err := h.couponPageService.Update(c.UserContext(), id, form)
	if err != nil {
		return pkg.ErrorResponseWithData(c, err, state)
	}

	return pkg.SuccessResponse(c, state)
}

func (h *CouponHandler) SetCouponActive(c *fiber.Ctx) error {
	id, err := couponID(c)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	var req models.CouponActiveRequest
	if err := c.BodyParser(&req); err != nil {
		return pkg.ErrorResponse(c, errors.NewBadRequestError("Invalid request body"))
	}
	if err := h.validator.Validate(&req); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	coupon, notification, err := h.couponPageService.SetActive(c.UserContext(), id, *req.IsActive)
	if err != nil {
		return pkg.ErrorResponseWithData(c, err, notification)
	}

	return pkg.SuccessResponse(c, fiber.Map{
		"coupon":       coupon,
		"notification": notification,
	})
}

func (h *CouponHandler) DeleteCoupon(c *fiber.Ctx) error {
	id, err := couponID(c)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	deleted, notification, err := h.couponPageService.Delete(c.UserContext(), id, c.QueryBool("confirm"))
	if err != nil {
		return pkg.ErrorResponseWithData(c, err, notification)
	}

	return pkg.SuccessResponse(c, fiber.Map{
		"deleted":      deleted,
		"notification": notification,
	})
}

func couponID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.NewBadRequestError("Invalid coupon ID format")
	}
	return id, nil
}

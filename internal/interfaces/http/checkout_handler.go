package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/santoko/kasir-api/internal/application/checkout"
	"github.com/santoko/kasir-api/internal/application/dto"
	"github.com/santoko/kasir-api/internal/domain"
)

// CheckoutHandler handles cart finalization (protected).
type CheckoutHandler struct {
	uc *checkout.UseCase
}

// NewCheckoutHandler builds the handler.
func NewCheckoutHandler(uc *checkout.UseCase) *CheckoutHandler {
	return &CheckoutHandler{uc: uc}
}

// Finalize godoc
// @Summary      Finalize a cart into a sale
// @Description  Turns the cart into a durable sale: line snapshots, stock
// @Description  decrements, payment, ledger entries and customer log, all in
// @Description  one transaction. The cart is deleted on success.
// @Tags         checkout
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CheckoutRequest  true  "cart_id, paying_method, paying_amount, adjustments"
// @Success      201   {object}  dto.CheckoutResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/checkout [post]
func (h *CheckoutHandler) Finalize(c *fiber.Ctx) error {
	actor, ok := GetActor(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "invalid token"})
	}
	var in dto.CheckoutRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	resp, err := h.uc.Finalize(c.Context(), actor, in)
	if err != nil {
		switch err {
		case domain.ErrInvalidInput:
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "invalid input"})
		case domain.ErrCartUnavailable:
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CART_UNAVAILABLE", Message: "cart not found or already processed"})
		case domain.ErrEmptyCart:
			return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "EMPTY_CART", Message: "no products in cart"})
		case domain.ErrPointExceedsTotal:
			return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "POINT_EXCEEDS_TOTAL", Message: "point redemption exceeds transaction total"})
		case domain.ErrInsufficientTender:
			return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_TENDER", Message: "tendered amount below grand total"})
		case domain.ErrInsufficientStock:
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "insufficient stock"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

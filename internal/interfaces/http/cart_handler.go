package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/santoko/kasir-api/internal/application/cart"
	"github.com/santoko/kasir-api/internal/application/dto"
	"github.com/santoko/kasir-api/internal/domain"
)

// CartHandler handles cart operations (protected).
type CartHandler struct {
	uc *cart.UseCase
}

// NewCartHandler builds the handler.
func NewCartHandler(uc *cart.UseCase) *CartHandler {
	return &CartHandler{uc: uc}
}

// Open godoc
// @Summary      Open a cart for a customer
// @Tags         carts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.OpenCartRequest  true  "customer_id, warehouse_id (optional), kind"
// @Success      201   {object}  dto.OpenCartResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/carts [post]
func (h *CartHandler) Open(c *fiber.Ctx) error {
	actor, ok := GetActor(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "invalid token"})
	}
	var in dto.OpenCartRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	resp, err := h.uc.OpenCart(c.Context(), actor, in)
	if err != nil {
		return cartError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Get godoc
// @Summary      List the cart's lines
// @Tags         carts
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "cart id"
// @Success      200  {object}  dto.CartResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/carts/{id} [get]
func (h *CartHandler) Get(c *fiber.Ctx) error {
	if _, ok := GetActor(c); !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "invalid token"})
	}
	cartID, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "invalid cart id"})
	}
	resp, err := h.uc.ListCart(c.Context(), cartID)
	if err != nil {
		return cartError(c, err)
	}
	return c.JSON(resp)
}

// AddItem godoc
// @Summary      Scan a barcode into the cart (merges duplicates)
// @Tags         carts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                    true  "cart id"
// @Param        body  body  dto.MutateItemRequest  true  "barcode, quantity, tier"
// @Success      200   {object}  dto.CartResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/carts/{id}/items [post]
func (h *CartHandler) AddItem(c *fiber.Ctx) error {
	actor, ok := GetActor(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "invalid token"})
	}
	cartID, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "invalid cart id"})
	}
	var in dto.MutateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	if in.Barcode == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "barcode required"})
	}
	resp, err := h.uc.AddItem(c.Context(), actor, cartID, in)
	if err != nil {
		return cartError(c, err)
	}
	return c.JSON(resp)
}

// SetQuantity godoc
// @Summary      Set the quantity of a cart line (0 removes it)
// @Tags         carts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id       path  int     true  "cart id"
// @Param        barcode  path  string  true  "line barcode"
// @Param        body     body  dto.MutateItemRequest  true  "quantity, tier"
// @Success      200   {object}  dto.CartResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/carts/{id}/items/{barcode} [put]
func (h *CartHandler) SetQuantity(c *fiber.Ctx) error {
	actor, ok := GetActor(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "invalid token"})
	}
	cartID, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "invalid cart id"})
	}
	var in dto.MutateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	in.Barcode = c.Params("barcode")
	resp, err := h.uc.SetQuantity(c.Context(), actor, cartID, in)
	if err != nil {
		return cartError(c, err)
	}
	return c.JSON(resp)
}

// DeleteItem godoc
// @Summary      Remove a line from the cart
// @Tags         carts
// @Security     Bearer
// @Produce      json
// @Param        id       path  int     true  "cart id"
// @Param        barcode  path  string  true  "line barcode"
// @Success      200   {object}  dto.CartResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/carts/{id}/items/{barcode} [delete]
func (h *CartHandler) DeleteItem(c *fiber.Ctx) error {
	if _, ok := GetActor(c); !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "invalid token"})
	}
	cartID, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "invalid cart id"})
	}
	resp, err := h.uc.DeleteItem(c.Context(), cartID, c.Params("barcode"))
	if err != nil {
		return cartError(c, err)
	}
	return c.JSON(resp)
}

// cartError maps cart domain errors to HTTP responses.
func cartError(c *fiber.Ctx, err error) error {
	switch err {
	case domain.ErrInvalidInput:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "invalid input"})
	case domain.ErrNotFound:
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "cart not found"})
	case domain.ErrProductNotFound:
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "PRODUCT_NOT_FOUND", Message: "product not found"})
	case domain.ErrCustomerNotFound:
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "CUSTOMER_NOT_FOUND", Message: "customer not found"})
	case domain.ErrLineNotFound:
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "LINE_NOT_FOUND", Message: "product not found in cart"})
	case domain.ErrCartUnavailable:
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CART_UNAVAILABLE", Message: "cart not found or already processed"})
	case domain.ErrPriceNotConfigured:
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "PRICE_NOT_CONFIGURED", Message: "price not configured for product"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

func paramID(c *fiber.Ctx, name string) (int64, error) {
	return strconv.ParseInt(c.Params(name), 10, 64)
}

package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/santoko/kasir-api/internal/application/customer"
	"github.com/santoko/kasir-api/internal/application/dto"
	"github.com/santoko/kasir-api/internal/domain"
)

// CustomerHandler handles customer lookups (protected).
type CustomerHandler struct {
	uc *customer.UseCase
}

// NewCustomerHandler builds the handler.
func NewCustomerHandler(uc *customer.UseCase) *CustomerHandler {
	return &CustomerHandler{uc: uc}
}

// Search godoc
// @Summary      Search customers
// @Tags         customers
// @Security     Bearer
// @Produce      json
// @Param        name          query  string  false  "name substring"
// @Param        code          query  string  false  "code substring"
// @Param        phone_number  query  string  false  "phone substring"
// @Param        is_active     query  int     false  "1 active, 0 inactive"
// @Param        limit         query  int     false  "page size (default 20, max 100)"
// @Param        offset        query  int     false  "page offset"
// @Success      200  {object}  dto.CustomerListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/customers [get]
func (h *CustomerHandler) Search(c *fiber.Ctx) error {
	actor, ok := GetActor(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "invalid token"})
	}
	var in dto.CustomerSearchRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "invalid query"})
	}
	resp, err := h.uc.Search(actor, in)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(resp)
}

// Get godoc
// @Summary      Get one customer
// @Tags         customers
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "customer id"
// @Success      200  {object}  dto.CustomerResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/customers/{id} [get]
func (h *CustomerHandler) Get(c *fiber.Ctx) error {
	if _, ok := GetActor(c); !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "invalid token"})
	}
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "invalid customer id"})
	}
	resp, err := h.uc.Get(id)
	if err != nil {
		if err == domain.ErrCustomerNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "CUSTOMER_NOT_FOUND", Message: "customer not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(resp)
}

package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/santoko/kasir-api/internal/application/dto"
	"github.com/santoko/kasir-api/internal/application/sale"
	"github.com/santoko/kasir-api/internal/domain"
)

// SaleHandler handles finalized sale reads and receipt printing (protected).
type SaleHandler struct {
	uc *sale.UseCase
}

// NewSaleHandler builds the handler.
func NewSaleHandler(uc *sale.UseCase) *SaleHandler {
	return &SaleHandler{uc: uc}
}

// Get godoc
// @Summary      Get a finalized sale with its lines
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "sale id"
// @Success      200  {object}  dto.SaleResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [get]
func (h *SaleHandler) Get(c *fiber.Ctx) error {
	actor, ok := GetActor(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "invalid token"})
	}
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "invalid sale id"})
	}
	resp, err := h.uc.GetSale(c.Context(), actor, id)
	if err != nil {
		return saleError(c, err)
	}
	return c.JSON(resp)
}

// Receipt godoc
// @Summary      Download the sale receipt as PDF
// @Tags         sales
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  int  true  "sale id"
// @Success      200  {file}    binary
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/receipt [get]
func (h *SaleHandler) Receipt(c *fiber.Ctx) error {
	actor, ok := GetActor(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "invalid token"})
	}
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "invalid sale id"})
	}
	pdfBytes, filename, err := h.uc.Receipt(c.Context(), actor, id)
	if err != nil {
		return saleError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}

func saleError(c *fiber.Ctx, err error) error {
	switch err {
	case domain.ErrNotFound:
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "sale not found"})
	case domain.ErrForbidden:
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "access denied"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

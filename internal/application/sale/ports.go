package sale

import "github.com/santoko/kasir-api/internal/application/dto"

// ReceiptGenerator renders the printable receipt for a finalized sale.
type ReceiptGenerator interface {
	Generate(sale *dto.SaleResponse) ([]byte, error)
}

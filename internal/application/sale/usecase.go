package sale

import (
	"context"
	"fmt"

	"github.com/santoko/kasir-api/internal/application/dto"
	"github.com/santoko/kasir-api/internal/domain"
	"github.com/santoko/kasir-api/internal/domain/entity"
	"github.com/santoko/kasir-api/internal/domain/repository"
)

// UseCase reads back finalized sales for history display and receipt
// printing. Sales are immutable; there is no write path here.
type UseCase struct {
	saleRepo    repository.SaleRepository
	productRepo repository.ProductRepository
	generator   ReceiptGenerator
}

// NewUseCase builds the sale use case.
func NewUseCase(saleRepo repository.SaleRepository, productRepo repository.ProductRepository, generator ReceiptGenerator) *UseCase {
	return &UseCase{saleRepo: saleRepo, productRepo: productRepo, generator: generator}
}

// GetSale returns a sale with its line snapshots. Line product names and
// units are resolved from the catalog at read time; the snapshot itself only
// stores ids and amounts.
func (uc *UseCase) GetSale(ctx context.Context, actor dto.Actor, id int64) (*dto.SaleResponse, error) {
	s, err := uc.saleRepo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("sale: get %d: %w", id, err)
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	if s.StoreID != actor.StoreID {
		return nil, domain.ErrForbidden
	}
	lines, err := uc.saleRepo.GetLinesByReference(s.ReferenceNo)
	if err != nil {
		return nil, fmt.Errorf("sale: lines for %s: %w", s.ReferenceNo, err)
	}

	resp := &dto.SaleResponse{
		ID:                s.ID,
		ReferenceNo:       s.ReferenceNo,
		WarehouseID:       s.WarehouseID,
		BillerID:          s.BillerID,
		CustomerID:        s.CustomerID,
		CustomerAlias:     s.CustomerAlias,
		OperatorID:        s.UserID,
		Kind:              int(entity.KindFromReference(s.ReferenceNo)),
		ItemCount:         s.Item,
		TotalQuantity:     s.TotalQty,
		TotalPrice:        s.TotalPrice,
		TotalPriceRounded: s.TotalPriceRounded,
		TotalTax:          s.TotalTax,
		TotalDiscount:     s.TotalDiscount,
		OrderTax:          s.OrderTax,
		OrderTaxRate:      s.OrderTaxRate,
		OrderDiscount:     s.OrderDiscount,
		PointDiscount:     s.PointDiscount,
		ShippingCost:      s.ShippingCost,
		ServiceFee:        s.ServiceFee,
		GrandTotal:        s.GrandTotal,
		PaidAmount:        s.PaidAmount,
		PaymentStatus:     string(s.PaymentStatus),
		SaleNote:          s.SaleNote,
		StaffNote:         s.StaffNote,
		CreatedAt:         s.CreatedAt,
		Lines:             make([]dto.SaleLineResponse, 0, len(lines)),
	}
	for _, ln := range lines {
		lr := dto.SaleLineResponse{
			ID:          ln.ID,
			ReferenceNo: ln.ReferenceNo,
			ProductID:   ln.ProductID,
			Quantity:    ln.Qty,
			UnitPrice:   ln.NetUnitPrice,
			TaxRate:     ln.TaxRate,
			Tax:         ln.Tax,
			Discount:    ln.Discount,
			Total:       ln.Total,
		}
		product, err := uc.productRepo.GetByID(ln.ProductID)
		if err != nil {
			return nil, fmt.Errorf("sale: product %d: %w", ln.ProductID, err)
		}
		if product != nil {
			lr.Barcode = product.Barcode
			lr.Name = product.Name
		}
		unit, err := uc.productRepo.GetUnitName(ln.SaleUnitID)
		if err != nil {
			return nil, fmt.Errorf("sale: unit %d: %w", ln.SaleUnitID, err)
		}
		lr.Unit = unit
		resp.Lines = append(resp.Lines, lr)
	}
	return resp, nil
}

// Receipt renders the printable PDF receipt for a sale.
func (uc *UseCase) Receipt(ctx context.Context, actor dto.Actor, id int64) (pdfBytes []byte, filename string, err error) {
	s, err := uc.GetSale(ctx, actor, id)
	if err != nil {
		return nil, "", err
	}
	pdfBytes, err = uc.generator.Generate(s)
	if err != nil {
		return nil, "", fmt.Errorf("sale: render receipt %s: %w", s.ReferenceNo, err)
	}
	return pdfBytes, "receipt-" + s.ReferenceNo + ".pdf", nil
}

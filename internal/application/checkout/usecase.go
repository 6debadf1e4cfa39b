package checkout

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/santoko/kasir-api/internal/application/cart"
	"github.com/santoko/kasir-api/internal/application/dto"
	"github.com/santoko/kasir-api/internal/domain"
	"github.com/santoko/kasir-api/internal/domain/entity"
	"github.com/santoko/kasir-api/internal/domain/refnum"
	"github.com/santoko/kasir-api/internal/domain/repository"
)

var hundred = decimal.NewFromInt(100)

// defaultAccountID is the chart-of-accounts account payments post to until
// per-store account mapping lands.
const defaultAccountID = 1

// UseCase turns an open cart into a durable sale in one transaction: sale
// header and line snapshots, locked stock decrements with movement audit
// rows, the payment row, per-component ledger entries, the customer activity
// log, and finally the cart's deletion. Any failure rolls the whole sequence
// back and leaves the cart open and intact so finalize can be retried.
type UseCase struct {
	txRunner TxRunner
	cartRepo repository.CartRepository
}

// NewUseCase builds the checkout use case.
func NewUseCase(txRunner TxRunner, cartRepo repository.CartRepository) *UseCase {
	return &UseCase{txRunner: txRunner, cartRepo: cartRepo}
}

// Finalize executes the checkout for the given cart.
func (uc *UseCase) Finalize(ctx context.Context, actor dto.Actor, req dto.CheckoutRequest) (*dto.CheckoutResponse, error) {
	if req.CartID == 0 {
		return nil, domain.ErrInvalidInput
	}
	method := entity.PaymentMethod(req.PayingMethod)
	if method < entity.PayCash || method > entity.PayQRIS {
		return nil, domain.ErrInvalidInput
	}
	if req.PayingAmount.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	c, err := uc.cartRepo.GetCart(req.CartID)
	if err != nil {
		return nil, err
	}
	if c == nil || !c.Open() {
		return nil, domain.ErrCartUnavailable
	}

	now := time.Now()
	refNo := refnum.Mint(c.Kind, now)

	var resp *dto.CheckoutResponse
	err = uc.txRunner.RunCheckout(ctx, func(
		cartRepo repository.CartRepository,
		saleRepo repository.SaleRepository,
		stockRepo repository.StockRepository,
		movementRepo repository.StockMovementRepository,
		paymentRepo repository.PaymentRepository,
		ledgerRepo repository.LedgerRepository,
		customerLogRepo repository.CustomerLogRepository,
	) error {
		// Re-read the header under a row lock: a concurrent finalize (POS
		// double-tap) holds the lock until it commits the cart deletion, so
		// the loser sees nil here and the cart is consumed exactly once.
		c, err := cartRepo.GetCartForUpdate(req.CartID)
		if err != nil {
			return err
		}
		if c == nil || !c.Open() {
			return domain.ErrCartUnavailable
		}

		lines, err := cartRepo.ListLines(c.ID)
		if err != nil {
			return err
		}
		agg, ok := cart.Aggregate(lines)
		if !ok {
			return domain.ErrEmptyCart
		}

		// Store convention: the line total is truncated down to the nearest
		// 100 minor units, the grand total rounded to the nearest 100.
		totalRounded := floorHundred(agg.TotalPrice)
		pointDiscount := negativeAdjustment(req.Point)
		orderDiscount := negativeAdjustment(req.OrderDiscount)

		if !pointDiscount.IsZero() && pointDiscount.Abs().GreaterThan(totalRounded) {
			return domain.ErrPointExceedsTotal
		}

		grand := roundHundred(totalRounded.
			Add(req.ShippingCost).
			Add(req.ServiceFee).
			Add(req.OrderTax).
			Add(orderDiscount).
			Add(pointDiscount))

		status := paymentStatus(method, req.PayingAmount, grand)
		paid := decimal.Min(req.PayingAmount, grand)
		change := req.PayingAmount.Sub(grand)
		if change.LessThan(decimal.Zero) && !method.Deferred() && req.IsShipped != 1 {
			return domain.ErrInsufficientTender
		}

		sale := &entity.Sale{
			ReferenceNo:       refNo,
			StoreID:           actor.StoreID,
			WarehouseID:       c.WarehouseID,
			BillerID:          c.BillerID,
			CustomerID:        c.CustomerID,
			UserID:            actor.UserID,
			Item:              agg.Items,
			TotalQty:          agg.TotalQty,
			TotalDiscount:     agg.TotalDiscount,
			TotalTax:          agg.TotalTax,
			TotalPrice:        agg.TotalPrice,
			TotalPriceRounded: totalRounded,
			GrandTotal:        grand,
			OrderTaxRate:      req.OrderTaxRate,
			OrderTax:          req.OrderTax,
			OrderDiscount:     orderDiscount,
			ShippingCost:      req.ShippingCost,
			ServiceFee:        req.ServiceFee,
			PointDiscount:     pointDiscount,
			CouponDiscount:    decimal.Zero,
			SaleStatus:        entity.SaleStatusProcessed,
			PaymentStatus:     status,
			PaidAmount:        paid,
			SaleNote:          req.SaleNote,
			StaffNote:         req.StaffNote,
			CustomerAlias:     req.CustomerAlias,
			IsShipped:         req.IsShipped,
			CreatedAt:         now,
			UpdatedAt:         now,
		}
		if err := saleRepo.Create(sale); err != nil {
			return err
		}

		for _, ln := range lines {
			saleLine := &entity.SaleLine{
				ReferenceNo:  refNo,
				ProductID:    ln.ProductID,
				Qty:          ln.Quantity,
				SaleUnitID:   ln.UnitID,
				NetUnitPrice: ln.UnitPrice,
				Discount:     ln.Discount,
				TaxRate:      ln.TaxRate,
				Tax:          ln.Tax,
				Total:        ln.Total,
				Profit:       ln.Profit,
				CreatedAt:    now,
			}
			if err := saleRepo.CreateLine(saleLine); err != nil {
				return err
			}
			if err := decrementStock(stockRepo, movementRepo, actor.StoreID, c.WarehouseID, refNo, ln, now); err != nil {
				return err
			}
		}

		payment := &entity.Payment{
			ID:               uuid.New().String(),
			ReferenceNo:      refNo,
			PaymentReference: refnum.PaymentReference(now),
			UserID:           actor.UserID,
			Paying:           req.PayingAmount,
			Amount:           paid,
			Change:           change,
			PayingMethod:     method.Name(),
			AccountID:        defaultAccountID,
			StoreID:          actor.StoreID,
			CreatedAt:        now,
		}
		if err := paymentRepo.Create(payment); err != nil {
			return err
		}

		if err := writeLedger(ledgerRepo, sale, method, actor, totalRounded, paid, pointDiscount, orderDiscount, req, now); err != nil {
			return err
		}

		logRow := &entity.CustomerLog{
			ID:         uuid.New().String(),
			CustomerID: c.CustomerID,
			Kind:       c.Kind,
			Amount:     grand,
			ReffID:     sale.ID,
			Status:     1,
			StoreID:    actor.StoreID,
			CreatedAt:  now,
		}
		if err := customerLogRepo.Create(logRow); err != nil {
			return err
		}

		if err := cartRepo.DeleteLines(c.ID); err != nil {
			return err
		}
		if err := cartRepo.DeleteCart(c.ID); err != nil {
			return err
		}

		resp = &dto.CheckoutResponse{
			SaleID:       sale.ID,
			ReferenceNo:  refNo,
			GrandTotal:   grand,
			PayingAmount: req.PayingAmount,
			Change:       decimal.Max(change, decimal.Zero),
			Piutang:      decimal.Max(change.Neg(), decimal.Zero),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// decrementStock locks the stock row, rejects overselling and writes the
// decremented level plus its movement audit row. Negative quantities (return
// carts) restock.
func decrementStock(
	stockRepo repository.StockRepository,
	movementRepo repository.StockMovementRepository,
	storeID, warehouseID int64,
	refNo string,
	ln *entity.CartLine,
	now time.Time,
) error {
	stock, err := stockRepo.GetForUpdate(ln.ProductID, warehouseID)
	if err != nil {
		return err
	}
	if stock == nil {
		stock = &entity.StockLevel{ProductID: ln.ProductID, WarehouseID: warehouseID, Quantity: decimal.Zero}
	}
	if stock.Quantity.LessThan(ln.Quantity) {
		return domain.ErrInsufficientStock
	}
	start := stock.Quantity
	end := start.Sub(ln.Quantity)

	stock.Quantity = end
	stock.UpdatedAt = now
	if err := stockRepo.Upsert(stock); err != nil {
		return err
	}
	mov := &entity.StockMovement{
		ID:          uuid.New().String(),
		StoreID:     storeID,
		ReferenceNo: refNo,
		WarehouseID: warehouseID,
		ProductID:   ln.ProductID,
		StartQty:    start,
		EndQty:      end,
		RunQty:      ln.Quantity.Neg(),
		Reason:      entity.MovementSale,
		CreatedAt:   now,
	}
	return movementRepo.Create(mov)
}

// writeLedger appends the sale's ledger entry plus one entry per non-zero
// monetary adjustment. Adjustment entries carry the component amount with
// zero paid.
func writeLedger(
	ledgerRepo repository.LedgerRepository,
	sale *entity.Sale,
	method entity.PaymentMethod,
	actor dto.Actor,
	totalRounded, paid, pointDiscount, orderDiscount decimal.Decimal,
	req dto.CheckoutRequest,
	now time.Time,
) error {
	entry := func(kind entity.LedgerKind, amount, paidAmount decimal.Decimal, methodID entity.PaymentMethod) *entity.LedgerEntry {
		return &entity.LedgerEntry{
			ID:              uuid.New().String(),
			Kind:            kind,
			ReferenceNo:     sale.ReferenceNo,
			UserID:          actor.UserID,
			CustomerID:      sale.CustomerID,
			Amount:          amount,
			Paid:            paidAmount,
			TrxID:           sale.ID,
			PaymentMethodID: methodID,
			StoreID:         actor.StoreID,
			WarehouseID:     sale.WarehouseID,
			CreatedAt:       now,
		}
	}

	if err := ledgerRepo.Create(entry(entity.LedgerSale, totalRounded, paid, method)); err != nil {
		return err
	}
	adjustments := []struct {
		kind   entity.LedgerKind
		amount decimal.Decimal
		method entity.PaymentMethod
	}{
		// Point redemptions settle against the cash account regardless of
		// how the remainder was tendered.
		{entity.LedgerPointRedemption, pointDiscount, entity.PayCash},
		{entity.LedgerOrderDiscount, orderDiscount, method},
		{entity.LedgerShippingCost, req.ShippingCost, method},
		{entity.LedgerServiceFee, req.ServiceFee, method},
	}
	for _, adj := range adjustments {
		if adj.amount.IsZero() {
			continue
		}
		if err := ledgerRepo.Create(entry(adj.kind, adj.amount, decimal.Zero, adj.method)); err != nil {
			return err
		}
	}
	return nil
}

// paymentStatus applies the settlement rule: deferred methods may stay unpaid
// or partially paid, everything else settles immediately.
func paymentStatus(method entity.PaymentMethod, tendered, grand decimal.Decimal) entity.PaymentStatus {
	if !method.Deferred() {
		return entity.PaymentPaid
	}
	switch {
	case tendered.IsZero():
		return entity.PaymentUnpaid
	case tendered.LessThan(grand):
		return entity.PaymentPartial
	default:
		return entity.PaymentPaid
	}
}

// negativeAdjustment normalizes a caller-supplied discount or point amount to
// the stored form: a non-positive adjustment.
func negativeAdjustment(v decimal.Decimal) decimal.Decimal {
	if v.GreaterThan(decimal.Zero) {
		return v.Abs().Neg()
	}
	return decimal.Zero
}

// floorHundred truncates down to the nearest 100 minor units.
func floorHundred(v decimal.Decimal) decimal.Decimal {
	return v.Div(hundred).Floor().Mul(hundred)
}

// roundHundred rounds to the nearest 100 minor units, half to even, so a
// run of finalized totals does not drift upward on exact .5 ties.
func roundHundred(v decimal.Decimal) decimal.Decimal {
	return v.Div(hundred).RoundBank(0).Mul(hundred)
}

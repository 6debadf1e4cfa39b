package cart

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/santoko/kasir-api/internal/application/dto"
	"github.com/santoko/kasir-api/internal/domain"
	"github.com/santoko/kasir-api/internal/domain/entity"
	"github.com/santoko/kasir-api/internal/domain/pricing"
	"github.com/santoko/kasir-api/internal/domain/repository"
)

// UseCase implements the cart operations: open a cart for a customer, scan
// items in (merging repeated barcodes), change quantities and list the cart.
// Item merges run transactionally with a row lock so two scans of the same
// barcode never produce two lines.
type UseCase struct {
	txRunner        TxRunner
	cartRepo        repository.CartRepository
	productRepo     repository.ProductRepository
	customerRepo    repository.CustomerRepository
	defaultBillerID int64
}

// NewUseCase builds the cart use case.
func NewUseCase(
	txRunner TxRunner,
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	defaultBillerID int64,
) *UseCase {
	return &UseCase{
		txRunner:        txRunner,
		cartRepo:        cartRepo,
		productRepo:     productRepo,
		customerRepo:    customerRepo,
		defaultBillerID: defaultBillerID,
	}
}

// OpenCart starts a new cart for a customer and echoes the customer's point
// balance and outstanding receivable so the operator sees them up front.
// The warehouse defaults to the actor's assigned warehouse.
func (uc *UseCase) OpenCart(ctx context.Context, actor dto.Actor, req dto.OpenCartRequest) (*dto.OpenCartResponse, error) {
	if req.CustomerID == 0 {
		return nil, domain.ErrInvalidInput
	}
	kind := entity.TransactionKind(req.Kind)
	if kind == 0 {
		kind = entity.KindSale
	}
	if kind != entity.KindSale && kind != entity.KindReturn {
		return nil, domain.ErrInvalidInput
	}

	customer, err := uc.customerRepo.GetByID(req.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrCustomerNotFound
	}

	warehouseID := req.WarehouseID
	if warehouseID == 0 {
		warehouseID = actor.WarehouseID
	}

	c := &entity.Cart{
		WarehouseID: warehouseID,
		BillerID:    uc.defaultBillerID,
		CustomerID:  customer.ID,
		OperatorID:  actor.UserID,
		Kind:        kind,
		Status:      entity.CartStatusOpen,
		CreatedAt:   time.Now(),
	}
	if err := uc.cartRepo.CreateCart(c); err != nil {
		return nil, err
	}

	return &dto.OpenCartResponse{
		CartID: c.ID,
		Customer: dto.CustomerSummary{
			Name:        customer.Name,
			PhoneNumber: customer.PhoneNumber,
			Point:       customer.Deposit,
			Piutang:     customer.Expense,
			Tier:        int(customer.Tier),
		},
	}, nil
}

// AddItem scans a barcode into the cart. When the barcode is already in the
// cart the quantities merge and the whole line is re-priced at the combined
// quantity, because a different price threshold may now apply. The merge runs
// under a row lock inside one transaction.
func (uc *UseCase) AddItem(ctx context.Context, actor dto.Actor, cartID int64, req dto.MutateItemRequest) (*dto.CartResponse, error) {
	c, err := uc.openCart(cartID)
	if err != nil {
		return nil, err
	}

	product, err := uc.productRepo.GetByScan(actor.StoreID, req.Barcode)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}

	tier, err := uc.resolveTier(c, req.Tier)
	if err != nil {
		return nil, err
	}
	qty := req.Quantity
	if qty.IsZero() {
		qty = decimal.NewFromInt(1)
	}

	err = uc.txRunner.Run(ctx, func(
		cartRepo repository.CartRepository,
		productRepo repository.ProductRepository,
	) error {
		existing, err := cartRepo.GetLineForUpdate(c.ID, product.Barcode)
		if err != nil {
			return err
		}
		if existing != nil {
			qty = existing.Quantity.Add(qty)
		}

		quote, err := productRepo.GetPriceQuote(product.ID, qty, tier, c.WarehouseID)
		if err != nil {
			return err
		}
		if quote == nil {
			return domain.ErrPriceNotConfigured
		}
		calc := pricing.Resolve(quote, qty, tier)

		if existing != nil {
			applyCalc(existing, quote, calc, qty)
			return cartRepo.UpdateLine(existing)
		}
		line := &entity.CartLine{
			CartID:    c.ID,
			Barcode:   product.Barcode,
			ProductID: product.ID,
		}
		applyCalc(line, quote, calc, qty)
		return cartRepo.InsertLine(line)
	})
	if err != nil {
		return nil, err
	}

	return uc.listWithPromo(c.ID, product.ID)
}

// SetQuantity replaces the quantity of an existing line, re-pricing it at the
// new quantity. A quantity of zero or less removes the line.
func (uc *UseCase) SetQuantity(ctx context.Context, actor dto.Actor, cartID int64, req dto.MutateItemRequest) (*dto.CartResponse, error) {
	c, err := uc.openCart(cartID)
	if err != nil {
		return nil, err
	}
	tier, err := uc.resolveTier(c, req.Tier)
	if err != nil {
		return nil, err
	}

	err = uc.txRunner.Run(ctx, func(
		cartRepo repository.CartRepository,
		productRepo repository.ProductRepository,
	) error {
		line, err := cartRepo.GetLineForUpdate(c.ID, req.Barcode)
		if err != nil {
			return err
		}
		if line == nil {
			return domain.ErrLineNotFound
		}

		if !req.Quantity.GreaterThan(decimal.Zero) {
			return cartRepo.DeleteLine(c.ID, req.Barcode)
		}

		quote, err := productRepo.GetPriceQuote(line.ProductID, req.Quantity, tier, c.WarehouseID)
		if err != nil {
			return err
		}
		if quote == nil {
			return domain.ErrPriceNotConfigured
		}
		calc := pricing.Resolve(quote, req.Quantity, tier)
		applyCalc(line, quote, calc, req.Quantity)
		return cartRepo.UpdateLine(line)
	})
	if err != nil {
		return nil, err
	}

	return uc.list(c.ID)
}

// DeleteItem removes a line from the cart.
func (uc *UseCase) DeleteItem(ctx context.Context, cartID int64, barcode string) (*dto.CartResponse, error) {
	c, err := uc.openCart(cartID)
	if err != nil {
		return nil, err
	}
	line, err := uc.cartRepo.GetLine(c.ID, barcode)
	if err != nil {
		return nil, err
	}
	if line == nil {
		return nil, domain.ErrLineNotFound
	}
	if err := uc.cartRepo.DeleteLine(c.ID, barcode); err != nil {
		return nil, err
	}
	return uc.list(c.ID)
}

// ListCart returns the cart's lines in insertion order.
func (uc *UseCase) ListCart(ctx context.Context, cartID int64) (*dto.CartResponse, error) {
	if _, err := uc.openCart(cartID); err != nil {
		return nil, err
	}
	return uc.list(cartID)
}

// openCart loads the cart and rejects ones already taken over by a finalize.
func (uc *UseCase) openCart(cartID int64) (*entity.Cart, error) {
	c, err := uc.cartRepo.GetCart(cartID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	if !c.Open() {
		return nil, domain.ErrCartUnavailable
	}
	return c, nil
}

// resolveTier takes the tier from the request, falling back to the cart
// customer's own tier when the request leaves it unset.
func (uc *UseCase) resolveTier(c *entity.Cart, requested int) (entity.CustomerTier, error) {
	if requested != 0 {
		tier := entity.CustomerTier(requested)
		if tier != entity.TierRetail && tier != entity.TierBranch && tier != entity.TierWarehouse {
			return 0, domain.ErrInvalidInput
		}
		return tier, nil
	}
	customer, err := uc.customerRepo.GetByID(c.CustomerID)
	if err != nil {
		return 0, err
	}
	if customer == nil {
		return 0, domain.ErrCustomerNotFound
	}
	return customer.Tier, nil
}

func (uc *UseCase) list(cartID int64) (*dto.CartResponse, error) {
	lines, err := uc.cartRepo.ListLines(cartID)
	if err != nil {
		return nil, err
	}
	resp := &dto.CartResponse{Lines: make([]dto.CartLineResponse, 0, len(lines))}
	for _, ln := range lines {
		resp.Lines = append(resp.Lines, toLineResponse(ln))
	}
	return resp, nil
}

// listWithPromo lists the cart and attaches the scanned product's running
// promotion, if any. The promotion is advisory; stored prices are untouched.
func (uc *UseCase) listWithPromo(cartID, productID int64) (*dto.CartResponse, error) {
	resp, err := uc.list(cartID)
	if err != nil {
		return nil, err
	}
	promo, err := uc.productRepo.GetActivePromotion(productID, time.Now())
	if err != nil {
		return nil, err
	}
	if promo != nil {
		resp.Promo = &dto.PromoInfo{
			PromotionPrice: promo.PromotionPrice,
			MaxItemPromo:   promo.MaxItemPromo,
		}
	}
	return resp, nil
}

// applyCalc writes a priced quote onto a cart line at the given quantity.
func applyCalc(line *entity.CartLine, quote *entity.PriceQuote, calc pricing.Calculation, qty decimal.Decimal) {
	line.Name = quote.Name
	line.Quantity = qty
	line.Unit = quote.UnitName
	line.UnitID = quote.UnitID
	line.UnitPrice = calc.NetPrice
	line.Discount = decimal.Zero
	line.Total = calc.Total
	line.Profit = calc.Profit
	line.IsPoint = quote.IsPoint
	line.TaxRate = calc.TaxRate
	line.Tax = calc.Tax
}

func toLineResponse(ln *entity.CartLine) dto.CartLineResponse {
	return dto.CartLineResponse{
		No:        ln.No,
		CartID:    ln.CartID,
		Barcode:   ln.Barcode,
		ProductID: ln.ProductID,
		UnitPrice: ln.UnitPrice,
		Tax:       ln.Tax,
		TaxedUnit: pricing.TaxedUnitPrice(ln.UnitPrice, ln.Tax, ln.Quantity),
		Name:      ln.Name,
		Quantity:  ln.Quantity,
		Unit:      ln.Unit,
		Total:     ln.Total,
		Discount:  ln.Discount,
		Profit:    ln.Profit,
		IsPoint:   ln.IsPoint,
		TaxRate:   ln.TaxRate,
		UnitID:    ln.UnitID,
	}
}

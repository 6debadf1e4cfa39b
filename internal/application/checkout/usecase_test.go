package checkout_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/santoko/kasir-api/internal/application/checkout"
	"github.com/santoko/kasir-api/internal/application/dto"
	"github.com/santoko/kasir-api/internal/domain"
	"github.com/santoko/kasir-api/internal/domain/entity"
	"github.com/santoko/kasir-api/internal/domain/repository"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// ── in-memory store with transactional rollback ──────────────────────────────

type memStore struct {
	carts     map[int64]*entity.Cart
	lines     []*entity.CartLine
	sales     []*entity.Sale
	saleLines []*entity.SaleLine
	stocks    map[string]*entity.StockLevel
	movements []*entity.StockMovement
	payments  []*entity.Payment
	ledger    []*entity.LedgerEntry
	logs      []*entity.CustomerLog

	nextSaleID int64
	paymentErr error

	// cartConsumedAtLock simulates a rival finalize committing between the
	// unlocked header read and the locked re-read inside the transaction.
	cartConsumedAtLock bool
}

func newMemStore() *memStore {
	return &memStore{
		carts:  map[int64]*entity.Cart{},
		stocks: map[string]*entity.StockLevel{},
	}
}

func stockKey(productID, warehouseID int64) string {
	return fmt.Sprintf("%d/%d", productID, warehouseID)
}

func (s *memStore) setStock(productID, warehouseID int64, qty decimal.Decimal) {
	s.stocks[stockKey(productID, warehouseID)] = &entity.StockLevel{
		ProductID: productID, WarehouseID: warehouseID, Quantity: qty,
	}
}

type memSnapshot struct {
	carts     map[int64]*entity.Cart
	lines     []*entity.CartLine
	sales     []*entity.Sale
	saleLines []*entity.SaleLine
	stocks    map[string]*entity.StockLevel
	movements []*entity.StockMovement
	payments  []*entity.Payment
	ledger    []*entity.LedgerEntry
	logs      []*entity.CustomerLog
}

func (s *memStore) snapshot() memSnapshot {
	carts := make(map[int64]*entity.Cart, len(s.carts))
	for k, v := range s.carts {
		carts[k] = v
	}
	stocks := make(map[string]*entity.StockLevel, len(s.stocks))
	for k, v := range s.stocks {
		stocks[k] = v
	}
	return memSnapshot{
		carts: carts, lines: s.lines, sales: s.sales, saleLines: s.saleLines,
		stocks: stocks, movements: s.movements, payments: s.payments,
		ledger: s.ledger, logs: s.logs,
	}
}

func (s *memStore) restore(snap memSnapshot) {
	s.carts, s.lines, s.sales, s.saleLines = snap.carts, snap.lines, snap.sales, snap.saleLines
	s.stocks, s.movements, s.payments = snap.stocks, snap.movements, snap.payments
	s.ledger, s.logs = snap.ledger, snap.logs
}

// ── repository fakes over the store ──────────────────────────────────────────

type memCartRepo struct{ s *memStore }

func (r memCartRepo) CreateCart(c *entity.Cart) error { r.s.carts[c.ID] = c; return nil }
func (r memCartRepo) GetCart(id int64) (*entity.Cart, error) {
	return r.s.carts[id], nil
}

// GetCartForUpdate mirrors the locked re-read: when a rival finalize won the
// lock and committed, the row is gone by the time this returns.
func (r memCartRepo) GetCartForUpdate(id int64) (*entity.Cart, error) {
	if r.s.cartConsumedAtLock {
		delete(r.s.carts, id)
	}
	return r.s.carts[id], nil
}
func (r memCartRepo) GetLine(cartID int64, barcode string) (*entity.CartLine, error) {
	return nil, nil
}
func (r memCartRepo) GetLineForUpdate(cartID int64, barcode string) (*entity.CartLine, error) {
	return nil, nil
}
func (r memCartRepo) InsertLine(line *entity.CartLine) error {
	r.s.lines = append(r.s.lines, line)
	return nil
}
func (r memCartRepo) UpdateLine(line *entity.CartLine) error { return nil }
func (r memCartRepo) DeleteLine(cartID int64, barcode string) error {
	return nil
}
func (r memCartRepo) ListLines(cartID int64) ([]*entity.CartLine, error) {
	var out []*entity.CartLine
	for _, ln := range r.s.lines {
		if ln.CartID == cartID {
			out = append(out, ln)
		}
	}
	return out, nil
}
func (r memCartRepo) DeleteLines(cartID int64) error {
	var kept []*entity.CartLine
	for _, ln := range r.s.lines {
		if ln.CartID != cartID {
			kept = append(kept, ln)
		}
	}
	r.s.lines = kept
	return nil
}
func (r memCartRepo) DeleteCart(id int64) error { delete(r.s.carts, id); return nil }

type memSaleRepo struct{ s *memStore }

func (r memSaleRepo) Create(sale *entity.Sale) error {
	r.s.nextSaleID++
	sale.ID = r.s.nextSaleID
	r.s.sales = append(r.s.sales, sale)
	return nil
}
func (r memSaleRepo) CreateLine(line *entity.SaleLine) error {
	r.s.saleLines = append(r.s.saleLines, line)
	return nil
}
func (r memSaleRepo) GetByID(id int64) (*entity.Sale, error) { return nil, nil }
func (r memSaleRepo) GetLinesByReference(referenceNo string) ([]*entity.SaleLine, error) {
	return nil, nil
}

type memStockRepo struct{ s *memStore }

func (r memStockRepo) Get(productID, warehouseID int64) (*entity.StockLevel, error) {
	return r.GetForUpdate(productID, warehouseID)
}
func (r memStockRepo) GetForUpdate(productID, warehouseID int64) (*entity.StockLevel, error) {
	stock, ok := r.s.stocks[stockKey(productID, warehouseID)]
	if !ok {
		return &entity.StockLevel{ProductID: productID, WarehouseID: warehouseID, Quantity: decimal.Zero}, nil
	}
	cp := *stock
	return &cp, nil
}
func (r memStockRepo) Upsert(stock *entity.StockLevel) error {
	r.s.stocks[stockKey(stock.ProductID, stock.WarehouseID)] = stock
	return nil
}

type memMovementRepo struct{ s *memStore }

func (r memMovementRepo) Create(m *entity.StockMovement) error {
	r.s.movements = append(r.s.movements, m)
	return nil
}

type memPaymentRepo struct{ s *memStore }

func (r memPaymentRepo) Create(p *entity.Payment) error {
	if r.s.paymentErr != nil {
		return r.s.paymentErr
	}
	r.s.payments = append(r.s.payments, p)
	return nil
}

type memLedgerRepo struct{ s *memStore }

func (r memLedgerRepo) Create(e *entity.LedgerEntry) error {
	r.s.ledger = append(r.s.ledger, e)
	return nil
}

type memCustomerLogRepo struct{ s *memStore }

func (r memCustomerLogRepo) Create(l *entity.CustomerLog) error {
	r.s.logs = append(r.s.logs, l)
	return nil
}

// memTxRunner mirrors a real transaction: on error, every write made inside
// fn is rolled back.
type memTxRunner struct{ s *memStore }

func (r memTxRunner) RunCheckout(ctx context.Context, fn func(
	cartRepo repository.CartRepository,
	saleRepo repository.SaleRepository,
	stockRepo repository.StockRepository,
	movementRepo repository.StockMovementRepository,
	paymentRepo repository.PaymentRepository,
	ledgerRepo repository.LedgerRepository,
	customerLogRepo repository.CustomerLogRepository,
) error) error {
	snap := r.s.snapshot()
	err := fn(
		memCartRepo{r.s}, memSaleRepo{r.s}, memStockRepo{r.s}, memMovementRepo{r.s},
		memPaymentRepo{r.s}, memLedgerRepo{r.s}, memCustomerLogRepo{r.s},
	)
	if err != nil {
		r.s.restore(snap)
	}
	return err
}

// ── fixture ──────────────────────────────────────────────────────────────────

var checkoutActor = dto.Actor{UserID: 7, StoreID: 1, WarehouseID: 1}

// seedCart installs an open cart with one tax-free line: qty 2 at 1500,
// line total 3000, against a stock level of 10.
func seedCart(s *memStore, kind entity.TransactionKind) *entity.Cart {
	c := &entity.Cart{
		ID: 1, WarehouseID: 1, BillerID: 1, CustomerID: 1, OperatorID: 7,
		Kind: kind, Status: entity.CartStatusOpen, CreatedAt: time.Now(),
	}
	s.carts[c.ID] = c
	s.lines = append(s.lines, &entity.CartLine{
		No: 1, CartID: c.ID, Barcode: "899100", ProductID: 1,
		Name: "Kopi Bubuk", Quantity: d("2"), Unit: "pcs", UnitID: 1,
		UnitPrice: d("1500"), Total: d("3000"), Profit: d("1000"),
		TaxRate: decimal.Zero, Tax: decimal.Zero, Discount: decimal.Zero,
	})
	s.setStock(1, 1, d("10"))
	return c
}

func newCheckout(s *memStore) *checkout.UseCase {
	return checkout.NewUseCase(memTxRunner{s}, memCartRepo{s})
}

// ── tests ────────────────────────────────────────────────────────────────────

func TestFinalize_CashWithShipping(t *testing.T) {
	s := newMemStore()
	seedCart(s, entity.KindSale)
	uc := newCheckout(s)

	resp, err := uc.Finalize(context.Background(), checkoutActor, dto.CheckoutRequest{
		CartID:       1,
		PayingMethod: int(entity.PayCash),
		PayingAmount: d("50000"),
		ShippingCost: d("10000"),
	})
	require.NoError(t, err)

	assert.True(t, resp.GrandTotal.Equal(d("13000")))
	assert.True(t, resp.Change.Equal(d("37000")))
	assert.True(t, resp.Piutang.Equal(d("0")))
	assert.True(t, strings.HasPrefix(resp.ReferenceNo, "P"), "sale references start with P")

	require.Len(t, s.sales, 1)
	sale := s.sales[0]
	assert.True(t, sale.TotalPrice.Equal(d("3000")))
	assert.True(t, sale.TotalPriceRounded.Equal(d("3000")))
	assert.True(t, sale.GrandTotal.Equal(d("13000")))
	assert.True(t, sale.PaidAmount.Equal(d("13000")), "paid caps at the grand total")
	assert.Equal(t, entity.PaymentPaid, sale.PaymentStatus)
	assert.Equal(t, 1, sale.Item)

	require.Len(t, s.saleLines, 1)
	assert.Equal(t, resp.ReferenceNo, s.saleLines[0].ReferenceNo)
	assert.True(t, s.saleLines[0].Total.Equal(d("3000")))

	require.Len(t, s.payments, 1)
	pay := s.payments[0]
	assert.Equal(t, "Cash", pay.PayingMethod)
	assert.Equal(t, int64(1), pay.AccountID, "payments post to the default account")
	assert.True(t, pay.Paying.Equal(d("50000")))
	assert.True(t, pay.Amount.Equal(d("13000")))
	assert.True(t, pay.Change.Equal(d("37000")))
	assert.NotEmpty(t, pay.PaymentReference)

	// Sale entry plus shipping only: zero components get no ledger row.
	require.Len(t, s.ledger, 2)
	assert.Equal(t, entity.LedgerSale, s.ledger[0].Kind)
	assert.True(t, s.ledger[0].Amount.Equal(d("3000")))
	assert.True(t, s.ledger[0].Paid.Equal(d("13000")))
	assert.Equal(t, entity.LedgerShippingCost, s.ledger[1].Kind)
	assert.True(t, s.ledger[1].Amount.Equal(d("10000")))
	assert.True(t, s.ledger[1].Paid.Equal(d("0")))

	stock := s.stocks[stockKey(1, 1)]
	assert.True(t, stock.Quantity.Equal(d("8")))
	require.Len(t, s.movements, 1)
	mov := s.movements[0]
	assert.True(t, mov.StartQty.Equal(d("10")))
	assert.True(t, mov.EndQty.Equal(d("8")))
	assert.True(t, mov.RunQty.Equal(d("-2")))
	assert.Equal(t, entity.MovementSale, mov.Reason)

	require.Len(t, s.logs, 1)
	assert.True(t, s.logs[0].Amount.Equal(d("13000")))
	assert.Equal(t, sale.ID, s.logs[0].ReffID)

	assert.Empty(t, s.carts, "cart is consumed")
	assert.Empty(t, s.lines)
}

func TestFinalize_RoundingConvention(t *testing.T) {
	// Line total truncates down to the nearest 100 (3120 -> 3100); the
	// grand total rounds half to even, so .5 ties land on the even hundred.
	cases := []struct {
		name     string
		shipping string
		grand    string
	}{
		{"below half rounds down", "130", "3200"},
		{"tie rounds to even below", "150", "3200"},
		{"tie rounds to even above", "250", "3400"},
		{"above half rounds up", "160", "3300"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := newMemStore()
			seedCart(s, entity.KindSale)
			s.lines[0].Total = d("3120")
			uc := newCheckout(s)

			resp, err := uc.Finalize(context.Background(), checkoutActor, dto.CheckoutRequest{
				CartID:       1,
				PayingMethod: int(entity.PayCash),
				PayingAmount: d("5000"),
				ShippingCost: d(tc.shipping),
			})
			require.NoError(t, err)

			assert.True(t, resp.GrandTotal.Equal(d(tc.grand)),
				"shipping %s: got grand total %s", tc.shipping, resp.GrandTotal)
			assert.True(t, s.sales[0].TotalPriceRounded.Equal(d("3100")))
		})
	}
}

func TestFinalize_PointRedemption(t *testing.T) {
	s := newMemStore()
	seedCart(s, entity.KindSale)
	uc := newCheckout(s)

	resp, err := uc.Finalize(context.Background(), checkoutActor, dto.CheckoutRequest{
		CartID:       1,
		PayingMethod: int(entity.PayTransfer),
		PayingAmount: d("2000"),
		Point:        d("1000"),
	})
	require.NoError(t, err)

	assert.True(t, resp.GrandTotal.Equal(d("2000")))
	assert.True(t, s.sales[0].PointDiscount.Equal(d("-1000")), "stored as a negative adjustment")

	require.Len(t, s.ledger, 2)
	assert.Equal(t, entity.PayTransfer, s.ledger[0].PaymentMethodID)
	assert.Equal(t, entity.LedgerPointRedemption, s.ledger[1].Kind)
	assert.True(t, s.ledger[1].Amount.Equal(d("-1000")))
	assert.Equal(t, entity.PayCash, s.ledger[1].PaymentMethodID,
		"redeemed points settle against the cash account")
}

func TestFinalize_PointExceedsTotal(t *testing.T) {
	s := newMemStore()
	seedCart(s, entity.KindSale)
	uc := newCheckout(s)

	_, err := uc.Finalize(context.Background(), checkoutActor, dto.CheckoutRequest{
		CartID:       1,
		PayingMethod: int(entity.PayCash),
		PayingAmount: d("50000"),
		Point:        d("6000"),
	})
	assert.ErrorIs(t, err, domain.ErrPointExceedsTotal)
	assert.Contains(t, s.carts, int64(1), "cart survives a rejected finalize")
}

func TestFinalize_EmptyCart(t *testing.T) {
	s := newMemStore()
	c := seedCart(s, entity.KindSale)
	s.lines = nil
	uc := newCheckout(s)

	_, err := uc.Finalize(context.Background(), checkoutActor, dto.CheckoutRequest{
		CartID:       c.ID,
		PayingMethod: int(entity.PayCash),
		PayingAmount: d("1000"),
	})
	assert.ErrorIs(t, err, domain.ErrEmptyCart)
}

func TestFinalize_CartMissingOrClosed(t *testing.T) {
	s := newMemStore()
	uc := newCheckout(s)

	_, err := uc.Finalize(context.Background(), checkoutActor, dto.CheckoutRequest{
		CartID: 42, PayingMethod: int(entity.PayCash), PayingAmount: d("1000"),
	})
	assert.ErrorIs(t, err, domain.ErrCartUnavailable)

	c := seedCart(s, entity.KindSale)
	c.Status = "1"
	_, err = uc.Finalize(context.Background(), checkoutActor, dto.CheckoutRequest{
		CartID: c.ID, PayingMethod: int(entity.PayCash), PayingAmount: d("1000"),
	})
	assert.ErrorIs(t, err, domain.ErrCartUnavailable)
}

func TestFinalize_LosesRaceToRivalFinalize(t *testing.T) {
	// A POS double-tap: both calls see the cart open, but the first to take
	// the row lock consumes it. The second must fail without writing a
	// second sale.
	s := newMemStore()
	seedCart(s, entity.KindSale)
	s.cartConsumedAtLock = true
	uc := newCheckout(s)

	_, err := uc.Finalize(context.Background(), checkoutActor, dto.CheckoutRequest{
		CartID:       1,
		PayingMethod: int(entity.PayCash),
		PayingAmount: d("50000"),
	})
	assert.ErrorIs(t, err, domain.ErrCartUnavailable)

	assert.Empty(t, s.sales, "the losing finalize must write nothing")
	assert.Empty(t, s.payments)
	assert.True(t, s.stocks[stockKey(1, 1)].Quantity.Equal(d("10")))
}

func TestFinalize_InvalidInput(t *testing.T) {
	s := newMemStore()
	seedCart(s, entity.KindSale)
	uc := newCheckout(s)

	_, err := uc.Finalize(context.Background(), checkoutActor, dto.CheckoutRequest{
		CartID: 1, PayingMethod: 99, PayingAmount: d("1000"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Finalize(context.Background(), checkoutActor, dto.CheckoutRequest{
		CartID: 1, PayingMethod: int(entity.PayCash), PayingAmount: d("-1"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestFinalize_InsufficientStockRollsBack(t *testing.T) {
	s := newMemStore()
	seedCart(s, entity.KindSale)
	s.setStock(1, 1, d("1"))
	uc := newCheckout(s)

	_, err := uc.Finalize(context.Background(), checkoutActor, dto.CheckoutRequest{
		CartID:       1,
		PayingMethod: int(entity.PayCash),
		PayingAmount: d("50000"),
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Contains(t, s.carts, int64(1))
	assert.Len(t, s.lines, 1)
	assert.Empty(t, s.sales, "sale header rolled back with the rest")
	assert.True(t, s.stocks[stockKey(1, 1)].Quantity.Equal(d("1")))
}

func TestFinalize_UnderTenderRejectedForImmediateMethods(t *testing.T) {
	s := newMemStore()
	seedCart(s, entity.KindSale)
	uc := newCheckout(s)

	_, err := uc.Finalize(context.Background(), checkoutActor, dto.CheckoutRequest{
		CartID:       1,
		PayingMethod: int(entity.PayCash),
		PayingAmount: d("1000"),
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientTender)
}

func TestFinalize_ShippedOrderMayUnderTender(t *testing.T) {
	s := newMemStore()
	seedCart(s, entity.KindSale)
	uc := newCheckout(s)

	resp, err := uc.Finalize(context.Background(), checkoutActor, dto.CheckoutRequest{
		CartID:       1,
		PayingMethod: int(entity.PayTransfer),
		PayingAmount: d("1000"),
		IsShipped:    1,
	})
	require.NoError(t, err)
	assert.True(t, resp.Change.Equal(d("0")))
	assert.True(t, resp.Piutang.Equal(d("2000")), "shortfall becomes a receivable")
}

func TestFinalize_CODSettlement(t *testing.T) {
	cases := []struct {
		name     string
		tendered string
		status   entity.PaymentStatus
	}{
		{"unpaid", "0", entity.PaymentUnpaid},
		{"partial", "1000", entity.PaymentPartial},
		{"paid", "3000", entity.PaymentPaid},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := newMemStore()
			seedCart(s, entity.KindSale)
			uc := newCheckout(s)

			_, err := uc.Finalize(context.Background(), checkoutActor, dto.CheckoutRequest{
				CartID:       1,
				PayingMethod: int(entity.PayCOD),
				PayingAmount: d(tc.tendered),
			})
			require.NoError(t, err)
			require.Len(t, s.sales, 1)
			assert.Equal(t, tc.status, s.sales[0].PaymentStatus)
		})
	}
}

func TestFinalize_ReturnCartRestocks(t *testing.T) {
	s := newMemStore()
	seedCart(s, entity.KindReturn)
	s.lines[0].Quantity = d("-2")
	s.lines[0].Total = d("-3000")
	s.lines[0].Profit = d("-1000")
	uc := newCheckout(s)

	resp, err := uc.Finalize(context.Background(), checkoutActor, dto.CheckoutRequest{
		CartID:       1,
		PayingMethod: int(entity.PayCash),
		PayingAmount: d("0"),
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(resp.ReferenceNo, "R"), "return references start with R")

	assert.True(t, s.stocks[stockKey(1, 1)].Quantity.Equal(d("12")), "returned quantity restocks")
	require.Len(t, s.movements, 1)
	assert.True(t, s.movements[0].RunQty.Equal(d("2")))
}

func TestFinalize_MidSequenceFailureRollsBack(t *testing.T) {
	s := newMemStore()
	seedCart(s, entity.KindSale)
	s.paymentErr = errors.New("write refused")
	uc := newCheckout(s)

	_, err := uc.Finalize(context.Background(), checkoutActor, dto.CheckoutRequest{
		CartID:       1,
		PayingMethod: int(entity.PayCash),
		PayingAmount: d("50000"),
	})
	require.Error(t, err)

	assert.Contains(t, s.carts, int64(1))
	assert.Len(t, s.lines, 1)
	assert.Empty(t, s.sales)
	assert.Empty(t, s.saleLines)
	assert.Empty(t, s.movements)
	assert.Empty(t, s.ledger)
	assert.True(t, s.stocks[stockKey(1, 1)].Quantity.Equal(d("10")), "stock decrement rolled back")
}

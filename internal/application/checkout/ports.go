package checkout

import (
	"context"

	"github.com/santoko/kasir-api/internal/domain/repository"
)

// TxRunner runs the whole finalize write sequence inside one DB transaction,
// passing repositories bound to that tx. Any error rolls back everything:
// sale, lines, stock decrements, movements, payment, ledger and the cart
// deletion all commit together or not at all.
type TxRunner interface {
	RunCheckout(ctx context.Context, fn func(
		cartRepo repository.CartRepository,
		saleRepo repository.SaleRepository,
		stockRepo repository.StockRepository,
		movementRepo repository.StockMovementRepository,
		paymentRepo repository.PaymentRepository,
		ledgerRepo repository.LedgerRepository,
		customerLogRepo repository.CustomerLogRepository,
	) error) error
}

package cart

import (
	"context"

	"github.com/santoko/kasir-api/internal/domain/repository"
)

// TxRunner runs a function inside a DB transaction, passing repositories
// bound to that tx. Cart line merges need it so that the row lock taken by
// GetLineForUpdate and the subsequent write commit or roll back together.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		cartRepo repository.CartRepository,
		productRepo repository.ProductRepository,
	) error) error
}

package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/santoko/kasir-api/internal/domain/entity"
)

// ProductRepository is the read-only catalog port. The service never writes
// master data; it resolves products by scan input and fetches price quotes.
type ProductRepository interface {
	// GetByScan resolves a product by barcode or code within a store.
	// Returns nil when no product matches.
	GetByScan(storeID int64, barcode string) (*entity.Product, error)

	// GetByID returns a product by id, nil when absent. Used when rendering
	// sale line snapshots, which only store the product id.
	GetByID(id int64) (*entity.Product, error)

	// GetUnitName returns the display label of a sale unit, "" when absent.
	GetUnitName(unitID int64) (string, error)

	// GetPriceQuote returns the catalog row priced for (product, quantity,
	// tier, warehouse). The quantity is normalized to its absolute value
	// before the tier threshold lookup. Returns nil when the retail price
	// list has no qualifying threshold ("price not configured").
	GetPriceQuote(productID int64, qty decimal.Decimal, tier entity.CustomerTier, warehouseID int64) (*entity.PriceQuote, error)

	// GetActivePromotion returns the product when it has a promotion running
	// at now, nil otherwise. Advisory only.
	GetActivePromotion(productID int64, now time.Time) (*entity.Product, error)
}

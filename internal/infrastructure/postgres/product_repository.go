package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/santoko/kasir-api/internal/domain/entity"
	"github.com/santoko/kasir-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo read-only catalog adapter (usable with pool or tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository builds the catalog adapter. Pass pool or tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `
	p.id, p.store_id, p.barcode, p.code, p.name, p.sale_unit_id, p.cost,
	COALESCE(p.tax_id, 0), COALESCE(p.tax_method, 2), p.is_point,
	p.promotion, COALESCE(p.promotion_price, 0), COALESCE(p.max_item_promo, 0),
	p.starting_date, p.last_date`

// GetByScan resolves a product by barcode or code within a store.
func (r *ProductRepo) GetByScan(storeID int64, barcode string) (*entity.Product, error) {
	query := `
		SELECT` + productColumns + `
		FROM products p
		WHERE p.store_id = $1 AND (p.barcode = $2 OR p.code = $2)
		LIMIT 1`
	p, err := r.scanProduct(r.q.QueryRow(context.Background(), query, storeID, barcode))
	if err != nil {
		return nil, fmt.Errorf("get product by scan: %w", err)
	}
	return p, nil
}

// GetByID returns a product by id, nil when absent.
func (r *ProductRepo) GetByID(id int64) (*entity.Product, error) {
	query := `
		SELECT` + productColumns + `
		FROM products p
		WHERE p.id = $1`
	p, err := r.scanProduct(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// GetPriceQuote returns the catalog row priced for (product, quantity, tier,
// warehouse). Retail customers get the cheapest tiered price whose minimum
// quantity threshold covers abs(qty); other tiers buy at the cost basis with
// tax forced to zero. Returns nil when the retail price list has no
// qualifying threshold.
func (r *ProductRepo) GetPriceQuote(productID int64, qty decimal.Decimal, tier entity.CustomerTier, warehouseID int64) (*entity.PriceQuote, error) {
	if !tier.Retail() {
		query := `
			SELECT p.id, p.barcode, p.name, u.id, u.name, p.cost, p.cost,
			       COALESCE(p.tax_method, 2), p.is_point
			FROM products p
			JOIN units u ON u.id = p.sale_unit_id
			WHERE p.id = $1`
		var q entity.PriceQuote
		err := r.q.QueryRow(context.Background(), query, productID).Scan(
			&q.ProductID, &q.Barcode, &q.Name, &q.UnitID, &q.UnitName,
			&q.Price, &q.Cost, &q.TaxMethod, &q.IsPoint,
		)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, nil
			}
			return nil, fmt.Errorf("get cost quote: %w", err)
		}
		q.TaxRate = decimal.Zero
		return &q, nil
	}

	query := `
		SELECT p.id, p.barcode, p.name, u.id, u.name, pp.price, p.cost,
		       COALESCE(t.rate, 0), COALESCE(p.tax_method, 2), p.is_point
		FROM products p
		JOIN units u ON u.id = p.sale_unit_id
		LEFT JOIN taxes t ON t.id = p.tax_id
		JOIN product_prices pp ON pp.product_id = p.id
		WHERE p.id = $1 AND pp.warehouse_id = $2 AND pp.minimal <= $3
		ORDER BY pp.price ASC
		LIMIT 1`
	var q entity.PriceQuote
	err := r.q.QueryRow(context.Background(), query, productID, warehouseID, qty.Abs()).Scan(
		&q.ProductID, &q.Barcode, &q.Name, &q.UnitID, &q.UnitName,
		&q.Price, &q.Cost, &q.TaxRate, &q.TaxMethod, &q.IsPoint,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get price quote: %w", err)
	}
	return &q, nil
}

// GetActivePromotion returns the product when its promotion window covers
// now, nil otherwise.
func (r *ProductRepo) GetActivePromotion(productID int64, now time.Time) (*entity.Product, error) {
	query := `
		SELECT` + productColumns + `
		FROM products p
		WHERE p.id = $1 AND p.promotion = 1
		  AND p.starting_date <= $2 AND p.last_date >= $2`
	p, err := r.scanProduct(r.q.QueryRow(context.Background(), query, productID, now))
	if err != nil {
		return nil, fmt.Errorf("get active promotion: %w", err)
	}
	return p, nil
}

// GetUnitName returns the display label of a sale unit, "" when absent.
func (r *ProductRepo) GetUnitName(unitID int64) (string, error) {
	var name string
	err := r.q.QueryRow(context.Background(), `SELECT name FROM units WHERE id = $1`, unitID).Scan(&name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("get unit name: %w", err)
	}
	return name, nil
}

func (r *ProductRepo) scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID, &p.StoreID, &p.Barcode, &p.Code, &p.Name, &p.SaleUnitID, &p.Cost,
		&p.TaxID, &p.TaxMethod, &p.IsPoint,
		&p.Promotion, &p.PromotionPrice, &p.MaxItemPromo,
		&p.StartingDate, &p.LastDate,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

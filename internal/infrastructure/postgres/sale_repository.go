package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/santoko/kasir-api/internal/domain/entity"
	"github.com/santoko/kasir-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo finalized sale adapter (usable with pool or tx). Sales are
// write-once; there is no update statement here on purpose.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository builds the sale adapter. Pass pool or tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create persists the sale header and assigns its id.
func (r *SaleRepo) Create(s *entity.Sale) error {
	query := `
		INSERT INTO sales (reference_no, store_id, warehouse_id, biller_id, customer_id, user_id,
		                   item, total_qty, total_discount, total_tax, total_price, total_price_rounded,
		                   grand_total, order_tax_rate, order_tax, order_discount, shipping_cost,
		                   service_fee, point_discount, coupon_discount, sale_status, payment_status,
		                   paid_amount, sale_note, staff_note, customer_alias, is_shipped,
		                   created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18,
		        $19, $20, $21, $22, $23, $24, $25, $26, $27, $28, $29)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		s.ReferenceNo, s.StoreID, s.WarehouseID, s.BillerID, s.CustomerID, s.UserID,
		s.Item, s.TotalQty, s.TotalDiscount, s.TotalTax, s.TotalPrice, s.TotalPriceRounded,
		s.GrandTotal, s.OrderTaxRate, s.OrderTax, s.OrderDiscount, s.ShippingCost,
		s.ServiceFee, s.PointDiscount, s.CouponDiscount, s.SaleStatus, string(s.PaymentStatus),
		s.PaidAmount, nullIfEmpty(s.SaleNote), nullIfEmpty(s.StaffNote), nullIfEmpty(s.CustomerAlias),
		s.IsShipped, s.CreatedAt, s.UpdatedAt,
	).Scan(&s.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert sale: duplicate reference %s", s.ReferenceNo)
		}
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// CreateLine persists one sale line snapshot and assigns its id.
func (r *SaleRepo) CreateLine(ln *entity.SaleLine) error {
	query := `
		INSERT INTO sale_items (reference_no, product_id, qty, sale_unit_id, net_unit_price,
		                        discount, tax_rate, tax, total, profit, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		ln.ReferenceNo, ln.ProductID, ln.Qty, ln.SaleUnitID, ln.NetUnitPrice,
		ln.Discount, ln.TaxRate, ln.Tax, ln.Total, ln.Profit, ln.CreatedAt,
	).Scan(&ln.ID)
	if err != nil {
		return fmt.Errorf("insert sale line: %w", err)
	}
	return nil
}

// GetByID returns a sale header by id, nil when absent.
func (r *SaleRepo) GetByID(id int64) (*entity.Sale, error) {
	query := `
		SELECT id, reference_no, store_id, warehouse_id, biller_id, customer_id, user_id,
		       item, total_qty, total_discount, total_tax, total_price, total_price_rounded,
		       grand_total, order_tax_rate, order_tax, order_discount, shipping_cost,
		       service_fee, point_discount, coupon_discount, sale_status, payment_status,
		       paid_amount, COALESCE(sale_note, ''), COALESCE(staff_note, ''),
		       COALESCE(customer_alias, ''), is_shipped, created_at, updated_at
		FROM sales WHERE id = $1`
	var s entity.Sale
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&s.ID, &s.ReferenceNo, &s.StoreID, &s.WarehouseID, &s.BillerID, &s.CustomerID, &s.UserID,
		&s.Item, &s.TotalQty, &s.TotalDiscount, &s.TotalTax, &s.TotalPrice, &s.TotalPriceRounded,
		&s.GrandTotal, &s.OrderTaxRate, &s.OrderTax, &s.OrderDiscount, &s.ShippingCost,
		&s.ServiceFee, &s.PointDiscount, &s.CouponDiscount, &s.SaleStatus, &s.PaymentStatus,
		&s.PaidAmount, &s.SaleNote, &s.StaffNote, &s.CustomerAlias, &s.IsShipped,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return &s, nil
}

// GetLinesByReference returns the line snapshots of a sale in insertion order.
func (r *SaleRepo) GetLinesByReference(referenceNo string) ([]*entity.SaleLine, error) {
	query := `
		SELECT id, reference_no, product_id, qty, sale_unit_id, net_unit_price,
		       discount, tax_rate, tax, total, profit, created_at
		FROM sale_items WHERE reference_no = $1 ORDER BY id ASC`
	rows, err := r.q.Query(context.Background(), query, referenceNo)
	if err != nil {
		return nil, fmt.Errorf("list sale lines: %w", err)
	}
	defer rows.Close()
	var list []*entity.SaleLine
	for rows.Next() {
		var ln entity.SaleLine
		if err := rows.Scan(
			&ln.ID, &ln.ReferenceNo, &ln.ProductID, &ln.Qty, &ln.SaleUnitID, &ln.NetUnitPrice,
			&ln.Discount, &ln.TaxRate, &ln.Tax, &ln.Total, &ln.Profit, &ln.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan sale line: %w", err)
		}
		list = append(list, &ln)
	}
	return list, rows.Err()
}

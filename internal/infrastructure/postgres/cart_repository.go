package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/santoko/kasir-api/internal/domain/entity"
	"github.com/santoko/kasir-api/internal/domain/repository"
)

var _ repository.CartRepository = (*CartRepo)(nil)

// CartRepo cart header and line adapter (usable with pool or tx).
type CartRepo struct {
	q Querier
}

// NewCartRepository builds the cart adapter. Pass pool or tx (Querier).
func NewCartRepository(q Querier) *CartRepo {
	return &CartRepo{q: q}
}

// CreateCart persists a new cart header and assigns its id.
func (r *CartRepo) CreateCart(cart *entity.Cart) error {
	query := `
		INSERT INTO carts (warehouse_id, biller_id, customer_id, operator_id, kind, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		cart.WarehouseID, cart.BillerID, cart.CustomerID, cart.OperatorID,
		int(cart.Kind), cart.Status, cart.CreatedAt,
	).Scan(&cart.ID)
	if err != nil {
		return fmt.Errorf("insert cart: %w", err)
	}
	return nil
}

// GetCart returns a cart header by id, nil when absent.
func (r *CartRepo) GetCart(id int64) (*entity.Cart, error) {
	query := `
		SELECT id, warehouse_id, biller_id, customer_id, operator_id, kind, status, created_at
		FROM carts WHERE id = $1`
	var c entity.Cart
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&c.ID, &c.WarehouseID, &c.BillerID, &c.CustomerID, &c.OperatorID,
		&c.Kind, &c.Status, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cart: %w", err)
	}
	return &c, nil
}

// GetCartForUpdate returns the cart header locked for update, nil when the
// row is gone. A concurrent finalize holds this lock until it commits its
// cart deletion, so the second reader sees nil.
func (r *CartRepo) GetCartForUpdate(id int64) (*entity.Cart, error) {
	query := `
		SELECT id, warehouse_id, biller_id, customer_id, operator_id, kind, status, created_at
		FROM carts WHERE id = $1
		FOR UPDATE`
	var c entity.Cart
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&c.ID, &c.WarehouseID, &c.BillerID, &c.CustomerID, &c.OperatorID,
		&c.Kind, &c.Status, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cart for update: %w", err)
	}
	return &c, nil
}

const cartLineColumns = `
	no, cart_id, barcode, product_id, name, quantity, unit_name, unit_id,
	unit_price, discount, total, profit, is_point, tax_rate, tax`

// GetLine returns one cart line by (cart, barcode), nil when absent.
func (r *CartRepo) GetLine(cartID int64, barcode string) (*entity.CartLine, error) {
	query := `
		SELECT` + cartLineColumns + `
		FROM cart_items WHERE cart_id = $1 AND barcode = $2`
	ln, err := scanCartLine(r.q.QueryRow(context.Background(), query, cartID, barcode))
	if err != nil {
		return nil, fmt.Errorf("get cart line: %w", err)
	}
	return ln, nil
}

// GetLineForUpdate locks the line row (SELECT FOR UPDATE) so concurrent
// merges on the same barcode serialize. Only call inside a transaction.
func (r *CartRepo) GetLineForUpdate(cartID int64, barcode string) (*entity.CartLine, error) {
	query := `
		SELECT` + cartLineColumns + `
		FROM cart_items WHERE cart_id = $1 AND barcode = $2
		FOR UPDATE`
	ln, err := scanCartLine(r.q.QueryRow(context.Background(), query, cartID, barcode))
	if err != nil {
		return nil, fmt.Errorf("get cart line for update: %w", err)
	}
	return ln, nil
}

// InsertLine persists a new cart line and assigns its sequence number.
func (r *CartRepo) InsertLine(line *entity.CartLine) error {
	query := `
		INSERT INTO cart_items (cart_id, barcode, product_id, name, quantity, unit_name, unit_id,
		                        unit_price, discount, total, profit, is_point, tax_rate, tax)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING no`
	err := r.q.QueryRow(context.Background(), query,
		line.CartID, line.Barcode, line.ProductID, line.Name, line.Quantity,
		line.Unit, line.UnitID, line.UnitPrice, line.Discount, line.Total,
		line.Profit, line.IsPoint, line.TaxRate, line.Tax,
	).Scan(&line.No)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert cart line: duplicate barcode in cart %d", line.CartID)
		}
		return fmt.Errorf("insert cart line: %w", err)
	}
	return nil
}

// UpdateLine overwrites the priced fields of an existing line.
func (r *CartRepo) UpdateLine(line *entity.CartLine) error {
	query := `
		UPDATE cart_items
		SET name = $3, quantity = $4, unit_name = $5, unit_id = $6, unit_price = $7,
		    discount = $8, total = $9, profit = $10, is_point = $11, tax_rate = $12, tax = $13
		WHERE cart_id = $1 AND barcode = $2`
	_, err := r.q.Exec(context.Background(), query,
		line.CartID, line.Barcode, line.Name, line.Quantity, line.Unit, line.UnitID,
		line.UnitPrice, line.Discount, line.Total, line.Profit, line.IsPoint,
		line.TaxRate, line.Tax,
	)
	if err != nil {
		return fmt.Errorf("update cart line: %w", err)
	}
	return nil
}

// DeleteLine removes one line from a cart.
func (r *CartRepo) DeleteLine(cartID int64, barcode string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM cart_items WHERE cart_id = $1 AND barcode = $2`, cartID, barcode)
	if err != nil {
		return fmt.Errorf("delete cart line: %w", err)
	}
	return nil
}

// ListLines returns all lines of a cart in insertion order.
func (r *CartRepo) ListLines(cartID int64) ([]*entity.CartLine, error) {
	query := `
		SELECT` + cartLineColumns + `
		FROM cart_items WHERE cart_id = $1 ORDER BY no ASC`
	rows, err := r.q.Query(context.Background(), query, cartID)
	if err != nil {
		return nil, fmt.Errorf("list cart lines: %w", err)
	}
	defer rows.Close()
	var list []*entity.CartLine
	for rows.Next() {
		var ln entity.CartLine
		if err := rows.Scan(
			&ln.No, &ln.CartID, &ln.Barcode, &ln.ProductID, &ln.Name, &ln.Quantity,
			&ln.Unit, &ln.UnitID, &ln.UnitPrice, &ln.Discount, &ln.Total, &ln.Profit,
			&ln.IsPoint, &ln.TaxRate, &ln.Tax,
		); err != nil {
			return nil, fmt.Errorf("scan cart line: %w", err)
		}
		list = append(list, &ln)
	}
	return list, rows.Err()
}

// DeleteLines removes every line of a cart.
func (r *CartRepo) DeleteLines(cartID int64) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM cart_items WHERE cart_id = $1`, cartID)
	if err != nil {
		return fmt.Errorf("delete cart lines: %w", err)
	}
	return nil
}

// DeleteCart removes the cart header.
func (r *CartRepo) DeleteCart(id int64) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM carts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete cart: %w", err)
	}
	return nil
}

func scanCartLine(row pgx.Row) (*entity.CartLine, error) {
	var ln entity.CartLine
	err := row.Scan(
		&ln.No, &ln.CartID, &ln.Barcode, &ln.ProductID, &ln.Name, &ln.Quantity,
		&ln.Unit, &ln.UnitID, &ln.UnitPrice, &ln.Discount, &ln.Total, &ln.Profit,
		&ln.IsPoint, &ln.TaxRate, &ln.Tax,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &ln, nil
}

package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"

	"github.com/santoko/kasir-api/internal/domain/entity"
	"github.com/santoko/kasir-api/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo customer master-data adapter (usable with pool or tx).
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository builds the customer adapter. Pass pool or tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

const customerColumns = `
	id, store_id, code, name, COALESCE(phone_number, ''), COALESCE(email, ''),
	customer_group_id, deposit, expense, is_active, created_at`

// GetByID returns a customer by id, nil when absent.
func (r *CustomerRepo) GetByID(id int64) (*entity.Customer, error) {
	query := `
		SELECT` + customerColumns + `
		FROM customers WHERE id = $1`
	var c entity.Customer
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&c.ID, &c.StoreID, &c.Code, &c.Name, &c.PhoneNumber, &c.Email,
		&c.Tier, &c.Deposit, &c.Expense, &c.IsActive, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return &c, nil
}

// Search lists customers matching the filters, scoped to a store, with the
// total row count for pagination. Text filters match case-insensitive
// substrings.
func (r *CustomerRepo) Search(storeID int64, params repository.CustomerSearchParams) ([]*entity.Customer, int, error) {
	where := `WHERE store_id = $1`
	args := []any{storeID}
	n := 1
	add := func(clause, value string) {
		n++
		where += ` AND ` + clause + ` ILIKE $` + strconv.Itoa(n)
		args = append(args, "%"+value+"%")
	}
	if params.Name != "" {
		add("name", params.Name)
	}
	if params.Code != "" {
		add("code", params.Code)
	}
	if params.PhoneNumber != "" {
		add("phone_number", params.PhoneNumber)
	}
	if params.IsActive != nil {
		n++
		where += ` AND is_active = $` + strconv.Itoa(n)
		args = append(args, *params.IsActive)
	}

	var total int
	if err := r.q.QueryRow(context.Background(), `SELECT count(*) FROM customers `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count customers: %w", err)
	}

	query := `SELECT` + customerColumns + ` FROM customers ` + where +
		` ORDER BY name LIMIT $` + strconv.Itoa(n+1) + ` OFFSET $` + strconv.Itoa(n+2)
	args = append(args, params.Limit, params.Offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("search customers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Customer
	for rows.Next() {
		var c entity.Customer
		if err := rows.Scan(
			&c.ID, &c.StoreID, &c.Code, &c.Name, &c.PhoneNumber, &c.Email,
			&c.Tier, &c.Deposit, &c.Expense, &c.IsActive, &c.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("scan customer: %w", err)
		}
		list = append(list, &c)
	}
	return list, total, rows.Err()
}

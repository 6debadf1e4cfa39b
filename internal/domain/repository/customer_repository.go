package repository

import "github.com/santoko/kasir-api/internal/domain/entity"

// CustomerSearchParams filters for the customer search listing. Empty fields
// are ignored; text fields match case-insensitively as substrings.
type CustomerSearchParams struct {
	Name        string
	Code        string
	PhoneNumber string
	IsActive    *int
	Limit       int
	Offset      int
}

// CustomerRepository is the customer master-data port (read-only here).
type CustomerRepository interface {
	GetByID(id int64) (*entity.Customer, error)
	Search(storeID int64, params CustomerSearchParams) ([]*entity.Customer, int, error)
}

package dto

import "github.com/shopspring/decimal"

// CustomerSearchRequest filters the customer listing.
type CustomerSearchRequest struct {
	Name        string `query:"name"`
	Code        string `query:"code"`
	PhoneNumber string `query:"phone_number"`
	IsActive    *int   `query:"is_active"`
	PageRequest
}

// CustomerResponse one customer row in listings.
type CustomerResponse struct {
	ID          int64           `json:"id"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	PhoneNumber string          `json:"phone_number"`
	Email       string          `json:"email"`
	Tier        int             `json:"customer_group_id"`
	Point       decimal.Decimal `json:"point"`
	Piutang     decimal.Decimal `json:"piutang"`
	IsActive    int             `json:"is_active"`
}

// CustomerListResponse paginated customer listing.
type CustomerListResponse struct {
	Customers []CustomerResponse `json:"customers"`
	Page      PageResponse       `json:"page"`
}

// PageResponse page metadata in responses.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total"`
}

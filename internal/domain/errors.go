package domain

import "errors"

// Domain errors (no external dependencies). The HTTP layer maps these to
// status codes; the checkout orchestrator treats any other error as internal.
var (
	ErrNotFound           = errors.New("resource not found")
	ErrProductNotFound    = errors.New("product not found")
	ErrCustomerNotFound   = errors.New("customer not found")
	ErrLineNotFound       = errors.New("product not found in cart")
	ErrCartUnavailable    = errors.New("cart not found or already processed")
	ErrEmptyCart          = errors.New("no products in cart")
	ErrPriceNotConfigured = errors.New("price not configured for product")
	ErrPointExceedsTotal  = errors.New("point redemption exceeds transaction total")
	ErrInsufficientTender = errors.New("tendered amount below grand total")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrInvalidInput       = errors.New("invalid input")
	ErrDuplicate          = errors.New("duplicate resource")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("access denied")
	ErrUserNotFound       = errors.New("user not found")
)

package repository

import "github.com/santoko/kasir-api/internal/domain/entity"

// CartRepository persists cart headers and lines. Line mutations run inside
// small transactions; GetLineForUpdate takes the row lock that serializes
// concurrent merges on the same (cart, barcode) pair.
type CartRepository interface {
	CreateCart(cart *entity.Cart) error // assigns cart.ID
	GetCart(id int64) (*entity.Cart, error)
	// GetCartForUpdate locks the cart header (SELECT FOR UPDATE) so
	// concurrent finalizes on the same cart serialize; the loser re-reads a
	// deleted row and gets nil. Only call inside a transaction.
	GetCartForUpdate(id int64) (*entity.Cart, error)

	GetLine(cartID int64, barcode string) (*entity.CartLine, error)
	// GetLineForUpdate locks the line row (SELECT FOR UPDATE). Only call
	// inside a transaction.
	GetLineForUpdate(cartID int64, barcode string) (*entity.CartLine, error)
	InsertLine(line *entity.CartLine) error // assigns line.No
	UpdateLine(line *entity.CartLine) error
	DeleteLine(cartID int64, barcode string) error
	// ListLines returns all lines in insertion order (sequence ascending).
	ListLines(cartID int64) ([]*entity.CartLine, error)

	// DeleteLines and DeleteCart retire a finalized or abandoned cart.
	DeleteLines(cartID int64) error
	DeleteCart(id int64) error
}

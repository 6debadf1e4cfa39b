package dto

import "github.com/shopspring/decimal"

// OpenCartRequest starts a new cart for a customer.
type OpenCartRequest struct {
	CustomerID  int64 `json:"customer_id"`
	WarehouseID int64 `json:"warehouse_id"`
	Kind        int   `json:"kind"` // transaction kind wire code (1 sale, 5 return)
}

// CustomerSummary is echoed verbatim from the customer record when a cart is
// opened: the operator sees the point balance and outstanding receivable.
type CustomerSummary struct {
	Name        string          `json:"name"`
	PhoneNumber string          `json:"phone_number"`
	Point       decimal.Decimal `json:"point"`
	Piutang     decimal.Decimal `json:"piutang"`
	Tier        int             `json:"customer_group_id"`
}

// OpenCartResponse returns the new cart id plus the customer summary.
type OpenCartResponse struct {
	CartID   int64           `json:"cart_id"`
	Customer CustomerSummary `json:"customer"`
}

// MutateItemRequest adds/merges a barcode into a cart or sets its quantity.
type MutateItemRequest struct {
	Barcode  string          `json:"barcode"`
	Quantity decimal.Decimal `json:"quantity"`
	Tier     int             `json:"tier"` // customer tier wire code (1 retail, 2 branch, 3 warehouse)
}

// CartLineResponse is the wire shape of one cart line.
type CartLineResponse struct {
	No        int64           `json:"no"`
	CartID    int64           `json:"cart_id"`
	Barcode   string          `json:"barcode"`
	ProductID int64           `json:"product_id"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Tax       decimal.Decimal `json:"tax"`
	TaxedUnit decimal.Decimal `json:"taxed_unit_price"` // unit price + tax/qty, 2 dp
	Name      string          `json:"name"`
	Quantity  decimal.Decimal `json:"quantity"`
	Unit      string          `json:"unit"`
	Total     decimal.Decimal `json:"total"`
	Discount  decimal.Decimal `json:"discount"`
	Profit    decimal.Decimal `json:"profit"`
	IsPoint   int             `json:"is_point"`
	TaxRate   decimal.Decimal `json:"tax_rate"`
	UnitID    int64           `json:"unit_id"`
}

// PromoInfo is advisory promotion metadata attached to cart responses; it
// never affects stored pricing.
type PromoInfo struct {
	PromotionPrice decimal.Decimal `json:"promotion_price"`
	MaxItemPromo   int             `json:"max_item_promo"`
}

// CartResponse is the full cart listing returned by every cart operation.
type CartResponse struct {
	Lines []CartLineResponse `json:"lines"`
	Promo *PromoInfo         `json:"promo,omitempty"`
}

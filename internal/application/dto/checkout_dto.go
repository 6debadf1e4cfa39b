package dto

import "github.com/shopspring/decimal"

// CheckoutRequest finalizes a cart into a sale.
type CheckoutRequest struct {
	CartID         int64           `json:"cart_id"`
	PayingMethod   int             `json:"paying_method"` // payment method wire code
	PayingAmount   decimal.Decimal `json:"paying_amount"` // tendered amount
	OrderDiscount  decimal.Decimal `json:"order_discount"`
	ShippingCost   decimal.Decimal `json:"shipping_cost"`
	ServiceFee     decimal.Decimal `json:"service_fee"`
	OrderTax       decimal.Decimal `json:"order_tax"`
	OrderTaxRate   decimal.Decimal `json:"order_tax_rate"`
	Point          decimal.Decimal `json:"point"` // point redemption request
	SaleNote       string          `json:"sale_note"`
	StaffNote      string          `json:"staff_note"`
	CustomerAlias  string          `json:"customer_alias"`
	IsShipped      int             `json:"is_shipped"` // deferred delivery: allows under-tendered (piutang) sales
}

// CheckoutResponse is the finalize result.
type CheckoutResponse struct {
	SaleID       int64           `json:"sale_id"`
	ReferenceNo  string          `json:"reference_no"`
	GrandTotal   decimal.Decimal `json:"grand_total"`
	PayingAmount decimal.Decimal `json:"paying_amount"`
	Change       decimal.Decimal `json:"change"`  // non-negative
	Piutang      decimal.Decimal `json:"piutang"` // non-negative receivable on under-tendered shipped orders
}

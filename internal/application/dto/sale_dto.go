package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleLineResponse a finalized sale line.
type SaleLineResponse struct {
	ID          int64           `json:"id"`
	ReferenceNo string          `json:"reference_no"`
	ProductID   int64           `json:"product_id"`
	Barcode     string          `json:"barcode"`
	Name        string          `json:"name"`
	Quantity    decimal.Decimal `json:"quantity"`
	Unit        string          `json:"unit"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TaxRate     decimal.Decimal `json:"tax_rate"`
	Tax         decimal.Decimal `json:"tax"`
	Discount    decimal.Decimal `json:"discount"`
	Total       decimal.Decimal `json:"total"`
}

// SaleResponse a finalized sale header with its lines.
type SaleResponse struct {
	ID                int64              `json:"id"`
	ReferenceNo       string             `json:"reference_no"`
	WarehouseID       int64              `json:"warehouse_id"`
	BillerID          int64              `json:"biller_id"`
	CustomerID        int64              `json:"customer_id"`
	CustomerAlias     string             `json:"customer_alias,omitempty"`
	OperatorID        int64              `json:"operator_id"`
	Kind              int                `json:"kind"`
	ItemCount         int                `json:"item_count"`
	TotalQuantity     decimal.Decimal    `json:"total_quantity"`
	TotalPrice        decimal.Decimal    `json:"total_price"`
	TotalPriceRounded decimal.Decimal    `json:"total_price_rounded"`
	TotalTax          decimal.Decimal    `json:"total_tax"`
	TotalDiscount     decimal.Decimal    `json:"total_discount"`
	OrderTax          decimal.Decimal    `json:"order_tax"`
	OrderTaxRate      decimal.Decimal    `json:"order_tax_rate"`
	OrderDiscount     decimal.Decimal    `json:"order_discount"`
	PointDiscount     decimal.Decimal    `json:"point_discount"`
	ShippingCost      decimal.Decimal    `json:"shipping_cost"`
	ServiceFee        decimal.Decimal    `json:"service_fee"`
	GrandTotal        decimal.Decimal    `json:"grand_total"`
	PaidAmount        decimal.Decimal    `json:"paid_amount"`
	PaymentStatus     string             `json:"payment_status"`
	SaleNote          string             `json:"sale_note,omitempty"`
	StaffNote         string             `json:"staff_note,omitempty"`
	CreatedAt         time.Time          `json:"created_at"`
	Lines             []SaleLineResponse `json:"lines"`
}

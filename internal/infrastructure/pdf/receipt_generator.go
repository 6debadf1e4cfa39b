// Package pdf renders the printable sales receipt on an 80mm thermal-style
// page: store header, reference number and date, one row per line, the
// totals block with only the non-zero adjustments, and a QR code of the
// reference number for return lookups at the counter.
package pdf

import (
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	appsale "github.com/santoko/kasir-api/internal/application/sale"
	"github.com/santoko/kasir-api/internal/application/dto"
	"github.com/santoko/kasir-api/internal/domain/entity"
)

var _ appsale.ReceiptGenerator = (*ReceiptGenerator)(nil)

var colorGray = &props.Color{Red: 100, Green: 100, Blue: 100}

// rupiah formats amounts with Indonesian digit grouping (Rp 1.250.000).
var rupiah = message.NewPrinter(language.Indonesian)

// ReceiptGenerator renders receipts with Maroto v2.
type ReceiptGenerator struct {
	storeName string
}

// NewReceiptGenerator builds the generator. storeName heads every receipt.
func NewReceiptGenerator(storeName string) *ReceiptGenerator {
	return &ReceiptGenerator{storeName: storeName}
}

// Generate renders the receipt PDF and returns its bytes.
func (g *ReceiptGenerator) Generate(sale *dto.SaleResponse) ([]byte, error) {
	cfg := config.NewBuilder().
		WithDimensions(80, 250).
		WithLeftMargin(4).WithRightMargin(4).
		WithTopMargin(4).WithBottomMargin(4).
		WithDefaultFont(&props.Font{Family: "courier", Size: 8}).
		WithTitle("Struk "+sale.ReferenceNo, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRows(g.storeName, sale)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	for _, ln := range sale.Lines {
		m.AddRows(lineRows(ln)...)
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(totalsRows(sale)...)
	m.AddRows(footerRows(sale)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generate receipt: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRows(storeName string, sale *dto.SaleResponse) []core.Row {
	title := "STRUK PENJUALAN"
	if entity.TransactionKind(sale.Kind) == entity.KindReturn {
		title = "STRUK RETUR"
	}
	return []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New(storeName, props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Center, Top: 1}),
		)),
		row.New(4).Add(col.New(12).Add(
			text.New(title, props.Text{Size: 8, Align: align.Center}),
		)),
		row.New(8).Add(
			col.New(6).Add(
				text.New(sale.ReferenceNo, props.Text{Style: fontstyle.Bold, Size: 8, Top: 1}),
			),
			col.New(6).Add(
				text.New(sale.CreatedAt.Format("02/01/2006 15:04"), props.Text{
					Size: 7, Align: align.Right, Top: 2, Color: colorGray,
				}),
			),
		),
	}
}

// lineRows: product name on one row, qty x unit price and line total below.
func lineRows(ln dto.SaleLineResponse) []core.Row {
	name := ln.Name
	if name == "" {
		name = ln.Barcode
	}
	return []core.Row{
		row.New(4).Add(col.New(12).Add(
			text.New(name, props.Text{Size: 8}),
		)),
		row.New(4).Add(
			col.New(7).Add(text.New(
				fmt.Sprintf("%s %s x %s", ln.Quantity.String(), ln.Unit, formatRupiah(ln.UnitPrice)),
				props.Text{Size: 7, Color: colorGray, Left: 2},
			)),
			col.New(5).Add(text.New(
				formatRupiah(ln.Total),
				props.Text{Size: 8, Align: align.Right},
			)),
		),
	}
}

func totalsRows(sale *dto.SaleResponse) []core.Row {
	type entry struct {
		label  string
		amount decimal.Decimal
		always bool
		bold   bool
	}
	entries := []entry{
		{"Total", sale.TotalPriceRounded, true, false},
		{"Pajak", sale.TotalTax, false, false},
		{"Diskon", sale.OrderDiscount, false, false},
		{"Poin", sale.PointDiscount, false, false},
		{"Ongkir", sale.ShippingCost, false, false},
		{"Biaya layanan", sale.ServiceFee, false, false},
		{"GRAND TOTAL", sale.GrandTotal, true, true},
		{"Bayar", sale.PaidAmount, true, false},
	}

	rows := make([]core.Row, 0, len(entries))
	for _, e := range entries {
		if !e.always && e.amount.IsZero() {
			continue
		}
		style := props.Text{Size: 8, Align: align.Right}
		if e.bold {
			style = props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}
		}
		labelStyle := style
		labelStyle.Align = align.Left
		rows = append(rows, row.New(4).Add(
			col.New(6).Add(text.New(e.label, labelStyle)),
			col.New(6).Add(text.New(formatRupiah(e.amount), style)),
		))
	}
	return rows
}

func footerRows(sale *dto.SaleResponse) []core.Row {
	return []core.Row{
		row.New(4),
		row.New(26).Add(
			col.New(3),
			col.New(6).Add(code.NewQr(sale.ReferenceNo, props.Rect{Percent: 90, Center: true})),
			col.New(3),
		),
		row.New(6).Add(col.New(12).Add(
			text.New("Terima kasih atas kunjungan Anda", props.Text{
				Size: 7, Align: align.Center, Color: colorGray, Top: 2,
			}),
		)),
	}
}

func formatRupiah(d decimal.Decimal) string {
	return rupiah.Sprintf("Rp %v", number.Decimal(d.InexactFloat64(), number.MaxFractionDigits(2)))
}

// Package pdf implementa la generación del recibo de venta en A4.
//
// Layout de la página:
//
//	┌─────────────────────────────────────────────────────────┐
//	│  HEADER: SuperMart POS  │  Recibo de venta + fecha       │
//	│  ─────────────────────────────────────────────────────  │
//	│  Cliente / Sala / Pago                                   │
//	│  ─────────────────────────────────────────────────────  │
//	│  TABLA: Artículo | Precio unit. | Cant. | Total línea    │
//	│  ─────────────────────────────────────────────────────  │
//	│  TOTALES: Subtotal / Descuento / Impuesto / TOTAL        │
//	│  Thank you!                                              │
//	└─────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"

	"github.com/shopspring/decimal"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/supermart-pos/internal/application/sales"
	"github.com/jhoicas/supermart-pos/internal/domain/entity"
	"github.com/jhoicas/supermart-pos/pkg/money"
)

var _ sales.ReceiptRenderer = (*MarotoReceiptGenerator)(nil)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}

	hundred = decimal.NewFromInt(100)
)

// MarotoReceiptGenerator implementa sales.ReceiptRenderer usando Maroto v2.
type MarotoReceiptGenerator struct {
	storeName string
}

// NewMarotoReceiptGenerator construye el generador.
func NewMarotoReceiptGenerator(storeName string) *MarotoReceiptGenerator {
	return &MarotoReceiptGenerator{storeName: storeName}
}

// Render genera el PDF del recibo y devuelve sus bytes.
func (g *MarotoReceiptGenerator) Render(inv *entity.ConfirmedInvoice) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Sales Receipt", true).
		WithAuthor(g.storeName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(inv))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(customerRow(inv))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableLineRows(inv.Lines) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(inv))

	m.AddRows(row.New(10).Add(col.New(12).Add(
		text.New("Thank you!", props.Text{
			Size: 10, Align: align.Center, Color: colorGray, Top: 4,
		}),
	)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar recibo: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: nombre de la tienda (izq), título y fecha (der).
func (g *MarotoReceiptGenerator) headerRow(inv *entity.ConfirmedInvoice) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New(g.storeName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(5).Add(
			text.New("SALES RECEIPT", props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("Date: "+inv.ConfirmedAt.Format("2006-01-02 15:04:05"), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

// customerRow: cliente, sala y método de pago en un bloque.
func customerRow(inv *entity.ConfirmedInvoice) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New(inv.Customer.Name, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 1,
			}),
			text.New(fmt.Sprintf("Showroom: %s   |   Payment: %s",
				inv.Showroom, inv.PaymentMethod,
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de líneas.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Item", 5, align.Left),
		h("Unit Price", 3, align.Right),
		h("Qty", 1, align.Center),
		h("Line Total", 3, align.Right),
	)
}

// tableLineRows: una fila por línea congelada de la venta.
func tableLineRows(lines []entity.ConfirmedLine) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		result = append(result, row.New(7).Add(
			col.New(5).Add(text.New(
				l.Name,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(3).Add(text.New(
				money.LKR(l.UnitPrice),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(1).Add(text.New(
				fmt.Sprintf("%d", l.Qty),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(3).Add(text.New(
				money.LKR(l.LineTotal),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalsRow: bloque de totales alineado a la derecha.
func totalsRow(inv *entity.ConfirmedInvoice) core.Row {
	label := func(s string, top float64) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: top,
		})
	}
	value := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1, Top: top})
	}
	grandLabel := func(s string, top float64) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 2, Top: top,
		})
	}
	grandValue := func(s string, top float64) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1, Top: top,
		})
	}

	taxLabel := "Tax (" + inv.TaxRate.Mul(hundred).StringFixed(0) + "%):"
	return row.New(30).Add(
		col.New(3),
		col.New(4).Add(
			label("Subtotal:", 1),
			label("Discount:", 7),
			label(taxLabel, 13),
			grandLabel("GRAND TOTAL:", 21),
		),
		col.New(4).Add(
			value(money.LKR(inv.Subtotal), 1),
			value(money.LKR(inv.Discount), 7),
			value(money.LKR(inv.Tax), 13),
			grandValue(money.LKR(inv.GrandTotal), 21),
		),
		col.New(1),
	)
}

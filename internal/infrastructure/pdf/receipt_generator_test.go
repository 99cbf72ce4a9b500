package pdf_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/supermart-pos/internal/domain/entity"
	"github.com/jhoicas/supermart-pos/internal/infrastructure/pdf"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestRender_GeneraPDF(t *testing.T) {
	gen := pdf.NewMarotoReceiptGenerator("SuperMart POS")

	inv := &entity.ConfirmedInvoice{
		ID:            "abc-123",
		Customer:      entity.Customer{ID: 2, Name: "Jane Smith"},
		Showroom:      "Main",
		TaxRate:       dec("0.15"),
		PaymentMethod: "Cash",
		Lines: []entity.ConfirmedLine{
			{ItemID: 101, Name: "Apple iPhone 14", UnitPrice: dec("999.00"), Qty: 3, LineTotal: dec("2997.00")},
			{ItemID: 105, Name: "Logitech MX Master 3", UnitPrice: dec("99.00"), Qty: 1, LineTotal: dec("99.00")},
		},
		Subtotal:    dec("3096.00"),
		Discount:    dec("309.60"),
		Tax:         dec("417.96"),
		GrandTotal:  dec("3204.36"),
		ConfirmedAt: time.Date(2026, 8, 28, 12, 30, 0, 0, time.UTC),
	}

	raw, err := gen.Render(inv)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF")), "cabecera de PDF")
	assert.Greater(t, len(raw), 1000, "el documento no está vacío")
}

func TestRender_SinLineasNoFalla(t *testing.T) {
	// El ledger nunca guarda ventas sin líneas, pero el generador no debe
	// depender de ese invariante.
	gen := pdf.NewMarotoReceiptGenerator("SuperMart POS")
	inv := &entity.ConfirmedInvoice{
		ID:          "vacia",
		Customer:    entity.Customer{ID: 1, Name: "John Doe"},
		Showroom:    "Main",
		ConfirmedAt: time.Now(),
	}

	raw, err := gen.Render(inv)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF")))
}

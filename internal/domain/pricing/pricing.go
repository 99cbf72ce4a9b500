// Package pricing implementa la aritmética de totales de una factura como
// funciones puras de dominio (sin estado, sin efectos):
//
//	subtotal   = Σ (cantidad × precio unitario vigente)
//	descuento  = PERCENT: subtotal × v/100 | AMOUNT: min(v, subtotal)
//	impuesto   = (subtotal − descuento) × tasa
//	total      = max(0, (subtotal − descuento) + impuesto)
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/supermart-pos/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// Line entrada mínima de la aritmética: cantidad y precio unitario vigente.
type Line struct {
	Qty       int
	UnitPrice decimal.Decimal
}

// Totals las cuatro cifras de una factura, redondeadas a 2 decimales.
type Totals struct {
	Subtotal   decimal.Decimal
	Discount   decimal.Decimal
	Tax        decimal.Decimal
	GrandTotal decimal.Decimal
}

// Subtotal suma los totales de línea.
func Subtotal(lines []Line) decimal.Decimal {
	s := decimal.Zero
	for _, l := range lines {
		s = s.Add(l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Qty))))
	}
	return s
}

// DiscountAmount monto efectivo del descuento sobre un subtotal.
// Un valor <= 0 no descuenta nada; AMOUNT nunca excede el subtotal.
func DiscountAmount(subtotal decimal.Decimal, d entity.Discount) decimal.Decimal {
	if d.Value.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	if d.Kind == entity.DiscountPercent {
		return subtotal.Mul(d.Value).Div(hundred)
	}
	return decimal.Min(d.Value, subtotal)
}

// TaxAmount impuesto sobre la base gravable (subtotal − descuento).
func TaxAmount(subtotal, discount, taxRate decimal.Decimal) decimal.Decimal {
	return subtotal.Sub(discount).Mul(taxRate)
}

// GrandTotal total a pagar, con piso en cero para valores patológicos
// de descuento.
func GrandTotal(subtotal, discount, tax decimal.Decimal) decimal.Decimal {
	total := subtotal.Sub(discount).Add(tax)
	if total.IsNegative() {
		return decimal.Zero
	}
	return total
}

// Compute calcula las cuatro cifras de una pasada, redondeadas a 2 decimales
// para presentación. Determinista: mismas entradas, mismas cifras en la vista
// en vivo, la confirmación y el recibo exportado.
func Compute(lines []Line, d entity.Discount, taxRate decimal.Decimal) Totals {
	subtotal := Subtotal(lines)
	discount := DiscountAmount(subtotal, d)
	tax := TaxAmount(subtotal, discount, taxRate)
	return Totals{
		Subtotal:   subtotal.Round(2),
		Discount:   discount.Round(2),
		Tax:        tax.Round(2),
		GrandTotal: GrandTotal(subtotal, discount, tax).Round(2),
	}
}

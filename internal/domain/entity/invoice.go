package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de descuento de una factura en curso.
const (
	DiscountPercent = "PERCENT" // porcentaje sobre el subtotal (0–100)
	DiscountAmount  = "AMOUNT"  // monto fijo, acotado por el subtotal
)

// Discount descriptor del descuento pendiente de una factura.
// Reemplaza (no acumula) cualquier descuento anterior.
type Discount struct {
	Kind  string
	Value decimal.Decimal
}

// InvoiceLine es una línea de la factura en curso: referencia al artículo y
// cantidad reservada. No guarda precio: el total de línea se calcula siempre
// con el precio *vigente* del artículo (comportamiento heredado del sistema
// original; ver SalesLedger para el congelado al confirmar).
type InvoiceLine struct {
	ItemID int
	Qty    int
}

// ConfirmedLine línea congelada al confirmar: nombre, precio unitario y total
// quedan fijos para que el historial sobreviva ediciones de precio posteriores.
type ConfirmedLine struct {
	ItemID    int
	Name      string
	UnitPrice decimal.Decimal
	Qty       int
	LineTotal decimal.Decimal
}

// ConfirmedInvoice snapshot inmutable de una venta confirmada.
// Solo lo crea la operación de confirmación; nunca se modifica ni se borra.
type ConfirmedInvoice struct {
	ID            string // UUID asignado al confirmar
	Customer      Customer
	Showroom      string
	TaxRate       decimal.Decimal
	PaymentMethod string
	Lines         []ConfirmedLine
	Subtotal      decimal.Decimal
	Discount      decimal.Decimal
	Tax           decimal.Decimal
	GrandTotal    decimal.Decimal
	ConfirmedAt   time.Time
}

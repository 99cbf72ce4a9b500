package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ── Catálogo ──────────────────────────────────────────────────────────────────

// CreateItemRequest alta de artículo. El ID lo asigna el caller.
type CreateItemRequest struct {
	ID    int             `json:"id" validate:"required,min=1"`
	Name  string          `json:"name" validate:"required"`
	Price decimal.Decimal `json:"price"`
	Stock int             `json:"stock" validate:"min=0"`
}

// UpdateItemRequest edición parcial de nombre y/o precio.
type UpdateItemRequest struct {
	Name  *string          `json:"name,omitempty"`
	Price *decimal.Decimal `json:"price,omitempty"`
}

// AdjustStockRequest ajuste manual de stock (reposición o corrección).
type AdjustStockRequest struct {
	Delta int `json:"delta" validate:"required"`
}

// ItemResponse artículo del catálogo.
type ItemResponse struct {
	ID    int             `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Stock int             `json:"stock"`
}

// ── Directorio ────────────────────────────────────────────────────────────────

// CreateCustomerRequest alta de cliente; el ID se asigna monotónicamente.
type CreateCustomerRequest struct {
	Name string `json:"name" validate:"required"`
}

// RenameCustomerRequest cambio de nombre de un cliente.
type RenameCustomerRequest struct {
	Name string `json:"name" validate:"required"`
}

// CustomerResponse cliente del directorio.
type CustomerResponse struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// SupplierRequest alta de proveedor (solo nombre).
type SupplierRequest struct {
	Name string `json:"name" validate:"required"`
}

// SupplierResponse proveedor del directorio.
type SupplierResponse struct {
	Name string `json:"name"`
}

// ── Ventas ────────────────────────────────────────────────────────────────────

// StartInvoiceRequest abre la factura de la sesión. TaxRate en blanco toma
// la tasa configurada de la tienda.
type StartInvoiceRequest struct {
	CustomerID int              `json:"customer_id" validate:"required,min=1"`
	Showroom   string           `json:"showroom"`
	TaxRate    *decimal.Decimal `json:"tax_rate,omitempty"`
}

// AddLineRequest agrega una línea a la factura en curso.
type AddLineRequest struct {
	ItemID int `json:"item_id" validate:"required,min=1"`
	Qty    int `json:"qty" validate:"required"`
}

// ChangeQtyRequest fija la cantidad de una línea existente.
type ChangeQtyRequest struct {
	Qty int `json:"qty" validate:"required"`
}

// DiscountRequest reemplaza el descuento pendiente de la factura.
type DiscountRequest struct {
	Kind  string          `json:"kind" validate:"required,oneof=PERCENT AMOUNT"`
	Value decimal.Decimal `json:"value"`
}

// ConfirmRequest confirma la factura en curso.
type ConfirmRequest struct {
	PaymentMethod string `json:"payment_method" validate:"omitempty,oneof=Cash Card Credit"`
}

// LineResponse línea de factura resuelta a precio vigente (vista en vivo) o
// congelado (venta confirmada).
type LineResponse struct {
	ItemID    int             `json:"item_id"`
	Name      string          `json:"name"`
	Qty       int             `json:"qty"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// TotalsResponse las cuatro cifras de la factura.
type TotalsResponse struct {
	Subtotal   decimal.Decimal `json:"subtotal"`
	Discount   decimal.Decimal `json:"discount"`
	Tax        decimal.Decimal `json:"tax"`
	GrandTotal decimal.Decimal `json:"grand_total"`
}

// InvoiceViewResponse estado completo de la factura en curso.
type InvoiceViewResponse struct {
	Customer CustomerResponse `json:"customer"`
	Showroom string           `json:"showroom"`
	TaxRate  decimal.Decimal  `json:"tax_rate"`
	Lines    []LineResponse   `json:"lines"`
	Totals   TotalsResponse   `json:"totals"`
}

// SaleResponse venta confirmada del historial.
type SaleResponse struct {
	ID            string           `json:"id"`
	Customer      CustomerResponse `json:"customer"`
	Showroom      string           `json:"showroom"`
	PaymentMethod string           `json:"payment_method"`
	TaxRate       decimal.Decimal  `json:"tax_rate"`
	Lines         []LineResponse   `json:"lines"`
	Totals        TotalsResponse   `json:"totals"`
	ConfirmedAt   time.Time        `json:"confirmed_at"`
}

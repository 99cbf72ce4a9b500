package repository

import "github.com/jhoicas/supermart-pos/internal/domain/entity"

// SalesLog es el puerto de auditoría de ventas: una línea legible por venta
// confirmada, solo-agregar. Es de solo escritura desde el core: el libro de
// ventas en memoria arranca vacío en cada sesión y no se reconstruye desde
// este log (brecha de durabilidad heredada del sistema original, documentada
// en DESIGN.md).
type SalesLog interface {
	Append(inv *entity.ConfirmedInvoice) error
}

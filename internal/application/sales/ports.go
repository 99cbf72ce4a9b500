package sales

import "github.com/jhoicas/supermart-pos/internal/domain/entity"

// Stock es el puerto mínimo hacia el catálogo que necesita la factura en
// curso: consultar artículos y reservar/liberar stock. AdjustStock es el
// único mutador de stock del sistema (delta negativo reserva, positivo
// libera); el catálogo hace cumplir ahí el invariante de no-negatividad.
type Stock interface {
	Get(id int) (*entity.Item, error)
	AdjustStock(id, delta int) error
}

// CustomerLookup es el puerto hacia el directorio para resolver el cliente
// al abrir una factura.
type CustomerLookup interface {
	GetCustomer(id int) (*entity.Customer, error)
}

// ReceiptRenderer produce el documento de recibo de una venta confirmada.
// La implementación (PDF) vive en infraestructura.
type ReceiptRenderer interface {
	Render(inv *entity.ConfirmedInvoice) ([]byte, error)
}

// Package sales implementa la transacción de venta: la factura en curso como
// máquina de estados explícita (Empty → Open → Confirmed | Discarded) y el
// historial de ventas confirmadas.
//
// La reserva de stock es ansiosa: cada alta/edición de línea ajusta el stock
// del catálogo en el momento, no al confirmar. Dos líneas sobre el mismo
// artículo compiten por el mismo pool de stock en tiempo real, y las vistas
// de inventario reflejan las reservas de inmediato. Confirmar no toca más el
// stock (ya quedó descontado); descartar o limpiar lo devuelve.
package sales

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/supermart-pos/internal/domain"
	"github.com/jhoicas/supermart-pos/internal/domain/entity"
	"github.com/jhoicas/supermart-pos/internal/domain/pricing"
	"github.com/jhoicas/supermart-pos/pkg/logger"
)

type state int

const (
	stateEmpty state = iota // sin cliente vinculado
	stateOpen               // cliente vinculado, cero o más líneas
	stateConfirmed
	stateDiscarded
)

// builder es la factura en curso. Las líneas guardan (artículo, cantidad);
// el precio no se congela hasta confirmar: los totales en vivo reflejan
// siempre el precio vigente del artículo.
type builder struct {
	customer entity.Customer
	showroom string
	taxRate  decimal.Decimal
	lines    []entity.InvoiceLine
	discount entity.Discount
	st       state
}

// LineView línea de la factura en curso resuelta contra el catálogo.
type LineView struct {
	ItemID    int
	Name      string
	Qty       int
	UnitPrice decimal.Decimal
	LineTotal decimal.Decimal
}

// Session sostiene la única factura en vuelo de la tienda (registro único,
// un operador). Se crea una factura con Start y se destruye al confirmar
// o descartar.
type Session struct {
	mu      sync.Mutex
	current *builder

	stock     Stock
	customers CustomerLookup
	ledger    *Ledger
	log       *logger.Logger
}

// NewSession construye la sesión de ventas.
func NewSession(stock Stock, customers CustomerLookup, ledger *Ledger, log *logger.Logger) *Session {
	return &Session{
		stock:     stock,
		customers: customers,
		ledger:    ledger,
		log:       log.Component("sales"),
	}
}

// Start abre una factura nueva (Empty → Open). Falla con ErrInvalidState si
// ya hay una factura abierta. Una sala en blanco toma el placeholder
// "Showroom" del sistema original.
func (s *Session) Start(customerID int, showroom string, taxRate decimal.Decimal) error {
	if taxRate.IsNegative() || taxRate.GreaterThan(decimal.NewFromInt(1)) {
		return domain.ErrInvalidInput
	}
	customer, err := s.customers.GetCustomer(customerID)
	if err != nil {
		return err
	}
	if showroom == "" {
		showroom = "Showroom"
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current != nil && s.current.st == stateOpen {
		return domain.ErrInvalidState
	}
	s.current = &builder{
		customer: *customer,
		showroom: showroom,
		taxRate:  taxRate,
		discount: entity.Discount{Kind: entity.DiscountAmount, Value: decimal.Zero},
		st:       stateOpen,
	}
	s.log.Info().Int("customer_id", customer.ID).Str("showroom", showroom).Msg("factura abierta")
	return nil
}

// AddLine agrega una línea reservando stock en el acto. Sin mutación parcial:
// si la reserva falla, ni el stock ni la lista de líneas cambian.
func (s *Session) AddLine(itemID, qty int) error {
	if qty <= 0 {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	b, err := s.open()
	if err != nil {
		return err
	}
	if _, err := s.stock.Get(itemID); err != nil {
		return err
	}
	if err := s.stock.AdjustStock(itemID, -qty); err != nil {
		return err
	}
	b.lines = append(b.lines, entity.InvoiceLine{ItemID: itemID, Qty: qty})
	return nil
}

// ChangeLineQuantity fija la cantidad de una línea. La diferencia se reserva
// (puede fallar con ErrInsufficientStock, dejando la cantidad anterior) o se
// libera incondicionalmente.
func (s *Session) ChangeLineQuantity(index, newQty int) error {
	if newQty <= 0 {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	b, err := s.open()
	if err != nil {
		return err
	}
	if index < 0 || index >= len(b.lines) {
		return domain.ErrNotFound
	}
	line := &b.lines[index]
	diff := newQty - line.Qty
	if diff != 0 {
		if err := s.stock.AdjustStock(line.ItemID, -diff); err != nil {
			return err
		}
	}
	line.Qty = newQty
	return nil
}

// RemoveLine quita la línea devolviendo al stock la cantidad exacta reservada.
func (s *Session) RemoveLine(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, err := s.open()
	if err != nil {
		return err
	}
	if index < 0 || index >= len(b.lines) {
		return domain.ErrNotFound
	}
	line := b.lines[index]
	if err := s.stock.AdjustStock(line.ItemID, line.Qty); err != nil {
		return err
	}
	b.lines = append(b.lines[:index], b.lines[index+1:]...)
	return nil
}

// Clear libera todas las reservas y vacía las líneas. La factura sigue Open
// con el mismo cliente, lista para líneas nuevas ("Clear Invoice" del
// sistema original no descarta al cliente).
func (s *Session) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, err := s.open()
	if err != nil {
		return err
	}
	s.releaseAll(b)
	b.lines = nil
	return nil
}

// SetDiscount reemplaza el descuento pendiente. PERCENT admite 0–100;
// AMOUNT cualquier valor >= 0 (el motor de precios lo acota al subtotal).
func (s *Session) SetDiscount(kind string, value decimal.Decimal) error {
	if kind != entity.DiscountPercent && kind != entity.DiscountAmount {
		return domain.ErrInvalidInput
	}
	if value.IsNegative() {
		return domain.ErrInvalidInput
	}
	if kind == entity.DiscountPercent && value.GreaterThan(decimal.NewFromInt(100)) {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	b, err := s.open()
	if err != nil {
		return err
	}
	b.discount = entity.Discount{Kind: kind, Value: value}
	return nil
}

// CurrentLines resuelve las líneas en curso contra el catálogo (precios
// vigentes).
func (s *Session) CurrentLines() ([]LineView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, err := s.open()
	if err != nil {
		return nil, err
	}
	return s.lineViews(b)
}

// CurrentTotals calcula las cifras en vivo de la factura en curso.
func (s *Session) CurrentTotals() (pricing.Totals, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, err := s.open()
	if err != nil {
		return pricing.Totals{}, err
	}
	views, err := s.lineViews(b)
	if err != nil {
		return pricing.Totals{}, err
	}
	return pricing.Compute(toPricingLines(views), b.discount, b.taxRate), nil
}

// View estado completo de la factura en curso para la capa de presentación.
type View struct {
	Customer entity.Customer
	Showroom string
	TaxRate  decimal.Decimal
	Discount entity.Discount
	Lines    []LineView
	Totals   pricing.Totals
}

// CurrentInvoice devuelve la vista completa de la factura en curso.
func (s *Session) CurrentInvoice() (*View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, err := s.open()
	if err != nil {
		return nil, err
	}
	views, err := s.lineViews(b)
	if err != nil {
		return nil, err
	}
	return &View{
		Customer: b.customer,
		Showroom: b.showroom,
		TaxRate:  b.taxRate,
		Discount: b.discount,
		Lines:    views,
		Totals:   pricing.Compute(toPricingLines(views), b.discount, b.taxRate),
	}, nil
}

// Confirm cierra la factura (Open → Confirmed): calcula los totales finales
// con los precios vigentes, congela las líneas y agrega el snapshot al
// ledger. No toca más el stock: ya quedó reservado línea a línea. La sesión
// queda libre para la siguiente factura.
func (s *Session) Confirm(paymentMethod string) (*entity.ConfirmedInvoice, error) {
	if paymentMethod == "" {
		paymentMethod = "Cash"
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	b, err := s.open()
	if err != nil {
		return nil, err
	}
	if len(b.lines) == 0 {
		return nil, domain.ErrInvalidState
	}
	views, err := s.lineViews(b)
	if err != nil {
		return nil, err
	}
	totals := pricing.Compute(toPricingLines(views), b.discount, b.taxRate)

	frozen := make([]entity.ConfirmedLine, 0, len(views))
	for _, v := range views {
		frozen = append(frozen, entity.ConfirmedLine{
			ItemID:    v.ItemID,
			Name:      v.Name,
			UnitPrice: v.UnitPrice,
			Qty:       v.Qty,
			LineTotal: v.LineTotal,
		})
	}
	inv := &entity.ConfirmedInvoice{
		ID:            uuid.NewString(),
		Customer:      b.customer,
		Showroom:      b.showroom,
		TaxRate:       b.taxRate,
		PaymentMethod: paymentMethod,
		Lines:         frozen,
		Subtotal:      totals.Subtotal,
		Discount:      totals.Discount,
		Tax:           totals.Tax,
		GrandTotal:    totals.GrandTotal,
		ConfirmedAt:   time.Now(),
	}
	s.ledger.Append(inv)

	b.st = stateConfirmed
	s.current = nil
	s.log.Info().Str("invoice_id", inv.ID).Int("customer_id", inv.Customer.ID).
		Str("grand_total", inv.GrandTotal.String()).Msg("factura confirmada")
	return inv, nil
}

// Discard abandona la factura (Open → Discarded) devolviendo al stock todas
// las reservas. Para fin de sesión o cancelación explícita.
func (s *Session) Discard() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, err := s.open()
	if err != nil {
		return err
	}
	s.releaseAll(b)
	b.lines = nil
	b.st = stateDiscarded
	s.current = nil
	return nil
}

// open devuelve la factura en curso o ErrInvalidState. Llamar con el lock
// tomado.
func (s *Session) open() (*builder, error) {
	if s.current == nil || s.current.st != stateOpen {
		return nil, domain.ErrInvalidState
	}
	return s.current, nil
}

// releaseAll devuelve al stock la cantidad de cada línea. La liberación es
// incondicional; un fallo aquí solo puede ser un artículo borrado bajo una
// factura abierta (responsabilidad del caller), se deja constancia y sigue.
func (s *Session) releaseAll(b *builder) {
	for _, line := range b.lines {
		if err := s.stock.AdjustStock(line.ItemID, line.Qty); err != nil {
			s.log.Warn().Err(err).Int("item_id", line.ItemID).Int("qty", line.Qty).
				Msg("no se pudo devolver stock al liberar la factura")
		}
	}
}

func (s *Session) lineViews(b *builder) ([]LineView, error) {
	views := make([]LineView, 0, len(b.lines))
	for _, line := range b.lines {
		item, err := s.stock.Get(line.ItemID)
		if err != nil {
			return nil, err
		}
		views = append(views, LineView{
			ItemID:    item.ID,
			Name:      item.Name,
			Qty:       line.Qty,
			UnitPrice: item.Price,
			LineTotal: item.Price.Mul(decimal.NewFromInt(int64(line.Qty))).Round(2),
		})
	}
	return views, nil
}

func toPricingLines(views []LineView) []pricing.Line {
	lines := make([]pricing.Line, 0, len(views))
	for _, v := range views {
		lines = append(lines, pricing.Line{Qty: v.Qty, UnitPrice: v.UnitPrice})
	}
	return lines
}

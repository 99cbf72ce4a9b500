package sales_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/supermart-pos/internal/application/catalog"
	"github.com/jhoicas/supermart-pos/internal/application/directory"
	"github.com/jhoicas/supermart-pos/internal/application/sales"
	"github.com/jhoicas/supermart-pos/internal/domain"
	"github.com/jhoicas/supermart-pos/internal/domain/entity"
	"github.com/jhoicas/supermart-pos/pkg/logger"
)

// Repositorios nulos: las pruebas de la sesión de venta no necesitan
// persistencia, solo el estado en memoria de catálogo y directorio.
type nullItemRepo struct{}

func (nullItemRepo) SaveAll([]*entity.Item) error     { return nil }
func (nullItemRepo) LoadAll() ([]*entity.Item, error) { return nil, nil }

type nullCustomerRepo struct{}

func (nullCustomerRepo) SaveAll([]*entity.Customer) error     { return nil }
func (nullCustomerRepo) LoadAll() ([]*entity.Customer, error) { return nil, nil }

type nullSupplierRepo struct{}

func (nullSupplierRepo) SaveAll([]*entity.Supplier) error     { return nil }
func (nullSupplierRepo) LoadAll() ([]*entity.Supplier, error) { return nil, nil }

// fakeSalesLog captura las líneas de auditoría; puede forzarse a fallar.
type fakeSalesLog struct {
	appended []*entity.ConfirmedInvoice
	fail     bool
}

func (f *fakeSalesLog) Append(inv *entity.ConfirmedInvoice) error {
	if f.fail {
		return assert.AnError
	}
	f.appended = append(f.appended, inv)
	return nil
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

type fixture struct {
	session *sales.Session
	catalog *catalog.UseCase
	ledger  *sales.Ledger
	auditor *fakeSalesLog
	janeID  int
}

// newFixture arma una tienda mínima: item 101 (999.00, stock 10), item 105
// (99.00, stock 20) y los clientes John (1) y Jane (2).
func newFixture(t *testing.T) *fixture {
	t.Helper()
	log := logger.New(logger.Config{Env: "development", Level: "error"})

	cat, err := catalog.NewUseCase(nullItemRepo{}, log)
	require.NoError(t, err)
	_, err = cat.AddItem(101, "Apple iPhone 14", dec("999.00"), 10)
	require.NoError(t, err)
	_, err = cat.AddItem(105, "Logitech MX Master 3", dec("99.00"), 20)
	require.NoError(t, err)

	dir, err := directory.NewUseCase(nullCustomerRepo{}, nullSupplierRepo{}, log)
	require.NoError(t, err)
	_, err = dir.AddCustomer("John Doe")
	require.NoError(t, err)
	jane, err := dir.AddCustomer("Jane Smith")
	require.NoError(t, err)

	auditor := &fakeSalesLog{}
	ledger := sales.NewLedger(auditor, log)
	return &fixture{
		session: sales.NewSession(cat, dir, ledger, log),
		catalog: cat,
		ledger:  ledger,
		auditor: auditor,
		janeID:  jane.ID,
	}
}

func (f *fixture) stock(t *testing.T, itemID int) int {
	t.Helper()
	item, err := f.catalog.Get(itemID)
	require.NoError(t, err)
	return item.Stock
}

// ──────────────────────────────────────────────────────────────────────────────
// Flujo de referencia: Jane compra 3 unidades del item 101 con 10% de
// descuento y tasa 0. El stock baja al agregar la línea, no al confirmar.
// ──────────────────────────────────────────────────────────────────────────────

func TestVentaCompleta_EscenarioReferencia(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.session.Start(f.janeID, "Main", decimal.Zero))
	require.NoError(t, f.session.AddLine(101, 3))
	assert.Equal(t, 7, f.stock(t, 101), "la reserva es ansiosa")

	require.NoError(t, f.session.SetDiscount(entity.DiscountPercent, dec("10")))

	totals, err := f.session.CurrentTotals()
	require.NoError(t, err)
	assert.Equal(t, "2997.00", totals.Subtotal.StringFixed(2))
	assert.Equal(t, "299.70", totals.Discount.StringFixed(2))
	assert.Equal(t, "0.00", totals.Tax.StringFixed(2))
	assert.Equal(t, "2697.30", totals.GrandTotal.StringFixed(2))

	inv, err := f.session.Confirm("Cash")
	require.NoError(t, err)
	assert.NotEmpty(t, inv.ID)
	assert.Equal(t, "Jane Smith", inv.Customer.Name)
	assert.Equal(t, "Main", inv.Showroom)
	assert.Equal(t, "2697.30", inv.GrandTotal.StringFixed(2))
	require.Len(t, inv.Lines, 1)
	assert.Equal(t, "Apple iPhone 14", inv.Lines[0].Name)
	assert.Equal(t, "999.00", inv.Lines[0].UnitPrice.StringFixed(2))

	assert.Equal(t, 7, f.stock(t, 101), "confirmar no vuelve a tocar el stock")
	assert.Equal(t, 1, f.ledger.Len())
	require.Len(t, f.auditor.appended, 1)
	assert.Equal(t, inv.ID, f.auditor.appended[0].ID)

	_, err = f.session.CurrentInvoice()
	assert.ErrorIs(t, err, domain.ErrInvalidState, "la sesión queda libre tras confirmar")
}

// ──────────────────────────────────────────────────────────────────────────────
// Máquina de estados
// ──────────────────────────────────────────────────────────────────────────────

func TestStart_FacturaYaAbierta(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.session.Start(f.janeID, "", decimal.Zero))
	assert.ErrorIs(t, f.session.Start(f.janeID, "", decimal.Zero), domain.ErrInvalidState)
}

func TestStart_ClienteInexistente(t *testing.T) {
	f := newFixture(t)
	assert.ErrorIs(t, f.session.Start(999, "", decimal.Zero), domain.ErrNotFound)
}

func TestStart_TasaFueraDeRango(t *testing.T) {
	f := newFixture(t)
	assert.ErrorIs(t, f.session.Start(f.janeID, "", dec("-0.1")), domain.ErrInvalidInput)
	assert.ErrorIs(t, f.session.Start(f.janeID, "", dec("1.5")), domain.ErrInvalidInput)
}

func TestStart_SalaEnBlancoTomaPlaceholder(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.session.Start(f.janeID, "", decimal.Zero))
	view, err := f.session.CurrentInvoice()
	require.NoError(t, err)
	assert.Equal(t, "Showroom", view.Showroom)
}

func TestOperaciones_SinFacturaAbierta(t *testing.T) {
	f := newFixture(t)

	assert.ErrorIs(t, f.session.AddLine(101, 1), domain.ErrInvalidState)
	assert.ErrorIs(t, f.session.ChangeLineQuantity(0, 1), domain.ErrInvalidState)
	assert.ErrorIs(t, f.session.RemoveLine(0), domain.ErrInvalidState)
	assert.ErrorIs(t, f.session.Clear(), domain.ErrInvalidState)
	assert.ErrorIs(t, f.session.SetDiscount(entity.DiscountPercent, dec("5")), domain.ErrInvalidState)
	assert.ErrorIs(t, f.session.Discard(), domain.ErrInvalidState)
	_, err := f.session.Confirm("Cash")
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestConfirm_SinLineas(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.session.Start(f.janeID, "", decimal.Zero))
	_, err := f.session.Confirm("Cash")
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	view, err := f.session.CurrentInvoice()
	require.NoError(t, err, "la factura sigue abierta tras el rechazo")
	assert.Empty(t, view.Lines)
}

// ──────────────────────────────────────────────────────────────────────────────
// Reserva ansiosa de stock
// ──────────────────────────────────────────────────────────────────────────────

func TestAddLine_StockInsuficiente(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.session.Start(f.janeID, "", decimal.Zero))

	err := f.session.AddLine(101, 11)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 10, f.stock(t, 101), "el rechazo no deja mutación parcial")

	lines, err := f.session.CurrentLines()
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestAddLine_CantidadInvalida(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.session.Start(f.janeID, "", decimal.Zero))
	assert.ErrorIs(t, f.session.AddLine(101, 0), domain.ErrInvalidInput)
	assert.ErrorIs(t, f.session.AddLine(101, -2), domain.ErrInvalidInput)
}

func TestAddLine_ArticuloInexistente(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.session.Start(f.janeID, "", decimal.Zero))
	assert.ErrorIs(t, f.session.AddLine(999, 1), domain.ErrNotFound)
}

func TestAddLine_MismoArticuloDosLineas(t *testing.T) {
	// Dos líneas del mismo artículo compiten por el mismo pool de stock.
	f := newFixture(t)
	require.NoError(t, f.session.Start(f.janeID, "", decimal.Zero))
	require.NoError(t, f.session.AddLine(101, 6))
	require.NoError(t, f.session.AddLine(101, 4))
	assert.Equal(t, 0, f.stock(t, 101))

	assert.ErrorIs(t, f.session.AddLine(101, 1), domain.ErrInsufficientStock)
}

func TestChangeLineQuantity_LiberaYReserva(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.session.Start(f.janeID, "", decimal.Zero))
	require.NoError(t, f.session.AddLine(101, 3))
	assert.Equal(t, 7, f.stock(t, 101))

	// Bajar la cantidad libera la diferencia.
	require.NoError(t, f.session.ChangeLineQuantity(0, 1))
	assert.Equal(t, 9, f.stock(t, 101))

	// Subirla reserva la diferencia.
	require.NoError(t, f.session.ChangeLineQuantity(0, 5))
	assert.Equal(t, 5, f.stock(t, 101))
}

func TestChangeLineQuantity_InsuficienteDejaCantidadAnterior(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.session.Start(f.janeID, "", decimal.Zero))
	require.NoError(t, f.session.AddLine(101, 1))

	err := f.session.ChangeLineQuantity(0, 20)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 9, f.stock(t, 101), "el stock no cambió")

	lines, err := f.session.CurrentLines()
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, 1, lines[0].Qty, "la cantidad anterior sigue vigente")
}

func TestChangeLineQuantity_Validaciones(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.session.Start(f.janeID, "", decimal.Zero))
	require.NoError(t, f.session.AddLine(101, 1))

	assert.ErrorIs(t, f.session.ChangeLineQuantity(0, 0), domain.ErrInvalidInput)
	assert.ErrorIs(t, f.session.ChangeLineQuantity(5, 2), domain.ErrNotFound)
	assert.ErrorIs(t, f.session.ChangeLineQuantity(-1, 2), domain.ErrNotFound)
}

func TestRemoveLine_DevuelveLaReservaExacta(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.session.Start(f.janeID, "", decimal.Zero))
	require.NoError(t, f.session.AddLine(101, 3))
	require.NoError(t, f.session.AddLine(105, 2))

	require.NoError(t, f.session.RemoveLine(0))
	assert.Equal(t, 10, f.stock(t, 101))
	assert.Equal(t, 18, f.stock(t, 105), "la otra línea conserva su reserva")

	lines, err := f.session.CurrentLines()
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, 105, lines[0].ItemID)
}

func TestClear_LiberaTodoYSigueAbierta(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.session.Start(f.janeID, "", decimal.Zero))
	require.NoError(t, f.session.AddLine(101, 3))
	require.NoError(t, f.session.AddLine(105, 2))

	require.NoError(t, f.session.Clear())
	assert.Equal(t, 10, f.stock(t, 101))
	assert.Equal(t, 20, f.stock(t, 105))

	// La factura sigue Open: admite líneas nuevas sin Start.
	require.NoError(t, f.session.AddLine(101, 1))
	assert.Equal(t, 9, f.stock(t, 101))
}

func TestDiscard_DevuelveTodoYCierraLaSesion(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.session.Start(f.janeID, "", decimal.Zero))
	require.NoError(t, f.session.AddLine(101, 3))

	require.NoError(t, f.session.Discard())
	assert.Equal(t, 10, f.stock(t, 101))
	assert.Equal(t, 0, f.ledger.Len(), "descartar no registra venta")

	_, err := f.session.CurrentInvoice()
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestConservacionDeStock(t *testing.T) {
	// stock disponible + reservado en líneas == stock inicial, en todo momento.
	f := newFixture(t)
	require.NoError(t, f.session.Start(f.janeID, "", decimal.Zero))

	reserved := func(t *testing.T) int {
		lines, err := f.session.CurrentLines()
		require.NoError(t, err)
		total := 0
		for _, l := range lines {
			if l.ItemID == 101 {
				total += l.Qty
			}
		}
		return total
	}

	require.NoError(t, f.session.AddLine(101, 4))
	assert.Equal(t, 10, f.stock(t, 101)+reserved(t))

	require.NoError(t, f.session.ChangeLineQuantity(0, 7))
	assert.Equal(t, 10, f.stock(t, 101)+reserved(t))

	_ = f.session.AddLine(101, 9) // rechazado, no debe alterar la suma
	assert.Equal(t, 10, f.stock(t, 101)+reserved(t))

	require.NoError(t, f.session.RemoveLine(0))
	assert.Equal(t, 10, f.stock(t, 101)+reserved(t))
}

// ──────────────────────────────────────────────────────────────────────────────
// Precios en vivo vs. congelados
// ──────────────────────────────────────────────────────────────────────────────

func TestPrecios_EnVivoHastaConfirmar(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.session.Start(f.janeID, "", decimal.Zero))
	require.NoError(t, f.session.AddLine(101, 2))

	// Un cambio de precio del catálogo se refleja en la vista en vivo.
	require.NoError(t, f.catalog.SetPrice(101, dec("500.00")))
	totals, err := f.session.CurrentTotals()
	require.NoError(t, err)
	assert.Equal(t, "1000.00", totals.Subtotal.StringFixed(2))

	inv, err := f.session.Confirm("Card")
	require.NoError(t, err)
	assert.Equal(t, "500.00", inv.Lines[0].UnitPrice.StringFixed(2))

	// Tras confirmar, el snapshot queda congelado ante nuevos cambios.
	require.NoError(t, f.catalog.SetPrice(101, dec("900.00")))
	got, err := f.ledger.Get(inv.ID)
	require.NoError(t, err)
	assert.Equal(t, "500.00", got.Lines[0].UnitPrice.StringFixed(2))
	assert.Equal(t, "1000.00", got.GrandTotal.StringFixed(2))
}

func TestConfirm_MetodoDePagoPorDefecto(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.session.Start(f.janeID, "", decimal.Zero))
	require.NoError(t, f.session.AddLine(105, 1))

	inv, err := f.session.Confirm("")
	require.NoError(t, err)
	assert.Equal(t, "Cash", inv.PaymentMethod)
}

func TestSetDiscount_Validaciones(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.session.Start(f.janeID, "", decimal.Zero))

	assert.ErrorIs(t, f.session.SetDiscount("COUPON", dec("5")), domain.ErrInvalidInput)
	assert.ErrorIs(t, f.session.SetDiscount(entity.DiscountPercent, dec("-1")), domain.ErrInvalidInput)
	assert.ErrorIs(t, f.session.SetDiscount(entity.DiscountPercent, dec("101")), domain.ErrInvalidInput)
	assert.NoError(t, f.session.SetDiscount(entity.DiscountAmount, dec("100000")), "AMOUNT no tiene techo, el motor lo acota")
}

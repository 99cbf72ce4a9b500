package sales

import (
	"iter"
	"sync"

	"github.com/jhoicas/supermart-pos/internal/domain"
	"github.com/jhoicas/supermart-pos/internal/domain/entity"
	"github.com/jhoicas/supermart-pos/internal/domain/repository"
	"github.com/jhoicas/supermart-pos/pkg/logger"
)

// Ledger es el historial de ventas confirmadas: solo-agregar, en orden de
// inserción. La lista en memoria es la fuente de verdad de la sesión; cada
// Append escribe además una línea de auditoría por el puerto SalesLog, de
// forma best-effort (un fallo del log no revierte el agregado en memoria).
// El ledger arranca vacío en cada sesión: el log de auditoría no se relee.
type Ledger struct {
	mu      sync.RWMutex
	entries []*entity.ConfirmedInvoice

	log      repository.SalesLog
	warnings *logger.Logger
}

// NewLedger construye el historial de ventas de la sesión.
func NewLedger(log repository.SalesLog, warnings *logger.Logger) *Ledger {
	return &Ledger{log: log, warnings: warnings.Component("ledger")}
}

// Append agrega el snapshot al historial y escribe la línea de auditoría.
func (l *Ledger) Append(inv *entity.ConfirmedInvoice) {
	l.mu.Lock()
	l.entries = append(l.entries, inv)
	l.mu.Unlock()

	if err := l.log.Append(inv); err != nil {
		l.warnings.Warn().Err(err).Str("invoice_id", inv.ID).
			Msg("línea de auditoría no escrita; la venta queda registrada en memoria")
	}
}

// History devuelve una secuencia re-iterable de las ventas confirmadas en
// orden de inserción. Cada llamada arranca desde el principio.
func (l *Ledger) History() iter.Seq[*entity.ConfirmedInvoice] {
	return func(yield func(*entity.ConfirmedInvoice) bool) {
		l.mu.RLock()
		snapshot := make([]*entity.ConfirmedInvoice, len(l.entries))
		copy(snapshot, l.entries)
		l.mu.RUnlock()

		for _, inv := range snapshot {
			if !yield(inv) {
				return
			}
		}
	}
}

// Get busca una venta confirmada por su ID.
func (l *Ledger) Get(id string) (*entity.ConfirmedInvoice, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, inv := range l.entries {
		if inv.ID == id {
			return inv, nil
		}
	}
	return nil, domain.ErrNotFound
}

// Len cantidad de ventas confirmadas en la sesión.
func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

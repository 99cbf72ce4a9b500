package sales_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/supermart-pos/internal/application/sales"
	"github.com/jhoicas/supermart-pos/internal/domain"
	"github.com/jhoicas/supermart-pos/internal/domain/entity"
	"github.com/jhoicas/supermart-pos/pkg/logger"
)

func newLedger(auditor *fakeSalesLog) *sales.Ledger {
	return sales.NewLedger(auditor, logger.New(logger.Config{Env: "development", Level: "error"}))
}

func invoice(id string) *entity.ConfirmedInvoice {
	return &entity.ConfirmedInvoice{ID: id, Customer: entity.Customer{ID: 2, Name: "Jane Smith"}}
}

func TestLedger_OrdenDeInsercion(t *testing.T) {
	ledger := newLedger(&fakeSalesLog{})
	ledger.Append(invoice("a"))
	ledger.Append(invoice("b"))
	ledger.Append(invoice("c"))

	var ids []string
	for inv := range ledger.History() {
		ids = append(ids, inv.ID)
	}
	assert.Equal(t, []string{"a", "b", "c"}, ids)
	assert.Equal(t, 3, ledger.Len())
}

func TestLedger_HistoryReiterable(t *testing.T) {
	ledger := newLedger(&fakeSalesLog{})
	ledger.Append(invoice("a"))
	ledger.Append(invoice("b"))

	seq := ledger.History()
	first := 0
	for range seq {
		first++
	}
	second := 0
	for range seq {
		second++
	}
	assert.Equal(t, first, second, "cada iteración arranca desde el principio")
}

func TestLedger_Get(t *testing.T) {
	ledger := newLedger(&fakeSalesLog{})
	ledger.Append(invoice("a"))

	got, err := ledger.Get("a")
	require.NoError(t, err)
	assert.Equal(t, "Jane Smith", got.Customer.Name)

	_, err = ledger.Get("zzz")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLedger_AuditoriaBestEffort(t *testing.T) {
	// Un fallo del log de auditoría no revierte el agregado en memoria.
	ledger := newLedger(&fakeSalesLog{fail: true})
	ledger.Append(invoice("a"))

	assert.Equal(t, 1, ledger.Len())
	_, err := ledger.Get("a")
	assert.NoError(t, err)
}

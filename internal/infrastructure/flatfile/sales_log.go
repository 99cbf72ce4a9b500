package flatfile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"

	"github.com/jhoicas/supermart-pos/internal/domain/entity"
	"github.com/jhoicas/supermart-pos/internal/domain/repository"
	"github.com/jhoicas/supermart-pos/pkg/money"
)

var _ repository.SalesLog = (*SalesLog)(nil)

// SalesLog log de auditoría de ventas en sales.txt: una línea legible por
// venta confirmada, solo-agregar. Nunca se relee: el historial en memoria
// arranca vacío en cada sesión.
type SalesLog struct {
	fs   afero.Fs
	path string
	now  func() time.Time
}

// NewSalesLog construye el adaptador sobre el filesystem dado.
func NewSalesLog(fs afero.Fs, dataDir string) *SalesLog {
	return &SalesLog{fs: fs, path: filepath.Join(dataDir, "sales.txt"), now: time.Now}
}

// Append agrega la línea de auditoría de la venta.
func (s *SalesLog) Append(inv *entity.ConfirmedInvoice) error {
	f, err := s.fs.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("flatfile: abrir %s: %w", s.path, err)
	}
	defer f.Close()

	line := s.now().Format(time.RFC3339) + " :: " + flatten(inv) + "\n"
	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("flatfile: escribir %s: %w", s.path, err)
	}
	return nil
}

// flatten describe la venta en una sola línea, campos separados por " | ".
func flatten(inv *entity.ConfirmedInvoice) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Invoice %s for %s @ %s [%s]",
		inv.ID, inv.Customer.Name, inv.Showroom, inv.PaymentMethod)
	for _, l := range inv.Lines {
		fmt.Fprintf(&sb, " | %s x%d = %s", l.Name, l.Qty, money.LKR(l.LineTotal))
	}
	fmt.Fprintf(&sb, " | Subtotal: %s | Discount: %s | Tax: %s | Grand Total: %s",
		money.LKR(inv.Subtotal), money.LKR(inv.Discount), money.LKR(inv.Tax), money.LKR(inv.GrandTotal))
	return sb.String()
}

// Package money formatea montos para salida humana (recibos, log de ventas).
// La tienda opera en rupias de Sri Lanka (LKR), como el sistema original.
package money

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.English)

// LKR formatea un monto con separador de miles y dos decimales,
// ej. "LKR 2,997.00".
func LKR(v decimal.Decimal) string {
	f, _ := v.Round(2).Float64()
	return printer.Sprintf("LKR %v", number.Decimal(f,
		number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}

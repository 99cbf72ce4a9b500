package entity

import "github.com/shopspring/decimal"

// Item representa un artículo del inventario de la tienda.
// El ID lo asigna el caller al crear el artículo y es estable; Stock nunca
// baja de cero (invariante que hace cumplir el catálogo, único mutador).
type Item struct {
	ID    int
	Name  string
	Price decimal.Decimal // precio de venta unitario, no negativo
	Stock int
}

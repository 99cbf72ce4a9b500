package repository

import "github.com/jhoicas/supermart-pos/internal/domain/entity"

// ItemRepository define el puerto de persistencia del catálogo.
// El core hace flush del conjunto completo tras cada mutación (durabilidad
// best-effort: un fallo de flush no invalida el estado en memoria) y lo
// relee una sola vez al arrancar.
type ItemRepository interface {
	SaveAll(items []*entity.Item) error
	LoadAll() ([]*entity.Item, error)
}

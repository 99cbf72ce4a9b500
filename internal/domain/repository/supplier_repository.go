package repository

import "github.com/jhoicas/supermart-pos/internal/domain/entity"

// SupplierRepository define el puerto de persistencia de proveedores.
type SupplierRepository interface {
	SaveAll(suppliers []*entity.Supplier) error
	LoadAll() ([]*entity.Supplier, error)
}

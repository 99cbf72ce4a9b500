package repository

import "github.com/jhoicas/supermart-pos/internal/domain/entity"

// CustomerRepository define el puerto de persistencia de clientes.
type CustomerRepository interface {
	SaveAll(customers []*entity.Customer) error
	LoadAll() ([]*entity.Customer, error)
}

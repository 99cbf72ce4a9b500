// Package directory implementa el directorio de clientes y proveedores.
// Clientes llevan ID monotónico (max+1); proveedores son solo nombre,
// lista de solo-agregar con eliminación por valor.
package directory

import (
	"sync"

	"github.com/jhoicas/supermart-pos/internal/domain"
	"github.com/jhoicas/supermart-pos/internal/domain/entity"
	"github.com/jhoicas/supermart-pos/internal/domain/repository"
	"github.com/jhoicas/supermart-pos/pkg/logger"
)

// UseCase casos de uso del directorio.
type UseCase struct {
	mu        sync.Mutex
	customers map[int]*entity.Customer
	order     []int
	suppliers []*entity.Supplier

	customerRepo repository.CustomerRepository
	supplierRepo repository.SupplierRepository
	log          *logger.Logger
}

// NewUseCase construye el directorio y carga el estado persistido.
func NewUseCase(customerRepo repository.CustomerRepository, supplierRepo repository.SupplierRepository, log *logger.Logger) (*UseCase, error) {
	uc := &UseCase{
		customers:    make(map[int]*entity.Customer),
		customerRepo: customerRepo,
		supplierRepo: supplierRepo,
		log:          log.Component("directory"),
	}
	customers, err := customerRepo.LoadAll()
	if err != nil {
		return nil, err
	}
	for _, c := range customers {
		uc.customers[c.ID] = c
		uc.order = append(uc.order, c.ID)
	}
	suppliers, err := supplierRepo.LoadAll()
	if err != nil {
		return nil, err
	}
	uc.suppliers = suppliers
	return uc, nil
}

// AddCustomer crea un cliente con el siguiente ID disponible.
func (uc *UseCase) AddCustomer(name string) (*entity.Customer, error) {
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	uc.mu.Lock()
	defer uc.mu.Unlock()
	customer := &entity.Customer{ID: uc.nextCustomerID(), Name: name}
	uc.customers[customer.ID] = customer
	uc.order = append(uc.order, customer.ID)
	uc.flushCustomers()
	copied := *customer
	return &copied, nil
}

// RenameCustomer cambia el nombre de presentación de un cliente.
func (uc *UseCase) RenameCustomer(id int, name string) error {
	if name == "" {
		return domain.ErrInvalidInput
	}
	uc.mu.Lock()
	defer uc.mu.Unlock()
	customer, ok := uc.customers[id]
	if !ok {
		return domain.ErrNotFound
	}
	customer.Name = name
	uc.flushCustomers()
	return nil
}

// RemoveCustomer elimina un cliente por ID.
func (uc *UseCase) RemoveCustomer(id int) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if _, ok := uc.customers[id]; !ok {
		return domain.ErrNotFound
	}
	delete(uc.customers, id)
	for i, oid := range uc.order {
		if oid == id {
			uc.order = append(uc.order[:i], uc.order[i+1:]...)
			break
		}
	}
	uc.flushCustomers()
	return nil
}

// GetCustomer devuelve una copia del cliente.
func (uc *UseCase) GetCustomer(id int) (*entity.Customer, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	customer, ok := uc.customers[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *customer
	return &copied, nil
}

// Customers lista los clientes en orden de inserción.
func (uc *UseCase) Customers() []*entity.Customer {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.customerSnapshot()
}

// NextCustomerID helper puro: max(ids existentes)+1, o 1 si no hay clientes.
func (uc *UseCase) NextCustomerID() int {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.nextCustomerID()
}

// AddSupplier agrega un proveedor a la lista de referencia.
func (uc *UseCase) AddSupplier(name string) error {
	if name == "" {
		return domain.ErrInvalidInput
	}
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.suppliers = append(uc.suppliers, &entity.Supplier{Name: name})
	uc.flushSuppliers()
	return nil
}

// RemoveSupplier elimina la primera ocurrencia del nombre dado.
func (uc *UseCase) RemoveSupplier(name string) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	for i, s := range uc.suppliers {
		if s.Name == name {
			uc.suppliers = append(uc.suppliers[:i], uc.suppliers[i+1:]...)
			uc.flushSuppliers()
			return nil
		}
	}
	return domain.ErrNotFound
}

// Suppliers lista los proveedores en orden de inserción.
func (uc *UseCase) Suppliers() []*entity.Supplier {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	out := make([]*entity.Supplier, 0, len(uc.suppliers))
	for _, s := range uc.suppliers {
		copied := *s
		out = append(out, &copied)
	}
	return out
}

func (uc *UseCase) nextCustomerID() int {
	next := 1
	for id := range uc.customers {
		if id >= next {
			next = id + 1
		}
	}
	return next
}

func (uc *UseCase) customerSnapshot() []*entity.Customer {
	out := make([]*entity.Customer, 0, len(uc.order))
	for _, id := range uc.order {
		copied := *uc.customers[id]
		out = append(out, &copied)
	}
	return out
}

func (uc *UseCase) flushCustomers() {
	if err := uc.customerRepo.SaveAll(uc.customerSnapshot()); err != nil {
		uc.log.Warn().Err(err).Msg("flush de clientes falló; el estado en memoria sigue vigente")
	}
}

func (uc *UseCase) flushSuppliers() {
	if err := uc.supplierRepo.SaveAll(uc.suppliers); err != nil {
		uc.log.Warn().Err(err).Msg("flush de proveedores falló; el estado en memoria sigue vigente")
	}
}

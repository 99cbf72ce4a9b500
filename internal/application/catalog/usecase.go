// Package catalog implementa el catálogo de artículos: el almacén en memoria
// de Item y el único punto de mutación del stock. Toda reserva y liberación
// del sistema pasa por AdjustStock para que el invariante "stock >= 0" tenga
// un solo punto de aplicación.
package catalog

import (
	"sync"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/supermart-pos/internal/domain"
	"github.com/jhoicas/supermart-pos/internal/domain/entity"
	"github.com/jhoicas/supermart-pos/internal/domain/repository"
	"github.com/jhoicas/supermart-pos/pkg/logger"
)

// UseCase casos de uso del catálogo. El estado en memoria es la fuente de
// verdad de la sesión; cada mutación exitosa dispara un flush best-effort
// al puerto de persistencia.
type UseCase struct {
	mu    sync.Mutex
	items map[int]*entity.Item
	order []int // orden de inserción, para listados y flush estables

	repo repository.ItemRepository
	log  *logger.Logger
}

// NewUseCase construye el catálogo y carga el estado persistido.
func NewUseCase(repo repository.ItemRepository, log *logger.Logger) (*UseCase, error) {
	uc := &UseCase{
		items: make(map[int]*entity.Item),
		repo:  repo,
		log:   log.Component("catalog"),
	}
	loaded, err := repo.LoadAll()
	if err != nil {
		return nil, err
	}
	for _, it := range loaded {
		uc.items[it.ID] = it
		uc.order = append(uc.order, it.ID)
	}
	return uc, nil
}

// AddItem crea un artículo nuevo. El ID lo asigna el caller.
func (uc *UseCase) AddItem(id int, name string, price decimal.Decimal, stock int) (*entity.Item, error) {
	if name == "" || price.IsNegative() || stock < 0 {
		return nil, domain.ErrInvalidInput
	}
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if _, ok := uc.items[id]; ok {
		return nil, domain.ErrDuplicate
	}
	item := &entity.Item{ID: id, Name: name, Price: price, Stock: stock}
	uc.items[id] = item
	uc.order = append(uc.order, id)
	uc.flush()
	return item, nil
}

// RemoveItem elimina el artículo incondicionalmente. No comprueba referencias
// desde facturas abiertas: evitarlo es responsabilidad del caller.
func (uc *UseCase) RemoveItem(id int) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if _, ok := uc.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(uc.items, id)
	for i, oid := range uc.order {
		if oid == id {
			uc.order = append(uc.order[:i], uc.order[i+1:]...)
			break
		}
	}
	uc.flush()
	return nil
}

// Get devuelve una copia del artículo.
func (uc *UseCase) Get(id int) (*entity.Item, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	item, ok := uc.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *item
	return &copied, nil
}

// List devuelve los artículos en orden de inserción.
func (uc *UseCase) List() []*entity.Item {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.snapshot()
}

// AdjustStock aplica stock += delta. Es el único mutador de stock del sistema:
// delta negativo reserva, positivo libera o repone. Si el resultado sería
// negativo, rechaza con ErrInsufficientStock y no toca el estado.
func (uc *UseCase) AdjustStock(id, delta int) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	item, ok := uc.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	if item.Stock+delta < 0 {
		return domain.ErrInsufficientStock
	}
	item.Stock += delta
	uc.flush()
	return nil
}

// SetPrice cambia el precio de venta.
func (uc *UseCase) SetPrice(id int, price decimal.Decimal) error {
	if price.IsNegative() {
		return domain.ErrInvalidInput
	}
	uc.mu.Lock()
	defer uc.mu.Unlock()
	item, ok := uc.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	item.Price = price
	uc.flush()
	return nil
}

// Rename cambia el nombre de presentación.
func (uc *UseCase) Rename(id int, name string) error {
	if name == "" {
		return domain.ErrInvalidInput
	}
	uc.mu.Lock()
	defer uc.mu.Unlock()
	item, ok := uc.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	item.Name = name
	uc.flush()
	return nil
}

// snapshot copia los artículos en orden de inserción. Llamar con el lock tomado.
func (uc *UseCase) snapshot() []*entity.Item {
	out := make([]*entity.Item, 0, len(uc.order))
	for _, id := range uc.order {
		copied := *uc.items[id]
		out = append(out, &copied)
	}
	return out
}

// flush persiste el conjunto completo. Best-effort: un fallo degrada a
// warning y el estado en memoria sigue siendo autoritativo. Llamar con el
// lock tomado.
func (uc *UseCase) flush() {
	if err := uc.repo.SaveAll(uc.snapshot()); err != nil {
		uc.log.Warn().Err(err).Msg("flush de items falló; el estado en memoria sigue vigente")
	}
}

package entity

// Customer representa un cliente de la tienda.
// El ID se asigna de forma monotónica: max(ids existentes)+1, o 1 si no hay.
type Customer struct {
	ID   int
	Name string
}

package entity

// Supplier es dato de referencia puro: solo nombre, sin ID ni vínculo
// con el stock. La lista es de solo-agregar con eliminación por valor.
type Supplier struct {
	Name string
}

// Package flatfile implementa la pasarela de persistencia sobre archivos de
// texto plano, con una sustitución reversible para el delimitador dentro de
// los nombres:
//
//	items.csv      id,name,price,stock
//	customers.csv  id,name
//	suppliers.txt  name
//	sales.txt      log de auditoría, solo-agregar, nunca se relee
//
// Cada flush reescribe el archivo completo (el conjunto en memoria es chico
// y es el modelo del sistema original). Un archivo ausente equivale a un
// almacén vacío.
package flatfile

import "strings"

const (
	delimiter = ","
	// Sustituto del delimitador dentro de los nombres (U+239C, mismo del
	// formato original). El round-trip es sin pérdida mientras los nombres
	// no contengan el propio sustituto.
	escaped = "⎜"
)

func escape(s string) string   { return strings.ReplaceAll(s, delimiter, escaped) }
func unescape(s string) string { return strings.ReplaceAll(s, escaped, delimiter) }

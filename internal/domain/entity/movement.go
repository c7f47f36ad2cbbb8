package entity

import "time"

// Tipos de movimiento de stock.
const (
	MovementTypeIN  = "IN"  // entrada
	MovementTypeOUT = "OUT" // salida
)

// Movement es un registro inmutable del libro de movimientos (solo inserción).
// Quantity siempre es positiva; el sentido lo da Type.
type Movement struct {
	ID        string // uuid v7: ordenable por inserción
	ProductID string
	Type      string
	Quantity  int
	Date      time.Time
	Note      string
}

// Signed devuelve la cantidad con signo (negativa en salidas).
func (m *Movement) Signed() int {
	if m.Type == MovementTypeOUT {
		return -m.Quantity
	}
	return m.Quantity
}

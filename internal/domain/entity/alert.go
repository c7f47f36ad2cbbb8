package entity

import "time"

// Tipos de alerta.
// OUT_OF_STOCK y EXPIRED están reservados: ningún escaneo los genera, solo la creación manual.
const (
	AlertTypeNearExpiry = "NEAR_EXPIRY"
	AlertTypeLowStock   = "LOW_STOCK"
	AlertTypeOutOfStock = "OUT_OF_STOCK"
	AlertTypeExpired    = "EXPIRED"
)

// ValidAlertType indica si t es un tipo de alerta conocido.
func ValidAlertType(t string) bool {
	switch t {
	case AlertTypeNearExpiry, AlertTypeLowStock, AlertTypeOutOfStock, AlertTypeExpired:
		return true
	}
	return false
}

// Alert representa una alerta sobre un producto. Nace sin resolver y se marca resuelta
// explícitamente; el núcleo nunca la borra.
type Alert struct {
	ID         string
	ProductID  string
	Type       string
	Message    string
	CreatedAt  time.Time
	ResolvedAt *time.Time
	Resolved   bool
}

// MarkResolved marca la alerta como resuelta en at. Si ya estaba resuelta, vuelve a sellar la fecha.
func (a *Alert) MarkResolved(at time.Time) {
	a.Resolved = true
	a.ResolvedAt = &at
}

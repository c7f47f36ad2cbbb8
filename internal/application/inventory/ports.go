package inventory

import (
	"context"

	"github.com/jhoicas/prateleira-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza atomicidad para el libro de movimientos: si fn devuelve error no queda nada persistido.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		movRepo repository.MovementRepository,
	) error) error
}

// MovementMetrics recibe los movimientos registrados con éxito (Prometheus en producción).
type MovementMetrics interface {
	MovementRegistered(movementType string, quantity int)
}

type nopMetrics struct{}

func (nopMetrics) MovementRegistered(string, int) {}

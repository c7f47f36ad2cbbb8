package repository

import (
	"context"

	"github.com/jhoicas/prateleira-api/internal/domain/entity"
)

// MovementRepository define el puerto de persistencia del libro de movimientos (solo inserción).
type MovementRepository interface {
	Create(ctx context.Context, movement *entity.Movement) error
	// ListByProduct devuelve los movimientos del producto, más recientes primero (fecha DESC, id DESC).
	ListByProduct(ctx context.Context, productID string) ([]*entity.Movement, error)
}

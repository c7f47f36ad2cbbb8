package repository

import (
	"context"

	"github.com/jhoicas/prateleira-api/internal/domain/entity"
)

// AlertRepository define el puerto de persistencia para Alert.
type AlertRepository interface {
	Create(ctx context.Context, alert *entity.Alert) error
	GetByID(ctx context.Context, id string) (*entity.Alert, error)
	// FindUnresolved devuelve la alerta sin resolver del par (producto, tipo) o nil.
	FindUnresolved(ctx context.Context, productID, alertType string) (*entity.Alert, error)
	// Update persiste Resolved y ResolvedAt.
	Update(ctx context.Context, alert *entity.Alert) error
	// ListUnresolved ordena por fecha de creación DESC.
	ListUnresolved(ctx context.Context) ([]*entity.Alert, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Alert, error)
}

package repository

import (
	"context"

	"github.com/jhoicas/prateleira-api/internal/domain/entity"
)

// ShelfRepository define el puerto de persistencia para Shelf (DIP).
type ShelfRepository interface {
	Create(ctx context.Context, shelf *entity.Shelf) error
	GetByID(ctx context.Context, id string) (*entity.Shelf, error)
	Update(ctx context.Context, shelf *entity.Shelf) error
	List(ctx context.Context, limit, offset int) ([]*entity.Shelf, error)
	Delete(ctx context.Context, id string) error
}

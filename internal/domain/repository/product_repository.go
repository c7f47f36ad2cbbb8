package repository

import (
	"context"
	"time"

	"github.com/jhoicas/prateleira-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// Las implementaciones devuelven (nil, nil) cuando el producto no existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// GetForUpdate bloquea la fila del producto hasta el fin de la transacción (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	// UpdateQuantity fija el stock disponible; solo lo usa el libro de movimientos.
	UpdateQuantity(ctx context.Context, id string, quantity int) error
	List(ctx context.Context, limit, offset int) ([]*entity.Product, error)
	Delete(ctx context.Context, id string) error

	// ListExpiringBetween devuelve productos con vencimiento en (from, to].
	ListExpiringBetween(ctx context.Context, from, to time.Time) ([]*entity.Product, error)
	// ListAtOrBelowQuantity devuelve productos con stock <= threshold.
	ListAtOrBelowQuantity(ctx context.Context, threshold int) ([]*entity.Product, error)
	// CountByShelf cuenta los productos que referencian la estantería.
	CountByShelf(ctx context.Context, shelfID string) (int, error)
}

package inventory

import (
	"context"

	"github.com/jhoicas/prateleira-api/internal/domain"
	"github.com/jhoicas/prateleira-api/internal/domain/inventory"
	"github.com/jhoicas/prateleira-api/internal/domain/repository"
)

// ShelfCapacityUseCase verifica si una estantería admite un producto más. Solo lectura.
type ShelfCapacityUseCase struct {
	shelfRepo   repository.ShelfRepository
	productRepo repository.ProductRepository
}

// NewShelfCapacityUseCase construye el caso de uso.
func NewShelfCapacityUseCase(shelfRepo repository.ShelfRepository, productRepo repository.ProductRepository) *ShelfCapacityUseCase {
	return &ShelfCapacityUseCase{shelfRepo: shelfRepo, productRepo: productRepo}
}

// HasAvailableSpace devuelve true si los productos en la estantería son menos que su capacidad máxima.
func (uc *ShelfCapacityUseCase) HasAvailableSpace(ctx context.Context, shelfID string) (bool, error) {
	shelf, err := uc.shelfRepo.GetByID(ctx, shelfID)
	if err != nil {
		return false, err
	}
	if shelf == nil {
		return false, domain.ErrNotFound
	}
	occupied, err := uc.productRepo.CountByShelf(ctx, shelfID)
	if err != nil {
		return false, err
	}
	return inventory.HasSpace(occupied, shelf.MaxCapacity), nil
}

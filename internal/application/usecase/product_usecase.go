package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/prateleira-api/internal/application/dto"
	"github.com/jhoicas/prateleira-api/internal/domain"
	"github.com/jhoicas/prateleira-api/internal/domain/entity"
	"github.com/jhoicas/prateleira-api/internal/domain/repository"
)

// SpaceChecker verifica la capacidad de una estantería antes de asignarle un producto.
type SpaceChecker interface {
	HasAvailableSpace(ctx context.Context, shelfID string) (bool, error)
}

// ProductUseCase casos de uso CRUD para productos. Quantity se maneja vía movimientos.
type ProductUseCase struct {
	repo         repository.ProductRepository
	categoryRepo repository.CategoryRepository
	space        SpaceChecker
	now          func() time.Time
}

// ProductOption configura el caso de uso.
type ProductOption func(*ProductUseCase)

// WithProductClock reemplaza el reloj (tests).
func WithProductClock(now func() time.Time) ProductOption {
	return func(uc *ProductUseCase) { uc.now = now }
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, categoryRepo repository.CategoryRepository, space SpaceChecker, opts ...ProductOption) *ProductUseCase {
	uc := &ProductUseCase{repo: repo, categoryRepo: categoryRepo, space: space, now: time.Now}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Create crea un nuevo producto con stock 0; el stock inicial se registra como entrada.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Name == "" || in.Price.IsNegative() || in.MinQuantity < 0 {
		return nil, domain.ErrInvalidInput
	}
	categoryIDs, err := uc.resolveCategories(ctx, in.CategoryIDs)
	if err != nil {
		return nil, err
	}
	shelfID := normalizeShelf(in.ShelfID)
	if shelfID != nil {
		if err := uc.ensureSpace(ctx, *shelfID); err != nil {
			return nil, err
		}
	}
	now := uc.now()
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generar id de producto: %w", err)
	}
	product := &entity.Product{
		ID:          id.String(),
		Name:        in.Name,
		Description: in.Description,
		Barcode:     in.Barcode,
		ExpiresAt:   in.ExpiresAt,
		Price:       in.Price,
		MinQuantity: in.MinQuantity,
		ShelfID:     shelfID,
		CategoryIDs: categoryIDs,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// Update actualiza un producto. No permite modificar Quantity.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Barcode != nil {
		product.Barcode = *in.Barcode
	}
	switch {
	case in.ClearExpiry && in.ExpiresAt != nil:
		return nil, domain.ErrInvalidInput
	case in.ClearExpiry:
		product.ExpiresAt = nil
	case in.ExpiresAt != nil:
		product.ExpiresAt = in.ExpiresAt
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.Price = *in.Price
	}
	if in.MinQuantity != nil {
		if *in.MinQuantity < 0 {
			return nil, domain.ErrInvalidInput
		}
		product.MinQuantity = *in.MinQuantity
	}
	if in.ShelfID != nil {
		next := normalizeShelf(in.ShelfID)
		if next != nil && (product.ShelfID == nil || *product.ShelfID != *next) {
			if err := uc.ensureSpace(ctx, *next); err != nil {
				return nil, err
			}
		}
		product.ShelfID = next
	}
	if in.CategoryIDs != nil {
		ids, err := uc.resolveCategories(ctx, in.CategoryIDs)
		if err != nil {
			return nil, err
		}
		product.CategoryIDs = ids
	}
	product.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List lista productos con paginación.
func (uc *ProductUseCase) List(ctx context.Context, limit, offset int) (*dto.ProductListResponse, error) {
	list, err := uc.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	return &dto.ProductListResponse{
		Items: toProductResponses(list),
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// ListLowStock lista productos con stock <= threshold.
func (uc *ProductUseCase) ListLowStock(ctx context.Context, threshold int) ([]dto.ProductResponse, error) {
	if threshold < 0 {
		return nil, domain.ErrInvalidInput
	}
	list, err := uc.repo.ListAtOrBelowQuantity(ctx, threshold)
	if err != nil {
		return nil, err
	}
	return toProductResponses(list), nil
}

// ListNearExpiry lista productos que vencen en los próximos days días.
func (uc *ProductUseCase) ListNearExpiry(ctx context.Context, days int) ([]dto.ProductResponse, error) {
	if days <= 0 {
		return nil, domain.ErrInvalidInput
	}
	now := uc.now()
	list, err := uc.repo.ListExpiringBetween(ctx, now, now.AddDate(0, 0, days))
	if err != nil {
		return nil, err
	}
	return toProductResponses(list), nil
}

// Delete elimina un producto por ID junto con sus movimientos y alertas.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(ctx, id)
}

func (uc *ProductUseCase) ensureSpace(ctx context.Context, shelfID string) error {
	ok, err := uc.space.HasAvailableSpace(ctx, shelfID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrConflict
	}
	return nil
}

// resolveCategories deduplica los ids y exige que todos existan.
func (uc *ProductUseCase) resolveCategories(ctx context.Context, ids []string) ([]string, error) {
	seen := make(map[string]struct{}, len(ids))
	unique := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			return nil, domain.ErrInvalidInput
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	if len(unique) == 0 {
		return unique, nil
	}
	found, err := uc.categoryRepo.GetByIDs(ctx, unique)
	if err != nil {
		return nil, err
	}
	if len(found) != len(unique) {
		return nil, domain.ErrNotFound
	}
	return unique, nil
}

func normalizeShelf(id *string) *string {
	if id == nil || *id == "" {
		return nil
	}
	s := *id
	return &s
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	categoryIDs := p.CategoryIDs
	if categoryIDs == nil {
		categoryIDs = []string{}
	}
	return &dto.ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Barcode:     p.Barcode,
		ExpiresAt:   p.ExpiresAt,
		Price:       p.Price,
		Quantity:    p.Quantity,
		MinQuantity: p.MinQuantity,
		ShelfID:     p.ShelfID,
		CategoryIDs: categoryIDs,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func toProductResponses(list []*entity.Product) []dto.ProductResponse {
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return items
}

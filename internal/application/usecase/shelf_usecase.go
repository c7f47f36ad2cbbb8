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

// ShelfUseCase casos de uso CRUD para estanterías.
type ShelfUseCase struct {
	repo repository.ShelfRepository
}

// NewShelfUseCase construye el caso de uso.
func NewShelfUseCase(repo repository.ShelfRepository) *ShelfUseCase {
	return &ShelfUseCase{repo: repo}
}

// Create crea una nueva estantería.
func (uc *ShelfUseCase) Create(ctx context.Context, in dto.CreateShelfRequest) (*dto.ShelfResponse, error) {
	if in.Name == "" || in.MaxCapacity < 0 {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generar id de estantería: %w", err)
	}
	shelf := &entity.Shelf{
		ID:          id.String(),
		Name:        in.Name,
		Location:    in.Location,
		MaxCapacity: in.MaxCapacity,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, shelf); err != nil {
		return nil, err
	}
	return toShelfResponse(shelf), nil
}

// GetByID obtiene una estantería por ID.
func (uc *ShelfUseCase) GetByID(ctx context.Context, id string) (*dto.ShelfResponse, error) {
	shelf, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if shelf == nil {
		return nil, domain.ErrNotFound
	}
	return toShelfResponse(shelf), nil
}

// Update actualiza una estantería. Reducir la capacidad no reubica productos.
func (uc *ShelfUseCase) Update(ctx context.Context, id string, in dto.UpdateShelfRequest) (*dto.ShelfResponse, error) {
	shelf, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if shelf == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		shelf.Name = *in.Name
	}
	if in.Location != nil {
		shelf.Location = *in.Location
	}
	if in.MaxCapacity != nil {
		if *in.MaxCapacity < 0 {
			return nil, domain.ErrInvalidInput
		}
		shelf.MaxCapacity = *in.MaxCapacity
	}
	shelf.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, shelf); err != nil {
		return nil, err
	}
	return toShelfResponse(shelf), nil
}

// List lista estanterías con paginación.
func (uc *ShelfUseCase) List(ctx context.Context, limit, offset int) (*dto.ShelfListResponse, error) {
	list, err := uc.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ShelfResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toShelfResponse(s))
	}
	return &dto.ShelfListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete elimina una estantería; sus productos quedan sin asignar.
func (uc *ShelfUseCase) Delete(ctx context.Context, id string) error {
	shelf, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if shelf == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(ctx, id)
}

func toShelfResponse(s *entity.Shelf) *dto.ShelfResponse {
	if s == nil {
		return nil
	}
	return &dto.ShelfResponse{
		ID:          s.ID,
		Name:        s.Name,
		Location:    s.Location,
		MaxCapacity: s.MaxCapacity,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

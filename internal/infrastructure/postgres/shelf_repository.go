package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/prateleira-api/internal/domain"
	"github.com/jhoicas/prateleira-api/internal/domain/entity"
	"github.com/jhoicas/prateleira-api/internal/domain/repository"
)

var _ repository.ShelfRepository = (*ShelfRepo)(nil)

// ShelfRepo implementación del puerto ShelfRepository sobre PostgreSQL.
type ShelfRepo struct {
	q Querier
}

// NewShelfRepository construye el adaptador de persistencia para estanterías.
func NewShelfRepository(q Querier) *ShelfRepo {
	return &ShelfRepo{q: q}
}

// Create persiste una nueva estantería.
func (r *ShelfRepo) Create(ctx context.Context, shelf *entity.Shelf) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO shelves (id, name, location, max_capacity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		shelf.ID, shelf.Name, shelf.Location, shelf.MaxCapacity, shelf.CreatedAt, shelf.UpdatedAt,
	)
	if err != nil {
		return mapError("insert shelf", err)
	}
	return nil
}

// GetByID obtiene una estantería por ID.
func (r *ShelfRepo) GetByID(ctx context.Context, id string) (*entity.Shelf, error) {
	var s entity.Shelf
	err := r.q.QueryRow(ctx, `
		SELECT id, name, location, max_capacity, created_at, updated_at
		FROM shelves WHERE id = $1`, id).Scan(
		&s.ID, &s.Name, &s.Location, &s.MaxCapacity, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get shelf: %w", err)
	}
	return &s, nil
}

// Update actualiza una estantería existente.
func (r *ShelfRepo) Update(ctx context.Context, shelf *entity.Shelf) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE shelves SET name = $2, location = $3, max_capacity = $4, updated_at = $5
		WHERE id = $1`,
		shelf.ID, shelf.Name, shelf.Location, shelf.MaxCapacity, shelf.UpdatedAt,
	)
	if err != nil {
		return mapError("update shelf", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista estanterías con paginación.
func (r *ShelfRepo) List(ctx context.Context, limit, offset int) ([]*entity.Shelf, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, name, location, max_capacity, created_at, updated_at
		FROM shelves ORDER BY created_at DESC, id DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list shelves: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Shelf, 0)
	for rows.Next() {
		var s entity.Shelf
		if err := rows.Scan(&s.ID, &s.Name, &s.Location, &s.MaxCapacity, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan shelf: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// Delete elimina una estantería; products.shelf_id queda en NULL (ON DELETE SET NULL).
func (r *ShelfRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM shelves WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete shelf: %w", err)
	}
	return nil
}

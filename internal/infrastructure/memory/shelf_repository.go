package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/prateleira-api/internal/domain"
	"github.com/jhoicas/prateleira-api/internal/domain/entity"
	"github.com/jhoicas/prateleira-api/internal/domain/repository"
)

var _ repository.ShelfRepository = (*ShelfRepo)(nil)

// ShelfRepo implementación en memoria de ShelfRepository.
type ShelfRepo struct {
	s *Store
}

// NewShelfRepository construye el repositorio sobre el store.
func NewShelfRepository(s *Store) *ShelfRepo {
	return &ShelfRepo{s: s}
}

func (r *ShelfRepo) Create(_ context.Context, shelf *entity.Shelf) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.shelves[shelf.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.shelves[shelf.ID] = cloneShelf(shelf)
	return nil
}

func (r *ShelfRepo) GetByID(_ context.Context, id string) (*entity.Shelf, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return cloneShelf(r.s.shelves[id]), nil
}

func (r *ShelfRepo) Update(_ context.Context, shelf *entity.Shelf) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	current, ok := r.s.shelves[shelf.ID]
	if !ok {
		return domain.ErrNotFound
	}
	next := cloneShelf(shelf)
	next.CreatedAt = current.CreatedAt
	r.s.shelves[shelf.ID] = next
	return nil
}

func (r *ShelfRepo) List(_ context.Context, limit, offset int) ([]*entity.Shelf, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	list := make([]*entity.Shelf, 0, len(r.s.shelves))
	for _, s := range r.s.shelves {
		list = append(list, cloneShelf(s))
	}
	sort.Slice(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.After(list[j].CreatedAt)
		}
		return list[i].ID > list[j].ID
	})
	return paginate(list, limit, offset), nil
}

// Delete elimina la estantería; los productos quedan sin asignar (ON DELETE SET NULL).
func (r *ShelfRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.shelves, id)
	for _, p := range r.s.products {
		if p.ShelfID != nil && *p.ShelfID == id {
			p.ShelfID = nil
		}
	}
	return nil
}

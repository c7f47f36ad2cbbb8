package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/prateleira-api/internal/domain"
	"github.com/jhoicas/prateleira-api/internal/domain/entity"
	"github.com/jhoicas/prateleira-api/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo implementación en memoria de CategoryRepository.
type CategoryRepo struct {
	s *Store
}

// NewCategoryRepository construye el repositorio sobre el store.
func NewCategoryRepository(s *Store) *CategoryRepo {
	return &CategoryRepo{s: s}
}

func (r *CategoryRepo) Create(_ context.Context, category *entity.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.categories[category.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.categories[category.ID] = cloneCategory(category)
	return nil
}

func (r *CategoryRepo) GetByID(_ context.Context, id string) (*entity.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return cloneCategory(r.s.categories[id]), nil
}

func (r *CategoryRepo) GetByIDs(_ context.Context, ids []string) ([]*entity.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	list := []*entity.Category{}
	for _, id := range ids {
		if c, ok := r.s.categories[id]; ok {
			list = append(list, cloneCategory(c))
		}
	}
	return list, nil
}

func (r *CategoryRepo) Update(_ context.Context, category *entity.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	current, ok := r.s.categories[category.ID]
	if !ok {
		return domain.ErrNotFound
	}
	next := cloneCategory(category)
	next.CreatedAt = current.CreatedAt
	r.s.categories[category.ID] = next
	return nil
}

func (r *CategoryRepo) List(_ context.Context, limit, offset int) ([]*entity.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	list := make([]*entity.Category, 0, len(r.s.categories))
	for _, c := range r.s.categories {
		list = append(list, cloneCategory(c))
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return paginate(list, limit, offset), nil
}

// Delete elimina la categoría y sus asociaciones con productos.
func (r *CategoryRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.categories, id)
	for _, p := range r.s.products {
		kept := p.CategoryIDs[:0]
		for _, cid := range p.CategoryIDs {
			if cid != id {
				kept = append(kept, cid)
			}
		}
		p.CategoryIDs = kept
	}
	return nil
}

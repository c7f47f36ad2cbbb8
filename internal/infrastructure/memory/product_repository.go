package memory

import (
	"context"
	"time"

	"github.com/jhoicas/prateleira-api/internal/domain"
	"github.com/jhoicas/prateleira-api/internal/domain/entity"
	"github.com/jhoicas/prateleira-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación en memoria de ProductRepository.
type ProductRepo struct {
	s  *Store
	tx *txLog
}

// NewProductRepository construye el repositorio sobre el store.
func NewProductRepository(s *Store) *ProductRepo {
	return &ProductRepo{s: s}
}

// validateRefs emula las FK de shelf_id y product_categories.
func (r *ProductRepo) validateRefs(p *entity.Product) error {
	if p.ShelfID != nil {
		if _, ok := r.s.shelves[*p.ShelfID]; !ok {
			return domain.ErrNotFound
		}
	}
	for _, id := range p.CategoryIDs {
		if _, ok := r.s.categories[id]; !ok {
			return domain.ErrNotFound
		}
	}
	return nil
}

func (r *ProductRepo) barcodeTaken(p *entity.Product) bool {
	if p.Barcode == "" {
		return false
	}
	for _, other := range r.s.products {
		if other.ID != p.ID && other.Barcode == p.Barcode {
			return true
		}
	}
	return false
}

func (r *ProductRepo) Create(_ context.Context, product *entity.Product) error {
	defer r.s.guard(r.tx, true)()
	if _, ok := r.s.products[product.ID]; ok {
		return domain.ErrDuplicate
	}
	if product.Quantity < 0 {
		return domain.ErrInvalidInput
	}
	if r.barcodeTaken(product) {
		return domain.ErrDuplicate
	}
	if err := r.validateRefs(product); err != nil {
		return err
	}
	r.s.products[product.ID] = cloneProduct(product)
	id := product.ID
	r.tx.record(func() { delete(r.s.products, id) })
	return nil
}

func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	defer r.s.guard(r.tx, false)()
	return cloneProduct(r.s.products[id]), nil
}

// GetForUpdate: dentro de una tx el lock exclusivo del store ya serializa el acceso a la fila.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *ProductRepo) Update(_ context.Context, product *entity.Product) error {
	defer r.s.guard(r.tx, true)()
	current, ok := r.s.products[product.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if r.barcodeTaken(product) {
		return domain.ErrDuplicate
	}
	if err := r.validateRefs(product); err != nil {
		return err
	}
	next := cloneProduct(product)
	next.Quantity = current.Quantity // el stock solo cambia vía movimientos
	next.CreatedAt = current.CreatedAt
	r.s.products[product.ID] = next
	r.tx.record(func() { r.s.products[current.ID] = current })
	return nil
}

func (r *ProductRepo) UpdateQuantity(_ context.Context, id string, quantity int) error {
	defer r.s.guard(r.tx, true)()
	current, ok := r.s.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	if quantity < 0 {
		return domain.ErrInsufficientStock
	}
	prevQty, prevAt := current.Quantity, current.UpdatedAt
	current.Quantity = quantity
	current.UpdatedAt = time.Now()
	r.tx.record(func() { current.Quantity, current.UpdatedAt = prevQty, prevAt })
	return nil
}

func (r *ProductRepo) List(_ context.Context, limit, offset int) ([]*entity.Product, error) {
	defer r.s.guard(r.tx, false)()
	list := make([]*entity.Product, 0, len(r.s.products))
	for _, p := range r.s.products {
		list = append(list, cloneProduct(p))
	}
	sortProducts(list)
	return paginate(list, limit, offset), nil
}

func (r *ProductRepo) Delete(_ context.Context, id string) error {
	defer r.s.guard(r.tx, true)()
	delete(r.s.products, id)
	// ON DELETE CASCADE sobre movimientos y alertas
	kept := r.s.movements[:0]
	for _, m := range r.s.movements {
		if m.ProductID != id {
			kept = append(kept, m)
		}
	}
	r.s.movements = kept
	for aid, a := range r.s.alerts {
		if a.ProductID == id {
			delete(r.s.alerts, aid)
		}
	}
	return nil
}

func (r *ProductRepo) ListExpiringBetween(_ context.Context, from, to time.Time) ([]*entity.Product, error) {
	defer r.s.guard(r.tx, false)()
	var list []*entity.Product
	for _, p := range r.s.products {
		if p.ExpiresAt == nil {
			continue
		}
		if p.ExpiresAt.After(from) && !p.ExpiresAt.After(to) {
			list = append(list, cloneProduct(p))
		}
	}
	sortProducts(list)
	return list, nil
}

func (r *ProductRepo) ListAtOrBelowQuantity(_ context.Context, threshold int) ([]*entity.Product, error) {
	defer r.s.guard(r.tx, false)()
	var list []*entity.Product
	for _, p := range r.s.products {
		if p.Quantity <= threshold {
			list = append(list, cloneProduct(p))
		}
	}
	sortProducts(list)
	return list, nil
}

func (r *ProductRepo) CountByShelf(_ context.Context, shelfID string) (int, error) {
	defer r.s.guard(r.tx, false)()
	n := 0
	for _, p := range r.s.products {
		if p.ShelfID != nil && *p.ShelfID == shelfID {
			n++
		}
	}
	return n, nil
}

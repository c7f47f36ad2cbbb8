package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/prateleira-api/internal/domain"
	"github.com/jhoicas/prateleira-api/internal/domain/entity"
	"github.com/jhoicas/prateleira-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación en memoria del libro de movimientos.
type MovementRepo struct {
	s  *Store
	tx *txLog
}

// NewMovementRepository construye el repositorio sobre el store.
func NewMovementRepository(s *Store) *MovementRepo {
	return &MovementRepo{s: s}
}

func (r *MovementRepo) Create(_ context.Context, movement *entity.Movement) error {
	defer r.s.guard(r.tx, true)()
	if _, ok := r.s.products[movement.ProductID]; !ok {
		return domain.ErrNotFound
	}
	r.s.movements = append(r.s.movements, cloneMovement(movement))
	n := len(r.s.movements) - 1
	r.tx.record(func() { r.s.movements = r.s.movements[:n] })
	return nil
}

func (r *MovementRepo) ListByProduct(_ context.Context, productID string) ([]*entity.Movement, error) {
	defer r.s.guard(r.tx, false)()
	list := []*entity.Movement{}
	for _, m := range r.s.movements {
		if m.ProductID == productID {
			list = append(list, cloneMovement(m))
		}
	}
	sort.SliceStable(list, func(i, j int) bool {
		if !list[i].Date.Equal(list[j].Date) {
			return list[i].Date.After(list[j].Date)
		}
		return list[i].ID > list[j].ID
	})
	return list, nil
}

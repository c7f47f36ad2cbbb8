package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/prateleira-api/internal/domain/entity"
	"github.com/jhoicas/prateleira-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación sobre PostgreSQL (usable con pool o tx).
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create persiste un movimiento. El libro es solo inserción.
func (r *MovementRepo) Create(ctx context.Context, movement *entity.Movement) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO movements (id, product_id, type, quantity, date, note)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		movement.ID, movement.ProductID, movement.Type, movement.Quantity, movement.Date, movement.Note,
	)
	if err != nil {
		return mapError("create movement", err)
	}
	return nil
}

// ListByProduct lista los movimientos del producto, más recientes primero.
func (r *MovementRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.Movement, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, product_id, type, quantity, date, note
		FROM movements WHERE product_id = $1
		ORDER BY date DESC, id DESC`, productID)
	if err != nil {
		return nil, fmt.Errorf("list movements by product: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Movement, 0)
	for rows.Next() {
		var m entity.Movement
		if err := rows.Scan(&m.ID, &m.ProductID, &m.Type, &m.Quantity, &m.Date, &m.Note); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

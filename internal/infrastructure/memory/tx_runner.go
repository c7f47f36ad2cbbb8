package memory

import (
	"context"

	"github.com/jhoicas/prateleira-api/internal/application/inventory"
	"github.com/jhoicas/prateleira-api/internal/domain/repository"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks con el store bloqueado en exclusiva.
// Si fn falla, aplica en orden inverso las compensaciones registradas (rollback).
type TxRunner struct {
	s *Store
}

// NewTxRunner construye el runner sobre el store.
func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{s: s}
}

// Run serializa todas las transacciones del store (más estricto que el bloqueo por fila de PostgreSQL).
func (r *TxRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	movRepo repository.MovementRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	log := &txLog{}
	productRepo := &ProductRepo{s: r.s, tx: log}
	movRepo := &MovementRepo{s: r.s, tx: log}

	if err := fn(productRepo, movRepo); err != nil {
		log.rollback()
		return err
	}
	return nil
}

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

var _ repository.AlertRepository = (*AlertRepo)(nil)

const alertColumns = `id, product_id, type, message, created_at, resolved_at, resolved`

// AlertRepo implementación del puerto AlertRepository sobre PostgreSQL.
type AlertRepo struct {
	q Querier
}

// NewAlertRepository construye el adaptador de persistencia para alertas.
func NewAlertRepository(q Querier) *AlertRepo {
	return &AlertRepo{q: q}
}

// Create persiste una nueva alerta.
func (r *AlertRepo) Create(ctx context.Context, alert *entity.Alert) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO alerts (id, product_id, type, message, created_at, resolved_at, resolved)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		alert.ID, alert.ProductID, alert.Type, alert.Message, alert.CreatedAt, alert.ResolvedAt, alert.Resolved,
	)
	if err != nil {
		return mapError("insert alert", err)
	}
	return nil
}

// GetByID obtiene una alerta por ID.
func (r *AlertRepo) GetByID(ctx context.Context, id string) (*entity.Alert, error) {
	return r.one(ctx, `SELECT `+alertColumns+` FROM alerts WHERE id = $1`, id)
}

// FindUnresolved devuelve la alerta abierta más reciente del par (producto, tipo).
func (r *AlertRepo) FindUnresolved(ctx context.Context, productID, alertType string) (*entity.Alert, error) {
	return r.one(ctx, `
		SELECT `+alertColumns+` FROM alerts
		WHERE product_id = $1 AND type = $2 AND NOT resolved
		ORDER BY created_at DESC, id DESC LIMIT 1`, productID, alertType)
}

// Update persiste el estado de resolución.
func (r *AlertRepo) Update(ctx context.Context, alert *entity.Alert) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE alerts SET resolved = $2, resolved_at = $3 WHERE id = $1`,
		alert.ID, alert.Resolved, alert.ResolvedAt,
	)
	if err != nil {
		return fmt.Errorf("update alert: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListUnresolved lista las alertas abiertas, más recientes primero.
func (r *AlertRepo) ListUnresolved(ctx context.Context) ([]*entity.Alert, error) {
	return r.list(ctx, `SELECT `+alertColumns+` FROM alerts WHERE NOT resolved ORDER BY created_at DESC, id DESC`)
}

// List lista todas las alertas con paginación.
func (r *AlertRepo) List(ctx context.Context, limit, offset int) ([]*entity.Alert, error) {
	return r.list(ctx, `SELECT `+alertColumns+` FROM alerts ORDER BY created_at DESC, id DESC LIMIT $1 OFFSET $2`, limit, offset)
}

func (r *AlertRepo) one(ctx context.Context, query string, args ...any) (*entity.Alert, error) {
	var a entity.Alert
	err := r.q.QueryRow(ctx, query, args...).Scan(
		&a.ID, &a.ProductID, &a.Type, &a.Message, &a.CreatedAt, &a.ResolvedAt, &a.Resolved,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get alert: %w", err)
	}
	return &a, nil
}

func (r *AlertRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Alert, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list alerts: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Alert, 0)
	for rows.Next() {
		var a entity.Alert
		if err := rows.Scan(&a.ID, &a.ProductID, &a.Type, &a.Message, &a.CreatedAt, &a.ResolvedAt, &a.Resolved); err != nil {
			return nil, fmt.Errorf("scan alert: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/prateleira-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para el dashboard de inventario.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// GetStockTotals usa COALESCE para devolver cero con el catálogo vacío.
func (r *AnalyticsRepo) GetStockTotals(ctx context.Context) (repository.StockTotals, error) {
	const query = `
	SELECT
	    COUNT(*)                                     AS products,
	    COALESCE(SUM(quantity), 0)                   AS units,
	    COALESCE(SUM(price * quantity), 0)           AS stock_value,
	    COUNT(*) FILTER (WHERE quantity = 0)         AS out_of_stock
	FROM products`

	var t repository.StockTotals
	if err := r.q.QueryRow(ctx, query).Scan(&t.Products, &t.Units, &t.StockValue, &t.OutOfStock); err != nil {
		return repository.StockTotals{}, fmt.Errorf("analytics.GetStockTotals: %w", err)
	}
	return t, nil
}

// GetMovementTotals suma entradas y salidas del período.
func (r *AnalyticsRepo) GetMovementTotals(ctx context.Context, from, to time.Time) (repository.MovementTotals, error) {
	const query = `
	SELECT
	    COALESCE(SUM(quantity) FILTER (WHERE type = 'IN'),  0) AS inbound_units,
	    COALESCE(SUM(quantity) FILTER (WHERE type = 'OUT'), 0) AS outbound_units,
	    COUNT(*)                                               AS movements
	FROM movements
	WHERE date BETWEEN $1 AND $2`

	var t repository.MovementTotals
	if err := r.q.QueryRow(ctx, query, from, to).Scan(&t.InboundUnits, &t.OutboundUnits, &t.Movements); err != nil {
		return repository.MovementTotals{}, fmt.Errorf("analytics.GetMovementTotals: %w", err)
	}
	return t, nil
}

// GetTopMovers devuelve los productos con más salidas; empates por nombre.
func (r *AnalyticsRepo) GetTopMovers(ctx context.Context, from, to time.Time, limit int) ([]repository.TopMoverResult, error) {
	const query = `
	SELECT
	    p.id,
	    p.name,
	    SUM(m.quantity) AS outbound_units,
	    p.quantity      AS on_hand
	FROM movements m
	JOIN products  p ON p.id = m.product_id
	WHERE m.type = 'OUT'
	  AND m.date BETWEEN $1 AND $2
	GROUP BY p.id, p.name, p.quantity
	ORDER BY outbound_units DESC, p.name
	LIMIT $3`

	rows, err := r.q.Query(ctx, query, from, to, limit)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetTopMovers: %w", err)
	}
	defer rows.Close()

	results := []repository.TopMoverResult{}
	for rows.Next() {
		var row repository.TopMoverResult
		if err := rows.Scan(&row.ProductID, &row.ProductName, &row.OutboundUnits, &row.OnHand); err != nil {
			return nil, fmt.Errorf("analytics.GetTopMovers scan: %w", err)
		}
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("analytics.GetTopMovers rows: %w", err)
	}
	return results, nil
}

// GetShelfOccupancy cuenta productos por estantería, incluidas las vacías.
func (r *AnalyticsRepo) GetShelfOccupancy(ctx context.Context) ([]repository.ShelfOccupancyResult, error) {
	const query = `
	SELECT s.id, s.name, COUNT(p.id) AS occupied, s.max_capacity
	FROM shelves s
	LEFT JOIN products p ON p.shelf_id = s.id
	GROUP BY s.id, s.name, s.max_capacity
	ORDER BY s.name, s.id`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetShelfOccupancy: %w", err)
	}
	defer rows.Close()

	results := []repository.ShelfOccupancyResult{}
	for rows.Next() {
		var row repository.ShelfOccupancyResult
		if err := rows.Scan(&row.ShelfID, &row.ShelfName, &row.Occupied, &row.MaxCapacity); err != nil {
			return nil, fmt.Errorf("analytics.GetShelfOccupancy scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// GetProductsBelowMinimum lista los productos que alcanzaron su mínimo.
func (r *AnalyticsRepo) GetProductsBelowMinimum(ctx context.Context) ([]repository.ReplenishmentItem, error) {
	const query = `
	SELECT id, name, quantity, min_quantity, price
	FROM products
	WHERE min_quantity > 0
	  AND quantity <= min_quantity
	ORDER BY (min_quantity - quantity) DESC, name`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetProductsBelowMinimum: %w", err)
	}
	defer rows.Close()

	results := []repository.ReplenishmentItem{}
	for rows.Next() {
		var row repository.ReplenishmentItem
		if err := rows.Scan(&row.ProductID, &row.ProductName, &row.Quantity, &row.MinQuantity, &row.Price); err != nil {
			return nil, fmt.Errorf("analytics.GetProductsBelowMinimum scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// GetOutboundByProduct suma salidas por producto en el período.
func (r *AnalyticsRepo) GetOutboundByProduct(ctx context.Context, from, to time.Time) (map[string]int, error) {
	rows, err := r.q.Query(ctx, `
		SELECT product_id, SUM(quantity)
		FROM movements
		WHERE type = 'OUT' AND date BETWEEN $1 AND $2
		GROUP BY product_id`, from, to)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetOutboundByProduct: %w", err)
	}
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var (
			productID string
			units     int
		)
		if err := rows.Scan(&productID, &units); err != nil {
			return nil, fmt.Errorf("analytics.GetOutboundByProduct scan: %w", err)
		}
		out[productID] = units
	}
	return out, rows.Err()
}

// CountUnresolvedAlerts agrupa las alertas abiertas por tipo.
func (r *AnalyticsRepo) CountUnresolvedAlerts(ctx context.Context) (map[string]int, error) {
	rows, err := r.q.Query(ctx, `SELECT type, COUNT(*) FROM alerts WHERE NOT resolved GROUP BY type`)
	if err != nil {
		return nil, fmt.Errorf("analytics.CountUnresolvedAlerts: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var (
			alertType string
			n         int
		)
		if err := rows.Scan(&alertType, &n); err != nil {
			return nil, fmt.Errorf("analytics.CountUnresolvedAlerts scan: %w", err)
		}
		counts[alertType] = n
	}
	return counts, rows.Err()
}

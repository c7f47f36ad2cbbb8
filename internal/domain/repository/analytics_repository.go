package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// StockTotals agregado del inventario actual.
type StockTotals struct {
	Products   int
	Units      int
	StockValue decimal.Decimal // SUM(price * quantity)
	OutOfStock int             // productos con quantity = 0
}

// MovementTotals unidades movidas en un período, por sentido.
type MovementTotals struct {
	InboundUnits  int
	OutboundUnits int
	Movements     int
}

// TopMoverResult producto con más unidades despachadas en el período.
type TopMoverResult struct {
	ProductID     string
	ProductName   string
	OutboundUnits int
	OnHand        int
}

// ShelfOccupancyResult productos asignados frente a la capacidad de una estantería.
type ShelfOccupancyResult struct {
	ShelfID     string
	ShelfName   string
	Occupied    int
	MaxCapacity int
}

// ReplenishmentItem producto en o bajo su cantidad mínima.
type ReplenishmentItem struct {
	ProductID   string
	ProductName string
	Quantity    int
	MinQuantity int
	Price       decimal.Decimal
}

// AnalyticsRepository define las consultas de lectura para el dashboard de inventario.
// Las implementaciones son read-only (no modifican datos).
type AnalyticsRepository interface {
	GetStockTotals(ctx context.Context) (StockTotals, error)

	// GetMovementTotals suma las unidades de movimientos con fecha en [from, to].
	GetMovementTotals(ctx context.Context, from, to time.Time) (MovementTotals, error)

	// GetTopMovers devuelve los `limit` productos con más unidades OUT en [from, to],
	// de mayor a menor.
	GetTopMovers(ctx context.Context, from, to time.Time, limit int) ([]TopMoverResult, error)

	// GetShelfOccupancy devuelve todas las estanterías ordenadas por nombre.
	GetShelfOccupancy(ctx context.Context) ([]ShelfOccupancyResult, error)

	// GetProductsBelowMinimum devuelve los productos con min_quantity > 0 y
	// quantity <= min_quantity, mayor déficit primero.
	GetProductsBelowMinimum(ctx context.Context) ([]ReplenishmentItem, error)

	// GetOutboundByProduct suma las unidades OUT por producto en [from, to].
	GetOutboundByProduct(ctx context.Context, from, to time.Time) (map[string]int, error)

	// CountUnresolvedAlerts devuelve alertas abiertas agrupadas por tipo.
	CountUnresolvedAlerts(ctx context.Context) (map[string]int, error)
}

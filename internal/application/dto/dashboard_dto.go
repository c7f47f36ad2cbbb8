package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
// Foto del inventario actual más el volumen de movimientos del día y del mes en curso.
type DashboardSummaryDTO struct {
	// Inventario actual
	TotalProducts int             `json:"total_products"`
	TotalUnits    int             `json:"total_units"`
	StockValue    decimal.Decimal `json:"stock_value"` // SUM(price * quantity)
	OutOfStock    int             `json:"out_of_stock"`

	// Movimientos
	Today MovementVolumeDTO `json:"today"` // 00:00 – ahora
	Month MovementVolumeDTO `json:"month"` // día 1 – ahora

	// Top 5 productos por unidades despachadas en el mes
	TopMovers []TopMoverDTO `json:"top_movers"`

	Shelves    []ShelfOccupancyDTO `json:"shelves"`
	OpenAlerts map[string]int      `json:"open_alerts"` // por tipo

	// Metadatos del período
	DateLabel string `json:"date_label"` // ej: "Febrero 2026"
}

// MovementVolumeDTO unidades movidas en un período.
type MovementVolumeDTO struct {
	InboundUnits  int `json:"inbound_units"`
	OutboundUnits int `json:"outbound_units"`
	Movements     int `json:"movements"`
}

// TopMoverDTO producto con más salidas en el período.
type TopMoverDTO struct {
	ProductID     string `json:"product_id"`
	ProductName   string `json:"product_name"`
	OutboundUnits int    `json:"outbound_units"`
	OnHand        int    `json:"on_hand"`
}

// ShelfOccupancyDTO ocupación de una estantería.
type ShelfOccupancyDTO struct {
	ShelfID           string          `json:"shelf_id"`
	ShelfName         string          `json:"shelf_name"`
	Occupied          int             `json:"occupied"`
	MaxCapacity       int             `json:"max_capacity"`
	OccupancyPercent  decimal.Decimal `json:"occupancy_percent"` // occupied / max_capacity * 100
	HasAvailableSpace bool            `json:"has_available_space"`
}

// Package analytics contiene el dashboard de inventario: stock, movimientos,
// ocupación de estanterías y alertas abiertas.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/prateleira-api/internal/application/dto"
	"github.com/jhoicas/prateleira-api/internal/domain/inventory"
	"github.com/jhoicas/prateleira-api/internal/domain/repository"
)

const dashboardTopMovers = 5 // número de productos en el widget del dashboard

// DashboardUseCase genera el resumen del inventario.
//
// Fuente de datos: AnalyticsRepository (consultas read-only).
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	now           func() time.Time
}

// Option configura el caso de uso.
type Option func(*DashboardUseCase)

// WithClock reemplaza time.Now (tests).
func WithClock(now func() time.Time) Option {
	return func(uc *DashboardUseCase) { uc.now = now }
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository, opts ...Option) *DashboardUseCase {
	uc := &DashboardUseCase{analyticsRepo: analyticsRepo, now: time.Now}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// GetSummary construye el DashboardSummaryDTO.
//
// Las cinco consultas son independientes y corren en paralelo.
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	now := uc.now()

	// ── Rangos de fecha ────────────────────────────────────────────────────────
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	// ── Goroutines para paralelizar las consultas ─────────────────────────────
	type stockResult struct {
		totals repository.StockTotals
		err    error
	}
	type volumeResult struct {
		totals repository.MovementTotals
		err    error
	}
	type moversResult struct {
		movers []repository.TopMoverResult
		err    error
	}
	type shelvesResult struct {
		shelves []repository.ShelfOccupancyResult
		err     error
	}
	type alertsResult struct {
		counts map[string]int
		err    error
	}

	stockCh := make(chan stockResult, 1)
	todayCh := make(chan volumeResult, 1)
	monthCh := make(chan volumeResult, 1)
	moversCh := make(chan moversResult, 1)
	shelvesCh := make(chan shelvesResult, 1)
	alertsCh := make(chan alertsResult, 1)

	go func() {
		t, err := uc.analyticsRepo.GetStockTotals(ctx)
		stockCh <- stockResult{t, err}
	}()
	go func() {
		t, err := uc.analyticsRepo.GetMovementTotals(ctx, todayStart, now)
		todayCh <- volumeResult{t, err}
	}()
	go func() {
		t, err := uc.analyticsRepo.GetMovementTotals(ctx, monthStart, now)
		monthCh <- volumeResult{t, err}
	}()
	go func() {
		m, err := uc.analyticsRepo.GetTopMovers(ctx, monthStart, now, dashboardTopMovers)
		moversCh <- moversResult{m, err}
	}()
	go func() {
		s, err := uc.analyticsRepo.GetShelfOccupancy(ctx)
		shelvesCh <- shelvesResult{s, err}
	}()
	go func() {
		c, err := uc.analyticsRepo.CountUnresolvedAlerts(ctx)
		alertsCh <- alertsResult{c, err}
	}()

	stock := <-stockCh
	today := <-todayCh
	month := <-monthCh
	movers := <-moversCh
	shelves := <-shelvesCh
	alerts := <-alertsCh

	switch {
	case stock.err != nil:
		return nil, fmt.Errorf("dashboard: stock: %w", stock.err)
	case today.err != nil:
		return nil, fmt.Errorf("dashboard: movimientos de hoy: %w", today.err)
	case month.err != nil:
		return nil, fmt.Errorf("dashboard: movimientos del mes: %w", month.err)
	case movers.err != nil:
		return nil, fmt.Errorf("dashboard: top productos: %w", movers.err)
	case shelves.err != nil:
		return nil, fmt.Errorf("dashboard: estanterías: %w", shelves.err)
	case alerts.err != nil:
		return nil, fmt.Errorf("dashboard: alertas: %w", alerts.err)
	}

	// ── Construir DTO ──────────────────────────────────────────────────────────
	out := &dto.DashboardSummaryDTO{
		TotalProducts: stock.totals.Products,
		TotalUnits:    stock.totals.Units,
		StockValue:    stock.totals.StockValue.Round(2),
		OutOfStock:    stock.totals.OutOfStock,
		Today:         toVolume(today.totals),
		Month:         toVolume(month.totals),
		TopMovers:     make([]dto.TopMoverDTO, 0, len(movers.movers)),
		Shelves:       make([]dto.ShelfOccupancyDTO, 0, len(shelves.shelves)),
		OpenAlerts:    alerts.counts,
		DateLabel:     monthLabel(now),
	}
	if out.OpenAlerts == nil {
		out.OpenAlerts = map[string]int{}
	}
	for _, m := range movers.movers {
		out.TopMovers = append(out.TopMovers, dto.TopMoverDTO{
			ProductID:     m.ProductID,
			ProductName:   m.ProductName,
			OutboundUnits: m.OutboundUnits,
			OnHand:        m.OnHand,
		})
	}
	for _, s := range shelves.shelves {
		out.Shelves = append(out.Shelves, dto.ShelfOccupancyDTO{
			ShelfID:           s.ShelfID,
			ShelfName:         s.ShelfName,
			Occupied:          s.Occupied,
			MaxCapacity:       s.MaxCapacity,
			OccupancyPercent:  occupancyPercent(s.Occupied, s.MaxCapacity),
			HasAvailableSpace: inventory.HasSpace(s.Occupied, s.MaxCapacity),
		})
	}
	return out, nil
}

func toVolume(t repository.MovementTotals) dto.MovementVolumeDTO {
	return dto.MovementVolumeDTO{
		InboundUnits:  t.InboundUnits,
		OutboundUnits: t.OutboundUnits,
		Movements:     t.Movements,
	}
}

// occupancyPercent protege contra división por cero: capacidad 0 cuenta como llena.
func occupancyPercent(occupied, capacity int) decimal.Decimal {
	if capacity <= 0 {
		return decimal.NewFromInt(100)
	}
	return decimal.NewFromInt(int64(occupied)).
		Div(decimal.NewFromInt(int64(capacity))).
		Mul(decimal.NewFromInt(100)).
		Round(2)
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Febrero 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}

package analytics_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/prateleira-api/internal/application/analytics"
	"github.com/jhoicas/prateleira-api/internal/domain/entity"
	"github.com/jhoicas/prateleira-api/internal/domain/repository"
	"github.com/jhoicas/prateleira-api/internal/infrastructure/memory"
)

var now = time.Date(2026, 2, 14, 15, 30, 0, 0, time.UTC)

func TestGetSummary_AgregaInventario(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	products := memory.NewProductRepository(store)
	shelves := memory.NewShelfRepository(store)
	movements := memory.NewMovementRepository(store)
	alerts := memory.NewAlertRepository(store)

	require.NoError(t, shelves.Create(ctx, &entity.Shelf{ID: "s1", Name: "A1", MaxCapacity: 2}))
	require.NoError(t, shelves.Create(ctx, &entity.Shelf{ID: "s2", Name: "B1", MaxCapacity: 0}))
	s1 := "s1"
	require.NoError(t, products.Create(ctx, &entity.Product{ID: "p1", Name: "Leche", Price: decimal.RequireFromString("2.50"), Quantity: 4, ShelfID: &s1}))
	require.NoError(t, products.Create(ctx, &entity.Product{ID: "p2", Name: "Pan", Price: decimal.RequireFromString("1.10"), Quantity: 0}))

	mv := func(id, productID, typ string, qty int, at time.Time) {
		require.NoError(t, movements.Create(ctx, &entity.Movement{ID: id, ProductID: productID, Type: typ, Quantity: qty, Date: at}))
	}
	mv("m1", "p1", entity.MovementTypeIN, 10, now.Add(-time.Hour))      // hoy
	mv("m2", "p1", entity.MovementTypeOUT, 6, now.Add(-30*time.Minute)) // hoy
	mv("m3", "p2", entity.MovementTypeOUT, 3, now.AddDate(0, 0, -5))    // este mes
	mv("m4", "p2", entity.MovementTypeOUT, 50, now.AddDate(0, -1, 0))   // mes anterior
	require.NoError(t, alerts.Create(ctx, &entity.Alert{ID: "a1", ProductID: "p2", Type: entity.AlertTypeLowStock, CreatedAt: now}))

	uc := analytics.NewDashboardUseCase(memory.NewAnalyticsRepository(store), analytics.WithClock(func() time.Time { return now }))
	out, err := uc.GetSummary(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, out.TotalProducts)
	assert.Equal(t, 4, out.TotalUnits)
	assert.True(t, decimal.RequireFromString("10").Equal(out.StockValue))
	assert.Equal(t, 1, out.OutOfStock)

	assert.Equal(t, 10, out.Today.InboundUnits)
	assert.Equal(t, 6, out.Today.OutboundUnits)
	assert.Equal(t, 2, out.Today.Movements)
	assert.Equal(t, 9, out.Month.OutboundUnits)
	assert.Equal(t, 3, out.Month.Movements)

	require.Len(t, out.TopMovers, 2)
	assert.Equal(t, "p1", out.TopMovers[0].ProductID)
	assert.Equal(t, 6, out.TopMovers[0].OutboundUnits)

	require.Len(t, out.Shelves, 2)
	assert.Equal(t, "A1", out.Shelves[0].ShelfName)
	assert.True(t, out.Shelves[0].HasAvailableSpace)
	assert.True(t, decimal.NewFromInt(50).Equal(out.Shelves[0].OccupancyPercent))
	assert.False(t, out.Shelves[1].HasAvailableSpace)

	assert.Equal(t, map[string]int{entity.AlertTypeLowStock: 1}, out.OpenAlerts)
	assert.Equal(t, "Febrero 2026", out.DateLabel)
}

func TestGetSummary_InventarioVacio(t *testing.T) {
	uc := analytics.NewDashboardUseCase(memory.NewAnalyticsRepository(memory.NewStore()))
	out, err := uc.GetSummary(context.Background())
	require.NoError(t, err)
	assert.Zero(t, out.TotalProducts)
	assert.True(t, out.StockValue.IsZero())
	assert.NotNil(t, out.TopMovers)
	assert.NotNil(t, out.Shelves)
	assert.NotNil(t, out.OpenAlerts)
}

type failingRepo struct {
	repository.AnalyticsRepository
}

func (failingRepo) GetStockTotals(context.Context) (repository.StockTotals, error) {
	return repository.StockTotals{}, errors.New("db caída")
}
func (failingRepo) GetMovementTotals(context.Context, time.Time, time.Time) (repository.MovementTotals, error) {
	return repository.MovementTotals{}, nil
}
func (failingRepo) GetTopMovers(context.Context, time.Time, time.Time, int) ([]repository.TopMoverResult, error) {
	return nil, nil
}
func (failingRepo) GetShelfOccupancy(context.Context) ([]repository.ShelfOccupancyResult, error) {
	return nil, nil
}
func (failingRepo) GetProductsBelowMinimum(context.Context) ([]repository.ReplenishmentItem, error) {
	return nil, nil
}
func (failingRepo) GetOutboundByProduct(context.Context, time.Time, time.Time) (map[string]int, error) {
	return nil, nil
}
func (failingRepo) CountUnresolvedAlerts(context.Context) (map[string]int, error) {
	return nil, nil
}

func TestGetSummary_PropagaError(t *testing.T) {
	_, err := analytics.NewDashboardUseCase(failingRepo{}).GetSummary(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dashboard: stock")
}

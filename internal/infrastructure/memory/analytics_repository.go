package memory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/prateleira-api/internal/domain/entity"
	"github.com/jhoicas/prateleira-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo agregados de solo lectura sobre el store.
type AnalyticsRepo struct {
	s *Store
}

// NewAnalyticsRepository construye el repositorio sobre el store.
func NewAnalyticsRepository(s *Store) *AnalyticsRepo {
	return &AnalyticsRepo{s: s}
}

func (r *AnalyticsRepo) GetStockTotals(_ context.Context) (repository.StockTotals, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	t := repository.StockTotals{StockValue: decimal.Zero}
	for _, p := range r.s.products {
		t.Products++
		t.Units += p.Quantity
		t.StockValue = t.StockValue.Add(p.Price.Mul(decimal.NewFromInt(int64(p.Quantity))))
		if p.Quantity == 0 {
			t.OutOfStock++
		}
	}
	return t, nil
}

func inPeriod(m *entity.Movement, from, to time.Time) bool {
	return !m.Date.Before(from) && !m.Date.After(to)
}

func (r *AnalyticsRepo) GetMovementTotals(_ context.Context, from, to time.Time) (repository.MovementTotals, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var t repository.MovementTotals
	for _, m := range r.s.movements {
		if !inPeriod(m, from, to) {
			continue
		}
		t.Movements++
		if m.Type == entity.MovementTypeIN {
			t.InboundUnits += m.Quantity
		} else {
			t.OutboundUnits += m.Quantity
		}
	}
	return t, nil
}

func (r *AnalyticsRepo) GetTopMovers(_ context.Context, from, to time.Time, limit int) ([]repository.TopMoverResult, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	byProduct := make(map[string]int)
	for _, m := range r.s.movements {
		if m.Type == entity.MovementTypeOUT && inPeriod(m, from, to) {
			byProduct[m.ProductID] += m.Quantity
		}
	}
	results := make([]repository.TopMoverResult, 0, len(byProduct))
	for id, units := range byProduct {
		p, ok := r.s.products[id]
		if !ok {
			continue
		}
		results = append(results, repository.TopMoverResult{
			ProductID: id, ProductName: p.Name, OutboundUnits: units, OnHand: p.Quantity,
		})
	}
	sort.Slice(results, func(i, j int) bool {
		if results[i].OutboundUnits != results[j].OutboundUnits {
			return results[i].OutboundUnits > results[j].OutboundUnits
		}
		return results[i].ProductName < results[j].ProductName
	})
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

func (r *AnalyticsRepo) GetShelfOccupancy(_ context.Context) ([]repository.ShelfOccupancyResult, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	occupied := make(map[string]int)
	for _, p := range r.s.products {
		if p.ShelfID != nil {
			occupied[*p.ShelfID]++
		}
	}
	results := make([]repository.ShelfOccupancyResult, 0, len(r.s.shelves))
	for _, s := range r.s.shelves {
		results = append(results, repository.ShelfOccupancyResult{
			ShelfID: s.ID, ShelfName: s.Name, Occupied: occupied[s.ID], MaxCapacity: s.MaxCapacity,
		})
	}
	sort.Slice(results, func(i, j int) bool {
		if results[i].ShelfName != results[j].ShelfName {
			return results[i].ShelfName < results[j].ShelfName
		}
		return results[i].ShelfID < results[j].ShelfID
	})
	return results, nil
}

func (r *AnalyticsRepo) GetProductsBelowMinimum(_ context.Context) ([]repository.ReplenishmentItem, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	results := []repository.ReplenishmentItem{}
	for _, p := range r.s.products {
		if p.MinQuantity > 0 && p.Quantity <= p.MinQuantity {
			results = append(results, repository.ReplenishmentItem{
				ProductID: p.ID, ProductName: p.Name, Quantity: p.Quantity, MinQuantity: p.MinQuantity, Price: p.Price,
			})
		}
	}
	sort.Slice(results, func(i, j int) bool {
		di := results[i].MinQuantity - results[i].Quantity
		dj := results[j].MinQuantity - results[j].Quantity
		if di != dj {
			return di > dj
		}
		return results[i].ProductName < results[j].ProductName
	})
	return results, nil
}

func (r *AnalyticsRepo) GetOutboundByProduct(_ context.Context, from, to time.Time) (map[string]int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make(map[string]int)
	for _, m := range r.s.movements {
		if m.Type == entity.MovementTypeOUT && inPeriod(m, from, to) {
			out[m.ProductID] += m.Quantity
		}
	}
	return out, nil
}

func (r *AnalyticsRepo) CountUnresolvedAlerts(_ context.Context) (map[string]int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	counts := make(map[string]int)
	for _, a := range r.s.alerts {
		if !a.Resolved {
			counts[a.Type]++
		}
	}
	return counts, nil
}

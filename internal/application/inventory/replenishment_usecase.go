package inventory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/prateleira-api/internal/application/dto"
	"github.com/jhoicas/prateleira-api/internal/domain/repository"
)

const velocityWindowDays = 30

// ReplenishmentUseCase genera la lista de reposición: productos en o bajo su
// cantidad mínima, con la cantidad sugerida de pedido y una prioridad.
type ReplenishmentUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	now           func() time.Time
}

// ReplenishmentOption configura ReplenishmentUseCase.
type ReplenishmentOption func(*ReplenishmentUseCase)

// WithReplenishmentClock reemplaza time.Now (tests).
func WithReplenishmentClock(now func() time.Time) ReplenishmentOption {
	return func(uc *ReplenishmentUseCase) { uc.now = now }
}

// NewReplenishmentUseCase construye el caso de uso de reposición.
func NewReplenishmentUseCase(analyticsRepo repository.AnalyticsRepository, opts ...ReplenishmentOption) *ReplenishmentUseCase {
	uc := &ReplenishmentUseCase{analyticsRepo: analyticsRepo, now: time.Now}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// GenerateReplenishmentList devuelve las sugerencias ordenadas por urgencia.
func (uc *ReplenishmentUseCase) GenerateReplenishmentList(ctx context.Context) ([]dto.ReplenishmentSuggestionDTO, error) {
	// 1. Productos en o bajo su mínimo
	items, err := uc.analyticsRepo.GetProductsBelowMinimum(ctx)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return []dto.ReplenishmentSuggestionDTO{}, nil
	}

	// 2. Salidas recientes por producto
	end := uc.now()
	start := end.AddDate(0, 0, -velocityWindowDays)
	outbound, err := uc.analyticsRepo.GetOutboundByProduct(ctx, start, end)
	if err != nil {
		return nil, err
	}

	// 3. Construir sugerencias
	suggestions := make([]dto.ReplenishmentSuggestionDTO, 0, len(items))
	for _, item := range items {
		ideal := (item.MinQuantity*3 + 1) / 2 // ceil(min * 1.5)
		if out := outbound[item.ProductID]; out > ideal {
			ideal = out
		}
		qty := ideal - item.Quantity
		if qty < 0 {
			qty = 0
		}
		suggestions = append(suggestions, dto.ReplenishmentSuggestionDTO{
			ProductID:           item.ProductID,
			ProductName:         item.ProductName,
			CurrentStock:        item.Quantity,
			MinQuantity:         item.MinQuantity,
			IdealStock:          ideal,
			SuggestedOrderQty:   qty,
			UnitPrice:           item.Price,
			EstimatedOrderValue: item.Price.Mul(decimal.NewFromInt(int64(qty))).Round(2),
			UnitsOutLast30Days:  outbound[item.ProductID],
		})
	}

	// 4. Ordenar: primero sin stock, luego mayor volumen de salidas,
	//    finalmente mayor déficit respecto del mínimo.
	sort.SliceStable(suggestions, func(i, j int) bool {
		a, b := suggestions[i], suggestions[j]
		if (a.CurrentStock == 0) != (b.CurrentStock == 0) {
			return a.CurrentStock == 0
		}
		if a.UnitsOutLast30Days != b.UnitsOutLast30Days {
			return a.UnitsOutLast30Days > b.UnitsOutLast30Days
		}
		return a.MinQuantity-a.CurrentStock > b.MinQuantity-b.CurrentStock
	})

	// 5. Asignar prioridad (1 = más urgente)
	for i := range suggestions {
		suggestions[i].Priority = i + 1
	}
	return suggestions, nil
}

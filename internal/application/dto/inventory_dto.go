package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/prateleira-api/internal/domain/entity"
)

// RegisterMovementRequest body para POST /api/movements/inbound y /outbound.
type RegisterMovementRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
	Note      string `json:"note" validate:"max=500"`
}

// MovementResponse salida de un movimiento.
type MovementResponse struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	Type      string    `json:"type"`
	Quantity  int       `json:"quantity"`
	Date      time.Time `json:"date"`
	Note      string    `json:"note"`
}

// ToMovementResponse convierte la entidad.
func ToMovementResponse(m *entity.Movement) MovementResponse {
	return MovementResponse{
		ID:        m.ID,
		ProductID: m.ProductID,
		Type:      m.Type,
		Quantity:  m.Quantity,
		Date:      m.Date,
		Note:      m.Note,
	}
}

// ToMovementResponses convierte una lista (nunca nil).
func ToMovementResponses(list []*entity.Movement) []MovementResponse {
	out := make([]MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, ToMovementResponse(m))
	}
	return out
}

// ReplenishmentSuggestionDTO fila de la lista de reposición.
type ReplenishmentSuggestionDTO struct {
	ProductID           string          `json:"product_id"`
	ProductName         string          `json:"product_name"`
	CurrentStock        int             `json:"current_stock"`
	MinQuantity         int             `json:"min_quantity"`
	IdealStock          int             `json:"ideal_stock"`         // max(ceil(MinQuantity * 1.5), salidas de 30 días)
	SuggestedOrderQty   int             `json:"suggested_order_qty"` // IdealStock - CurrentStock
	UnitPrice           decimal.Decimal `json:"unit_price"`
	EstimatedOrderValue decimal.Decimal `json:"estimated_order_value"` // SuggestedOrderQty * UnitPrice
	UnitsOutLast30Days  int             `json:"units_out_last_30d"`
	Priority            int             `json:"priority"` // 1 = más urgente
}

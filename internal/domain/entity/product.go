package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto ubicado (opcionalmente) en una estantería.
// Quantity es el stock disponible; solo lo modifica el libro de movimientos.
type Product struct {
	ID          string
	Name        string
	Description string
	Barcode     string          // EAN-13, opcional
	ExpiresAt   *time.Time      // nil si el producto no vence
	Price       decimal.Decimal // precio unitario
	Quantity    int             // stock disponible (>= 0)
	MinQuantity int             // umbral mínimo informativo por producto
	ShelfID     *string         // FK a shelves; nil si no está asignado
	CategoryIDs []string        // relación N:M resuelta por consulta
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// HasExpiry indica si el producto tiene fecha de vencimiento.
func (p *Product) HasExpiry() bool {
	return p.ExpiresAt != nil
}

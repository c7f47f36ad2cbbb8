package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto. El stock inicial entra vía movimientos.
type CreateProductRequest struct {
	Name        string          `json:"name" validate:"required,min=1,max=100"`
	Description string          `json:"description" validate:"max=500"`
	Barcode     string          `json:"barcode" validate:"omitempty,max=13"`
	ExpiresAt   *time.Time      `json:"expires_at"`
	Price       decimal.Decimal `json:"price"`
	MinQuantity int             `json:"min_quantity" validate:"min=0"`
	ShelfID     *string         `json:"shelf_id" validate:"omitempty,min=1"`
	CategoryIDs []string        `json:"category_ids" validate:"omitempty,dive,required"`
}

// UpdateProductRequest entrada para actualizar un producto (sin stock).
type UpdateProductRequest struct {
	Name        *string          `json:"name" validate:"omitempty,min=1,max=100"`
	Description *string          `json:"description" validate:"omitempty,max=500"`
	Barcode     *string          `json:"barcode" validate:"omitempty,max=13"`
	ExpiresAt   *time.Time       `json:"expires_at"`
	ClearExpiry bool             `json:"clear_expires_at"` // true borra la fecha de vencimiento
	Price       *decimal.Decimal `json:"price"`
	MinQuantity *int             `json:"min_quantity" validate:"omitempty,min=0"`
	ShelfID     *string          `json:"shelf_id"` // "" desasigna la estantería
	CategoryIDs []string         `json:"category_ids" validate:"omitempty,dive,required"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Barcode     string          `json:"barcode,omitempty"`
	ExpiresAt   *time.Time      `json:"expires_at,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	MinQuantity int             `json:"min_quantity"`
	ShelfID     *string         `json:"shelf_id,omitempty"`
	CategoryIDs []string        `json:"category_ids"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

package dto

import "time"

// CreateShelfRequest entrada para crear una estantería.
type CreateShelfRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=100"`
	Location    string `json:"location" validate:"max=200"`
	MaxCapacity int    `json:"max_capacity" validate:"min=0"`
}

// UpdateShelfRequest entrada para actualizar una estantería.
type UpdateShelfRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=100"`
	Location    *string `json:"location" validate:"omitempty,max=200"`
	MaxCapacity *int    `json:"max_capacity" validate:"omitempty,min=0"`
}

// ShelfResponse salida de una estantería.
type ShelfResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Location    string    `json:"location"`
	MaxCapacity int       `json:"max_capacity"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ShelfListResponse lista paginada de estanterías.
type ShelfListResponse struct {
	Items []ShelfResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}

// ShelfSpaceResponse resultado de la verificación de capacidad.
type ShelfSpaceResponse struct {
	ShelfID           string `json:"shelf_id"`
	HasAvailableSpace bool   `json:"has_available_space"`
}

package entity

import "time"

// Shelf representa una estantería física. No conoce sus productos: cada Product guarda ShelfID.
type Shelf struct {
	ID          string
	Name        string
	Location    string
	MaxCapacity int // cantidad máxima de productos distintos
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

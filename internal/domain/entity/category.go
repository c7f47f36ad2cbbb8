package entity

import "time"

// Category representa una categoría de productos (relación N:M con Product vía product_categories).
type Category struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

package dto

import (
	"time"

	"github.com/jhoicas/prateleira-api/internal/domain/entity"
)

// CreateAlertRequest body para POST /api/alerts.
type CreateAlertRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Type      string `json:"type" validate:"required,oneof=NEAR_EXPIRY LOW_STOCK OUT_OF_STOCK EXPIRED"`
	Message   string `json:"message" validate:"required,max=500"`
}

// AlertResponse salida de una alerta.
type AlertResponse struct {
	ID         string     `json:"id"`
	ProductID  string     `json:"product_id"`
	Type       string     `json:"type"`
	Message    string     `json:"message"`
	CreatedAt  time.Time  `json:"created_at"`
	ResolvedAt *time.Time `json:"resolved_at"`
	Resolved   bool       `json:"resolved"`
}

// ScanResponse resultado de un escaneo de alertas.
type ScanResponse struct {
	Created int             `json:"created"`
	Alerts  []AlertResponse `json:"alerts"`
}

// ToAlertResponse convierte la entidad.
func ToAlertResponse(a *entity.Alert) AlertResponse {
	return AlertResponse{
		ID:         a.ID,
		ProductID:  a.ProductID,
		Type:       a.Type,
		Message:    a.Message,
		CreatedAt:  a.CreatedAt,
		ResolvedAt: a.ResolvedAt,
		Resolved:   a.Resolved,
	}
}

// ToAlertResponses convierte una lista (nunca nil).
func ToAlertResponses(list []*entity.Alert) []AlertResponse {
	out := make([]AlertResponse, 0, len(list))
	for _, a := range list {
		out = append(out, ToAlertResponse(a))
	}
	return out
}

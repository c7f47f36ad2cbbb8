package alert

import (
	"context"

	"github.com/jhoicas/prateleira-api/internal/domain/entity"
)

// Acciones publicadas sobre una alerta.
const (
	EventCreated  = "created"
	EventResolved = "resolved"
)

// Event es la notificación que se publica cuando una alerta nace o se resuelve.
type Event struct {
	Action string
	Alert  entity.Alert
}

// Publisher difunde eventos de alertas (Kafka en producción). Un fallo no revierte la alerta.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// ScanLocker serializa escaneos del mismo tipo entre instancias (Redis en producción).
// Acquire devuelve domain.ErrConflict si otro proceso tiene el lock.
type ScanLocker interface {
	Acquire(ctx context.Context, name string) (release func(context.Context) error, err error)
}

// Metrics recibe las alertas creadas.
type Metrics interface {
	AlertCreated(alertType string)
}

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, Event) error { return nil }

type nopLocker struct{}

func (nopLocker) Acquire(context.Context, string) (func(context.Context) error, error) {
	return func(context.Context) error { return nil }, nil
}

type nopMetrics struct{}

func (nopMetrics) AlertCreated(string) {}

// Package metrics expone contadores Prometheus del inventario y métricas HTTP de fiber.
package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/prateleira-api/internal/application/alert"
	"github.com/jhoicas/prateleira-api/internal/application/inventory"
)

var (
	_ inventory.MovementMetrics = (*Metrics)(nil)
	_ alert.Metrics             = (*Metrics)(nil)
)

// Metrics agrupa los colectores registrados en un registry propio.
type Metrics struct {
	registry *prometheus.Registry

	movementsTotal    *prometheus.CounterVec
	movedUnitsTotal   *prometheus.CounterVec
	alertsCreated     *prometheus.CounterVec
	httpRequestsTotal *prometheus.CounterVec
	httpDuration      *prometheus.HistogramVec
}

// New crea el registry con los colectores de proceso y runtime de Go.
func New(namespace string) *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		movementsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "inventory_movements_total",
			Help:      "Movimientos de stock registrados por tipo",
		}, []string{"type"}),
		movedUnitsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "inventory_moved_units_total",
			Help:      "Unidades movidas por tipo de movimiento",
		}, []string{"type"}),
		alertsCreated: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "inventory_alerts_created_total",
			Help:      "Alertas creadas por tipo",
		}, []string{"type"}),
		httpRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Peticiones HTTP por método, ruta y status",
		}, []string{"method", "route", "status"}),
		httpDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duración de las peticiones HTTP",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
}

// MovementRegistered implementa inventory.MovementMetrics.
func (m *Metrics) MovementRegistered(movementType string, quantity int) {
	m.movementsTotal.WithLabelValues(movementType).Inc()
	m.movedUnitsTotal.WithLabelValues(movementType).Add(float64(quantity))
}

// AlertCreated implementa alert.Metrics.
func (m *Metrics) AlertCreated(alertType string) {
	m.alertsCreated.WithLabelValues(alertType).Inc()
}

// Middleware mide cada petición usando la ruta registrada (no la URL) para acotar la cardinalidad.
func (m *Metrics) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		route := c.Route().Path
		m.httpRequestsTotal.WithLabelValues(c.Method(), route, strconv.Itoa(status)).Inc()
		m.httpDuration.WithLabelValues(c.Method(), route).Observe(time.Since(start).Seconds())
		return err
	}
}

// Handler sirve /metrics a través del adaptador net/http de fiber.
func (m *Metrics) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry}))
}

// Registry expone el registry (tests y colectores adicionales).
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

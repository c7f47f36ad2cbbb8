package metrics_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/prateleira-api/internal/infrastructure/metrics"
)

func scrape(t *testing.T, app *fiber.App) string {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}

func TestMetrics_Contadores(t *testing.T) {
	m := metrics.New("prateleira")
	m.MovementRegistered("IN", 10)
	m.MovementRegistered("IN", 5)
	m.MovementRegistered("OUT", 3)
	m.AlertCreated("LOW_STOCK")

	app := fiber.New()
	app.Get("/metrics", m.Handler())
	body := scrape(t, app)

	assert.Contains(t, body, `prateleira_inventory_movements_total{type="IN"} 2`)
	assert.Contains(t, body, `prateleira_inventory_movements_total{type="OUT"} 1`)
	assert.Contains(t, body, `prateleira_inventory_moved_units_total{type="IN"} 15`)
	assert.Contains(t, body, `prateleira_inventory_alerts_created_total{type="LOW_STOCK"} 1`)
}

func TestMetrics_MiddlewareYHandler(t *testing.T) {
	m := metrics.New("prateleira")
	app := fiber.New()
	app.Use(m.Middleware())
	app.Get("/metrics", m.Handler())
	app.Get("/api/products/:id", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNotFound) })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/products/abc", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	body := scrape(t, app)
	assert.Contains(t, body, `prateleira_http_requests_total{method="GET",route="/api/products/:id",status="404"} 1`)
}

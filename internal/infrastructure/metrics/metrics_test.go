package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMetrics(t *testing.T) *Metrics {
	t.Helper()
	registry := prometheus.NewRegistry()
	m, err := New(Options{Registerer: registry, Gatherer: registry})
	require.NoError(t, err)
	return m
}

func TestMiddleware_RegistraRutaYStatus(t *testing.T) {
	m := newTestMetrics(t)

	app := fiber.New()
	app.Use(m.Middleware())
	app.Get("/api/productos/:id", func(c *fiber.Ctx) error {
		time.Sleep(2 * time.Millisecond)
		return c.SendStatus(fiber.StatusCreated)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/api/productos/7", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	labels := prometheus.Labels{"method": "GET", "route": "/api/productos/:id", "status": "201"}
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Requests.With(labels)))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.InFlight))
	assert.Positive(t, testutil.CollectAndCount(m.Duration))
}

func TestMiddleware_ErrorFiberUsaSuCodigo(t *testing.T) {
	m := newTestMetrics(t)

	app := fiber.New()
	app.Use(m.Middleware())
	app.Get("/x", func(c *fiber.Ctx) error { return fiber.ErrUnauthorized })

	_, err := app.Test(httptest.NewRequest("GET", "/x", nil))
	require.NoError(t, err)

	labels := prometheus.Labels{"method": "GET", "route": "/x", "status": "401"}
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Requests.With(labels)))
}

func TestContadoresDeDominio(t *testing.T) {
	m := newTestMetrics(t)

	m.IncOrdersPlaced()
	m.IncOrdersPlaced()
	m.IncLockout()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.OrdersPlaced))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.LoginLockouts))
}

func TestNilMetrics_NoOp(t *testing.T) {
	var m *Metrics
	m.IncLockout()
	m.IncOrdersPlaced()

	app := fiber.New()
	app.Use(m.Middleware())
	app.Get("/ping", func(c *fiber.Ctx) error { return c.SendString("pong") })

	resp, err := app.Test(httptest.NewRequest("GET", "/ping", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestNew_ReutilizaColectoresRegistrados(t *testing.T) {
	registry := prometheus.NewRegistry()
	first, err := New(Options{Registerer: registry, Gatherer: registry})
	require.NoError(t, err)
	second, err := New(Options{Registerer: registry, Gatherer: registry})
	require.NoError(t, err)

	second.IncOrdersPlaced()
	assert.Equal(t, 1.0, testutil.ToFloat64(first.OrdersPlaced))
}

func TestHandler_ExponeContadores(t *testing.T) {
	m := newTestMetrics(t)
	m.IncOrdersPlaced()

	app := fiber.New()
	app.Get("/metrics", m.Handler())

	resp, err := app.Test(httptest.NewRequest("GET", "/metrics", nil))
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	assert.True(t, strings.Contains(string(body), "tienda_orders_placed_total 1"))
}

// Package metrics colectores Prometheus de la tienda: HTTP, pedidos y bloqueos de cuenta.
package metrics

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "tienda"

// Metrics agrupa los colectores registrados.
type Metrics struct {
	Requests      *prometheus.CounterVec
	Duration      *prometheus.HistogramVec
	InFlight      prometheus.Gauge
	OrdersPlaced  prometheus.Counter
	LoginLockouts prometheus.Counter

	gatherer prometheus.Gatherer
}

// Options registerer/gatherer a usar; nil usa los globales de Prometheus.
type Options struct {
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
	Buckets    []float64
}

// New crea y registra los colectores. Si ya estaban registrados se reutilizan los existentes.
func New(opts Options) (*Metrics, error) {
	reg := opts.Registerer
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := opts.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	buckets := opts.Buckets
	if len(buckets) == 0 {
		buckets = prometheus.DefBuckets
	}

	requests, err := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Peticiones HTTP por método, ruta y status.",
	}, []string{"method", "route", "status"}))
	if err != nil {
		return nil, err
	}
	duration, err := register(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "Latencia de las peticiones HTTP en segundos.",
		Buckets:   buckets,
	}, []string{"method", "route", "status"}))
	if err != nil {
		return nil, err
	}
	inFlight, err := register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "in_flight_requests",
		Help:      "Peticiones HTTP en curso.",
	}))
	if err != nil {
		return nil, err
	}
	orders, err := register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_placed_total",
		Help:      "Pedidos confirmados.",
	}))
	if err != nil {
		return nil, err
	}
	lockouts, err := register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_lockouts_total",
		Help:      "Cuentas bloqueadas por intentos fallidos.",
	}))
	if err != nil {
		return nil, err
	}

	return &Metrics{
		Requests:      requests,
		Duration:      duration,
		InFlight:      inFlight,
		OrdersPlaced:  orders,
		LoginLockouts: lockouts,
		gatherer:      gatherer,
	}, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var already prometheus.AlreadyRegisteredError
		if !errors.As(err, &already) {
			return c, fmt.Errorf("registrar colector: %w", err)
		}
		existing, ok := already.ExistingCollector.(C)
		if !ok {
			return c, fmt.Errorf("colector existente de tipo inesperado %T", already.ExistingCollector)
		}
		return existing, nil
	}
	return c, nil
}

// IncOrdersPlaced suma un pedido confirmado.
func (m *Metrics) IncOrdersPlaced() {
	if m != nil && m.OrdersPlaced != nil {
		m.OrdersPlaced.Inc()
	}
}

// IncLockout suma un bloqueo de cuenta.
func (m *Metrics) IncLockout() {
	if m != nil && m.LoginLockouts != nil {
		m.LoginLockouts.Inc()
	}
}

// Middleware registra método, ruta (patrón, no path concreto) y status de cada petición.
func (m *Metrics) Middleware() fiber.Handler {
	if m == nil {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	return func(c *fiber.Ctx) error {
		start := time.Now()
		m.InFlight.Inc()
		defer m.InFlight.Dec()

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			} else if status < fiber.StatusBadRequest {
				status = fiber.StatusInternalServerError
			}
		}
		route := c.Route().Path
		if route == "" || route == "/" {
			route = c.Path()
		}
		labels := prometheus.Labels{
			"method": c.Method(),
			"route":  route,
			"status": strconv.Itoa(status),
		}
		m.Requests.With(labels).Inc()
		m.Duration.With(labels).Observe(time.Since(start).Seconds())
		return err
	}
}

// Handler expone /metrics en formato Prometheus.
func (m *Metrics) Handler() fiber.Handler {
	gatherer := prometheus.DefaultGatherer
	if m != nil && m.gatherer != nil {
		gatherer = m.gatherer
	}
	return adaptor.HTTPHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
}

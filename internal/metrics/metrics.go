// Package metrics holds the prometheus collectors for auth and HTTP traffic.
package metrics

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Fazeelit/mohafizbackend/internal/apperr"
)

type Metrics struct {
	registry *prometheus.Registry

	AuthSuccesses    *prometheus.CounterVec
	AuthFailures     *prometheus.CounterVec
	TokenGenerations *prometheus.CounterVec
	HTTPRequests     *prometheus.CounterVec
}

// New registers every collector on a fresh registry, so tests can build as
// many as they like.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		AuthSuccesses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "auth_successes",
			Help: "Count of successful authorizations",
		}, []string{"method"}),
		AuthFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "auth_failures",
			Help: "Count of failed authorizations",
		}, []string{"method"}),
		TokenGenerations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "auth_token_generations",
			Help: "Count of auth tokens created",
		}, []string{"method"}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Count of HTTP requests by method, route and status",
		}, []string{"method", "route", "status"}),
	}
	reg.MustRegister(
		m.AuthSuccesses,
		m.AuthFailures,
		m.TokenGenerations,
		m.HTTPRequests,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Middleware counts every request once the handler chain returns. The
// route label is the matched route pattern, not the raw path, to keep
// cardinality bounded.
func (m *Metrics) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()
		// Method() aliases the pooled request buffer; the registry keeps
		// label values, so they must be copies.
		m.HTTPRequests.WithLabelValues(
			utils.CopyString(c.Method()),
			utils.CopyString(c.Route().Path),
			strconv.Itoa(statusOf(c, err)),
		).Inc()
		return err
	}
}

// statusOf predicts the status the error handler will write for err.
func statusOf(c *fiber.Ctx, err error) int {
	if err == nil {
		return c.Response().StatusCode()
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	return apperr.KindOf(err).Status()
}

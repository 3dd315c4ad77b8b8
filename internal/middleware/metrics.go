package middleware

import (
	"sync"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// RedisErrors counts Redis command failures, labeled by command name.
var RedisErrors = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "recipebox_redis_errors_total",
		Help: "Total number of Redis command errors.",
	},
	[]string{"command"},
)

var (
	promOnce sync.Once
	promInst *fiberprometheus.FiberPrometheus
)

// InitMetrics creates the Prometheus middleware for the given service name.
// The underlying collectors register against the default registry exactly
// once, so repeated calls return the same instance.
func InitMetrics(service string) *fiberprometheus.FiberPrometheus {
	promOnce.Do(func() {
		promInst = fiberprometheus.New(service)
	})
	return promInst
}

// MetricsMiddleware returns the HTTP metrics collection handler.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}

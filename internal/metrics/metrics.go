// Package metrics exposes Prometheus instruments for the monitor loop,
// conflict detection and route optimization.
package metrics

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"ghost-flight/internal/models"
)

// Collector bundles the application metrics. A nil *Collector is valid and
// records nothing.
type Collector struct {
	gatherer prometheus.Gatherer

	Ticks         *prometheus.CounterVec
	TickDuration  prometheus.Histogram
	Flights       prometheus.Gauge
	Conflicts     *prometheus.CounterVec
	Alerts        *prometheus.CounterVec
	KnownConflict prometheus.Gauge
	Optimizations prometheus.Counter
	RouteKm       prometheus.Histogram
}

// New registers the collectors against reg, defaulting to the global
// Prometheus registry when nil.
func New(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	c := &Collector{gatherer: gatherer}
	var err error

	if c.Ticks, err = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ghostflight_ticks_total",
		Help: "Monitor ticks, labeled by outcome (ok, fetch_error, skipped).",
	}, []string{"outcome"})); err != nil {
		return nil, err
	}
	if c.TickDuration, err = register(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "ghostflight_tick_duration_seconds",
		Help:    "Time spent fetching and scanning one snapshot.",
		Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 15},
	})); err != nil {
		return nil, err
	}
	if c.Flights, err = register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "ghostflight_flights",
		Help: "Flights in the most recent snapshot.",
	})); err != nil {
		return nil, err
	}
	if c.Conflicts, err = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ghostflight_conflicts_total",
		Help: "Newly detected conflicts, labeled by kind and severity.",
	}, []string{"kind", "severity"})); err != nil {
		return nil, err
	}
	if c.Alerts, err = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ghostflight_alerts_total",
		Help: "Alerts emitted, labeled by tag.",
	}, []string{"tag"})); err != nil {
		return nil, err
	}
	if c.KnownConflict, err = register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "ghostflight_known_conflicts",
		Help: "Size of the detector's known-conflict set.",
	})); err != nil {
		return nil, err
	}
	if c.Optimizations, err = register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ghostflight_route_optimizations_total",
		Help: "Route optimizations served.",
	})); err != nil {
		return nil, err
	}
	if c.RouteKm, err = register(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "ghostflight_route_total_km",
		Help:    "Total length of optimized routes in kilometres.",
		Buckets: prometheus.ExponentialBuckets(10, 2, 10),
	})); err != nil {
		return nil, err
	}

	return c, nil
}

// Handler exposes a ready-to-use /metrics handler.
func (c *Collector) Handler() http.Handler {
	gatherer := prometheus.DefaultGatherer
	if c != nil && c.gatherer != nil {
		gatherer = c.gatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// ObserveTick records one completed tick.
func (c *Collector) ObserveTick(result *models.TickResult, known int, elapsed time.Duration) {
	if c == nil || result == nil {
		return
	}
	c.Ticks.WithLabelValues("ok").Inc()
	c.TickDuration.Observe(elapsed.Seconds())
	c.Flights.Set(float64(len(result.Flights)))
	c.KnownConflict.Set(float64(known))
	for _, ev := range result.Conflicts {
		c.Conflicts.WithLabelValues(string(ev.Kind), string(ev.Severity)).Inc()
	}
	for _, a := range result.Alerts {
		c.Alerts.WithLabelValues(a.Tag).Inc()
	}
}

// TickFailed records a tick abandoned because the feed failed.
func (c *Collector) TickFailed() {
	if c == nil {
		return
	}
	c.Ticks.WithLabelValues("fetch_error").Inc()
}

// TickSkipped records a tick dropped because the previous one was still running.
func (c *Collector) TickSkipped() {
	if c == nil {
		return
	}
	c.Ticks.WithLabelValues("skipped").Inc()
}

// ObserveRoute records one optimized route.
func (c *Collector) ObserveRoute(route *models.OptimizedRoute) {
	if c == nil || route == nil {
		return
	}
	c.Optimizations.Inc()
	c.RouteKm.Observe(route.TotalKm)
}

// register adds col to reg, reusing an already registered collector of the
// same type so that tests and restarts can share a registry.
func register[T prometheus.Collector](reg prometheus.Registerer, col T) (T, error) {
	if err := reg.Register(col); err != nil {
		are, ok := err.(prometheus.AlreadyRegisteredError)
		if !ok {
			var zero T
			return zero, err
		}
		existing, ok := are.ExistingCollector.(T)
		if !ok {
			var zero T
			return zero, fmt.Errorf("collector already registered with incompatible type: %T", are.ExistingCollector)
		}
		return existing, nil
	}
	return col, nil
}

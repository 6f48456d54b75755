// Package monitor drives the periodic collect-and-scan loop: every interval
// it pulls a snapshot from a flight source, hands it to the conflict
// detector, and keeps the most recent result for readers.
package monitor

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"ghost-flight/internal/conflict"
	"ghost-flight/internal/flights"
	"ghost-flight/internal/metrics"
	"ghost-flight/internal/models"
)

// DefaultInterval matches the collector's default polling period.
const DefaultInterval = 15 * time.Second

// ErrTickInProgress is returned by RunOnce when another tick has not finished.
var ErrTickInProgress = errors.New("monitor tick already in progress")

// Publisher receives the alerts of every tick that produced any
type Publisher interface {
	Publish(alerts []models.Alert)
}

// Monitor owns the polling loop and the latest tick result.
type Monitor struct {
	source   flights.Source
	detector *conflict.Detector
	metrics  *metrics.Collector
	pub      Publisher
	interval time.Duration
	now      func() time.Time

	busy atomic.Bool

	mu     sync.RWMutex
	latest *models.TickResult
}

// Option configures a Monitor.
type Option func(*Monitor)

// WithInterval overrides DefaultInterval.
func WithInterval(d time.Duration) Option {
	return func(m *Monitor) {
		if d > 0 {
			m.interval = d
		}
	}
}

// WithMetrics records tick outcomes on c.
func WithMetrics(c *metrics.Collector) Option {
	return func(m *Monitor) { m.metrics = c }
}

// WithPublisher forwards new alerts to p after each tick.
func WithPublisher(p Publisher) Option {
	return func(m *Monitor) { m.pub = p }
}

// WithClock replaces time.Now for tick timestamps.
func WithClock(now func() time.Time) Option {
	return func(m *Monitor) { m.now = now }
}

// New creates a monitor over source and detector.
func New(source flights.Source, detector *conflict.Detector, opts ...Option) *Monitor {
	m := &Monitor{
		source:   source,
		detector: detector,
		interval: DefaultInterval,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Interval returns the polling period.
func (m *Monitor) Interval() time.Duration {
	return m.interval
}

// Run ticks immediately and then every interval until ctx is cancelled.
// Fetch failures are logged and do not stop the loop.
func (m *Monitor) Run(ctx context.Context) error {
	log.Printf("[MONITOR] Starting: interval=%s zones=%d", m.interval, len(m.detector.Zones()))

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.scheduledTick(ctx)
	for {
		select {
		case <-ctx.Done():
			log.Printf("[MONITOR] Stopped")
			return nil
		case <-ticker.C:
			m.scheduledTick(ctx)
		}
	}
}

func (m *Monitor) scheduledTick(ctx context.Context) {
	if _, err := m.RunOnce(ctx); err != nil {
		if errors.Is(err, ErrTickInProgress) {
			log.Printf("[MONITOR] Tick skipped: previous tick still running")
			return
		}
		if ctx.Err() == nil {
			log.Printf("[ERROR] Monitor tick failed: %v", err)
		}
	}
}

// RunOnce performs a single fetch and scan. It returns ErrTickInProgress
// without doing anything if another tick is running.
func (m *Monitor) RunOnce(ctx context.Context) (*models.TickResult, error) {
	if !m.busy.CompareAndSwap(false, true) {
		m.metrics.TickSkipped()
		return nil, ErrTickInProgress
	}
	defer m.busy.Store(false)

	start := time.Now()
	snapshot, err := m.source.Fetch(ctx)
	if err != nil {
		m.metrics.TickFailed()
		return nil, fmt.Errorf("fetch snapshot: %w", err)
	}

	conflicts, alerts := m.detector.Tick(snapshot)
	result := &models.TickResult{
		ID:        uuid.NewString(),
		At:        m.now(),
		Flights:   snapshot,
		Conflicts: conflicts,
		Alerts:    alerts,
	}

	m.mu.Lock()
	m.latest = result
	m.mu.Unlock()

	if m.pub != nil && len(alerts) > 0 {
		m.pub.Publish(alerts)
	}

	elapsed := time.Since(start)
	m.metrics.ObserveTick(result, m.detector.KnownCount(), elapsed)
	log.Printf("[MONITOR] Tick %s: flights=%d conflicts=%d alerts=%d elapsed=%v",
		result.ID[:8], len(snapshot), len(conflicts), len(alerts), elapsed)

	return result, nil
}

// Latest returns the most recent tick result, or nil before the first tick.
func (m *Monitor) Latest() *models.TickResult {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.latest
}

package server

import (
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records build telemetry.
type Metrics struct {
	builds   *prometheus.CounterVec
	duration *prometheus.HistogramVec
	events   prometheus.Counter
}

// NewMetrics registers the timeline metrics on reg (the default registerer when nil).
func NewMetrics(namespace string, reg prometheus.Registerer) (*Metrics, error) {
	if namespace == "" {
		namespace = "timeline"
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Metrics{
		builds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "builds_total",
			Help:      "Timeline and date list builds by endpoint and outcome.",
		}, []string{"endpoint", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "build_duration_seconds",
			Help:      "Latency of builds served over HTTP.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"endpoint"}),
		events: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_total",
			Help:      "Dated entries produced by timeline builds.",
		}),
	}

	collectors := []prometheus.Collector{m.builds, m.duration, m.events}
	for i, c := range collectors {
		if err := reg.Register(c); err != nil {
			var are prometheus.AlreadyRegisteredError
			if !errors.As(err, &are) {
				return nil, fmt.Errorf("register timeline metric: %w", err)
			}
			switch i {
			case 0:
				m.builds = are.ExistingCollector.(*prometheus.CounterVec)
			case 1:
				m.duration = are.ExistingCollector.(*prometheus.HistogramVec)
			case 2:
				m.events = are.ExistingCollector.(prometheus.Counter)
			}
		}
	}
	return m, nil
}

// Outcomes of a build.
const (
	outcomeOK       = "ok"
	outcomeNotFound = "not_found"
	outcomeError    = "error"
)

func (m *Metrics) record(endpoint, outcome string, d time.Duration, events int) {
	if m == nil {
		return
	}
	m.builds.WithLabelValues(endpoint, outcome).Inc()
	m.duration.WithLabelValues(endpoint).Observe(d.Seconds())
	if events > 0 {
		m.events.Add(float64(events))
	}
}

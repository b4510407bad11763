package redis

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "redisconn"

// metrics is nil-safe: a Manager without WithMetrics records nothing.
type metrics struct {
	attempts  prometheus.Counter
	failures  *prometheus.CounterVec
	connected prometheus.Gauge
	closes    prometheus.Counter
}

func newMetrics(reg prometheus.Registerer) *metrics {
	if reg == nil {
		return nil
	}
	f := promauto.With(reg)
	return &metrics{
		attempts: f.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "connect_attempts_total",
			Help:      "Total number of dial attempts made while establishing a connection",
		}),
		failures: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "connect_failures_total",
			Help:      "Total number of failed connection establishments by error code",
		}, []string{"code"}),
		connected: f.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "connected",
			Help:      "Whether a connection handle is currently cached (1) or not (0)",
		}),
		closes: f.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "closes_total",
			Help:      "Total number of connections closed by the manager",
		}),
	}
}

func (m *metrics) attempt() {
	if m != nil {
		m.attempts.Inc()
	}
}

func (m *metrics) failure(code Code) {
	if m != nil {
		m.failures.WithLabelValues(code.String()).Inc()
	}
}

func (m *metrics) setConnected(ok bool) {
	if m == nil {
		return
	}
	if ok {
		m.connected.Set(1)
		return
	}
	m.connected.Set(0)
}

func (m *metrics) closed() {
	if m != nil {
		m.closes.Inc()
	}
}

// pkg/blockchain/solbc/metrics.go
package solbc

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors of the RPC client.
type Metrics struct {
	rpcCallsTotal     *prometheus.CounterVec
	rpcCallDuration   *prometheus.HistogramVec
	rpcRateLimitHits  *prometheus.CounterVec
	rpcRetries        *prometheus.CounterVec
	txSuccessTotal    prometheus.Counter
	txFailureTotal    prometheus.Counter
	txConfirmDuration prometheus.Histogram
}

// NewMetrics creates the collectors and registers them with registry.
// If registry is nil, prometheus.DefaultRegisterer is used.
func NewMetrics(registry prometheus.Registerer) *Metrics {
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}

	factory := promauto.With(registry)

	return &Metrics{
		rpcCallsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pumpfun_rpc_calls_total",
				Help: "Total number of Solana RPC calls by method and status",
			},
			[]string{"method", "status", "endpoint"},
		),
		rpcCallDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "pumpfun_rpc_call_duration_seconds",
				Help:    "Duration of Solana RPC calls in seconds",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0},
			},
			[]string{"method", "endpoint"},
		),
		rpcRateLimitHits: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pumpfun_rpc_rate_limit_hits_total",
				Help: "Total number of Solana RPC rate limit hits (429 errors)",
			},
			[]string{"endpoint"},
		),
		rpcRetries: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pumpfun_rpc_retries_total",
				Help: "Total number of Solana RPC retry attempts",
			},
			[]string{"method"},
		),
		txSuccessTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "pumpfun_tx_success_total",
			Help: "Total number of confirmed transactions",
		}),
		txFailureTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "pumpfun_tx_failure_total",
			Help: "Total number of failed or unconfirmed transactions",
		}),
		txConfirmDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "pumpfun_tx_duration_seconds",
			Help:    "Time from first send to confirmation in seconds",
			Buckets: prometheus.LinearBuckets(0, 2.5, 12),
		}),
	}
}

func (m *Metrics) recordCall(method, endpoint string, start time.Time, err error) {
	if m == nil {
		return
	}

	status := "success"
	if err != nil {
		status = "error"
		if isRateLimitError(err) {
			m.rpcRateLimitHits.WithLabelValues(endpoint).Inc()
		}
	}
	m.rpcCallsTotal.WithLabelValues(method, status, endpoint).Inc()
	m.rpcCallDuration.WithLabelValues(method, endpoint).Observe(time.Since(start).Seconds())
}

func (m *Metrics) recordRetry(method string) {
	if m == nil {
		return
	}
	m.rpcRetries.WithLabelValues(method).Inc()
}

func (m *Metrics) recordTransaction(start time.Time, err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.txFailureTotal.Inc()
		return
	}
	m.txSuccessTotal.Inc()
	m.txConfirmDuration.Observe(time.Since(start).Seconds())
}

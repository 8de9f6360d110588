// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	setupMu     sync.Mutex
	initialized bool
	setupErr    error

	rpcCounter           *prometheus.CounterVec
	rpcDuration          *prometheus.HistogramVec
	settlementTransfers  prometheus.Histogram
	settlementDuration   prometheus.Histogram
	settlementComputeOps prometheus.Counter
)

// Setup registers the collectors with reg (the default registerer when nil).
// Only the first call registers; later calls return the first result.
// Until Setup succeeds the Observe functions are no-ops.
func Setup(reg prometheus.Registerer) error {
	setupMu.Lock()
	defer setupMu.Unlock()
	if initialized {
		return setupErr
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	rpcs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "divvyup_rpc_requests_total",
		Help: "Number of RPCs handled, by procedure and result code.",
	}, []string{"procedure", "code"})
	rpcLatency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "divvyup_rpc_duration_seconds",
		Help:    "RPC handling latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"procedure"})
	transfers := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "divvyup_settlement_transfers",
		Help:    "Number of transfers needed to settle a group.",
		Buckets: prometheus.LinearBuckets(0, 2, 10),
	})
	computeLatency := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "divvyup_settlement_compute_seconds",
		Help:    "Time spent computing balances and transfers.",
		Buckets: prometheus.ExponentialBuckets(0.00001, 4, 8),
	})
	computes := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "divvyup_settlement_computations_total",
		Help: "Number of settlement computations.",
	})

	fail := func(err error) error {
		setupErr = fmt.Errorf("metrics: register collector: %w", err)
		initialized = true
		return setupErr
	}
	var err error
	if rpcs, err = register(reg, rpcs); err != nil {
		return fail(err)
	}
	if rpcLatency, err = register(reg, rpcLatency); err != nil {
		return fail(err)
	}
	if transfers, err = register(reg, transfers); err != nil {
		return fail(err)
	}
	if computeLatency, err = register(reg, computeLatency); err != nil {
		return fail(err)
	}
	if computes, err = register(reg, computes); err != nil {
		return fail(err)
	}

	rpcCounter = rpcs
	rpcDuration = rpcLatency
	settlementTransfers = transfers
	settlementDuration = computeLatency
	settlementComputeOps = computes
	initialized = true
	return nil
}

// register adds c to reg, reusing an identical collector registered earlier.
func register[T prometheus.Collector](reg prometheus.Registerer, c T) (T, error) {
	if err := reg.Register(c); err != nil {
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			if existing, ok := already.ExistingCollector.(T); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// ObserveRPC records one handled RPC.
func ObserveRPC(procedure, code string, elapsed time.Duration) {
	if rpcCounter == nil {
		return
	}
	rpcCounter.WithLabelValues(procedure, code).Inc()
	rpcDuration.WithLabelValues(procedure).Observe(elapsed.Seconds())
}

// ObserveSettlement records one settlement computation.
func ObserveSettlement(transfers int, elapsed time.Duration) {
	if settlementComputeOps == nil {
		return
	}
	settlementComputeOps.Inc()
	settlementTransfers.Observe(float64(transfers))
	settlementDuration.Observe(elapsed.Seconds())
}

package indexer

import (
	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "godwoken_indexer"

var (
	tipBlockNumber = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: metricsNamespace,
		Name:      "tip_block_number",
		Help:      "Number of the last block synced into the store",
	})
	blocksSyncedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "blocks_synced_total",
		Help:      "Blocks written to the store",
	})
	idlePollsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "idle_polls_total",
		Help:      "Polls that found no new block on chain",
	})
	syncErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "sync_errors_total",
		Help:      "Fatal sync errors by kind",
	}, []string{"kind"})
	blockInsertDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: metricsNamespace,
		Name:      "block_insert_duration_seconds",
		Help:      "Time to convert and store one block",
		Buckets:   prometheus.DefBuckets,
	})
	chainRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: metricsNamespace,
		Name:      "chain_request_duration_seconds",
		Help:      "Latency of block requests to the chain source",
		Buckets:   prometheus.DefBuckets,
	}, []string{"status"})
)

func init() {
	prometheus.MustRegister(
		tipBlockNumber,
		blocksSyncedTotal,
		idlePollsTotal,
		syncErrorsTotal,
		blockInsertDuration,
		chainRequestDuration,
	)
}

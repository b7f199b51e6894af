package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Correlator Metrics
var (
	LastAcceptedBlock = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "correlator_last_accepted_block",
		Help: "The last accepted block number processed",
	})

	LastIrreversibleBlock = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "correlator_last_irreversible_block",
		Help: "The last irreversible block number observed",
	})

	CachedTraces = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "correlator_cached_traces",
		Help: "The number of transaction traces currently cached",
	})

	ForkCounter = promauto.NewCounter(prometheus.CounterOpts{
		Name: "correlator_fork_counter",
		Help: "The number of forks detected by block number regression",
	})

	MissingTraceCounter = promauto.NewCounter(prometheus.CounterOpts{
		Name: "correlator_missing_trace_counter",
		Help: "The number of executed transactions with no cached trace",
	})

	FailedTransactionCounter = promauto.NewCounter(prometheus.CounterOpts{
		Name: "correlator_failed_transaction_counter",
		Help: "The number of non-executed transaction receipts observed",
	})
)

// Publisher Metrics
var (
	EmittedEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "publisher_emitted_events_total",
		Help: "The number of events emitted, by message type",
	}, []string{"type"})

	SendErrorCounter = promauto.NewCounter(prometheus.CounterOpts{
		Name: "publisher_send_errors_total",
		Help: "The number of transport send failures",
	})

	DroppedEventCounter = promauto.NewCounter(prometheus.CounterOpts{
		Name: "publisher_dropped_events_total",
		Help: "The number of events dropped because the send timed out",
	})

	PublishDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "publisher_send_duration_seconds",
		Help:    "Time taken to hand one framed event to the transport",
		Buckets: prometheus.DefBuckets,
	})
)

// Enricher Metrics
var (
	ResourceSnapshotCounter = promauto.NewCounter(prometheus.CounterOpts{
		Name: "enricher_resource_snapshots_total",
		Help: "The number of account resource snapshots fetched",
	})

	TokenBalanceCounter = promauto.NewCounter(prometheus.CounterOpts{
		Name: "enricher_token_balances_total",
		Help: "The number of token balances decoded",
	})

	BalanceDecodeSkips = promauto.NewCounter(prometheus.CounterOpts{
		Name: "enricher_balance_decode_skips_total",
		Help: "The number of token balance rows skipped as undecodable",
	})
)

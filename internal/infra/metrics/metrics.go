// Package metrics provides Prometheus metrics for DeepWarren: counters and
// gauges over intent dispatch, combat, world generation, and health.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ─── Intent dispatch ────────────────────────────────────────────────────────

// IntentsHandled tracks dispatched intents by kind and outcome.
var IntentsHandled = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "deepwarren",
	Name:      "intents_handled_total",
	Help:      "Total intents dispatched, by kind and outcome (ok/error).",
}, []string{"kind", "outcome"})

// IntentLatency tracks Dispatch call duration in seconds.
var IntentLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: "deepwarren",
	Name:      "intent_latency_seconds",
	Help:      "Intent dispatch duration in seconds.",
	Buckets:   prometheus.DefBuckets,
}, []string{"kind"})

// ─── Combat ──────────────────────────────────────────────────────────────────

// AttacksResolved tracks resolved attacks by result.
var AttacksResolved = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "deepwarren",
	Name:      "attacks_resolved_total",
	Help:      "Total attacks resolved, by result (hit/crit/kill).",
}, []string{"result"})

// TurnQueueDepth tracks the live size of the turn scheduler's heap.
var TurnQueueDepth = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "deepwarren",
	Name:      "turn_queue_depth",
	Help:      "Number of entities currently scheduled for a future turn.",
})

// ─── World generation ───────────────────────────────────────────────────────

// ChunksGenerated tracks chunks generated by level (world/region/zone/subzone).
var ChunksGenerated = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "deepwarren",
	Name:      "chunks_generated_total",
	Help:      "Total world chunks generated, by chunk level.",
}, []string{"level"})

// GenerationLatency tracks GenerateChunk call duration in seconds.
var GenerationLatency = promauto.NewHistogram(prometheus.HistogramOpts{
	Namespace: "deepwarren",
	Name:      "generation_latency_seconds",
	Help:      "Chunk generation duration in seconds, including any LLM call.",
	Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
})

// GenerationFallbacks tracks how often a generation call falls back to its
// deterministic template instead of the LLM's response (§6's required
// fallback path for every model call).
var GenerationFallbacks = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "deepwarren",
	Name:      "generation_fallbacks_total",
	Help:      "Total chunk/lore generations that fell back to the deterministic path.",
})

// ─── Health ─────────────────────────────────────────────────────────────────

// HealthCheckStatus tracks health check results (1=healthy, 0=unhealthy).
var HealthCheckStatus = promauto.NewGaugeVec(prometheus.GaugeOpts{
	Namespace: "deepwarren",
	Name:      "health_check_status",
	Help:      "Health check result per component (1=healthy, 0=unhealthy).",
}, []string{"check"})

// Package observability provides Prometheus metrics for monitoring the
// tool-result adapter: outbound invocations, confirmation outcomes, and
// compatibility fallbacks of the content transformer.
package observability

import "github.com/prometheus/client_golang/prometheus"

// ToolBuckets defines histogram buckets suited for external tool call
// latencies, ranging from 10ms to 120s.
var ToolBuckets = []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10, 30, 60, 120}

var (
	// ToolInvocationsTotal counts outbound tool invocations by server,
	// tool, and status (ok, error, transport_error).
	ToolInvocationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gemini_tool_invocations_total",
			Help: "Tool invocations",
		},
		[]string{"server", "tool", "status"},
	)

	// ToolInvocationDuration records outbound call duration in seconds.
	ToolInvocationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gemini_tool_invocation_duration_seconds",
			Help:    "Tool invocation duration",
			Buckets: ToolBuckets,
		},
		[]string{"server", "tool"},
	)

	// ConfirmationsTotal counts confirmation prompts by server and outcome.
	ConfirmationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gemini_tool_confirmations_total",
			Help: "Confirmation prompt outcomes",
		},
		[]string{"server", "outcome"},
	)

	// TransformFallbacksTotal counts responses in which no content block
	// yielded output and the raw response was passed through unchanged.
	TransformFallbacksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gemini_transform_fallbacks_total",
			Help: "Whole-response transform fallbacks",
		},
		[]string{"server", "tool"},
	)
)

func init() {
	prometheus.MustRegister(
		ToolInvocationsTotal,
		ToolInvocationDuration,
		ConfirmationsTotal,
		TransformFallbacksTotal,
	)
}

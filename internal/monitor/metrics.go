// Package monitor exposes dccrx's live decoding activity to the outside
// world: a Prometheus metrics endpoint and a websocket feed of decoded
// packets, for dashboards and layout-control software to watch.
package monitor

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the counters dccrx exposes on /metrics.
type Metrics struct {
	EdgesDropped          prometheus.Counter
	BitsClassified        *prometheus.CounterVec
	ClassifierFailures    prometheus.Counter
	FramesCommitted       prometheus.Counter
	FrameValidationErrors prometheus.Counter
	PacketsDecoded        *prometheus.CounterVec
	ParserFailures        prometheus.Counter
}

// NewMetrics constructs and registers dccrx's metrics against the given
// registry, so tests can use a private registry instead of the global
// default.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		EdgesDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dccrx_edges_dropped_total",
			Help: "Edges lost because the ring buffer was full when they arrived.",
		}),
		BitsClassified: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dccrx_bits_classified_total",
			Help: "Half-bit pairs classified, by resulting bit value.",
		}, []string{"bit"}),
		ClassifierFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dccrx_classifier_failures_total",
			Help: "Half-bit pairs that matched no timing band.",
		}),
		FramesCommitted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dccrx_frames_committed_total",
			Help: "Bit-stream frames delivered by the framer.",
		}),
		FrameValidationErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dccrx_frame_validation_errors_total",
			Help: "Frames rejected by checksum validation.",
		}),
		PacketsDecoded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dccrx_packets_decoded_total",
			Help: "Packets successfully parsed, by packet tag.",
		}, []string{"tag"}),
		ParserFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dccrx_parser_failures_total",
			Help: "Validated frames that matched no known packet variant.",
		}),
	}
	reg.MustRegister(
		m.EdgesDropped,
		m.BitsClassified,
		m.ClassifierFailures,
		m.FramesCommitted,
		m.FrameValidationErrors,
		m.PacketsDecoded,
		m.ParserFailures,
	)
	return m
}

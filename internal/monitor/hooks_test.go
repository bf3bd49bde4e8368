package monitor_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/okdcc-go/dccrx/internal/dcc"
	"github.com/okdcc-go/dccrx/internal/monitor"
)

func TestHooks_DecodeErrorIncrementsRightCounter(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := monitor.NewMetrics(reg)
	h := monitor.Hooks{Metrics: m}

	h.DecodeError("validator", "bad checksum")

	assert.Equal(t, float64(1), testutil.ToFloat64(m.FrameValidationErrors))
	assert.Equal(t, float64(0), testutil.ToFloat64(m.ClassifierFailures))
	assert.Equal(t, float64(0), testutil.ToFloat64(m.ParserFailures))
}

func TestHooks_PacketDecodedLabelsByTag(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := monitor.NewMetrics(reg)
	h := monitor.Hooks{Metrics: m}

	h.PacketDecoded(dcc.Packet{Tag: dcc.TagIdleForAllDecoders})

	assert.Equal(t, float64(1), testutil.ToFloat64(m.PacketsDecoded.WithLabelValues("IdleForAllDecoders")))
}

func TestHooks_BitClassifiedLabelsByBitValue(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := monitor.NewMetrics(reg)
	h := monitor.Hooks{Metrics: m}

	h.BitClassified(1)
	h.BitClassified(1)
	h.BitClassified(0)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.BitsClassified.WithLabelValues("1")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.BitsClassified.WithLabelValues("0")))
}

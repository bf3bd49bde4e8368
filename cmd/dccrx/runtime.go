package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/okdcc-go/dccrx/internal/dcc"
	"github.com/okdcc-go/dccrx/internal/dccconfig"
	"github.com/okdcc-go/dccrx/internal/dcclog"
	"github.com/okdcc-go/dccrx/internal/monitor"
)

// multiErrorHook fans a decode error out to every hook in the slice.
type multiErrorHook []dcc.ErrorHook

func (m multiErrorHook) DecodeError(stage, detail string) {
	for _, h := range m {
		h.DecodeError(stage, detail)
	}
}

// multiDebugHook fans debug events out to every hook in the slice.
type multiDebugHook []dcc.DebugHook

func (m multiDebugHook) BitClassified(bit byte) {
	for _, h := range m {
		h.BitClassified(bit)
	}
}

func (m multiDebugHook) FrameCommitted(frame dcc.Frame) {
	for _, h := range m {
		h.FrameCommitted(frame)
	}
}

func (m multiDebugHook) PacketDecoded(packet dcc.Packet) {
	for _, h := range m {
		h.PacketDecoded(packet)
	}
}

// runtime wires a configured Decoder to a ring buffer and, optionally, a
// monitor server — the shared plumbing behind the gpio and serial
// subcommands, which differ only in how edges arrive.
type runtime struct {
	cfg     dccconfig.Config
	log     dcclog.Logger
	ring    *dcc.RingBuffer
	decoder *dcc.Decoder
	monitor *monitor.Server
}

func newRuntime(cfg dccconfig.Config) *runtime {
	log := dcclog.New(cfg.LogLevel)
	ring := dcc.NewRingBuffer(cfg.RingBufferCapacity)

	logHooks := dcclog.Hooks{Log: log}
	errorHooks := multiErrorHook{logHooks}
	debugHooks := multiDebugHook{logHooks}

	var mon *monitor.Server
	if cfg.Monitor.Enabled {
		reg := prometheus.NewRegistry()
		metrics := monitor.NewMetrics(reg)
		hub := monitor.NewHub()
		monHooks := monitor.Hooks{Metrics: metrics, Hub: hub}
		errorHooks = append(errorHooks, monHooks)
		debugHooks = append(debugHooks, monHooks)
		mon = monitor.NewServer(cfg.Monitor.ListenAddress, cfg.Monitor.MetricsPath, hub, reg)
	}

	decoder := dcc.NewDecoder(dcc.WithErrorHook(errorHooks), dcc.WithDebugHook(debugHooks), dcc.WithFLMode(cfg.FLMode))

	return &runtime{cfg: cfg, log: log, ring: ring, decoder: decoder, monitor: mon}
}

// drain pulls timestamps off the ring buffer and feeds the decoder until
// ctx is cancelled. It runs on the same goroutine as the caller; edge
// production happens elsewhere (GPIO interrupt callback, serial read
// loop).
func (r *runtime) drain(ctx context.Context) {
	const batchSize = 64
	buf := make([]dcc.Timestamp, batchSize)
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}
		n := r.ring.ReadMany(buf)
		for i := 0; i < n; i++ {
			r.decoder.Decode(buf[i])
		}
		if n == 0 {
			// Nothing pending; avoid a hot spin while the edge source
			// catches up.
			const idlePoll = time.Millisecond
			select {
			case <-ctx.Done():
				return
			case <-time.After(idlePoll):
			}
		}
	}
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

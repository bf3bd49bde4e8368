//go:build linux

// Package edgesource adapts physical edge sources — a GPIO line watching
// the track signal directly, or a serial link to external capture
// hardware — into dcc.Timestamp values pushed onto a dcc.RingBuffer.
package edgesource

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"

	"github.com/okdcc-go/dccrx/internal/dcc"
)

// GPIOSource watches one GPIO line for track voltage edges and writes
// their timestamps to a ring buffer. Each edge callback runs on the
// gpiocdev event-handling goroutine, which is the one producer allowed to
// call RingBuffer.Write.
type GPIOSource struct {
	line *gpiocdev.Line
	ring *dcc.RingBuffer

	dropped int
}

// OpenGPIO requests chip's line offset for both-edges, input watching and
// begins writing every edge's timestamp (converted to microseconds) into
// ring. The returned GPIOSource must be closed to release the line.
func OpenGPIO(chip string, offset int, ring *dcc.RingBuffer) (*GPIOSource, error) {
	s := &GPIOSource{ring: ring}

	line, err := gpiocdev.RequestLine(chip, offset,
		gpiocdev.AsInput,
		gpiocdev.WithBothEdges,
		gpiocdev.WithEventHandler(s.handleEvent))
	if err != nil {
		return nil, fmt.Errorf("edgesource: requesting %s line %d: %w", chip, offset, err)
	}
	s.line = line
	return s, nil
}

func (s *GPIOSource) handleEvent(evt gpiocdev.LineEvent) {
	ts := dcc.Timestamp(evt.Timestamp.Microseconds())
	if !s.ring.Write(ts) {
		s.dropped++
	}
}

// Dropped returns the number of edges lost because the ring buffer was
// full when they arrived. A steadily growing count means the consumer
// isn't draining fast enough relative to the track signal's edge rate.
func (s *GPIOSource) Dropped() int {
	return s.dropped
}

// Close releases the underlying GPIO line.
func (s *GPIOSource) Close() error {
	return s.line.Close()
}

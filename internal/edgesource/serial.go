//go:build linux

package edgesource

import (
	"encoding/binary"
	"fmt"
	"io"

	serial "github.com/daedaluz/goserial"

	"github.com/okdcc-go/dccrx/internal/dcc"
)

// SerialSource reads a stream of big-endian uint32 microsecond
// timestamps from an external capture device — a microcontroller wired
// to the track signal that timestamps edges itself and forwards them
// over a serial link — and writes them to a ring buffer.
//
// The wire format is a plain sequence of 4-byte timestamps; there is no
// framing or checksum, since the serial link itself is assumed reliable
// over short cable runs.
type SerialSource struct {
	port *serial.Port
	ring *dcc.RingBuffer

	dropped int
}

// OpenSerial opens device at baud (e.g. "/dev/ttyUSB0", 115200), puts it
// into raw mode, and returns a SerialSource ready for Run.
func OpenSerial(device string, baud int, ring *dcc.RingBuffer) (*SerialSource, error) {
	port, err := serial.Open(device, nil)
	if err != nil {
		return nil, fmt.Errorf("edgesource: opening %s: %w", device, err)
	}

	if err := configure(port, baud); err != nil {
		port.Close()
		return nil, fmt.Errorf("edgesource: configuring %s: %w", device, err)
	}

	return &SerialSource{port: port, ring: ring}, nil
}

func configure(port *serial.Port, baud int) error {
	attrs, err := port.GetAttr()
	if err != nil {
		return err
	}
	attrs.MakeRaw()
	attrs.SetSpeed(baudFlag(baud))
	return port.SetAttr(serial.TCSANOW, attrs)
}

func baudFlag(baud int) serial.CFlag {
	switch baud {
	case 9600:
		return serial.B9600
	case 19200:
		return serial.B19200
	case 38400:
		return serial.B38400
	case 57600:
		return serial.B57600
	case 230400:
		return serial.B230400
	default:
		return serial.B115200
	}
}

// Run reads timestamps until a read fails (including the port being
// closed) and returns that error unwrapped, so callers can recognise
// io.EOF from a device unplug as a normal shutdown signal.
func (s *SerialSource) Run() error {
	var buf [4]byte
	for {
		if _, err := io.ReadFull(s.port, buf[:]); err != nil {
			return err
		}
		ts := dcc.Timestamp(binary.BigEndian.Uint32(buf[:]))
		if !s.ring.Write(ts) {
			s.dropped++
		}
	}
}

// Dropped returns the number of timestamps lost because the ring buffer
// was full when they arrived.
func (s *SerialSource) Dropped() int {
	return s.dropped
}

// Close releases the underlying serial port.
func (s *SerialSource) Close() error {
	return s.port.Close()
}

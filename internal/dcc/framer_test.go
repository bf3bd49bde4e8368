package dcc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// feedBits drives f with one bit per call and returns the status/frame of
// the final bit fed.
func feedBits(f *Framer, bits ...byte) (Status, Frame) {
	var status Status
	var frame Frame
	for _, b := range bits {
		status, frame = f.Feed(b)
	}
	return status, frame
}

func bitsForFrame(data []byte) []byte {
	var bits []byte
	for i := 0; i < 14; i++ {
		bits = append(bits, 1)
	}
	bits = append(bits, 0) // packet-start bit
	for i, b := range data {
		if i > 0 {
			bits = append(bits, 0) // byte-separator start bit
		}
		for bitIdx := 7; bitIdx >= 0; bitIdx-- {
			bits = append(bits, (b>>uint(bitIdx))&1)
		}
	}
	bits = append(bits, 1) // packet-end bit
	return bits
}

func TestFramer_CommitsAFullFrame(t *testing.T) {
	f := NewFramer()
	data := []byte{0x03, 0x2A, 0x29}

	status, frame := feedBits(f, bitsForFrame(data)...)
	require.Equal(t, StatusSuccess, status)
	assert.Equal(t, data, frame.Data())
}

func TestFramer_ShortPreambleFails(t *testing.T) {
	f := NewFramer()
	bits := []byte{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 0} // only 10 ones, <= 12

	var status Status
	for _, b := range bits {
		status, _ = f.Feed(b)
	}
	assert.Equal(t, StatusFailure, status)
}

func TestFramer_ResyncsAfterShortPreamble(t *testing.T) {
	f := NewFramer()
	for i := 0; i < 10; i++ {
		f.Feed(1)
	}
	status, _ := f.Feed(0)
	require.Equal(t, StatusFailure, status)

	data := []byte{0xFF, 0x00, 0xFF}
	status, frame := feedBits(f, bitsForFrame(data)...)
	require.Equal(t, StatusSuccess, status)
	assert.Equal(t, data, frame.Data())
}

func TestFramer_OverflowingFrameFails(t *testing.T) {
	f := NewFramer()
	var bits []byte
	for i := 0; i < 14; i++ {
		bits = append(bits, 1)
	}
	bits = append(bits, 0)
	for byteIdx := 0; byteIdx < MaxFrameBytes+1; byteIdx++ {
		if byteIdx > 0 {
			bits = append(bits, 0)
		}
		for i := 0; i < 8; i++ {
			bits = append(bits, 0)
		}
	}

	var status Status
	for _, b := range bits {
		status, _ = f.Feed(b)
	}
	assert.Equal(t, StatusFailure, status)
}

func TestFramer_FrameIsAValueCopy(t *testing.T) {
	f := NewFramer()
	data := []byte{0x00, 0x00, 0x00}
	_, frame := feedBits(f, bitsForFrame(data)...)

	// Feeding another frame through f must not mutate the earlier copy.
	feedBits(f, bitsForFrame([]byte{0xFF, 0xFF, 0xFF})...)
	assert.Equal(t, data, frame.Data())
}

package dcc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingHooks struct {
	errors  []string
	bits    []byte
	frames  []Frame
	packets []Packet
}

func (r *recordingHooks) DecodeError(stage string, detail string) {
	r.errors = append(r.errors, stage+": "+detail)
}
func (r *recordingHooks) BitClassified(bit byte)      { r.bits = append(r.bits, bit) }
func (r *recordingHooks) FrameCommitted(frame Frame)  { r.frames = append(r.frames, frame) }
func (r *recordingHooks) PacketDecoded(packet Packet) { r.packets = append(r.packets, packet) }

// timestampsForRawBytes turns a literal byte sequence (including whatever
// checksum byte the caller wants, valid or not) into the edge-timestamp
// stream that feeds it through a Decoder: 14 one-bits of preamble, a
// packet-start bit, each byte MSB-first separated by a start bit, and a
// packet-end bit. Edges are generated so that each bit's ending edge is
// the next bit's starting edge, matching how Classifier retains and
// slides its window.
func timestampsForRawBytes(raw []byte) []Timestamp {
	var bits []byte
	for i := 0; i < 14; i++ {
		bits = append(bits, 1)
	}
	bits = append(bits, 0)
	for i, b := range raw {
		if i > 0 {
			bits = append(bits, 0)
		}
		for bitIdx := 7; bitIdx >= 0; bitIdx-- {
			bits = append(bits, (b>>uint(bitIdx))&1)
		}
	}
	bits = append(bits, 1)

	edges := []Timestamp{0}
	t := Timestamp(0)
	for _, bit := range bits {
		var half Timestamp
		if bit == 1 {
			half = 58
		} else {
			half = 100
		}
		t += half
		edges = append(edges, t)
		t += half
		edges = append(edges, t)
	}
	return edges
}

// timestampsForFrame is timestampsForRawBytes with a correct trailing XOR
// checksum byte appended to data.
func timestampsForFrame(data []byte) []Timestamp {
	var sum byte
	for _, b := range data {
		sum ^= b
	}
	return timestampsForRawBytes(append(append([]byte{}, data...), sum))
}

func TestDecoder_EndToEndSuccess(t *testing.T) {
	hooks := &recordingHooks{}
	d := NewDecoder(WithErrorHook(hooks), WithDebugHook(hooks))

	data := []byte{0x03, 0x75}
	var status Status
	var packet Packet
	for _, ts := range timestampsForFrame(data) {
		status, packet = d.Decode(ts)
	}

	require.Equal(t, StatusSuccess, status)
	assert.Equal(t, TagSpeedAndDirectionForLocomotive, packet.Tag)
	assert.Equal(t, Address(3), packet.SpeedAndDirectionForLocomotive.Address)
	assert.NotEmpty(t, hooks.packets)
	assert.NotEmpty(t, hooks.frames)
	assert.Empty(t, hooks.errors)
}

func TestDecoder_ChecksumFailureReportsFailure(t *testing.T) {
	hooks := &recordingHooks{}
	d := NewDecoder(WithErrorHook(hooks))

	// 0x01 is not the XOR of 0x00, 0x00: checksum mismatch.
	raw := []byte{0x00, 0x00, 0x01}
	var status Status
	for _, ts := range timestampsForRawBytes(raw) {
		status, _ = d.Decode(ts)
	}

	assert.Equal(t, StatusFailure, status)
	require.Len(t, hooks.errors, 1)
	assert.Contains(t, hooks.errors[0], "validator")
}

func TestDecoder_FLModeDecodesSpeedAndDirectionForLocomotiveFL(t *testing.T) {
	hooks := &recordingHooks{}
	d := NewDecoder(WithErrorHook(hooks), WithDebugHook(hooks), WithFLMode(true))

	// 0x75 = 0111_0101: speed/direction prefix, forward, FL bit set, speed
	// nibble 0x05 -> decodeSpeed4Bit(5) = speed 4, no emergency stop.
	data := []byte{0x03, 0x75}
	var status Status
	var packet Packet
	for _, ts := range timestampsForFrame(data) {
		status, packet = d.Decode(ts)
	}

	require.Equal(t, StatusSuccess, status)
	assert.Equal(t, TagSpeedAndDirectionForLocomotive, packet.Tag)
	v := packet.SpeedAndDirectionForLocomotive
	assert.True(t, v.FLControl)
	assert.True(t, v.FL)
	assert.Equal(t, uint8(4), v.Speed4Bit)
	assert.False(t, v.EmergencyStop)
}

func TestDecoder_NoHooksDoesNotPanic(t *testing.T) {
	d := NewDecoder()
	data := []byte{0xFF, 0x00}
	var status Status
	for _, ts := range timestampsForFrame(data) {
		status, _ = d.Decode(ts)
	}
	assert.Equal(t, StatusSuccess, status)
}

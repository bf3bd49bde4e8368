package dcc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderFrame(t *testing.T) {
	fr := Frame{Bytes: [MaxFrameBytes]byte{0x03, 0x2A, 0x29}, Len: 3}
	assert.Equal(t, "03 2A 29", RenderFrame(fr))
}

func TestRenderFrame_Empty(t *testing.T) {
	assert.Equal(t, "", RenderFrame(Frame{}))
}

func TestRenderPacket_SpeedAndDirection(t *testing.T) {
	p := Packet{
		Tag: TagSpeedAndDirectionForLocomotive,
		SpeedAndDirectionForLocomotive: SpeedAndDirectionForLocomotive{
			Address:   3,
			Direction: Forward,
			Speed5Bit: 10,
		},
	}
	out := RenderPacket(p)
	assert.Contains(t, out, "SpeedAndDirectionForLocomotive")
	assert.Contains(t, out, "address=3")
	assert.Contains(t, out, "direction=Forward")
	assert.Contains(t, out, "speed5=10")
}

func TestRenderPacket_EveryTagProducesNonEmptyOutput(t *testing.T) {
	for tag := TagSpeedAndDirectionForLocomotive; tag <= TagBinaryStateLongForm; tag++ {
		out := RenderPacket(Packet{Tag: tag})
		assert.NotEmpty(t, out, "tag %d produced no output", tag)
	}
}

func TestRenderPacket_UnknownTag(t *testing.T) {
	assert.Equal(t, "Unknown{}", RenderPacket(Packet{Tag: PacketTag(9999)}))
}

func TestRenderRingBuffer_Empty(t *testing.T) {
	rb := NewRingBuffer(4)
	assert.Equal(t, "cap=4 len=0 []", RenderRingBuffer(rb))
}

func TestRenderRingBuffer_PendingTimestampsOldestFirst(t *testing.T) {
	rb := NewRingBuffer(4)
	rb.Write(0x40)
	rb.Write(0xA0)
	assert.Equal(t, "cap=4 len=2 [00000040 000000A0]", RenderRingBuffer(rb))
}

func TestRenderRingBuffer_WrapsAroundCorrectly(t *testing.T) {
	rb := NewRingBuffer(2)
	rb.Write(1)
	rb.Write(2)
	var out Timestamp
	rb.Read(&out) // drop 1, advance readIndex to 1
	rb.Write(3)   // lands in slot 0, writeIndex having wrapped after Write(2)
	assert.Equal(t, "cap=2 len=2 [00000002 00000003]", RenderRingBuffer(rb))
}

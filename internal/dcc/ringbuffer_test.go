package dcc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRingBuffer_WriteReadOrder(t *testing.T) {
	rb := NewRingBuffer(4)

	require.True(t, rb.Write(10))
	require.True(t, rb.Write(20))
	require.True(t, rb.Write(30))

	var out Timestamp
	require.True(t, rb.Read(&out))
	assert.Equal(t, Timestamp(10), out)
	require.True(t, rb.Read(&out))
	assert.Equal(t, Timestamp(20), out)
	require.True(t, rb.Read(&out))
	assert.Equal(t, Timestamp(30), out)
}

func TestRingBuffer_ReadEmptyFails(t *testing.T) {
	rb := NewRingBuffer(4)
	var out Timestamp
	assert.False(t, rb.Read(&out))
}

func TestRingBuffer_WriteFullFails(t *testing.T) {
	rb := NewRingBuffer(2)
	require.True(t, rb.Write(1))
	require.True(t, rb.Write(2))
	assert.False(t, rb.Write(3))
	assert.Equal(t, 2, rb.Len())
}

func TestRingBuffer_WrapsAroundAfterDrain(t *testing.T) {
	rb := NewRingBuffer(2)
	require.True(t, rb.Write(1))
	require.True(t, rb.Write(2))

	var out Timestamp
	require.True(t, rb.Read(&out))
	assert.Equal(t, Timestamp(1), out)

	require.True(t, rb.Write(3))
	require.True(t, rb.Read(&out))
	assert.Equal(t, Timestamp(2), out)
	require.True(t, rb.Read(&out))
	assert.Equal(t, Timestamp(3), out)
	assert.False(t, rb.Read(&out))
}

func TestRingBuffer_ReadMany(t *testing.T) {
	rb := NewRingBuffer(8)
	for i := Timestamp(0); i < 5; i++ {
		require.True(t, rb.Write(i))
	}

	dst := make([]Timestamp, 8)
	n := rb.ReadMany(dst)
	assert.Equal(t, 5, n)
	assert.Equal(t, []Timestamp{0, 1, 2, 3, 4}, dst[:n])
}

func TestNewRingBuffer_PanicsOnNonPositiveCapacity(t *testing.T) {
	assert.Panics(t, func() { NewRingBuffer(0) })
	assert.Panics(t, func() { NewRingBuffer(-1) })
}

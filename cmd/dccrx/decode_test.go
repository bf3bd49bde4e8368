package main

import (
	"bytes"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// timestampLinesForFrame builds the newline-separated edge-microsecond
// stream `decode` expects for the frame {0xFF, 0x00} plus its checksum
// byte 0xFF (idle for all decoders), the same bit-framing layout
// framer_test.go and decoder_test.go in internal/dcc build from scratch.
func timestampLinesForFrame() string {
	const preambleOnes = 14
	const halfOne = 58
	const halfZero = 100

	bits := make([]int, 0, 64)
	for i := 0; i < preambleOnes; i++ {
		bits = append(bits, 1)
	}
	bits = append(bits, 0) // start bit
	for _, b := range []byte{0xFF, 0x00, 0xFF} {
		for i := 7; i >= 0; i-- {
			bits = append(bits, int((b>>uint(i))&1))
		}
		bits = append(bits, 0)
	}
	bits[len(bits)-1] = 1 // end bit instead of separator

	var sb strings.Builder
	t := 0
	sb.WriteString(strconv.Itoa(t))
	sb.WriteByte('\n')
	for _, b := range bits {
		half := halfOne
		if b == 0 {
			half = halfZero
		}
		t += half
		sb.WriteString(strconv.Itoa(t))
		sb.WriteByte('\n')
		t += half
		sb.WriteString(strconv.Itoa(t))
		sb.WriteByte('\n')
	}
	return sb.String()
}

func TestDecodeCommand_DecodesIdleForAllDecoders(t *testing.T) {
	cmd := newDecodeCommand()
	cmd.SetIn(strings.NewReader(timestampLinesForFrame()))
	out := &bytes.Buffer{}
	cmd.SetOut(out)

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "IdleForAllDecoders")
}

func TestDecodeCommand_SkipsUnparsableLines(t *testing.T) {
	cmd := newDecodeCommand()
	cmd.SetIn(strings.NewReader("not-a-number\n"))
	out := &bytes.Buffer{}
	cmd.SetOut(out)

	require.NoError(t, cmd.Execute())
	assert.Empty(t, out.String())
}

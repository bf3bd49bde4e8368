//go:build linux

package edgesource

import (
	"testing"

	serial "github.com/daedaluz/goserial"

	"github.com/stretchr/testify/assert"
)

func TestBaudFlag_KnownRates(t *testing.T) {
	assert.Equal(t, serial.B9600, baudFlag(9600))
	assert.Equal(t, serial.B115200, baudFlag(115200))
	assert.Equal(t, serial.B230400, baudFlag(230400))
}

func TestBaudFlag_UnknownRateDefaultsTo115200(t *testing.T) {
	assert.Equal(t, serial.B115200, baudFlag(31250))
}

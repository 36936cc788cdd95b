package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodePCM16(t *testing.T) {
	// Little-endian samples: 0, -32768, 32767, 16384.
	data := []byte{
		0x00, 0x00,
		0x00, 0x80,
		0xFF, 0x7F,
		0x00, 0x40,
	}

	samples, err := DecodePCM16(data)
	require.NoError(t, err)
	require.Len(t, samples, 4)

	assert.Equal(t, float32(0), samples[0])
	assert.Equal(t, float32(-1), samples[1])
	assert.InDelta(t, float64(32767)/32768, float64(samples[2]), 1e-6)
	assert.InDelta(t, 0.5, float64(samples[3]), 1e-6)
}

func TestDecodePCM16OddLength(t *testing.T) {
	_, err := DecodePCM16([]byte{0x00, 0x01, 0x02})
	assert.Error(t, err)
}

func TestDecodePCM16Empty(t *testing.T) {
	samples, err := DecodePCM16(nil)
	require.NoError(t, err)
	assert.Empty(t, samples)
}

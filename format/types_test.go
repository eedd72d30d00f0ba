package format

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestElementType_String(t *testing.T) {
	require.Equal(t, "double", TypeDouble.String())
	require.Equal(t, "objectID", TypeObjectID.String())
	require.Equal(t, "min key", TypeMinKey.String())
	require.Equal(t, "max key", TypeMaxKey.String())
	require.Equal(t, "Unknown", ElementType(0x06).String())
}

func TestParseCompressor(t *testing.T) {
	for _, c := range []CompressorID{CompressorNoop, CompressorSnappy, CompressorZlib, CompressorZstd, CompressorLZ4} {
		got, ok := ParseCompressor(c.String())
		require.True(t, ok)
		require.Equal(t, c, got)
	}

	_, ok := ParseCompressor("brotli")
	require.False(t, ok)
}

package format

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCompressionType_String(t *testing.T) {
	tests := []struct {
		compression CompressionType
		want        string
	}{
		{CompressionNone, "None"},
		{CompressionZstd, "Zstd"},
		{CompressionS2, "S2"},
		{CompressionLZ4, "LZ4"},
		{CompressionType(0x7f), "Unknown"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, tt.compression.String())
	}
}

func TestCompressionType_IsValid(t *testing.T) {
	require.True(t, CompressionZstd.IsValid())
	require.True(t, CompressionNone.IsValid())
	require.False(t, CompressionType(0).IsValid())
	require.False(t, CompressionType(0x7f).IsValid())
}

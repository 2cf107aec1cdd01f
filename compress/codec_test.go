package compress

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"physprop/errs"
	"physprop/format"
)

// samplePayload mimics a tagged JSON dataset: repetitive structure with
// small numeric variation, the shape archives actually carry.
func samplePayload() []byte {
	var buf bytes.Buffer
	for i := 0; i < 64; i++ {
		buf.WriteString(`{"@type":"propertyestimator.unit.Quantity","unit":"kilogram / meter ** 3","value":785.0}`)
		buf.WriteByte(byte('0' + i%10))
	}

	return buf.Bytes()
}

func TestCodecs_RoundTrip(t *testing.T) {
	payload := samplePayload()

	tests := []struct {
		name        string
		compression format.CompressionType
	}{
		{"none", format.CompressionNone},
		{"zstd", format.CompressionZstd},
		{"s2", format.CompressionS2},
		{"lz4", format.CompressionLZ4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			codec, err := GetCodec(tt.compression)
			require.NoError(t, err)

			compressed, err := codec.Compress(payload)
			require.NoError(t, err)

			restored, err := codec.Decompress(compressed)
			require.NoError(t, err)
			require.Equal(t, payload, restored)
		})
	}
}

func TestCodecs_CompressReducesSize(t *testing.T) {
	payload := samplePayload()

	for _, compression := range []format.CompressionType{
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	} {
		codec, err := GetCodec(compression)
		require.NoError(t, err)

		compressed, err := codec.Compress(payload)
		require.NoError(t, err)
		require.Less(t, len(compressed), len(payload), compression.String())
	}
}

func TestCodecs_EmptyInput(t *testing.T) {
	for _, compression := range []format.CompressionType{
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	} {
		codec, err := GetCodec(compression)
		require.NoError(t, err)

		compressed, err := codec.Compress(nil)
		require.NoError(t, err)

		restored, err := codec.Decompress(compressed)
		require.NoError(t, err)
		require.Empty(t, restored)
	}
}

func TestGetCodec_Invalid(t *testing.T) {
	_, err := GetCodec(format.CompressionType(0x7f))
	require.ErrorIs(t, err, errs.ErrInvalidCompression)
}

func TestZstd_RejectsCorruptedData(t *testing.T) {
	codec, err := GetCodec(format.CompressionZstd)
	require.NoError(t, err)

	_, err = codec.Decompress([]byte("definitely not a zstd frame"))
	require.Error(t, err)
}

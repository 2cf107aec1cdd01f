package compress

// ZstdCompressor backs format.CompressionZstd, the default for dataset
// archives. Tagged JSON payloads typically shrink 10-20x under Zstd because
// type tags, field names and unit strings repeat for every record.
//
// Two implementations exist behind build tags: a cgo binding (valyala/gozstd)
// and a pure-Go fallback (klauspost/compress/zstd). Both produce standard
// Zstandard frames, so archives written by one can be read by the other.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}

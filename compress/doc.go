// Package compress provides the compression codecs used for dataset archive
// payloads.
//
// A dataset serialized to tagged JSON is highly repetitive (type tags, field
// names and unit strings recur for every record), so archives compress very
// well. The package supports four algorithms, selected by a
// format.CompressionType stored in the archive frame:
//
//   - None: payload stored verbatim
//   - Zstd: best ratio, the default for archives
//   - S2: balanced ratio and speed
//   - LZ4: fastest decompression
//
// All codecs implement the Codec interface:
//
//	codec, err := compress.GetCodec(format.CompressionZstd)
//	compressed, err := codec.Compress(payload)
//	payload, err = codec.Decompress(compressed)
//
// Codecs are stateless or internally pooled, and safe for concurrent use.
package compress

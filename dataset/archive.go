package dataset

import (
	"fmt"

	"physprop/compress"
	"physprop/endian"
	"physprop/errs"
	"physprop/format"
	"physprop/internal/options"
)

// Archive frame layout, all multi-byte fields little-endian:
//
//	offset 0: magic "PPDS" (4 bytes)
//	offset 4: frame version (1 byte)
//	offset 5: compression type (1 byte)
//	offset 6: payload length (uint32)
//	offset 10: compressed JSON payload
const (
	archiveMagic   = "PPDS"
	archiveVersion = 1

	archiveHeaderSize = len(archiveMagic) + 2 + 4
)

type archiveConfig struct {
	compression format.CompressionType
	codec       *Codec
}

// ArchiveOption configures archive reading and writing.
type ArchiveOption = options.Option[*archiveConfig]

// WithCompression selects the compression applied to the JSON payload. The
// default is Zstd. On read this is ignored; the frame header names the
// algorithm the payload was written with.
func WithCompression(compression format.CompressionType) ArchiveOption {
	return options.New(func(c *archiveConfig) error {
		if !compression.IsValid() {
			return fmt.Errorf("%w: %s (0x%02x)", errs.ErrInvalidCompression, compression, uint8(compression))
		}
		c.compression = compression

		return nil
	})
}

// WithCodec substitutes the JSON codec used inside the archive, for example
// one built with WithoutKeyVerification.
func WithCodec(codec *Codec) ArchiveOption {
	return options.New(func(c *archiveConfig) error {
		if codec == nil {
			return fmt.Errorf("%w: nil codec", errs.ErrMalformedRecord)
		}
		c.codec = codec

		return nil
	})
}

func newArchiveConfig(opts ...ArchiveOption) (*archiveConfig, error) {
	cfg := &archiveConfig{
		compression: format.CompressionZstd,
		codec:       defaultCodec,
	}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}

// WriteArchive serializes a dataset into a framed, compressed archive.
func WriteArchive(ds *PhysicalPropertyDataSet, opts ...ArchiveOption) ([]byte, error) {
	cfg, err := newArchiveConfig(opts...)
	if err != nil {
		return nil, err
	}

	payload, err := cfg.codec.Encode(ds)
	if err != nil {
		return nil, err
	}

	codec, err := compress.GetCodec(cfg.compression)
	if err != nil {
		return nil, err
	}
	compressed, err := codec.Compress(payload)
	if err != nil {
		return nil, err
	}

	engine := endian.GetLittleEndianEngine()
	buf := make([]byte, 0, archiveHeaderSize+len(compressed))
	buf = append(buf, archiveMagic...)
	buf = append(buf, archiveVersion, byte(cfg.compression))
	buf = engine.AppendUint32(buf, uint32(len(compressed)))
	buf = append(buf, compressed...)

	return buf, nil
}

// ReadArchive parses a framed archive and decodes the dataset it carries.
// Frame violations fail with errs.ErrInvalidArchive; an unsupported
// compression byte fails with errs.ErrInvalidCompression.
func ReadArchive(data []byte, opts ...ArchiveOption) (*PhysicalPropertyDataSet, error) {
	cfg, err := newArchiveConfig(opts...)
	if err != nil {
		return nil, err
	}

	if len(data) < archiveHeaderSize {
		return nil, fmt.Errorf("%w: %d bytes is shorter than the %d byte header",
			errs.ErrInvalidArchive, len(data), archiveHeaderSize)
	}
	if string(data[:len(archiveMagic)]) != archiveMagic {
		return nil, fmt.Errorf("%w: bad magic %q", errs.ErrInvalidArchive, data[:len(archiveMagic)])
	}
	if version := data[len(archiveMagic)]; version != archiveVersion {
		return nil, fmt.Errorf("%w: unsupported frame version %d", errs.ErrInvalidArchive, version)
	}

	compression := format.CompressionType(data[len(archiveMagic)+1])
	codec, err := compress.GetCodec(compression)
	if err != nil {
		return nil, err
	}

	engine := endian.GetLittleEndianEngine()
	payloadLen := engine.Uint32(data[len(archiveMagic)+2 : archiveHeaderSize])
	payload := data[archiveHeaderSize:]
	if uint32(len(payload)) != payloadLen {
		return nil, fmt.Errorf("%w: header declares %d payload bytes, frame carries %d",
			errs.ErrInvalidArchive, payloadLen, len(payload))
	}

	decompressed, err := codec.Decompress(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrInvalidArchive, err)
	}

	return cfg.codec.Decode(decompressed)
}

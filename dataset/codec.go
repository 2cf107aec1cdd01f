package dataset

import (
	"fmt"

	"physprop/errs"
	"physprop/internal/options"
)

// Codec serializes datasets to and from their tagged JSON form. The codec
// is pure and holds no mutable state, so one instance may be shared freely
// across goroutines.
type Codec struct {
	verifyKeys bool
}

// CodecOption configures a Codec.
type CodecOption = options.Option[*Codec]

// WithoutKeyVerification disables the recomputation check of substance
// keys on decode. The check defends against hand-edited or corrupted
// payloads; disable it only for trusted inputs where decode latency
// matters.
func WithoutKeyVerification() CodecOption {
	return options.NoError(func(c *Codec) {
		c.verifyKeys = false
	})
}

// NewCodec creates a codec. By default substance keys are verified on
// decode.
func NewCodec(opts ...CodecOption) (*Codec, error) {
	c := &Codec{verifyKeys: true}
	if err := options.Apply(c, opts...); err != nil {
		return nil, err
	}

	return c, nil
}

var defaultCodec = &Codec{verifyKeys: true}

// Encode serializes a dataset with the default codec.
func Encode(ds *PhysicalPropertyDataSet) ([]byte, error) {
	return defaultCodec.Encode(ds)
}

// Decode deserializes a dataset with the default codec.
func Decode(data []byte) (*PhysicalPropertyDataSet, error) {
	return defaultCodec.Decode(data)
}

// Decode parses a tagged JSON document into a dataset.
//
// Decoding dispatches on "@type" tags through the decoder registry; an
// unknown tag anywhere in the document fails with errs.ErrUnrecognizedType.
// Every record is validated, and unless disabled via
// WithoutKeyVerification, each substance key is recomputed from its decoded
// substance and compared against the stored key, failing with
// errs.ErrKeyMismatch on divergence.
func (c *Codec) Decode(data []byte) (*PhysicalPropertyDataSet, error) {
	value, err := decodeValue(data, "$")
	if err != nil {
		return nil, err
	}

	ds, ok := value.(*PhysicalPropertyDataSet)
	if !ok {
		return nil, fmt.Errorf("%w: $: document is not a %s", errs.ErrMalformedRecord, TagDataSet)
	}

	if c.verifyKeys {
		if err := ds.verifySubstanceKeys(); err != nil {
			return nil, err
		}
	}

	return ds, nil
}

// verifySubstanceKeys recomputes every substance key and compares it with
// the key the record is filed under.
func (d *PhysicalPropertyDataSet) verifySubstanceKeys() error {
	for key, records := range d.properties {
		for i, p := range records {
			identifier := p.Substance.Identifier()
			if identifier != key {
				return fmt.Errorf("%w: properties[%q][%d]: decoded substance renders to %q",
					errs.ErrKeyMismatch, key, i, identifier)
			}
		}
	}

	return nil
}

// Package errs defines the sentinel errors shared across physprop packages.
//
// All errors surfaced by the library wrap one of these sentinels, so callers
// can classify failures with errors.Is regardless of the context added by the
// failing package:
//
//	ds, err := dataset.Decode(data)
//	if errors.Is(err, errs.ErrUnrecognizedType) {
//	    // the payload carries a type tag this build does not know
//	}
package errs

import "errors"

// Codec errors, reported while decoding or validating a serialized dataset.
var (
	// ErrUnrecognizedType indicates an @type tag with no registered decoder.
	ErrUnrecognizedType = errors.New("unrecognized type tag")

	// ErrMalformedRecord indicates a required field is missing or has the
	// wrong shape. The wrapping error carries the offending field path.
	ErrMalformedRecord = errors.New("malformed record")

	// ErrKeyMismatch indicates a substance key stored in a dataset diverges
	// from the key recomputed from the decoded substance.
	ErrKeyMismatch = errors.New("substance key mismatch")
)

// Unit and quantity errors.
var (
	// ErrInvalidUnit indicates a unit expression that does not parse against
	// the unit vocabulary.
	ErrInvalidUnit = errors.New("invalid unit")

	// ErrDimensionMismatch indicates two quantities with incompatible
	// physical dimensions were combined, compared or converted.
	ErrDimensionMismatch = errors.New("dimension mismatch")
)

// Substance errors.
var (
	// ErrInvalidMoleFraction indicates mole fractions that are out of range
	// or do not sum to one across a substance's components.
	ErrInvalidMoleFraction = errors.New("invalid mole fraction")

	// ErrDuplicateComponent indicates two components of a substance share
	// the same label.
	ErrDuplicateComponent = errors.New("duplicate component")
)

// Archive errors, reported while reading a framed dataset archive.
var (
	// ErrInvalidArchive indicates a payload that is not a physprop archive,
	// or one with a corrupted or truncated frame.
	ErrInvalidArchive = errors.New("invalid archive")

	// ErrInvalidCompression indicates an archive frame referencing a
	// compression algorithm this build does not support.
	ErrInvalidCompression = errors.New("invalid compression")
)

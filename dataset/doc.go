// Package dataset implements collections of physical property records and
// their serialized form.
//
// A PhysicalPropertyDataSet partitions records by substance identifier and
// supports merging (deduplicated by record id) and the filter family used
// for dataset curation.
//
// # Serialization
//
// Datasets serialize to tagged, self-describing JSON: every non-primitive
// value carries an "@type" field naming its concrete type, and decoding
// dispatches on that tag through an explicit registry. Unknown tags fail
// with errs.ErrUnrecognizedType; shape violations fail with
// errs.ErrMalformedRecord carrying the offending field path.
//
//	data, err := dataset.Encode(ds)
//	ds2, err := dataset.Decode(data)
//
// The canonical form fixes struct field order, sorts JSON object keys, and
// formats floats with Go's shortest round-trip representation, so encoding
// the same dataset twice yields identical bytes.
//
// # Archives
//
// WriteArchive wraps the JSON payload in a small framed container with
// optional compression (Zstd by default); ReadArchive reverses it. Both
// work on in-memory byte slices, leaving file and network I/O to the
// caller.
package dataset

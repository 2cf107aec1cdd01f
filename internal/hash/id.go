// Package hash provides the hash function used to derive numeric substance
// identifiers from their rendered string keys.
package hash

import "github.com/cespare/xxhash/v2"

// ID computes the xxHash64 of a substance identifier string.
//
// The hash is deterministic, so the same substance always maps to the same
// 64-bit identifier regardless of which dataset it appears in. It is used for
// fast substance lookups and cross-dataset indexing; the rendered string key
// remains the authoritative identity.
func ID(identifier string) uint64 {
	return xxhash.Sum64String(identifier)
}

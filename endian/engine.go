// Package endian provides the byte order engine used by the dataset archive
// frame.
//
// It combines the ByteOrder and AppendByteOrder interfaces from
// encoding/binary into a single EndianEngine interface so the archive writer
// can both append header fields to a growing buffer and read them back from
// a fixed offset with one value.
//
// Archive frames are always little-endian; GetBigEndianEngine exists for
// tooling that needs to inspect foreign byte orders.
package endian

import "encoding/binary"

// EndianEngine combines the ByteOrder and AppendByteOrder interfaces from
// encoding/binary. It is satisfied by binary.LittleEndian and
// binary.BigEndian, and the returned instances are immutable and safe for
// concurrent use.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine used by archive
// frames.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns a big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

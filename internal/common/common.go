// Package common holds the fixed-width little-endian helpers shared by the
// chunk codec and the frame envelope.
package common

import "encoding/binary"

const (
	// Int64Size is the payload width of every integer-valued component.
	Int64Size = 8
	// LenSize is the width of a chunk or frame length field.
	LenSize = 4
)

// AppendUint32 appends x in little-endian order.
func AppendUint32(dst []byte, x uint32) []byte {
	return binary.LittleEndian.AppendUint32(dst, x)
}

// Uint32 reads a little-endian uint32 from the first LenSize bytes of b.
// The caller guarantees len(b) >= LenSize.
func Uint32(b []byte) uint32 {
	return binary.LittleEndian.Uint32(b)
}

// AppendInt64 appends v as 8 little-endian bytes.
func AppendInt64(dst []byte, v int64) []byte {
	return binary.LittleEndian.AppendUint64(dst, uint64(v))
}

// ReadInt64 decodes an int64 payload. ok is false unless b is exactly
// Int64Size bytes long.
func ReadInt64(b []byte) (v int64, ok bool) {
	if len(b) != Int64Size {
		return 0, false
	}
	return int64(binary.LittleEndian.Uint64(b)), true
}

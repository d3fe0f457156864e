package binary

import "encoding/binary"

// Endianness represents byte order for multi-byte values.
type Endianness int

const (
	// BigEndian uses big-endian byte order.
	// Used by: ID3v2 sizes and flags, sync-safe integers.
	BigEndian Endianness = iota

	// LittleEndian uses little-endian byte order.
	LittleEndian
)

func (e Endianness) order() binary.ByteOrder {
	if e == LittleEndian {
		return binary.LittleEndian
	}
	return binary.BigEndian
}

// String returns "big" or "little".
func (e Endianness) String() string {
	if e == LittleEndian {
		return "little"
	}
	return "big"
}

// ReadEndian reads a numeric value of type T at the given offset with specified byte order.
//
// This is the low-level function used by Read and ReadValue.
//
// Example:
//
//	flags, err := binary.ReadEndian[uint16](sr, offset, "frame flags", binary.BigEndian)
func ReadEndian[T uint8 | uint16 | uint32 | uint64](sr *SafeReader, off int64, what string, endian Endianness) (T, error) {
	buf := make([]byte, sizeOf[T]())
	if err := sr.ReadAt(buf, off, what); err != nil {
		var zero T
		return zero, err
	}
	return decodeUint[T](buf, endian.order()), nil
}

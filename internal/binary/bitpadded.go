package binary

import (
	"fmt"

	"github.com/simonhull/id3tag/internal/types"
)

// SyncSafeBits is the number of significant bits per byte in an ID3v2
// sync-safe integer. The top bit of every byte stays clear so the bytes can
// never form an MPEG frame sync.
const SyncSafeBits = 7

// BitPaddedInt is an integer together with the layout it was read with, so
// writing it back reproduces the same byte width regardless of its value.
type BitPaddedInt struct {
	Value  uint64
	Bits   uint
	Endian Endianness
	Width  int
}

// DecodeBitPadded assembles b into an integer where every byte carries only
// its low bits bits. Any set high bits are masked off.
func DecodeBitPadded(b []byte, bits uint, endian Endianness) BitPaddedInt {
	mask := byte(uint(1)<<bits - 1)
	var v uint64
	for i := range b {
		idx := i
		if endian == LittleEndian {
			idx = len(b) - 1 - i
		}
		v = v<<bits | uint64(b[idx]&mask)
	}
	return BitPaddedInt{Value: v, Bits: bits, Endian: endian, Width: len(b)}
}

// Bytes encodes the value with the layout it was decoded with.
func (b BitPaddedInt) Bytes() ([]byte, error) {
	return EncodeBitPadded(b.Value, b.Bits, b.Endian, b.Width)
}

// Int returns the value as an int.
func (b BitPaddedInt) Int() int {
	return int(b.Value)
}

// EncodeBitPadded writes v into exactly width bytes of bits significant bits
// each. A value needing more than width bytes fails with *types.EncodingError;
// it is never truncated.
func EncodeBitPadded(v uint64, bits uint, endian Endianness, width int) ([]byte, error) {
	if bits == 0 || bits > 8 {
		return nil, fmt.Errorf("bit-padded integer: invalid bit density %d", bits)
	}

	mask := uint64(1)<<bits - 1
	out := make([]byte, width)
	rest := v
	for i := 0; i < width; i++ {
		idx := width - 1 - i
		if endian == LittleEndian {
			idx = i
		}
		out[idx] = byte(rest & mask)
		rest >>= bits
	}
	if rest != 0 {
		return nil, &types.EncodingError{Value: v, Bits: bits, Width: width}
	}
	return out, nil
}

// SyncSafe decodes a big-endian 7-bit integer such as an ID3v2 tag size.
func SyncSafe(b []byte) int {
	return DecodeBitPadded(b, SyncSafeBits, BigEndian).Int()
}

// PutSyncSafe encodes v as a big-endian 7-bit integer of width bytes.
func PutSyncSafe(v int, width int) ([]byte, error) {
	if v < 0 {
		return nil, fmt.Errorf("sync-safe integer: negative value %d", v)
	}
	return EncodeBitPadded(uint64(v), SyncSafeBits, BigEndian, width)
}

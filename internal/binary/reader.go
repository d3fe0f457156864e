// Package binary provides bounds-checked binary reading and writing
// primitives plus the bit-padded integer codec used by ID3 size fields.
package binary

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/simonhull/id3tag/internal/types"
)

// SafeReader wraps io.ReaderAt with bounds checking and helpful error messages.
type SafeReader struct {
	r    io.ReaderAt
	path string
	size int64
}

// NewSafeReader creates a new SafeReader.
func NewSafeReader(r io.ReaderAt, size int64, path string) *SafeReader {
	return &SafeReader{
		r:    r,
		size: size,
		path: path,
	}
}

// Path returns the file path associated with this reader.
func (sr *SafeReader) Path() string {
	return sr.path
}

// Size returns the total number of readable bytes.
func (sr *SafeReader) Size() int64 {
	return sr.size
}

// ReadAt reads len(b) bytes at the given offset. Reads that would cross the
// end of the source fail with *types.EndOfInputError before touching the
// underlying reader.
func (sr *SafeReader) ReadAt(b []byte, off int64, what string) error {
	if off < 0 || off > sr.size || off+int64(len(b)) > sr.size {
		return &types.EndOfInputError{
			Path:   sr.path,
			What:   what,
			Offset: off,
			Length: len(b),
			Size:   sr.size,
		}
	}
	if len(b) == 0 {
		return nil
	}

	n, err := sr.r.ReadAt(b, off)
	if err != nil && err != io.EOF {
		return fmt.Errorf("%s: failed to read %s at offset %d: %w", sr.path, what, off, err)
	}

	if n < len(b) {
		return &types.EndOfInputError{
			Path:   sr.path,
			What:   what,
			Offset: off + int64(n),
			Length: len(b) - n,
			Size:   sr.size,
		}
	}

	return nil
}

// Tail reads the last n bytes of the source, the equivalent of seeking n
// bytes back from the end and reading to EOF.
func (sr *SafeReader) Tail(n int, what string) ([]byte, error) {
	buf := make([]byte, n)
	if err := sr.ReadAt(buf, sr.size-int64(n), what); err != nil {
		return nil, err
	}
	return buf, nil
}

// Read reads a big-endian value of type T from the given offset.
func Read[T uint8 | uint16 | uint32 | uint64](sr *SafeReader, off int64, what string) (T, error) {
	return ReadEndian[T](sr, off, what, BigEndian)
}

// Reader provides sequential reading with automatic offset tracking.
type Reader struct {
	*SafeReader
	offset int64
}

// NewReader creates a new Reader starting at the given offset.
func NewReader(sr *SafeReader, offset int64) *Reader {
	return &Reader{
		SafeReader: sr,
		offset:     offset,
	}
}

// Next reads exactly n bytes and advances the offset. Short input fails with
// *types.EndOfInputError and leaves the offset untouched.
func (r *Reader) Next(n int, what string) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("%s: negative read of %d bytes for %s", r.path, n, what)
	}
	if r.offset+int64(n) > r.size {
		return nil, &types.EndOfInputError{
			Path:   r.path,
			What:   what,
			Offset: r.offset,
			Length: n,
			Size:   r.size,
		}
	}

	buf := make([]byte, n)
	if err := r.SafeReader.ReadAt(buf, r.offset, what); err != nil {
		return nil, err
	}

	r.offset += int64(n)
	return buf, nil
}

// ReadValue reads a big-endian numeric value and advances the offset.
func ReadValue[T uint8 | uint16 | uint32 | uint64](r *Reader, what string) (T, error) {
	val, err := Read[T](r.SafeReader, r.offset, what)
	if err != nil {
		var zero T
		return zero, err
	}

	r.offset += int64(sizeOf[T]())
	return val, nil
}

// ReadString reads a string of the given length and advances the offset.
func (r *Reader) ReadString(length int, what string) (string, error) {
	buf, err := r.Next(length, what)
	if err != nil {
		return "", err
	}
	return string(buf), nil
}

// Offset returns the current offset.
func (r *Reader) Offset() int64 {
	return r.offset
}

// ChainReader allows chaining multiple reads with deferred error checking.
// This avoids repetitive "if err != nil" checks.
type ChainReader struct {
	*Reader
	err error
}

// NewChainReader creates a new ChainReader.
func NewChainReader(r *Reader) *ChainReader {
	return &ChainReader{Reader: r}
}

// ReadChained reads a value with deferred error checking.
// If a previous read failed, returns zero value without attempting read.
func ReadChained[T uint8 | uint16 | uint32 | uint64](cr *ChainReader, what string) T {
	if cr.err != nil {
		var zero T
		return zero
	}

	val, err := ReadValue[T](cr.Reader, what)
	if err != nil {
		cr.err = err
		var zero T
		return zero
	}

	return val
}

// String reads a string, accumulating any error.
func (cr *ChainReader) String(length int, what string) string {
	if cr.err != nil {
		return ""
	}

	val, err := cr.Reader.ReadString(length, what)
	if err != nil {
		cr.err = err
		return ""
	}

	return val
}

// Bytes reads n raw bytes, accumulating any error.
func (cr *ChainReader) Bytes(n int, what string) []byte {
	if cr.err != nil {
		return nil
	}

	val, err := cr.Reader.Next(n, what)
	if err != nil {
		cr.err = err
		return nil
	}

	return val
}

// Error returns the accumulated error, if any.
func (cr *ChainReader) Error() error {
	return cr.err
}

func sizeOf[T uint8 | uint16 | uint32 | uint64]() int {
	var zero T
	switch any(zero).(type) {
	case uint8:
		return 1
	case uint16:
		return 2
	case uint32:
		return 4
	default:
		return 8
	}
}

func decodeUint[T uint8 | uint16 | uint32 | uint64](buf []byte, order binary.ByteOrder) T {
	var zero T
	switch any(zero).(type) {
	case uint8:
		return T(buf[0])
	case uint16:
		return T(order.Uint16(buf))
	case uint32:
		return T(order.Uint32(buf))
	default:
		return T(order.Uint64(buf))
	}
}

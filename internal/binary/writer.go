package binary

import (
	"encoding/binary"
	"io"
)

// SafeWriter wraps io.Writer with ID3 encoding helpers.
type SafeWriter struct {
	w io.Writer
}

// NewSafeWriter creates a new SafeWriter.
func NewSafeWriter(w io.Writer) *SafeWriter {
	return &SafeWriter{w: w}
}

// WriteBytes writes raw bytes to the underlying writer.
func (sw *SafeWriter) WriteBytes(b []byte) error {
	_, err := sw.w.Write(b)
	return err
}

// WriteString writes a string as bytes to the underlying writer.
func (sw *SafeWriter) WriteString(s string) error {
	return sw.WriteBytes([]byte(s))
}

// WriteSyncSafe writes v as a sync-safe integer of width bytes.
func (sw *SafeWriter) WriteSyncSafe(v int, width int) error {
	b, err := PutSyncSafe(v, width)
	if err != nil {
		return err
	}
	return sw.WriteBytes(b)
}

// WriteZeros writes n zero bytes (tag padding).
func (sw *SafeWriter) WriteZeros(n int) error {
	if n <= 0 {
		return nil
	}
	return sw.WriteBytes(make([]byte, n))
}

// Write writes a value of type T in big-endian byte order.
// T must be uint8, uint16, uint32, or uint64.
func Write[T uint8 | uint16 | uint32 | uint64](sw *SafeWriter, val T) error {
	var buf []byte

	var zero T
	switch any(zero).(type) {
	case uint8:
		buf = []byte{byte(val)}
	case uint16:
		buf = make([]byte, 2)
		binary.BigEndian.PutUint16(buf, uint16(val))
	case uint32:
		buf = make([]byte, 4)
		binary.BigEndian.PutUint32(buf, uint32(val))
	case uint64:
		buf = make([]byte, 8)
		binary.BigEndian.PutUint64(buf, uint64(val))
	}

	return sw.WriteBytes(buf)
}

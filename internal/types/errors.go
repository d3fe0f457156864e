// Package types provides the error taxonomy and diagnostics shared by the
// ID3 codec packages.
package types

import "fmt"

// EndOfInputError is returned when a read needs more bytes than the source holds.
type EndOfInputError struct {
	Path   string
	What   string
	Offset int64
	Length int
	Size   int64
}

func (e *EndOfInputError) Error() string {
	if e.Offset >= e.Size {
		return fmt.Sprintf("%s: offset %d out of bounds (size: %d) while reading %s",
			e.Path, e.Offset, e.Size, e.What)
	}
	return fmt.Sprintf("%s: read of %d bytes at offset %d would exceed size %d while reading %s",
		e.Path, e.Length, e.Offset, e.Size, e.What)
}

// NoTagError is returned when the source does not start with an ID3v2 tag.
// Load recovers from it through the ID3v1 fallback.
type NoTagError struct {
	Path   string
	Reason string
}

func (e *NoTagError) Error() string {
	return fmt.Sprintf("%s: no ID3 tag: %s", e.Path, e.Reason)
}

// UnsupportedVersionError is returned for an ID3v2 major version other than 3 or 4.
type UnsupportedVersionError struct {
	Path  string
	Major byte
}

func (e *UnsupportedVersionError) Error() string {
	return fmt.Sprintf("%s: ID3v2.%d not supported", e.Path, e.Major)
}

// InvalidHeaderError is returned when a header violates the format, e.g.
// reserved flag bits are set while strict header checks are enabled.
type InvalidHeaderError struct {
	Path   string
	Reason string
	Flags  byte
}

func (e *InvalidHeaderError) Error() string {
	return fmt.Sprintf("%s: invalid ID3 header (flags %#02x): %s", e.Path, e.Flags, e.Reason)
}

// MalformedStreamError reports a broken unsynchronization scheme.
type MalformedStreamError struct {
	Reason string
	Offset int
}

func (e *MalformedStreamError) Error() string {
	return fmt.Sprintf("malformed unsynchronized stream at byte %d: %s", e.Offset, e.Reason)
}

// UnsupportedEncryptionError is returned for frames carrying the encryption flag.
// Decryption is not implemented.
type UnsupportedEncryptionError struct {
	FrameID string
}

func (e *UnsupportedEncryptionError) Error() string {
	return fmt.Sprintf("frame %s: encrypted frames are not supported", e.FrameID)
}

// InflateLimitError is returned when a compressed frame expands past its
// declared size, or past a fixed multiple of its compressed size when it
// declares none.
type InflateLimitError struct {
	FrameID string
	Limit   int
}

func (e *InflateLimitError) Error() string {
	return fmt.Sprintf("frame %s: decompressed data exceeds %d bytes", e.FrameID, e.Limit)
}

// ValidationError is returned when a value does not satisfy a field spec.
type ValidationError struct {
	Value  any
	Spec   string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: invalid value %#v: %s", e.Spec, e.Value, e.Reason)
}

// EncodingError is returned when an integer does not fit the byte width it
// has to be written with.
type EncodingError struct {
	Value uint64
	Bits  uint
	Width int
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("value %d too wide for %d bytes of %d bits", e.Value, e.Width, e.Bits)
}

// Warning represents a non-fatal issue encountered during parsing.
//
// Warnings are collected on the Tag while loading. Examples include:
//   - A registered frame whose body could not be decoded
//   - An encrypted frame
//   - A header failure recovered through the ID3v1 fallback
type Warning struct {
	// Stage where the warning occurred
	Stage string // "header", "frame", "fallback"

	// Warning message
	Message string

	// Byte offset where the issue occurred (0 if not applicable)
	Offset int64
}

// String returns a human-readable warning message.
func (w Warning) String() string {
	if w.Offset > 0 {
		return fmt.Sprintf("%s (at offset %d): %s", w.Stage, w.Offset, w.Message)
	}
	return fmt.Sprintf("%s: %s", w.Stage, w.Message)
}

package spec

import (
	"bytes"
	"fmt"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// Encoding is the text encoding selected by a frame's encoding marker byte.
type Encoding byte

const (
	Latin1  Encoding = 0 // ISO-8859-1
	UTF16   Encoding = 1 // UTF-16 with byte order mark
	UTF16BE Encoding = 2 // UTF-16 big-endian, no BOM (ID3v2.4)
	UTF8    Encoding = 3 // UTF-8 (ID3v2.4)
)

// Valid reports whether e is one of the four defined encodings.
func (e Encoding) Valid() bool {
	return e <= UTF8
}

// Wide reports whether e uses 16-bit code units and a two byte terminator.
func (e Encoding) Wide() bool {
	return e == UTF16 || e == UTF16BE
}

// Terminator returns the null terminator for e.
func (e Encoding) Terminator() []byte {
	if e.Wide() {
		return []byte{0, 0}
	}
	return []byte{0}
}

func (e Encoding) String() string {
	switch e {
	case Latin1:
		return "latin1"
	case UTF16:
		return "utf16"
	case UTF16BE:
		return "utf16be"
	case UTF8:
		return "utf8"
	default:
		return fmt.Sprintf("encoding(%d)", byte(e))
	}
}

// Decode converts b from e into a Go string.
func (e Encoding) Decode(b []byte) (string, error) {
	return e.decode(b, unicode.LittleEndian)
}

// decode is Decode with the byte order assumed for BOM-less UTF-16 data.
func (e Encoding) decode(b []byte, fallback unicode.Endianness) (string, error) {
	switch e {
	case Latin1:
		out, err := charmap.ISO8859_1.NewDecoder().Bytes(b)
		if err != nil {
			return "", err
		}
		return string(out), nil
	case UTF16:
		if len(b) == 0 {
			return "", nil
		}
		out, err := unicode.UTF16(fallback, unicode.UseBOM).NewDecoder().Bytes(b)
		if err != nil {
			return "", err
		}
		return string(out), nil
	case UTF16BE:
		out, err := unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewDecoder().Bytes(b)
		if err != nil {
			return "", err
		}
		return string(out), nil
	case UTF8:
		return string(b), nil
	default:
		return "", fmt.Errorf("unknown text encoding %d", byte(e))
	}
}

// Encode converts s into bytes of encoding e. Latin-1 fails for runes it
// cannot represent.
func (e Encoding) Encode(s string) ([]byte, error) {
	switch e {
	case Latin1:
		return charmap.ISO8859_1.NewEncoder().Bytes([]byte(s))
	case UTF16:
		return unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder().Bytes([]byte(s))
	case UTF16BE:
		return unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewEncoder().Bytes([]byte(s))
	case UTF8:
		return []byte(s), nil
	default:
		return nil, fmt.Errorf("unknown text encoding %d", byte(e))
	}
}

// byteOrder returns the byte order announced by a leading BOM, or fallback.
func byteOrder(b []byte, fallback unicode.Endianness) unicode.Endianness {
	switch {
	case bytes.HasPrefix(b, []byte{0xFE, 0xFF}):
		return unicode.BigEndian
	case bytes.HasPrefix(b, []byte{0xFF, 0xFE}):
		return unicode.LittleEndian
	default:
		return fallback
	}
}

// splitTerminated cuts data at the first terminator of e. For 16-bit
// encodings only terminators starting at an even offset count, so a zero
// high byte followed by a zero low byte is not mistaken for one.
func splitTerminated(e Encoding, data []byte) (value, rest []byte) {
	if e.Wide() {
		for i := 0; i+1 < len(data); i += 2 {
			if data[i] == 0 && data[i+1] == 0 {
				return data[:i], data[i+2:]
			}
		}
		return data, nil
	}

	if i := bytes.IndexByte(data, 0); i >= 0 {
		return data[:i], data[i+1:]
	}
	return data, nil
}

// EncodedBytes is text still in its on-disk form. Text specs accept it in
// Validate and decode it explicitly with the carried encoding.
type EncodedBytes struct {
	Data     []byte
	Encoding Encoding
}

// Text decodes the bytes.
func (b EncodedBytes) Text() (string, error) {
	return b.Encoding.Decode(b.Data)
}

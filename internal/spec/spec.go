// Package spec declares the binary layout of ID3v2 frame bodies.
//
// A Spec is a stateless strategy that reads one typed field from a byte
// cursor, writes it back, and validates values supplied by callers. Frames
// declare their body as a Layout: an ordered table of specs bound to the
// struct fields that hold the decoded values.
package spec

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/unicode"

	"github.com/simonhull/id3tag/internal/types"
)

// Frame is the view a spec has of the frame owning the field.
type Frame interface {
	// TextEncoding returns the encoding selected by the frame's marker byte.
	TextEncoding() Encoding
}

// Spec reads, writes and validates one field of type T.
type Spec[T any] interface {
	Name() string
	// Read decodes the field from the front of data and returns the rest.
	Read(f Frame, data []byte) (T, []byte, error)
	Write(f Frame, v T) ([]byte, error)
	// Validate coerces v into T. nil yields the spec's empty default.
	Validate(f Frame, v any) (T, error)
}

type named string

func (n named) Name() string { return string(n) }

func invalid(name named, v any, reason string) error {
	return &types.ValidationError{Spec: string(name), Value: v, Reason: reason}
}

func short(name named, need, have int) error {
	return &types.EndOfInputError{
		Path:   "frame body",
		What:   string(name),
		Offset: int64(have),
		Length: need - have,
		Size:   int64(have),
	}
}

// ByteSpec is a single raw byte.
type ByteSpec struct{ named }

// Byte returns a ByteSpec called name.
func Byte(name string) ByteSpec { return ByteSpec{named(name)} }

func (s ByteSpec) Read(_ Frame, data []byte) (byte, []byte, error) {
	if len(data) < 1 {
		return 0, data, short(s.named, 1, 0)
	}
	return data[0], data[1:], nil
}

func (s ByteSpec) Write(_ Frame, v byte) ([]byte, error) {
	return []byte{v}, nil
}

func (s ByteSpec) Validate(_ Frame, v any) (byte, error) {
	if v == nil {
		return 0, nil
	}
	n, ok := toInt(v)
	if !ok || n < 0 || n > 255 {
		return 0, invalid(s.named, v, "want an integer in 0..255")
	}
	return byte(n), nil
}

// EncodingSpec is the text encoding marker byte.
type EncodingSpec struct{ named }

// EncodingMarker returns an EncodingSpec called name.
func EncodingMarker(name string) EncodingSpec { return EncodingSpec{named(name)} }

// Read treats a first byte of 16 or more as text, not a marker: the byte is
// left in place and the frame falls back to Latin-1.
func (s EncodingSpec) Read(_ Frame, data []byte) (Encoding, []byte, error) {
	if len(data) < 1 {
		return Latin1, data, short(s.named, 1, 0)
	}
	if data[0] >= 16 {
		return Latin1, data, nil
	}
	return Encoding(data[0]), data[1:], nil
}

func (s EncodingSpec) Write(_ Frame, v Encoding) ([]byte, error) {
	return []byte{byte(v)}, nil
}

func (s EncodingSpec) Validate(_ Frame, v any) (Encoding, error) {
	if v == nil {
		return Latin1, nil
	}
	var n int
	switch e := v.(type) {
	case Encoding:
		n = int(e)
	default:
		var ok bool
		if n, ok = toInt(v); !ok {
			return Latin1, invalid(s.named, v, "want an encoding")
		}
	}
	if n < 0 || !Encoding(n).Valid() {
		return Latin1, invalid(s.named, v, "invalid encoding")
	}
	return Encoding(n), nil
}

// LanguageSpec is an ISO 639-2 code stored as exactly three bytes.
type LanguageSpec struct{ named }

// UnknownLanguage is the code used when no language is given.
const UnknownLanguage = "XXX"

// Language returns a LanguageSpec called name.
func Language(name string) LanguageSpec { return LanguageSpec{named(name)} }

func (s LanguageSpec) Read(_ Frame, data []byte) (string, []byte, error) {
	if len(data) < 3 {
		return "", data, short(s.named, 3, len(data))
	}
	return string(data[:3]), data[3:], nil
}

func (s LanguageSpec) Write(_ Frame, v string) ([]byte, error) {
	if len(v) != 3 {
		return nil, invalid(s.named, v, "want 3 bytes")
	}
	return []byte(v), nil
}

func (s LanguageSpec) Validate(_ Frame, v any) (string, error) {
	if v == nil {
		return UnknownLanguage, nil
	}
	if str, ok := v.(string); ok && len(str) == 3 {
		return str, nil
	}
	return "", invalid(s.named, v, "want a 3 character language code")
}

// BinarySpec consumes every remaining byte.
type BinarySpec struct{ named }

// Binary returns a BinarySpec called name.
func Binary(name string) BinarySpec { return BinarySpec{named(name)} }

func (s BinarySpec) Read(_ Frame, data []byte) ([]byte, []byte, error) {
	return append([]byte{}, data...), nil, nil
}

func (s BinarySpec) Write(_ Frame, v []byte) ([]byte, error) {
	return v, nil
}

func (s BinarySpec) Validate(_ Frame, v any) ([]byte, error) {
	switch b := v.(type) {
	case nil:
		return []byte{}, nil
	case []byte:
		return b, nil
	default:
		return nil, invalid(s.named, v, "want []byte")
	}
}

// EncodedTextSpec is one null-terminated string in the frame's encoding.
type EncodedTextSpec struct{ named }

// EncodedText returns an EncodedTextSpec called name.
func EncodedText(name string) EncodedTextSpec { return EncodedTextSpec{named(name)} }

// Read consumes up to and including the terminator. Without a terminator
// the rest of data is the value.
func (s EncodedTextSpec) Read(f Frame, data []byte) (string, []byte, error) {
	enc := f.TextEncoding()
	raw, rest := splitTerminated(enc, data)
	text, err := enc.Decode(raw)
	if err != nil {
		return "", data, invalid(s.named, raw, err.Error())
	}
	return text, rest, nil
}

func (s EncodedTextSpec) Write(f Frame, v string) ([]byte, error) {
	enc := f.TextEncoding()
	b, err := enc.Encode(v)
	if err != nil {
		return nil, invalid(s.named, v, fmt.Sprintf("not representable in %s: %v", enc, err))
	}
	return append(b, enc.Terminator()...), nil
}

func (s EncodedTextSpec) Validate(_ Frame, v any) (string, error) {
	switch t := v.(type) {
	case nil:
		return "", nil
	case string:
		return t, nil
	case EncodedBytes:
		text, err := t.Text()
		if err != nil {
			return "", invalid(s.named, v, err.Error())
		}
		return text, nil
	default:
		return "", invalid(s.named, v, "want a string")
	}
}

// NumericTextSpec is EncodedTextSpec that also accepts integers.
type NumericTextSpec struct{ EncodedTextSpec }

// NumericText returns a NumericTextSpec called name.
func NumericText(name string) NumericTextSpec {
	return NumericTextSpec{EncodedText(name)}
}

func (s NumericTextSpec) Validate(f Frame, v any) (string, error) {
	if n, ok := toInt(v); ok {
		return strconv.Itoa(n), nil
	}
	return s.EncodedTextSpec.Validate(f, v)
}

// EncodedMultiTextSpec is a list of strings separated by the encoding's
// terminator, running to the end of the body.
type EncodedMultiTextSpec struct{ named }

// EncodedMultiText returns an EncodedMultiTextSpec called name.
func EncodedMultiText(name string) EncodedMultiTextSpec {
	return EncodedMultiTextSpec{named(name)}
}

// Read splits data into values. For UTF-16 the byte order announced by the
// first value's BOM applies to later values written without one.
func (s EncodedMultiTextSpec) Read(f Frame, data []byte) ([]string, []byte, error) {
	enc := f.TextEncoding()
	order := byteOrder(data, unicode.LittleEndian)

	values := []string{}
	for len(data) > 0 {
		raw, rest := splitTerminated(enc, data)
		text, err := enc.decode(raw, order)
		if err != nil {
			return nil, data, invalid(s.named, raw, err.Error())
		}
		values = append(values, text)
		data = rest
	}
	return values, data, nil
}

func (s EncodedMultiTextSpec) Write(f Frame, v []string) ([]byte, error) {
	if len(v) == 0 {
		return []byte{}, nil
	}
	return EncodedText(string(s.named)).Write(f, strings.Join(v, "\x00"))
}

func (s EncodedMultiTextSpec) Validate(_ Frame, v any) ([]string, error) {
	switch t := v.(type) {
	case nil:
		return []string{}, nil
	case []string:
		return t, nil
	case string:
		return strings.Split(t, "\x00"), nil
	case EncodedBytes:
		text, err := t.Text()
		if err != nil {
			return nil, invalid(s.named, v, err.Error())
		}
		return strings.Split(text, "\x00"), nil
	default:
		return nil, invalid(s.named, v, "want a string list")
	}
}

// Latin1TextSpec is a null-terminated Latin-1 string regardless of the
// frame's encoding marker. URLs and MIME types use it.
type Latin1TextSpec struct{ named }

// Latin1Text returns a Latin1TextSpec called name.
func Latin1Text(name string) Latin1TextSpec { return Latin1TextSpec{named(name)} }

func (s Latin1TextSpec) Read(_ Frame, data []byte) (string, []byte, error) {
	return EncodedText(string(s.named)).Read(latin1Frame{}, data)
}

func (s Latin1TextSpec) Write(_ Frame, v string) ([]byte, error) {
	return EncodedText(string(s.named)).Write(latin1Frame{}, v)
}

func (s Latin1TextSpec) Validate(_ Frame, v any) (string, error) {
	return EncodedText(string(s.named)).Validate(latin1Frame{}, v)
}

type latin1Frame struct{}

func (latin1Frame) TextEncoding() Encoding { return Latin1 }

// RepeatingRecordSpec reads a fixed tuple of text specs again and again
// until the body is exhausted. Values are always records, one []string per
// tuple, even over a single sub-spec; the flat []string form is accepted by
// Validate only.
type RepeatingRecordSpec struct {
	named
	specs []Spec[string]
}

// RepeatingRecord returns a RepeatingRecordSpec called name over specs.
func RepeatingRecord(name string, specs ...Spec[string]) RepeatingRecordSpec {
	return RepeatingRecordSpec{named: named(name), specs: specs}
}

// Read returns the records in body order.
func (s RepeatingRecordSpec) Read(f Frame, data []byte) ([][]string, []byte, error) {
	records := [][]string{}
	for len(data) > 0 {
		before := len(data)
		record := make([]string, 0, len(s.specs))
		for _, sub := range s.specs {
			v, rest, err := sub.Read(f, data)
			if err != nil {
				return nil, data, err
			}
			record = append(record, v)
			data = rest
		}
		records = append(records, record)
		if len(data) == before {
			break
		}
	}
	return records, data, nil
}

func (s RepeatingRecordSpec) Write(f Frame, v [][]string) ([]byte, error) {
	var out []byte
	for _, record := range v {
		if len(record) != len(s.specs) {
			return nil, invalid(s.named, record, fmt.Sprintf("want %d values per record", len(s.specs)))
		}
		for i, sub := range s.specs {
			b, err := sub.Write(f, record[i])
			if err != nil {
				return nil, err
			}
			out = append(out, b...)
		}
	}
	return out, nil
}

// Validate accepts records as [][]string, pairs as [][2]string, and, for a
// single sub-spec, a plain []string of scalars.
func (s RepeatingRecordSpec) Validate(_ Frame, v any) ([][]string, error) {
	switch t := v.(type) {
	case nil:
		return [][]string{}, nil
	case [][]string:
		for _, record := range t {
			if len(record) != len(s.specs) {
				return nil, invalid(s.named, v, fmt.Sprintf("want %d values per record", len(s.specs)))
			}
		}
		return t, nil
	case [][2]string:
		if len(s.specs) != 2 {
			return nil, invalid(s.named, v, "pairs need a two field record")
		}
		out := make([][]string, len(t))
		for i, pair := range t {
			out[i] = []string{pair[0], pair[1]}
		}
		return out, nil
	case []string:
		if len(s.specs) != 1 {
			return nil, invalid(s.named, v, "scalars need a single field record")
		}
		out := make([][]string, len(t))
		for i, scalar := range t {
			out[i] = []string{scalar}
		}
		return out, nil
	default:
		return nil, invalid(s.named, v, "want a list of records")
	}
}

// toInt accepts any integer kind, including named types such as a
// picture type.
func toInt(v any) (int, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return int(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return int(rv.Uint()), true
	default:
		return 0, false
	}
}

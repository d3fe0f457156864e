package frame

import (
	"strconv"
	"strings"

	"github.com/simonhull/id3tag/internal/spec"
)

// Text is a single-valued text frame such as TIT2 or TALB.
type Text struct {
	base
	Encoding spec.Encoding
	Text     string
}

var textLayout = spec.Layout[*Text]{
	spec.Bind(spec.EncodingMarker("encoding"), func(f *Text) *spec.Encoding { return &f.Encoding }),
	spec.Bind[*Text](spec.EncodedText("text"), func(f *Text) *string { return &f.Text }),
}

func (f *Text) TextEncoding() spec.Encoding { return f.Encoding }
func (f *Text) Encode() ([]byte, error)     { return textLayout.Write(f) }
func (f *Text) Fields() map[string]any      { return textLayout.Values(f) }
func (f *Text) FieldNames() []string        { return textLayout.Names() }
func (f *Text) String() string              { return f.Text }

func (f *Text) decode(data []byte) ([]byte, error) { return textLayout.Read(f, data) }
func (f *Text) init(positional []any, named map[string]any) error {
	return textLayout.Init(f, positional, named)
}

// numericLayout is textLayout with integer coercion on construction.
var numericLayout = spec.Layout[*Text]{
	textLayout[0],
	spec.Bind[*Text](spec.NumericText("text"), func(f *Text) *string { return &f.Text }),
}

// NumericText is a text frame holding a decimal number, e.g. TBPM or TYER.
type NumericText struct {
	Text
}

func (f *NumericText) init(positional []any, named map[string]any) error {
	return numericLayout.Init(&f.Text, positional, named)
}

// Int parses the frame text as an integer.
func (f *NumericText) Int() (int, error) {
	return strconv.Atoi(strings.TrimSpace(f.Text.Text))
}

// NumericPartText is a "part/total" frame such as TRCK ("3/12") or TPOS.
type NumericPartText struct {
	Text
}

func (f *NumericPartText) init(positional []any, named map[string]any) error {
	return numericLayout.Init(&f.Text, positional, named)
}

// Int returns the part before the slash.
func (f *NumericPartText) Int() (int, error) {
	part, _, _ := strings.Cut(f.Text.Text, "/")
	return strconv.Atoi(strings.TrimSpace(part))
}

// Total returns the part after the slash, or 0 if there is none.
func (f *NumericPartText) Total() (int, error) {
	_, total, ok := strings.Cut(f.Text.Text, "/")
	if !ok {
		return 0, nil
	}
	return strconv.Atoi(strings.TrimSpace(total))
}

// MultiText is a list-valued text frame such as TPE1 or TCON. The values
// are separated by null terminators on the wire.
type MultiText struct {
	base
	Encoding spec.Encoding
	Text     []string
}

var multiTextLayout = spec.Layout[*MultiText]{
	spec.Bind(spec.EncodingMarker("encoding"), func(f *MultiText) *spec.Encoding { return &f.Encoding }),
	spec.Bind(spec.EncodedMultiText("text"), func(f *MultiText) *[]string { return &f.Text }),
}

func (f *MultiText) TextEncoding() spec.Encoding { return f.Encoding }
func (f *MultiText) Encode() ([]byte, error)     { return multiTextLayout.Write(f) }
func (f *MultiText) Fields() map[string]any      { return multiTextLayout.Values(f) }
func (f *MultiText) FieldNames() []string        { return multiTextLayout.Names() }
func (f *MultiText) String() string              { return strings.Join(f.Text, "/") }

func (f *MultiText) decode(data []byte) ([]byte, error) { return multiTextLayout.Read(f, data) }
func (f *MultiText) init(positional []any, named map[string]any) error {
	return multiTextLayout.Init(f, positional, named)
}

// UserText is TXXX: free-form text keyed by a description.
type UserText struct {
	base
	Encoding    spec.Encoding
	Description string
	Text        []string
}

var userTextLayout = spec.Layout[*UserText]{
	spec.Bind(spec.EncodingMarker("encoding"), func(f *UserText) *spec.Encoding { return &f.Encoding }),
	spec.Bind[*UserText](spec.EncodedText("desc"), func(f *UserText) *string { return &f.Description }),
	spec.Bind(spec.EncodedMultiText("text"), func(f *UserText) *[]string { return &f.Text }),
}

func (f *UserText) Key() string                 { return f.id + ":" + f.Description }
func (f *UserText) TextEncoding() spec.Encoding { return f.Encoding }
func (f *UserText) Encode() ([]byte, error)     { return userTextLayout.Write(f) }
func (f *UserText) Fields() map[string]any      { return userTextLayout.Values(f) }
func (f *UserText) FieldNames() []string        { return userTextLayout.Names() }
func (f *UserText) String() string              { return strings.Join(f.Text, "/") }

func (f *UserText) decode(data []byte) ([]byte, error) { return userTextLayout.Read(f, data) }
func (f *UserText) init(positional []any, named map[string]any) error {
	return userTextLayout.Init(f, positional, named)
}

// URL is a W*** link frame. URLs are always Latin-1.
type URL struct {
	base
	URL string
}

var urlLayout = spec.Layout[*URL]{
	spec.Bind[*URL](spec.Latin1Text("url"), func(f *URL) *string { return &f.URL }),
}

func (f *URL) Encode() ([]byte, error) { return urlLayout.Write(f) }
func (f *URL) Fields() map[string]any  { return urlLayout.Values(f) }
func (f *URL) FieldNames() []string    { return urlLayout.Names() }
func (f *URL) String() string          { return f.URL }

func (f *URL) decode(data []byte) ([]byte, error) { return urlLayout.Read(f, data) }
func (f *URL) init(positional []any, named map[string]any) error {
	return urlLayout.Init(f, positional, named)
}

// UserURL is WXXX: a link keyed by a description.
type UserURL struct {
	base
	Encoding    spec.Encoding
	Description string
	URL         string
}

var userURLLayout = spec.Layout[*UserURL]{
	spec.Bind(spec.EncodingMarker("encoding"), func(f *UserURL) *spec.Encoding { return &f.Encoding }),
	spec.Bind[*UserURL](spec.EncodedText("desc"), func(f *UserURL) *string { return &f.Description }),
	spec.Bind[*UserURL](spec.Latin1Text("url"), func(f *UserURL) *string { return &f.URL }),
}

func (f *UserURL) Key() string                 { return f.id + ":" + f.Description }
func (f *UserURL) TextEncoding() spec.Encoding { return f.Encoding }
func (f *UserURL) Encode() ([]byte, error)     { return userURLLayout.Write(f) }
func (f *UserURL) Fields() map[string]any      { return userURLLayout.Values(f) }
func (f *UserURL) FieldNames() []string        { return userURLLayout.Names() }
func (f *UserURL) String() string              { return f.URL }

func (f *UserURL) decode(data []byte) ([]byte, error) { return userURLLayout.Read(f, data) }
func (f *UserURL) init(positional []any, named map[string]any) error {
	return userURLLayout.Init(f, positional, named)
}

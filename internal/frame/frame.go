// Package frame implements the ID3v2 frame variants and the dispatch from
// 4-byte frame ids to them.
//
// Every variant is a plain struct whose body layout is declared once as a
// spec.Layout. Decoding applies the layout's field specs in order; encoding
// concatenates their output.
package frame

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/simonhull/id3tag/internal/registry"
	"github.com/simonhull/id3tag/internal/spec"
)

// ErrUnknownFrame is returned for frame ids with no registered variant.
var ErrUnknownFrame = errors.New("unknown frame id")

// Frame is a decoded ID3v2 frame.
type Frame interface {
	// ID returns the 4-byte frame id, e.g. "TIT2".
	ID() string

	// Key returns the id used to index the frame in a tag. It equals ID
	// except for user-defined frames, which append their description.
	Key() string

	// HeaderFlags returns the frame header flags the frame was read with.
	HeaderFlags() uint16

	// RawData returns the frame body as it was read, before any flag
	// processing. It is nil for frames built in memory.
	RawData() []byte

	// Encode returns the frame body.
	Encode() ([]byte, error)

	// Fields returns the decoded field values keyed by field name.
	Fields() map[string]any

	// FieldNames lists the field names in body order.
	FieldNames() []string

	String() string
}

// body is implemented by every registered variant.
type body interface {
	Frame
	spec.Frame
	setHeader(id string, flags uint16, raw []byte)
	decode(data []byte) ([]byte, error)
	init(positional []any, named map[string]any) error
}

type constructor func() body

var frames = registry.New[constructor]()

func register(ctor constructor, ids ...string) {
	for _, id := range ids {
		frames.Register(id, ctor)
	}
}

// Registered reports whether id has a frame variant.
func Registered(id string) bool {
	_, ok := frames.Get(id)
	return ok
}

// IDs lists every registered frame id.
func IDs() []string {
	return frames.IDs()
}

func lookup(id string) (body, error) {
	ctor, ok := frames.Get(id)
	if !ok {
		return nil, errors.Wrapf(ErrUnknownFrame, "frame %q", id)
	}
	return ctor(), nil
}

// New builds the frame id from positional field values. Fields not given
// take their default.
func New(id string, values ...any) (Frame, error) {
	return build(id, values, nil)
}

// NewNamed builds the frame id from field values keyed by field name.
func NewNamed(id string, values map[string]any) (Frame, error) {
	return build(id, nil, values)
}

// MustNew is New for frames known to be valid. It panics on error.
func MustNew(id string, values ...any) Frame {
	f, err := New(id, values...)
	if err != nil {
		panic(err)
	}
	return f
}

func build(id string, positional []any, named map[string]any) (Frame, error) {
	b, err := lookup(id)
	if err != nil {
		return nil, err
	}
	b.setHeader(strings.ToUpper(id), 0, nil)
	if err := b.init(positional, named); err != nil {
		return nil, errors.Wrapf(err, "frame %s", strings.ToUpper(id))
	}
	return b, nil
}

// base carries the header provenance shared by every variant.
type base struct {
	id    string
	flags uint16
	raw   []byte
}

func (b *base) ID() string          { return b.id }
func (b *base) Key() string         { return b.id }
func (b *base) HeaderFlags() uint16 { return b.flags }
func (b *base) RawData() []byte     { return b.raw }

// TextEncoding is Latin-1 for frames without an encoding marker.
func (b *base) TextEncoding() spec.Encoding { return spec.Latin1 }

func (b *base) setHeader(id string, flags uint16, raw []byte) {
	b.id, b.flags, b.raw = id, flags, raw
}


package spec

import (
	"fmt"

	"github.com/simonhull/id3tag/internal/types"
)

// Field is one entry of a Layout: a spec bound to the struct field of F
// holding its value.
type Field[F Frame] interface {
	Name() string
	read(f F, data []byte) ([]byte, error)
	write(f F) ([]byte, error)
	set(f F, v any) error
	get(f F) any
}

type boundField[F Frame, T any] struct {
	spec Spec[T]
	ref  func(F) *T
}

// Bind pairs spec with the accessor of the field it fills.
func Bind[F Frame, T any](spec Spec[T], ref func(F) *T) Field[F] {
	return boundField[F, T]{spec: spec, ref: ref}
}

func (b boundField[F, T]) Name() string { return b.spec.Name() }

func (b boundField[F, T]) read(f F, data []byte) ([]byte, error) {
	v, rest, err := b.spec.Read(f, data)
	if err != nil {
		return data, err
	}
	*b.ref(f) = v
	return rest, nil
}

func (b boundField[F, T]) write(f F) ([]byte, error) {
	return b.spec.Write(f, *b.ref(f))
}

func (b boundField[F, T]) set(f F, v any) error {
	val, err := b.spec.Validate(f, v)
	if err != nil {
		return err
	}
	*b.ref(f) = val
	return nil
}

func (b boundField[F, T]) get(f F) any { return *b.ref(f) }

// Layout is the ordered field table of a frame body.
type Layout[F Frame] []Field[F]

// Read decodes every field in order and returns the bytes left over.
func (l Layout[F]) Read(f F, data []byte) ([]byte, error) {
	var err error
	for _, field := range l {
		if data, err = field.read(f, data); err != nil {
			return data, err
		}
	}
	return data, nil
}

// Write concatenates the encoding of every field in order.
func (l Layout[F]) Write(f F) ([]byte, error) {
	var out []byte
	for _, field := range l {
		b, err := field.write(f)
		if err != nil {
			return nil, err
		}
		out = append(out, b...)
	}
	return out, nil
}

// Init assigns every field, taking values from positional first and then
// from named. Fields given neither get their spec's default.
func (l Layout[F]) Init(f F, positional []any, named map[string]any) error {
	if len(positional) > len(l) {
		return &types.ValidationError{
			Spec:   "frame",
			Value:  positional,
			Reason: fmt.Sprintf("takes at most %d values, got %d", len(l), len(positional)),
		}
	}

	known := make(map[string]bool, len(l))
	for i, field := range l {
		known[field.Name()] = true

		var v any
		if i < len(positional) {
			if _, dup := named[field.Name()]; dup {
				return &types.ValidationError{Spec: field.Name(), Value: named[field.Name()], Reason: "given twice"}
			}
			v = positional[i]
		} else {
			v = named[field.Name()]
		}
		if err := field.set(f, v); err != nil {
			return err
		}
	}

	for name, v := range named {
		if !known[name] {
			return &types.ValidationError{Spec: name, Value: v, Reason: "no such field"}
		}
	}
	return nil
}

// Names lists the field names in order.
func (l Layout[F]) Names() []string {
	names := make([]string, len(l))
	for i, field := range l {
		names[i] = field.Name()
	}
	return names
}

// Values returns the current field values keyed by name.
func (l Layout[F]) Values(f F) map[string]any {
	values := make(map[string]any, len(l))
	for _, field := range l {
		values[field.Name()] = field.get(f)
	}
	return values
}

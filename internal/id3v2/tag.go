// Package id3v2 reads and writes ID3v2.3 and ID3v2.4 tags.
package id3v2

import (
	"fmt"
	"iter"
	"slices"

	"github.com/simonhull/id3tag/internal/frame"
	"github.com/simonhull/id3tag/internal/types"
)

// Version identifies the tag format, e.g. {2, 4, 0} for ID3v2.4.0 or
// {1, 1, 0} for a tag recovered from an ID3v1.1 trailer.
type Version struct {
	Major    byte
	Minor    byte
	Revision byte
}

var (
	V23 = Version{2, 3, 0}
	V24 = Version{2, 4, 0}
	V11 = Version{1, 1, 0}
)

func (v Version) String() string {
	if v.Major == 1 {
		return fmt.Sprintf("ID3v%d.%d", v.Major, v.Minor)
	}
	return fmt.Sprintf("ID3v%d.%d.%d", v.Major, v.Minor, v.Revision)
}

// Flags are the tag header flags.
type Flags struct {
	Unsynchronized bool
	Extended       bool
	Experimental   bool
	Footer         bool
}

// Header flag bits.
const (
	flagUnsync       byte = 0x80
	flagExtended     byte = 0x40
	flagExperimental byte = 0x20
	flagFooter       byte = 0x10
)

func parseFlags(b byte) Flags {
	return Flags{
		Unsynchronized: b&flagUnsync != 0,
		Extended:       b&flagExtended != 0,
		Experimental:   b&flagExperimental != 0,
		Footer:         b&flagFooter != 0,
	}
}

// Opaque is a frame kept as raw bytes: its id is not registered, its size
// is zero, or its body failed to decode.
type Opaque struct {
	ID string

	// Raw is the frame exactly as read, 10-byte header included.
	Raw []byte

	// Err is why a registered frame could not be decoded. It is nil for
	// unregistered ids and empty frames.
	Err error
}

// Body returns the frame body without its header.
func (o Opaque) Body() []byte {
	if len(o.Raw) < frameHeaderSize {
		return nil
	}
	return o.Raw[frameHeaderSize:]
}

// Corrupt reports whether the frame id is registered but its body could
// not be decoded.
func (o Opaque) Corrupt() bool {
	return o.Err != nil
}

// Tag is a parsed ID3 tag: keyed frames in file order plus the frames that
// could only be kept as raw bytes.
type Tag struct {
	Version Version
	Flags   Flags

	// ExtendedHeader holds the extended header payload, uninterpreted.
	ExtendedHeader []byte

	// Size is the tag body size declared in the header. It is 0 for tags
	// built in memory or recovered from ID3v1.
	Size int

	// Unknown lists opaque frames in file order.
	Unknown []Opaque

	// Warnings encountered during parsing (non-fatal issues)
	Warnings []types.Warning

	keys   []string
	frames map[string]frame.Frame
}

// NewTag returns an empty ID3v2.4 tag.
func NewTag() *Tag {
	return newTag(V24)
}

func newTag(v Version) *Tag {
	return &Tag{Version: v, frames: make(map[string]frame.Frame)}
}

// Get returns the frame stored under key.
func (t *Tag) Get(key string) (frame.Frame, bool) {
	f, ok := t.frames[key]
	return f, ok
}

// Set stores f under f.Key(). An existing frame with the same key is
// replaced in place; otherwise f is appended.
func (t *Tag) Set(f frame.Frame) {
	if t.frames == nil {
		t.frames = make(map[string]frame.Frame)
	}
	key := f.Key()
	if _, ok := t.frames[key]; !ok {
		t.keys = append(t.keys, key)
	}
	t.frames[key] = f
}

// Delete removes the frame stored under key and reports whether it existed.
func (t *Tag) Delete(key string) bool {
	if _, ok := t.frames[key]; !ok {
		return false
	}
	delete(t.frames, key)
	t.keys = slices.DeleteFunc(t.keys, func(k string) bool { return k == key })
	return true
}

// Keys returns the frame keys in order.
func (t *Tag) Keys() []string {
	return slices.Clone(t.keys)
}

// All iterates over the frames in order.
func (t *Tag) All() iter.Seq2[string, frame.Frame] {
	return func(yield func(string, frame.Frame) bool) {
		for _, key := range t.keys {
			if !yield(key, t.frames[key]) {
				return
			}
		}
	}
}

// Frames returns the frames in order.
func (t *Tag) Frames() []frame.Frame {
	out := make([]frame.Frame, 0, len(t.keys))
	for _, key := range t.keys {
		out = append(out, t.frames[key])
	}
	return out
}

// Len returns the number of keyed frames.
func (t *Tag) Len() int {
	return len(t.keys)
}

func (t *Tag) warn(stage string, offset int64, format string, args ...any) {
	t.Warnings = append(t.Warnings, types.Warning{
		Stage:   stage,
		Message: fmt.Sprintf(format, args...),
		Offset:  offset,
	})
}

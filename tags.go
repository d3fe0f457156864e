package id3tag

import (
	"github.com/simonhull/id3tag/internal/frame"
	"github.com/simonhull/id3tag/internal/id3v2"
	"github.com/simonhull/id3tag/internal/spec"
)

// Tag is an alias to id3v2.Tag.
// Re-exporting from internal/id3v2 to maintain public API.
type Tag = id3v2.Tag

// TagVersion is an alias to id3v2.Version.
type TagVersion = id3v2.Version

// TagFlags is an alias to id3v2.Flags.
type TagFlags = id3v2.Flags

// Opaque is an alias to id3v2.Opaque.
type Opaque = id3v2.Opaque

// Tag versions.
var (
	V23 = id3v2.V23
	V24 = id3v2.V24
	V11 = id3v2.V11
)

// NewTag returns an empty ID3v2.4 tag.
func NewTag() *Tag {
	return id3v2.NewTag()
}

// Frame is an alias to frame.Frame.
type Frame = frame.Frame

// Frame variants.
type (
	Text            = frame.Text
	NumericText     = frame.NumericText
	NumericPartText = frame.NumericPartText
	MultiText       = frame.MultiText
	UserText        = frame.UserText
	URL             = frame.URL
	UserURL         = frame.UserURL
	Comment         = frame.Comment
	Lyrics          = frame.Lyrics
	TermsOfUse      = frame.TermsOfUse
	Picture         = frame.Picture
	PictureType     = frame.PictureType
	People          = frame.People
	Binary          = frame.Binary
	Owner           = frame.Owner
	Popularimeter   = frame.Popularimeter
)

// Encoding is the text encoding of a frame.
type Encoding = spec.Encoding

// Text encodings.
const (
	Latin1  = spec.Latin1
	UTF16   = spec.UTF16
	UTF16BE = spec.UTF16BE
	UTF8    = spec.UTF8
)

// Commonly used picture types.
const (
	PictureOther      = frame.PictureOther
	PictureFrontCover = frame.PictureFrontCover
	PictureBackCover  = frame.PictureBackCover
	PictureArtist     = frame.PictureArtist
)

// EncodedBytes is text in its on-disk form, decoded with its carried encoding.
type EncodedBytes = spec.EncodedBytes

// ErrUnknownFrame is returned by NewFrame for ids without a registered kind.
var ErrUnknownFrame = frame.ErrUnknownFrame

// NewFrame constructs the frame registered for id from positional values
// in field order. Missing values take their field defaults.
//
//	f, err := id3tag.NewFrame("TIT2", id3tag.UTF8, []string{"Title"})
func NewFrame(id string, values ...any) (Frame, error) {
	return frame.New(id, values...)
}

// NewFrameNamed constructs the frame registered for id from values keyed
// by field name.
//
//	f, err := id3tag.NewFrameNamed("TXXX", map[string]any{
//	    "desc": "MusicBrainz Album Id",
//	    "text": []string{"..."},
//	})
func NewFrameNamed(id string, values map[string]any) (Frame, error) {
	return frame.NewNamed(id, values)
}

// FrameIDs returns every registered frame id.
func FrameIDs() []string {
	return frame.IDs()
}

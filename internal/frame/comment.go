package frame

import (
	"strings"

	"github.com/simonhull/id3tag/internal/spec"
)

// Comment is COMM: free text with a language and a short description.
type Comment struct {
	base
	Encoding    spec.Encoding
	Language    string
	Description string
	Text        []string
}

var commentLayout = spec.Layout[*Comment]{
	spec.Bind(spec.EncodingMarker("encoding"), func(f *Comment) *spec.Encoding { return &f.Encoding }),
	spec.Bind[*Comment](spec.Language("lang"), func(f *Comment) *string { return &f.Language }),
	spec.Bind[*Comment](spec.EncodedText("desc"), func(f *Comment) *string { return &f.Description }),
	spec.Bind(spec.EncodedMultiText("text"), func(f *Comment) *[]string { return &f.Text }),
}

func (f *Comment) TextEncoding() spec.Encoding { return f.Encoding }
func (f *Comment) Encode() ([]byte, error)     { return commentLayout.Write(f) }
func (f *Comment) Fields() map[string]any      { return commentLayout.Values(f) }
func (f *Comment) FieldNames() []string        { return commentLayout.Names() }
func (f *Comment) String() string              { return strings.Join(f.Text, "/") }

func (f *Comment) decode(data []byte) ([]byte, error) { return commentLayout.Read(f, data) }
func (f *Comment) init(positional []any, named map[string]any) error {
	return commentLayout.Init(f, positional, named)
}

// Lyrics is USLT: unsynchronized lyrics in a single text block.
type Lyrics struct {
	base
	Encoding    spec.Encoding
	Language    string
	Description string
	Text        string
}

var lyricsLayout = spec.Layout[*Lyrics]{
	spec.Bind(spec.EncodingMarker("encoding"), func(f *Lyrics) *spec.Encoding { return &f.Encoding }),
	spec.Bind[*Lyrics](spec.Language("lang"), func(f *Lyrics) *string { return &f.Language }),
	spec.Bind[*Lyrics](spec.EncodedText("desc"), func(f *Lyrics) *string { return &f.Description }),
	spec.Bind[*Lyrics](spec.EncodedText("text"), func(f *Lyrics) *string { return &f.Text }),
}

func (f *Lyrics) TextEncoding() spec.Encoding { return f.Encoding }
func (f *Lyrics) Encode() ([]byte, error)     { return lyricsLayout.Write(f) }
func (f *Lyrics) Fields() map[string]any      { return lyricsLayout.Values(f) }
func (f *Lyrics) FieldNames() []string        { return lyricsLayout.Names() }
func (f *Lyrics) String() string              { return f.Text }

func (f *Lyrics) decode(data []byte) ([]byte, error) { return lyricsLayout.Read(f, data) }
func (f *Lyrics) init(positional []any, named map[string]any) error {
	return lyricsLayout.Init(f, positional, named)
}

// TermsOfUse is USER.
type TermsOfUse struct {
	base
	Encoding spec.Encoding
	Language string
	Text     string
}

var termsLayout = spec.Layout[*TermsOfUse]{
	spec.Bind(spec.EncodingMarker("encoding"), func(f *TermsOfUse) *spec.Encoding { return &f.Encoding }),
	spec.Bind[*TermsOfUse](spec.Language("lang"), func(f *TermsOfUse) *string { return &f.Language }),
	spec.Bind[*TermsOfUse](spec.EncodedText("text"), func(f *TermsOfUse) *string { return &f.Text }),
}

func (f *TermsOfUse) TextEncoding() spec.Encoding { return f.Encoding }
func (f *TermsOfUse) Encode() ([]byte, error)     { return termsLayout.Write(f) }
func (f *TermsOfUse) Fields() map[string]any      { return termsLayout.Values(f) }
func (f *TermsOfUse) FieldNames() []string        { return termsLayout.Names() }
func (f *TermsOfUse) String() string              { return f.Text }

func (f *TermsOfUse) decode(data []byte) ([]byte, error) { return termsLayout.Read(f, data) }
func (f *TermsOfUse) init(positional []any, named map[string]any) error {
	return termsLayout.Init(f, positional, named)
}

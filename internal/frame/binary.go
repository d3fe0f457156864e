package frame

import (
	"fmt"
	"strings"

	"github.com/simonhull/id3tag/internal/spec"
)

// People is an involvement list: IPLS in ID3v2.3, TIPL and TMCL in ID3v2.4.
// Each entry is an (involvement, person) pair.
type People struct {
	base
	Encoding spec.Encoding
	People   [][]string
}

var peopleLayout = spec.Layout[*People]{
	spec.Bind(spec.EncodingMarker("encoding"), func(f *People) *spec.Encoding { return &f.Encoding }),
	spec.Bind(spec.RepeatingRecord("people",
		spec.EncodedText("involvement"),
		spec.EncodedText("person"),
	), func(f *People) *[][]string { return &f.People }),
}

func (f *People) TextEncoding() spec.Encoding { return f.Encoding }
func (f *People) Encode() ([]byte, error)     { return peopleLayout.Write(f) }
func (f *People) Fields() map[string]any      { return peopleLayout.Values(f) }
func (f *People) FieldNames() []string        { return peopleLayout.Names() }

func (f *People) String() string {
	pairs := make([]string, len(f.People))
	for i, p := range f.People {
		pairs[i] = strings.Join(p, ": ")
	}
	return strings.Join(pairs, ", ")
}

func (f *People) decode(data []byte) ([]byte, error) { return peopleLayout.Read(f, data) }
func (f *People) init(positional []any, named map[string]any) error {
	return peopleLayout.Init(f, positional, named)
}

// Binary is a frame with no internal structure, such as MCDI.
type Binary struct {
	base
	Data []byte
}

var binaryLayout = spec.Layout[*Binary]{
	spec.Bind[*Binary](spec.Binary("data"), func(f *Binary) *[]byte { return &f.Data }),
}

func (f *Binary) Encode() ([]byte, error) { return binaryLayout.Write(f) }
func (f *Binary) Fields() map[string]any  { return binaryLayout.Values(f) }
func (f *Binary) FieldNames() []string    { return binaryLayout.Names() }
func (f *Binary) String() string          { return fmt.Sprintf("%d bytes", len(f.Data)) }

func (f *Binary) decode(data []byte) ([]byte, error) { return binaryLayout.Read(f, data) }
func (f *Binary) init(positional []any, named map[string]any) error {
	return binaryLayout.Init(f, positional, named)
}

// Owner is a blob identified by an owner string: UFID and PRIV.
type Owner struct {
	base
	Owner string
	Data  []byte
}

var ownerLayout = spec.Layout[*Owner]{
	spec.Bind[*Owner](spec.Latin1Text("owner"), func(f *Owner) *string { return &f.Owner }),
	spec.Bind[*Owner](spec.Binary("data"), func(f *Owner) *[]byte { return &f.Data }),
}

func (f *Owner) Encode() ([]byte, error) { return ownerLayout.Write(f) }
func (f *Owner) Fields() map[string]any  { return ownerLayout.Values(f) }
func (f *Owner) FieldNames() []string    { return ownerLayout.Names() }
func (f *Owner) String() string          { return fmt.Sprintf("%s (%d bytes)", f.Owner, len(f.Data)) }

func (f *Owner) decode(data []byte) ([]byte, error) { return ownerLayout.Read(f, data) }
func (f *Owner) init(positional []any, named map[string]any) error {
	return ownerLayout.Init(f, positional, named)
}

// Popularimeter is POPM: a rating and play counter for one user.
type Popularimeter struct {
	base
	Email  string
	Rating byte
	Count  []byte
}

var popmLayout = spec.Layout[*Popularimeter]{
	spec.Bind[*Popularimeter](spec.Latin1Text("email"), func(f *Popularimeter) *string { return &f.Email }),
	spec.Bind[*Popularimeter](spec.Byte("rating"), func(f *Popularimeter) *byte { return &f.Rating }),
	spec.Bind[*Popularimeter](spec.Binary("count"), func(f *Popularimeter) *[]byte { return &f.Count }),
}

func (f *Popularimeter) Encode() ([]byte, error) { return popmLayout.Write(f) }
func (f *Popularimeter) Fields() map[string]any  { return popmLayout.Values(f) }
func (f *Popularimeter) FieldNames() []string    { return popmLayout.Names() }

func (f *Popularimeter) String() string {
	return fmt.Sprintf("%s=%d %d/255", f.Email, f.PlayCount(), f.Rating)
}

// PlayCount decodes the big-endian counter. Counters wider than eight
// bytes saturate.
func (f *Popularimeter) PlayCount() uint64 {
	var n uint64
	for _, b := range f.Count {
		if n > (^uint64(0))>>8 {
			return ^uint64(0)
		}
		n = n<<8 | uint64(b)
	}
	return n
}

func (f *Popularimeter) decode(data []byte) ([]byte, error) { return popmLayout.Read(f, data) }
func (f *Popularimeter) init(positional []any, named map[string]any) error {
	return popmLayout.Init(f, positional, named)
}

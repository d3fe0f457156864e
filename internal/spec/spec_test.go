package spec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simonhull/id3tag/internal/types"
)

type testFrame struct {
	Encoding Encoding
	Lang     string
	Desc     string
	Text     []string
}

func (f *testFrame) TextEncoding() Encoding { return f.Encoding }

var testLayout = Layout[*testFrame]{
	Bind(EncodingMarker("encoding"), func(f *testFrame) *Encoding { return &f.Encoding }),
	Bind[*testFrame](Language("lang"), func(f *testFrame) *string { return &f.Lang }),
	Bind[*testFrame](EncodedText("desc"), func(f *testFrame) *string { return &f.Desc }),
	Bind(EncodedMultiText("text"), func(f *testFrame) *[]string { return &f.Text }),
}

func TestEncodedMultiText_UTF16RoundTrip(t *testing.T) {
	f := &testFrame{Encoding: UTF16}
	s := EncodedMultiText("text")

	data, err := s.Write(f, []string{"a", "b"})
	require.NoError(t, err)

	got, rest, err := s.Read(f, data)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, got)
	assert.Empty(t, rest)
}

func TestEncodedMultiText_BOMCarriesOver(t *testing.T) {
	f := &testFrame{Encoding: UTF16}
	// Big-endian BOM on the first value only.
	data := []byte{0xFE, 0xFF, 0x00, 'x', 0x00, 0x00, 0x00, 'y'}

	got, _, err := EncodedMultiText("text").Read(f, data)
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y"}, got)
}

func TestEncodedText_OddOffsetTerminator(t *testing.T) {
	f := &testFrame{Encoding: UTF16BE}
	// "Ā" then "a": the zero pair at offset 1..2 straddles two code units.
	data := []byte{0x01, 0x00, 0x00, 0x61, 0x00, 0x00, 0xAA}

	got, rest, err := EncodedText("desc").Read(f, data)
	require.NoError(t, err)
	assert.Equal(t, "Āa", got)
	assert.Equal(t, []byte{0xAA}, rest)
}

func TestEncodedText_Unterminated(t *testing.T) {
	f := &testFrame{Encoding: Latin1}

	got, rest, err := EncodedText("desc").Read(f, []byte("abc"))
	require.NoError(t, err)
	assert.Equal(t, "abc", got)
	assert.Empty(t, rest)
}

func TestEncodedText_Latin1Unrepresentable(t *testing.T) {
	f := &testFrame{Encoding: Latin1}

	_, err := EncodedText("desc").Write(f, "日本")
	var verr *types.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "desc", verr.Spec)
}

func TestEncodingMarker_PushBack(t *testing.T) {
	data := []byte("Title")

	enc, rest, err := EncodingMarker("encoding").Read(nil, data)
	require.NoError(t, err)
	assert.Equal(t, Latin1, enc)
	assert.Equal(t, data, rest)

	enc, rest, err = EncodingMarker("encoding").Read(nil, []byte{3, 'x'})
	require.NoError(t, err)
	assert.Equal(t, UTF8, enc)
	assert.Equal(t, []byte("x"), rest)
}

func TestEncodingMarker_Validate(t *testing.T) {
	s := EncodingMarker("encoding")

	enc, err := s.Validate(nil, 2)
	require.NoError(t, err)
	assert.Equal(t, UTF16BE, enc)

	_, err = s.Validate(nil, 7)
	assert.Error(t, err)

	_, err = s.Validate(nil, "utf8")
	assert.Error(t, err)
}

func TestLanguage(t *testing.T) {
	s := Language("lang")

	lang, err := s.Validate(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, UnknownLanguage, lang)

	_, err = s.Validate(nil, "en")
	assert.Error(t, err)

	_, _, err = s.Read(nil, []byte("en"))
	var eof *types.EndOfInputError
	require.ErrorAs(t, err, &eof)
}

func TestByte(t *testing.T) {
	s := Byte("type")

	b, err := s.Validate(nil, 3)
	require.NoError(t, err)
	assert.Equal(t, byte(3), b)

	_, err = s.Validate(nil, 256)
	assert.Error(t, err)

	_, _, err = s.Read(nil, nil)
	assert.Error(t, err)
}

func TestNumericText_Validate(t *testing.T) {
	s := NumericText("text")

	v, err := s.Validate(nil, 120)
	require.NoError(t, err)
	assert.Equal(t, "120", v)

	v, err = s.Validate(nil, "7")
	require.NoError(t, err)
	assert.Equal(t, "7", v)

	_, err = s.Validate(nil, 1.5)
	assert.Error(t, err)
}

func TestEncodedText_ValidateEncodedBytes(t *testing.T) {
	v, err := EncodedText("desc").Validate(nil, EncodedBytes{Data: []byte{0xE9}, Encoding: Latin1})
	require.NoError(t, err)
	assert.Equal(t, "é", v)
}

func TestLatin1Text_IgnoresFrameEncoding(t *testing.T) {
	f := &testFrame{Encoding: UTF16}
	s := Latin1Text("url")

	data, err := s.Write(f, "http://x")
	require.NoError(t, err)
	assert.Equal(t, append([]byte("http://x"), 0), data)

	got, _, err := s.Read(f, data)
	require.NoError(t, err)
	assert.Equal(t, "http://x", got)
}

func TestRepeatingRecord(t *testing.T) {
	f := &testFrame{Encoding: UTF8}
	s := RepeatingRecord("people", EncodedText("involvement"), EncodedText("person"))

	records := [][]string{{"producer", "Ann"}, {"mixer", "Bo"}}
	data, err := s.Write(f, records)
	require.NoError(t, err)

	got, rest, err := s.Read(f, data)
	require.NoError(t, err)
	assert.Equal(t, records, got)
	assert.Empty(t, rest)

	pairs, err := s.Validate(f, [][2]string{{"a", "b"}})
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"a", "b"}}, pairs)

	_, err = s.Validate(f, []string{"scalar"})
	assert.Error(t, err)
}

func TestRepeatingRecord_Scalars(t *testing.T) {
	s := RepeatingRecord("names", EncodedText("name"))

	got, err := s.Validate(nil, []string{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"a"}, {"b"}}, got)

	f := &testFrame{Encoding: Latin1}
	data, err := s.Write(f, got)
	require.NoError(t, err)
	assert.Equal(t, []byte("a\x00b\x00"), data)

	read, rest, err := s.Read(f, data)
	require.NoError(t, err)
	assert.Empty(t, rest)
	assert.Equal(t, got, read)
}

func TestValidate_NilDefaults(t *testing.T) {
	multi, err := EncodedMultiText("text").Validate(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{}, multi)

	bin, err := Binary("data").Validate(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []byte{}, bin)

	records, err := RepeatingRecord("people", EncodedText("a")).Validate(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, [][]string{}, records)

	_, err = Binary("data").Validate(nil, "nope")
	var verr *types.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "data", verr.Spec)
}

func TestLayout_RoundTrip(t *testing.T) {
	f := &testFrame{}
	require.NoError(t, testLayout.Init(f, []any{UTF16, "eng"}, map[string]any{
		"desc": "note",
		"text": []string{"one", "two"},
	}))

	data, err := testLayout.Write(f)
	require.NoError(t, err)

	var got testFrame
	rest, err := testLayout.Read(&got, data)
	require.NoError(t, err)
	assert.Empty(t, rest)
	assert.Equal(t, *f, got)
}

func TestLayout_InitDefaults(t *testing.T) {
	f := &testFrame{}
	require.NoError(t, testLayout.Init(f, nil, nil))

	assert.Equal(t, Latin1, f.Encoding)
	assert.Equal(t, UnknownLanguage, f.Lang)
	assert.Equal(t, "", f.Desc)
	assert.Equal(t, []string{}, f.Text)
}

func TestLayout_InitErrors(t *testing.T) {
	f := &testFrame{}

	err := testLayout.Init(f, []any{0, "eng", "", nil, "extra"}, nil)
	assert.Error(t, err)

	err = testLayout.Init(f, []any{0}, map[string]any{"encoding": 1})
	assert.Error(t, err)

	err = testLayout.Init(f, nil, map[string]any{"bogus": 1})
	assert.Error(t, err)
}

func TestLayout_NamesAndValues(t *testing.T) {
	assert.Equal(t, []string{"encoding", "lang", "desc", "text"}, testLayout.Names())

	f := &testFrame{Encoding: UTF8, Lang: "deu", Desc: "d", Text: []string{"t"}}
	values := testLayout.Values(f)
	assert.Equal(t, "deu", values["lang"])
	assert.Equal(t, []string{"t"}, values["text"])
}

package id3v2

import (
	"bytes"
	"testing"

	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	binutil "github.com/simonhull/id3tag/internal/binary"
	"github.com/simonhull/id3tag/internal/frame"
	"github.com/simonhull/id3tag/internal/spec"
	"github.com/simonhull/id3tag/internal/types"
	"github.com/simonhull/id3tag/internal/unsync"
)

// rawFrame builds a frame with a sync-safe size.
func rawFrame(id string, flags uint16, body []byte) []byte {
	size, err := binutil.PutSyncSafe(len(body), 4)
	if err != nil {
		panic(err)
	}
	b := append([]byte(id), size...)
	b = append(b, byte(flags>>8), byte(flags))
	return append(b, body...)
}

// rawTag builds a tag around body, padded with padding zero bytes.
func rawTag(major, flags byte, padding int, frames ...[]byte) []byte {
	var body []byte
	for _, f := range frames {
		body = append(body, f...)
	}
	body = append(body, make([]byte, padding)...)

	size, err := binutil.PutSyncSafe(len(body), 4)
	if err != nil {
		panic(err)
	}
	b := append([]byte{'I', 'D', '3', major, 0, flags}, size...)
	return append(b, body...)
}

func latin1Text(s string) []byte {
	return append([]byte{0}, s...)
}

func source(b []byte) *binutil.SafeReader {
	return binutil.NewSafeReader(bytes.NewReader(b), int64(len(b)), "test.mp3")
}

func quiet() Options {
	log, _ := logtest.NewNullLogger()
	return Options{Strict: true, Log: log}
}

func TestRead_Frames(t *testing.T) {
	data := rawTag(4, 0, 64,
		rawFrame("TIT2", 0, latin1Text("Title")),
		rawFrame("TALB", 0, latin1Text("Album")),
		rawFrame("TRCK", 0, latin1Text("3/12")),
	)

	tag, err := Read(source(data), quiet())
	require.NoError(t, err)

	assert.Equal(t, V24, tag.Version)
	assert.Equal(t, []string{"TIT2", "TALB", "TRCK"}, tag.Keys())
	assert.Empty(t, tag.Unknown)
	assert.Empty(t, tag.Warnings)

	trck, ok := tag.Get("TRCK")
	require.True(t, ok)
	n, err := trck.(*frame.NumericPartText).Int()
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestRead_NoTag(t *testing.T) {
	data := append([]byte("TAG"), make([]byte, 20)...)

	_, err := Read(source(data), quiet())
	var noTag *types.NoTagError
	require.ErrorAs(t, err, &noTag)
}

func TestRead_TooSmall(t *testing.T) {
	_, err := Read(source([]byte("ID3")), quiet())
	var noTag *types.NoTagError
	require.ErrorAs(t, err, &noTag)
}

func TestRead_UnsupportedVersion(t *testing.T) {
	for _, major := range []byte{2, 5} {
		_, err := Read(source(rawTag(major, 0, 10)), quiet())
		var verr *types.UnsupportedVersionError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, major, verr.Major)
	}
}

func TestRead_ReservedFlags(t *testing.T) {
	tests := []struct {
		major byte
		flags byte
	}{
		{4, 0x01},
		{3, 0x10},
	}
	for _, tt := range tests {
		data := rawTag(tt.major, tt.flags, 10, rawFrame("TIT2", 0, latin1Text("x")))

		_, err := Read(source(data), quiet())
		var herr *types.InvalidHeaderError
		require.ErrorAs(t, err, &herr)
		assert.Equal(t, tt.flags, herr.Flags)

		lenient := quiet()
		lenient.Strict = false
		tag, err := Read(source(data), lenient)
		require.NoError(t, err)
		assert.Equal(t, 1, tag.Len())
	}
}

func TestRead_FooterFlagAllowedIn24(t *testing.T) {
	tag, err := Read(source(rawTag(4, 0x10, 10)), quiet())
	require.NoError(t, err)
	assert.True(t, tag.Flags.Footer)
}

func TestRead_UnknownFramePreserved(t *testing.T) {
	unknown := rawFrame("XYZW", 0x0003, []byte{1, 2, 3, 0xFF})
	data := rawTag(3, 0, 0,
		rawFrame("TIT2", 0, latin1Text("a")),
		unknown,
		rawFrame("TPE1", 0, latin1Text("b")),
	)

	tag, err := Read(source(data), quiet())
	require.NoError(t, err)

	require.Len(t, tag.Unknown, 1)
	assert.Equal(t, "XYZW", tag.Unknown[0].ID)
	assert.Equal(t, unknown, tag.Unknown[0].Raw)
	assert.Equal(t, []byte{1, 2, 3, 0xFF}, tag.Unknown[0].Body())
	assert.NoError(t, tag.Unknown[0].Err)
	assert.Equal(t, []string{"TIT2", "TPE1"}, tag.Keys())
}

func TestRead_ZeroSizeFrame(t *testing.T) {
	data := rawTag(4, 0, 20, rawFrame("TIT2", 0, nil), rawFrame("TALB", 0, latin1Text("x")))

	tag, err := Read(source(data), quiet())
	require.NoError(t, err)
	require.Len(t, tag.Unknown, 1)
	assert.Len(t, tag.Unknown[0].Raw, frameHeaderSize)
	assert.Equal(t, []string{"TALB"}, tag.Keys())
}

func TestRead_CorruptFrameKeptOpaque(t *testing.T) {
	encrypted := rawFrame("TIT2", frame.Flag24Encrypted, []byte{0, 'x'})
	data := rawTag(4, 0, 0, encrypted, rawFrame("TALB", 0, latin1Text("ok")))

	log, hook := logtest.NewNullLogger()
	tag, err := Read(source(data), Options{Strict: true, Log: log})
	require.NoError(t, err)

	require.Len(t, tag.Unknown, 1)
	o := tag.Unknown[0]
	assert.True(t, o.Corrupt())
	assert.Equal(t, encrypted, o.Raw)
	var eerr *types.UnsupportedEncryptionError
	assert.ErrorAs(t, o.Err, &eerr)

	require.Len(t, tag.Warnings, 1)
	assert.Equal(t, "frame", tag.Warnings[0].Stage)
	assert.Equal(t, int64(headerSize), tag.Warnings[0].Offset)
	assert.NotEmpty(t, hook.Entries)

	_, ok := tag.Get("TALB")
	assert.True(t, ok)
}

func TestRead_TruncatedBody(t *testing.T) {
	data := rawTag(4, 0, 0,
		rawFrame("TIT2", 0, latin1Text("kept")),
		rawFrame("TALB", 0, latin1Text("this body is cut short")),
	)
	data = data[:len(data)-5]

	tag, err := Read(source(data), quiet())
	require.NoError(t, err)
	assert.Equal(t, []string{"TIT2"}, tag.Keys())
	assert.Empty(t, tag.Unknown)
}

func TestRead_PaddingEndsLoop(t *testing.T) {
	data := rawTag(4, 0, 100, rawFrame("TIT2", 0, latin1Text("a")))
	// A frame after the padding must not be read.
	data = append(data, rawFrame("TALB", 0, latin1Text("b"))...)

	tag, err := Read(source(data), quiet())
	require.NoError(t, err)
	assert.Equal(t, []string{"TIT2"}, tag.Keys())
}

func TestRead_ExtendedHeader(t *testing.T) {
	ext := []byte{0, 0, 0, 10, 0, 0, 0, 0, 0, 0}
	body := append(ext, rawFrame("TIT2", 0, latin1Text("x"))...)
	size, _ := binutil.PutSyncSafe(len(body), 4)
	data := append(append([]byte{'I', 'D', '3', 4, 0, 0x40}, size...), body...)

	tag, err := Read(source(data), quiet())
	require.NoError(t, err)
	assert.True(t, tag.Flags.Extended)
	assert.Equal(t, ext[4:], tag.ExtendedHeader)
	assert.Equal(t, 1, tag.Len())
}

func TestRead_ExtendedHeaderTooSmall(t *testing.T) {
	data := append(rawTag(4, 0x40, 0), 0, 0, 0, 2)

	_, err := Read(source(data), quiet())
	var herr *types.InvalidHeaderError
	require.ErrorAs(t, err, &herr)
}

func TestRead_TagUnsync(t *testing.T) {
	body := []byte{0, 'a', 0xFF, 0xE0}
	data := rawTag(3, 0x80, 0, rawFrame("TIT2", 0, unsync.Encode(body)))

	tag, err := Read(source(data), quiet())
	require.NoError(t, err)
	assert.True(t, tag.Flags.Unsynchronized)

	f, ok := tag.Get("TIT2")
	require.True(t, ok)
	assert.Equal(t, []string{"aÿà"}, f.(*frame.MultiText).Text)
}

func TestRead_TagUnsyncOpaqueStoredDecoded(t *testing.T) {
	payload := []byte{1, 0xFF, 0xE0, 2}
	data := rawTag(4, 0x80, 0, rawFrame("XYZW", frame.Flag24Unsync, unsync.Encode(payload)))

	tag, err := Read(source(data), quiet())
	require.NoError(t, err)
	require.Len(t, tag.Unknown, 1)
	assert.Equal(t, rawFrame("XYZW", 0, payload), tag.Unknown[0].Raw)
	assert.Equal(t, payload, tag.Unknown[0].Body())

	rendered, err := Render(tag, 0)
	require.NoError(t, err)
	again, err := Read(source(rendered), quiet())
	require.NoError(t, err)
	require.Len(t, again.Unknown, 1)
	assert.Equal(t, payload, again.Unknown[0].Body())
}

func TestRead_TagUnsyncMalformedOpaqueKeptAsRead(t *testing.T) {
	broken := []byte{1, 0xFF, 0x41}
	data := rawTag(3, 0x80, 0, rawFrame("XYZW", 0, broken))

	tag, err := Read(source(data), quiet())
	require.NoError(t, err)
	require.Len(t, tag.Unknown, 1)
	assert.Equal(t, rawFrame("XYZW", 0, broken), tag.Unknown[0].Raw)
}

func id3v1Block(title string) []byte {
	b := make([]byte, 128)
	copy(b, "TAG")
	copy(b[3:], title)
	return b
}

func TestRead_FallbackToID3v1(t *testing.T) {
	data := id3v1Block("Silence")

	tag, err := Read(source(data), quiet())
	require.NoError(t, err)

	assert.Equal(t, V11, tag.Version)
	assert.Equal(t, []string{"TIT2"}, tag.Keys())
	f, _ := tag.Get("TIT2")
	assert.Equal(t, []string{"Silence"}, f.(*frame.MultiText).Text)
	require.Len(t, tag.Warnings, 1)
	assert.Equal(t, "fallback", tag.Warnings[0].Stage)
}

func TestRead_FallbackAfterUnsupportedVersion(t *testing.T) {
	data := append(rawTag(2, 0, 10), make([]byte, 200)...)
	data = append(data, id3v1Block("Old")...)

	tag, err := Read(source(data), quiet())
	require.NoError(t, err)
	assert.Equal(t, V11, tag.Version)
}

func TestRead_FallbackFailsWithOriginalError(t *testing.T) {
	data := make([]byte, 300)
	copy(data, "XYZ")

	_, err := Read(source(data), quiet())
	var noTag *types.NoTagError
	require.ErrorAs(t, err, &noTag)
	assert.Contains(t, noTag.Reason, "ID3 tag")

	_, err = Read(source(id3v1Block("x")), Options{NoFallback: true, Log: quiet().Log})
	require.ErrorAs(t, err, &noTag)
}

func TestRead_InvalidHeaderNotFallback(t *testing.T) {
	data := append(rawTag(4, 0x01, 10), id3v1Block("x")...)

	_, err := Read(source(data), quiet())
	var herr *types.InvalidHeaderError
	require.ErrorAs(t, err, &herr)
}

func TestRender_RoundTrip(t *testing.T) {
	tag := NewTag()
	tag.Set(frame.MustNew("TIT2", spec.UTF16, []string{"a", "b"}))
	tag.Set(frame.MustNew("TXXX", spec.UTF8, "mood", []string{"calm"}))
	tag.Set(frame.MustNew("COMM", spec.Latin1, "eng", "", []string{"hi"}))
	tag.Unknown = []Opaque{{ID: "XYZW", Raw: rawFrame("XYZW", 0, []byte{9, 9})}}

	data, err := Render(tag, 32)
	require.NoError(t, err)

	got, err := Read(source(data), quiet())
	require.NoError(t, err)
	assert.Equal(t, V24, got.Version)
	assert.Equal(t, tag.Keys(), got.Keys())

	title, _ := got.Get("TIT2")
	assert.Equal(t, []string{"a", "b"}, title.(*frame.MultiText).Text)
	mood, _ := got.Get("TXXX:mood")
	assert.Equal(t, []string{"calm"}, mood.(*frame.UserText).Text)

	require.Len(t, got.Unknown, 1)
	assert.Equal(t, tag.Unknown[0].Raw, got.Unknown[0].Raw)

	extent, err := Extent(source(data))
	require.NoError(t, err)
	assert.Equal(t, int64(len(data)), extent)
}

func TestRender_KeepsV23(t *testing.T) {
	tag, err := Read(source(rawTag(3, 0, 0, rawFrame("TIT2", 0, latin1Text("x")))), quiet())
	require.NoError(t, err)

	data, err := Render(tag, 0)
	require.NoError(t, err)
	assert.Equal(t, byte(3), data[3])
}

func TestRender_FrameTooLarge(t *testing.T) {
	tag := NewTag()
	tag.Set(frame.MustNew("MCDI", make([]byte, 1<<28)))

	_, err := Render(tag, 0)
	var encErr *types.EncodingError
	require.ErrorAs(t, err, &encErr)
}

func TestExtent(t *testing.T) {
	n, err := Extent(source([]byte("not a tag at all")))
	require.NoError(t, err)
	assert.Zero(t, n)

	data := rawTag(4, 0x10, 5)
	data = append(data, make([]byte, footerSize)...)
	n, err = Extent(source(data))
	require.NoError(t, err)
	assert.Equal(t, int64(len(data)), n)

	_, err = Extent(source(rawTag(4, 0, 0)[:8]))
	require.NoError(t, err)

	claims := rawTag(4, 0, 50)[:20]
	_, err = Extent(source(claims))
	assert.Error(t, err)
}

func TestHasID3v1(t *testing.T) {
	assert.True(t, HasID3v1(source(id3v1Block("x"))))
	assert.False(t, HasID3v1(source(rawTag(4, 0, 200))))
	assert.False(t, HasID3v1(source([]byte("TAG"))))
}

func TestTag_Ordering(t *testing.T) {
	tag := NewTag()
	tag.Set(frame.MustNew("TIT2", spec.Latin1, "one"))
	tag.Set(frame.MustNew("TALB", spec.Latin1, "album"))
	tag.Set(frame.MustNew("TIT2", spec.Latin1, "two"))

	assert.Equal(t, []string{"TIT2", "TALB"}, tag.Keys())
	f, _ := tag.Get("TIT2")
	assert.Equal(t, "two", f.String())

	var seen []string
	for key := range tag.All() {
		seen = append(seen, key)
		break
	}
	assert.Equal(t, []string{"TIT2"}, seen)

	assert.True(t, tag.Delete("TIT2"))
	assert.False(t, tag.Delete("TIT2"))
	assert.Equal(t, 1, tag.Len())
	assert.Len(t, tag.Frames(), 1)
}

func TestVersion_String(t *testing.T) {
	assert.Equal(t, "ID3v2.4.0", V24.String())
	assert.Equal(t, "ID3v1.1", V11.String())
}

func FuzzRead(f *testing.F) {
	f.Add(rawTag(4, 0, 10, rawFrame("TIT2", 0, latin1Text("seed"))))
	f.Add(rawTag(3, 0x80, 0, rawFrame("COMM", 0, []byte{1, 'e', 'n', 'g', 0xFF, 0xFE, 0, 0})))
	f.Add(id3v1Block("seed"))

	log, _ := logtest.NewNullLogger()
	f.Fuzz(func(t *testing.T, data []byte) {
		tag, err := Read(source(data), Options{Log: log})
		if err != nil && tag != nil {
			t.Fatal("got both a tag and an error")
		}
	})
}

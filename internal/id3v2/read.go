package id3v2

import (
	"encoding/binary"
	"slices"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	binutil "github.com/simonhull/id3tag/internal/binary"
	"github.com/simonhull/id3tag/internal/frame"
	"github.com/simonhull/id3tag/internal/id3v1"
	"github.com/simonhull/id3tag/internal/types"
	"github.com/simonhull/id3tag/internal/unsync"
)

const (
	headerSize      = 10
	frameHeaderSize = 10
	footerSize      = 10
)

// Options configures Read.
type Options struct {
	// Strict rejects tags with reserved header flag bits set.
	Strict bool

	// NoFallback disables the ID3v1 fallback on header failures.
	NoFallback bool

	Log logrus.FieldLogger
}

func (o Options) logger() logrus.FieldLogger {
	if o.Log == nil {
		return logrus.StandardLogger()
	}
	return o.Log
}

type header struct {
	major    byte
	revision byte
	flags    byte
	size     binutil.BitPaddedInt
}

// Read parses the ID3v2 tag at the start of sr.
//
// When the header is missing or has an unsupported version, Read falls back
// to the ID3v1 trailer in the last 128 bytes. If that fails too, the
// original header error is returned.
func Read(sr *binutil.SafeReader, opts Options) (*Tag, error) {
	log := opts.logger().WithField("path", sr.Path())

	tag, err := readTag(binutil.NewReader(sr, 0), opts.Strict, log)
	if err == nil {
		return tag, nil
	}
	if opts.NoFallback || !fallbackEligible(err) {
		return nil, err
	}

	tag, ok := readID3v1(sr)
	if !ok {
		return nil, err
	}
	log.WithError(err).Debug("no usable ID3v2 header, loaded ID3v1 trailer")
	tag.warn("fallback", 0, "%v", err)
	return tag, nil
}

func fallbackEligible(err error) bool {
	var noTag *types.NoTagError
	var version *types.UnsupportedVersionError
	return errors.As(err, &noTag) || errors.As(err, &version)
}

func readTag(r *binutil.Reader, strict bool, log logrus.FieldLogger) (*Tag, error) {
	h, err := readHeader(r, strict)
	if err != nil {
		return nil, err
	}

	tag := newTag(Version{2, h.major, h.revision})
	tag.Flags = parseFlags(h.flags)
	tag.Size = h.size.Int()

	if tag.Flags.Extended {
		if tag.ExtendedHeader, err = readExtendedHeader(r); err != nil {
			return nil, err
		}
	}

	dec := frame.Decoder{Major: h.major, Unsynchronized: tag.Flags.Unsynchronized, Log: log}
loop:
	for consumed(r)+frameHeaderSize < tag.Size {
		start := r.Offset()
		out := readFrame(r, dec)

		switch out.kind {
		case recognized:
			tag.Set(out.frame)
		case opaque:
			tag.Unknown = append(tag.Unknown, out.opaque)
			if out.opaque.Corrupt() {
				log.WithFields(logrus.Fields{
					"frame":  out.opaque.ID,
					"offset": start,
				}).WithError(out.opaque.Err).Warn("keeping undecodable frame as raw bytes")
				tag.warn("frame", start, "frame %s: %v", out.opaque.ID, out.opaque.Err)
			} else {
				log.WithField("frame", out.opaque.ID).Debug("keeping unknown frame as raw bytes")
			}
		case truncated:
			log.WithField("offset", start).Debug("tag truncated, keeping frames read so far")
			break loop
		case padding:
			break loop
		}
	}

	return tag, nil
}

// consumed is the number of tag body bytes read so far.
func consumed(r *binutil.Reader) int {
	return int(r.Offset() - headerSize)
}

func readHeader(r *binutil.Reader, strict bool) (header, error) {
	cr := binutil.NewChainReader(r)
	marker := cr.String(3, "ID3 marker")
	h := header{
		major:    binutil.ReadChained[uint8](cr, "major version"),
		revision: binutil.ReadChained[uint8](cr, "revision"),
		flags:    binutil.ReadChained[uint8](cr, "flags"),
	}
	size := cr.Bytes(4, "tag size")
	if err := cr.Error(); err != nil {
		return header{}, &types.NoTagError{Path: r.Path(), Reason: "too small for an ID3v2 header"}
	}

	if marker != "ID3" {
		return header{}, &types.NoTagError{Path: r.Path(), Reason: "does not start with an ID3 tag"}
	}
	if h.major != 3 && h.major != 4 {
		return header{}, &types.UnsupportedVersionError{Path: r.Path(), Major: h.major}
	}
	if strict {
		if reserved := reservedFlags(h.major); h.flags&reserved != 0 {
			return header{}, &types.InvalidHeaderError{
				Path:   r.Path(),
				Reason: "reserved flag bits set",
				Flags:  h.flags,
			}
		}
	}

	h.size = binutil.DecodeBitPadded(size, binutil.SyncSafeBits, binutil.BigEndian)
	return h, nil
}

func reservedFlags(major byte) byte {
	if major == 4 {
		return 0x0F
	}
	return 0x1F
}

func readExtendedHeader(r *binutil.Reader) ([]byte, error) {
	b, err := r.Next(4, "extended header size")
	if err != nil {
		return nil, &types.NoTagError{Path: r.Path(), Reason: "truncated extended header"}
	}

	size := binutil.SyncSafe(b)
	if size < 4 {
		return nil, &types.InvalidHeaderError{
			Path:   r.Path(),
			Reason: "extended header smaller than its size field",
		}
	}

	data, err := r.Next(size-4, "extended header")
	if err != nil {
		return nil, &types.NoTagError{Path: r.Path(), Reason: "truncated extended header"}
	}
	return data, nil
}

type outcomeKind int

const (
	recognized outcomeKind = iota
	opaque
	padding
	truncated
)

// outcome is the result of reading one frame.
type outcome struct {
	kind   outcomeKind
	frame  frame.Frame
	opaque Opaque
}

func readFrame(r *binutil.Reader, dec frame.Decoder) outcome {
	hdr, err := r.Next(frameHeaderSize, "frame header")
	if err != nil {
		return outcome{kind: truncated}
	}

	id := string(hdr[:4])
	if id == "\x00\x00\x00\x00" {
		return outcome{kind: padding}
	}
	size := binutil.SyncSafe(hdr[4:8])
	flags := binary.BigEndian.Uint16(hdr[8:10])

	if size == 0 {
		return outcome{kind: opaque, opaque: Opaque{ID: id, Raw: hdr}}
	}

	body, err := r.Next(size, "frame "+id)
	if err != nil {
		return outcome{kind: truncated}
	}

	if !frame.Registered(id) {
		return outcome{kind: opaque, opaque: Opaque{ID: id, Raw: resync(hdr, body, dec)}}
	}

	f, err := dec.Decode(id, flags, body)
	if err != nil {
		return outcome{kind: opaque, opaque: Opaque{ID: id, Raw: resync(hdr, body, dec), Err: err}}
	}
	return outcome{kind: recognized, frame: f}
}

// resync returns the complete frame for Opaque.Raw. Frames from an
// unsynchronized tag are stored decoded, with their size and v2.4 unsync
// flag rewritten. A body that does not decode is kept as read.
func resync(hdr, body []byte, dec frame.Decoder) []byte {
	raw := append(slices.Clone(hdr), body...)
	if !dec.Unsynchronized {
		return raw
	}

	plain, err := unsync.Decode(body)
	if err != nil {
		return raw
	}
	size, err := binutil.PutSyncSafe(len(plain), 4)
	if err != nil {
		return raw
	}

	out := append(slices.Clone(hdr[:4]), size...)
	flags := binary.BigEndian.Uint16(hdr[8:10])
	if dec.Major == 4 {
		flags &^= frame.Flag24Unsync
	}
	out = binary.BigEndian.AppendUint16(out, flags)
	return append(out, plain...)
}

func readID3v1(sr *binutil.SafeReader) (*Tag, bool) {
	b, err := sr.Tail(id3v1.Size, "ID3v1 block")
	if err != nil {
		return nil, false
	}

	frames, ok := id3v1.Parse(b)
	if !ok {
		return nil, false
	}

	tag := newTag(V11)
	for _, f := range frames {
		tag.Set(f)
	}
	return tag, true
}

// Extent returns the number of bytes the ID3v2 tag at the start of sr
// occupies, header and footer included. It is 0 when there is no tag.
func Extent(sr *binutil.SafeReader) (int64, error) {
	h, err := readHeader(binutil.NewReader(sr, 0), false)
	if err != nil {
		if fallbackEligible(err) {
			return 0, nil
		}
		return 0, err
	}

	n := int64(headerSize + h.size.Int())
	if parseFlags(h.flags).Footer {
		n += footerSize
	}
	if n > sr.Size() {
		return 0, errors.Errorf("%s: ID3v2 tag claims %d bytes, file has %d", sr.Path(), n, sr.Size())
	}
	return n, nil
}

// HasID3v1 reports whether sr ends with an ID3v1 block.
func HasID3v1(sr *binutil.SafeReader) bool {
	b, err := sr.Tail(id3v1.Size, "ID3v1 block")
	if err != nil {
		return false
	}
	_, ok := id3v1.Unpack(b)
	return ok
}

package frame

import (
	"bytes"
	"compress/zlib"
	"io"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	binutil "github.com/simonhull/id3tag/internal/binary"
	"github.com/simonhull/id3tag/internal/types"
	"github.com/simonhull/id3tag/internal/unsync"
)

// Frame header flag bits.
const (
	// ID3v2.4
	Flag24DataLength   uint16 = 0x0001
	Flag24Unsync       uint16 = 0x0002
	Flag24Encrypted    uint16 = 0x0004
	Flag24Compressed   uint16 = 0x0008
	Flag24GroupID      uint16 = 0x0040
	Flag24ReadOnly     uint16 = 0x1000
	Flag24FilePreserve uint16 = 0x2000
	Flag24TagPreserve  uint16 = 0x4000

	// ID3v2.3
	Flag23GroupID      uint16 = 0x0020
	Flag23Encrypted    uint16 = 0x0040
	Flag23Compressed   uint16 = 0x0080
	Flag23ReadOnly     uint16 = 0x2000
	Flag23FilePreserve uint16 = 0x4000
	Flag23TagPreserve  uint16 = 0x8000
)

// Decoder turns raw frame bodies into frames for one tag.
type Decoder struct {
	// Major is the tag's major version, 3 or 4.
	Major byte

	// Unsynchronized is set when the tag header carries the
	// unsynchronization flag.
	Unsynchronized bool

	Log logrus.FieldLogger
}

// Decode applies the frame header flags to data and decodes the result
// with the variant registered for id.
//
// Unknown ids fail with ErrUnknownFrame. Encrypted frames fail with
// *types.UnsupportedEncryptionError.
func (d Decoder) Decode(id string, flags uint16, data []byte) (Frame, error) {
	b, err := lookup(id)
	if err != nil {
		return nil, err
	}

	payload, err := d.unwrap(id, flags, data)
	if err != nil {
		return nil, err
	}

	b.setHeader(id, flags, data)
	rest, err := b.decode(payload)
	if err != nil {
		return nil, errors.Wrapf(err, "frame %s", id)
	}
	if len(rest) > 0 && !allZero(rest) {
		d.logger().WithFields(logrus.Fields{
			"frame": id,
			"bytes": len(rest),
		}).Warn("leftover data")
	}
	return b, nil
}

func (d Decoder) unwrap(id string, flags uint16, data []byte) ([]byte, error) {
	if d.Major == 4 {
		return d.unwrap24(id, flags, data)
	}
	return d.unwrap23(id, flags, data)
}

func (d Decoder) unwrap24(id string, flags uint16, data []byte) ([]byte, error) {
	var err error
	declared := -1
	if flags&Flag24DataLength != 0 {
		if len(data) < 4 {
			return nil, &types.EndOfInputError{
				Path: id, What: "data length indicator", Length: 4, Size: int64(len(data)),
			}
		}
		declared = binutil.SyncSafe(data[:4])
		data = data[4:]
	}
	if flags&Flag24Unsync != 0 || d.Unsynchronized {
		if data, err = unsync.Decode(data); err != nil {
			return nil, errors.Wrapf(err, "frame %s", id)
		}
	}
	if flags&Flag24Encrypted != 0 {
		return nil, &types.UnsupportedEncryptionError{FrameID: id}
	}
	if flags&Flag24Compressed != 0 {
		return inflate(id, data, declared)
	}
	return data, nil
}

func (d Decoder) unwrap23(id string, flags uint16, data []byte) ([]byte, error) {
	var err error
	if d.Unsynchronized {
		if data, err = unsync.Decode(data); err != nil {
			return nil, errors.Wrapf(err, "frame %s", id)
		}
	}
	if flags&Flag23Encrypted != 0 {
		return nil, &types.UnsupportedEncryptionError{FrameID: id}
	}
	if flags&Flag23Compressed != 0 {
		// 4-byte big-endian decompressed size precedes the zlib stream.
		r := binutil.NewSafeReader(bytes.NewReader(data), int64(len(data)), id)
		declared, err := binutil.Read[uint32](r, 0, "decompressed size")
		if err != nil {
			return nil, err
		}
		return inflate(id, data[4:], int(declared))
	}
	return data, nil
}

// MaxInflateRatio bounds the output of a compressed frame that does not
// declare its decompressed size, as a multiple of the compressed size.
const MaxInflateRatio = 256

// inflate decompresses a zlib frame body. The output may not exceed
// declared bytes, or MaxInflateRatio times the input when declared < 0.
func inflate(id string, data []byte, declared int) ([]byte, error) {
	limit := declared
	if limit < 0 {
		limit = len(data) * MaxInflateRatio
	}

	zr, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrapf(err, "frame %s: zlib", id)
	}
	defer zr.Close()

	out, err := io.ReadAll(io.LimitReader(zr, int64(limit)+1))
	if err != nil {
		return nil, errors.Wrapf(err, "frame %s: zlib", id)
	}
	if len(out) > limit {
		return nil, &types.InflateLimitError{FrameID: id, Limit: limit}
	}
	return out, nil
}

func (d Decoder) logger() logrus.FieldLogger {
	if d.Log == nil {
		return logrus.StandardLogger()
	}
	return d.Log
}

func allZero(b []byte) bool {
	for _, c := range b {
		if c != 0 {
			return false
		}
	}
	return true
}

package id3v2

import (
	"bytes"

	"github.com/pkg/errors"

	binutil "github.com/simonhull/id3tag/internal/binary"
)

// DefaultPadding is the number of zero bytes appended after the frames.
const DefaultPadding = 1024

// Render serializes tag as an ID3v2 tag followed by padding zero bytes.
//
// ID3v2.3 tags are written as ID3v2.3; everything else, including tags
// recovered from ID3v1, is written as ID3v2.4. Frames are written in order
// without frame flags, then opaque frames exactly as they were read. The
// header carries no flags and the extended header is dropped.
func Render(tag *Tag, padding int) ([]byte, error) {
	if padding < 0 {
		padding = 0
	}

	var body bytes.Buffer
	w := binutil.NewSafeWriter(&body)

	for key, f := range tag.All() {
		data, err := f.Encode()
		if err != nil {
			return nil, errors.Wrapf(err, "encode frame %s", key)
		}
		if len(f.ID()) != 4 {
			return nil, errors.Errorf("frame %q: id must be 4 bytes", f.ID())
		}
		if err := w.WriteString(f.ID()); err != nil {
			return nil, err
		}
		if err := w.WriteSyncSafe(len(data), 4); err != nil {
			return nil, errors.Wrapf(err, "frame %s size", f.ID())
		}
		if err := binutil.Write[uint16](w, 0); err != nil {
			return nil, err
		}
		if err := w.WriteBytes(data); err != nil {
			return nil, err
		}
	}

	for _, o := range tag.Unknown {
		if err := w.WriteBytes(o.Raw); err != nil {
			return nil, err
		}
	}
	if err := w.WriteZeros(padding); err != nil {
		return nil, err
	}

	var out bytes.Buffer
	hw := binutil.NewSafeWriter(&out)
	if err := hw.WriteString("ID3"); err != nil {
		return nil, err
	}
	if err := hw.WriteBytes([]byte{renderMajor(tag.Version), 0, 0}); err != nil {
		return nil, err
	}
	if err := hw.WriteSyncSafe(body.Len(), 4); err != nil {
		return nil, errors.Wrap(err, "tag size")
	}
	if err := hw.WriteBytes(body.Bytes()); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func renderMajor(v Version) byte {
	if v.Major == 2 && v.Minor == 3 {
		return 3
	}
	return 4
}

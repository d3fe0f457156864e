// Package id3v1 parses the fixed 128-byte ID3v1.1 trailer into ID3v2 frames.
package id3v1

import (
	"bytes"
	"strconv"
	"strings"

	binutil "github.com/simonhull/id3tag/internal/binary"
	"github.com/simonhull/id3tag/internal/frame"
	"github.com/simonhull/id3tag/internal/spec"
)

// Size is the length of an ID3v1 block.
const Size = 128

// CommentDescription is the description given to the COMM frame built from
// the ID3v1 comment.
const CommentDescription = "ID3v1 Comment"

// Block is an unpacked ID3v1.1 trailer.
type Block struct {
	Title   string
	Artist  string
	Album   string
	Year    string
	Comment string
	Track   byte
	Genre   byte
}

// Unpack splits b into its fixed-width fields. It reports false unless b is
// exactly Size bytes and starts with "TAG".
func Unpack(b []byte) (Block, bool) {
	if len(b) != Size {
		return Block{}, false
	}

	r := binutil.NewChainReader(binutil.NewReader(
		binutil.NewSafeReader(bytes.NewReader(b), Size, "ID3v1"), 0))

	marker := r.String(3, "marker")
	blk := Block{
		Title:   field(r.Bytes(30, "title")),
		Artist:  field(r.Bytes(30, "artist")),
		Album:   field(r.Bytes(30, "album")),
		Year:    field(r.Bytes(4, "year")),
		Comment: field(r.Bytes(29, "comment")),
		Track:   binutil.ReadChained[uint8](r, "track"),
		Genre:   binutil.ReadChained[uint8](r, "genre"),
	}
	if r.Error() != nil || marker != "TAG" {
		return Block{}, false
	}
	return blk, true
}

// field trims nulls and then whitespace from both ends and decodes Latin-1.
func field(b []byte) string {
	s, err := spec.Latin1.Decode(bytes.Trim(b, "\x00"))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(s)
}

// Parse converts an ID3v1 block into ID3v2 frames. Empty fields produce no
// frame. The genre byte is not mapped.
func Parse(b []byte) ([]frame.Frame, bool) {
	blk, ok := Unpack(b)
	if !ok {
		return nil, false
	}
	return blk.Frames(), true
}

// Frames returns the synthetic frame set for blk.
func (blk Block) Frames() []frame.Frame {
	var frames []frame.Frame
	if blk.Title != "" {
		frames = append(frames, frame.MustNew("TIT2", spec.Latin1, []string{blk.Title}))
	}
	if blk.Artist != "" {
		frames = append(frames, frame.MustNew("TPE1", spec.Latin1, []string{blk.Artist}))
	}
	if blk.Album != "" {
		frames = append(frames, frame.MustNew("TALB", spec.Latin1, blk.Album))
	}
	if blk.Year != "" {
		frames = append(frames, frame.MustNew("TYER", spec.Latin1, blk.Year))
	}
	if blk.Comment != "" {
		frames = append(frames, frame.MustNew("COMM", spec.Latin1, "eng", CommentDescription, []string{blk.Comment}))
	}
	if blk.Track != 0 {
		frames = append(frames, frame.MustNew("TRCK", spec.Latin1, strconv.Itoa(int(blk.Track))))
	}
	return frames
}

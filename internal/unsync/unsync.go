// Package unsync implements the ID3v2 unsynchronization scheme: a guard 0x00
// byte is stuffed after 0xFF wherever the pair could be mistaken for an MPEG
// frame sync.
package unsync

import "github.com/simonhull/id3tag/internal/types"

// Decode removes the guard byte that follows every 0xFF.
//
// A 0xFF followed by anything but 0x00, or a stream ending on a bare 0xFF,
// fails with *types.MalformedStreamError.
func Decode(data []byte) ([]byte, error) {
	out := make([]byte, 0, len(data))
	safe := true
	for i, b := range data {
		if safe {
			out = append(out, b)
			safe = b != 0xFF
			continue
		}
		if b != 0x00 {
			return nil, &types.MalformedStreamError{
				Reason: "missing guard byte after 0xFF",
				Offset: i,
			}
		}
		safe = true
	}
	if !safe {
		return nil, &types.MalformedStreamError{
			Reason: "stream ends on an unguarded 0xFF",
			Offset: len(data),
		}
	}
	return out, nil
}

// Encode inserts a guard 0x00 after every 0xFF so that Decode(Encode(b)) == b
// for any input.
func Encode(data []byte) []byte {
	out := make([]byte, 0, len(data)+len(data)/8)
	for _, b := range data {
		out = append(out, b)
		if b == 0xFF {
			out = append(out, 0x00)
		}
	}
	return out
}

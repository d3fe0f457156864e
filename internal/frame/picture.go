package frame

import (
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/simonhull/id3tag/internal/spec"
)

// PictureType is the purpose of an attached picture.
type PictureType byte

const (
	PictureOther              PictureType = iota // Other
	PictureIcon                                  // File icon (32x32 PNG)
	PictureOtherIcon                             // Other file icon
	PictureFrontCover                            // Front cover
	PictureBackCover                             // Back cover
	PictureLeaflet                               // Leaflet page
	PictureMedia                                 // Media (CD/vinyl label)
	PictureLeadArtist                            // Lead artist/performer/soloist
	PictureArtist                                // Artist/performer
	PictureConductor                             // Conductor
	PictureBand                                  // Band/orchestra
	PictureComposer                              // Composer
	PictureLyricist                              // Lyricist/text writer
	PictureRecordingLocation                     // Recording location
	PictureDuringRecording                       // During recording
	PictureDuringPerformance                     // During performance
	PictureVideoCapture                          // Movie/video screen capture
	PictureBrightFish                            // A bright colored fish
	PictureIllustration                          // Illustration
	PictureBandLogotype                          // Band/artist logotype
	PicturePublisherLogotype                     // Publisher/studio logotype
)

var pictureTypeNames = [...]string{
	"Other", "File icon", "Other file icon", "Front cover", "Back cover",
	"Leaflet page", "Media", "Lead artist", "Artist", "Conductor", "Band",
	"Composer", "Lyricist", "Recording location", "During recording",
	"During performance", "Video capture", "A bright colored fish",
	"Illustration", "Band logotype", "Publisher logotype",
}

func (t PictureType) String() string {
	if int(t) < len(pictureTypeNames) {
		return pictureTypeNames[t]
	}
	return fmt.Sprintf("PictureType(%d)", byte(t))
}

// Picture is APIC: an embedded image.
type Picture struct {
	base
	Encoding    spec.Encoding
	MIME        string
	Type        PictureType
	Description string
	Data        []byte
}

var pictureLayout = spec.Layout[*Picture]{
	spec.Bind(spec.EncodingMarker("encoding"), func(f *Picture) *spec.Encoding { return &f.Encoding }),
	spec.Bind[*Picture](spec.Latin1Text("mime"), func(f *Picture) *string { return &f.MIME }),
	spec.Bind[*Picture](spec.Byte("type"), func(f *Picture) *byte { return (*byte)(&f.Type) }),
	spec.Bind[*Picture](spec.EncodedText("desc"), func(f *Picture) *string { return &f.Description }),
	spec.Bind[*Picture](spec.Binary("data"), func(f *Picture) *[]byte { return &f.Data }),
}

func (f *Picture) TextEncoding() spec.Encoding { return f.Encoding }
func (f *Picture) Encode() ([]byte, error)     { return pictureLayout.Write(f) }
func (f *Picture) Fields() map[string]any      { return pictureLayout.Values(f) }
func (f *Picture) FieldNames() []string        { return pictureLayout.Names() }

func (f *Picture) decode(data []byte) ([]byte, error) { return pictureLayout.Read(f, data) }
func (f *Picture) init(positional []any, named map[string]any) error {
	return pictureLayout.Init(f, positional, named)
}

// String returns e.g. "Front cover (1200x1200 image/jpeg, 245KB)".
func (f *Picture) String() string {
	dims := ""
	if w, h := f.Dimensions(); w > 0 && h > 0 {
		dims = fmt.Sprintf("%dx%d ", w, h)
	}
	return fmt.Sprintf("%s (%s%s, %s)", f.Type, dims, f.DetectMIME(), formatSize(len(f.Data)))
}

// DetectMIME returns the MIME type of the image data, sniffed from its
// magic bytes. It falls back to the declared type when sniffing fails.
func (f *Picture) DetectMIME() string {
	if len(f.Data) > 0 {
		if m := mimetype.Detect(f.Data); strings.HasPrefix(m.String(), "image/") {
			return m.String()
		}
	}
	return normalizeMIME(f.MIME)
}

// normalizeMIME maps legacy ID3v2.2 style image formats to MIME types.
func normalizeMIME(m string) string {
	switch strings.ToLower(m) {
	case "jpg", "jpeg":
		return "image/jpeg"
	case "png":
		return "image/png"
	case "", "-->":
		return "application/octet-stream"
	default:
		return m
	}
}

// Dimensions extracts width and height from JPEG or PNG data. It returns
// zeros for other formats.
func (f *Picture) Dimensions() (width, height int) {
	switch f.DetectMIME() {
	case "image/jpeg":
		return jpegDimensions(f.Data)
	case "image/png":
		return pngDimensions(f.Data)
	default:
		return 0, 0
	}
}

func jpegDimensions(data []byte) (int, int) {
	// SOF markers: FF Cn [2 bytes length] [1 byte precision] [2 bytes height] [2 bytes width]
	for i := 0; i+9 <= len(data); i++ {
		if data[i] != 0xFF {
			continue
		}
		switch data[i+1] {
		case 0xC0, 0xC1, 0xC2:
			height := int(data[i+5])<<8 | int(data[i+6])
			width := int(data[i+7])<<8 | int(data[i+8])
			return width, height
		}
	}
	return 0, 0
}

func pngDimensions(data []byte) (int, int) {
	// 8-byte signature, then IHDR: [4 len] [4 "IHDR"] [4 width] [4 height]
	if len(data) < 24 || string(data[12:16]) != "IHDR" {
		return 0, 0
	}
	width := int(data[16])<<24 | int(data[17])<<16 | int(data[18])<<8 | int(data[19])
	height := int(data[20])<<24 | int(data[21])<<16 | int(data[22])<<8 | int(data[23])
	return width, height
}

func formatSize(bytes int) string {
	const (
		KB = 1024
		MB = 1024 * KB
	)
	switch {
	case bytes >= MB:
		return fmt.Sprintf("%.1fMB", float64(bytes)/MB)
	case bytes >= KB:
		return fmt.Sprintf("%dKB", bytes/KB)
	default:
		return fmt.Sprintf("%dB", bytes)
	}
}

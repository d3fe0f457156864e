// Package id3tag reads and writes ID3 tags in MP3 files.
//
// ID3v2.3 and ID3v2.4 tags are fully supported. Files without an ID3v2
// tag fall back to the ID3v1.1 trailer in the last 128 bytes.
//
// # Quick Start
//
// Reading the tag of an audio file:
//
//	tag, err := id3tag.Load("song.mp3")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	for key, f := range tag.All() {
//		fmt.Printf("%s: %s\n", key, f)
//	}
//
// Changing a frame and writing the tag back:
//
//	title, err := id3tag.NewFrame("TIT2", id3tag.UTF8, []string{"New Title"})
//	if err != nil {
//		log.Fatal(err)
//	}
//	tag.Set(title)
//	err = id3tag.Save("song.mp3", tag, id3tag.WithBackup(".bak"))
//
// # Frames and Keys
//
// Every frame has a four character id such as TIT2 or APIC. A Tag stores
// frames by key, which is the id except for user defined frames: a TXXX
// frame with description "CATALOG" is keyed "TXXX:CATALOG". Frames keep the
// order in which they were read or set.
//
// Each registered id maps to one frame kind (Text, MultiText, Comment,
// Picture, ...). A frame's Fields method exposes its values by name.
// Frames whose id is not registered are kept as raw bytes in Tag.Unknown
// and written back unchanged.
//
// # Text Encodings
//
// Text frames carry one of four encodings: Latin1, UTF16 (with byte order
// mark), UTF16BE and UTF8. UTF16BE and UTF8 are defined by ID3v2.4 only.
//
// # Error Handling
//
// id3tag distinguishes between fatal errors and warnings:
//
//   - Fatal errors prevent loading entirely (no tag, unsupported version)
//   - Warnings indicate non-fatal issues (a frame body that cannot be decoded)
//
// Check tag.Warnings for issues encountered while loading:
//
//	for _, w := range tag.Warnings {
//		log.Printf("Warning: %s", w)
//	}
//
// Diagnostics are also logged through logrus; see WithLogger.
package id3tag

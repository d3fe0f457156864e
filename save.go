package id3tag

import (
	"io"
	"os"
	"path/filepath"
	"slices"

	"github.com/pkg/errors"

	binutil "github.com/simonhull/id3tag/internal/binary"
	"github.com/simonhull/id3tag/internal/id3v1"
	"github.com/simonhull/id3tag/internal/id3v2"
)

// DefaultPadding is the number of zero bytes Save writes after the frames.
const DefaultPadding = id3v2.DefaultPadding

// Render serializes tag as ID3v2 bytes followed by padding zero bytes.
//
// ID3v2.3 tags are written as ID3v2.3; all others as ID3v2.4.
func Render(tag *Tag, padding int) ([]byte, error) {
	return id3v2.Render(tag, padding)
}

// Save writes tag to the file at path, replacing any ID3v2 tag it has.
//
// This is an atomic operation: writes to a temporary file first, then renames
// to the original path. If any step fails, the original file remains unchanged.
//
// Options can be provided to customize save behavior:
//
//	err := id3tag.Save("song.mp3", tag,
//	    id3tag.WithBackup(".bak"),
//	    id3tag.WithValidation(),
//	)
func Save(path string, tag *Tag, opts ...SaveOption) error {
	return SaveAs(path, path, tag, opts...)
}

// SaveAs writes tag followed by the audio of src to dst.
//
// The ID3v2 tag at the start of src, if any, is replaced. src and dst may
// be the same path. This is an atomic operation: writes to a temporary file
// first, then renames to dst. If any step fails, any partially written data
// is cleaned up.
func SaveAs(src, dst string, tag *Tag, opts ...SaveOption) error { //nolint:gocyclo // Atomic file operations require sequential steps
	options := defaultSaveOptions()
	for _, opt := range opts {
		opt(options)
	}

	if tag == nil {
		return errors.New("save: nil tag")
	}

	data, err := id3v2.Render(tag, options.padding)
	if err != nil {
		return errors.Wrap(err, "render tag")
	}

	in, err := os.Open(src)
	if err != nil {
		return errors.Wrap(err, "open source")
	}
	defer in.Close() //nolint:errcheck // Read-only handle

	info, err := in.Stat()
	if err != nil {
		return errors.Wrap(err, "stat source")
	}

	sr := binutil.NewSafeReader(in, info.Size(), src)
	start, err := id3v2.Extent(sr)
	if err != nil {
		return err
	}
	end := info.Size()
	if options.stripID3v1 && id3v2.HasID3v1(sr) && end-id3v1.Size >= start {
		end -= id3v1.Size
	}

	// Create temp file in same directory as output (for atomic rename)
	tempFile, err := os.CreateTemp(filepath.Dir(dst), ".id3tag-*.tmp")
	if err != nil {
		return errors.Wrap(err, "create temp file")
	}
	tempPath := tempFile.Name()

	success := false
	defer func() {
		if !success {
			_ = tempFile.Close()    //nolint:errcheck // Best effort cleanup
			_ = os.Remove(tempPath) //nolint:errcheck // Best effort cleanup
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		return errors.Wrap(err, "write tag")
	}
	if _, err := io.Copy(tempFile, io.NewSectionReader(in, start, end-start)); err != nil {
		return errors.Wrap(err, "copy audio")
	}

	if err := tempFile.Sync(); err != nil {
		return errors.Wrap(err, "sync temp file")
	}
	if err := tempFile.Close(); err != nil {
		return errors.Wrap(err, "close temp file")
	}

	if options.backupSuffix != "" {
		if _, err := os.Stat(dst); err == nil {
			if err := os.Rename(dst, dst+options.backupSuffix); err != nil {
				return errors.Wrap(err, "create backup")
			}
		}
	}

	if err := os.Rename(tempPath, dst); err != nil {
		return errors.Wrap(err, "rename temp to output")
	}
	success = true

	if options.preserveModTime {
		_ = os.Chtimes(dst, info.ModTime(), info.ModTime()) //nolint:errcheck // Non-fatal: file was written successfully
	}

	if options.validate {
		if err := validateWritten(dst, tag); err != nil {
			return errors.Wrap(err, "validation failed")
		}
	}

	return nil
}

// validateWritten re-loads path and compares its frame keys with tag.
func validateWritten(path string, tag *Tag) error {
	written, err := Load(path, WithoutID3v1Fallback(), WithIgnoreWarnings())
	if err != nil {
		return errors.Wrap(err, "re-load")
	}
	if got, want := written.Keys(), tag.Keys(); !slices.Equal(got, want) {
		return errors.Errorf("frame keys mismatch: got %v, want %v", got, want)
	}
	return nil
}

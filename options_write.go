package id3tag

import "github.com/simonhull/id3tag/internal/id3v2"

// SaveOption configures behavior when saving tags.
//
// Options use the functional options pattern for clean, extensible APIs.
//
// Example:
//
//	err := id3tag.Save("song.mp3", tag,
//	    id3tag.WithBackup(".bak"),
//	    id3tag.WithValidation(),
//	)
type SaveOption func(*saveOptions)

// saveOptions holds configuration for saving tags.
type saveOptions struct {
	backupSuffix    string // Suffix for backup file (e.g., ".bak")
	validate        bool   // Re-read after write to verify
	preserveModTime bool   // Keep original modification time
	padding         int    // Zero bytes after the frames
	stripID3v1      bool   // Drop a trailing ID3v1 block
}

// defaultSaveOptions returns the default configuration for saving.
func defaultSaveOptions() *saveOptions {
	return &saveOptions{
		backupSuffix:    "",
		validate:        false,
		preserveModTime: false,
		padding:         id3v2.DefaultPadding,
		stripID3v1:      false,
	}
}

// WithBackup creates a backup of the original file before saving.
//
// The backup file will have the specified suffix appended to the original
// filename. For example, WithBackup(".bak") will create "song.mp3.bak"
// before modifying "song.mp3".
//
// If the backup file already exists, it will be overwritten.
func WithBackup(suffix string) SaveOption {
	return func(o *saveOptions) {
		o.backupSuffix = suffix
	}
}

// WithValidation re-reads the file after writing to verify integrity.
//
// After saving, the tag is loaded again and its frame keys are compared
// with the saved tag.
func WithValidation() SaveOption {
	return func(o *saveOptions) {
		o.validate = true
	}
}

// WithPreserveModTime keeps the original file modification time.
func WithPreserveModTime() SaveOption {
	return func(o *saveOptions) {
		o.preserveModTime = true
	}
}

// WithPadding sets the number of zero bytes written after the frames.
// Padding lets later edits grow the tag without rewriting the audio.
// The default is 1024.
func WithPadding(n int) SaveOption {
	return func(o *saveOptions) {
		if n >= 0 {
			o.padding = n
		}
	}
}

// WithStripID3v1 removes a trailing ID3v1 block from the saved file.
func WithStripID3v1() SaveOption {
	return func(o *saveOptions) {
		o.stripID3v1 = true
	}
}

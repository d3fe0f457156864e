package id3tag

import "github.com/sirupsen/logrus"

// Option configures behavior when loading tags.
//
// Options use the functional options pattern for clean, extensible APIs.
//
// Example:
//
//	tag, err := id3tag.Load("song.mp3",
//	    id3tag.WithLenientHeaders(),
//	    id3tag.WithLogger(logger),
//	)
type Option func(*loadOptions)

// loadOptions holds configuration for loading tags.
type loadOptions struct {
	lenientHeaders bool               // Accept reserved header flag bits
	strictParsing  bool               // Fail on any warning
	ignoreWarnings bool               // Suppress all warnings
	noFallback     bool               // Skip the ID3v1 fallback
	log            logrus.FieldLogger // Diagnostics sink
}

// defaultOptions returns the default configuration.
func defaultOptions() *loadOptions {
	return &loadOptions{
		lenientHeaders: false,
		strictParsing:  false,
		ignoreWarnings: false,
		noFallback:     false,
		log:            logrus.StandardLogger(),
	}
}

// WithLenientHeaders accepts tags whose header sets reserved flag bits.
//
// By default such tags are rejected with InvalidHeaderError, and no ID3v1
// fallback is attempted.
func WithLenientHeaders() Option {
	return func(o *loadOptions) {
		o.lenientHeaders = true
	}
}

// WithStrictParsing treats any warning as a fatal error.
//
// By default, Load keeps going when a frame cannot be decoded: the frame
// is kept as raw bytes in Tag.Unknown and a warning is recorded. With
// strict parsing enabled, the first warning becomes the returned error.
//
// Example:
//
//	tag, err := id3tag.Load("song.mp3", id3tag.WithStrictParsing())
//	// err != nil if ANY frame failed to decode
func WithStrictParsing() Option {
	return func(o *loadOptions) {
		o.strictParsing = true
	}
}

// WithIgnoreWarnings suppresses all warnings.
//
// Tag.Warnings will always be empty. Undecodable frames are still kept in
// Tag.Unknown with their error.
func WithIgnoreWarnings() Option {
	return func(o *loadOptions) {
		o.ignoreWarnings = true
	}
}

// WithoutID3v1Fallback disables reading the ID3v1 trailer when the file
// has no usable ID3v2 header.
func WithoutID3v1Fallback() Option {
	return func(o *loadOptions) {
		o.noFallback = true
	}
}

// WithLogger sets the logger for parse diagnostics such as leftover frame
// data or frames kept as raw bytes. The default is logrus.StandardLogger().
//
// Example:
//
//	log := logrus.New()
//	log.SetLevel(logrus.DebugLevel)
//	tag, err := id3tag.Load("song.mp3", id3tag.WithLogger(log))
func WithLogger(log logrus.FieldLogger) Option {
	return func(o *loadOptions) {
		if log != nil {
			o.log = log
		}
	}
}

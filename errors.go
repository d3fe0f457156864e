package id3tag

import (
	"github.com/simonhull/id3tag/internal/types"
)

// EndOfInputError is an alias to types.EndOfInputError.
// Re-exporting from internal/types to maintain public API.
type EndOfInputError = types.EndOfInputError

// NoTagError is an alias to types.NoTagError.
type NoTagError = types.NoTagError

// UnsupportedVersionError is an alias to types.UnsupportedVersionError.
type UnsupportedVersionError = types.UnsupportedVersionError

// InvalidHeaderError is an alias to types.InvalidHeaderError.
type InvalidHeaderError = types.InvalidHeaderError

// MalformedStreamError is an alias to types.MalformedStreamError.
type MalformedStreamError = types.MalformedStreamError

// UnsupportedEncryptionError is an alias to types.UnsupportedEncryptionError.
type UnsupportedEncryptionError = types.UnsupportedEncryptionError

// InflateLimitError is an alias to types.InflateLimitError.
type InflateLimitError = types.InflateLimitError

// ValidationError is an alias to types.ValidationError.
type ValidationError = types.ValidationError

// EncodingError is an alias to types.EncodingError.
type EncodingError = types.EncodingError

// Warning is an alias to types.Warning.
// Re-exporting from internal/types to maintain public API.
type Warning = types.Warning

package id3tag

import (
	"testing"

	"github.com/simonhull/id3tag/internal/id3v2"
)

func TestSaveOptions(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		opts := defaultSaveOptions()

		if opts.backupSuffix != "" {
			t.Errorf("expected empty backupSuffix, got %q", opts.backupSuffix)
		}
		if opts.validate {
			t.Error("expected validate to be false")
		}
		if opts.preserveModTime {
			t.Error("expected preserveModTime to be false")
		}
		if opts.padding != id3v2.DefaultPadding {
			t.Errorf("expected padding %d, got %d", id3v2.DefaultPadding, opts.padding)
		}
		if opts.stripID3v1 {
			t.Error("expected stripID3v1 to be false")
		}
	})

	t.Run("WithBackup", func(t *testing.T) {
		opts := defaultSaveOptions()
		WithBackup(".bak")(opts)

		if opts.backupSuffix != ".bak" {
			t.Errorf("expected backupSuffix %q, got %q", ".bak", opts.backupSuffix)
		}
	})

	t.Run("WithPadding", func(t *testing.T) {
		opts := defaultSaveOptions()
		WithPadding(0)(opts)
		if opts.padding != 0 {
			t.Errorf("expected padding 0, got %d", opts.padding)
		}

		WithPadding(-5)(opts)
		if opts.padding != 0 {
			t.Errorf("negative padding should be ignored, got %d", opts.padding)
		}
	})

	t.Run("all options combined", func(t *testing.T) {
		opts := defaultSaveOptions()

		options := []SaveOption{
			WithBackup(".backup"),
			WithValidation(),
			WithPreserveModTime(),
			WithStripID3v1(),
			WithPadding(64),
		}
		for _, opt := range options {
			opt(opts)
		}

		if opts.backupSuffix != ".backup" {
			t.Errorf("expected backupSuffix %q, got %q", ".backup", opts.backupSuffix)
		}
		if !opts.validate {
			t.Error("expected validate to be true")
		}
		if !opts.preserveModTime {
			t.Error("expected preserveModTime to be true")
		}
		if !opts.stripID3v1 {
			t.Error("expected stripID3v1 to be true")
		}
		if opts.padding != 64 {
			t.Errorf("expected padding 64, got %d", opts.padding)
		}
	})
}

func TestLoadOptions(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		opts := defaultOptions()

		if opts.lenientHeaders || opts.strictParsing || opts.ignoreWarnings || opts.noFallback {
			t.Errorf("expected all flags off, got %+v", opts)
		}
		if opts.log == nil {
			t.Error("expected a default logger")
		}
	})

	t.Run("WithLogger ignores nil", func(t *testing.T) {
		opts := defaultOptions()
		WithLogger(nil)(opts)

		if opts.log == nil {
			t.Error("nil logger should keep the default")
		}
	})

	t.Run("flags", func(t *testing.T) {
		opts := defaultOptions()
		for _, opt := range []Option{
			WithLenientHeaders(),
			WithStrictParsing(),
			WithIgnoreWarnings(),
			WithoutID3v1Fallback(),
		} {
			opt(opts)
		}

		if !opts.lenientHeaders || !opts.strictParsing || !opts.ignoreWarnings || !opts.noFallback {
			t.Errorf("expected all flags on, got %+v", opts)
		}
	})
}

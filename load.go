package id3tag

import (
	"context"
	"io"
	"os"
	"runtime"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	binutil "github.com/simonhull/id3tag/internal/binary"
	"github.com/simonhull/id3tag/internal/id3v2"
)

// Load reads the ID3 tag of the file at path.
//
// The ID3v2 tag at the start of the file is parsed. When the file has no
// ID3v2 header, or one with an unsupported version, Load falls back to the
// ID3v1 trailer in the last 128 bytes and returns a tag with Version
// ID3v1.1. If neither is present, the original header error is returned.
//
// Frames that cannot be decoded do not fail the load: they are kept as raw
// bytes in Tag.Unknown and reported in Tag.Warnings.
//
// Example:
//
//	tag, err := id3tag.Load("song.mp3")
//	if err != nil {
//		return err
//	}
//	if f, ok := tag.Get("TIT2"); ok {
//		fmt.Println(f)
//	}
func Load(path string, opts ...Option) (*Tag, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open file")
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, errors.Wrap(err, "stat file")
	}

	return load(f, stat.Size(), path, opts)
}

// Read parses the ID3 tag from r, which holds size bytes.
//
// Read behaves like Load for data that is not in a file.
func Read(r io.ReaderAt, size int64, opts ...Option) (*Tag, error) {
	return load(r, size, "", opts)
}

func load(r io.ReaderAt, size int64, path string, opts []Option) (*Tag, error) {
	options := defaultOptions()
	for _, opt := range opts {
		opt(options)
	}

	sr := binutil.NewSafeReader(r, size, path)
	tag, err := id3v2.Read(sr, id3v2.Options{
		Strict:     !options.lenientHeaders,
		NoFallback: options.noFallback,
		Log:        options.log,
	})
	if err != nil {
		return nil, err
	}

	if options.strictParsing {
		for _, w := range tag.Warnings {
			if w.Stage == "fallback" {
				continue
			}
			return nil, errors.Errorf("strict parsing failed: %s", w.Message)
		}
	}
	if options.ignoreWarnings {
		tag.Warnings = nil
	}

	return tag, nil
}

// LoadContext loads a tag with context support for cancellation.
//
// The context is checked before the file is opened.
//
//	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
//	defer cancel()
//
//	tag, err := id3tag.LoadContext(ctx, "song.mp3", id3tag.WithStrictParsing())
func LoadContext(ctx context.Context, path string, opts ...Option) (*Tag, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Load(path, opts...)
}

// LoadMany loads the tags of multiple files concurrently.
//
// Files are parsed in parallel using up to runtime.NumCPU() goroutines.
// Results are returned in the same order as the input paths. The first
// failure cancels the remaining loads and is returned.
//
// Example:
//
//	tags, err := id3tag.LoadMany(ctx, paths...)
//	if err != nil {
//		log.Fatal(err)
//	}
//	for i, tag := range tags {
//		fmt.Printf("%s: %d frames\n", paths[i], tag.Len())
//	}
func LoadMany(ctx context.Context, paths ...string) ([]*Tag, error) {
	return LoadManyWith(ctx, paths, nil)
}

// LoadManyWith is LoadMany with load options applied to every file.
func LoadManyWith(ctx context.Context, paths []string, opts []Option) ([]*Tag, error) {
	if len(paths) == 0 {
		return nil, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	results := make([]*Tag, len(paths))

	for i, path := range paths {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			tag, err := Load(path, opts...)
			if err != nil {
				return errors.Wrap(err, path)
			}

			results[i] = tag
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

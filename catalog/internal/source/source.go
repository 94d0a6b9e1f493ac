package source

import (
	"bufio"
	"context"
	"embed"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/brickset/brickset/catalog/internal/config"
)

//go:embed data/*.json
var bundled embed.FS

// Source is a named, openable dataset resource.
type Source interface {
	// Name identifies the resource in logs and errors.
	Name() string
	// Open returns the raw resource bytes. Callers must close the reader.
	Open(ctx context.Context) (io.ReadCloser, error)
}

// Embedded is a dataset compiled into the binary.
type Embedded struct {
	name string
}

// NewEmbedded returns the bundled dataset with the given file name.
func NewEmbedded(name string) *Embedded {
	return &Embedded{name: name}
}

func (e *Embedded) Name() string { return e.name }

// Open opens the bundled file. A name that is not bundled yields an error
// matching fs.ErrNotExist.
func (e *Embedded) Open(_ context.Context) (io.ReadCloser, error) {
	f, err := bundled.Open("data/" + e.name)
	if err != nil {
		return nil, fmt.Errorf("open bundled %q: %w", e.name, err)
	}
	return f, nil
}

// IsBundled reports whether name is shipped inside the binary.
func IsBundled(name string) bool {
	_, err := fs.Stat(bundled, "data/"+name)
	return err == nil
}

// File is a dataset on the local filesystem.
type File struct {
	path string
}

// NewFile returns a Source reading path.
func NewFile(path string) *File {
	return &File{path: path}
}

func (f *File) Name() string { return f.path }

// Path returns the filesystem path, used by the dataset watcher.
func (f *File) Path() string { return f.path }

func (f *File) Open(_ context.Context) (io.ReadCloser, error) {
	fh, err := os.Open(f.path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	return fh, nil
}

// Resolve picks the Source for cfg.Resource and wraps it with gzip handling.
func Resolve(ctx context.Context, cfg config.DatasetConfig) (Source, error) {
	name := cfg.Resource
	if name == "" {
		return nil, fmt.Errorf("source: empty resource name")
	}

	var src Source
	switch {
	case cfg.IsHTTP():
		src = NewHTTP(name, nil)
	case cfg.IsS3():
		s3src, err := NewS3(ctx, name, cfg.S3)
		if err != nil {
			return nil, fmt.Errorf("source: %w", err)
		}
		src = s3src
	case fileExists(name):
		src = NewFile(name)
	case IsBundled(name):
		src = NewEmbedded(name)
	default:
		src = NewFile(name)
	}
	return WithGzip(src, cfg.Gzip), nil
}

func fileExists(path string) bool {
	st, err := os.Stat(path)
	return err == nil && !st.IsDir()
}

// gzipSource decompresses the wrapped Source according to mode.
type gzipSource struct {
	Source
	mode string
}

// WithGzip wraps src so that Open decompresses gzip content. mode is one of
// config.GzipAuto, config.GzipTrue or config.GzipFalse; GzipFalse returns
// src unchanged.
func WithGzip(src Source, mode string) Source {
	if mode == config.GzipFalse {
		return src
	}
	return &gzipSource{Source: src, mode: mode}
}

// Unwrap returns the underlying Source.
func (g *gzipSource) Unwrap() Source { return g.Source }

func (g *gzipSource) Open(ctx context.Context) (io.ReadCloser, error) {
	rc, err := g.Source.Open(ctx)
	if err != nil {
		return nil, err
	}

	br := bufio.NewReader(rc)
	compressed := g.mode == config.GzipTrue
	if g.mode == config.GzipAuto {
		compressed = strings.HasSuffix(g.Name(), ".gz") || hasGzipMagic(br)
	}
	if !compressed {
		return readCloser{Reader: br, Closer: rc}, nil
	}

	zr, err := gzip.NewReader(br)
	if err != nil {
		rc.Close()
		return nil, fmt.Errorf("gzip %q: %w", g.Name(), err)
	}
	return readCloser{Reader: zr, Closer: closers{zr, rc}}, nil
}

func hasGzipMagic(br *bufio.Reader) bool {
	b, err := br.Peek(2)
	return err == nil && b[0] == 0x1f && b[1] == 0x8b
}

// Underlying returns the innermost Source, stripping gzip handling.
func Underlying(src Source) Source {
	for {
		u, ok := src.(interface{ Unwrap() Source })
		if !ok {
			return src
		}
		src = u.Unwrap()
	}
}

type readCloser struct {
	io.Reader
	io.Closer
}

type closers []io.Closer

func (cs closers) Close() error {
	var first error
	for _, c := range cs {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

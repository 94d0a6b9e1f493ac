package source

import (
	"bytes"
	"context"
	"errors"
	"io"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brickset/brickset/catalog/internal/config"
)

func readAll(t *testing.T, src Source) string {
	t.Helper()
	rc, err := src.Open(context.Background())
	require.NoError(t, err)
	defer rc.Close()
	b, err := io.ReadAll(rc)
	require.NoError(t, err)
	return string(b)
}

func gzipBytes(t *testing.T, s string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write([]byte(s))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, data, 0o600))
	return p
}

func TestResolve_Bundled(t *testing.T) {
	src, err := Resolve(context.Background(), config.DatasetConfig{Resource: "brickset.json", Gzip: config.GzipAuto})
	require.NoError(t, err)

	assert.IsType(t, &Embedded{}, Underlying(src))
	assert.True(t, strings.HasPrefix(strings.TrimSpace(readAll(t, src)), "["))
}

func TestResolve_FilePreferredOverBundled(t *testing.T) {
	p := writeFile(t, "brickset.json", []byte(`[{"pieces":1}]`))

	src, err := Resolve(context.Background(), config.DatasetConfig{Resource: p, Gzip: config.GzipAuto})
	require.NoError(t, err)

	f, ok := Underlying(src).(*File)
	require.True(t, ok, "want *File, got %T", Underlying(src))
	assert.Equal(t, p, f.Path())
	assert.Equal(t, `[{"pieces":1}]`, readAll(t, src))
}

func TestResolve_UnknownNameIsMissingFile(t *testing.T) {
	src, err := Resolve(context.Background(), config.DatasetConfig{Resource: "nope.json", Gzip: config.GzipFalse})
	require.NoError(t, err)

	_, err = src.Open(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist), "got %v", err)
}

func TestResolve_EmptyName(t *testing.T) {
	_, err := Resolve(context.Background(), config.DatasetConfig{})
	assert.Error(t, err)
}

func TestEmbedded_Missing(t *testing.T) {
	_, err := NewEmbedded("missing.json").Open(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestWithGzip_Modes(t *testing.T) {
	const body = `[{"theme":"Games"}]`
	plain := writeFile(t, "sets.json", []byte(body))
	zipped := writeFile(t, "sets.json.gz", gzipBytes(t, body))
	// Compressed content without the .gz suffix is detected by magic bytes.
	sniffed := writeFile(t, "sets.bin", gzipBytes(t, body))

	tests := []struct {
		name string
		path string
		mode string
	}{
		{"auto plain", plain, config.GzipAuto},
		{"auto suffix", zipped, config.GzipAuto},
		{"auto magic", sniffed, config.GzipAuto},
		{"forced", zipped, config.GzipTrue},
		{"disabled plain", plain, config.GzipFalse},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, body, readAll(t, WithGzip(NewFile(tc.path), tc.mode)))
		})
	}
}

func TestWithGzip_ForcedOnPlainFails(t *testing.T) {
	p := writeFile(t, "sets.json", []byte(`[]`))
	_, err := WithGzip(NewFile(p), config.GzipTrue).Open(context.Background())
	assert.Error(t, err)
}

func TestWithGzip_FalseIsIdentity(t *testing.T) {
	f := NewFile("x.json")
	assert.Same(t, f, WithGzip(f, config.GzipFalse))
}

func TestParseS3URL(t *testing.T) {
	bucket, key, err := parseS3URL("s3://lego/data/brickset.json")
	require.NoError(t, err)
	assert.Equal(t, "lego", bucket)
	assert.Equal(t, "data/brickset.json", key)

	for _, bad := range []string{"http://x/y", "s3://", "s3://bucket", "s3:///key"} {
		_, _, err := parseS3URL(bad)
		assert.Error(t, err, bad)
	}
}

type fakeS3 struct {
	objects map[string]string
	gotKey  string
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.gotKey = aws.ToString(in.Bucket) + "/" + aws.ToString(in.Key)
	body, ok := f.objects[f.gotKey]
	if !ok {
		return nil, errors.New("NoSuchKey")
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(body))}, nil
}

func TestS3_Open(t *testing.T) {
	fake := &fakeS3{objects: map[string]string{"lego/brickset.json": `[]`}}
	src := &S3{client: fake, bucket: "lego", key: "brickset.json"}

	assert.Equal(t, "s3://lego/brickset.json", src.Name())
	assert.Equal(t, `[]`, readAll(t, src))
	assert.Equal(t, "lego/brickset.json", fake.gotKey)
}

func TestS3_OpenMissing(t *testing.T) {
	src := &S3{client: &fakeS3{}, bucket: "lego", key: "gone.json"}
	_, err := src.Open(context.Background())
	assert.ErrorContains(t, err, "s3://lego/gone.json")
}

func TestHTTP_Open(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/brickset.json" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"pieces":7}]`))
	}))
	defer srv.Close()

	src, err := Resolve(context.Background(), config.DatasetConfig{Resource: srv.URL + "/brickset.json", Gzip: config.GzipAuto})
	require.NoError(t, err)
	assert.IsType(t, &HTTP{}, Underlying(src))
	assert.Equal(t, `[{"pieces":7}]`, readAll(t, src))

	_, err = NewHTTP(srv.URL+"/missing.json", srv.Client()).Open(context.Background())
	assert.ErrorContains(t, err, "unexpected status 404")
}

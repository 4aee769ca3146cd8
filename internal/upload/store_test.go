package upload

import (
	"bytes"
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"planets-api/internal/shared/config"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(config.UploadConfig{
		Dir:      t.TempDir(),
		MaxBytes: 1 << 20,
	}, slog.Default())
	require.NoError(t, err)
	return store
}

func buildMultipart(t *testing.T, field, filename, contentType string, content []byte) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name=%q; filename=%q`, field, filename))
	header.Set("Content-Type", contentType)

	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	return body, writer.FormDataContentType()
}

func TestExtractFileStoresUpload(t *testing.T) {
	store := newTestStore(t)

	body, contentType := buildMultipart(t, "photo", "earth.png", "image/png", []byte("png-bytes"))
	req := httptest.NewRequest("POST", "/planets/1/photo", body)
	req.Header.Set("Content-Type", contentType)

	filename, err := store.ExtractFile(req, "photo")
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(filename, ".png"), "filename %q should keep the extension", filename)
	assert.NotEqual(t, "earth.png", filename, "stored name must be generated, not the client's")

	stored, err := os.ReadFile(filepath.Join(store.Dir(), filename))
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), stored)
}

func TestExtractFileMissingField(t *testing.T) {
	store := newTestStore(t)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	require.NoError(t, writer.WriteField("caption", "words only"))
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/planets/1/photo", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	_, err := store.ExtractFile(req, "photo")
	assert.ErrorIs(t, err, ErrNoFile)
}

func TestExtractFileNonMultipartBody(t *testing.T) {
	store := newTestStore(t)

	req := httptest.NewRequest("POST", "/planets/1/photo", strings.NewReader("{}"))
	req.Header.Set("Content-Type", "application/json")

	_, err := store.ExtractFile(req, "photo")
	assert.ErrorIs(t, err, ErrNoFile)
}

func TestExtractFileRejectsUnsupportedType(t *testing.T) {
	store := newTestStore(t)

	body, contentType := buildMultipart(t, "photo", "evil.exe", "application/octet-stream", []byte("binary"))
	req := httptest.NewRequest("POST", "/planets/1/photo", body)
	req.Header.Set("Content-Type", contentType)

	_, err := store.ExtractFile(req, "photo")
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestGenerateFilenameSanitizesExtension(t *testing.T) {
	assert.True(t, strings.HasSuffix(generateFilename("photo.PNG"), ".png"))
	assert.True(t, strings.HasSuffix(generateFilename("a/b/../c.jpg"), ".jpg"))
	assert.False(t, strings.Contains(generateFilename("weird.sh"), "."))
	assert.False(t, strings.Contains(generateFilename("noext"), "."))
}

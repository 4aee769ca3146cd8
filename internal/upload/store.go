// Package upload is the binary-upload boundary: it pulls at most one file
// out of a multipart request, writes it to the content store under a
// generated name, and serves stored files back by filename.
package upload

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"planets-api/internal/shared/config"

	"github.com/google/uuid"
)

// ErrNoFile is returned when the multipart form carries no file for the
// requested field.
var ErrNoFile = errors.New("no file in request")

// ErrUnsupportedType is returned when the uploaded file is not an accepted
// image type.
var ErrUnsupportedType = errors.New("unsupported file type")

var allowedContentTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/gif":  true,
}

// Store writes uploaded files into a directory on disk and addresses them by
// generated filename.
type Store struct {
	dir      string
	maxBytes int64
	logger   *slog.Logger
}

func NewStore(cfg config.UploadConfig, logger *slog.Logger) (*Store, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory %s: %w", cfg.Dir, err)
	}

	logger.Debug("Initializing upload store", "dir", cfg.Dir, "max_bytes", cfg.MaxBytes)

	return &Store{
		dir:      cfg.Dir,
		maxBytes: cfg.MaxBytes,
		logger:   logger,
	}, nil
}

// Dir returns the content store directory.
func (s *Store) Dir() string {
	return s.dir
}

// ExtractFile parses the multipart body, saves the file sent under field, and
// returns the generated filename. ErrNoFile is returned when the field is
// absent; ErrUnsupportedType when the file is not an accepted image.
func (s *Store) ExtractFile(r *http.Request, field string) (string, error) {
	logger := s.logger.With("component", "upload_store", "operation", "extract_file", "field", field)

	r.Body = http.MaxBytesReader(nil, r.Body, s.maxBytes)
	if err := r.ParseMultipartForm(s.maxBytes); err != nil {
		if errors.Is(err, http.ErrNotMultipart) {
			return "", ErrNoFile
		}
		logger.Debug("Failed to parse multipart form", "error", err)
		return "", fmt.Errorf("failed to parse multipart form: %w", err)
	}

	file, header, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return "", ErrNoFile
		}
		return "", fmt.Errorf("failed to read form file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.Error("Failed to close uploaded file", "error", err)
		}
	}()

	contentType := header.Header.Get("Content-Type")
	if !allowedContentTypes[contentType] {
		logger.Debug("Rejected upload with unsupported content type", "content_type", contentType)
		return "", ErrUnsupportedType
	}

	filename := generateFilename(header.Filename)

	dst, err := os.Create(filepath.Join(s.dir, filename))
	if err != nil {
		logger.Error("Failed to create file in content store", "error", err, "filename", filename)
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		if err := dst.Close(); err != nil {
			logger.Error("Failed to close stored file", "error", err, "filename", filename)
		}
	}()

	written, err := io.Copy(dst, file)
	if err != nil {
		logger.Error("Failed to write file to content store", "error", err, "filename", filename)
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	logger.Info("File stored",
		"filename", filename,
		"original_filename", header.Filename,
		"size_bytes", written,
		"content_type", contentType,
	)

	return filename, nil
}

// generateFilename produces a collision-free name, keeping only a sanitized
// extension from the original filename.
func generateFilename(original string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(original)))
	switch ext {
	case ".png", ".jpg", ".jpeg", ".gif":
	default:
		ext = ""
	}
	return uuid.NewString() + ext
}

// Package upload validates image uploads and hands them to a storage backend.
package upload

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"path"
	"path/filepath"
	"strings"

	"ctchen222/rehla/internal/api/apperror"
	"ctchen222/rehla/internal/storage"

	"github.com/oklog/ulid/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

// MaxFileSize is the default upload limit (2 MiB).
const MaxFileSize int64 = 2 << 20

const defaultExt = ".jpg"

// File is an uploaded file as received from the client.
type File struct {
	Filename    string
	ContentType string
	Size        int64
	Open        func() (io.ReadCloser, error)
}

// FromHeader adapts a multipart file header.
func FromHeader(fh *multipart.FileHeader) *File {
	return &File{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Open: func() (io.ReadCloser, error) {
			return fh.Open()
		},
	}
}

// Handler checks and stores uploaded images.
type Handler struct {
	store   storage.Storage
	maxSize int64

	stored   metric.Int64Counter
	rejected metric.Int64Counter
	sizes    metric.Int64Histogram
}

// NewHandler creates a Handler. A non-positive maxSize means MaxFileSize.
func NewHandler(store storage.Storage, maxSize int64) *Handler {
	if maxSize <= 0 {
		maxSize = MaxFileSize
	}
	h := &Handler{store: store, maxSize: maxSize}
	h.initMetrics()
	return h
}

func (h *Handler) initMetrics() {
	meter := otel.Meter("rehla/upload")
	var err error

	h.stored, err = meter.Int64Counter("rehla.uploads.stored",
		metric.WithDescription("Images written to storage"),
		metric.WithUnit("{file}"))
	if err != nil {
		slog.Warn("failed to create upload counter", "error", err)
		h.stored = noop.Int64Counter{}
	}
	h.rejected, err = meter.Int64Counter("rehla.uploads.rejected",
		metric.WithDescription("Uploads refused by type or size"),
		metric.WithUnit("{file}"))
	if err != nil {
		slog.Warn("failed to create upload counter", "error", err)
		h.rejected = noop.Int64Counter{}
	}
	h.sizes, err = meter.Int64Histogram("rehla.uploads.size",
		metric.WithDescription("Size of stored images"),
		metric.WithUnit("By"))
	if err != nil {
		slog.Warn("failed to create upload histogram", "error", err)
		h.sizes = noop.Int64Histogram{}
	}
}

// Check validates the declared type and size. The type is checked first.
func (h *Handler) Check(f *File) error {
	if !strings.HasPrefix(strings.ToLower(f.ContentType), "image/") {
		h.reject(context.Background(), "type")
		return apperror.ErrInvalidFileType
	}
	if f.Size > h.maxSize {
		h.reject(context.Background(), "size")
		return apperror.ErrFileTooLarge
	}
	return nil
}

func (h *Handler) reject(ctx context.Context, reason string) {
	h.rejected.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", reason)))
}

// Accept stores f under a fresh name and returns the URL it is served from.
// The byte count is enforced while streaming, whatever size was declared.
func (h *Handler) Accept(ctx context.Context, f *File) (string, error) {
	if err := h.Check(f); err != nil {
		return "", err
	}

	rc, err := f.Open()
	if err != nil {
		return "", apperror.Internal(fmt.Errorf("failed to open upload: %w", err))
	}
	defer rc.Close()

	name := GenerateName(f.Filename)
	limited := &io.LimitedReader{R: rc, N: h.maxSize + 1}
	url, err := h.store.Save(ctx, name, f.ContentType, limited)
	if err != nil {
		return "", apperror.Internal(err)
	}
	if limited.N == 0 {
		if err := h.store.Delete(ctx, name); err != nil {
			slog.WarnContext(ctx, "failed to remove oversized upload", "name", name, "error", err)
		}
		h.reject(ctx, "size")
		return "", apperror.ErrFileTooLarge
	}

	written := h.maxSize + 1 - limited.N
	h.stored.Add(ctx, 1, metric.WithAttributes(attribute.String("content_type", f.ContentType)))
	h.sizes.Record(ctx, written)
	slog.DebugContext(ctx, "upload stored", "name", name, "url", url, "bytes", written)
	return url, nil
}

// Discard removes a previously accepted upload, identified by its URL.
func (h *Handler) Discard(ctx context.Context, url string) error {
	return h.store.Delete(ctx, path.Base(url))
}

// GenerateName returns a unique, time-sortable file name that keeps the
// original extension (lower-cased), or .jpg when there is none.
func GenerateName(original string) string {
	return ulid.Make().String() + extension(original)
}

func extension(original string) string {
	ext := strings.ToLower(filepath.Ext(original))
	if len(ext) < 2 {
		return defaultExt
	}
	for _, r := range ext[1:] {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return defaultExt
		}
	}
	return ext
}

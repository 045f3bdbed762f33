package filestore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	moderationports "photocontest/contexts/moderation-safety/moderation-service/ports"
	"photocontest/contexts/photo-contest/submission-service/domain/entities"
	submissionports "photocontest/contexts/photo-contest/submission-service/ports"

	"github.com/google/uuid"
)

var ErrInvalidKey = errors.New("invalid file key")

// Local keeps uploaded photos in one flat directory served under baseURL.
type Local struct {
	dir     string
	baseURL string
	logger  *slog.Logger
}

func NewLocal(dir string, baseURL string, logger *slog.Logger) (*Local, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("upload directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload directory: %w", err)
	}
	return &Local{
		dir:     dir,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger,
	}, nil
}

func (l *Local) Dir() string {
	return l.dir
}

// Put writes through a temp file and renames it into place so readers never
// observe a partial photo.
func (l *Local) Put(ctx context.Context, contentType string, data []byte) (submissionports.StoredFile, error) {
	if err := ctx.Err(); err != nil {
		return submissionports.StoredFile{}, err
	}
	key := uuid.NewString() + entities.ExtensionFor(contentType)
	tmp, err := os.CreateTemp(l.dir, ".upload-*")
	if err != nil {
		return submissionports.StoredFile{}, l.logError("filestore_create_temp_failed", err, "key", key)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return submissionports.StoredFile{}, l.logError("filestore_write_failed", err, "key", key)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return submissionports.StoredFile{}, l.logError("filestore_close_failed", err, "key", key)
	}
	if err := os.Rename(tmpName, filepath.Join(l.dir, key)); err != nil {
		_ = os.Remove(tmpName)
		return submissionports.StoredFile{}, l.logError("filestore_rename_failed", err, "key", key)
	}
	return submissionports.StoredFile{
		Path: key,
		URL:  l.baseURL + "/" + key,
		Size: int64(len(data)),
	}, nil
}

// Delete removes a stored file. Missing files are not an error.
func (l *Local) Delete(_ context.Context, key string) error {
	if key == "" || key != filepath.Base(key) || strings.HasPrefix(key, ".") {
		return ErrInvalidKey
	}
	err := os.Remove(filepath.Join(l.dir, key))
	if err == nil || errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return l.logError("filestore_delete_failed", err, "key", key)
}

func (l *Local) logError(event string, err error, attrs ...any) error {
	fields := []any{
		"event", event,
		"module", "internal/platform/filestore",
		"layer", "platform",
		"error", err.Error(),
	}
	fields = append(fields, attrs...)
	l.logger.Error("file store operation failed", fields...)
	return err
}

var (
	_ submissionports.FileStorage = (*Local)(nil)
	_ moderationports.FileStorage = (*Local)(nil)
)

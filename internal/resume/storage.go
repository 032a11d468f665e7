package resume

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"topcv/internal/shared/apperror"
)

// Storage persists uploaded resume files. Implementations stay behind this
// interface so the service never knows whether files land on disk or in an
// object store.
type Storage interface {
	Save(ctx context.Context, key string, r io.Reader) (string, error)
	Remove(ctx context.Context, path string) error
}

type localStorage struct {
	baseDir string
}

func NewLocalStorage(baseDir string) Storage {
	return &localStorage{baseDir: baseDir}
}

func (s *localStorage) Save(ctx context.Context, key string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	path := filepath.Join(s.baseDir, key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", apperror.Wrap(err, apperror.CodeUpstreamUnavailable, "resume storage unavailable", http.StatusServiceUnavailable)
	}

	f, err := os.Create(path)
	if err != nil {
		return "", apperror.Wrap(err, apperror.CodeUpstreamUnavailable, "resume storage unavailable", http.StatusServiceUnavailable)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(path)
		return "", apperror.Wrap(err, apperror.CodeUpstreamUnavailable, "resume storage unavailable", http.StatusServiceUnavailable)
	}
	return path, nil
}

func (s *localStorage) Remove(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove resume file: %w", err)
	}
	return nil
}

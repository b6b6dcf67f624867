package local

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"careers-backend/internal/shared/storage/object"
	"careers-backend/internal/shared/util"
)

// Store keeps objects on the local filesystem under a base directory.
type Store struct {
	baseDir string
}

func New(baseDir string) (*Store, error) {
	if strings.TrimSpace(baseDir) == "" {
		return nil, errors.New("local object store: base directory required")
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("local object store: create base dir: %w", err)
	}
	return &Store{baseDir: baseDir}, nil
}

func (s *Store) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	clean, err := s.cleanKey(key)
	if err != nil {
		return "", err
	}
	path := filepath.Join(s.baseDir, clean)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("local object store: create dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("local object store: create file: %w", err)
	}
	defer f.Close()
	if _, err := io.Copy(f, r); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("local object store: write: %w", err)
	}
	return clean, nil
}

func (s *Store) Get(ctx context.Context, key string) (*object.Object, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	clean, err := s.cleanKey(key)
	if err != nil {
		return nil, err
	}
	path := filepath.Join(s.baseDir, clean)
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, object.ErrNotFound
		}
		return nil, fmt.Errorf("local object store: open: %w", err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("local object store: stat: %w", err)
	}

	// Sniff the content type from the first 512 bytes, then rewind.
	buf := make([]byte, 512)
	n, _ := f.Read(buf)
	contentType := http.DetectContentType(buf[:n])
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		f.Close()
		return nil, fmt.Errorf("local object store: seek: %w", err)
	}

	return &object.Object{
		Reader:      f,
		Size:        info.Size(),
		ContentType: contentType,
	}, nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	clean, err := s.cleanKey(key)
	if err != nil {
		return err
	}
	path := filepath.Join(s.baseDir, clean)
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("local object store: delete: %w", err)
	}
	return nil
}

func (s *Store) cleanKey(key string) (string, error) {
	clean, err := util.SanitizeFileName(key)
	if err != nil {
		return "", fmt.Errorf("local object store: %w", err)
	}
	return clean, nil
}

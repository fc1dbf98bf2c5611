package disk

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/oakhaus/decorator/internal/roomimage"
)

// Store keeps room photos as flat files under one directory.
type Store struct {
	dir string
}

func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create room image directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) Save(ctx context.Context, mimeType string, r io.Reader) (string, error) {
	key := fmt.Sprintf("room_%d%s", time.Now().UnixNano(), extForMIME(mimeType))
	path := filepath.Join(s.dir, key)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create image file: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", fmt.Errorf("failed to write image file: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("failed to close image file: %w", err)
	}
	return key, nil
}

func (s *Store) Open(ctx context.Context, key string) (io.ReadCloser, string, error) {
	path, err := s.safePath(key)
	if err != nil {
		return nil, "", err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, "", roomimage.ErrNotFound
		}
		return nil, "", fmt.Errorf("failed to open image file: %w", err)
	}
	return f, mimeForExt(path), nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	path, err := s.safePath(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return roomimage.ErrNotFound
		}
		return fmt.Errorf("failed to delete image file: %w", err)
	}
	return nil
}

// safePath resolves key under the store directory and rejects traversal.
func (s *Store) safePath(key string) (string, error) {
	base, err := filepath.Abs(s.dir)
	if err != nil {
		return "", fmt.Errorf("invalid store directory: %w", err)
	}
	path, err := filepath.Abs(filepath.Join(s.dir, key))
	if err != nil {
		return "", fmt.Errorf("invalid key: %w", err)
	}
	if !strings.HasPrefix(path, base+string(filepath.Separator)) {
		return "", fmt.Errorf("invalid key %q", key)
	}
	return path, nil
}

func extForMIME(mimeType string) string {
	switch mimeType {
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ".jpg"
	}
}

func mimeForExt(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	default:
		return "image/jpeg"
	}
}

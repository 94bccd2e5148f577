package cvstore

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/getcareer/portal/internal/filex"
)

// DiskStore writes CV files under a local uploads directory. It is the
// backend for runs without an object store.
type DiskStore struct {
	baseDir string
}

func NewDiskStore(uploadDir string) (*DiskStore, error) {
	dir, err := filex.EnsureDir(uploadDir)
	if err != nil {
		return nil, fmt.Errorf("upload dir: %w", err)
	}
	return &DiskStore{baseDir: dir}, nil
}

func (s *DiskStore) Save(ctx context.Context, username, filename string, r io.Reader) (string, error) {
	key := storageKey(username, filename)

	path := filepath.Join(s.baseDir, filepath.FromSlash(key))
	if _, err := filex.EnsureDir(filepath.Dir(path)); err != nil {
		return "", err
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("write %s: %w", path, err)
	}

	return key, nil
}

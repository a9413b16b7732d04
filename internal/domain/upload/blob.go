package upload

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// BlobStore writes uploaded file bytes under a name and resolves stored names
// back to full paths for serving.
type BlobStore interface {
	Save(name string, r io.Reader) error
	Path(name string) string
}

// DiskStore keeps blobs as plain files in a single directory. Same-name
// uploads overwrite silently; there is no collision detection.
type DiskStore struct {
	dir string
}

func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &DiskStore{dir: dir}, nil
}

func (s *DiskStore) Save(name string, r io.Reader) error {
	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, r); err != nil {
		_ = os.Remove(dst.Name())
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

// Path returns the on-disk location for a stored name. The name is reduced to
// its base component so a crafted value cannot escape the directory.
func (s *DiskStore) Path(name string) string {
	return filepath.Join(s.dir, filepath.Base(name))
}

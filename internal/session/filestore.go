package session

import (
	"fmt"
	"os"
	"path/filepath"
)

// FileStore keeps one JSON file per session under a root directory
// (<root>/<user>/<game>.json). Writes go through a temp file and an atomic
// rename, so a crashed write leaves the previous session intact; readers
// never observe a torn file.
type FileStore struct {
	root string
}

// NewFileStore creates the root directory if needed.
func NewFileStore(root string) (*FileStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create session dir: %w", err)
	}
	return &FileStore{root: root}, nil
}

func (s *FileStore) path(key Key) string {
	return filepath.Join(s.root, key.User, key.Game+".json")
}

// Save implements Store.
func (s *FileStore) Save(key Key, payload any) error {
	if err := key.validate(); err != nil {
		return err
	}
	data, err := seal(key, payload)
	if err != nil {
		return err
	}

	path := s.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create user dir: %w", err)
	}
	return writeFileAtomic(path, data, 0o644)
}

// Load implements Store.
func (s *FileStore) Load(key Key, into any) (bool, error) {
	if err := key.validate(); err != nil {
		return false, err
	}
	data, err := os.ReadFile(s.path(key))
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read session: %w", err)
	}
	return open(key, data, into), nil
}

// Delete implements Store.
func (s *FileStore) Delete(key Key) error {
	if err := key.validate(); err != nil {
		return err
	}
	err := os.Remove(s.path(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Close implements Store.
func (s *FileStore) Close() error { return nil }

// writeFileAtomic writes data via a temp file in the same directory followed
// by a rename. The same-directory temp file keeps the rename on one
// filesystem, which is what makes it atomic.
func writeFileAtomic(filename string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(filename)
	base := filepath.Base(filename)

	tmp, err := os.CreateTemp(dir, base+".tmp.*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if tmp != nil {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	tmp = nil

	if err := os.Chmod(tmpPath, perm); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpPath, filename); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

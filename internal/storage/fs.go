package storage

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// File implements Provider backed by one file on the local file system.
type File struct {
	path string // absolute path to the document
}

// NewFile creates a File provider for path. The file itself need not exist,
// but its parent directory must. A symlinked path is resolved to its target
// so writes replace the target rather than the link.
func NewFile(path string) (*File, error) {
	if path == "" {
		return nil, errors.New("storage: empty path")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("storage: resolve path: %w", err)
	}
	if abs, err = resolveLinks(abs); err != nil {
		return nil, fmt.Errorf("storage: resolve symlinks: %w", err)
	}
	info, err := os.Stat(filepath.Dir(abs))
	if err != nil {
		return nil, fmt.Errorf("storage: stat parent: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("storage: parent is not a directory: %s", filepath.Dir(abs))
	}
	return &File{path: abs}, nil
}

// resolveLinks follows symlinks in abs. A dangling final link resolves to
// the file it names.
func resolveLinks(abs string) (string, error) {
	for i := 0; i < 40; i++ {
		resolved, err := filepath.EvalSymlinks(abs)
		if err == nil {
			return resolved, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return "", err
		}

		info, lerr := os.Lstat(abs)
		if lerr != nil {
			// The file does not exist yet; resolve its directory only.
			dir, derr := filepath.EvalSymlinks(filepath.Dir(abs))
			if derr != nil {
				return abs, nil
			}
			return filepath.Join(dir, filepath.Base(abs)), nil
		}
		if info.Mode()&os.ModeSymlink == 0 {
			return abs, nil
		}
		target, err := os.Readlink(abs)
		if err != nil {
			return "", err
		}
		if !filepath.IsAbs(target) {
			target = filepath.Join(filepath.Dir(abs), target)
		}
		abs = target
	}
	return "", fmt.Errorf("too many links: %s", abs)
}

// Location returns the absolute path of the file.
func (f *File) Location() string {
	return f.path
}

// Exists reports whether the file is present.
func (f *File) Exists() (bool, error) {
	_, err := os.Stat(f.path)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, os.ErrNotExist):
		return false, nil
	default:
		return false, fmt.Errorf("storage: stat %s: %w", f.path, err)
	}
}

// Read returns the raw bytes of the file.
func (f *File) Read() ([]byte, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("storage: read %s: %w", f.path, err)
	}
	return data, nil
}

// Write atomically writes content: tmp file → fsync → rename.
func (f *File) Write(content []byte) error {
	dir := filepath.Dir(f.path)

	tmp, err := os.CreateTemp(dir, ".zz-tmp-*")
	if err != nil {
		return fmt.Errorf("storage: create temp: %w", err)
	}
	tmpName := tmp.Name()

	// Clean up on any failure path.
	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(content); err != nil {
		return fmt.Errorf("storage: write temp: %w", err)
	}
	if info, err := os.Stat(f.path); err == nil {
		if err := tmp.Chmod(info.Mode().Perm()); err != nil {
			return fmt.Errorf("storage: chmod temp: %w", err)
		}
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("storage: fsync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("storage: close temp: %w", err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		return fmt.Errorf("storage: rename: %w", err)
	}
	success = true
	return nil
}

// Checksum returns the hex-encoded SHA-256 digest of data.
func Checksum(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}

// Package registry owns the bucket registry: loading it from its JSON file,
// mutating it, and rewriting the whole document after every change.
package registry

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"slices"

	"github.com/starford/zugzug/internal/apperr"
	"github.com/starford/zugzug/internal/models"
	"github.com/starford/zugzug/internal/storage"
)

// Store holds the in-memory registry for the lifetime of one invocation.
// It is not safe for concurrent use.
type Store struct {
	file   storage.Provider
	logger *slog.Logger
	data   models.Registry
	sum    string // checksum of the file contents last read or written
}

// Open loads the registry from file, initializing it with an empty
// registry when the file does not exist yet.
func Open(file storage.Provider, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{
		file:   file,
		logger: logger,
		data:   models.Registry{Buckets: []models.Bucket{}},
	}

	exists, err := file.Exists()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperr.ErrPersistence, err)
	}
	if !exists {
		logger.Info("registry: initializing", slog.String("path", file.Location()))
		if err := s.write(); err != nil {
			return nil, err
		}
	}

	data, err := file.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperr.ErrPersistence, err)
	}
	reg, err := Decode(data)
	if err != nil {
		return nil, err
	}
	s.data = reg
	s.sum = storage.Checksum(data)

	logger.Debug("registry: loaded",
		slog.String("path", file.Location()),
		slog.Int("buckets", len(reg.Buckets)))
	return s, nil
}

// Location returns the path of the registry file.
func (s *Store) Location() string {
	return s.file.Location()
}

// Buckets returns a copy of the buckets in registry order.
func (s *Store) Buckets() []models.Bucket {
	return slices.Clone(s.data.Buckets)
}

// AddBucket registers a bucket at path. The path must exist and the name
// must not already be registered. When no default bucket resolves, the new
// bucket becomes the default.
func (s *Store) AddBucket(name, path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", apperr.ErrPathNotFound, path)
		}
		return fmt.Errorf("registry: stat %s: %w", path, err)
	}
	if _, ok := s.FindBucket(name); ok {
		return fmt.Errorf("%w: %q", apperr.ErrBucketExists, name)
	}

	s.data.Buckets = append(s.data.Buckets, models.Bucket{Name: name, Path: path})
	if _, ok := s.DefaultBucket(); !ok {
		s.data.DefaultBucket = &name
	}
	return s.persist()
}

// FindBucket returns the first bucket named name.
func (s *Store) FindBucket(name string) (models.Bucket, bool) {
	i := slices.IndexFunc(s.data.Buckets, func(b models.Bucket) bool {
		return b.Name == name
	})
	if i < 0 {
		return models.Bucket{}, false
	}
	return s.data.Buckets[i], true
}

// DefaultBucket resolves the stored default name. A name that no longer
// matches any bucket resolves to nothing.
func (s *Store) DefaultBucket() (models.Bucket, bool) {
	if s.data.DefaultBucket == nil {
		return models.Bucket{}, false
	}
	return s.FindBucket(*s.data.DefaultBucket)
}

// SetDefaultBucket makes name the default bucket.
func (s *Store) SetDefaultBucket(name string) error {
	if _, ok := s.FindBucket(name); !ok {
		return fmt.Errorf("%w: %q", apperr.ErrBucketNotFound, name)
	}
	s.data.DefaultBucket = &name
	return s.persist()
}

// UnsetDefaultBucket clears the default bucket.
func (s *Store) UnsetDefaultBucket() error {
	s.data.DefaultBucket = nil
	return s.persist()
}

// ForgetBucket removes every bucket named name and reports how many were
// removed. The bucket's directory is left untouched. Forgetting the default
// bucket unsets the default first.
func (s *Store) ForgetBucket(name string) (int, error) {
	if def, ok := s.DefaultBucket(); ok && def.Name == name {
		if err := s.UnsetDefaultBucket(); err != nil {
			return 0, err
		}
	}

	before := len(s.data.Buckets)
	s.data.Buckets = slices.DeleteFunc(s.data.Buckets, func(b models.Bucket) bool {
		return b.Name == name
	})
	removed := before - len(s.data.Buckets)

	if err := s.persist(); err != nil {
		return 0, err
	}
	return removed, nil
}

// persist rewrites the registry file, refusing to clobber changes made by
// another process since this Store last saw the file.
func (s *Store) persist() error {
	current, err := s.file.Read()
	if err != nil {
		return fmt.Errorf("%w: %w", apperr.ErrPersistence, err)
	}
	if storage.Checksum(current) != s.sum {
		return fmt.Errorf("%w: %w: %s", apperr.ErrPersistence, apperr.ErrConflict, s.file.Location())
	}
	if err := s.write(); err != nil {
		return err
	}
	s.logger.Debug("registry: persisted",
		slog.String("path", s.file.Location()),
		slog.Int("buckets", len(s.data.Buckets)))
	return nil
}

func (s *Store) write() error {
	data, err := Encode(s.data)
	if err != nil {
		return err
	}
	if err := s.file.Write(data); err != nil {
		return fmt.Errorf("%w: %w", apperr.ErrPersistence, err)
	}
	s.sum = storage.Checksum(data)
	return nil
}

// Encode serializes reg as the registry file document.
func Encode(reg models.Registry) ([]byte, error) {
	if reg.Buckets == nil {
		reg.Buckets = []models.Bucket{}
	}
	data, err := json.MarshalIndent(reg, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("%w: encode: %w", apperr.ErrPersistence, err)
	}
	return append(data, '\n'), nil
}

// Decode parses a registry file document.
func Decode(data []byte) (models.Registry, error) {
	var reg models.Registry
	if err := json.Unmarshal(data, &reg); err != nil {
		return models.Registry{}, fmt.Errorf("%w: decode: %w", apperr.ErrPersistence, err)
	}
	if reg.Buckets == nil {
		reg.Buckets = []models.Bucket{}
	}
	return reg, nil
}

// Package workdir creates and lists the date-prefixed working directories
// kept inside buckets.
package workdir

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/starford/zugzug/internal/apperr"
	"github.com/starford/zugzug/internal/models"
)

// Separator divides the date prefix from the rest of a directory name.
const Separator = "_"

// Name returns the directory name for name created on the local calendar
// date of now, e.g. "20240305_my_task".
func Name(now time.Time, name string) string {
	return fmt.Sprintf("%04d%02d%02d%s%s", now.Year(), int(now.Month()), now.Day(), Separator, name)
}

// Make creates a date-prefixed directory for name inside bucket b and
// returns its full path. It never overwrites and does not create the
// bucket's base directory.
func Make(b models.Bucket, name string, now time.Time) (string, error) {
	path := filepath.Join(b.Path, Name(now, name))

	if _, err := os.Lstat(path); err == nil {
		return "", fmt.Errorf("%w: %s", apperr.ErrPathExists, path)
	} else if !errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("%w: %s: %w", apperr.ErrDirectoryCreate, path, err)
	}

	if err := os.Mkdir(path, 0o755); err != nil {
		if errors.Is(err, os.ErrExist) {
			return "", fmt.Errorf("%w: %s", apperr.ErrPathExists, path)
		}
		return "", fmt.Errorf("%w: %s: %w", apperr.ErrDirectoryCreate, path, err)
	}
	return path, nil
}

// SplitName splits an entry name on its first separator into the date
// prefix and the rest.
func SplitName(entry string) (date, rest string, err error) {
	date, rest, ok := strings.Cut(entry, Separator)
	if !ok {
		return "", "", fmt.Errorf("%w: %q has no %q separator", apperr.ErrMalformedEntryName, entry, Separator)
	}
	return date, rest, nil
}

// NewEntry builds the listing entry for the child name of bucket b.
func NewEntry(b models.Bucket, name string) (models.Entry, error) {
	path := filepath.Join(b.Path, name)
	date, rest, err := SplitName(name)
	if err != nil {
		return models.Entry{}, fmt.Errorf("bucket %s: %s: %w", b.Name, path, err)
	}
	return models.Entry{Bucket: b.Name, Date: date, Name: rest, Path: path}, nil
}

// Package watch reports entries appearing in or leaving bucket base
// directories as they happen.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/starford/zugzug/internal/apperr"
	"github.com/starford/zugzug/internal/models"
	"github.com/starford/zugzug/internal/workdir"
)

// Event kinds.
const (
	KindCreated = "created"
	KindRemoved = "removed"
)

// Event describes one change in a bucket's base directory. Err is set
// instead of a parsed Entry when the entry name is malformed; Entry.Bucket
// and Entry.Path are always filled.
type Event struct {
	Kind  string
	Entry models.Entry
	Err   error
}

// EventCallback is called for every bucket entry change.
type EventCallback func(Event)

// Watch watches the base directory of every bucket (non-recursively) and
// calls cb for each entry created in or removed from it, until ctx is
// cancelled. Buckets whose directory cannot be watched are logged and
// skipped; when none can be watched Watch fails with ErrDirectoryRead.
func Watch(ctx context.Context, buckets []models.Bucket, logger *slog.Logger, cb EventCallback) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	roots := make(map[string]models.Bucket, len(buckets))
	for _, b := range buckets {
		abs, err := filepath.Abs(b.Path)
		if err != nil {
			logger.Warn("watcher: resolve bucket failed", slog.String("bucket", b.Name), slog.String("error", err.Error()))
			continue
		}
		if err := w.Add(abs); err != nil {
			logger.Warn("watcher: add bucket failed", slog.String("bucket", b.Name), slog.String("error", err.Error()))
			continue
		}
		roots[abs] = b
	}
	if len(roots) == 0 {
		return fmt.Errorf("%w: no watchable bucket", apperr.ErrDirectoryRead)
	}

	logger.Info("watcher: started", slog.Int("buckets", len(roots)))

	for {
		select {
		case <-ctx.Done():
			logger.Info("watcher: stopped")
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}

			b, ok := roots[filepath.Dir(ev.Name)]
			if !ok {
				continue
			}

			var kind string
			switch {
			case ev.Op&fsnotify.Create != 0:
				kind = KindCreated
			case ev.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
				// fsnotify fires Rename on the old path only; the new
				// name arrives as a separate Create.
				kind = KindRemoved
			default:
				continue
			}

			name := filepath.Base(ev.Name)
			out := Event{Kind: kind}
			entry, err := workdir.NewEntry(b, name)
			if err != nil {
				out.Entry = models.Entry{Bucket: b.Name, Path: filepath.Join(b.Path, name)}
				out.Err = err
			} else {
				out.Entry = entry
			}
			logger.Debug("watcher: event", slog.String("op", kind), slog.String("path", out.Entry.Path))
			if cb != nil {
				cb(out)
			}

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher: error", slog.String("error", watchErr.Error()))
		}
	}
}

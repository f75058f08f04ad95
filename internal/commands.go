package internal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"golang.org/x/sync/errgroup"

	"github.com/starford/zugzug/internal/apperr"
	"github.com/starford/zugzug/internal/models"
	"github.com/starford/zugzug/internal/watch"
	"github.com/starford/zugzug/internal/workdir"
)

// BucketAdd registers dir as bucket name.
func (a *App) BucketAdd(_ context.Context, name, dir string) error {
	if err := a.store.AddBucket(name, dir); err != nil {
		return err
	}
	a.logger.Info("bucket added", slog.String("bucket", name), slog.String("path", dir))
	return nil
}

// BucketDefault prints the default bucket.
func (a *App) BucketDefault(_ context.Context) error {
	b, ok := a.store.DefaultBucket()
	if !ok {
		_, err := fmt.Fprintln(a.out, "Default bucket is not set")
		return err
	}
	_, err := fmt.Fprintln(a.out, b.Name)
	return err
}

// BucketSetDefault makes name the default bucket.
func (a *App) BucketSetDefault(_ context.Context, name string) error {
	return a.store.SetDefaultBucket(name)
}

// BucketUnsetDefault clears the default bucket.
func (a *App) BucketUnsetDefault(_ context.Context) error {
	return a.store.UnsetDefaultBucket()
}

// BucketForget stops tracking bucket name. Its directory is left alone.
func (a *App) BucketForget(_ context.Context, name string) error {
	removed, err := a.store.ForgetBucket(name)
	if err != nil {
		return err
	}
	if removed == 0 {
		return fmt.Errorf("%w: bucket '%s' does not exist", apperr.ErrBucketNotFound, name)
	}
	a.logger.Info("bucket forgotten", slog.String("bucket", name))
	return nil
}

// BucketList prints every bucket's name and path in registry order.
func (a *App) BucketList(_ context.Context) error {
	tw := newTable(a.out)
	for _, b := range a.store.Buckets() {
		fmt.Fprintf(tw, "%s\t%s\n", b.Name, b.Path)
	}
	return tw.Flush()
}

// List prints the entries of every bucket, or only of bucket when it is
// non-empty. Unreadable buckets and malformed entries are reported on the
// error output without stopping the listing; they are returned joined.
func (a *App) List(_ context.Context, bucket string) error {
	buckets, err := a.selectBuckets(bucket)
	if err != nil {
		return err
	}

	listing := workdir.List(buckets)

	tw := newTable(a.out)
	for _, e := range listing.Entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", e.Bucket, e.Date, e.Name, e.Path)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	for _, p := range listing.Problems {
		fmt.Fprintln(a.errOut, p)
	}
	return errors.Join(listing.Problems...)
}

// MakeDir creates a date-prefixed directory for name in bucket, or in the
// default bucket when bucket is empty, and prints its path.
func (a *App) MakeDir(_ context.Context, name, bucket string) error {
	var (
		b  models.Bucket
		ok bool
	)
	if bucket != "" {
		if b, ok = a.store.FindBucket(bucket); !ok {
			return fmt.Errorf("%w: %q", apperr.ErrBucketNotFound, bucket)
		}
	} else if b, ok = a.store.DefaultBucket(); !ok {
		return apperr.ErrNoBucketSelected
	}

	path, err := workdir.Make(b, name, a.now())
	if err != nil {
		return err
	}
	a.logger.Info("directory created", slog.String("bucket", b.Name), slog.String("path", path))
	_, err = fmt.Fprintln(a.out, path)
	return err
}

// Watch prints entries created in or removed from the selected buckets
// until ctx is cancelled or the process receives SIGINT or SIGTERM.
func (a *App) Watch(ctx context.Context, bucket string) error {
	buckets, err := a.selectBuckets(bucket)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer cancel()
		return watch.Watch(gCtx, buckets, a.logger, func(ev watch.Event) {
			if ev.Err != nil {
				fmt.Fprintf(a.errOut, "%s: %v\n", ev.Kind, ev.Err)
				return
			}
			e := ev.Entry
			fmt.Fprintf(a.out, "%s\t%s\t%s\t%s\t%s\n", ev.Kind, e.Bucket, e.Date, e.Name, e.Path)
		})
	})

	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(quit)

		select {
		case sig := <-quit:
			a.logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
		case <-gCtx.Done():
		}
		cancel()
		return nil
	})

	return g.Wait()
}

func (a *App) selectBuckets(name string) ([]models.Bucket, error) {
	if name == "" {
		return a.store.Buckets(), nil
	}
	b, ok := a.store.FindBucket(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", apperr.ErrBucketNotFound, name)
	}
	return []models.Bucket{b}, nil
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 1, ' ', 0)
}

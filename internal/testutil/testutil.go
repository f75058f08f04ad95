// Package testutil provides shared test helpers for setting up registries and buckets.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// StorePath returns a registry file location inside a temporary directory.
// The file itself is not created.
func StorePath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), ".zz.json")
}

// BucketDir creates a temporary bucket directory containing one
// subdirectory per entry name.
func BucketDir(t *testing.T, entries ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, e := range entries {
		if err := os.Mkdir(filepath.Join(dir, e), 0o755); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

// FixedClock returns a clock that always reports at.
func FixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

// Package apperr defines the error kinds shared across zz and maps them to
// process exit codes.
package apperr

import "errors"

var (
	ErrStoreUnavailable   = errors.New("store location unavailable")
	ErrPersistence        = errors.New("registry persistence failed")
	ErrConflict           = errors.New("registry modified by another process")
	ErrBucketNotFound     = errors.New("bucket not found")
	ErrNoBucketSelected   = errors.New("no bucket to choose from")
	ErrBucketExists       = errors.New("bucket already exists")
	ErrPathNotFound       = errors.New("path does not exist")
	ErrPathExists         = errors.New("path already exists")
	ErrDirectoryCreate    = errors.New("cannot create directory")
	ErrDirectoryRead      = errors.New("cannot read directory")
	ErrMalformedEntryName = errors.New("malformed entry name")
)

// Exit codes returned by the zz binary.
const (
	ExitOK = iota
	ExitFailure
	ExitStoreUnavailable
	ExitPersistence
	ExitBucketNotFound
	ExitInvalidBucket
	ExitPathExists
	ExitDirectoryCreate
	ExitDirectoryRead
	ExitMalformedEntryName
)

// Ordered so that the first matching kind wins for joined errors.
var exitCodes = []struct {
	kind error
	code int
}{
	{ErrStoreUnavailable, ExitStoreUnavailable},
	{ErrConflict, ExitPersistence},
	{ErrPersistence, ExitPersistence},
	{ErrBucketNotFound, ExitBucketNotFound},
	{ErrNoBucketSelected, ExitBucketNotFound},
	{ErrBucketExists, ExitInvalidBucket},
	{ErrPathNotFound, ExitInvalidBucket},
	{ErrPathExists, ExitPathExists},
	{ErrDirectoryCreate, ExitDirectoryCreate},
	{ErrDirectoryRead, ExitDirectoryRead},
	{ErrMalformedEntryName, ExitMalformedEntryName},
}

// ExitCode returns the process exit status for err.
// A nil error maps to ExitOK and an unclassified one to ExitFailure.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	for _, ec := range exitCodes {
		if errors.Is(err, ec.kind) {
			return ec.code
		}
	}
	return ExitFailure
}
